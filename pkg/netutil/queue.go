package netutil

import (
	"fmt"
	"os"
	"path"

	"github.com/pkg/errors"
)

// QueueCount is the number of rx-N and tx-N entries the kernel exposes
// for a link.
type QueueCount struct {
	Rx int
	Tx int
}

// GetQueueCount counts the queue directories of nic under sysNet.
func GetQueueCount(sysNet, nic string) (QueueCount, error) {
	entries, err := os.ReadDir(path.Join(sysNet, nic, "queues"))
	if err != nil {
		return QueueCount{}, errors.Wrap(err, "os.ReadDir")
	}

	var qc QueueCount
	for _, entry := range entries {
		var id int
		if _, err := fmt.Sscanf(entry.Name(), "rx-%d", &id); err == nil {
			qc.Rx++
		} else if _, err := fmt.Sscanf(entry.Name(), "tx-%d", &id); err == nil {
			qc.Tx++
		}
	}
	return qc, nil
}
