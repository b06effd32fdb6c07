package netutil

import (
	"os"
	"path"
)

const SysClassNetPath = "/sys/class/net"

// IsPhyNic reports whether nic is backed by a device under sysNet
// (normally /sys/class/net). Virtual links have no device entry.
func IsPhyNic(sysNet, nic string) bool {
	_, err := os.Stat(path.Join(sysNet, nic, "device"))
	return err == nil
}
