package config

import (
	"strconv"
	"strings"
)

// Config is the parsed profile file. Profiles keep their file order.
type Config struct {
	Profiles []*Profile `toml:"profile"`
}

type Profile struct {
	Name              string              `toml:"name"`
	NetworkInterfaces []*NetworkInterface `toml:"network_interface"`
}

// NetworkInterface is one [[profile.network_interface]] entry. The queues
// and irqs tables may be omitted and then count as empty.
type NetworkInterface struct {
	// Name is the kernel interface name. Its character set, emptiness
	// included, is checked when the interface is configured, not when the
	// file is loaded.
	Name   string            `toml:"name"`
	Queues NetworkQueues     `toml:"queues"`
	IRQs   map[string]string `toml:"irqs"`
}

// nameKeys mirrors the name keys of a document. The keys must be present,
// their values are not checked here.
type nameKeys struct {
	Profiles []struct {
		Name              *string `toml:"name" validate:"required"`
		NetworkInterfaces []struct {
			Name *string `toml:"name" validate:"required"`
		} `toml:"network_interface" validate:"dive"`
	} `toml:"profile" validate:"dive"`
}

// NetworkQueues holds the channel counts handed to ethtool -L. A nil
// field is left untouched on the device.
type NetworkQueues struct {
	Transmit *uint `toml:"transmit"`
	Receive  *uint `toml:"receive"`
	Combined *uint `toml:"combined"`
}

// Args returns the ethtool channel arguments in tx, rx, combined order.
func (q NetworkQueues) Args() []string {
	var args []string
	add := func(key string, v *uint) {
		if v != nil {
			args = append(args, key, strconv.FormatUint(uint64(*v), 10))
		}
	}
	add("tx", q.Transmit)
	add("rx", q.Receive)
	add("combined", q.Combined)
	return args
}

func (q NetworkQueues) IsEmpty() bool {
	return q.Transmit == nil && q.Receive == nil && q.Combined == nil
}

func (q NetworkQueues) String() string {
	return strings.Join(q.Args(), " ")
}
