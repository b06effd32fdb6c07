package service

import (
	"os"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

type linkIRQ struct {
	irq   uint32
	label string // enp1s0, enp1s0-rx-0, enp1s0-TxRx-3, ...
}

// linkIRQsFromData returns the interrupts of /proc/interrupts whose action
// name is linkName or starts with "linkName-".
//
//	127:          0          0     IR-PCI-MSI 524288-edge      enp1s0
//	129:          0    5214704     IR-PCI-MSI 524289-edge      enp1s0-rx-0
//	36:    55627941          0     PCI-MSI 2621441-edge        enp2s0-TxRx-0
func linkIRQsFromData(content, linkName string) []linkIRQ {
	var res []linkIRQ
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		label := fields[len(fields)-1]
		if label != linkName && !strings.HasPrefix(label, linkName+"-") {
			continue
		}
		irq, err := strconv.ParseUint(strings.TrimSuffix(fields[0], ":"), 10, 32)
		if err != nil {
			continue
		}
		res = append(res, linkIRQ{irq: uint32(irq), label: label})
	}
	return res
}

// checkLinkIRQs warns about configured irqs that /proc/interrupts does not
// attribute to linkName. It never fails: drivers may name vectors freely.
func checkLinkIRQs(procPath, linkName string, irqs []uint32) {
	if len(irqs) == 0 {
		return
	}
	l := logrus.WithField("name", linkName)

	content, err := os.ReadFile(path.Join(procPath, "interrupts"))
	if err != nil {
		l.WithError(err).Debug("Fail to read interrupts")
		return
	}

	known := linkIRQsFromData(string(content), linkName)
	for _, irq := range irqs {
		if !slices.ContainsFunc(known, func(li linkIRQ) bool { return li.irq == irq }) {
			l.WithField("irq", irq).Warn("Irq not listed for link in interrupts")
		}
	}
}
