package service

import (
	"github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
	"github.com/zxhio/pinball/pkg/netutil"
)

// LinkInspector logs what the kernel currently reports about a link. It is
// informational only and never fails a run.
type LinkInspector struct {
	sysNet     string
	linkByName func(name string) (netlink.Link, error)
}

func NewLinkInspector(sysNet string) *LinkInspector {
	if sysNet == "" {
		sysNet = netutil.SysClassNetPath
	}
	return &LinkInspector{sysNet: sysNet, linkByName: netlink.LinkByName}
}

func (li *LinkInspector) Inspect(name string) {
	if li == nil {
		return
	}

	l := logrus.WithField("name", name)
	fields := logrus.Fields{"physical": netutil.IsPhyNic(li.sysNet, name)}

	link, err := li.linkByName(name)
	if err == nil {
		attrs := link.Attrs()
		fields["index"] = attrs.Index
		fields["type"] = link.Type()
		fields["num_rx"] = attrs.NumRxQueues
		fields["num_tx"] = attrs.NumTxQueues
		l.WithFields(fields).Info("Detected network link")
		return
	}
	l.WithError(err).Debug("netlink.LinkByName")

	qc, err := netutil.GetQueueCount(li.sysNet, name)
	if err != nil {
		l.WithError(err).Warn("Fail to detect network link")
		return
	}
	fields["num_rx"] = qc.Rx
	fields["num_tx"] = qc.Tx
	l.WithFields(fields).Info("Detected network link from sysfs")
}
