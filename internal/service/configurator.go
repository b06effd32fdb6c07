package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/zxhio/pinball/internal/config"
	"github.com/zxhio/pinball/internal/model"
	"github.com/zxhio/pinball/pkg/utils"
)

// Configurator applies the queue and irq settings of network interfaces.
// Interfaces are handled one at a time and the first failure ends the run.
type Configurator struct {
	queues   *QueueApplier
	affinity *AffinityWriter
	links    *LinkInspector
}

// NewConfigurator builds a Configurator. A nil links skips link inspection.
func NewConfigurator(queues *QueueApplier, affinity *AffinityWriter, links *LinkInspector) *Configurator {
	return &Configurator{queues: queues, affinity: affinity, links: links}
}

// Configure applies queues and then every irq affinity of iface.
func (c *Configurator) Configure(ctx context.Context, iface *config.NetworkInterface) error {
	l := logrus.WithField("name", iface.Name)

	if err := config.ValidateInterfaceName(iface.Name); err != nil {
		return err
	}
	// Check every irq entry up front so a bad one aborts before any side effect.
	irqs, err := iface.IRQAffinities()
	if err != nil {
		return errors.Wrapf(err, "interface %s", iface.Name)
	}

	nums := make([]uint32, 0, len(irqs))
	for _, irq := range irqs {
		nums = append(nums, irq.IRQ)
	}

	l.WithFields(logrus.Fields{"queues": iface.Queues.String(), "irqs": utils.SliceString(nums)}).Info("Configuring interface")
	c.links.Inspect(iface.Name)
	checkLinkIRQs(c.affinity.procPath, iface.Name, nums)

	if err := c.queues.Apply(ctx, iface.Queues, iface.Name); err != nil {
		return err
	}

	for _, irq := range irqs {
		if err := c.affinity.Set(ctx, irq.IRQ, irq.Affinity); err != nil {
			return errors.Wrapf(err, "interface %s", iface.Name)
		}
	}

	l.Info("Configured interface")
	return nil
}

// ApplyProfile configures the interfaces of p in order. It returns one
// outcome per interface; interfaces after a failure are marked skipped.
func (c *Configurator) ApplyProfile(ctx context.Context, p *config.Profile) ([]model.InterfaceOutcome, error) {
	logrus.WithFields(logrus.Fields{"profile": p.Name, "interfaces": len(p.NetworkInterfaces)}).Info("Applying profile")

	outcomes := make([]model.InterfaceOutcome, 0, len(p.NetworkInterfaces))
	var firstErr error
	for _, iface := range p.NetworkInterfaces {
		outcome := model.InterfaceOutcome{
			Name:   iface.Name,
			Queues: iface.Queues.String(),
			IRQs:   len(iface.IRQs),
		}

		switch {
		case firstErr != nil:
			outcome.Status = model.InterfaceStatusSkipped
		default:
			if err := c.Configure(ctx, iface); err != nil {
				firstErr = err
				outcome.Status = model.InterfaceStatusFailed
				outcome.Err = err
			} else {
				outcome.Status = model.InterfaceStatusConfigured
			}
		}
		outcomes = append(outcomes, outcome)
	}

	if firstErr != nil {
		return outcomes, errors.Wrapf(firstErr, "profile %s", p.Name)
	}
	logrus.WithField("profile", p.Name).Info("Applied profile")
	return outcomes, nil
}
