package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/zxhio/pinball/internal/config"
	"github.com/zxhio/pinball/internal/errcode"
	"github.com/zxhio/pinball/pkg/utils"
)

const (
	DefaultEthtoolPath    = "/usr/sbin/ethtool"
	DefaultEthtoolTimeout = 30 * time.Second
)

// CommandRunner runs an external command and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// QueueApplier sets channel counts with ethtool -L.
type QueueApplier struct {
	ethtool string
	timeout time.Duration
	run     CommandRunner
	dryRun  bool
}

type QueueApplierOpt func(*QueueApplier)

func WithEthtoolPath(path string) QueueApplierOpt {
	return func(q *QueueApplier) {
		if path != "" {
			q.ethtool = path
		}
	}
}

// WithCommandTimeout bounds a single ethtool run. Zero disables the bound.
func WithCommandTimeout(timeout time.Duration) QueueApplierOpt {
	return func(q *QueueApplier) { q.timeout = timeout }
}

func WithCommandRunner(run CommandRunner) QueueApplierOpt {
	return func(q *QueueApplier) { q.run = run }
}

func WithQueueDryRun(dryRun bool) QueueApplierOpt {
	return func(q *QueueApplier) { q.dryRun = dryRun }
}

func NewQueueApplier(opts ...QueueApplierOpt) *QueueApplier {
	q := &QueueApplier{
		ethtool: DefaultEthtoolPath,
		timeout: DefaultEthtoolTimeout,
		run:     utils.RunCommandWithContext,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// ethtoolArgs returns "-L <iface> [tx n] [rx n] [combined n]".
func ethtoolArgs(queues config.NetworkQueues, iface string) []string {
	return append([]string{"-L", iface}, queues.Args()...)
}

// Apply runs ethtool for iface. The name is checked before anything is
// executed. A launch failure or a non-zero exit status is returned as
// errcode.CodeExec.
func (q *QueueApplier) Apply(ctx context.Context, queues config.NetworkQueues, iface string) error {
	if err := config.ValidateInterfaceName(iface); err != nil {
		return err
	}

	args := ethtoolArgs(queues, iface)
	l := logrus.WithFields(logrus.Fields{"name": iface, "cmd": q.ethtool + " " + strings.Join(args, " ")})
	if queues.IsEmpty() {
		l.Debug("No queue counts set")
	}
	if q.dryRun {
		l.Info("Dry run, skip set queues")
		return nil
	}

	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	out, err := q.run(ctx, q.ethtool, args...)
	if err != nil {
		var exitErr *utils.ExitError
		if errors.As(err, &exitErr) {
			l.WithFields(logrus.Fields{"exit_code": exitErr.ExitCode, "output": strings.TrimSpace(exitErr.Output)}).Error("Fail to set queues")
			return errcode.New(errcode.CodeExec, "set queues of %s: %s", iface, exitErr)
		}
		l.WithError(err).Error("Fail to run ethtool")
		return errcode.New(errcode.CodeExec, "set queues of %s: %v", iface, err)
	}

	if s := strings.TrimSpace(string(out)); s != "" {
		l = l.WithField("output", s)
	}
	l.Info("Set queues")
	return nil
}
