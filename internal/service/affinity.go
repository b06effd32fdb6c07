package service

import (
	"context"
	"io"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/zxhio/pinball/internal/config"
	"github.com/zxhio/pinball/internal/errcode"
	"github.com/zxhio/pinball/pkg/utils"
	"golang.org/x/sys/unix"
)

const (
	DefaultProcPath = "/proc"

	affinityAttempts = 5
	affinityDelay    = 100 * time.Millisecond
)

// FileOpener opens an existing file for writing.
type FileOpener func(name string) (io.WriteCloser, error)

// openNoCreate truncates an existing file and never creates one.
func openNoCreate(name string) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_WRONLY|os.O_TRUNC, 0)
}

// AffinityWriter writes cpu lists to /proc/irq/<n>/smp_affinity_list.
type AffinityWriter struct {
	procPath string
	open     FileOpener
	retry    utils.RetryPolicy
	dryRun   bool
}

type AffinityWriterOpt func(*AffinityWriter)

func WithProcPath(procPath string) AffinityWriterOpt {
	return func(w *AffinityWriter) {
		if procPath != "" {
			w.procPath = procPath
		}
	}
}

func WithFileOpener(open FileOpener) AffinityWriterOpt {
	return func(w *AffinityWriter) { w.open = open }
}

func WithAffinityRetry(policy utils.RetryPolicy) AffinityWriterOpt {
	return func(w *AffinityWriter) { w.retry = policy }
}

func WithAffinityDryRun(dryRun bool) AffinityWriterOpt {
	return func(w *AffinityWriter) { w.dryRun = dryRun }
}

func NewAffinityWriter(opts ...AffinityWriterOpt) *AffinityWriter {
	w := &AffinityWriter{
		procPath: DefaultProcPath,
		open:     openNoCreate,
		retry:    utils.RetryPolicy{Attempts: affinityAttempts, Delay: affinityDelay},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *AffinityWriter) affinityListPath(irq uint32) string {
	return path.Join(w.procPath, "irq", strconv.FormatUint(uint64(irq), 10), "smp_affinity_list")
}

// Apply validates every entry of irqs, then writes them in ascending irq
// order. The first irq that cannot be written stops the loop and is
// returned as errcode.CodeAffinity.
func (w *AffinityWriter) Apply(ctx context.Context, irqs map[string]string) error {
	entries, err := config.ParseIRQAffinities(irqs)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := w.Set(ctx, e.IRQ, e.Affinity); err != nil {
			return err
		}
	}
	return nil
}

// Set writes one affinity list, retrying per the writer's policy.
func (w *AffinityWriter) Set(ctx context.Context, irq uint32, affinity string) error {
	if err := config.ValidateAffinityList(affinity); err != nil {
		return err
	}

	name := w.affinityListPath(irq)
	l := logrus.WithFields(logrus.Fields{"irq": irq, "affinity": affinity})
	if w.dryRun {
		l.WithField("path", name).Info("Dry run, skip set irq affinity")
		return nil
	}

	err := utils.Retry(ctx, w.retry, func(attempt int) error {
		err := w.write(name, affinity)
		if err != nil {
			fields := logrus.Fields{"attempt": attempt, "path": name}
			var errno unix.Errno
			if errors.As(err, &errno) {
				fields["errno"] = unix.ErrnoName(errno)
			}
			l.WithFields(fields).WithError(err).Debug("Fail to write irq affinity")
		}
		return err
	})
	if err != nil {
		l.WithError(err).Error("Fail to set irq affinity")
		return errcode.New(errcode.CodeAffinity, "failed to set irq: %d smp affinity list: %s: %v", irq, affinity, err)
	}

	l.Info("Set irq affinity")
	return nil
}

func (w *AffinityWriter) write(name, affinity string) error {
	f, err := w.open(name)
	if err != nil {
		return err
	}

	_, err = f.Write([]byte(affinity))
	if cerr := f.Close(); cerr != nil {
		logrus.WithField("path", name).WithError(cerr).Debug("Fail to close irq affinity file")
	}
	return err
}
