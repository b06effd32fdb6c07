package main

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/zxhio/pinball/internal/config"
	"github.com/zxhio/pinball/internal/errcode"
	"github.com/zxhio/pinball/internal/service"
	"golang.org/x/sys/unix"
)

type runOpts struct {
	configPath string
	profile    string

	verbose  bool
	logLevel *logLevel
	logFile  string
	dryRun   bool
	ethtool  string
	procPath string
	sysNet   string
}

// run loads the config, applies the selected profile and prints the
// per-interface outcomes to w. Any error means exit status 1.
func run(ctx context.Context, o *runOpts, w io.Writer) error {
	logrus.WithField("path", o.configPath).Info("Loading config")
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	profile := cfg.Profile(o.profile)
	if profile == nil {
		return errcode.New(errcode.CodeNotExist, "profile: %s was not found in the config: %s", o.profile, o.configPath)
	}

	if !o.dryRun && unix.Geteuid() != 0 {
		logrus.WithField("euid", unix.Geteuid()).Warn("Not running as root, settings will likely fail to apply")
	}

	c := service.NewConfigurator(
		service.NewQueueApplier(
			service.WithEthtoolPath(o.ethtool),
			service.WithQueueDryRun(o.dryRun),
		),
		service.NewAffinityWriter(
			service.WithProcPath(o.procPath),
			service.WithAffinityDryRun(o.dryRun),
		),
		service.NewLinkInspector(o.sysNet),
	)

	outcomes, err := c.ApplyProfile(ctx, profile)
	printOutcomes(w, profile.Name, outcomes)
	return err
}
