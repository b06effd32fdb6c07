package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zxhio/pinball/internal/service"
	"github.com/zxhio/pinball/pkg/builder"
	"github.com/zxhio/pinball/pkg/netutil"
	"github.com/zxhio/pinball/pkg/utils"
)

const logoAscii = `
 _ ._  |_  _. || 
|_)|| ||_)(_| || 
|`

var (
	version bool
	opts    = runOpts{logLevel: newLogLevel()}
)

var rootCmd = &cobra.Command{
	Use:   "pinball <config> <profile>",
	Short: "Apply a network interface tuning profile\n\n" + color.HiBlueString(logoAscii),
	Long: `Apply the named profile of a TOML config file: set NIC channel counts
with ethtool -L and pin interrupt lines with /proc/irq/<n>/smp_affinity_list.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if version {
			return nil
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(&opts)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if version {
			fmt.Println(builder.BuildInfo(os.Args[0]))
			os.Exit(0)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			select {
			case sig := <-sigCh:
				logrus.WithField("sig", sig).Warn("Recv signal")
				cancel()
			case <-ctx.Done():
			}
		}()

		opts.configPath, opts.profile = args[0], args[1]
		err := run(ctx, &opts, os.Stdout)
		utils.CheckErrorAndExit(err, "pinball")
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&version, "version", "V", false, "Print version")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output, same as --log-level=debug")
	flags.Var(opts.logLevel, "log-level", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to a rotated file instead of stderr")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Validate and log the changes without applying them")
	flags.StringVar(&opts.ethtool, "ethtool", service.DefaultEthtoolPath, "Path to ethtool")
	flags.StringVar(&opts.procPath, "proc", service.DefaultProcPath, "Path to procfs")
	flags.StringVar(&opts.sysNet, "sys-net", netutil.SysClassNetPath, "Path to the sysfs network class directory")
	flags.SortFlags = false
}

func main() {
	err := rootCmd.Execute()
	utils.CheckErrorAndExit(err, "pinball")
}
