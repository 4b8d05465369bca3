package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/briandowns/spinner"
	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	"github.com/younsl/volsweep/internal/scan"
	"github.com/younsl/volsweep/internal/version"
	"github.com/younsl/volsweep/pkg/aws"
	"github.com/younsl/volsweep/pkg/pricing"
)

var (
	allRegions        bool
	debug             bool
	distinguishErrors bool
	showCost          bool
)

// startRegionSpinner creates and starts a spinner on stderr for the given region
func startRegionSpinner(region string) func() {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond, spinner.WithWriterFile(os.Stderr))
	s.Suffix = fmt.Sprintf(" Scanning available volumes in %s ...", region)
	s.Start()
	return s.Stop
}

// newLogger returns a logfmt logger on stderr; --debug lowers the level to debug
func newLogger(debug bool) log15.Logger {
	lvl := log15.LvlWarn
	if debug {
		lvl = log15.LvlDebug
	}

	logger := log15.New("app", "volsweep")
	logger.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(os.Stderr, log15.LogfmtFormat())))
	return logger
}

func newVolumesAvailableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volumes-available [REGION ...]",
		Short: "Find available (unattached) EBS volumes",
		Long: `Find EBS volumes in the 'available' state, which are not attached to any instance,
and check whether the snapshot each volume was created from still exists.`,
		Example: `  volsweep volumes-available us-east-1 ap-northeast-2
  volsweep volumes-available --all --debug`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := newLogger(debug)

			// Account-wide calls share one lazily loaded config, so a run without
			// regions never touches AWS
			loadHome := sync.OnceValues(func() (awssdk.Config, error) {
				return aws.LoadHomeConfig(ctx, logger)
			})

			runner := &scan.Runner{
				Options: scan.Options{
					Regions:           args,
					All:               allRegions,
					Debug:             debug,
					DistinguishErrors: distinguishErrors,
					Cost:              showCost,
				},
				Out: cmd.OutOrStdout(),
				Log: logger,
				NewRegionClient: func(ctx context.Context, region string) (scan.VolumeLister, error) {
					client, err := aws.NewEBSClient(ctx, region, logger)
					if err != nil {
						return nil, err
					}
					return client, nil
				},
				ListRegions: func(ctx context.Context) ([]string, error) {
					cfg, err := loadHome()
					if err != nil {
						return nil, err
					}
					return aws.ListRegions(ctx, aws.NewEC2API(cfg))
				},
				Identify: func(ctx context.Context) (string, error) {
					cfg, err := loadHome()
					if err != nil {
						return "", err
					}
					identity, err := aws.GetCallerIdentity(ctx, aws.NewCallerIdentityAPI(cfg))
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("%s (%s)", identity.Account, identity.ARN), nil
				},
			}

			if showCost {
				runner.Estimator = pricing.NewEstimator(ctx, logger)
			}

			// The spinner would interleave with debug log lines
			if !debug {
				runner.Progress = startRegionSpinner
			}

			return runner.Run(ctx)
		},
	}

	cmd.Flags().BoolVarP(&allRegions, "all", "A", false, "Scan every region enabled for the account (ignores REGION arguments)")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Verbose output, including regions without available volumes")
	cmd.Flags().BoolVar(&distinguishErrors, "distinguish-errors", false,
		"Show 'Error' instead of 'False' when a snapshot lookup fails for a reason other than a client error")
	cmd.Flags().BoolVar(&showCost, "cost", false, "Add the estimated monthly cost of each volume (AWS Pricing API)")

	return cmd
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "volsweep",
		Short: "Helper commands for EBS volume management",
		Long: `volsweep finds orphaned AWS resources that are likely safe to delete.
It is read-only and uses the default AWS credential chain.`,
		Version:       version.Get().String(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newVolumesAvailableCmd())
	return rootCmd
}

// run executes the CLI and returns the process exit code. Errors are printed to out.
func run(ctx context.Context, args []string, out io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(out, err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}
