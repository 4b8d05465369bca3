// Package scan walks the requested regions one at a time and reports the available
// EBS volumes found in each of them.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/younsl/volsweep/internal/models"
	"github.com/younsl/volsweep/pkg/formatter"
	"github.com/younsl/volsweep/pkg/pricing"
)

// ErrNoRegions is returned when neither a region nor --all was given
var ErrNoRegions = errors.New("please specify at least one region, or use --all")

// VolumeLister lists the available volumes of one region
type VolumeLister interface {
	GetAvailableVolumes(ctx context.Context) ([]models.VolumeRecord, error)
}

// CostEstimator prices a volume; *pricing.Estimator implements it
type CostEstimator interface {
	MonthlyCost(ctx context.Context, volumeType string, sizeGB int, region string) (float64, pricing.PricingSource)
	GetAPIStats() map[string]pricing.Stats
}

// Options are the user's choices for one run
type Options struct {
	Regions           []string
	All               bool
	Debug             bool
	DistinguishErrors bool
	Cost              bool
}

// Runner scans regions sequentially. The function fields are the provider collaborators;
// only NewRegionClient is required, and ListRegions is required when Options.All is set.
type Runner struct {
	Options Options
	Out     io.Writer
	Log     log15.Logger

	// NewRegionClient builds a client scoped to region
	NewRegionClient func(ctx context.Context, region string) (VolumeLister, error)

	// ListRegions enumerates every region the account can see
	ListRegions func(ctx context.Context) ([]string, error)

	// Identify returns a description of the caller, printed in debug mode
	Identify func(ctx context.Context) (string, error)

	// Estimator prices volumes when Options.Cost is set
	Estimator CostEstimator

	// Progress is called before a region is scanned and returns a function ending the
	// progress display
	Progress func(region string) func()
}

// Run scans every requested region and prints one table per region with volumes
func (r *Runner) Run(ctx context.Context) error {
	logger := r.Log
	if logger == nil {
		logger = log15.New()
		logger.SetHandler(log15.DiscardHandler())
	}

	if len(r.Options.Regions) == 0 && !r.Options.All {
		return ErrNoRegions
	}

	if r.Options.Debug && r.Identify != nil {
		identity, err := r.Identify(ctx)
		if err != nil {
			logger.Warn("could not identify caller", "err", err)
		} else {
			fmt.Fprintf(r.Out, "Account: %s\n", identity)
		}
	}

	regions, err := r.resolveRegions(ctx)
	if err != nil {
		return err
	}

	tableOpts := formatter.TableOptions{
		Debug:             r.Options.Debug,
		DistinguishErrors: r.Options.DistinguishErrors,
		ShowCost:          r.Options.Cost && r.Estimator != nil,
	}

	scanStartTime := time.Now()
	total := 0
	for _, region := range regions {
		volumes, err := r.scanRegion(ctx, region)
		if err != nil {
			return err
		}
		logger.Debug("region scanned", "region", region, "volumes", len(volumes))

		total += len(volumes)
		formatter.PrintVolumesTable(r.Out, region, volumes, tableOpts)
	}

	if r.Options.Debug {
		formatter.PrintScanSummary(r.Out, scanStartTime, time.Since(scanStartTime), len(regions), total)
		if tableOpts.ShowCost {
			formatter.PrintPricingAPIStats(r.Out, r.Estimator.GetAPIStats())
		}
	}

	return nil
}

// resolveRegions returns the positional regions verbatim, or every region with --all
func (r *Runner) resolveRegions(ctx context.Context) ([]string, error) {
	if !r.Options.All {
		return r.Options.Regions, nil
	}

	if r.Options.Debug {
		fmt.Fprintln(r.Out, "Scanning all regions ...")
	}
	if r.ListRegions == nil {
		return nil, errors.New("region listing is not configured")
	}
	return r.ListRegions(ctx)
}

func (r *Runner) scanRegion(ctx context.Context, region string) ([]models.VolumeRecord, error) {
	if r.Progress != nil {
		stop := r.Progress(region)
		defer stop()
	}

	client, err := r.NewRegionClient(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("error creating client for region %s: %w", region, err)
	}

	volumes, err := client.GetAvailableVolumes(ctx)
	if err != nil {
		return nil, err
	}

	if r.Options.Cost && r.Estimator != nil {
		for i := range volumes {
			cost, source := r.Estimator.MonthlyCost(ctx, volumes[i].VolumeType, volumes[i].Size, region)
			volumes[i].MonthlyCost = cost
			volumes[i].PricingSource = string(source)
		}
	}

	return volumes, nil
}
