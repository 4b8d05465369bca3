package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/younsl/volsweep/internal/models"
)

const (
	volumeHeader     = "ID\tCREATE TIME\tSTATUS\tSIZE\tSNAPSHOT ID\tSNAPSHOT EXISTS"
	volumeCostHeader = "\tMONTHLY COST"
)

// TableOptions controls how volume tables are rendered
type TableOptions struct {
	// Debug prints a notice for regions without available volumes
	Debug bool
	// DistinguishErrors renders failed snapshot lookups as "Error" instead of "False"
	DistinguishErrors bool
	// ShowCost adds the estimated monthly cost column
	ShowCost bool
}

// SnapshotExists renders a snapshot state for the SNAPSHOT EXISTS column
func SnapshotExists(state models.SnapshotState, distinguishErrors bool) string {
	switch state {
	case models.SnapshotFound:
		return "True"
	case models.SnapshotNotFound:
		return "False"
	case models.SnapshotCheckError:
		if distinguishErrors {
			return "Error"
		}
		return "False"
	default:
		return ""
	}
}

// VolumeRow returns the table cells for one volume
func VolumeRow(volume models.VolumeRecord, opts TableOptions) []string {
	row := []string{
		volume.ID,
		volume.CreateTime.Format(time.RFC3339),
		volume.Status,
		strconv.Itoa(volume.Size),
		volume.SnapshotID,
		SnapshotExists(volume.Snapshot, opts.DistinguishErrors),
	}
	if opts.ShowCost {
		row = append(row, formatCost(volume))
	}
	return row
}

// PrintVolumesTable prints the available volumes of one region. Nothing is printed for
// an empty region unless opts.Debug is set.
func PrintVolumesTable(w io.Writer, region string, volumes []models.VolumeRecord, opts TableOptions) {
	if len(volumes) == 0 {
		if opts.Debug {
			fmt.Fprintf(w, "No available volumes found in %s.\n", region)
		}
		return
	}

	fmt.Fprintf(w, "\n## Region: %s\n", region)

	// kubectl style tabwriter
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	header := volumeHeader
	if opts.ShowCost {
		header += volumeCostHeader
	}
	fmt.Fprintln(tw, header)

	// Rows keep the order the volumes were listed in
	for _, volume := range volumes {
		fmt.Fprintln(tw, strings.Join(VolumeRow(volume, opts), "\t"))
	}

	printVolumeTotals(tw, volumes, opts)

	tw.Flush()
}

// printVolumeTotals prints the summary information at the bottom of the table
func printVolumeTotals(w io.Writer, volumes []models.VolumeRecord, opts TableOptions) {
	totalSize := 0
	var totalCost float64

	for _, volume := range volumes {
		totalSize += volume.Size
		totalCost += volume.MonthlyCost
	}

	// Size is in GiB
	fmt.Fprintf(w, "Total: %d volumes\t\t\t%s\t\t", len(volumes), humanize.IBytes(uint64(totalSize)<<30))
	if opts.ShowCost {
		fmt.Fprintf(w, "\t$%.2f", totalCost)
	}
	fmt.Fprintln(w)
}

func formatCost(volume models.VolumeRecord) string {
	if volume.PricingSource == "" || volume.PricingSource == "N/A" {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f %s", volume.MonthlyCost, GetPricingMarker(volume.PricingSource))
}

// GetPricingMarker returns a short marker describing where a price came from
func GetPricingMarker(source string) string {
	switch source {
	case "API":
		return "(api)"
	case "Cache":
		return "(cached)"
	case "Default":
		return "(estimate)"
	default:
		return ""
	}
}
