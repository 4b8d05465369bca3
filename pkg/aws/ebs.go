package aws

import (
	"context"
	"fmt"
	"iter"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/dustin/go-humanize"
	"github.com/younsl/volsweep/internal/models"
	"github.com/younsl/volsweep/pkg/utils"
)

// AvailableVolumes returns a lazy sequence of the EBS volumes in the 'available' state
// (not attached to any instance). Every traversal issues a fresh DescribeVolumes call and
// checks each volume's source snapshot as it is produced.
//
// Only the first page of the response is used. A query error is yielded once and ends
// the sequence.
func (c *EBSClient) AvailableVolumes(ctx context.Context) iter.Seq2[models.VolumeRecord, error] {
	return func(yield func(models.VolumeRecord, error) bool) {
		// Filter only volumes in 'available' state (unattached volumes)
		filter := types.Filter{
			Name:   aws.String("status"),
			Values: []string{string(types.VolumeStateAvailable)},
		}

		input := &ec2.DescribeVolumesInput{
			Filters: []types.Filter{filter},
		}

		result, err := c.api.DescribeVolumes(ctx, input)
		if err != nil {
			yield(models.VolumeRecord{}, fmt.Errorf("error querying EBS volumes in %s: %w", c.region, err))
			return
		}

		for _, volume := range result.Volumes {
			if volume.State != types.VolumeStateAvailable {
				c.log.Debug("skipping volume outside the status filter",
					"volume", aws.ToString(volume.VolumeId), "state", volume.State)
				continue
			}

			record := c.newVolumeRecord(volume)
			record.Snapshot = c.CheckSnapshot(ctx, record.SnapshotID)

			// A cancelled lookup says nothing about the snapshot, so the scan is aborted
			// rather than reporting it as missing
			if err := ctx.Err(); err != nil {
				yield(models.VolumeRecord{}, fmt.Errorf("scan of %s interrupted: %w", c.region, err))
				return
			}

			c.log.Debug("available volume",
				"volume", record.ID,
				"name", record.Name,
				"age", humanize.Time(record.CreateTime),
				"snapshot", record.SnapshotID,
				"snapshot_state", record.Snapshot)

			if !yield(record, nil) {
				return
			}
		}
	}
}

// GetAvailableVolumes drains AvailableVolumes into a slice
func (c *EBSClient) GetAvailableVolumes(ctx context.Context) ([]models.VolumeRecord, error) {
	volumes := []models.VolumeRecord{}
	for volume, err := range c.AvailableVolumes(ctx) {
		if err != nil {
			return nil, err
		}
		volumes = append(volumes, volume)
	}
	return volumes, nil
}

func (c *EBSClient) newVolumeRecord(volume types.Volume) models.VolumeRecord {
	record := models.VolumeRecord{
		ID:         aws.ToString(volume.VolumeId),
		Name:       utils.GetName(volume.Tags),
		Region:     c.region,
		VolumeType: string(volume.VolumeType),
		Status:     string(volume.State),
		Size:       int(aws.ToInt32(volume.Size)),
		SnapshotID: aws.ToString(volume.SnapshotId),
	}
	if volume.CreateTime != nil {
		record.CreateTime = *volume.CreateTime
	}
	return record
}
