package aws

import (
	"context"
	"errors"
	"net/http"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"
	"github.com/younsl/volsweep/internal/models"
)

// EC2 error codes returned for snapshot ids that do not resolve
const (
	ErrCodeSnapshotNotFound  = "InvalidSnapshot.NotFound"
	ErrCodeSnapshotMalformed = "InvalidSnapshotID.Malformed"
)

// CheckSnapshot reports whether the snapshot a volume was created from still exists.
// An empty id is not looked up.
func (c *EBSClient) CheckSnapshot(ctx context.Context, snapshotID string) models.SnapshotState {
	if snapshotID == "" {
		return models.SnapshotNone
	}

	result, err := c.api.DescribeSnapshots(ctx, &ec2.DescribeSnapshotsInput{
		SnapshotIds: []string{snapshotID},
	})
	if err != nil {
		state := ClassifySnapshotError(err)
		if state == models.SnapshotCheckError {
			c.log.Warn("snapshot lookup failed", "snapshot", snapshotID, "err", err)
		} else {
			c.log.Debug("snapshot not found", "snapshot", snapshotID, "err", err)
		}
		return state
	}

	if len(result.Snapshots) == 0 {
		return models.SnapshotNotFound
	}
	return models.SnapshotFound
}

// ClassifySnapshotError maps a DescribeSnapshots error to SnapshotNotFound when the
// service rejected the request as a client error, and to SnapshotCheckError otherwise
func ClassifySnapshotError(err error) models.SnapshotState {
	if err == nil {
		return models.SnapshotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case ErrCodeSnapshotNotFound, ErrCodeSnapshotMalformed:
			return models.SnapshotNotFound
		}
		if apiErr.ErrorFault() == smithy.FaultClient {
			return models.SnapshotNotFound
		}
	}

	// EC2 query errors carry no fault, so fall back to the HTTP status
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		status := respErr.HTTPStatusCode()
		if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
			return models.SnapshotNotFound
		}
	}

	return models.SnapshotCheckError
}
