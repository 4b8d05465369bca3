package aws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/younsl/volsweep/internal/models"
)

func responseError(status int) error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: status}},
			Err:      errors.New("api error"),
		},
		RequestID: "req-1",
	}
}

func TestClassifySnapshotError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want models.SnapshotState
	}{
		{
			name: "snapshot not found code",
			err:  &smithy.GenericAPIError{Code: ErrCodeSnapshotNotFound, Message: "gone"},
			want: models.SnapshotNotFound,
		},
		{
			name: "malformed snapshot id",
			err:  &smithy.GenericAPIError{Code: ErrCodeSnapshotMalformed, Message: "bad id"},
			want: models.SnapshotNotFound,
		},
		{
			name: "client fault",
			err:  &smithy.GenericAPIError{Code: "UnauthorizedOperation", Fault: smithy.FaultClient},
			want: models.SnapshotNotFound,
		},
		{
			name: "wrapped in operation error",
			err: &smithy.OperationError{
				ServiceID:     "EC2",
				OperationName: "DescribeSnapshots",
				Err:           &smithy.GenericAPIError{Code: ErrCodeSnapshotNotFound},
			},
			want: models.SnapshotNotFound,
		},
		{
			name: "4xx response",
			err:  responseError(http.StatusForbidden),
			want: models.SnapshotNotFound,
		},
		{
			name: "server fault",
			err:  &smithy.GenericAPIError{Code: "InternalError", Fault: smithy.FaultServer},
			want: models.SnapshotCheckError,
		},
		{
			name: "5xx response",
			err:  responseError(http.StatusServiceUnavailable),
			want: models.SnapshotCheckError,
		},
		{
			name: "transport error",
			err:  fmt.Errorf("dial tcp: %w", errors.New("connection refused")),
			want: models.SnapshotCheckError,
		},
		{
			name: "context cancelled",
			err:  context.Canceled,
			want: models.SnapshotCheckError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySnapshotError(tt.err))
		})
	}
}

func TestCheckSnapshot(t *testing.T) {
	t.Run("empty id is not looked up", func(t *testing.T) {
		api := &mockEC2API{}
		client := NewEBSClientFromAPI(api, "us-east-1", nil)

		assert.Equal(t, models.SnapshotNone, client.CheckSnapshot(context.Background(), ""))
		assert.Empty(t, api.snapshotCalls)
	})

	t.Run("existing snapshot", func(t *testing.T) {
		api := &mockEC2API{describeSnapshotsFunc: snapshotLookup("snap-1")}
		client := NewEBSClientFromAPI(api, "us-east-1", nil)

		assert.Equal(t, models.SnapshotFound, client.CheckSnapshot(context.Background(), "snap-1"))
		assert.Equal(t, []string{"snap-1"}, api.snapshotCalls)
	})

	t.Run("deleted snapshot", func(t *testing.T) {
		api := &mockEC2API{describeSnapshotsFunc: snapshotLookup("snap-1")}
		client := NewEBSClientFromAPI(api, "us-east-1", nil)

		assert.Equal(t, models.SnapshotNotFound, client.CheckSnapshot(context.Background(), "snap-2"))
	})

	t.Run("empty response", func(t *testing.T) {
		api := &mockEC2API{
			describeSnapshotsFunc: func(ctx context.Context, params *ec2.DescribeSnapshotsInput) (*ec2.DescribeSnapshotsOutput, error) {
				return &ec2.DescribeSnapshotsOutput{Snapshots: []types.Snapshot{}}, nil
			},
		}
		client := NewEBSClientFromAPI(api, "us-east-1", nil)

		assert.Equal(t, models.SnapshotNotFound, client.CheckSnapshot(context.Background(), "snap-1"))
	})

	t.Run("service failure", func(t *testing.T) {
		api := &mockEC2API{
			describeSnapshotsFunc: func(ctx context.Context, params *ec2.DescribeSnapshotsInput) (*ec2.DescribeSnapshotsOutput, error) {
				return nil, &smithy.GenericAPIError{Code: "Unavailable", Fault: smithy.FaultServer}
			},
		}
		client := NewEBSClientFromAPI(api, "us-east-1", nil)

		assert.Equal(t, models.SnapshotCheckError, client.CheckSnapshot(context.Background(), "snap-1"))
	})

	t.Run("same snapshot is queried once per call", func(t *testing.T) {
		api := &mockEC2API{describeSnapshotsFunc: snapshotLookup("snap-1")}
		client := NewEBSClientFromAPI(api, "us-east-1", nil)

		client.CheckSnapshot(context.Background(), "snap-1")
		client.CheckSnapshot(context.Background(), "snap-1")
		assert.Equal(t, []string{"snap-1", "snap-1"}, api.snapshotCalls)
	})
}

func TestSnapshotStateString(t *testing.T) {
	assert.Equal(t, "none", models.SnapshotNone.String())
	assert.Equal(t, "found", models.SnapshotFound.String())
	assert.Equal(t, "not-found", models.SnapshotNotFound.String())
	assert.Equal(t, "check-error", models.SnapshotCheckError.String())
	assert.Equal(t, "unknown", models.SnapshotState(42).String())
}
