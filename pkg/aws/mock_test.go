package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// mockEC2API implements EC2API for testing
type mockEC2API struct {
	describeRegionsFunc   func(ctx context.Context, params *ec2.DescribeRegionsInput) (*ec2.DescribeRegionsOutput, error)
	describeVolumesFunc   func(ctx context.Context, params *ec2.DescribeVolumesInput) (*ec2.DescribeVolumesOutput, error)
	describeSnapshotsFunc func(ctx context.Context, params *ec2.DescribeSnapshotsInput) (*ec2.DescribeSnapshotsOutput, error)

	volumeCalls   int
	snapshotCalls []string
}

func (m *mockEC2API) DescribeRegions(
	ctx context.Context,
	params *ec2.DescribeRegionsInput,
	optFns ...func(*ec2.Options),
) (*ec2.DescribeRegionsOutput, error) {
	if m.describeRegionsFunc != nil {
		return m.describeRegionsFunc(ctx, params)
	}
	return nil, fmt.Errorf("DescribeRegions not implemented")
}

func (m *mockEC2API) DescribeVolumes(
	ctx context.Context,
	params *ec2.DescribeVolumesInput,
	optFns ...func(*ec2.Options),
) (*ec2.DescribeVolumesOutput, error) {
	m.volumeCalls++
	if m.describeVolumesFunc != nil {
		return m.describeVolumesFunc(ctx, params)
	}
	return nil, fmt.Errorf("DescribeVolumes not implemented")
}

func (m *mockEC2API) DescribeSnapshots(
	ctx context.Context,
	params *ec2.DescribeSnapshotsInput,
	optFns ...func(*ec2.Options),
) (*ec2.DescribeSnapshotsOutput, error) {
	m.snapshotCalls = append(m.snapshotCalls, params.SnapshotIds...)
	if m.describeSnapshotsFunc != nil {
		return m.describeSnapshotsFunc(ctx, params)
	}
	return nil, fmt.Errorf("DescribeSnapshots not implemented")
}

type mockRegionMetadata struct {
	region string
	err    error
}

func (m *mockRegionMetadata) GetRegion(
	ctx context.Context,
	params *imds.GetRegionInput,
	optFns ...func(*imds.Options),
) (*imds.GetRegionOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &imds.GetRegionOutput{Region: m.region}, nil
}

type mockCallerIdentityAPI struct {
	out *sts.GetCallerIdentityOutput
	err error
}

func (m *mockCallerIdentityAPI) GetCallerIdentity(
	ctx context.Context,
	params *sts.GetCallerIdentityInput,
	optFns ...func(*sts.Options),
) (*sts.GetCallerIdentityOutput, error) {
	return m.out, m.err
}
