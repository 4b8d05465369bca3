package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/inconshreveable/log15"
	"github.com/younsl/volsweep/pkg/utils"
)

// imdsRegionTimeout bounds the instance metadata probe so it fails fast off EC2
const imdsRegionTimeout = 2 * time.Second

// EC2API is the subset of the EC2 client used by volsweep
type EC2API interface {
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
	DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	DescribeSnapshots(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error)
}

// RegionMetadataAPI looks up the region of the instance we are running on
type RegionMetadataAPI interface {
	GetRegion(ctx context.Context, params *imds.GetRegionInput, optFns ...func(*imds.Options)) (*imds.GetRegionOutput, error)
}

// EBSClient struct for a region-scoped EC2 client
type EBSClient struct {
	api    EC2API
	region string
	log    log15.Logger
}

// LoadConfig loads the default AWS configuration, scoped to region when one is given
func LoadConfig(ctx context.Context, region string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithEC2IMDSClientEnableState(imds.ClientEnabled),
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("error loading AWS config: %w", err)
	}
	return cfg, nil
}

// NewEBSClient creates a new EBSClient for region using the ambient credential chain
func NewEBSClient(ctx context.Context, region string, logger log15.Logger) (*EBSClient, error) {
	cfg, err := LoadConfig(ctx, region)
	if err != nil {
		return nil, err
	}

	return NewEBSClientFromAPI(ec2.NewFromConfig(cfg), region, logger), nil
}

// NewEBSClientFromAPI wraps an existing EC2 API implementation
func NewEBSClientFromAPI(api EC2API, region string, logger log15.Logger) *EBSClient {
	if logger == nil {
		logger = log15.New()
		logger.SetHandler(log15.DiscardHandler())
	}
	return &EBSClient{
		api:    api,
		region: region,
		log:    logger.New("region", region),
	}
}

// NewEC2API builds an EC2 client from cfg
func NewEC2API(cfg aws.Config) EC2API {
	return ec2.NewFromConfig(cfg)
}

// Region returns the region the client is scoped to
func (c *EBSClient) Region() string {
	return c.region
}

// LoadHomeConfig loads the configuration used for account-wide calls (region listing,
// caller identity). Its region comes from the shared config or environment, then from
// instance metadata, and finally from the built-in default.
func LoadHomeConfig(ctx context.Context, logger log15.Logger) (aws.Config, error) {
	cfg, err := LoadConfig(ctx, "")
	if err != nil {
		return aws.Config{}, err
	}

	cfg.Region = ResolveHomeRegion(ctx, cfg.Region, imds.NewFromConfig(cfg), logger)
	return cfg, nil
}

// ResolveHomeRegion picks the region for the unscoped client
func ResolveHomeRegion(ctx context.Context, configured string, metadata RegionMetadataAPI, logger log15.Logger) string {
	if configured != "" {
		return configured
	}

	if metadata != nil {
		probeCtx, cancel := context.WithTimeout(ctx, imdsRegionTimeout)
		defer cancel()

		out, err := metadata.GetRegion(probeCtx, &imds.GetRegionInput{})
		if err == nil && out.Region != "" {
			if logger != nil {
				logger.Debug("home region from instance metadata", "region", out.Region)
			}
			return out.Region
		}
		if logger != nil {
			logger.Debug("instance metadata region unavailable", "err", err)
		}
	}

	return utils.GetDefaultRegion()
}
