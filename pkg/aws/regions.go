package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// ListRegions returns every region enabled for the account, in the order EC2 reports them
func ListRegions(ctx context.Context, api EC2API) ([]string, error) {
	result, err := api.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fmt.Errorf("error listing regions: %w", err)
	}

	regions := make([]string, 0, len(result.Regions))
	for _, region := range result.Regions {
		name := aws.ToString(region.RegionName)
		if name == "" {
			continue
		}
		regions = append(regions, name)
	}

	return regions, nil
}
