package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CallerIdentityAPI is the subset of the STS client used to identify the account
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Identity describes the principal the credentials resolve to
type Identity struct {
	Account string
	ARN     string
}

// GetCallerIdentity looks up the account and ARN behind the ambient credentials
func GetCallerIdentity(ctx context.Context, api CallerIdentityAPI) (Identity, error) {
	result, err := api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, fmt.Errorf("error getting caller identity: %w", err)
	}

	return Identity{
		Account: aws.ToString(result.Account),
		ARN:     aws.ToString(result.Arn),
	}, nil
}

// NewCallerIdentityAPI builds an STS client from cfg
func NewCallerIdentityAPI(cfg aws.Config) CallerIdentityAPI {
	return sts.NewFromConfig(cfg)
}
