package pricing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/inconshreveable/log15"
)

// The AWS Pricing API is only available in us-east-1 and ap-south-1 regions
const pricingRegion = "us-east-1"

// apiTimeout bounds each GetProducts call
const apiTimeout = 5 * time.Second

// ProductsAPI is the subset of the Pricing client used by the estimator
type ProductsAPI interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// Estimator estimates the monthly cost of EBS volumes. Prices are cached for the
// lifetime of the Estimator only.
type Estimator struct {
	api ProductsAPI
	log log15.Logger

	mu    sync.RWMutex
	cache map[string]float64
	stats map[string]Stats
}

// NewEstimator creates an Estimator backed by the AWS Pricing API. When the API client
// cannot be configured, the estimator falls back to built-in prices.
func NewEstimator(ctx context.Context, logger log15.Logger) *Estimator {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(pricingRegion))
	if err != nil {
		logger.Warn("error loading AWS config for pricing API, using fallback pricing", "err", err)
		return NewEstimatorWithAPI(nil, logger)
	}

	logger.Debug("AWS Pricing API initialized",
		"region", pricingRegion,
		"endpoint", fmt.Sprintf("https://api.pricing.%s.amazonaws.com", pricingRegion))
	return NewEstimatorWithAPI(pricing.NewFromConfig(cfg), logger)
}

// NewEstimatorWithAPI creates an Estimator around api; a nil api means fallback pricing only
func NewEstimatorWithAPI(api ProductsAPI, logger log15.Logger) *Estimator {
	if logger == nil {
		logger = log15.New()
		logger.SetHandler(log15.DiscardHandler())
	}
	return &Estimator{
		api:   api,
		log:   logger.New("component", "pricing"),
		cache: make(map[string]float64),
		stats: make(map[string]Stats),
	}
}

// GetPricingProducts gets pricing products for serviceCode matching filters
func (e *Estimator) GetPricingProducts(ctx context.Context, serviceCode string, filters []types.Filter, resourceType, region string) ([]string, error) {
	if e.api == nil {
		return nil, fmt.Errorf("AWS pricing client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	input := &pricing.GetProductsInput{
		ServiceCode: aws.String(serviceCode),
		Filters:     filters,
		MaxResults:  aws.Int32(100),
	}

	resp, err := e.api.GetProducts(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("error calling AWS Pricing API: %w", err)
	}

	if len(resp.PriceList) == 0 {
		return nil, fmt.Errorf("no pricing found for %s in region %s", resourceType, region)
	}

	return resp.PriceList, nil
}
