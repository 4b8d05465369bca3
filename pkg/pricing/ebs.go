package pricing

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
)

// MonthlyCost estimates the monthly cost of an EBS volume and reports where the price came from
func (e *Estimator) MonthlyCost(ctx context.Context, volumeType string, sizeGB int, region string) (float64, PricingSource) {
	price, source := e.GetEBSVolumePrice(ctx, volumeType, region)
	if source == PricingSourceNA {
		return 0, source
	}
	return float64(sizeGB) * price, source
}

// GetEBSVolumePrice returns the price per GB-month for a given EBS volume type and region
func (e *Estimator) GetEBSVolumePrice(ctx context.Context, volumeType, region string) (float64, PricingSource) {
	cacheKey := fmt.Sprintf("ebs:%s:%s", volumeType, region)

	// Check cache first
	e.mu.RLock()
	price, found := e.cache[cacheKey]
	e.mu.RUnlock()
	if found {
		e.recordStat(region, func(s *Stats) { s.Cache++ })
		return price, PricingSourceCache
	}

	price, err := e.getEBSPriceFromAPI(ctx, volumeType, region)
	if err == nil {
		e.recordStat(region, func(s *Stats) { s.Success++ })

		e.mu.Lock()
		e.cache[cacheKey] = price
		e.mu.Unlock()

		return price, PricingSourceAPI
	}

	e.log.Debug("error getting EBS price from API, using fallback pricing",
		"volume_type", volumeType, "region", region, "err", err)
	e.recordStat(region, func(s *Stats) { s.Failure++ })

	if price, ok := DefaultEBSPrice(volumeType, region); ok {
		return price, PricingSourceDefault
	}
	return 0, PricingSourceNA
}

// DefaultEBSPrice looks up the built-in price, falling back to gp2 and then to us-east-1
func DefaultEBSPrice(volumeType, region string) (float64, bool) {
	regionPrices, found := DefaultEBSPrices[region]
	if !found {
		regionPrices, found = DefaultEBSPrices["us-east-1"]
		if !found {
			return 0, false
		}
	}

	if price, ok := regionPrices[volumeType]; ok {
		return price, true
	}
	if price, ok := regionPrices["gp2"]; ok {
		return price, true
	}
	return 0, false
}

// getEBSPriceFromAPI retrieves EBS volume pricing from the AWS Pricing API
func (e *Estimator) getEBSPriceFromAPI(ctx context.Context, volumeType, region string) (float64, error) {
	filters := []types.Filter{
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("volumeType"),
			Value: aws.String(mapVolumeTypeToAPIValue(volumeType)),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("location"),
			Value: aws.String(GetRegionDescriptiveName(region)),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("productFamily"),
			Value: aws.String("Storage"),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("regionCode"),
			Value: aws.String(region),
		},
	}

	products, err := e.GetPricingProducts(ctx, "AmazonEC2", filters, "EBS "+volumeType, region)
	if err != nil {
		return 0, err
	}

	// gp2 and gp3 share a volumeType filter value, so match on the API name
	for _, product := range products {
		if volumeAPIName(product) == volumeType {
			return ExtractGBMonthPrice(product)
		}
	}

	return 0, fmt.Errorf("no exact match found for EBS volume type %s in region %s", volumeType, region)
}
