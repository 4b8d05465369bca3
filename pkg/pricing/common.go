package pricing

import (
	"fmt"
	"strconv"

	"github.com/younsl/volsweep/pkg/utils"
)

// GetRegionDescriptiveName returns the human-readable region name used in AWS Pricing API
func GetRegionDescriptiveName(region string) string {
	return utils.GetRegionDescriptiveName(region)
}

// ExtractGBMonthPrice extracts the on-demand USD price per GB-month from a price list entry
func ExtractGBMonthPrice(priceJSON string) (float64, error) {
	priceData, err := utils.ParseJSON(priceJSON)
	if err != nil {
		return 0, fmt.Errorf("error parsing pricing data: %w", err)
	}

	// The structure of the pricing data can be complex and may change
	terms, ok := priceData["terms"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("terms field not found or invalid")
	}

	onDemand, ok := terms["OnDemand"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("OnDemand field not found or invalid")
	}

	// Extract the first skuOffer
	skuOffer, err := utils.GetFirstMapValue(onDemand)
	if err != nil {
		return 0, fmt.Errorf("no SKU offer found")
	}

	skuOfferMap, ok := skuOffer.(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("SKU offer is not a map")
	}

	priceDimensions, ok := skuOfferMap["priceDimensions"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("priceDimensions field not found or invalid")
	}

	// Extract the first price dimension
	dimension, err := utils.GetFirstMapValue(priceDimensions)
	if err != nil {
		return 0, fmt.Errorf("no price dimension found")
	}

	dimensionMap, ok := dimension.(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("price dimension is not a map")
	}

	// Check that this is a per GB-month price
	unit, _ := dimensionMap["unit"].(string)
	if unit != "GB-Mo" && unit != "GB-month" {
		return 0, fmt.Errorf("unexpected pricing unit: %s", unit)
	}

	usd, err := utils.GetNestedString(dimensionMap, "pricePerUnit", "USD")
	if err != nil {
		return 0, fmt.Errorf("USD price not found or invalid")
	}

	price, err := strconv.ParseFloat(usd, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing price: %w", err)
	}

	return price, nil
}

// volumeAPIName extracts product.attributes.volumeApiName from a price list entry
func volumeAPIName(priceJSON string) string {
	priceData, err := utils.ParseJSON(priceJSON)
	if err != nil {
		return ""
	}
	name, err := utils.GetNestedString(priceData, "product", "attributes", "volumeApiName")
	if err != nil {
		return ""
	}
	return name
}

// mapVolumeTypeToAPIValue maps EBS volume types to their API filter values
func mapVolumeTypeToAPIValue(volumeType string) string {
	switch volumeType {
	case "gp2", "gp3":
		return "General Purpose"
	case "io1", "io2":
		return "Provisioned IOPS"
	case "st1":
		return "Throughput Optimized HDD"
	case "sc1":
		return "Cold HDD"
	case "standard":
		return "Magnetic"
	default:
		return "General Purpose" // Default value
	}
}
