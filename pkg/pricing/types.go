package pricing

// PricingSource represents the source of pricing information
type PricingSource string

const (
	// PricingSourceAPI indicates pricing data came from AWS API
	PricingSourceAPI PricingSource = "API"

	// PricingSourceCache indicates pricing data came from cache
	PricingSourceCache PricingSource = "Cache"

	// PricingSourceDefault indicates pricing data came from hardcoded defaults
	PricingSourceDefault PricingSource = "Default"

	// PricingSourceNA indicates pricing data is not available
	PricingSourceNA PricingSource = "N/A"
)

// Default EBS volume prices in USD per GB-month
// These are fallback prices if Pricing API fails
var DefaultEBSPrices = map[string]map[string]float64{
	"us-east-1": { // US East (N. Virginia)
		"gp2":      0.10,
		"gp3":      0.08,
		"io1":      0.125,
		"io2":      0.125,
		"st1":      0.045,
		"sc1":      0.015,
		"standard": 0.05,
	},
	"us-west-2": { // US West (Oregon)
		"gp2":      0.10,
		"gp3":      0.08,
		"io1":      0.125,
		"io2":      0.125,
		"st1":      0.045,
		"sc1":      0.015,
		"standard": 0.05,
	},
	"eu-west-1": { // EU (Ireland)
		"gp2":      0.11,
		"gp3":      0.088,
		"io1":      0.138,
		"io2":      0.138,
		"st1":      0.05,
		"sc1":      0.0168,
		"standard": 0.055,
	},
	"ap-northeast-2": { // Asia Pacific (Seoul)
		"gp2":      0.114, // Seoul region is about 14% more expensive
		"gp3":      0.0912,
		"io1":      0.1424,
		"io2":      0.1424,
		"st1":      0.051,
		"sc1":      0.029,
		"standard": 0.057,
	},
}
