package pricing

import (
	"math"

	"github.com/montanaflynn/stats"

	"billboardbids/pkg/model"
)

// Analyze aggregates historical paid prices for a billboard. An empty
// history yields the all-zero result rather than an error.
func Analyze(paidPrices []float64) model.PricingAnalytics {
	if len(paidPrices) == 0 {
		return model.PricingAnalytics{}
	}

	avg, _ := stats.Mean(paidPrices)
	min, _ := stats.Min(paidPrices)
	max, _ := stats.Max(paidPrices)
	sum, _ := stats.Sum(paidPrices)

	return model.PricingAnalytics{
		BookingCount: len(paidPrices),
		AveragePrice: int(math.Round(avg)),
		PriceRange: model.PriceRange{
			Min: int(math.Round(min)),
			Max: int(math.Round(max)),
		},
		TotalRevenue: int(math.Round(sum)),
	}
}
