package pricing

import (
	"testing"

	"billboardbids/pkg/model"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   model.PricingAnalytics
	}{
		{
			name:   "empty history yields all zeros",
			prices: nil,
			want:   model.PricingAnalytics{},
		},
		{
			name:   "single booking",
			prices: []float64{150},
			want: model.PricingAnalytics{
				BookingCount: 1,
				AveragePrice: 150,
				PriceRange:   model.PriceRange{Min: 150, Max: 150},
				TotalRevenue: 150,
			},
		},
		{
			name:   "mixed history rounds monetary fields",
			prices: []float64{99.5, 120.25, 80.75},
			want: model.PricingAnalytics{
				BookingCount: 3,
				AveragePrice: 100, // 300.5 / 3 = 100.1666...
				PriceRange:   model.PriceRange{Min: 81, Max: 120},
				TotalRevenue: 301, // 300.5 rounds up
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.prices)
			if got != tt.want {
				t.Errorf("Analyze(%v) = %+v, want %+v", tt.prices, got, tt.want)
			}
		})
	}
}
