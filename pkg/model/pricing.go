package model

// PricingAnalytics aggregates historical paid prices for one billboard.
// Monetary fields are rounded to whole currency units; a billboard without
// history yields the zero value.
type PricingAnalytics struct {
	BookingCount int        `json:"bookingCount"`
	AveragePrice int        `json:"averagePrice"`
	PriceRange   PriceRange `json:"priceRange"`
	TotalRevenue int        `json:"totalRevenue"`
}

type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}
