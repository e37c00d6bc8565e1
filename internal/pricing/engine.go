package pricing

import (
	"math"
	"time"

	apperrors "billboardbids/pkg/errors"
	"billboardbids/pkg/model"
)

// DemandUnknown marks a demand lookup that failed. The demand factor
// degrades to neutral instead of failing the whole suggestion.
const DemandUnknown = -1

// Factor is one multiplicative price adjustment with its justification.
type Factor struct {
	Multiplier float64 `json:"multiplier"`
	Reason     string  `json:"reason"`
}

// Suggestion is the result of a price calculation.
type Suggestion struct {
	BasePrice      float64 `json:"basePrice"`
	SuggestedPrice int     `json:"suggestedPrice"`
	Multiplier     float64 `json:"multiplier"`
	Explanation    string  `json:"factors"`
	Confidence     float64 `json:"confidence"`
}

// Engine computes price suggestions. It holds no state between calls
// and is safe for concurrent use. The clock is injectable so urgency
// boundaries can be tested deterministically.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineAt returns an engine with a fixed clock.
func NewEngineAt(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// SuggestPrice calculates the suggested hourly price for a slot.
// demandCount is the number of existing bookings for the billboard on
// the target date, pre-resolved by the caller; pass DemandUnknown when
// the lookup failed.
func (e *Engine) SuggestPrice(billboard *model.Billboard, date, timeOfDay string, duration, demandCount int) (*Suggestion, error) {
	startsAt, hour, err := validateRequest(billboard, date, timeOfDay, duration)
	if err != nil {
		return nil, err
	}

	factors := []Factor{
		analyzeTimeOfDay(hour, billboard.TrafficClass),
		analyzeDayOfWeek(startsAt.Weekday(), billboard.TrafficClass),
		analyzeDuration(duration),
		analyzeDemand(demandCount),
		e.analyzeUrgency(startsAt),
		analyzeQuality(billboard),
	}

	product := 1.0
	for _, f := range factors {
		product *= f.Multiplier
	}
	clamped := math.Max(0.5, math.Min(2.0, product))

	return &Suggestion{
		BasePrice:      billboard.Price,
		SuggestedPrice: int(math.Round(billboard.Price * clamped)),
		Multiplier:     math.Round(clamped*100) / 100,
		Explanation:    explainFactors(factors),
		Confidence:     confidence(factors[3]),
	}, nil
}

func validateRequest(billboard *model.Billboard, date, timeOfDay string, duration int) (time.Time, int, error) {
	if billboard == nil {
		return time.Time{}, 0, apperrors.InvalidInput("billboard is required")
	}
	if billboard.Price <= 0 {
		return time.Time{}, 0, apperrors.InvalidInput("billboard price must be positive")
	}
	if duration < 1 {
		return time.Time{}, 0, apperrors.InvalidInput("duration must be a positive number of hours")
	}

	day, err := time.ParseInLocation(model.BookingDateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, 0, apperrors.InvalidInput("date must be formatted as YYYY-MM-DD")
	}
	clock, err := time.Parse(model.BookingTimeLayout, timeOfDay)
	if err != nil {
		return time.Time{}, 0, apperrors.InvalidInput("time must be formatted as HH:MM")
	}

	startsAt := day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
	return startsAt, clock.Hour(), nil
}

func analyzeTimeOfDay(hour int, traffic model.TrafficClass) Factor {
	switch traffic {
	case model.TrafficCommuter:
		switch {
		case hour >= 6 && hour <= 9:
			return Factor{1.4, "Morning rush hour (high commuter traffic)"}
		case hour >= 16 && hour <= 19:
			return Factor{1.5, "Evening rush hour (peak commuter traffic)"}
		case hour >= 10 && hour <= 15:
			return Factor{0.9, "Midday (lower commuter volume)"}
		case hour >= 22 || hour <= 5:
			return Factor{0.6, "Late night (minimal traffic)"}
		default:
			return Factor{1.0, "Standard commuter hours"}
		}

	case model.TrafficPedestrianDowntown:
		// Branch order matters: 06:00 counts as morning foot traffic,
		// not late night.
		switch {
		case hour >= 11 && hour <= 14:
			return Factor{1.3, "Lunch rush (high foot traffic)"}
		case hour >= 17 && hour <= 21:
			return Factor{1.4, "Evening activity (peak foot traffic)"}
		case hour >= 6 && hour <= 9:
			return Factor{1.1, "Morning foot traffic"}
		case hour >= 23 || hour <= 6:
			return Factor{0.5, "Late night (minimal pedestrians)"}
		default:
			return Factor{1.0, "Standard pedestrian hours"}
		}

	default:
		// Highway signage is visible around the clock.
		if hour >= 6 && hour <= 22 {
			return Factor{1.2, "Daylight hours (maximum visibility)"}
		}
		return Factor{0.8, "Night hours (reduced visibility)"}
	}
}

func analyzeDayOfWeek(day time.Weekday, traffic model.TrafficClass) Factor {
	isWeekend := day == time.Sunday || day == time.Saturday
	isFriday := day == time.Friday

	switch traffic {
	case model.TrafficCommuter:
		if isWeekend {
			return Factor{0.7, "Weekend (lower commuter traffic)"}
		}
		if isFriday {
			return Factor{1.2, "Friday (high traffic + weekend mood)"}
		}
		return Factor{1.0, "Weekday commuter traffic"}

	case model.TrafficPedestrianDowntown:
		if isWeekend {
			return Factor{1.3, "Weekend (high leisure traffic)"}
		}
		if isFriday {
			return Factor{1.2, "Friday evening activity"}
		}
		return Factor{1.0, "Weekday foot traffic"}

	default:
		if isFriday {
			return Factor{1.15, "Friday travel day"}
		}
		if isWeekend {
			return Factor{1.1, "Weekend road trips"}
		}
		return Factor{1.0, "Weekday highway traffic"}
	}
}

func analyzeDuration(duration int) Factor {
	if duration >= 8 {
		return Factor{0.9, "Volume discount (8+ hours)"}
	}
	if duration >= 4 {
		return Factor{0.95, "Extended booking discount (4+ hours)"}
	}
	return Factor{1.0, "Standard duration"}
}

func analyzeDemand(count int) Factor {
	if count == DemandUnknown {
		return Factor{1.0, "Standard availability"}
	}
	if count >= 3 {
		return Factor{1.3, "High demand (multiple bookings same day)"}
	}
	if count >= 1 {
		return Factor{1.15, "Moderate demand (existing bookings)"}
	}
	return Factor{1.0, "Available inventory"}
}

func (e *Engine) analyzeUrgency(startsAt time.Time) Factor {
	hoursUntil := startsAt.Sub(e.now()).Hours()

	if hoursUntil < 24 {
		return Factor{1.25, "Rush booking (<24 hours)"}
	}
	if hoursUntil < 72 {
		return Factor{1.1, "Short notice (<3 days)"}
	}
	if hoursUntil > 168 {
		return Factor{0.95, "Early bird booking (7+ days advance)"}
	}
	return Factor{1.0, "Standard booking window"}
}

func analyzeQuality(billboard *model.Billboard) Factor {
	if billboard.TrafficClass == model.TrafficHighway && billboard.Price >= 100 {
		return Factor{1.1, "Premium highway location"}
	}
	if billboard.TrafficClass == model.TrafficCommuter && billboard.Price >= 75 {
		return Factor{1.05, "High-traffic commuter route"}
	}
	return Factor{1.0, "Standard location quality"}
}

func explainFactors(factors []Factor) string {
	explanation := ""
	for _, f := range factors {
		if f.Multiplier == 1.0 {
			continue
		}
		if explanation != "" {
			explanation += " + "
		}
		explanation += f.Reason
	}
	if explanation == "" {
		return "Standard pricing applies"
	}
	return explanation
}

func confidence(demand Factor) float64 {
	if demand.Multiplier != 1.0 {
		return 0.85
	}
	return 0.75
}
