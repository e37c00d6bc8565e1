package pricing

import (
	"context"

	"billboardbids/pkg/config"
	apperrors "billboardbids/pkg/errors"
	"billboardbids/pkg/model"
)

// BillboardGetter resolves a billboard by ID, returning a typed
// not-found error for unknown identifiers.
type BillboardGetter interface {
	GetByID(ctx context.Context, id string) (*model.Billboard, error)
}

// DemandSource counts existing bookings for a billboard on a calendar date.
type DemandSource interface {
	CountByBillboardAndDate(ctx context.Context, billboardID, date string) (int64, error)
}

// HistorySource returns the paid totals of past bookings for a billboard.
type HistorySource interface {
	PaidPrices(ctx context.Context, billboardID string) ([]float64, error)
}

type Service interface {
	Suggest(ctx context.Context, billboardID, date, timeOfDay string, duration int) (*Suggestion, error)
	Analytics(ctx context.Context, billboardID string) (model.PricingAnalytics, error)
}

type pricingService struct {
	engine     *Engine
	billboards BillboardGetter
	demand     DemandSource
	history    HistorySource
	cfg        *config.Config
}

func NewService(engine *Engine, billboards BillboardGetter, demand DemandSource, history HistorySource, cfg *config.Config) Service {
	return &pricingService{
		engine:     engine,
		billboards: billboards,
		demand:     demand,
		history:    history,
		cfg:        cfg,
	}
}

func (s *pricingService) Suggest(ctx context.Context, billboardID, date, timeOfDay string, duration int) (*Suggestion, error) {
	if billboardID == "" {
		return nil, apperrors.InvalidInput("Billboard ID cannot be empty")
	}

	billboard, err := s.billboards.GetByID(ctx, billboardID)
	if err != nil {
		return nil, err
	}

	demandCount := DemandUnknown
	count, err := s.demand.CountByBillboardAndDate(ctx, billboardID, date)
	if err != nil {
		// Degrade to neutral demand rather than failing the suggestion.
		s.cfg.Log.Warn("Demand lookup failed, using neutral demand factor",
			"billboard_id", billboardID,
			"date", date,
			"error", err,
		)
	} else {
		demandCount = int(count)
	}

	suggestion, err := s.engine.SuggestPrice(billboard, date, timeOfDay, duration, demandCount)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Debug("Price suggestion computed",
		"billboard_id", billboardID,
		"date", date,
		"time", timeOfDay,
		"duration", duration,
		"demand_count", demandCount,
		"multiplier", suggestion.Multiplier,
		"suggested_price", suggestion.SuggestedPrice,
	)
	return suggestion, nil
}

func (s *pricingService) Analytics(ctx context.Context, billboardID string) (model.PricingAnalytics, error) {
	if billboardID == "" {
		return model.PricingAnalytics{}, apperrors.InvalidInput("Billboard ID cannot be empty")
	}

	if _, err := s.billboards.GetByID(ctx, billboardID); err != nil {
		return model.PricingAnalytics{}, err
	}

	prices, err := s.history.PaidPrices(ctx, billboardID)
	if err != nil {
		s.cfg.Log.Error("Failed to load booking history", "billboard_id", billboardID, "error", err)
		return model.PricingAnalytics{}, apperrors.Internal("Failed to load pricing analytics", err)
	}

	return Analyze(prices), nil
}
