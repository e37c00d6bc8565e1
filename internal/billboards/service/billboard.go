package service

import (
	"context"
	"errors"
	"sync"

	billboarderrors "billboardbids/internal/billboards/errors"
	"billboardbids/internal/billboards/repository"
	"billboardbids/internal/billboards/validator"
	"billboardbids/pkg/config"
	apperrors "billboardbids/pkg/errors"
	"billboardbids/pkg/model"
	"billboardbids/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type BillboardService interface {
	Create(ctx context.Context, billboard *model.Billboard) error
	GetByID(ctx context.Context, id string) (*model.Billboard, error)
	GetAll(ctx context.Context, filter *model.BillboardFilter, limit int, offset int64) ([]*model.Billboard, int64, error)
	Update(ctx context.Context, id string, updates *model.BillboardUpdate) (*model.Billboard, error)
	Delete(ctx context.Context, id string) error
}

// BookingCanceller cancels the bookings that reference a billboard.
// Satisfied by the bookings repository.
type BookingCanceller interface {
	CancelActiveByBillboard(ctx context.Context, billboardID string) (int64, error)
}

type billboardService struct {
	repo      repository.BillboardRepository
	validator *validator.BillboardValidator
	bookings  BookingCanceller
	cfg       *config.Config
}

func NewBillboardService(
	repo repository.BillboardRepository,
	validator *validator.BillboardValidator,
	bookings BookingCanceller,
	cfg *config.Config,
) BillboardService {
	return &billboardService{
		repo:      repo,
		validator: validator,
		bookings:  bookings,
		cfg:       cfg,
	}
}

func (s *billboardService) Create(ctx context.Context, billboard *model.Billboard) error {
	s.sanitize(billboard)
	billboard.TrafficClass = model.ResolveTrafficClass(billboard.Traffic)

	if err := s.validate(billboard); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, billboard); err != nil {
		s.cfg.Log.Error("Failed to create billboard", "error", err)
		return apperrors.Internal("Failed to create billboard", err)
	}

	s.cfg.Log.Info("Billboard created successfully",
		"id", billboard.ID,
		"name", billboard.Name,
		"location", billboard.Location,
		"traffic_class", billboard.TrafficClass,
	)
	return nil
}

func (s *billboardService) GetByID(ctx context.Context, id string) (*model.Billboard, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Billboard ID cannot be empty")
	}

	billboard, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, billboarderrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Billboard", id)
		}
		if errors.Is(err, billboarderrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid billboard ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve billboard", err)
	}

	return billboard, nil
}

func (s *billboardService) GetAll(ctx context.Context, filter *model.BillboardFilter, limit int, offset int64) ([]*model.Billboard, int64, error) {
	var count int64
	var billboards []*model.Billboard
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountWithFilter(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count billboards", "error", errCount)
			errCount = apperrors.Internal("Failed to count billboards", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		billboards, errFind = s.repo.FindWithFilter(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list billboards", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve billboards", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return billboards, count, nil
}

func (s *billboardService) Update(ctx context.Context, id string, updates *model.BillboardUpdate) (*model.Billboard, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Billboard ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Billboard update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeBillboardUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return nil, err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, billboarderrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Billboard", id)
		}
		s.cfg.Log.Error("Failed to update billboard", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update billboard", err)
	}

	s.cfg.Log.Info("Billboard updated successfully", "id", id)
	return merged, nil
}

func (s *billboardService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Billboard ID cannot be empty")
	}

	// Delete and the cancellation of its bookings commit together; a
	// billboard must never disappear while active bookings point at it.
	var cancelled int64
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			return err
		}

		n, err := s.bookings.CancelActiveByBillboard(sessCtx, id)
		if err != nil {
			return err
		}
		cancelled = n
		return nil
	})
	if err != nil {
		if errors.Is(err, billboarderrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Billboard", id)
		}
		if errors.Is(err, billboarderrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid billboard ID format")
		}
		return apperrors.Internal("Failed to delete billboard", err)
	}

	s.cfg.Log.Info("Billboard deleted successfully", "id", id, "bookings_cancelled", cancelled)
	return nil
}

// --- Helpers ---

func (s *billboardService) sanitize(b *model.Billboard) {
	b.Name = sanitizer.NormalizeName(b.Name)
	b.Location = sanitizer.NormalizeLocation(b.Location)
	b.Address = sanitizer.TrimAndNormalize(b.Address)
	b.Traffic = sanitizer.TrimAndNormalize(b.Traffic)
	b.Impressions = sanitizer.TrimAndNormalize(b.Impressions)
}

func (s *billboardService) mergeBillboardUpdates(existing *model.Billboard, updates *model.BillboardUpdate) *model.Billboard {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Location != "" {
		merged.Location = updates.Location
	}
	if updates.Address != "" {
		merged.Address = updates.Address
	}
	if updates.Traffic != "" {
		merged.Traffic = updates.Traffic
		merged.TrafficClass = model.ResolveTrafficClass(updates.Traffic)
	}
	if updates.Impressions != "" {
		merged.Impressions = updates.Impressions
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.Image != "" {
		merged.Image = updates.Image
	}
	if updates.Available != nil {
		merged.Available = *updates.Available
	}
	if updates.Specs != "" {
		merged.Specs = updates.Specs
	}
	if updates.Rotation != "" {
		merged.Rotation = updates.Rotation
	}

	return &merged
}

func (s *billboardService) validate(billboard *model.Billboard) error {
	if err := s.validator.Validate(billboard); err != nil {
		s.cfg.Log.Warn("Billboard validation failed", "error", err)
		return apperrors.Validation("Billboard validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
