package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	bookingerrors "billboardbids/internal/bookings/errors"
	"billboardbids/internal/bookings/repository"
	"billboardbids/internal/bookings/validator"
	"billboardbids/pkg/config"
	apperrors "billboardbids/pkg/errors"
	"billboardbids/pkg/kafka"
	"billboardbids/pkg/model"
	"billboardbids/pkg/sanitizer"
)

// BillboardGetter is the slice of the billboards service bookings need.
type BillboardGetter interface {
	GetByID(ctx context.Context, id string) (*model.Billboard, error)
}

// Notifier sends the booking lifecycle emails. Implementations must not
// block on slow SMTP servers longer than the request deadline allows.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
	CreativeReviewed(ctx context.Context, booking *model.Booking) error
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, filter *model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, update *model.BookingUpdate) (*model.Booking, error)
	SubmitCreative(ctx context.Context, id, creativeURL string) (*model.Booking, error)
	ReviewCreative(ctx context.Context, id string, approved bool, notes string) (*model.Booking, error)
	ConfirmPayment(ctx context.Context, id, paymentID string) (*model.Booking, error)
}

type bookingService struct {
	repo       repository.BookingRepository
	validator  *validator.BookingValidator
	billboards BillboardGetter
	notifier   Notifier
	publisher  kafka.Publisher
	cfg        *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	bookingValidator *validator.BookingValidator,
	billboards BillboardGetter,
	notifier Notifier,
	publisher kafka.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		validator:  bookingValidator,
		billboards: billboards,
		notifier:   notifier,
		publisher:  publisher,
		cfg:        cfg,
	}
}

// ComputePricing derives booking totals from the billboard's hourly rate.
// Values are rounded to cents so stored totals match what is charged.
func ComputePricing(hourlyRate float64, duration int, feeRate float64) model.BookingPricing {
	subtotal := roundCents(hourlyRate * float64(duration))
	platformFee := roundCents(subtotal * feeRate)
	return model.BookingPricing{
		HourlyRate:  hourlyRate,
		Subtotal:    subtotal,
		PlatformFee: platformFee,
		Total:       roundCents(subtotal + platformFee),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

var allowedTransitions = map[string][]string{
	config.BookingPendingPayment: {config.BookingConfirmed, config.BookingCancelled},
	config.BookingConfirmed:      {config.BookingCancelled},
}

func canTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, allowed := range allowedTransitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	if booking == nil {
		return nil, apperrors.InvalidInput("Booking data is required")
	}

	booking.CampaignName = sanitizer.NormalizeName(booking.CampaignName)
	booking.CustomerName = sanitizer.NormalizeName(booking.CustomerName)
	booking.CustomerEmail = sanitizer.NormalizeEmail(booking.CustomerEmail)

	billboard, err := s.billboards.GetByID(ctx, booking.BillboardID)
	if err != nil {
		return nil, err
	}

	booking.BillboardName = billboard.Name
	booking.Pricing = ComputePricing(billboard.Price, booking.Duration, s.cfg.PlatformFeeRate)
	booking.Status = config.BookingPendingPayment
	booking.ApprovalStatus = config.ApprovalPending

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err.Error())
		return nil, apperrors.Validation("Booking validation failed", map[string]any{
			"errors": err.Error(),
		})
	}

	if _, err := booking.StartsAt(time.Local); err != nil {
		return nil, apperrors.InvalidInput("Invalid start date or time")
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err.Error())
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created",
		"booking_id", booking.ID,
		"billboard_id", booking.BillboardID,
		"total", booking.Pricing.Total,
	)

	s.notify(ctx, booking, s.notifier.BookingCreated)
	s.publishEvent(ctx, kafka.EventBookingCreated, booking)

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID is required")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, id)
	}
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, filter *model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var (
		wg        sync.WaitGroup
		bookings  []*model.Booking
		total     int64
		findErr   error
		countErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		bookings, findErr = s.repo.FindWithFilter(ctx, filter, limit, offset)
	}()
	go func() {
		defer wg.Done()
		total, countErr = s.repo.CountWithFilter(ctx, filter)
	}()
	wg.Wait()

	if findErr != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", findErr.Error())
		return nil, 0, apperrors.Internal("Failed to retrieve bookings", findErr)
	}
	if countErr != nil {
		s.cfg.Log.Error("Failed to count bookings", "error", countErr.Error())
		return nil, 0, apperrors.Internal("Failed to retrieve bookings", countErr)
	}

	return bookings, total, nil
}

func (s *bookingService) Update(ctx context.Context, id string, update *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID is required")
	}
	if update == nil {
		return nil, apperrors.InvalidInput("Update data is required")
	}

	if err := s.validator.ValidateUpdate(update); err != nil {
		return nil, apperrors.Validation("Booking update validation failed", map[string]any{
			"errors": err.Error(),
		})
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, id)
	}

	previousStatus := booking.Status

	if update.Status != "" && update.Status != booking.Status {
		if !canTransition(booking.Status, update.Status) {
			return nil, apperrors.Conflict("Cannot change booking status from " + booking.Status + " to " + update.Status)
		}
		booking.Status = update.Status
	}
	if update.PaymentID != "" {
		booking.PaymentID = update.PaymentID
	}
	if booking.Status == config.BookingConfirmed && previousStatus != config.BookingConfirmed && booking.PaidAt == nil {
		now := time.Now().UTC()
		booking.PaidAt = &now
	}
	if update.ApprovalStatus != "" {
		booking.ApprovalStatus = update.ApprovalStatus
		if update.ApprovalStatus == config.ApprovalApproved && booking.ApprovedAt == nil {
			now := time.Now().UTC()
			booking.ApprovedAt = &now
		}
	}
	if update.ApprovalNotes != "" {
		booking.ApprovalNotes = sanitizer.TrimAndNormalize(update.ApprovalNotes)
	}

	if _, err := s.repo.Update(ctx, id, booking); err != nil {
		return nil, mapRepositoryError(err, id)
	}

	if booking.Status == config.BookingCancelled && previousStatus != config.BookingCancelled {
		s.publishEvent(ctx, kafka.EventBookingCancelled, booking)
	}

	return booking, nil
}

func (s *bookingService) SubmitCreative(ctx context.Context, id, creativeURL string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID is required")
	}
	creativeURL = sanitizer.TrimAndNormalize(creativeURL)
	if creativeURL == "" {
		return nil, apperrors.InvalidInput("Creative URL is required")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, id)
	}

	booking.CreativeURL = creativeURL
	booking.ApprovalStatus = config.ApprovalPendingReview

	if _, err := s.repo.Update(ctx, id, booking); err != nil {
		return nil, mapRepositoryError(err, id)
	}

	s.cfg.Log.Info("Creative submitted for review",
		"booking_id", booking.ID,
		"creative_url", creativeURL,
	)

	return booking, nil
}

func (s *bookingService) ReviewCreative(ctx context.Context, id string, approved bool, notes string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID is required")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, id)
	}

	if booking.ApprovalStatus != config.ApprovalPendingReview {
		return nil, apperrors.Conflict("Booking has no creative awaiting review")
	}

	if approved {
		booking.ApprovalStatus = config.ApprovalApproved
		now := time.Now().UTC()
		booking.ApprovedAt = &now
	} else {
		booking.ApprovalStatus = config.ApprovalRejected
	}
	booking.ApprovalNotes = sanitizer.TrimAndNormalize(notes)

	if _, err := s.repo.Update(ctx, id, booking); err != nil {
		return nil, mapRepositoryError(err, id)
	}

	s.cfg.Log.Info("Creative reviewed",
		"booking_id", booking.ID,
		"approval_status", booking.ApprovalStatus,
	)

	s.notify(ctx, booking, s.notifier.CreativeReviewed)
	s.publishEvent(ctx, kafka.EventCreativeReviewed, booking)

	return booking, nil
}

func (s *bookingService) ConfirmPayment(ctx context.Context, id, paymentID string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID is required")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, id)
	}

	// Payment webhooks retry; a second delivery for a confirmed booking
	// is a no-op, not an error.
	if booking.Status == config.BookingConfirmed {
		return booking, nil
	}

	if !canTransition(booking.Status, config.BookingConfirmed) {
		return nil, apperrors.Conflict("Cannot confirm payment for a " + booking.Status + " booking")
	}

	now := time.Now().UTC()
	booking.Status = config.BookingConfirmed
	booking.PaymentID = paymentID
	booking.PaidAt = &now

	if _, err := s.repo.Update(ctx, id, booking); err != nil {
		return nil, mapRepositoryError(err, id)
	}

	s.cfg.Log.Info("Booking payment confirmed",
		"booking_id", booking.ID,
		"payment_id", paymentID,
		"total", booking.Pricing.Total,
	)

	s.publishEvent(ctx, kafka.EventBookingPaid, booking)

	return booking, nil
}

// notify runs a notifier call best-effort; email failures never fail the
// request that triggered them.
func (s *bookingService) notify(ctx context.Context, booking *model.Booking, fn func(context.Context, *model.Booking) error) {
	if s.notifier == nil {
		return
	}
	if err := fn(ctx, booking); err != nil {
		s.cfg.Log.Warn("Failed to send booking notification",
			"booking_id", booking.ID,
			"error", err.Error(),
		)
	}
}

func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	event := kafka.BookingEvent{
		BookingID:      booking.ID,
		BillboardID:    booking.BillboardID,
		AdvertiserName: booking.CustomerName,
		StartDate:      booking.StartDate,
		StartTime:      booking.StartTime,
		Duration:       booking.Duration,
		TotalAmount:    booking.Pricing.Total,
		Status:         booking.Status,
		ApprovalStatus: booking.ApprovalStatus,
		OccurredAt:     time.Now().UTC(),
	}

	if err := s.publisher.PublishBookingEvent(ctx, eventType, event); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"booking_id", booking.ID,
			"event_type", eventType,
			"error", err.Error(),
		)
	}
}

func mapRepositoryError(err error, id string) error {
	switch {
	case errors.Is(err, bookingerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	default:
		return apperrors.Internal("Booking operation failed", err)
	}
}
