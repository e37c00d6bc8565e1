package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"billboardbids/pkg/config"
	apperrors "billboardbids/pkg/errors"
	"billboardbids/pkg/model"

	"github.com/stripe/stripe-go/v78"
	checkoutsession "github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/webhook"
)

// BookingConfirmer is the slice of the bookings service payments need.
type BookingConfirmer interface {
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ConfirmPayment(ctx context.Context, id, paymentID string) (*model.Booking, error)
}

type CheckoutRequest struct {
	BookingID  string `json:"bookingId"`
	SuccessURL string `json:"successUrl,omitempty"`
	CancelURL  string `json:"cancelUrl,omitempty"`
}

type CheckoutSession struct {
	URL       string  `json:"url,omitempty"`
	SessionID string  `json:"sessionId,omitempty"`
	Demo      bool    `json:"demo,omitempty"`
	Message   string  `json:"message,omitempty"`
	BookingID string  `json:"bookingId,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
}

type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentService struct {
	bookings BookingConfirmer
	cfg      *config.Config

	// createSession is swappable for tests; defaults to the Stripe API.
	createSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func NewPaymentService(bookings BookingConfirmer, cfg *config.Config) PaymentService {
	if cfg.StripeConfigured() {
		stripe.Key = cfg.StripeSecretKey
	}
	return &paymentService{
		bookings:      bookings,
		cfg:           cfg,
		createSession: checkoutsession.New,
	}
}

func (s *paymentService) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	if req == nil || req.BookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID is required")
	}

	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != config.BookingPendingPayment {
		return nil, apperrors.Conflict("Booking is not awaiting payment")
	}

	amount := booking.Pricing.Total

	if !s.cfg.StripeConfigured() {
		s.cfg.Log.Warn("Stripe not configured, returning demo checkout response", "booking_id", booking.ID)
		return &CheckoutSession{
			Demo:      true,
			Message:   "Stripe not configured. Set STRIPE_SECRET_KEY environment variable.",
			BookingID: booking.ID,
			Amount:    amount,
		}, nil
	}

	successURL := req.SuccessURL
	if successURL == "" {
		successURL = s.cfg.BaseURL + "/success.html?session_id={CHECKOUT_SESSION_ID}"
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = s.cfg.BaseURL + "/?canceled=true"
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Billboard Ad: " + booking.BillboardName),
						Description: stripe.String(fmt.Sprintf("%s - %d hours starting %s at %s",
							booking.CampaignName, booking.Duration, booking.StartDate, booking.StartTime)),
					},
					UnitAmount: stripe.Int64(int64(math.Round(amount * 100))),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.AddMetadata("bookingId", booking.ID)
	params.AddMetadata("billboardId", booking.BillboardID)
	params.AddMetadata("campaignName", booking.CampaignName)
	params.AddMetadata("duration", fmt.Sprintf("%d", booking.Duration))
	params.AddMetadata("startDate", booking.StartDate)
	params.AddMetadata("startTime", booking.StartTime)

	session, err := s.createSession(params)
	if err != nil {
		s.cfg.Log.Error("Failed to create checkout session",
			"booking_id", booking.ID,
			"error", err.Error(),
		)
		return nil, apperrors.PaymentFailed("Payment processing failed", err)
	}

	s.cfg.Log.Info("Checkout session created",
		"booking_id", booking.ID,
		"session_id", session.ID,
		"amount", amount,
	)

	return &CheckoutSession{
		URL:       session.URL,
		SessionID: session.ID,
		BookingID: booking.ID,
		Amount:    amount,
	}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.parseEvent(payload, signature)
	if err != nil {
		return apperrors.InvalidInput("Invalid webhook payload: " + err.Error())
	}

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	case "payment_intent.succeeded":
		s.cfg.Log.Info("Payment intent succeeded", "event_id", event.ID)
	case "payment_intent.payment_failed":
		s.cfg.Log.Warn("Payment intent failed", "event_id", event.ID)
	default:
		s.cfg.Log.Debug("Unhandled webhook event type", "event_type", string(event.Type))
	}

	return nil
}

// parseEvent verifies the Stripe signature when a webhook secret is
// configured; without one the payload is trusted as-is, which is only
// acceptable for test deployments.
func (s *paymentService) parseEvent(payload []byte, signature string) (stripe.Event, error) {
	if s.cfg.StripeWebhookSecret != "" && s.cfg.StripeWebhookSecret != "whsec_demo" {
		return webhook.ConstructEvent(payload, signature, s.cfg.StripeWebhookSecret)
	}

	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return stripe.Event{}, fmt.Errorf("parse event: %w", err)
	}
	return event, nil
}

func (s *paymentService) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return apperrors.InvalidInput("Invalid checkout session payload")
	}

	bookingID := session.Metadata["bookingId"]
	if bookingID == "" {
		s.cfg.Log.Warn("Checkout session completed without booking metadata", "session_id", session.ID)
		return nil
	}

	paymentID := session.ID
	if session.PaymentIntent != nil && session.PaymentIntent.ID != "" {
		paymentID = session.PaymentIntent.ID
	}

	if _, err := s.bookings.ConfirmPayment(ctx, bookingID, paymentID); err != nil {
		s.cfg.Log.Error("Failed to confirm booking payment from webhook",
			"booking_id", bookingID,
			"session_id", session.ID,
			"error", err.Error(),
		)
		return err
	}

	s.cfg.Log.Info("Payment confirmed via webhook",
		"booking_id", bookingID,
		"payment_id", paymentID,
	)
	return nil
}
