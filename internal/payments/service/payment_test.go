package service

import (
	"context"
	"testing"

	"billboardbids/pkg/config"
	apperrors "billboardbids/pkg/errors"
	"billboardbids/pkg/logger"
	"billboardbids/pkg/model"

	"github.com/stripe/stripe-go/v78"
)

type mockBookingConfirmer struct {
	getByIDFunc        func(ctx context.Context, id string) (*model.Booking, error)
	confirmPaymentFunc func(ctx context.Context, id, paymentID string) (*model.Booking, error)
}

func (m *mockBookingConfirmer) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingConfirmer) ConfirmPayment(ctx context.Context, id, paymentID string) (*model.Booking, error) {
	if m.confirmPaymentFunc != nil {
		return m.confirmPaymentFunc(ctx, id, paymentID)
	}
	return nil, nil
}

func testConfig(stripeKey string) *config.Config {
	return &config.Config{
		BaseURL:             "https://billboardbids.example",
		StripeSecretKey:     stripeKey,
		StripeWebhookSecret: "",
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
	}
}

func pendingBooking() *model.Booking {
	return &model.Booking{
		ID:            "65f100000000000000000001",
		BillboardID:   "65f000000000000000000001",
		BillboardName: "Downtown Plaza Premium",
		CampaignName:  "Spring Launch",
		StartDate:     "2026-03-17",
		StartTime:     "15:00",
		Duration:      4,
		Status:        config.BookingPendingPayment,
		Pricing: model.BookingPricing{
			HourlyRate:  75,
			Subtotal:    300,
			PlatformFee: 60,
			Total:       360,
		},
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	bookings := &mockBookingConfirmer{
		getByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			b := pendingBooking()
			if id != b.ID {
				return nil, apperrors.NotFoundWithID("Booking", id)
			}
			return b, nil
		},
	}

	t.Run("demo response when stripe unconfigured", func(t *testing.T) {
		svc := NewPaymentService(bookings, testConfig("sk_test_demo"))

		got, err := svc.CreateCheckoutSession(context.Background(), &CheckoutRequest{
			BookingID: "65f100000000000000000001",
		})
		if err != nil {
			t.Fatalf("CreateCheckoutSession returned error: %v", err)
		}
		if !got.Demo {
			t.Error("Demo = false, want demo mode without a real key")
		}
		if got.Amount != 360 {
			t.Errorf("Amount = %g, want booking total", got.Amount)
		}
		if got.BookingID != "65f100000000000000000001" {
			t.Errorf("BookingID = %q", got.BookingID)
		}
	})

	t.Run("builds line item from booking", func(t *testing.T) {
		var captured *stripe.CheckoutSessionParams
		svc := &paymentService{
			bookings: bookings,
			cfg:      testConfig("sk_live_real"),
			createSession: func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
				captured = params
				return &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.example/cs_test_123"}, nil
			},
		}

		got, err := svc.CreateCheckoutSession(context.Background(), &CheckoutRequest{
			BookingID: "65f100000000000000000001",
		})
		if err != nil {
			t.Fatalf("CreateCheckoutSession returned error: %v", err)
		}
		if got.SessionID != "cs_test_123" {
			t.Errorf("SessionID = %q", got.SessionID)
		}
		if got.URL == "" {
			t.Error("URL empty, want hosted checkout URL")
		}

		if captured == nil {
			t.Fatal("stripe session was not created")
		}
		item := captured.LineItems[0]
		if name := stripe.StringValue(item.PriceData.ProductData.Name); name != "Billboard Ad: Downtown Plaza Premium" {
			t.Errorf("line item name = %q", name)
		}
		if amount := stripe.Int64Value(item.PriceData.UnitAmount); amount != 36000 {
			t.Errorf("unit amount = %d, want 36000 cents", amount)
		}
		if got := captured.Metadata["bookingId"]; got != "65f100000000000000000001" {
			t.Errorf("metadata bookingId = %q", got)
		}
	})

	t.Run("stripe failure maps to payment error", func(t *testing.T) {
		svc := &paymentService{
			bookings: bookings,
			cfg:      testConfig("sk_live_real"),
			createSession: func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
				return nil, &stripe.Error{Msg: "card declined"}
			},
		}

		_, err := svc.CreateCheckoutSession(context.Background(), &CheckoutRequest{
			BookingID: "65f100000000000000000001",
		})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodePaymentFailed {
			t.Errorf("Code = %s, want %s", appErr.Code, apperrors.CodePaymentFailed)
		}
	})

	t.Run("confirmed booking cannot start checkout", func(t *testing.T) {
		confirmed := &mockBookingConfirmer{
			getByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
				b := pendingBooking()
				b.Status = config.BookingConfirmed
				return b, nil
			},
		}
		svc := NewPaymentService(confirmed, testConfig("sk_test_demo"))

		_, err := svc.CreateCheckoutSession(context.Background(), &CheckoutRequest{
			BookingID: "65f100000000000000000001",
		})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
			t.Errorf("Code = %s, want %s", appErr.Code, apperrors.CodeConflict)
		}
	})
}

func TestHandleWebhook(t *testing.T) {
	t.Run("checkout completion confirms the booking", func(t *testing.T) {
		var confirmedID, confirmedPayment string
		bookings := &mockBookingConfirmer{
			confirmPaymentFunc: func(ctx context.Context, id, paymentID string) (*model.Booking, error) {
				confirmedID = id
				confirmedPayment = paymentID
				return pendingBooking(), nil
			},
		}
		svc := NewPaymentService(bookings, testConfig("sk_test_demo"))

		payload := []byte(`{
			"id": "evt_1",
			"type": "checkout.session.completed",
			"data": {
				"object": {
					"id": "cs_test_123",
					"payment_intent": "pi_test_456",
					"metadata": {"bookingId": "65f100000000000000000001"}
				}
			}
		}`)

		if err := svc.HandleWebhook(context.Background(), payload, ""); err != nil {
			t.Fatalf("HandleWebhook returned error: %v", err)
		}
		if confirmedID != "65f100000000000000000001" {
			t.Errorf("confirmed booking = %q", confirmedID)
		}
		if confirmedPayment != "pi_test_456" {
			t.Errorf("payment ID = %q, want payment intent", confirmedPayment)
		}
	})

	t.Run("missing booking metadata is ignored", func(t *testing.T) {
		called := false
		bookings := &mockBookingConfirmer{
			confirmPaymentFunc: func(ctx context.Context, id, paymentID string) (*model.Booking, error) {
				called = true
				return nil, nil
			},
		}
		svc := NewPaymentService(bookings, testConfig("sk_test_demo"))

		payload := []byte(`{
			"id": "evt_2",
			"type": "checkout.session.completed",
			"data": {"object": {"id": "cs_test_124", "metadata": {}}}
		}`)

		if err := svc.HandleWebhook(context.Background(), payload, ""); err != nil {
			t.Fatalf("HandleWebhook returned error: %v", err)
		}
		if called {
			t.Error("ConfirmPayment called without booking metadata")
		}
	})

	t.Run("unrelated event types are acknowledged", func(t *testing.T) {
		svc := NewPaymentService(&mockBookingConfirmer{}, testConfig("sk_test_demo"))

		payload := []byte(`{"id": "evt_3", "type": "payment_intent.succeeded", "data": {"object": {}}}`)
		if err := svc.HandleWebhook(context.Background(), payload, ""); err != nil {
			t.Fatalf("HandleWebhook returned error: %v", err)
		}
	})

	t.Run("malformed payload rejected", func(t *testing.T) {
		svc := NewPaymentService(&mockBookingConfirmer{}, testConfig("sk_test_demo"))

		err := svc.HandleWebhook(context.Background(), []byte("not json"), "")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
			t.Errorf("Code = %s, want %s", appErr.Code, apperrors.CodeInvalidInput)
		}
	})
}
