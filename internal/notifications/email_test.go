package notifications

import (
	"context"
	"strings"
	"testing"

	"billboardbids/pkg/config"
	"billboardbids/pkg/logger"
	"billboardbids/pkg/model"

	"gopkg.in/gomail.v2"
)

func testConfig() *config.Config {
	return &config.Config{
		SMTPHost:        "smtp.example.com",
		SMTPPort:        587,
		EmailFrom:       "BillboardBids <noreply@billboardbids.example>",
		OwnerAlertEmail: "owner@billboardbids.example",
		PlatformFeeRate: 0.20,
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
	}
}

func testBooking() *model.Booking {
	return &model.Booking{
		ID:            "65f100000000000000000001",
		BillboardID:   "65f000000000000000000001",
		BillboardName: "Downtown Plaza Premium",
		CampaignName:  "Spring Launch",
		StartDate:     "2026-03-17",
		StartTime:     "15:00",
		Duration:      4,
		CustomerEmail: "ads@example.com",
		CustomerName:  "Dana Reyes",
		Pricing: model.BookingPricing{
			HourlyRate:  75,
			Subtotal:    300,
			PlatformFee: 60,
			Total:       360,
		},
		Status:         config.BookingPendingPayment,
		ApprovalStatus: config.ApprovalPending,
	}
}

func capturingNotifier(t *testing.T) (*EmailNotifier, *[]*gomail.Message) {
	t.Helper()
	var sent []*gomail.Message
	n := NewEmailNotifier(testConfig())
	n.send = func(m ...*gomail.Message) error {
		sent = append(sent, m...)
		return nil
	}
	return n, &sent
}

func header(t *testing.T, m *gomail.Message, name string) string {
	t.Helper()
	values := m.GetHeader(name)
	if len(values) == 0 {
		t.Fatalf("header %s not set", name)
	}
	return values[0]
}

func TestBookingCreatedEmails(t *testing.T) {
	t.Run("sends confirmation and owner alert", func(t *testing.T) {
		n, sent := capturingNotifier(t)

		if err := n.BookingCreated(context.Background(), testBooking()); err != nil {
			t.Fatalf("BookingCreated returned error: %v", err)
		}
		if len(*sent) != 2 {
			t.Fatalf("sent %d emails, want 2", len(*sent))
		}

		confirmation := (*sent)[0]
		if got := header(t, confirmation, "To"); got != "ads@example.com" {
			t.Errorf("confirmation To = %q", got)
		}
		if got := header(t, confirmation, "Subject"); got != "Booking Confirmed: Downtown Plaza Premium" {
			t.Errorf("confirmation Subject = %q", got)
		}

		alert := (*sent)[1]
		if got := header(t, alert, "To"); got != "owner@billboardbids.example" {
			t.Errorf("alert To = %q", got)
		}
		if got := header(t, alert, "Subject"); got != "New Booking: Downtown Plaza Premium - Spring Launch" {
			t.Errorf("alert Subject = %q", got)
		}
	})

	t.Run("missing customer email still alerts owner", func(t *testing.T) {
		n, sent := capturingNotifier(t)

		booking := testBooking()
		booking.CustomerEmail = ""

		if err := n.BookingCreated(context.Background(), booking); err != nil {
			t.Fatalf("BookingCreated returned error: %v", err)
		}
		if len(*sent) != 1 {
			t.Fatalf("sent %d emails, want 1", len(*sent))
		}
		if got := header(t, (*sent)[0], "To"); got != "owner@billboardbids.example" {
			t.Errorf("To = %q, want owner alert only", got)
		}
	})

	t.Run("unconfigured SMTP is a no-op", func(t *testing.T) {
		cfg := testConfig()
		cfg.SMTPHost = ""
		n := NewEmailNotifier(cfg)

		if err := n.BookingCreated(context.Background(), testBooking()); err != nil {
			t.Fatalf("BookingCreated returned error: %v", err)
		}
	})
}

func TestCreativeReviewedEmails(t *testing.T) {
	t.Run("approved subject", func(t *testing.T) {
		n, sent := capturingNotifier(t)

		booking := testBooking()
		booking.ApprovalStatus = config.ApprovalApproved

		if err := n.CreativeReviewed(context.Background(), booking); err != nil {
			t.Fatalf("CreativeReviewed returned error: %v", err)
		}
		if len(*sent) != 1 {
			t.Fatalf("sent %d emails, want 1", len(*sent))
		}
		if got := header(t, (*sent)[0], "Subject"); got != "Creative Approved: Downtown Plaza Premium" {
			t.Errorf("Subject = %q", got)
		}
	})

	t.Run("rejected subject", func(t *testing.T) {
		n, sent := capturingNotifier(t)

		booking := testBooking()
		booking.ApprovalStatus = config.ApprovalRejected
		booking.ApprovalNotes = "Resolution too low"

		if err := n.CreativeReviewed(context.Background(), booking); err != nil {
			t.Fatalf("CreativeReviewed returned error: %v", err)
		}
		if got := header(t, (*sent)[0], "Subject"); got != "Creative Rejected: Downtown Plaza Premium" {
			t.Errorf("Subject = %q", got)
		}
	})
}

func TestEmailTemplates(t *testing.T) {
	n := NewEmailNotifier(testConfig())
	data := n.newEmailData(testBooking())

	t.Run("confirmation includes totals", func(t *testing.T) {
		var body strings.Builder
		if err := n.templates.ExecuteTemplate(&body, "booking_confirmation", data); err != nil {
			t.Fatalf("render failed: %v", err)
		}
		for _, want := range []string{"Spring Launch", "Downtown Plaza Premium", "$360.00", "4 hours"} {
			if !strings.Contains(body.String(), want) {
				t.Errorf("confirmation body missing %q", want)
			}
		}
	})

	t.Run("owner alert includes earnings split", func(t *testing.T) {
		var body strings.Builder
		if err := n.templates.ExecuteTemplate(&body, "owner_alert", data); err != nil {
			t.Fatalf("render failed: %v", err)
		}
		for _, want := range []string{"$240.00", "(80%)", "$60.00", "(20%)", "creative approval"} {
			if !strings.Contains(body.String(), want) {
				t.Errorf("owner alert body missing %q", want)
			}
		}
	})

	t.Run("earnings split follows the configured fee rate", func(t *testing.T) {
		cfg := testConfig()
		cfg.PlatformFeeRate = 0.25
		n := NewEmailNotifier(cfg)

		booking := testBooking()
		booking.Pricing = model.BookingPricing{
			HourlyRate:  75,
			Subtotal:    300,
			PlatformFee: 75,
			Total:       375,
		}
		data := n.newEmailData(booking)

		var body strings.Builder
		if err := n.templates.ExecuteTemplate(&body, "owner_alert", data); err != nil {
			t.Fatalf("render failed: %v", err)
		}
		for _, want := range []string{"$225.00", "(75%)", "$75.00", "(25%)"} {
			if !strings.Contains(body.String(), want) {
				t.Errorf("owner alert body missing %q", want)
			}
		}
	})

	t.Run("review includes owner notes", func(t *testing.T) {
		reviewed := data
		reviewed.Approved = false
		reviewed.Notes = "Resolution too low"

		var body strings.Builder
		if err := n.templates.ExecuteTemplate(&body, "creative_reviewed", reviewed); err != nil {
			t.Fatalf("render failed: %v", err)
		}
		for _, want := range []string{"Creative Rejected", "Resolution too low"} {
			if !strings.Contains(body.String(), want) {
				t.Errorf("review body missing %q", want)
			}
		}
	})
}
