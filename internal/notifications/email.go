// Package notifications sends the booking lifecycle emails over SMTP.
// When SMTP is not configured every send degrades to a logged no-op so
// the API keeps working in development.
package notifications

import (
	"context"
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	"billboardbids/pkg/config"
	"billboardbids/pkg/model"

	"gopkg.in/gomail.v2"
)

const scheduleLayout = "Monday, January 2, 2006 at 3:04 PM"

type EmailNotifier struct {
	cfg       *config.Config
	templates *template.Template

	// send is swappable for tests; defaults to DialAndSend.
	send func(m ...*gomail.Message) error
}

func NewEmailNotifier(cfg *config.Config) *EmailNotifier {
	n := &EmailNotifier{
		cfg:       cfg,
		templates: template.Must(template.New("emails").Parse(emailTemplates)),
	}

	if cfg.SMTPConfigured() {
		dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		n.send = dialer.DialAndSend
		cfg.Log.Info("Email notifier initialized", "smtp_host", cfg.SMTPHost)
	} else {
		cfg.Log.Warn("Email notifier not configured; notifications will be skipped")
	}

	return n
}

type emailData struct {
	CampaignName  string
	BillboardName string
	Schedule      string
	Duration      int
	Hours         string
	Total         string
	Earnings      string
	EarningsPct   string
	PlatformFee   string
	FeePct        string
	Approved      bool
	Notes         string
}

func (n *EmailNotifier) newEmailData(booking *model.Booking) emailData {
	feePct := math.Round(n.cfg.PlatformFeeRate * 100)
	data := emailData{
		CampaignName:  booking.CampaignName,
		BillboardName: booking.BillboardName,
		Duration:      booking.Duration,
		Hours:         "hours",
		Total:         fmt.Sprintf("$%.2f", booking.Pricing.Total),
		Earnings:      fmt.Sprintf("$%.2f", booking.Pricing.Subtotal-booking.Pricing.PlatformFee),
		EarningsPct:   fmt.Sprintf("%g%%", 100-feePct),
		PlatformFee:   fmt.Sprintf("$%.2f", booking.Pricing.PlatformFee),
		FeePct:        fmt.Sprintf("%g%%", feePct),
		Notes:         booking.ApprovalNotes,
	}
	if booking.Duration == 1 {
		data.Hours = "hour"
	}
	if startsAt, err := booking.StartsAt(time.Local); err == nil {
		data.Schedule = startsAt.Format(scheduleLayout)
	} else {
		data.Schedule = booking.StartDate + " " + booking.StartTime
	}
	return data
}

// BookingCreated emails the advertiser a confirmation and alerts the
// billboard owner that a creative needs review.
func (n *EmailNotifier) BookingCreated(ctx context.Context, booking *model.Booking) error {
	data := n.newEmailData(booking)

	if booking.CustomerEmail != "" {
		subject := "Booking Confirmed: " + booking.BillboardName
		if err := n.deliver(booking.CustomerEmail, subject, "booking_confirmation", data); err != nil {
			return fmt.Errorf("booking confirmation: %w", err)
		}
	} else {
		n.cfg.Log.Warn("No customer email for booking confirmation", "booking_id", booking.ID)
	}

	if n.cfg.OwnerAlertEmail != "" {
		subject := "New Booking: " + booking.BillboardName + " - " + booking.CampaignName
		if err := n.deliver(n.cfg.OwnerAlertEmail, subject, "owner_alert", data); err != nil {
			return fmt.Errorf("owner alert: %w", err)
		}
	}

	return nil
}

// CreativeReviewed emails the advertiser the owner's verdict, including
// any review notes.
func (n *EmailNotifier) CreativeReviewed(ctx context.Context, booking *model.Booking) error {
	if booking.CustomerEmail == "" {
		n.cfg.Log.Warn("No customer email for creative review notification", "booking_id", booking.ID)
		return nil
	}

	data := n.newEmailData(booking)
	data.Approved = booking.ApprovalStatus == config.ApprovalApproved

	subject := "Creative Rejected: " + booking.BillboardName
	if data.Approved {
		subject = "Creative Approved: " + booking.BillboardName
	}

	if err := n.deliver(booking.CustomerEmail, subject, "creative_reviewed", data); err != nil {
		return fmt.Errorf("creative review notification: %w", err)
	}
	return nil
}

func (n *EmailNotifier) deliver(to, subject, templateName string, data emailData) error {
	if n.send == nil {
		n.cfg.Log.Info("Email not sent (SMTP not configured)", "subject", subject, "to", to)
		return nil
	}

	var body strings.Builder
	if err := n.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("render %s: %w", templateName, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.EmailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	if err := n.send(m); err != nil {
		return fmt.Errorf("send %s to %s: %w", templateName, to, err)
	}

	n.cfg.Log.Info("Email sent", "subject", subject, "to", to)
	return nil
}

const emailTemplates = `
{{define "booking_confirmation"}}
<html>
<body style="font-family: sans-serif; color: #333;">
  <h1>Booking Confirmed</h1>
  <p>Your billboard booking has been received and is being processed.</p>
  <p><strong>Campaign:</strong> {{.CampaignName}}</p>
  <p><strong>Billboard:</strong> {{.BillboardName}}</p>
  <p><strong>Schedule:</strong> {{.Schedule}} ({{.Duration}} {{.Hours}})</p>
  <p><strong>Total Amount:</strong> {{.Total}}</p>
  <h3>Next Steps</h3>
  <ol>
    <li>Creative review: your creative is reviewed by the billboard owner</li>
    <li>Approval: you will receive an email once approved, typically within 24 hours</li>
    <li>Live: your ad goes live at the scheduled time</li>
  </ol>
  <p>BillboardBids - Making outdoor advertising accessible to everyone</p>
</body>
</html>
{{end}}

{{define "owner_alert"}}
<html>
<body style="font-family: sans-serif; color: #333;">
  <h1>New Booking Received</h1>
  <p>You have a new booking that requires creative approval.</p>
  <p><strong>Billboard:</strong> {{.BillboardName}}</p>
  <p><strong>Campaign:</strong> {{.CampaignName}}</p>
  <p><strong>Schedule:</strong> {{.Schedule}} ({{.Duration}} {{.Hours}})</p>
  <p><strong>Your Earnings ({{.EarningsPct}}):</strong> {{.Earnings}}</p>
  <p><strong>Platform fee:</strong> {{.PlatformFee}} ({{.FeePct}})</p>
  <p>Action required: please review and approve the creative within 24 hours.</p>
  <p>BillboardBids - Helping you maximize billboard revenue</p>
</body>
</html>
{{end}}

{{define "creative_reviewed"}}
<html>
<body style="font-family: sans-serif; color: #333;">
  {{if .Approved}}
  <h1>Creative Approved</h1>
  <p>Great news! Your creative has been approved and your ad will go live as scheduled.</p>
  {{else}}
  <h1>Creative Rejected</h1>
  <p>Your creative has been rejected. Please review the feedback below and submit a revised version.</p>
  {{end}}
  <p><strong>Campaign:</strong> {{.CampaignName}}</p>
  <p><strong>Billboard:</strong> {{.BillboardName}}</p>
  <p><strong>Scheduled Start:</strong> {{.Schedule}}</p>
  {{if .Notes}}<p><strong>Feedback from owner:</strong> {{.Notes}}</p>{{end}}
  <p>BillboardBids</p>
</body>
</html>
{{end}}
`
