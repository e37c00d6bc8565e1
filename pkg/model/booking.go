package model

import (
	"fmt"
	"time"
)

const (
	BookingDateLayout = "2006-01-02"
	BookingTimeLayout = "15:04"
)

// BookingPricing captures the totals charged for a booking. Subtotal is
// hourly rate times duration; the platform fee is applied on top.
type BookingPricing struct {
	HourlyRate  float64 `json:"hourly_rate" bson:"hourly_rate"`
	Subtotal    float64 `json:"subtotal" bson:"subtotal"`
	PlatformFee float64 `json:"platform_fee" bson:"platform_fee"`
	Total       float64 `json:"total" bson:"total"`
}

type Booking struct {
	ID             string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BillboardID    string         `json:"billboard_id" bson:"billboard_id" validate:"required,mongodb"`
	BillboardName  string         `json:"billboard_name" bson:"billboard_name" validate:"omitempty,max=100"`
	CampaignName   string         `json:"campaign_name" bson:"campaign_name" validate:"required,min=2,max=100"`
	StartDate      string         `json:"start_date" bson:"start_date" validate:"required,datetime=2006-01-02"`
	StartTime      string         `json:"start_time" bson:"start_time" validate:"required,datetime=15:04"`
	Duration       int            `json:"duration" bson:"duration" validate:"required,min=1,max=168"`
	CustomerEmail  string         `json:"customer_email" bson:"customer_email" validate:"omitempty,email"`
	CustomerName   string         `json:"customer_name" bson:"customer_name" validate:"omitempty,min=2,max=100"`
	CreativeURL    string         `json:"creative_url" bson:"creative_url" validate:"omitempty,max=500"`
	Pricing        BookingPricing `json:"pricing" bson:"pricing"`
	Status         string         `json:"status" bson:"status" validate:"omitempty,oneof=pending_payment confirmed cancelled"`
	ApprovalStatus string         `json:"approval_status" bson:"approval_status" validate:"omitempty,oneof=pending pending_review approved rejected"`
	ApprovalNotes  string         `json:"approval_notes,omitempty" bson:"approval_notes,omitempty"`
	PaymentID      string         `json:"payment_id,omitempty" bson:"payment_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt      time.Time      `json:"updated_at" bson:"updated_at" validate:"omitempty"`
	PaidAt         *time.Time     `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	ApprovedAt     *time.Time     `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
}

// StartsAt combines the stored date and time strings into the scheduled
// start instant, interpreted in the given location.
func (b *Booking) StartsAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(BookingDateLayout+" "+BookingTimeLayout, b.StartDate+" "+b.StartTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid booking start: %w", err)
	}
	return t, nil
}

type BookingUpdate struct {
	Status         string `json:"status,omitempty" validate:"omitempty,oneof=pending_payment confirmed cancelled"`
	PaymentID      string `json:"payment_id,omitempty"`
	ApprovalStatus string `json:"approval_status,omitempty" validate:"omitempty,oneof=pending pending_review approved rejected"`
	ApprovalNotes  string `json:"approval_notes,omitempty"`
}

// BookingFilter narrows booking listings; zero values mean "no filter".
type BookingFilter struct {
	BillboardID string
	Status      string
}
