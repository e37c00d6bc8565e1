package model

import (
	"strings"
	"time"
)

// TrafficClass is the closed set of traffic patterns the pricing rules
// understand. Free-text labels are resolved onto it once, at ingestion.
type TrafficClass string

const (
	TrafficCommuter           TrafficClass = "commuter"
	TrafficPedestrianDowntown TrafficClass = "pedestrian_downtown"
	TrafficHighway            TrafficClass = "highway"
)

// ResolveTrafficClass maps a free-text traffic label onto a TrafficClass by
// case-insensitive substring match. Commuter wins over pedestrian/downtown
// when a label matches both; anything unmatched falls back to highway, the
// 24/7-visibility profile.
func ResolveTrafficClass(label string) TrafficClass {
	normalized := strings.ToLower(label)
	switch {
	case strings.Contains(normalized, "commuter"):
		return TrafficCommuter
	case strings.Contains(normalized, "pedestrian"), strings.Contains(normalized, "downtown"):
		return TrafficPedestrianDowntown
	default:
		return TrafficHighway
	}
}

type Billboard struct {
	ID           string       `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string       `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Location     string       `json:"location" bson:"location" validate:"required,min=2,max=100"`
	Address      string       `json:"address" bson:"address" validate:"required,min=2,max=200"`
	Traffic      string       `json:"traffic" bson:"traffic" validate:"required,min=2,max=60"`
	TrafficClass TrafficClass `json:"traffic_class" bson:"traffic_class" validate:"omitempty,oneof=commuter pedestrian_downtown highway"`
	Impressions  string       `json:"impressions" bson:"impressions" validate:"omitempty,max=60"`
	Price        float64      `json:"price" bson:"price" validate:"required,gt=0"`
	Image        string       `json:"image,omitempty" bson:"image,omitempty" validate:"omitempty,url"`
	Available    bool         `json:"available" bson:"available"`
	Specs        string       `json:"specs,omitempty" bson:"specs,omitempty" validate:"omitempty,max=100"`
	Rotation     string       `json:"rotation,omitempty" bson:"rotation,omitempty" validate:"omitempty,max=100"`
	OwnerID      string       `json:"owner_id" bson:"owner_id" validate:"required,min=1,max=60"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type BillboardUpdate struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Location    string   `json:"location,omitempty" validate:"omitempty,min=2,max=100"`
	Address     string   `json:"address,omitempty" validate:"omitempty,min=2,max=200"`
	Traffic     string   `json:"traffic,omitempty" validate:"omitempty,min=2,max=60"`
	Impressions string   `json:"impressions,omitempty" validate:"omitempty,max=60"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Image       string   `json:"image,omitempty" validate:"omitempty,url"`
	Available   *bool    `json:"available,omitempty"`
	Specs       string   `json:"specs,omitempty" validate:"omitempty,max=100"`
	Rotation    string   `json:"rotation,omitempty" validate:"omitempty,max=100"`
}

// BillboardFilter narrows billboard listings; zero values mean "no filter".
type BillboardFilter struct {
	Location      string
	Traffic       string
	MinPrice      *float64
	MaxPrice      *float64
	AvailableOnly bool
	OwnerID       string
}
