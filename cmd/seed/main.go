// Seed inserts the sample billboard inventory when the collection is
// empty. Safe to run repeatedly.
package main

import (
	"context"
	"fmt"
	"time"

	"billboardbids/internal/billboards/repository"
	"billboardbids/pkg/config"
	"billboardbids/pkg/model"
)

const JobName = "billboard-seed"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting billboard seed job")
	seedBillboards(ctx, cfg)
	fmt.Println("Seed completed successfully.")
}

func seedBillboards(ctx context.Context, cfg *config.Config) {
	repo := repository.NewMongoBillboardRepository(cfg)

	count, err := repo.CountWithFilter(ctx, nil)
	if err != nil {
		cfg.Log.Fatal("Failed to count billboards", "error", err.Error())
	}
	if count > 0 {
		cfg.Log.Info("Billboards already present, skipping seed", "count", count)
		return
	}

	for _, billboard := range sampleBillboards() {
		billboard.TrafficClass = model.ResolveTrafficClass(billboard.Traffic)
		if err := repo.Create(ctx, billboard); err != nil {
			cfg.Log.Fatal("Failed to seed billboard", "name", billboard.Name, "error", err.Error())
		}
		cfg.Log.Info("Seeded billboard",
			"name", billboard.Name,
			"traffic_class", billboard.TrafficClass,
			"price", billboard.Price,
		)
	}
}

func sampleBillboards() []*model.Billboard {
	return []*model.Billboard{
		{
			Name:        "I-10 East Commuter",
			Location:    "Los Angeles, CA",
			Address:     "I-10 Eastbound, Mile 23",
			Traffic:     "Commuter Traffic",
			Impressions: "85K daily impressions",
			Price:       75,
			Image:       "https://images.unsplash.com/photo-1541888946425-d81bb19240f5?w=400&h=300&fit=crop",
			Available:   true,
			Specs:       "14' x 48' Digital LED",
			Rotation:    "15 second rotation (4x per minute)",
			OwnerID:     "owner1",
		},
		{
			Name:        "Downtown Austin Prime",
			Location:    "Austin, TX",
			Address:     "6th Street & Congress Ave",
			Traffic:     "Downtown",
			Impressions: "120K daily impressions",
			Price:       150,
			Image:       "https://images.unsplash.com/photo-1449824913935-59a10b8d2000?w=400&h=300&fit=crop",
			Available:   true,
			Specs:       "20' x 60' Digital LED",
			Rotation:    "10 second rotation (6x per minute)",
			OwnerID:     "owner2",
		},
		{
			Name:        "Highway 95 Southbound",
			Location:    "Miami, FL",
			Address:     "I-95 Southbound, Exit 12",
			Traffic:     "Highway",
			Impressions: "95K daily impressions",
			Price:       65,
			Image:       "https://images.unsplash.com/photo-1519501025264-65ba15a82390?w=400&h=300&fit=crop",
			Available:   true,
			Specs:       "12' x 40' Digital LED",
			Rotation:    "20 second rotation (3x per minute)",
			OwnerID:     "owner1",
		},
		{
			Name:        "Denver Tech Center",
			Location:    "Denver, CO",
			Address:     "I-25 & Belleview Ave",
			Traffic:     "Commuter Traffic",
			Impressions: "70K daily impressions",
			Price:       55,
			Image:       "https://images.unsplash.com/photo-1480714378408-67cf0d13bc1b?w=400&h=300&fit=crop",
			Available:   true,
			Specs:       "14' x 48' Digital LED",
			Rotation:    "15 second rotation (4x per minute)",
			OwnerID:     "owner3",
		},
		{
			Name:        "Sunset Blvd Premium",
			Location:    "Los Angeles, CA",
			Address:     "Sunset Blvd & Vine St",
			Traffic:     "Downtown",
			Impressions: "200K daily impressions",
			Price:       250,
			Image:       "https://images.unsplash.com/photo-1477959858617-67f85cf4f1df?w=400&h=300&fit=crop",
			Available:   true,
			Specs:       "30' x 80' Digital LED",
			Rotation:    "8 second rotation (7x per minute)",
			OwnerID:     "owner4",
		},
		{
			Name:        "Highway 183 North",
			Location:    "Austin, TX",
			Address:     "US-183 Northbound, Exit 45",
			Traffic:     "Highway",
			Impressions: "60K daily impressions",
			Price:       45,
			Image:       "https://images.unsplash.com/photo-1502082553048-f009c37129b9?w=400&h=300&fit=crop",
			Available:   true,
			Specs:       "12' x 36' Digital LED",
			Rotation:    "20 second rotation (3x per minute)",
			OwnerID:     "owner1",
		},
	}
}
