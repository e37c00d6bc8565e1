package repository

import (
	"reflect"
	"testing"

	"billboardbids/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilter(t *testing.T) {
	minPrice := 50.0
	maxPrice := 150.0

	tests := []struct {
		name   string
		filter *model.BillboardFilter
		want   bson.M
	}{
		{
			name:   "nil filter matches everything",
			filter: nil,
			want:   bson.M{},
		},
		{
			name:   "empty filter matches everything",
			filter: &model.BillboardFilter{},
			want:   bson.M{},
		},
		{
			name:   "location and traffic",
			filter: &model.BillboardFilter{Location: "Los Angeles, CA", Traffic: "Commuter Traffic"},
			want:   bson.M{"location": "Los Angeles, CA", "traffic": "Commuter Traffic"},
		},
		{
			name:   "price range",
			filter: &model.BillboardFilter{MinPrice: &minPrice, MaxPrice: &maxPrice},
			want:   bson.M{"price": bson.M{"$gte": 50.0, "$lte": 150.0}},
		},
		{
			name:   "min price only",
			filter: &model.BillboardFilter{MinPrice: &minPrice},
			want:   bson.M{"price": bson.M{"$gte": 50.0}},
		},
		{
			name:   "available only with owner",
			filter: &model.BillboardFilter{AvailableOnly: true, OwnerID: "owner1"},
			want:   bson.M{"available": true, "owner_id": "owner1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildFilter(tt.filter)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}
