package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	billboarderrors "billboardbids/internal/billboards/errors"
	"billboardbids/pkg/config"
	mongotx "billboardbids/pkg/db/mongo"
	"billboardbids/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Billboards"
)

type mongoBillboardRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type BillboardRepository interface {
	Create(ctx context.Context, billboard *model.Billboard) error
	FindByID(ctx context.Context, id string) (*model.Billboard, error)
	FindWithFilter(ctx context.Context, filter *model.BillboardFilter, limit int, offset int64) ([]*model.Billboard, error)
	CountWithFilter(ctx context.Context, filter *model.BillboardFilter) (int64, error)
	Update(ctx context.Context, id string, billboard *model.Billboard) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoBillboardRepository(cfg *config.Config) BillboardRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBillboardRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction; SessionContext cannot be wrapped without breaking
// transaction semantics.
func (r *mongoBillboardRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBillboardRepository) Create(ctx context.Context, billboard *model.Billboard) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	billboard.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, billboard)
	if err != nil {
		return fmt.Errorf("failed to create billboard: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		billboard.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBillboardRepository) FindByID(ctx context.Context, id string) (*model.Billboard, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", billboarderrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}

	var billboard model.Billboard
	err = r.collection.FindOne(ctx, filter).Decode(&billboard)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, billboarderrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find billboard: %w", err)
	}

	return &billboard, nil
}

func (r *mongoBillboardRepository) FindWithFilter(ctx context.Context, filter *model.BillboardFilter, limit int, offset int64) ([]*model.Billboard, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "price", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find billboards: %w", err)
	}
	defer cursor.Close(ctx)

	var billboards []*model.Billboard
	if err = cursor.All(ctx, &billboards); err != nil {
		return nil, fmt.Errorf("failed to decode billboards: %w", err)
	}

	return billboards, nil
}

func (r *mongoBillboardRepository) CountWithFilter(ctx context.Context, filter *model.BillboardFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count billboards: %w", err)
	}
	return count, nil
}

func buildFilter(f *model.BillboardFilter) bson.M {
	filter := bson.M{}
	if f == nil {
		return filter
	}

	if f.Location != "" {
		filter["location"] = f.Location
	}
	if f.Traffic != "" {
		filter["traffic"] = f.Traffic
	}
	if f.OwnerID != "" {
		filter["owner_id"] = f.OwnerID
	}
	if f.AvailableOnly {
		filter["available"] = true
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["price"] = price
	}

	return filter
}

func (r *mongoBillboardRepository) Update(ctx context.Context, id string, billboard *model.Billboard) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", billboarderrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"name":          billboard.Name,
			"location":      billboard.Location,
			"address":       billboard.Address,
			"traffic":       billboard.Traffic,
			"traffic_class": billboard.TrafficClass,
			"impressions":   billboard.Impressions,
			"price":         billboard.Price,
			"image":         billboard.Image,
			"available":     billboard.Available,
			"specs":         billboard.Specs,
			"rotation":      billboard.Rotation,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update billboard: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, billboarderrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoBillboardRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", billboarderrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete billboard: %w", err)
	}

	if result.DeletedCount == 0 {
		return billboarderrors.ErrNotFound
	}

	return nil
}

func (r *mongoBillboardRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
