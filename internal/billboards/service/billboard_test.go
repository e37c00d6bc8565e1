package service

import (
	"context"
	"errors"
	"testing"

	billboarderrors "billboardbids/internal/billboards/errors"
	"billboardbids/internal/billboards/validator"
	"billboardbids/pkg/config"
	mongotx "billboardbids/pkg/db/mongo"
	apperrors "billboardbids/pkg/errors"
	"billboardbids/pkg/logger"
	"billboardbids/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockBillboardRepository struct {
	createFunc         func(ctx context.Context, billboard *model.Billboard) error
	findByIDFunc       func(ctx context.Context, id string) (*model.Billboard, error)
	findWithFilterFunc func(ctx context.Context, filter *model.BillboardFilter, limit int, offset int64) ([]*model.Billboard, error)
	updateFunc         func(ctx context.Context, id string, billboard *model.Billboard) (*mongo.UpdateResult, error)
	deleteFunc         func(ctx context.Context, id string) error
	capturedBillboard  *model.Billboard
	txCalls            int
}

func (m *mockBillboardRepository) Create(ctx context.Context, billboard *model.Billboard) error {
	m.capturedBillboard = billboard
	if m.createFunc != nil {
		return m.createFunc(ctx, billboard)
	}
	billboard.ID = "65f000000000000000000001"
	return nil
}

func (m *mockBillboardRepository) FindByID(ctx context.Context, id string) (*model.Billboard, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, billboarderrors.ErrNotFound
}

func (m *mockBillboardRepository) FindWithFilter(ctx context.Context, filter *model.BillboardFilter, limit int, offset int64) ([]*model.Billboard, error) {
	if m.findWithFilterFunc != nil {
		return m.findWithFilterFunc(ctx, filter, limit, offset)
	}
	return []*model.Billboard{}, nil
}

func (m *mockBillboardRepository) CountWithFilter(ctx context.Context, filter *model.BillboardFilter) (int64, error) {
	return 0, nil
}

func (m *mockBillboardRepository) Update(ctx context.Context, id string, billboard *model.Billboard) (*mongo.UpdateResult, error) {
	m.capturedBillboard = billboard
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, billboard)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockBillboardRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBillboardRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	m.txCalls++
	sessCtx := mongo.NewSessionContext(context.Background(), nil)
	return fn(sessCtx)
}

type mockBookingCanceller struct {
	cancelFunc func(ctx context.Context, billboardID string) (int64, error)
	cancelled  []string
	inSession  bool
}

func (m *mockBookingCanceller) CancelActiveByBillboard(ctx context.Context, billboardID string) (int64, error) {
	m.cancelled = append(m.cancelled, billboardID)
	_, m.inSession = ctx.(mongo.SessionContext)
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, billboardID)
	}
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
	}
}

func validBillboard() *model.Billboard {
	return &model.Billboard{
		Name:        "I-10 East Commuter",
		Location:    "Los Angeles, CA",
		Address:     "I-10 Eastbound, Mile 23",
		Traffic:     "Commuter Traffic",
		Impressions: "85K daily impressions",
		Price:       75,
		Available:   true,
		OwnerID:     "owner1",
	}
}

func newTestService(repo *mockBillboardRepository) BillboardService {
	return newTestServiceWithBookings(repo, &mockBookingCanceller{})
}

func newTestServiceWithBookings(repo *mockBillboardRepository, bookings *mockBookingCanceller) BillboardService {
	cfg := testConfig()
	return NewBillboardService(repo, validator.NewBillboardValidator(cfg.Log), bookings, cfg)
}

func TestCreate(t *testing.T) {
	t.Run("resolves traffic class from label", func(t *testing.T) {
		repo := &mockBillboardRepository{}
		svc := newTestService(repo)

		bb := validBillboard()
		if err := svc.Create(context.Background(), bb); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if bb.TrafficClass != model.TrafficCommuter {
			t.Errorf("TrafficClass = %q, want %q", bb.TrafficClass, model.TrafficCommuter)
		}
		if bb.ID == "" {
			t.Error("expected assigned ID")
		}
	})

	t.Run("unknown label falls back to highway", func(t *testing.T) {
		repo := &mockBillboardRepository{}
		svc := newTestService(repo)

		bb := validBillboard()
		bb.Traffic = "Scenic Byway"
		if err := svc.Create(context.Background(), bb); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if bb.TrafficClass != model.TrafficHighway {
			t.Errorf("TrafficClass = %q, want %q", bb.TrafficClass, model.TrafficHighway)
		}
	})

	t.Run("sanitizes whitespace", func(t *testing.T) {
		repo := &mockBillboardRepository{}
		svc := newTestService(repo)

		bb := validBillboard()
		bb.Name = "  I-10   East  Commuter  "
		if err := svc.Create(context.Background(), bb); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if bb.Name != "I-10 East Commuter" {
			t.Errorf("Name = %q, want normalized whitespace", bb.Name)
		}
	})

	t.Run("rejects invalid billboard", func(t *testing.T) {
		repo := &mockBillboardRepository{}
		svc := newTestService(repo)

		bb := validBillboard()
		bb.Price = 0
		err := svc.Create(context.Background(), bb)
		if err == nil {
			t.Fatal("expected validation error, got nil")
		}
		if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
			t.Errorf("Code = %s, want %s", appErr.Code, apperrors.CodeValidation)
		}
	})
}

func TestGetByID(t *testing.T) {
	t.Run("maps repository not found", func(t *testing.T) {
		svc := newTestService(&mockBillboardRepository{})

		_, err := svc.GetByID(context.Background(), "65f000000000000000000099")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
			t.Errorf("Code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
		}
	})

	t.Run("maps invalid ID format", func(t *testing.T) {
		repo := &mockBillboardRepository{
			findByIDFunc: func(ctx context.Context, id string) (*model.Billboard, error) {
				return nil, billboarderrors.ErrInvalidID
			},
		}
		svc := newTestService(repo)

		_, err := svc.GetByID(context.Background(), "not-an-object-id")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
			t.Errorf("Code = %s, want %s", appErr.Code, apperrors.CodeInvalidInput)
		}
	})

	t.Run("rejects empty ID", func(t *testing.T) {
		svc := newTestService(&mockBillboardRepository{})

		_, err := svc.GetByID(context.Background(), "")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestUpdate(t *testing.T) {
	existing := validBillboard()
	existing.ID = "65f000000000000000000001"
	existing.TrafficClass = model.TrafficCommuter

	repoWithExisting := func() *mockBillboardRepository {
		return &mockBillboardRepository{
			findByIDFunc: func(ctx context.Context, id string) (*model.Billboard, error) {
				clone := *existing
				return &clone, nil
			},
		}
	}

	t.Run("changing traffic label re-resolves class", func(t *testing.T) {
		repo := repoWithExisting()
		svc := newTestService(repo)

		updated, err := svc.Update(context.Background(), existing.ID, &model.BillboardUpdate{
			Traffic: "Downtown Pedestrian Zone",
		})
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
		if updated.TrafficClass != model.TrafficPedestrianDowntown {
			t.Errorf("TrafficClass = %q, want %q", updated.TrafficClass, model.TrafficPedestrianDowntown)
		}
		if updated.Name != existing.Name {
			t.Errorf("Name changed unexpectedly to %q", updated.Name)
		}
	})

	t.Run("partial price update keeps other fields", func(t *testing.T) {
		repo := repoWithExisting()
		svc := newTestService(repo)

		newPrice := 95.0
		updated, err := svc.Update(context.Background(), existing.ID, &model.BillboardUpdate{Price: &newPrice})
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
		if updated.Price != 95 {
			t.Errorf("Price = %g, want 95", updated.Price)
		}
		if updated.Location != existing.Location {
			t.Errorf("Location changed unexpectedly to %q", updated.Location)
		}
	})

	t.Run("unknown billboard returns not found", func(t *testing.T) {
		svc := newTestService(&mockBillboardRepository{})

		_, err := svc.Update(context.Background(), "65f000000000000000000099", &model.BillboardUpdate{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
			t.Errorf("Code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
		}
	})
}

func TestDelete(t *testing.T) {
	t.Run("maps repository not found", func(t *testing.T) {
		repo := &mockBillboardRepository{
			deleteFunc: func(ctx context.Context, id string) error {
				return billboarderrors.ErrNotFound
			},
		}
		svc := newTestService(repo)

		err := svc.Delete(context.Background(), "65f000000000000000000099")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
			t.Errorf("Code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
		}
	})

	t.Run("deletes existing billboard", func(t *testing.T) {
		svc := newTestService(&mockBillboardRepository{})
		if err := svc.Delete(context.Background(), "65f000000000000000000001"); err != nil {
			t.Fatalf("Delete returned error: %v", err)
		}
	})

	t.Run("cancels dependent bookings in the delete transaction", func(t *testing.T) {
		repo := &mockBillboardRepository{}
		bookings := &mockBookingCanceller{
			cancelFunc: func(ctx context.Context, billboardID string) (int64, error) {
				return 2, nil
			},
		}
		svc := newTestServiceWithBookings(repo, bookings)

		if err := svc.Delete(context.Background(), "65f000000000000000000001"); err != nil {
			t.Fatalf("Delete returned error: %v", err)
		}
		if repo.txCalls != 1 {
			t.Errorf("ExecuteTransaction calls = %d, want 1", repo.txCalls)
		}
		if len(bookings.cancelled) != 1 || bookings.cancelled[0] != "65f000000000000000000001" {
			t.Errorf("cancelled billboards = %v, want the deleted billboard", bookings.cancelled)
		}
		if !bookings.inSession {
			t.Error("expected cancellation to run under the transaction session context")
		}
	})

	t.Run("cancellation failure aborts the delete", func(t *testing.T) {
		repo := &mockBillboardRepository{}
		bookings := &mockBookingCanceller{
			cancelFunc: func(ctx context.Context, billboardID string) (int64, error) {
				return 0, errors.New("no primary")
			},
		}
		svc := newTestServiceWithBookings(repo, bookings)

		err := svc.Delete(context.Background(), "65f000000000000000000001")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInternal {
			t.Errorf("Code = %s, want %s", appErr.Code, apperrors.CodeInternal)
		}
	})
}
