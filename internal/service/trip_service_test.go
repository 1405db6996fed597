package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/trip-service/internal/domain"
	apperrors "github.com/spec-kit/trip-service/pkg/util"
)

type mockTripRepository struct {
	trips  map[int64]*domain.Trip
	nextID int64
}

func newMockTripRepository() *mockTripRepository {
	return &mockTripRepository{trips: make(map[int64]*domain.Trip), nextID: 1}
}

func (m *mockTripRepository) Create(_ context.Context, trip *domain.Trip) error {
	trip.ID = m.nextID
	m.nextID++
	copied := *trip
	m.trips[trip.ID] = &copied
	return nil
}

func (m *mockTripRepository) Update(_ context.Context, trip *domain.Trip) error {
	if _, ok := m.trips[trip.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *trip
	m.trips[trip.ID] = &copied
	return nil
}

func (m *mockTripRepository) GetByID(_ context.Context, id int64) (*domain.Trip, error) {
	trip, ok := m.trips[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *trip
	return &copied, nil
}

func (m *mockTripRepository) List(_ context.Context) ([]domain.Trip, error) {
	out := make([]domain.Trip, 0, len(m.trips))
	for id := int64(1); id < m.nextID; id++ {
		if trip, ok := m.trips[id]; ok {
			out = append(out, *trip)
		}
	}
	return out, nil
}

func (m *mockTripRepository) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Trip, error) {
	all, _ := m.List(ctx)
	var out []domain.Trip
	for _, trip := range all {
		if trip.Category == category {
			out = append(out, trip)
		}
	}
	return out, nil
}

func (m *mockTripRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.trips[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.trips, id)
	return nil
}

type mockGuideRepository struct {
	guides map[int64]*domain.Guide
	nextID int64
}

func newMockGuideRepository() *mockGuideRepository {
	return &mockGuideRepository{guides: make(map[int64]*domain.Guide), nextID: 1}
}

func (m *mockGuideRepository) Create(_ context.Context, guide *domain.Guide) error {
	guide.ID = m.nextID
	m.nextID++
	copied := *guide
	m.guides[guide.ID] = &copied
	return nil
}

func (m *mockGuideRepository) Update(_ context.Context, guide *domain.Guide) error {
	if _, ok := m.guides[guide.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *guide
	m.guides[guide.ID] = &copied
	return nil
}

func (m *mockGuideRepository) GetByID(_ context.Context, id int64) (*domain.Guide, error) {
	guide, ok := m.guides[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *guide
	return &copied, nil
}

func (m *mockGuideRepository) List(_ context.Context) ([]domain.Guide, error) {
	out := make([]domain.Guide, 0, len(m.guides))
	for id := int64(1); id < m.nextID; id++ {
		if guide, ok := m.guides[id]; ok {
			out = append(out, *guide)
		}
	}
	return out, nil
}

func (m *mockGuideRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.guides[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.guides, id)
	return nil
}

// mockPackingClient returns a deterministic list for weight assertions.
type mockPackingClient struct{}

func (mockPackingClient) PackingList(_ context.Context, _ domain.Category) (*PackingList, error) {
	return &PackingList{Items: []PackingItem{
		{Name: "Tent", WeightInGrams: 2500, Quantity: 1},
		{Name: "Backpack", WeightInGrams: 800, Quantity: 1},
	}}, nil
}

func newTestTripService() (*TripService, *mockTripRepository, *mockGuideRepository) {
	trips := newMockTripRepository()
	guides := newMockGuideRepository()
	svc := NewTripService(trips, guides, mockPackingClient{}, nil)
	return svc, trips, guides
}

func guideIDPtr(id int64) *int64 { return &id }

func TestTripCreateRejectsUnknownGuide(t *testing.T) {
	svc, _, _ := newTestTripService()

	trip := &domain.Trip{Name: "Hike", Category: domain.CategoryForest, GuideID: guideIDPtr(99)}
	err := svc.Create(context.Background(), trip, "admin")

	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("err = %v, want VALIDATION_FAILED", err)
	}
}

func TestTripFilterByCategory(t *testing.T) {
	svc, _, _ := newTestTripService()
	ctx := context.Background()

	for _, trip := range []*domain.Trip{
		{Name: "Surf", Category: domain.CategoryBeach},
		{Name: "Ski", Category: domain.CategorySnow},
		{Name: "Dive", Category: domain.CategorySea},
	} {
		if err := svc.Create(ctx, trip, ""); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	snow, err := svc.FilterByCategory(ctx, "snow")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(snow) != 1 || snow[0].Name != "Ski" {
		t.Fatalf("filtered = %v", snow)
	}

	if _, err := svc.FilterByCategory(ctx, "volcano"); err == nil {
		t.Fatal("invalid category should be rejected")
	}
}

func TestTripTotalPriceByGuide(t *testing.T) {
	svc, _, guides := newTestTripService()
	ctx := context.Background()

	guide := &domain.Guide{Name: "Eva"}
	if err := guides.Create(ctx, guide); err != nil {
		t.Fatal(err)
	}

	for _, price := range []float64{100, 250} {
		trip := &domain.Trip{Name: "Trip", Category: domain.CategoryCity, Price: price, GuideID: &guide.ID}
		if err := svc.Create(ctx, trip, ""); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	// A trip without a guide is excluded from the totals.
	if err := svc.Create(ctx, &domain.Trip{Name: "Solo", Category: domain.CategoryCity, Price: 999}, ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	totals, err := svc.TotalPriceByGuide(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if len(totals) != 1 || totals[guide.ID] != 350 {
		t.Fatalf("totals = %v, want {%d: 350}", totals, guide.ID)
	}
}

func TestTripLinkGuide(t *testing.T) {
	svc, _, guides := newTestTripService()
	ctx := context.Background()

	guide := &domain.Guide{Name: "Eva"}
	if err := guides.Create(ctx, guide); err != nil {
		t.Fatal(err)
	}
	trip := &domain.Trip{Name: "Hike", Category: domain.CategoryForest}
	if err := svc.Create(ctx, trip, ""); err != nil {
		t.Fatal(err)
	}

	linked, err := svc.LinkGuide(ctx, trip.ID, guide.ID, "admin")
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if linked.GuideID == nil || *linked.GuideID != guide.ID {
		t.Fatalf("guide not linked: %+v", linked)
	}
}

func TestTripTotalPackingWeight(t *testing.T) {
	svc, _, _ := newTestTripService()
	ctx := context.Background()

	trip := &domain.Trip{Name: "Hike", Category: domain.CategoryForest}
	if err := svc.Create(ctx, trip, ""); err != nil {
		t.Fatal(err)
	}

	weight, err := svc.TotalPackingWeight(ctx, trip.ID)
	if err != nil {
		t.Fatalf("weight: %v", err)
	}
	if weight != 3300 {
		t.Fatalf("weight = %d, want 3300", weight)
	}
}

func TestTripPackingItemsEnrichment(t *testing.T) {
	svc, _, _ := newTestTripService()
	ctx := context.Background()

	trip := &domain.Trip{Name: "Hike", Category: domain.CategoryForest}
	if err := svc.Create(ctx, trip, ""); err != nil {
		t.Fatal(err)
	}

	got, list, err := svc.PackingItems(ctx, trip.ID)
	if err != nil {
		t.Fatalf("packing: %v", err)
	}
	if got.ID != trip.ID {
		t.Fatalf("trip id = %d, want %d", got.ID, trip.ID)
	}
	if len(list.Items) != 2 {
		t.Fatalf("items = %v", list.Items)
	}
}
