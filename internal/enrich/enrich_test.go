package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/NasmeenI/tablebook/internal/models"
)

type stubGetter struct {
	restaurants map[string]*models.Restaurant
	failing     map[string]bool
	calls       int64
}

func (s *stubGetter) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	atomic.AddInt64(&s.calls, 1)

	if s.failing[id] {
		return nil, errors.New("restaurant lookup failed")
	}
	r, ok := s.restaurants[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return r, nil
}

func reservationsFor(ids ...string) []models.Reservation {
	out := make([]models.Reservation, len(ids))
	for i, id := range ids {
		out[i] = models.Reservation{ID: fmt.Sprintf("res-%d", i), RestaurantID: id}
	}
	return out
}

func TestReservations_JoinsInOrder(t *testing.T) {
	getter := &stubGetter{
		restaurants: map[string]*models.Restaurant{
			"r1": {ID: "r1", Name: "Bella Italia"},
			"r2": {ID: "r2", Name: "Sakura House"},
		},
	}
	e := NewEnricher(getter, NewRestaurantCache(16))

	rows := e.Reservations(context.Background(), reservationsFor("r2", "r1"))

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Restaurant == nil || rows[0].Restaurant.Name != "Sakura House" {
		t.Errorf("row 0: expected Sakura House, got %+v", rows[0].Restaurant)
	}
	if rows[1].Restaurant == nil || rows[1].Restaurant.Name != "Bella Italia" {
		t.Errorf("row 1: expected Bella Italia, got %+v", rows[1].Restaurant)
	}
}

func TestReservations_FailureDegradesSingleRow(t *testing.T) {
	getter := &stubGetter{
		restaurants: map[string]*models.Restaurant{
			"r1": {ID: "r1", Name: "Bella Italia"},
		},
		failing: map[string]bool{"r2": true},
	}
	e := NewEnricher(getter, NewRestaurantCache(16))

	rows := e.Reservations(context.Background(), reservationsFor("r1", "r2", "r1"))

	if rows[0].Restaurant == nil || rows[2].Restaurant == nil {
		t.Error("healthy rows must survive a sibling lookup failure")
	}
	if rows[1].Restaurant != nil {
		t.Errorf("failed lookup must yield a nil restaurant, got %+v", rows[1].Restaurant)
	}
	if rows[1].Reservation.ID != "res-1" {
		t.Errorf("reservation data must be preserved on degraded rows, got %+v", rows[1].Reservation)
	}
}

func TestReservations_CacheSuppressesRefetch(t *testing.T) {
	getter := &stubGetter{
		restaurants: map[string]*models.Restaurant{
			"r1": {ID: "r1", Name: "Bella Italia"},
		},
	}
	e := NewEnricher(getter, NewRestaurantCache(16))

	e.Reservations(context.Background(), reservationsFor("r1"))
	before := atomic.LoadInt64(&getter.calls)

	e.Reservations(context.Background(), reservationsFor("r1", "r1"))

	if got := atomic.LoadInt64(&getter.calls); got != before {
		t.Errorf("expected cached restaurant to suppress refetches, calls went %d -> %d", before, got)
	}
}

func TestReservations_FailuresAreNotCached(t *testing.T) {
	getter := &stubGetter{
		restaurants: map[string]*models.Restaurant{},
		failing:     map[string]bool{"r1": true},
	}
	e := NewEnricher(getter, NewRestaurantCache(16))

	e.Reservations(context.Background(), reservationsFor("r1"))

	// The restaurant comes back; the next refresh should pick it up.
	getter.failing["r1"] = false
	getter.restaurants["r1"] = &models.Restaurant{ID: "r1", Name: "Bella Italia"}

	rows := e.Reservations(context.Background(), reservationsFor("r1"))
	if rows[0].Restaurant == nil {
		t.Error("expected recovered restaurant on refetch")
	}
}

func TestReservations_Empty(t *testing.T) {
	e := NewEnricher(&stubGetter{}, nil)

	rows := e.Reservations(context.Background(), nil)
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestRestaurantCache_Eviction(t *testing.T) {
	cache := NewRestaurantCache(2)

	cache.Set("r1", &models.Restaurant{ID: "r1"})
	cache.Set("r2", &models.Restaurant{ID: "r2"})
	cache.Set("r3", &models.Restaurant{ID: "r3"})

	if cache.Len() != 2 {
		t.Errorf("expected length 2 after eviction, got %d", cache.Len())
	}
	if _, found := cache.Get("r1"); found {
		t.Error("expected oldest entry to be evicted")
	}
	if _, found := cache.Get("r3"); !found {
		t.Error("expected newest entry to be present")
	}
}

func TestRestaurantCache_Delete(t *testing.T) {
	cache := NewRestaurantCache(4)
	cache.Set("r1", &models.Restaurant{ID: "r1"})
	cache.Delete("r1")

	if _, found := cache.Get("r1"); found {
		t.Error("expected deleted entry to be gone")
	}
	if cache.Len() != 0 {
		t.Errorf("expected empty cache, got %d", cache.Len())
	}
}
