// Package enrich joins reservations with their restaurant records. Lookups
// fan out concurrently and are gathered before anything is rendered; a row
// whose restaurant cannot be fetched degrades to a placeholder instead of
// failing the whole list.
package enrich

import (
	"context"
	"sync"

	"github.com/NasmeenI/tablebook/internal/models"
)

// RestaurantGetter is the slice of the API client the enricher needs.
type RestaurantGetter interface {
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
}

// Row pairs a reservation with its restaurant. Restaurant is nil when the
// lookup failed; callers render an unknown-restaurant placeholder for it.
type Row struct {
	Reservation models.Reservation
	Restaurant  *models.Restaurant
}

// defaultConcurrency bounds the lookup fan-out.
const defaultConcurrency = 8

type Enricher struct {
	getter      RestaurantGetter
	cache       *RestaurantCache
	concurrency int
}

func NewEnricher(getter RestaurantGetter, cache *RestaurantCache) *Enricher {
	return &Enricher{
		getter:      getter,
		cache:       cache,
		concurrency: defaultConcurrency,
	}
}

// Reservations looks up the restaurant for every reservation and returns one
// row per reservation, in the input order. It returns only after every
// lookup has settled; individual failures do not cancel the rest.
func (e *Enricher) Reservations(ctx context.Context, reservations []models.Reservation) []Row {
	rows := make([]Row, len(reservations))

	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i, res := range reservations {
		rows[i].Reservation = res

		wg.Add(1)
		go func(i int, restaurantID string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			rows[i].Restaurant = e.lookup(ctx, restaurantID)
		}(i, res.RestaurantID)
	}

	wg.Wait()
	return rows
}

func (e *Enricher) lookup(ctx context.Context, id string) *models.Restaurant {
	if e.cache != nil {
		if restaurant, found := e.cache.Get(id); found {
			return restaurant
		}
	}

	restaurant, err := e.getter.GetRestaurant(ctx, id)
	if err != nil {
		return nil
	}

	if e.cache != nil {
		e.cache.Set(id, restaurant)
	}
	return restaurant
}
