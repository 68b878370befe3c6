package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/NasmeenI/tablebook/internal/models"
)

var (
	ErrPastStart    = errors.New("reservation time must be in the future, please select a later date or time")
	ErrNoSeats      = errors.New("please select a valid number of seats")
	ErrMissingSlot  = errors.New("please select a time for your reservation")
	ErrNoRestaurant = errors.New("restaurant information is not available")
)

// CapacityError reports a party size over the restaurant's limit. The message
// names the limit so the form can show it verbatim.
type CapacityError struct {
	Restaurant string
	MaxSeats   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("this restaurant can only accommodate up to %d guests per reservation", e.MaxSeats)
}

// Build composes and validates a reservation payload from the form's selected
// calendar date, slot label, duration label and party size. Validation runs
// entirely locally; a returned error means nothing was (and nothing should
// be) sent to the API.
func Build(now time.Time, restaurant *models.Restaurant, date time.Time, slot, durationLabel string, seats int, specialRequests string) (*models.ReservationRequest, error) {
	if restaurant == nil {
		return nil, ErrNoRestaurant
	}
	if slot == "" {
		return nil, ErrMissingSlot
	}
	if seats <= 0 {
		return nil, ErrNoSeats
	}

	at, err := ParseClockTime(slot)
	if err != nil {
		return nil, err
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), at.Hour, at.Minute, 0, 0, date.Location())
	if !start.After(now) {
		return nil, ErrPastStart
	}

	if restaurant.MaxSeats > 0 && seats > restaurant.MaxSeats {
		return nil, &CapacityError{Restaurant: restaurant.Name, MaxSeats: restaurant.MaxSeats}
	}

	end := start.Add(DurationByLabel(durationLabel).Length)

	return &models.ReservationRequest{
		Seats:           seats,
		StartTime:       start.Format(time.RFC3339),
		EndTime:         end.Format(time.RFC3339),
		SpecialRequests: specialRequests,
	}, nil
}
