package devserver

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/NasmeenI/tablebook/internal/models"
)

type userRecord struct {
	models.User
	PasswordHash string
	OTP          string
}

// memoryStore backs the dev server. It is deliberately process-local; the
// real service owns the durable state.
type memoryStore struct {
	mu           sync.RWMutex
	users        map[string]*userRecord // keyed by user ID
	usersByEmail map[string]string
	restaurants  map[string]*models.Restaurant
	reservations map[string]*models.Reservation
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:        make(map[string]*userRecord),
		usersByEmail: make(map[string]string),
		restaurants:  make(map[string]*models.Restaurant),
		reservations: make(map[string]*models.Reservation),
	}
}

func (s *memoryStore) createUser(email, password, username, phone string) (*userRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByEmail[email]; exists {
		return nil, fmt.Errorf("user with email %s already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &userRecord{
		User: models.User{
			ID:       uuid.NewString(),
			Email:    email,
			Username: username,
			Phone:    phone,
		},
		PasswordHash: string(hash),
	}

	s.users[user.ID] = user
	s.usersByEmail[email] = user.ID
	return user, nil
}

func (s *memoryStore) authenticate(email, password string) (*userRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[email]
	if !ok {
		return nil, false
	}
	user := s.users[id]

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, false
	}
	return user, true
}

func (s *memoryStore) userByID(id string) (*userRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	return user, ok
}

func (s *memoryStore) setOTP(userID, otp string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[userID]; ok {
		user.OTP = otp
	}
}

func (s *memoryStore) verifyOTP(userID, otp string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok || user.OTP == "" || user.OTP != otp {
		return false
	}
	user.IsVerified = true
	user.OTP = ""
	return true
}

func (s *memoryStore) listRestaurants() []models.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		out = append(out, *r)
	}
	return out
}

func (s *memoryStore) restaurantByID(id string) (*models.Restaurant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.restaurants[id]
	if !ok {
		return nil, false
	}
	copied := *r
	return &copied, true
}

func (s *memoryStore) saveRestaurant(r *models.Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	copied := *r
	s.restaurants[r.ID] = &copied
}

func (s *memoryStore) deleteRestaurant(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.restaurants[id]; !ok {
		return false
	}
	delete(s.restaurants, id)
	return true
}

func (s *memoryStore) listReservationsByUser(userID string) []models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Reservation, 0)
	for _, r := range s.reservations {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out
}

func (s *memoryStore) reservationByID(id string) (*models.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reservations[id]
	if !ok {
		return nil, false
	}
	copied := *r
	return &copied, true
}

func (s *memoryStore) saveReservation(r *models.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	copied := *r
	s.reservations[r.ID] = &copied
}

func (s *memoryStore) deleteReservation(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[id]; !ok {
		return false
	}
	delete(s.reservations, id)
	return true
}

func (s *memoryStore) seed() {
	for _, r := range []models.Restaurant{
		{Name: "Bella Italia", Type: "Italian", Address: "123 Main Street, Cityville", Phone: "(555) 123-4567", OpenTime: "11:00 AM", CloseTime: "10:00 PM", MaxSeats: 50},
		{Name: "Sakura House", Type: "Japanese", Address: "88 Cherry Lane, Cityville", Phone: "(555) 765-4321", OpenTime: "11:30 AM", CloseTime: "9:30 PM", MaxSeats: 30},
		{Name: "Spice Route", Type: "Indian", Address: "7 Curry Road, Cityville", Phone: "(555) 222-3344", OpenTime: "10.00", CloseTime: "22.00", MaxSeats: 40},
		{Name: "Le Petit Jardin", Type: "French", Address: "12 Rue Verte, Cityville", Phone: "(555) 999-1111", OpenTime: "5:00 PM", CloseTime: "11:00 PM", MaxSeats: 24},
	} {
		restaurant := r
		s.saveRestaurant(&restaurant)
	}
}
