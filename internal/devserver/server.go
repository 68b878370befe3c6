// Package devserver is an in-memory stand-in for the reservation service's
// REST API. It exists so the TUI can be run and tested without the production
// backend; nothing in it is meant to survive a restart.
package devserver

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/NasmeenI/tablebook/internal/logger"
	"github.com/NasmeenI/tablebook/internal/models"
)

type Server struct {
	store *memoryStore
	jwt   *JWTManager
	log   *logger.Logger
}

type Options struct {
	JWTSecret string
	JWTTTL    time.Duration
	SeedData  bool
}

func New(opts Options, log *logger.Logger) *Server {
	if opts.JWTTTL == 0 {
		opts.JWTTTL = 24 * time.Hour
	}

	store := newMemoryStore()
	if opts.SeedData {
		store.seed()
	}

	return &Server{
		store: store,
		jwt:   NewJWTManager(opts.JWTSecret, opts.JWTTTL),
		log:   log,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users/register", s.handleRegister)
	mux.HandleFunc("POST /users/login", s.handleLogin)
	mux.HandleFunc("GET /users/me", s.handleMe)
	mux.HandleFunc("PATCH /users/verify", s.handleVerifyOTP)
	mux.HandleFunc("PATCH /users/resent-otp", s.handleResendOTP)

	mux.HandleFunc("GET /restaurants", s.handleListRestaurants)
	mux.HandleFunc("GET /restaurants/{id}", s.handleGetRestaurant)
	mux.HandleFunc("POST /restaurants", s.handleCreateRestaurant)
	mux.HandleFunc("PATCH /restaurants/{id}", s.handleUpdateRestaurant)
	mux.HandleFunc("DELETE /restaurants/{id}", s.handleDeleteRestaurant)

	mux.HandleFunc("GET /reservations", s.handleListReservations)
	mux.HandleFunc("POST /reservations/{restaurantId}", s.handleCreateReservation)
	mux.HandleFunc("PATCH /reservations/{id}", s.handleUpdateReservation)
	mux.HandleFunc("DELETE /reservations/{id}", s.handleDeleteReservation)

	return mux
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" || req.Username == "" {
		respondError(w, http.StatusBadRequest, "email, password and username are required")
		return
	}

	user, err := s.store.createUser(req.Email, req.Password, req.Username, req.Phone)
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}

	otp := newOTP()
	s.store.setOTP(user.ID, otp)
	s.log.Info("OTP for %s: %s", user.Email, otp)

	token, _, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	respondJSON(w, http.StatusCreated, models.AuthResponse{Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user, ok := s.store.authenticate(req.Email, req.Password)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, _, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, models.AuthResponse{Token: token})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, user.User)
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req models.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if !s.store.verifyOTP(user.ID, req.OTP) {
		respondError(w, http.StatusBadRequest, "Invalid OTP")
		return
	}

	respondJSON(w, http.StatusOK, models.ErrorResponse{Message: "account verified"})
}

func (s *Server) handleResendOTP(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	otp := newOTP()
	s.store.setOTP(user.ID, otp)
	s.log.Info("OTP for %s: %s", user.Email, otp)

	respondJSON(w, http.StatusOK, models.ErrorResponse{Message: "verification code sent"})
}

func (s *Server) handleListRestaurants(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.listRestaurants())
}

func (s *Server) handleGetRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, ok := s.store.restaurantByID(r.PathValue("id"))
	if !ok {
		respondError(w, http.StatusNotFound, "restaurant not found")
		return
	}
	respondJSON(w, http.StatusOK, models.RestaurantResponse{Restaurant: *restaurant})
}

func (s *Server) handleCreateRestaurant(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	var restaurant models.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&restaurant); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if restaurant.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	restaurant.ID = ""
	s.store.saveRestaurant(&restaurant)
	respondJSON(w, http.StatusCreated, models.RestaurantResponse{Restaurant: restaurant})
}

func (s *Server) handleUpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	existing, ok := s.store.restaurantByID(r.PathValue("id"))
	if !ok {
		respondError(w, http.StatusNotFound, "restaurant not found")
		return
	}

	var patch models.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	applyRestaurantPatch(existing, &patch)
	s.store.saveRestaurant(existing)
	respondJSON(w, http.StatusOK, models.RestaurantResponse{Restaurant: *existing})
}

func (s *Server) handleDeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	if !s.store.deleteRestaurant(r.PathValue("id")) {
		respondError(w, http.StatusNotFound, "restaurant not found")
		return
	}
	respondJSON(w, http.StatusOK, models.ErrorResponse{Message: "restaurant deleted"})
}

func (s *Server) handleListReservations(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, s.store.listReservationsByUser(user.ID))
}

func (s *Server) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	restaurant, ok := s.store.restaurantByID(r.PathValue("restaurantId"))
	if !ok {
		respondError(w, http.StatusNotFound, "restaurant not found")
		return
	}

	var req models.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	reservation, errMsg := buildReservation(&req, restaurant, user.ID)
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}

	s.store.saveReservation(reservation)
	respondJSON(w, http.StatusCreated, reservation)
}

func (s *Server) handleUpdateReservation(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	existing, ok := s.store.reservationByID(r.PathValue("id"))
	if !ok || existing.UserID != user.ID {
		respondError(w, http.StatusNotFound, "reservation not found")
		return
	}

	restaurant, ok := s.store.restaurantByID(existing.RestaurantID)
	if !ok {
		respondError(w, http.StatusConflict, "restaurant no longer exists")
		return
	}

	var req models.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	updated, errMsg := buildReservation(&req, restaurant, user.ID)
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	s.store.saveReservation(updated)
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteReservation(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	existing, ok := s.store.reservationByID(r.PathValue("id"))
	if !ok || existing.UserID != user.ID {
		respondError(w, http.StatusNotFound, "reservation not found")
		return
	}

	s.store.deleteReservation(existing.ID)
	respondJSON(w, http.StatusOK, models.ErrorResponse{Message: "reservation cancelled"})
}

// OTPForEmail exposes the pending verification code so dev tooling and tests
// can complete the verify flow without scraping logs.
func (s *Server) OTPForEmail(email string) string {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	id, ok := s.store.usersByEmail[email]
	if !ok {
		return ""
	}
	return s.store.users[id].OTP
}

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (*userRecord, bool) {
	authHeader := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || token == "" {
		respondError(w, http.StatusUnauthorized, "missing bearer token")
		return nil, false
	}

	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid or expired token")
		return nil, false
	}

	user, ok := s.store.userByID(claims.UserID)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unknown user")
		return nil, false
	}

	return user, true
}

// buildReservation validates the payload the same way the production service
// does and returns a human-readable message on failure.
func buildReservation(req *models.ReservationRequest, restaurant *models.Restaurant, userID string) (*models.Reservation, string) {
	if req.Seats <= 0 {
		return nil, "seats must be a positive number"
	}
	if restaurant.MaxSeats > 0 && req.Seats > restaurant.MaxSeats {
		return nil, fmt.Sprintf("this restaurant can only accommodate up to %d guests per reservation", restaurant.MaxSeats)
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, "startTime must be an ISO-8601 timestamp"
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, "endTime must be an ISO-8601 timestamp"
	}
	if !end.After(start) {
		return nil, "endTime must be after startTime"
	}
	if !start.After(time.Now()) {
		return nil, "reservation time must be in the future"
	}

	return &models.Reservation{
		UserID:          userID,
		RestaurantID:    restaurant.ID,
		Seats:           req.Seats,
		StartTime:       start,
		EndTime:         end,
		SpecialRequests: req.SpecialRequests,
		Status:          models.StatusConfirmed,
		CreatedAt:       time.Now(),
	}, ""
}

func applyRestaurantPatch(dst, patch *models.Restaurant) {
	if patch.Name != "" {
		dst.Name = patch.Name
	}
	if patch.Type != "" {
		dst.Type = patch.Type
	}
	if patch.Address != "" {
		dst.Address = patch.Address
	}
	if patch.Phone != "" {
		dst.Phone = patch.Phone
	}
	if patch.OpenTime != "" {
		dst.OpenTime = patch.OpenTime
	}
	if patch.CloseTime != "" {
		dst.CloseTime = patch.CloseTime
	}
	if patch.MaxSeats > 0 {
		dst.MaxSeats = patch.MaxSeats
	}
	if patch.Image != "" {
		dst.Image = patch.Image
	}
}

func newOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Error: message, Message: message})
}
