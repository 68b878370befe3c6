package models

import "time"

// Restaurant is immutable from the client's point of view. OpenTime and
// CloseTime come back from the API either as decimal hours ("10.00") or as a
// 12-hour clock label ("10:00 AM"); the schedule package understands both.
type Restaurant struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	MaxSeats  int    `json:"maxSeats"`
	Image     string `json:"image,omitempty"`
}

const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// Reservation as returned by the API. Status is absent on some backend
// deployments; empty means confirmed-equivalent.
type Reservation struct {
	ID              string    `json:"_id"`
	UserID          string    `json:"userId"`
	RestaurantID    string    `json:"restaurantId"`
	Seats           int       `json:"seats"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	Status          string    `json:"status,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

type User struct {
	ID         string `json:"_id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Phone      string `json:"phone"`
	IsVerified bool   `json:"isVerified"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

type AuthResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}

// ReservationRequest is the payload for both create and update.
type ReservationRequest struct {
	Seats           int    `json:"seats"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	SpecialRequests string `json:"specialRequests"`
}

// RestaurantResponse wraps a single restaurant; GET /restaurants/:id nests
// the record under a "restaurant" key.
type RestaurantResponse struct {
	Restaurant Restaurant `json:"restaurant"`
}

type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
