package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/NasmeenI/tablebook/internal/models"
)

// Client wraps the reservation service's REST API. Every request carries the
// bearer token read from the token source at call time, so the client always
// sees the session store's latest committed token.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource func() string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetTokenSource installs the read-only token accessor. The session store
// owns the token; the client only borrows it per request.
func (c *Client) SetTokenSource(fn func() string) {
	c.tokenSource = fn
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/users/login", models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, email, password, username, phone string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	req := models.RegisterRequest{Email: email, Password: password, Username: username, Phone: phone}
	if err := c.do(ctx, http.MethodPost, "/users/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) VerifyOTP(ctx context.Context, otp string) error {
	return c.do(ctx, http.MethodPatch, "/users/verify", models.VerifyOTPRequest{OTP: otp}, nil)
}

func (c *Client) ResendOTP(ctx context.Context) error {
	return c.do(ctx, http.MethodPatch, "/users/resent-otp", nil, nil)
}

func (c *Client) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := c.do(ctx, http.MethodGet, "/restaurants", nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (c *Client) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	var resp models.RestaurantResponse
	if err := c.do(ctx, http.MethodGet, "/restaurants/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Restaurant, nil
}

// CreateRestaurant, UpdateRestaurant and DeleteRestaurant are admin-style
// calls; no end-user flow reaches them.

func (c *Client) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) (*models.Restaurant, error) {
	var resp models.RestaurantResponse
	if err := c.do(ctx, http.MethodPost, "/restaurants", restaurant, &resp); err != nil {
		return nil, err
	}
	return &resp.Restaurant, nil
}

func (c *Client) UpdateRestaurant(ctx context.Context, id string, restaurant *models.Restaurant) error {
	return c.do(ctx, http.MethodPatch, "/restaurants/"+id, restaurant, nil)
}

func (c *Client) DeleteRestaurant(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/restaurants/"+id, nil, nil)
}

// ListReservations returns the current user's own reservations.
func (c *Client) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := c.do(ctx, http.MethodGet, "/reservations", nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (c *Client) CreateReservation(ctx context.Context, restaurantID string, req *models.ReservationRequest) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := c.do(ctx, http.MethodPost, "/reservations/"+restaurantID, req, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (c *Client) UpdateReservation(ctx context.Context, id string, req *models.ReservationRequest) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := c.do(ctx, http.MethodPatch, "/reservations/"+id, req, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (c *Client) DeleteReservation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reservations/"+id, nil, nil)
}
