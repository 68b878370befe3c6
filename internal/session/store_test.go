package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/NasmeenI/tablebook/internal/api"
	"github.com/NasmeenI/tablebook/internal/logger"
	"github.com/NasmeenI/tablebook/internal/models"
)

const testToken = "tok-abc123"

type fakeAPI struct {
	loginCalls int64
	meCalls    int64
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.loginCalls, 1)

		var req models.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		if req.Email != "ada@example.com" || req.Password != "hunter22" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(models.ErrorResponse{Message: "Invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(models.AuthResponse{Token: testToken})
	})

	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.meCalls, 1)

		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(models.ErrorResponse{Message: "Unauthorized"})
			return
		}
		_ = json.NewEncoder(w).Encode(models.User{
			ID:       "u1",
			Email:    "ada@example.com",
			Username: "ada",
			Phone:    "0812345678",
		})
	})

	return mux
}

func newTestStore(t *testing.T, baseURL, tokenPath string) *Store {
	t.Helper()
	client := api.NewClient(baseURL, 5*time.Second)
	return NewStore(client, NewTokenFile(tokenPath), logger.New("session-test"))
}

func TestLoginPersistsAndReloadRestores(t *testing.T) {
	fake := &fakeAPI{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	tokenPath := filepath.Join(t.TempDir(), "token")

	store := newTestStore(t, srv.URL, tokenPath)
	if err := store.Login(context.Background(), "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if !store.IsAuthenticated() {
		t.Fatal("expected IsAuthenticated after login")
	}
	if store.User() == nil || store.User().Email != "ada@example.com" {
		t.Fatalf("expected user profile, got %+v", store.User())
	}

	data, err := os.ReadFile(tokenPath)
	if err != nil {
		t.Fatalf("expected token file to exist: %v", err)
	}
	if string(data) != testToken {
		t.Errorf("expected persisted token '%s', got '%s'", testToken, string(data))
	}

	// Simulate a reload: a fresh store over the same token file restores the
	// user without credentials.
	loginsBefore := atomic.LoadInt64(&fake.loginCalls)

	reloaded := newTestStore(t, srv.URL, tokenPath)
	reloaded.Init(context.Background())

	if !reloaded.IsAuthenticated() {
		t.Fatal("expected reloaded session to be authenticated")
	}
	if reloaded.User().ID != "u1" {
		t.Errorf("expected same user after reload, got %+v", reloaded.User())
	}
	if atomic.LoadInt64(&fake.loginCalls) != loginsBefore {
		t.Error("reload must not re-send credentials")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	fake := &fakeAPI{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	tokenPath := filepath.Join(t.TempDir(), "token")

	store := newTestStore(t, srv.URL, tokenPath)
	if err := store.Login(context.Background(), "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	store.Logout()

	if store.IsAuthenticated() {
		t.Error("expected IsAuthenticated false after logout")
	}
	if store.Token() != "" {
		t.Error("expected empty token after logout")
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("expected token file to be removed after logout")
	}
	if store.State() != StateUnauthenticated {
		t.Errorf("expected StateUnauthenticated, got %v", store.State())
	}
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	fake := &fakeAPI{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	tokenPath := filepath.Join(t.TempDir(), "token")

	store := newTestStore(t, srv.URL, tokenPath)
	err := store.Login(context.Background(), "ada@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if err.Error() != "Invalid credentials" {
		t.Errorf("expected server-provided message, got '%s'", err.Error())
	}

	if store.IsAuthenticated() {
		t.Error("failed login must not authenticate")
	}
	if store.Token() != "" {
		t.Error("failed login must not set a token")
	}
	if _, statErr := os.Stat(tokenPath); !os.IsNotExist(statErr) {
		t.Error("failed login must not persist a token")
	}
}

func TestInitWithRejectedTokenRevertsToUnauthenticated(t *testing.T) {
	fake := &fakeAPI{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	tokenPath := filepath.Join(t.TempDir(), "token")
	if err := NewTokenFile(tokenPath).Save("stale-token"); err != nil {
		t.Fatal(err)
	}

	store := newTestStore(t, srv.URL, tokenPath)
	store.Init(context.Background())

	if store.IsAuthenticated() {
		t.Error("expected unauthenticated session for rejected token")
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("expected rejected token to be cleared from disk")
	}
}

func TestInitWithExpiredJWTSkipsNetwork(t *testing.T) {
	fake := &fakeAPI{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("whatever"))
	if err != nil {
		t.Fatal(err)
	}

	tokenPath := filepath.Join(t.TempDir(), "token")
	if err := NewTokenFile(tokenPath).Save(signed); err != nil {
		t.Fatal(err)
	}

	store := newTestStore(t, srv.URL, tokenPath)
	store.Init(context.Background())

	if store.IsAuthenticated() {
		t.Error("expected unauthenticated session for expired token")
	}
	if calls := atomic.LoadInt64(&fake.meCalls); calls != 0 {
		t.Errorf("expected no profile fetch for an expired token, got %d", calls)
	}
}

func TestInitWithoutToken(t *testing.T) {
	fake := &fakeAPI{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	store := newTestStore(t, srv.URL, filepath.Join(t.TempDir(), "token"))
	store.Init(context.Background())

	if store.State() != StateUnauthenticated {
		t.Errorf("expected StateUnauthenticated, got %v", store.State())
	}
	if calls := atomic.LoadInt64(&fake.meCalls); calls != 0 {
		t.Errorf("expected no network traffic without a token, got %d calls", calls)
	}
}
