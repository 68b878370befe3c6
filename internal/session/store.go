package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/NasmeenI/tablebook/internal/api"
	"github.com/NasmeenI/tablebook/internal/logger"
	"github.com/NasmeenI/tablebook/internal/models"
)

type State int

const (
	StateUninitialized State = iota
	StateResolving
	StateAuthenticated
	StateUnauthenticated
)

var ErrNoToken = errors.New("login did not return a token")

// Store owns the token/user pair for the lifetime of the process. All
// mutation goes through Login, Register, Logout, VerifyOTP and Init; the API
// client only reads the token, through the token source installed here.
type Store struct {
	client *api.Client
	tokens *TokenFile
	log    *logger.Logger

	mu    sync.RWMutex
	state State
	token string
	user  *models.User
}

func NewStore(client *api.Client, tokens *TokenFile, log *logger.Logger) *Store {
	s := &Store{
		client: client,
		tokens: tokens,
		log:    log,
		state:  StateUninitialized,
	}
	client.SetTokenSource(s.Token)
	return s
}

// Init resolves the persisted token into a user, if there is one. A token
// the server no longer accepts (or one that is visibly expired) is cleared
// and the session reverts to unauthenticated. This is the only automatic
// state transition; everything else is user-triggered.
func (s *Store) Init(ctx context.Context) {
	token, err := s.tokens.Load()
	if err != nil {
		s.log.Warn("could not read persisted token: %v", err)
	}

	if token == "" {
		s.setUnauthenticated()
		return
	}

	if expired, ok := tokenExpired(token); ok && expired {
		s.log.Info("persisted token has expired, clearing session")
		s.clearToken()
		return
	}

	s.mu.Lock()
	s.state = StateResolving
	s.token = token
	s.mu.Unlock()

	user, err := s.client.Me(ctx)
	if err != nil {
		s.log.Warn("failed to resolve user from persisted token: %v", err)
		s.clearToken()
		return
	}

	s.mu.Lock()
	s.user = user
	s.state = StateAuthenticated
	s.mu.Unlock()
	s.log.Info("session restored for %s", user.Email)
}

// Login exchanges credentials for a token and resolves the user profile. On
// any failure the session state is left exactly as it was.
func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if resp.Token == "" {
		return ErrNoToken
	}
	return s.adoptToken(ctx, resp.Token)
}

// Register creates an account; same contract as Login.
func (s *Store) Register(ctx context.Context, email, password, username, phone string) error {
	resp, err := s.client.Register(ctx, email, password, username, phone)
	if err != nil {
		return err
	}
	if resp.Token == "" {
		return ErrNoToken
	}
	return s.adoptToken(ctx, resp.Token)
}

func (s *Store) adoptToken(ctx context.Context, token string) error {
	prevToken := s.Token()

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	user, err := s.client.Me(ctx)
	if err != nil {
		// Roll back so a failed profile fetch doesn't leave a half-built
		// session behind.
		s.mu.Lock()
		s.token = prevToken
		s.mu.Unlock()
		return fmt.Errorf("failed to fetch user profile: %w", err)
	}

	if err := s.tokens.Save(token); err != nil {
		s.log.Warn("could not persist token: %v", err)
	}

	s.mu.Lock()
	s.user = user
	s.state = StateAuthenticated
	s.mu.Unlock()
	return nil
}

// Logout clears the session synchronously. No network call is made.
func (s *Store) Logout() {
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn("could not clear persisted token: %v", err)
	}
	s.setUnauthenticated()
}

// VerifyOTP submits the verification code and re-fetches the profile so the
// verified flag is current.
func (s *Store) VerifyOTP(ctx context.Context, otp string) error {
	if err := s.client.VerifyOTP(ctx, otp); err != nil {
		return err
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		return fmt.Errorf("verified but failed to refresh profile: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

func (s *Store) ResendOTP(ctx context.Context) error {
	return s.client.ResendOTP(ctx)
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated holds iff both a user and a token are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

func (s *Store) setUnauthenticated() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.state = StateUnauthenticated
	s.mu.Unlock()
}

func (s *Store) clearToken() {
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn("could not clear persisted token: %v", err)
	}
	s.setUnauthenticated()
}

// tokenExpired peeks at the exp claim without verifying the signature, to
// skip a doomed profile fetch. ok is false when the token is not a JWT we
// can read; the server stays the authority either way.
func tokenExpired(token string) (expired, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, false
	}

	return exp.Before(time.Now()), true
}
