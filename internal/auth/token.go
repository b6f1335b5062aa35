package auth

import (
	"context"
	"sync"
	"time"

	"github.com/fivetwenty-io/adsapi/internal/constants"
	"golang.org/x/oauth2"
)

// TokenManager supplies bearer tokens for outgoing requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// Token is an OAuth2 access token with its expiry.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in,omitempty"`
	ExpiresAt    time.Time `json:"-"`
}

// Valid reports whether the token can be used for at least the expiry buffer.
// A token without an expiry never expires.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpirationBuffer).Before(t.ExpiresAt)
}

func tokenFromOAuth2(tok *oauth2.Token) *Token {
	tokenType := tok.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}

	return &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tokenType,
		ExpiresIn:    tok.ExpiresIn,
		ExpiresAt:    tok.Expiry,
	}
}

// TokenStore holds the current token; safe for concurrent use.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}
