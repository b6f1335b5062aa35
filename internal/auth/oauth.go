package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Static errors for err113 compliance.
var (
	ErrNoValidCredentials = errors.New("no valid credentials available")
)

// OAuth2Config selects how tokens are obtained. With only AccessToken set the
// manager serves that token as-is.
type OAuth2Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	RefreshToken string
	AccessToken  string
	Scopes       []string
}

// OAuth2TokenManager hands out access tokens, fetching new ones through the
// client_credentials or refresh_token grant when the current one expires.
type OAuth2TokenManager struct {
	config *OAuth2Config
	store  *TokenStore
	mu     sync.Mutex
}

// NewOAuth2TokenManager creates a token manager.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	manager := &OAuth2TokenManager{
		config: config,
		store:  NewTokenStore(),
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{
			AccessToken:  config.AccessToken,
			RefreshToken: config.RefreshToken,
			TokenType:    "bearer",
		})
	}

	return manager
}

// NewClientCredentialsTokenManager creates a manager for the client_credentials grant.
func NewClientCredentialsTokenManager(tokenURL, clientID, clientSecret string) *OAuth2TokenManager {
	return NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     strings.TrimSuffix(tokenURL, "/"),
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// GetToken returns a valid access token, refreshing if necessary.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	err := m.RefreshToken(ctx)
	if err != nil {
		return "", err
	}

	return m.store.Get().AccessToken, nil
}

// RefreshToken forces a new token to be fetched.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tok, err := m.fetch(ctx)
	if err != nil {
		return err
	}

	m.store.Set(tokenFromOAuth2(tok))

	return nil
}

func (m *OAuth2TokenManager) fetch(ctx context.Context) (*oauth2.Token, error) {
	if m.config.TokenURL == "" {
		return nil, ErrNoValidCredentials
	}

	refreshToken := m.config.RefreshToken
	if current := m.store.Get(); current != nil && current.RefreshToken != "" {
		refreshToken = current.RefreshToken
	}

	switch {
	case refreshToken != "":
		conf := &oauth2.Config{
			ClientID:     m.config.ClientID,
			ClientSecret: m.config.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: m.config.TokenURL},
			Scopes:       m.config.Scopes,
		}

		tok, err := conf.TokenSource(ctx, &oauth2.Token{
			RefreshToken: refreshToken,
			Expiry:       time.Now().Add(-time.Minute),
		}).Token()
		if err != nil {
			return nil, fmt.Errorf("refreshing token: %w", err)
		}

		return tok, nil

	case m.config.ClientID != "" && m.config.ClientSecret != "":
		conf := &clientcredentials.Config{
			ClientID:     m.config.ClientID,
			ClientSecret: m.config.ClientSecret,
			TokenURL:     m.config.TokenURL,
			Scopes:       m.config.Scopes,
		}

		tok, err := conf.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching client credentials token: %w", err)
		}

		return tok, nil

	default:
		return nil, ErrNoValidCredentials
	}
}

// SetToken manually sets the access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	current := m.store.Get()

	next := &Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}

	if current != nil {
		next.RefreshToken = current.RefreshToken
	}

	m.store.Set(next)
}

// Current returns the stored token or nil.
func (m *OAuth2TokenManager) Current() *Token {
	return m.store.Get()
}
