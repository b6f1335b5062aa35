package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister saves refreshed tokens so later runs can reuse them.
type ConfigPersister interface {
	UpdateAccessToken(endpoint, token string, expiresAt time.Time) error
}

// ConfigTokenManager wraps OAuth2TokenManager and persists every newly
// fetched token through a ConfigPersister.
type ConfigTokenManager struct {
	oauth2Manager   *OAuth2TokenManager
	configPersister ConfigPersister
	endpoint        string
	mutex           sync.Mutex
	lastToken       string
	onPersistError  func(error)
}

// NewConfigTokenManager creates a config-persisting token manager seeded with
// a previously stored token.
func NewConfigTokenManager(config *OAuth2Config, persister ConfigPersister, endpoint string, storedToken string, storedExpiry time.Time) *ConfigTokenManager {
	oauth2Manager := NewOAuth2TokenManager(config)

	if storedToken != "" {
		oauth2Manager.SetToken(storedToken, storedExpiry)
	}

	return &ConfigTokenManager{
		oauth2Manager:   oauth2Manager,
		configPersister: persister,
		endpoint:        endpoint,
		lastToken:       storedToken,
		onPersistError:  func(error) {},
	}
}

// OnPersistError registers a callback for persistence failures. They never
// fail the request that triggered the refresh.
func (m *ConfigTokenManager) OnPersistError(fn func(error)) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.onPersistError = fn
}

// GetToken returns a valid access token, refreshing and persisting if necessary.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	token, err := m.oauth2Manager.GetToken(ctx)
	if err != nil {
		return "", err
	}

	m.persistIfChanged()

	return token, nil
}

// RefreshToken forces a token refresh.
func (m *ConfigTokenManager) RefreshToken(ctx context.Context) error {
	err := m.oauth2Manager.RefreshToken(ctx)
	if err != nil {
		return err
	}

	m.persistIfChanged()

	return nil
}

// SetToken manually sets the access token without persisting it.
func (m *ConfigTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.oauth2Manager.SetToken(token, expiresAt)
	m.lastToken = token
}

// GetTokenExpiry returns the current token's expiration time.
func (m *ConfigTokenManager) GetTokenExpiry() time.Time {
	token := m.oauth2Manager.Current()
	if token == nil {
		return time.Time{}
	}

	return token.ExpiresAt
}

func (m *ConfigTokenManager) persistIfChanged() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	current := m.oauth2Manager.Current()
	if current == nil || current.AccessToken == m.lastToken {
		return
	}

	err := m.persistToken(current)
	if err != nil {
		m.onPersistError(err)

		return
	}

	m.lastToken = current.AccessToken
}

func (m *ConfigTokenManager) persistToken(token *Token) error {
	if m.configPersister == nil {
		return ErrNoConfigPersister
	}

	err := m.configPersister.UpdateAccessToken(m.endpoint, token.AccessToken, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to update access token: %w", err)
	}

	return nil
}
