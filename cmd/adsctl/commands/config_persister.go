package commands

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrEndpointMismatch is returned when a refreshed token belongs to an
// endpoint other than the configured one.
var ErrEndpointMismatch = errors.New("token endpoint does not match configured API")

// ConfigPersister implements the auth.ConfigPersister interface.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateAccessToken stores a refreshed access token and its expiry.
func (p *ConfigPersister) UpdateAccessToken(endpoint, token string, expiresAt time.Time) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()

	if config.API != "" && config.API != endpoint {
		return fmt.Errorf("%w: %s", ErrEndpointMismatch, endpoint)
	}

	config.Token = token
	config.TokenExpiresAt = nil

	if !expiresAt.IsZero() {
		config.TokenExpiresAt = &expiresAt
	}

	return saveConfigStruct(config)
}
