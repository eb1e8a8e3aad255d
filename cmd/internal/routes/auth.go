package routes

import (
	"context"
	"sync"
	"time"

	cognitoclient "clientflow/cmd/internal/integration/aws/cognito"
	"clientflow/cmd/internal/utils"
	"clientflow/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

// IdentityVerifier resolves an access token to the identity it belongs to.
// Token validation is delegated to the identity provider.
type IdentityVerifier interface {
	CurrentUser(ctx context.Context, accessToken string) (*cognitoclient.Identity, error)
}

type cacheEntry struct {
	data      *utils.TokenData
	expiresAt time.Time
}

// AuthMiddleware gates API routes on a valid bearer token. Validated tokens
// are cached with a TTL so repeated requests do not round-trip to the
// provider on every call; the cache never outlives the token's own expiry.
type AuthMiddleware struct {
	verifier IdentityVerifier
	ttl      time.Duration

	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

func NewAuthMiddleware(verifier IdentityVerifier, ttl time.Duration) *AuthMiddleware {
	m := &AuthMiddleware{
		verifier: verifier,
		ttl:      ttl,
		entries:  make(map[string]*cacheEntry),
	}
	go m.cleanupLoop()
	return m
}

func (m *AuthMiddleware) Require() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.BearerToken(c)
			if err != nil {
				return c.JSON(401, apierror.InvalidAuthTokenError)
			}

			if data, found := m.lookup(token); found {
				c.Set(utils.TokenDataKey, data)
				return next(c)
			}

			identity, err := m.verifier.CurrentUser(c.Request().Context(), token)
			if err != nil {
				return c.JSON(401, apierror.InvalidAuthTokenError)
			}

			data := &utils.TokenData{Sub: identity.Sub, Email: identity.Email, RawToken: token}
			m.store(token, data)
			c.Set(utils.TokenDataKey, data)
			return next(c)
		}
	}
}

func (m *AuthMiddleware) lookup(token string) (*utils.TokenData, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, found := m.entries[token]
	if !found || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.data, true
}

func (m *AuthMiddleware) store(token string, data *utils.TokenData) {
	expiresAt := time.Now().Add(m.ttl)
	if tokenExp, err := utils.TokenExpiry(token); err == nil && tokenExp.Before(expiresAt) {
		expiresAt = tokenExp
	}

	m.mu.Lock()
	m.entries[token] = &cacheEntry{data: data, expiresAt: expiresAt}
	m.mu.Unlock()
}

func (m *AuthMiddleware) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		m.mu.Lock()
		for token, entry := range m.entries {
			if now.After(entry.expiresAt) {
				delete(m.entries, token)
			}
		}
		m.mu.Unlock()
	}
}
