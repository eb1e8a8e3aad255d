package session

import (
	"context"
	"sync"

	cognitoclient "clientflow/cmd/internal/integration/aws/cognito"
	"clientflow/cmd/internal/localstore"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenKey  = localstore.AuthPrefix + "access_token"
	refreshTokenKey = localstore.AuthPrefix + "refresh_token"
	idTokenKey      = localstore.AuthPrefix + "id_token"
)

// CognitoAuthenticator adapts the Cognito client to the store's Authenticator
// contract. It keeps the live credential in memory, mirrors it to the local
// artifact store under the auth key prefix, and emits auth-state changes on a
// buffered channel.
type CognitoAuthenticator struct {
	client    cognitoclient.CognitoInterface
	artifacts *localstore.Store

	mu          sync.Mutex
	accessToken string

	events chan AuthEvent
}

func NewCognitoAuthenticator(client cognitoclient.CognitoInterface, artifacts *localstore.Store) *CognitoAuthenticator {
	return &CognitoAuthenticator{
		client:    client,
		artifacts: artifacts,
		events:    make(chan AuthEvent, 8),
	}
}

func (a *CognitoAuthenticator) Events() <-chan AuthEvent {
	return a.events
}

func (a *CognitoAuthenticator) CurrentUser(ctx context.Context) (*Identity, error) {
	token := a.currentToken()
	if token == "" {
		return nil, nil
	}

	identity, err := a.client.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	return &Identity{ID: identity.Sub, Email: identity.Email}, nil
}

func (a *CognitoAuthenticator) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	auth, err := a.client.SignIn(ctx, &cognitoclient.UserLogin{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.accessToken = auth.AccessToken
	a.mu.Unlock()

	a.artifacts.Set(accessTokenKey, auth.AccessToken)
	a.artifacts.Set(refreshTokenKey, auth.RefreshToken)
	a.artifacts.Set(idTokenKey, auth.IDToken)

	identity, err := identityFromIDToken(auth.IDToken)
	if err != nil {
		// The token is opaque to us then; fall back to asking the provider.
		current, cerr := a.client.CurrentUser(ctx, auth.AccessToken)
		if cerr != nil {
			return nil, cerr
		}
		identity = &Identity{ID: current.Sub, Email: current.Email}
	}

	a.events <- AuthEvent{Type: EventSignedIn, Identity: identity}
	return identity, nil
}

func (a *CognitoAuthenticator) SignUp(ctx context.Context, email, password string, metadata map[string]string) error {
	_, err := a.client.SignUp(ctx, &cognitoclient.User{
		Email:    email,
		Password: password,
		Metadata: metadata,
	})
	return err
}

func (a *CognitoAuthenticator) GlobalSignOut(ctx context.Context) error {
	token := a.currentToken()
	if token == "" {
		return nil
	}

	err := a.client.GlobalSignOut(ctx, token)

	a.mu.Lock()
	a.accessToken = ""
	a.mu.Unlock()
	a.artifacts.ClearPrefix(localstore.AuthPrefix)

	a.events <- AuthEvent{Type: EventSignedOut}
	return err
}

// currentToken prefers the in-memory credential and falls back to the
// persisted artifact from a previous run.
func (a *CognitoAuthenticator) currentToken() string {
	a.mu.Lock()
	token := a.accessToken
	a.mu.Unlock()
	if token != "" {
		return token
	}

	persisted, _ := a.artifacts.Get(accessTokenKey)

	a.mu.Lock()
	a.accessToken = persisted
	a.mu.Unlock()
	return persisted
}

// identityFromIDToken extracts sub and email from the ID token claims. The
// token was just issued over TLS by the provider, so its signature is not
// re-verified here.
func identityFromIDToken(idToken string) (*Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil, err
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, jwt.ErrTokenInvalidSubject
	}

	email, _ := claims["email"].(string)
	return &Identity{ID: sub, Email: email}, nil
}
