// Package session is the single source of truth for "who is logged in and
// what is their profile". It pairs the identity provider's credential with the
// profile record, mirrors the theme preference, and derives the legacy user
// shape older views still consume.
package session

import (
	"context"
	"errors"

	"clientflow/cmd/internal/domain/entity"
)

var (
	ErrNotAuthenticated       = errors.New("user not authenticated")
	ErrGoogleLoginUnsupported = errors.New("google login is not supported here; use password sign-in")
)

// Identity is the authenticated principal as issued by the authentication
// backend. It carries credential-level data only; everything else lives on
// the profile.
type Identity struct {
	ID    string
	Email string
}

type EventType string

const (
	EventSignedIn  EventType = "SIGNED_IN"
	EventSignedOut EventType = "SIGNED_OUT"
)

// AuthEvent is an auth-state-change notification from the authentication
// backend. Events are delivered over a channel so the store never calls back
// into the backend from inside its own dispatch.
type AuthEvent struct {
	Type     EventType
	Identity *Identity
}

// Authenticator is the authentication backend contract the store consumes.
type Authenticator interface {
	// CurrentUser resolves the stored credential, returning (nil, nil) when
	// there is none.
	CurrentUser(ctx context.Context) (*Identity, error)
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignUp(ctx context.Context, email, password string, metadata map[string]string) error
	GlobalSignOut(ctx context.Context) error
	Events() <-chan AuthEvent
}

// ProfileStore is the profile record store contract: fetch-by-id and partial
// update-by-id, nothing more.
type ProfileStore interface {
	// FetchProfile returns (nil, nil) when no row exists yet.
	FetchProfile(ctx context.Context, id string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id string, fields map[string]any) error
}

// Notifier surfaces user-visible transient notifications, the counterpart of
// the dashboard's toast stack.
type Notifier interface {
	Notify(variant, title, description string)
}

const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// ProfileUpdate is a partial profile mutation; nil fields are left untouched.
type ProfileUpdate struct {
	FullName        *string
	Phone           *string
	Address         *string
	Role            *string
	AvatarURL       *string
	Location        *string
	LinkedinURL     *string
	Bio             *string
	ThemePreference *string
}

func (u *ProfileUpdate) fields() map[string]any {
	fields := map[string]any{}
	put := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}
	put("full_name", u.FullName)
	put("phone", u.Phone)
	put("address", u.Address)
	put("role", u.Role)
	put("avatar_url", u.AvatarURL)
	put("location", u.Location)
	put("linkedin_url", u.LinkedinURL)
	put("bio", u.Bio)
	put("theme_preference", u.ThemePreference)
	return fields
}

// apply merges the update into the in-memory profile.
func (u *ProfileUpdate) apply(profile *entity.User) {
	set := func(target **string, value *string) {
		if value != nil {
			*target = value
		}
	}
	set(&profile.FullName, u.FullName)
	set(&profile.Phone, u.Phone)
	set(&profile.Address, u.Address)
	set(&profile.AvatarURL, u.AvatarURL)
	set(&profile.Location, u.Location)
	set(&profile.LinkedinURL, u.LinkedinURL)
	set(&profile.Bio, u.Bio)
	set(&profile.ThemePreference, u.ThemePreference)
	if u.Role != nil {
		profile.Role = *u.Role
	}
}
