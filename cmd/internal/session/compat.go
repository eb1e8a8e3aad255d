package session

import (
	"context"

	"clientflow/cmd/internal/utils"
)

// LegacyUser is the flat user shape the previous generation of views
// consumed, before identity and profile were split.
type LegacyUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// LegacyProfileUpdate is the subset of profile fields the old views edit.
type LegacyProfileUpdate struct {
	Name     *string
	PhotoURL *string
}

// CompatAdapter bridges old views onto the modern store during the
// incremental migration. It holds no state of its own: the derived user is
// recomputed from the store on every read, so it cannot drift.
type CompatAdapter struct {
	store *Store
}

func NewCompatAdapter(store *Store) *CompatAdapter {
	return &CompatAdapter{store: store}
}

// User derives the legacy shape, or nil when either the identity or the
// profile is absent.
func (a *CompatAdapter) User() *LegacyUser {
	identity := a.store.Identity()
	profile := a.store.Profile()
	if identity == nil || profile == nil {
		return nil
	}

	return &LegacyUser{
		ID:       identity.ID,
		Name:     utils.Deref(profile.FullName),
		Email:    identity.Email,
		Role:     profile.Role,
		PhotoURL: utils.Deref(profile.AvatarURL),
	}
}

func (a *CompatAdapter) IsAuthenticated() bool {
	return a.User() != nil
}

func (a *CompatAdapter) IsLoading() bool {
	return a.store.IsLoading()
}

func (a *CompatAdapter) Login(ctx context.Context, email, password string) error {
	return a.store.SignIn(ctx, email, password)
}

// LoginWithGoogle is deliberately unsupported in this adapter: it fails loud
// rather than degrading into a half-working federated flow.
func (a *CompatAdapter) LoginWithGoogle(context.Context) error {
	return ErrGoogleLoginUnsupported
}

func (a *CompatAdapter) Logout(ctx context.Context) error {
	return a.store.SignOut(ctx)
}

func (a *CompatAdapter) UpdateUserProfile(ctx context.Context, update LegacyProfileUpdate) error {
	return a.store.UpdateProfile(ctx, ProfileUpdate{
		FullName:  update.Name,
		AvatarURL: update.PhotoURL,
	})
}
