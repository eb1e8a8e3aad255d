package session

import (
	"context"
	"sync"
	"time"

	"clientflow/cmd/internal/domain/entity"
	"clientflow/cmd/internal/localstore"

	"github.com/labstack/gommon/log"
)

const defaultTimeout = 10 * time.Second

// Store holds the session state for one application instance. All mutation
// goes through its operations; reads are safe from any goroutine.
type Store struct {
	auth      Authenticator
	profiles  ProfileStore
	artifacts *localstore.Store
	display   *DocumentFlag
	notify    Notifier
	timeout   time.Duration
	redirect  func(path string)

	mu       sync.RWMutex
	identity *Identity
	profile  *entity.User
	loading  bool

	stop chan struct{}
	done chan struct{}
}

type Config struct {
	Auth      Authenticator
	Profiles  ProfileStore
	Artifacts *localstore.Store
	Display   *DocumentFlag
	Notifier  Notifier
	// Timeout bounds every backend round-trip so a hung call cannot pin the
	// store in its loading state forever.
	Timeout time.Duration
	// Redirect performs the hard navigation after sign-out. Optional.
	Redirect func(path string)
}

func NewStore(cfg Config) *Store {
	s := &Store{
		auth:      cfg.Auth,
		profiles:  cfg.Profiles,
		artifacts: cfg.Artifacts,
		display:   cfg.Display,
		notify:    cfg.Notifier,
		timeout:   cfg.Timeout,
		redirect:  cfg.Redirect,
		loading:   true,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	if s.notify == nil {
		s.notify = LogNotifier{}
	}
	if s.display == nil {
		s.display = &DocumentFlag{}
	}
	if s.redirect == nil {
		s.redirect = func(string) {}
	}

	go s.run()
	return s
}

// Close stops the auth-event loop.
func (s *Store) Close() {
	close(s.stop)
	<-s.done
}

// Initialize resolves any stored credential and fetches the profile. The
// store always leaves its loading state afterwards, whatever the outcome; a
// profile fetch failure is logged and leaves the profile absent.
func (s *Store) Initialize(ctx context.Context) {
	defer s.setLoading(false)

	ctx, cancel := s.bound(ctx)
	defer cancel()

	identity, err := s.auth.CurrentUser(ctx)
	if err != nil {
		log.Errorf("session: failed to resolve stored credential: %v", err)
		return
	}

	s.mu.Lock()
	s.identity = identity
	if identity == nil {
		s.profile = nil
	}
	s.mu.Unlock()

	if identity != nil {
		s.fetchProfile(ctx, identity.ID)
	}
}

// SignIn authenticates with email and password. Stale local auth artifacts
// are cleared first and a best-effort global sign-out is attempted, so a
// prior session's cached credentials cannot conflict with the new one. The
// profile fetch happens asynchronously via the auth-event loop.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	s.artifacts.ClearPrefix(localstore.AuthPrefix)

	// Defensive clear, not a precondition: ignore the outcome.
	_ = s.auth.GlobalSignOut(ctx)

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if _, err := s.auth.SignIn(ctx, email, password); err != nil {
		s.notify.Notify(VariantDestructive, "Sign in failed", err.Error())
		return err
	}

	s.notify.Notify(VariantDefault, "Welcome back!", "You have successfully signed in.")
	return nil
}

// SignUp registers a new credential with the initial profile fields attached
// as metadata. It does not sign the user in; callers route to login next.
func (s *Store) SignUp(ctx context.Context, email, password string, profile ProfileUpdate) error {
	s.setLoading(true)
	defer s.setLoading(false)

	s.artifacts.ClearPrefix(localstore.AuthPrefix)

	ctx, cancel := s.bound(ctx)
	defer cancel()

	metadata := map[string]string{}
	if profile.FullName != nil {
		metadata["full_name"] = *profile.FullName
	}
	if profile.AvatarURL != nil {
		metadata["avatar_url"] = *profile.AvatarURL
	}
	metadata["role"] = entity.RoleCustomer
	if profile.Role != nil {
		metadata["role"] = *profile.Role
	}

	if err := s.auth.SignUp(ctx, email, password, metadata); err != nil {
		s.notify.Notify(VariantDestructive, "Sign up failed", err.Error())
		return err
	}

	s.notify.Notify(VariantDefault, "Account created!", "You have successfully signed up.")
	return nil
}

// SignOut clears local auth artifacts, revokes the credential globally, and
// forces a navigation to the login view so no stale in-memory state survives.
func (s *Store) SignOut(ctx context.Context) error {
	s.artifacts.ClearPrefix(localstore.AuthPrefix)

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.auth.GlobalSignOut(ctx); err != nil {
		s.notify.Notify(VariantDestructive, "Sign out failed", err.Error())
		return err
	}

	s.mu.Lock()
	s.identity = nil
	s.profile = nil
	s.mu.Unlock()

	s.notify.Notify(VariantDefault, "Signed out", "You have been signed out successfully.")
	s.redirect("/login")
	return nil
}

// UpdateProfile applies a partial update to the backend record, then merges
// the same fields into the in-memory profile optimistically. It never touches
// the backend without an active identity.
func (s *Store) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	s.mu.RLock()
	identity := s.identity
	s.mu.RUnlock()

	if identity == nil {
		return ErrNotAuthenticated
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.profiles.UpdateProfile(ctx, identity.ID, update.fields()); err != nil {
		s.notify.Notify(VariantDestructive, "Update failed", err.Error())
		return err
	}

	s.mu.Lock()
	if s.profile != nil {
		update.apply(s.profile)
	}
	s.mu.Unlock()

	s.notify.Notify(VariantDefault, "Profile updated", "Your profile has been updated successfully.")
	return nil
}

// SetTheme persists the theme preference on the profile and flips the
// document-level display flag. Without an identity and profile it is a no-op.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	s.mu.RLock()
	ready := s.identity != nil && s.profile != nil
	s.mu.RUnlock()

	if !ready {
		return nil
	}

	if err := s.UpdateProfile(ctx, ProfileUpdate{ThemePreference: &theme}); err != nil {
		return err
	}

	s.display.SetDark(theme == "dark")
	return nil
}

func (s *Store) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Store) Profile() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	copied := *s.profile
	return &copied
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// run consumes auth-state changes. The backend dispatches events over a
// channel, so the profile fetch below runs on the store's own goroutine after
// the backend's dispatch has returned, never reentrantly inside it.
func (s *Store) run() {
	defer close(s.done)
	for {
		select {
		case <-s.stop:
			return
		case ev, ok := <-s.auth.Events():
			if !ok {
				return
			}
			s.handleAuthEvent(ev)
		}
	}
}

func (s *Store) handleAuthEvent(ev AuthEvent) {
	switch ev.Type {
	case EventSignedIn:
		s.mu.Lock()
		s.identity = ev.Identity
		s.mu.Unlock()

		if ev.Identity != nil {
			ctx, cancel := s.bound(context.Background())
			s.fetchProfile(ctx, ev.Identity.ID)
			cancel()
		}

	case EventSignedOut:
		s.mu.Lock()
		s.identity = nil
		s.profile = nil
		s.mu.Unlock()
	}
}

func (s *Store) fetchProfile(ctx context.Context, id string) {
	profile, err := s.profiles.FetchProfile(ctx, id)
	if err != nil {
		log.Errorf("session: failed to fetch profile %s: %v", id, err)
		return
	}
	if profile == nil {
		return
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *Store) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}
