package session

// GuardDecision tells a view gate what to do with a navigation attempt.
type GuardDecision int

const (
	// GuardWait: the initial session check has not resolved; show a
	// placeholder and do not redirect yet.
	GuardWait GuardDecision = iota
	// GuardRedirectLogin: loaded and unauthenticated.
	GuardRedirectLogin
	// GuardAllow: render the protected content.
	GuardAllow
)

// Guard gates dashboard content on session state. It is a pure function of
// the store with no state of its own, which is what prevents the
// flash-redirect to login before the first credential check resolves.
func (s *Store) Guard() GuardDecision {
	if s.IsLoading() {
		return GuardWait
	}
	if !s.IsAuthenticated() {
		return GuardRedirectLogin
	}
	return GuardAllow
}
