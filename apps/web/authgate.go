package web

import "github.com/careerpath/frontend/core/session"

// AuthGate guards every admin page: anonymous or non-admin users are
// redirected home before any data fetch happens. Public pages do not use it;
// they treat the session as optional.
type AuthGate struct {
	sess *session.Store
	nav  Navigator
}

func NewAuthGate(sess *session.Store, nav Navigator) *AuthGate {
	return &AuthGate{sess: sess, nav: nav}
}

// Allow reports whether the current user may see admin pages; on refusal it
// redirects home and the caller must not fetch.
func (g *AuthGate) Allow() bool {
	s := g.sess.Current()
	if s.User == nil || !s.User.IsAdmin() {
		g.nav.Navigate(HomeRoute)
		return false
	}
	return true
}

// Watch re-runs the check whenever the session changes, eg on logout while an
// admin page is open. The returned func stops watching.
func (g *AuthGate) Watch() (cancel func()) {
	return g.sess.Subscribe(func(session.Session) {
		g.Allow()
	})
}
