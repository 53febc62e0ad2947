package session

import "sync"

// Roles, as declared by the backend in token claims and user payloads.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Session is an immutable snapshot of the signed-in state. A nil User means
// anonymous; Token may still be empty in that case.
type Session struct {
	Token string
	User  *User
}

func (s Session) IsAnonymous() bool { return s.User == nil }

// Store holds the process-wide session and notifies subscribers on change.
// Views treat the Session value as read-only; only the login/logout lifecycle
// goes through Set/Clear.
type Store struct {
	mu      sync.RWMutex
	current Session
	subs    map[int]func(Session)
	nextSub int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func(Session))}
}

func (st *Store) Current() Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Token implements the API client's token source.
func (st *Store) Token() string {
	return st.Current().Token
}

func (st *Store) Set(s Session) {
	st.mu.Lock()
	st.current = s
	subs := make([]func(Session), 0, len(st.subs))
	for _, fn := range st.subs {
		subs = append(subs, fn)
	}
	st.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

func (st *Store) Clear() {
	st.Set(Session{})
}

// Subscribe registers fn to run on every session change; the returned func
// cancels the subscription.
func (st *Store) Subscribe(fn func(Session)) (cancel func()) {
	st.mu.Lock()
	id := st.nextSub
	st.nextSub++
	st.subs[id] = fn
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.subs, id)
		st.mu.Unlock()
	}
}

// Restore rebuilds a session from a previously issued token, eg at app start.
func (st *Store) Restore(token string) error {
	if token == "" {
		return nil
	}
	usr, err := UserFromToken(token)
	if err != nil {
		return err
	}
	st.Set(Session{Token: token, User: usr})
	return nil
}
