package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"frontdesk/internal/domain"
)

// FlashLevel уровень всплывающего уведомления
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
)

// Flash одноразовое уведомление, показывается на следующей странице
type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}

// Session состояние браузерной сессии
type Session struct {
	ID       string
	User     *domain.User
	Token    string
	TableID  int64
	Cart     domain.Cart
	Flashes  []Flash
	LastSeen time.Time
}

func (s Session) clone() Session {
	cp := s
	cp.Cart = s.Cart.Clone()
	if s.User != nil {
		u := *s.User
		cp.User = &u
	}
	if s.Flashes != nil {
		cp.Flashes = append([]Flash(nil), s.Flashes...)
	}
	return cp
}

// SessionStore in-memory сессии. Данные теряются при рестарте.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*Session
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{ttl: ttl, now: time.Now, sessions: make(map[string]*Session)}
}

// Create starts an empty session with a random id.
func (st *SessionStore) Create() Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := &Session{ID: uuid.NewString(), LastSeen: st.now()}
	st.sessions[s.ID] = s
	return s.clone()
}

// Get returns a copy of the session and refreshes its last-seen time.
func (st *SessionStore) Get(id string) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok || st.expiredLocked(s) {
		delete(st.sessions, id)
		return Session{}, ErrNotFound
	}
	s.LastSeen = st.now()
	return s.clone(), nil
}

// Update applies fn to the stored session under the lock.
func (st *SessionStore) Update(id string, fn func(*Session)) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return ErrNotFound
	}
	fn(s)
	s.LastSeen = st.now()
	return nil
}

// PopFlashes returns and clears pending flashes.
func (st *SessionStore) PopFlashes(id string) []Flash {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil
	}
	out := s.Flashes
	s.Flashes = nil
	return out
}

func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Sweep drops expired sessions and returns how many were removed.
func (st *SessionStore) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if st.expiredLocked(s) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

func (st *SessionStore) expiredLocked(s *Session) bool {
	return st.ttl > 0 && st.now().Sub(s.LastSeen) > st.ttl
}
