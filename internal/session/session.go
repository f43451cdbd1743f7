// Package session keeps ephemeral per-user state between updates.
package session

import (
	"sync"
	"time"

	"github.com/t8wy/coverbot/internal/itunes"
)

const (
	// Idle timeout after which a session is dropped. Swept
	// opportunistically on access rather than by a background timer.
	defaultTTL = time.Hour

	maxRecentSearches = 10
)

// Preferences are per-user settings carried across searches.
type Preferences struct {
	HighQuality bool
	MaxResults  int
}

func defaultPreferences() Preferences {
	return Preferences{HighQuality: true, MaxResults: 5}
}

// SearchContext remembers a user's last result set so selection and
// pagination callbacks can resolve against it.
type SearchContext struct {
	Query   string
	Kind    itunes.Kind
	Results []itunes.Candidate
	Page    int
	At      time.Time
}

// Session is one user's ephemeral record. All mutation goes through
// the Store so the last-activity timestamp stays accurate.
type Session struct {
	UserID         int64
	LastActivity   time.Time
	RecentSearches []string
	LastSearch     *SearchContext
	Preferences    Preferences
}

// Store holds user sessions in memory with idle-timeout eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	ttl      time.Duration

	// now is swapped in tests to control the clock.
	now func() time.Time
}

// NewStore creates a Store with the default one-hour idle timeout.
func NewStore() *Store {
	return NewStoreTTL(defaultTTL)
}

// NewStoreTTL creates a Store with a custom idle timeout.
func NewStoreTTL(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the user's session, creating a fresh one when none
// exists or the previous one has idled out. Access refreshes the
// last-activity timestamp.
func (s *Store) Get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(userID)
}

func (s *Store) get(userID int64) *Session {
	now := s.now()

	sess, ok := s.sessions[userID]
	if ok && now.Sub(sess.LastActivity) > s.ttl {
		delete(s.sessions, userID)
		ok = false
	}
	if !ok {
		sess = &Session{
			UserID:      userID,
			Preferences: defaultPreferences(),
		}
		s.sessions[userID] = sess
	}

	sess.LastActivity = now
	return sess
}

// RecordSearch prepends a query to the user's recent searches, keeping
// the newest first and the list bounded. A repeated query moves to the
// front instead of duplicating.
func (s *Store) RecordSearch(userID int64, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(userID)

	recent := make([]string, 0, maxRecentSearches)
	recent = append(recent, query)
	for _, q := range sess.RecentSearches {
		if q == query {
			continue
		}
		recent = append(recent, q)
		if len(recent) == maxRecentSearches {
			break
		}
	}
	sess.RecentSearches = recent
}

// SetLastSearch replaces the user's remembered result set. It lives on
// the session, so it is dropped together with the rest of the user's
// state when the session idles out.
func (s *Store) SetLastSearch(userID int64, sc *SearchContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sc != nil && sc.At.IsZero() {
		sc.At = s.now()
	}
	s.get(userID).LastSearch = sc
}

// LastSearch returns the user's remembered result set, or nil when
// none was stored or the session has idled out.
func (s *Store) LastSearch(userID int64) *SearchContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(userID).LastSearch
}

// UpdatePreferences applies fn to the user's preferences under the
// store lock.
func (s *Store) UpdatePreferences(userID int64, fn func(*Preferences)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(userID)
	fn(&sess.Preferences)
}

// Sweep drops every session idle beyond the timeout and reports how
// many were removed. Get already evicts lazily; Sweep exists for
// periodic cleanup of users who never come back.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActivity) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
