// Package session tracks logged-in accounts. A session is created on login
// with no credential verification beyond non-empty fields, lives until logout
// or idle expiry, and carries the per-session alert dedupe state.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"budgetbuddy/internal/cache"
	"budgetbuddy/internal/core"
)

var ErrNotAuthenticated = errors.New("not authenticated")

const (
	defaultMaxSessions = 1000
	defaultTTL         = 12 * time.Hour
)

// Session is one authenticated browser session. The notified set remembers
// which budget alert states were already surfaced so the same alert is not
// announced twice within the session.
type Session struct {
	Token   string
	Account string

	mu       sync.Mutex
	notified map[string]struct{}
}

// MarkAlerted records that the given budget reached the given alert state and
// reports whether this is the first time within the session. A budget moving
// from warning to danger counts as a new notification.
func (s *Session) MarkAlerted(budgetID string, state core.AlertState) bool {
	key := fmt.Sprintf("notif_%s_%s", budgetID, state)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.notified[key]; seen {
		return false
	}
	s.notified[key] = struct{}{}
	return true
}

// Manager owns the token -> session map. Sessions expire after the TTL and
// the oldest are evicted when the map is full.
type Manager struct {
	sessions *cache.LRUCache[*Session]
}

func NewManager() *Manager {
	return &Manager{
		sessions: cache.NewLRUCache[*Session](defaultMaxSessions, defaultTTL),
	}
}

// CleanExpired implements cache.Cleaner.
func (m *Manager) CleanExpired() int {
	return m.sessions.CleanExpired()
}

// Create starts a session for the account and returns its token.
func (m *Manager) Create(account string) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	s := &Session{
		Token:    token,
		Account:  account,
		notified: make(map[string]struct{}),
	}
	m.sessions.Set(token, s)
	return s, nil
}

// Get resolves a token to its live session.
func (m *Manager) Get(token string) (*Session, bool) {
	if token == "" {
		return nil, false
	}
	return m.sessions.Get(token)
}

// Destroy ends the session. Destroying an unknown token is a no-op.
func (m *Manager) Destroy(token string) {
	m.sessions.Delete(token)
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "sess_" + hex.EncodeToString(b), nil
}
