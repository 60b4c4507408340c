package session

import (
	"sync"
	"time"
)

// AuthManager holds the live login flows, one per mobile number. Flows are
// in-memory by design: they live for minutes, own a ticking cooldown, and
// are private to the device driving them. Idle flows are evicted lazily.
type AuthManager struct {
	mu    sync.Mutex
	flows map[string]*authEntry
	ttl   time.Duration
	now   func() time.Time
}

type authEntry struct {
	session *AuthSession
	touched time.Time
}

// NewAuthManager creates a manager that evicts flows idle longer than ttl.
func NewAuthManager(ttl time.Duration) *AuthManager {
	return &AuthManager{
		flows: make(map[string]*authEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// GetOrCreate returns the flow for a mobile number, creating a fresh one
// at Login if none is live.
func (m *AuthManager) GetOrCreate(mobileNumber string) *AuthSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked()

	if e, ok := m.flows[mobileNumber]; ok {
		e.touched = m.now()
		return e.session
	}
	s := NewAuthSession(nil)
	m.flows[mobileNumber] = &authEntry{session: s, touched: m.now()}
	return s
}

// Get returns the live flow for a mobile number, or nil.
func (m *AuthManager) Get(mobileNumber string) *AuthSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked()

	e, ok := m.flows[mobileNumber]
	if !ok {
		return nil
	}
	e.touched = m.now()
	return e.session
}

// Drop closes and removes the flow for a mobile number.
func (m *AuthManager) Drop(mobileNumber string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.flows[mobileNumber]; ok {
		e.session.Close()
		delete(m.flows, mobileNumber)
	}
}

// Close stops every live flow's timer.
func (m *AuthManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.flows {
		e.session.Close()
		delete(m.flows, k)
	}
}

func (m *AuthManager) evictLocked() {
	cutoff := m.now().Add(-m.ttl)
	for k, e := range m.flows {
		if e.touched.Before(cutoff) {
			e.session.Close()
			delete(m.flows, k)
		}
	}
}
