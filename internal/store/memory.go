package store

import (
	"context"
	"sync"
	"time"

	"softsell-backend/internal/chat"
	"softsell-backend/internal/leads"
)

// Session is one visitor's in-memory page state.
type Session struct {
	ID         string
	Transcript *chat.Transcript
	Form       *leads.FormState

	// turn serializes chat turns; transcript reads do not take it.
	turn     sync.Mutex
	lastSeen time.Time
}

// LockTurn blocks until no other chat turn of this session is running.
func (s *Session) LockTurn()   { s.turn.Lock() }
func (s *Session) UnlockTurn() { s.turn.Unlock() }

type MemoryStore struct {
	mu            sync.Mutex
	sessions      map[string]*Session
	maxMessages   int
	ttl           time.Duration
	now           func() time.Time
	onSizeChanged func(int)
}

// NewMemoryStore keeps sessions for ttl after last use. ttl <= 0 keeps them
// until Delete. maxMessages caps each transcript.
func NewMemoryStore(maxMessages int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions:    make(map[string]*Session),
		maxMessages: maxMessages,
		ttl:         ttl,
		now:         time.Now,
	}
}

// OnSizeChanged registers a callback invoked with the session count after
// sessions are added or removed.
func (m *MemoryStore) OnSizeChanged(fn func(int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSizeChanged = fn
}

// GetOrCreate returns the session for id, creating a fresh one (greeting
// transcript, empty form) on first use.
func (m *MemoryStore) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		s = &Session{
			ID:         id,
			Transcript: chat.NewTranscript(m.maxMessages),
			Form:       leads.NewFormState(),
		}
		m.sessions[id] = s
		m.notifyLocked()
	}
	s.lastSeen = m.now()
	return s
}

// Get returns the session for id if it exists.
func (m *MemoryStore) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if ok {
		s.lastSeen = m.now()
	}
	return s, ok
}

func (m *MemoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		delete(m.sessions, id)
		m.notifyLocked()
	}
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// EvictExpired drops sessions idle for longer than the TTL and returns how
// many were removed.
func (m *MemoryStore) EvictExpired() int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-m.ttl)
	n := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	if n > 0 {
		m.notifyLocked()
	}
	return n
}

// RunJanitor evicts expired sessions every interval until ctx is done.
func (m *MemoryStore) RunJanitor(ctx context.Context, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.EvictExpired()
		}
	}
}

func (m *MemoryStore) notifyLocked() {
	if m.onSizeChanged != nil {
		m.onSizeChanged(len(m.sessions))
	}
}
