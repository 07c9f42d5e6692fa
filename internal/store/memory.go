package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxHistory bounds how many archived sessions are kept per client; the
// oldest entry is evicted first.
const maxHistory = 10

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

type Session struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// clientState is one browser client's conversation state: the active session,
// the archived sessions and per-session transcripts. Transcripts are never
// trimmed; they live as long as the process.
type clientState struct {
	current     Session
	history     []Session
	transcripts map[string][]Message
	seq         int
}

// MemoryStore keeps conversation state in memory, keyed by an opaque client
// id so that concurrent browser clients never see each other's sessions.
type MemoryStore struct {
	mu      sync.RWMutex
	clients map[string]*clientState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{clients: make(map[string]*clientState)}
}

// clientLocked returns the state for clientID, bootstrapping a default
// "Current Chat" session on first sight. Callers must hold mu.
func (m *MemoryStore) clientLocked(clientID string) *clientState {
	st, ok := m.clients[clientID]
	if !ok {
		st = &clientState{
			current: Session{
				ID:        uuid.NewString(),
				Name:      "Current Chat",
				CreatedAt: time.Now(),
			},
			transcripts: make(map[string][]Message),
		}
		m.clients[clientID] = st
	}
	return st
}

// Current returns the client's active session.
func (m *MemoryStore) Current(clientID string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clientLocked(clientID).current
}

// CreateSession starts a fresh session and makes it the active one. History
// is untouched; call ArchiveCurrent first to keep the old session reachable.
func (m *MemoryStore) CreateSession(clientID string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.clientLocked(clientID)
	st.seq++
	now := time.Now()
	st.current = Session{
		ID:        uuid.NewString(),
		Name:      fmt.Sprintf("Chat %d – %s", st.seq, now.Format("Jan 02, 15:04")),
		CreatedAt: now,
	}
	return st.current
}

// ArchiveCurrent appends the active session to history unless it is already
// there, evicting the oldest entry once the cap is exceeded.
func (m *MemoryStore) ArchiveCurrent(clientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.clientLocked(clientID)
	for _, s := range st.history {
		if s.ID == st.current.ID {
			return
		}
	}
	st.history = append(st.history, st.current)
	if len(st.history) > maxHistory {
		st.history = st.history[1:]
	}
}

// SwitchSession looks up a session by display name across history and the
// active session. On a hit the match becomes active. On a miss the active
// session is returned unchanged with ok=false; the caller decides whether to
// surface that.
func (m *MemoryStore) SwitchSession(clientID, name string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.clientLocked(clientID)
	if st.current.Name == name {
		return st.current, true
	}
	for _, s := range st.history {
		if s.Name == name {
			st.current = s
			return s, true
		}
	}
	return st.current, false
}

// History returns a copy of the archived sessions, oldest first.
func (m *MemoryStore) History(clientID string) []Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.clientLocked(clientID)
	out := make([]Session, len(st.history))
	copy(out, st.history)
	return out
}

// EnsureTranscript initializes an empty transcript for the session id the
// first time it is seen. Idempotent.
func (m *MemoryStore) EnsureTranscript(clientID, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.clientLocked(clientID)
	if _, ok := st.transcripts[sessionID]; !ok {
		st.transcripts[sessionID] = make([]Message, 0, 16)
	}
}

// Append adds a message to the end of the session's transcript.
func (m *MemoryStore) Append(clientID, sessionID string, msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.clientLocked(clientID)
	st.transcripts[sessionID] = append(st.transcripts[sessionID], msg)
}

// Transcript returns a copy of the session's messages in append order.
func (m *MemoryStore) Transcript(clientID, sessionID string) []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.clients[clientID]
	if !ok {
		return nil
	}
	msgs := st.transcripts[sessionID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
