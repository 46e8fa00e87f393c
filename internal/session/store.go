package session

import (
	"slices"
	"sync"
)

type Speaker string

const (
	SpeakerUser  Speaker = "User"
	SpeakerAgent Speaker = "Agent"
)

type Turn struct {
	Speaker Speaker
	Text    string
}

// Store holds the in-progress transcript of each active call.
type Store interface {
	Append(callID string, turn Turn)
	// Get returns a copy; a call with no session yields nil.
	Get(callID string) []Turn
	// Clear removes the session. Unknown ids are ignored.
	Clear(callID string)
	// Exists reports whether callID has a live session.
	Exists(callID string) bool
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Turn
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]Turn)}
}

func (s *MemoryStore) Append(callID string, turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[callID] = append(s.sessions[callID], turn)
}

func (s *MemoryStore) Get(callID string) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sessions[callID])
}

func (s *MemoryStore) Clear(callID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, callID)
}

func (s *MemoryStore) Exists(callID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[callID]
	return ok
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
