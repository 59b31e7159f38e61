package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/agentroute/core"
)

// ErrTranscriptNotFound is returned when no transcript exists for the given
// session id.
var ErrTranscriptNotFound = fmt.Errorf("transcript not found")

// Transcript is the finished record of one session: its full history and the
// reason it ended. Transcripts are plain data, suitable for direct JSON
// serialization.
type Transcript struct {
	ID       string            `json:"id"`
	History  []core.Message    `json:"history"`
	Reason   TerminationReason `json:"reason"`
	Turns    int               `json:"turns"`
	Finished time.Time         `json:"finished"`
}

// Store persists finished session transcripts. Implementations must be safe
// for concurrent use; many sessions sharing one registry may finish at once.
type Store interface {
	Save(t Transcript) error
	Get(sessionID string) (Transcript, error)
	List() ([]string, error)
}

// InMemoryStore is a volatile Store implementation keeping transcripts in a
// process local map. It is safe for concurrent access and best suited for
// tests or ephemeral demo servers. Returned transcripts carry a copied
// history slice to prevent external mutation of internal state.
type InMemoryStore struct {
	mu          sync.RWMutex
	transcripts map[string]Transcript
}

// NewInMemoryStore constructs an empty in-memory transcript store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{transcripts: make(map[string]Transcript)}
}

// Save stores a copy of the transcript, overwriting any previous record for
// the same session id.
func (s *InMemoryStore) Save(t Transcript) error {
	if t.ID == "" {
		return fmt.Errorf("transcript must have a session id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcripts[t.ID] = cloneTranscript(t)
	return nil
}

// Get returns the transcript for the given session id.
func (s *InMemoryStore) Get(sessionID string) (Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.transcripts[sessionID]
	if !ok {
		return Transcript{}, ErrTranscriptNotFound
	}
	return cloneTranscript(t), nil
}

// List returns the ids of all stored transcripts.
func (s *InMemoryStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.transcripts))
	for id := range s.transcripts {
		ids = append(ids, id)
	}
	return ids, nil
}

func cloneTranscript(t Transcript) Transcript {
	history := make([]core.Message, len(t.History))
	copy(history, t.History)
	t.History = history
	return t
}
