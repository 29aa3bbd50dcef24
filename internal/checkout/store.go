package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"skybook/internal/seats"
)

var ErrSessionNotFound = errors.New("checkout session not found")

// Session carries one user's checkout state: the aggregate, the current
// step, and the seat-selection engine for the leg being edited (if any).
type Session struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Current   Step                   `json:"current_step"`
	Aggregate Aggregate              `json:"aggregate"`
	Engine    *seats.SelectionEngine `json:"engine,omitempty"`
	EngineLeg Leg                    `json:"engine_leg,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Leg names one directional flight segment within a booking.
type Leg string

const (
	LegOutbound Leg = "outbound"
	LegInbound  Leg = "inbound"
)

func (l Leg) Valid() bool {
	return l == LegOutbound || l == LegInbound
}

// Store is the injected session persistence capability. Sessions are
// serialized in and out so no caller can hold a competing live copy of
// the aggregate.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, sessionID string) error
}

// memoryStore keeps serialized sessions in an in-process map. The map
// is mutex-guarded because the HTTP server is concurrent across
// sessions; one session is still only ever mutated by its one user.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[string][]byte)}
}

func (s *memoryStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	data, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *memoryStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = data
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
