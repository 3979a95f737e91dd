package flowstate

import (
	"context"
	"errors"
	"sync"
	"time"
)

// TTL bounds how long a started login flow may wait for its callback.
const TTL = 5 * time.Minute

// ErrNotFound reports an unknown, expired, or already-consumed state.
var ErrNotFound = errors.New("flowstate: state not found")

// State is the one-shot record tying an OAuth callback to the browser
// that started the flow: the anti-CSRF state value and the PKCE code
// verifier whose challenge was sent to the provider.
type State struct {
	State        string    `json:"state"`
	CodeVerifier string    `json:"code_verifier"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store persists in-flight login flows. Consume is strictly one-shot:
// a second Consume for the same state must fail.
type Store interface {
	Save(ctx context.Context, s State) error
	Consume(ctx context.Context, state string) (*State, error)
}

// MemoryStore keeps flow state in-process. Suitable for a single
// instance and for tests.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (m *MemoryStore) Save(ctx context.Context, s State) error {
	if s.State == "" || s.CodeVerifier == "" {
		return errors.New("flowstate: missing state or code verifier")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[s.State] = s
	return nil
}

func (m *MemoryStore) Consume(ctx context.Context, state string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.states[state]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.states, state)

	if time.Since(s.CreatedAt) > TTL {
		return nil, ErrNotFound
	}
	return &s, nil
}
