package store

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used by tests and local runs. It
// reproduces the Postgres semantics that matter here: one record per
// normalized email, first concurrent creator wins.
type MemoryStore struct {
	mu    sync.Mutex
	next  int
	users map[string]*UserIdentity // keyed by ID
	links map[string]string        // provider|provider_user_id -> user ID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*UserIdentity),
		links: make(map[string]string),
	}
}

func (m *MemoryStore) Create(ctx context.Context, u NewUser) (*UserIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	norm := NormalizeEmail(u.Email)
	for _, existing := range m.users {
		if NormalizeEmail(existing.Email) == norm {
			return nil, ErrAlreadyExists
		}
	}

	m.next++
	now := time.Now().UTC()
	out := &UserIdentity{
		ID:           strconv.Itoa(m.next),
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		PhotoURL:     u.PhotoURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users[out.ID] = out

	cp := *out
	return &cp, nil
}

func (m *MemoryStore) FindByEmail(ctx context.Context, email string) (*UserIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	norm := NormalizeEmail(email)
	for _, u := range m.users {
		if NormalizeEmail(u.Email) == norm {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindByID(ctx context.Context, id string) (*UserIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryStore) UpdatePhotoURL(ctx context.Context, id string, photoURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PhotoURL = photoURL
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MemoryStore) LinkProvider(ctx context.Context, userID, provider, providerUserID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.links[provider+"|"+providerUserID] = userID
	return nil
}
