package projection

import (
	"context"
	"sync"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// MemoryStore holds the projection in process memory. It stores the encoded
// JSON rather than the struct so corrupt values can be injected in tests.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (*domain.Projection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return decode(m.data)
}

func (m *MemoryStore) Save(_ context.Context, p domain.Projection) error {
	data, err := encode(p)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.data = nil
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Ping(_ context.Context) error { return nil }

// SetRaw replaces the stored bytes verbatim.
func (m *MemoryStore) SetRaw(data []byte) {
	m.mu.Lock()
	m.data = append([]byte(nil), data...)
	m.mu.Unlock()
}
