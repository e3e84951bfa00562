package store

import "context"

// MockStore wraps a MemoryStore and lets tests inject failures per operation.
type MockStore struct {
	*MemoryStore

	GetError    error
	SetError    error
	DeleteError error
	KeysError   error

	SetCalls int
}

// NewMockStore returns an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{MemoryStore: NewMemoryStore()}
}

func (m *MockStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetError != nil {
		return nil, false, m.GetError
	}
	return m.MemoryStore.Get(ctx, key)
}

func (m *MockStore) Set(ctx context.Context, key string, value []byte) error {
	m.SetCalls++
	if m.SetError != nil {
		return m.SetError
	}
	return m.MemoryStore.Set(ctx, key, value)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	return m.MemoryStore.Delete(ctx, key)
}

func (m *MockStore) Keys(ctx context.Context) ([]string, error) {
	if m.KeysError != nil {
		return nil, m.KeysError
	}
	return m.MemoryStore.Keys(ctx)
}
