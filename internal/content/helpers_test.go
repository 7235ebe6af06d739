package content

import (
	"context"
	"encoding/json"
	"sync"

	"lawfirm-site/internal/common/errors"

	"github.com/stretchr/testify/mock"
)

// ==========================
// Test Doubles
// ==========================

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key Key) (*Row, error) {
	args := m.Called(ctx, key)
	if r := args.Get(0); r != nil {
		return r.(*Row), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetAll(ctx context.Context) ([]Row, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]Row), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, row Row) error {
	return m.Called(ctx, row).Error(0)
}

func (m *MockStore) Seed(ctx context.Context, key Key, content json.RawMessage) (bool, error) {
	args := m.Called(ctx, key, content)
	return args.Bool(0), args.Error(1)
}

// memStore behaves like a seeded site_content table.
type memStore struct {
	mu   sync.Mutex
	rows map[Key]Row
	err  error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[Key]Row)}
}

func (s *memStore) Get(_ context.Context, key Key) (*Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	r, ok := s.rows[key]
	if !ok {
		return nil, errors.NewSectionNotSeededError(string(key))
	}
	return &r, nil
}

func (s *memStore) GetAll(context.Context) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]Row, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r)
	}
	return out, nil
}

func (s *memStore) Update(_ context.Context, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return errors.NewStoreWriteRejectedError(string(row.Key), s.err)
	}
	if _, ok := s.rows[row.Key]; !ok {
		return errors.NewSectionNotSeededError(string(row.Key))
	}
	s.rows[row.Key] = row
	return nil
}

func (s *memStore) Seed(_ context.Context, key Key, content json.RawMessage) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[key]; ok {
		return false, nil
	}
	s.rows[key] = Row{Key: key, Content: content, UpdatedBy: "seed"}
	return true, nil
}

func (s *memStore) seedDefaults() {
	for _, k := range Keys() {
		raw, _ := json.Marshal(Default(k))
		_, _ = s.Seed(context.Background(), k, raw)
	}
}
