package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
)

type mockReader struct {
	products map[string]domain.Product
	calls    atomic.Int64
	err      error
}

func (m *mockReader) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	m.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

type memCache struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	getErr   error
}

func newMemCache() *memCache {
	return &memCache{products: make(map[string]*domain.Product)}
}

func (m *memCache) Get(_ context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.products[id]
	if !ok {
		return nil, ErrCacheMiss
	}
	return p, nil
}

func (m *memCache) Set(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *memCache) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func TestGetProduct_CacheHitSkipsRepository(t *testing.T) {
	reader := &mockReader{}
	cache := newMemCache()
	cache.products["p1"] = &domain.Product{ID: "p1", Name: "cached"}

	s := NewService(reader, cache)

	p, err := s.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "cached", p.Name)
	assert.Equal(t, int64(0), reader.calls.Load())
}

func TestGetProduct_MissFallsThroughToRepository(t *testing.T) {
	reader := &mockReader{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "from repo", Price: "300"},
	}}
	s := NewService(reader, newMemCache())

	p, err := s.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "from repo", p.Name)
	assert.Equal(t, int64(1), reader.calls.Load())
}

func TestGetProduct_CacheErrorDegradesToRepository(t *testing.T) {
	reader := &mockReader{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "from repo"},
	}}
	cache := newMemCache()
	cache.getErr = errors.New("redis down")

	s := NewService(reader, cache)

	p, err := s.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "from repo", p.Name)
}

func TestGetProduct_SurvivesCancelledCaller(t *testing.T) {
	reader := &mockReader{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "from repo"},
	}}
	s := NewService(reader, newMemCache())

	// The lookup runs under its own deadline: a caller whose request
	// is already dead must not poison the shared flight.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := s.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "from repo", p.Name)
}

func TestGetProduct_NotFoundPropagates(t *testing.T) {
	s := NewService(&mockReader{}, newMemCache())

	_, err := s.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
