package catalog

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/blisora/storefront/internal/domain"
	"github.com/blisora/storefront/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	m        sync.Mutex
	products []domain.Product
	cart     *domain.Cart
	err      error

	lastQuery  string
	lastGender string
	addCalls   int
	getCalls   int

	blockUntilCancel bool // Products waits for its context to be cancelled
}

func (m *mockBackend) Products(ctx context.Context, query, gender string) ([]domain.Product, error) {
	m.m.Lock()
	m.lastQuery = query
	m.lastGender = gender
	block := m.blockUntilCancel
	m.m.Unlock()
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockBackend) AddItem(context.Context, string, string, int) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.addCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m *mockBackend) GetCart(context.Context, string) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.getCalls++
	return m.cart, nil
}

type memoryStore struct {
	values map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, sessionID string, key session.Key, out interface{}) error {
	raw, ok := s.values[sessionID+"/"+string(key)]
	if !ok {
		return session.ErrNotFound
	}
	return json.Unmarshal(raw, out)
}

func (s *memoryStore) Set(_ context.Context, sessionID string, key session.Key, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.values[sessionID+"/"+string(key)] = raw
	return nil
}

func (s *memoryStore) Delete(_ context.Context, sessionID string, key session.Key) error {
	delete(s.values, sessionID+"/"+string(key))
	return nil
}

func (s *memoryStore) Close() error { return nil }

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Nocturne Veil", Price: 165},
		{ID: "p2", Name: "Lune Noire Eau de Parfum", Price: 190},
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple name", "Nocturne Veil", "nocturne-veil"},
		{"punctuation collapsed", "Lune & Noire: Eau de Parfum!", "lune-noire-eau-de-parfum"},
		{"leading and trailing stripped", "  Ambre  ", "ambre"},
		{"digits kept", "No 5", "no-5"},
		{"already a slug", "nocturne-veil", "nocturne-veil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}

func TestList_AudiencePersisted(t *testing.T) {
	b := &mockBackend{products: sampleProducts()}
	store := newMemoryStore()
	service := NewService(b, store)

	listings, audience, err := service.List(context.Background(), "s1", "", domain.AudienceHer)
	require.NoError(t, err)

	assert.Equal(t, domain.AudienceHer, audience)
	assert.Equal(t, "women", b.lastGender)
	assert.Len(t, listings, 2)
	assert.Equal(t, "nocturne-veil", listings[0].Slug)

	var stored domain.Audience
	require.NoError(t, store.Get(context.Background(), "s1", session.KeyAudience, &stored))
	assert.Equal(t, domain.AudienceHer, stored)
}

func TestList_StoredAudienceApplies(t *testing.T) {
	b := &mockBackend{products: sampleProducts()}
	store := newMemoryStore()
	require.NoError(t, store.Set(context.Background(), "s1", session.KeyAudience, domain.AudienceHim))
	service := NewService(b, store)

	_, audience, err := service.List(context.Background(), "s1", "", "")
	require.NoError(t, err)

	assert.Equal(t, domain.AudienceHim, audience)
	assert.Equal(t, "men", b.lastGender)
}

func TestList_UnisexSendsNoGender(t *testing.T) {
	b := &mockBackend{products: sampleProducts()}
	service := NewService(b, newMemoryStore())

	_, _, err := service.List(context.Background(), "s1", "  amber  ", domain.AudienceUnisex)
	require.NoError(t, err)

	assert.Equal(t, "", b.lastGender)
	assert.Equal(t, "amber", b.lastQuery)
}

func TestList_NewerSearchSupersedesOlder(t *testing.T) {
	b := &mockBackend{blockUntilCancel: true}
	service := NewService(b, newMemoryStore())

	done := make(chan error, 1)
	go func() {
		_, _, err := service.List(context.Background(), "s1", "first", "")
		done <- err
	}()
	for {
		b.m.Lock()
		started := b.lastQuery == "first"
		b.m.Unlock()
		if started {
			break
		}
	}

	b.m.Lock()
	b.blockUntilCancel = false
	b.products = sampleProducts()
	b.m.Unlock()

	listings, _, err := service.List(context.Background(), "s1", "second", "")
	require.NoError(t, err)
	assert.Len(t, listings, 2)

	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestBySlug(t *testing.T) {
	b := &mockBackend{products: sampleProducts()}
	service := NewService(b, newMemoryStore())

	product, err := service.BySlug(context.Background(), "lune-noire-eau-de-parfum")
	require.NoError(t, err)
	assert.Equal(t, "p2", product.ID)

	_, err = service.BySlug(context.Background(), "no-such-scent")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddToCart_RefetchesForGroundTruth(t *testing.T) {
	b := &mockBackend{
		cart: &domain.Cart{
			Items:    []domain.CartItem{{Product: domain.CartProduct{ID: "p1", Price: 165}, Quantity: 2}},
			Subtotal: 330,
		},
	}
	service := NewService(b, newMemoryStore())

	cart, err := service.AddToCart(context.Background(), "s1", "p1", 2)
	require.NoError(t, err)

	assert.Equal(t, 1, b.addCalls)
	assert.Equal(t, 1, b.getCalls)
	assert.Equal(t, float64(330), cart.Subtotal)
}
