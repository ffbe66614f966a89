package payment

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/blisora/storefront/internal/backend"
	"github.com/blisora/storefront/internal/domain"
	"github.com/blisora/storefront/internal/events"
	"github.com/blisora/storefront/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	order *domain.Order
	err   error

	calls   int
	lastReq backend.PaymentRequest
}

func (m *mockBackend) CompletePayment(_ context.Context, _, _ string, req backend.PaymentRequest) (*domain.Order, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
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

func validCard() CardForm {
	return CardForm{
		Name:   "Amira Khoury",
		Number: "4111 1111 1111 1234",
		Expiry: "12/27",
		CVC:    "123",
	}
}

func seedOrder(t *testing.T, store *memoryStore, order domain.Order) {
	t.Helper()
	require.NoError(t, store.Set(context.Background(), "s1", session.KeyOrder, order))
	require.NoError(t, store.Set(context.Background(), "s1", session.KeyDraft, domain.CheckoutDraft{Email: "amira@example.com"}))
}

func TestLoad_MissingOrderID(t *testing.T) {
	b := &mockBackend{}
	service := NewService(b, newMemoryStore(), events.NewPublisher())

	_, err := service.Load(context.Background(), "s1", "")

	assert.ErrorIs(t, err, ErrNoOrder)
	assert.Equal(t, 0, b.calls)
}

func TestLoad_MissingEcho(t *testing.T) {
	b := &mockBackend{}
	service := NewService(b, newMemoryStore(), events.NewPublisher())

	_, err := service.Load(context.Background(), "s1", "ord-1")

	assert.ErrorIs(t, err, ErrNoOrderEcho)
	assert.Equal(t, 0, b.calls)
}

func TestLoad_SummaryFromEchoWithoutNetwork(t *testing.T) {
	b := &mockBackend{}
	store := newMemoryStore()
	seedOrder(t, store, domain.Order{
		ID:          "ord-1",
		OrderRef:    "BLIS-2001",
		Subtotal:    165,
		TotalAmount: 173,
	})
	service := NewService(b, store, events.NewPublisher())

	summary, err := service.Load(context.Background(), "s1", "ord-1")
	require.NoError(t, err)

	// The total is whatever checkout echoed, not recomputed here.
	assert.Equal(t, float64(173), summary.Total)
	assert.Equal(t, float64(165), summary.Subtotal)
	assert.Equal(t, 0, b.calls)
}

func TestSubmit_InvalidCardSkipsNetwork(t *testing.T) {
	b := &mockBackend{}
	service := NewService(b, newMemoryStore(), events.NewPublisher())

	form := validCard()
	form.Number = "4111"

	_, err := service.Submit(context.Background(), "s1", "ord-1", form)

	assert.ErrorIs(t, err, ErrCardNumberInvalid)
	assert.Equal(t, 0, b.calls)
}

func TestSubmit_PayloadCarriesOnlyNameAndLast4(t *testing.T) {
	b := &mockBackend{order: &domain.Order{ID: "ord-1", OrderRef: "BLIS-2001"}}
	store := newMemoryStore()
	seedOrder(t, store, domain.Order{ID: "ord-1"})
	service := NewService(b, store, events.NewPublisher())

	_, err := service.Submit(context.Background(), "s1", "ord-1", validCard())
	require.NoError(t, err)

	assert.Equal(t, "Amira Khoury", b.lastReq.CardDetails.Name)
	assert.Equal(t, "1234", b.lastReq.CardDetails.Last4)

	raw, err := json.Marshal(b.lastReq)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "4111111111111234")
	assert.NotContains(t, string(raw), "123\"")
}

func TestSubmit_SuccessClearsSagaState(t *testing.T) {
	b := &mockBackend{order: &domain.Order{ID: "ord-1", OrderRef: "BLIS-2001"}}
	store := newMemoryStore()
	seedOrder(t, store, domain.Order{ID: "ord-1", OrderRef: "BLIS-2001"})
	service := NewService(b, store, events.NewPublisher())

	result, err := service.Submit(context.Background(), "s1", "ord-1", validCard())
	require.NoError(t, err)

	assert.Equal(t, StateSuccess, result.State)
	require.NotNil(t, result.Handoff)
	assert.Equal(t, "/confirmation?orderRef=BLIS-2001", result.Handoff.Target)
	assert.Equal(t, domain.RedirectDelay, result.Handoff.Delay)
	assert.Empty(t, store.values)
}

func TestSubmit_FailureKeepsSagaState(t *testing.T) {
	b := &mockBackend{err: &backend.APIError{Status: 402, Message: "Card declined"}}
	store := newMemoryStore()
	seedOrder(t, store, domain.Order{ID: "ord-1"})
	service := NewService(b, store, events.NewPublisher())

	result, err := service.Submit(context.Background(), "s1", "ord-1", validCard())
	require.NoError(t, err)

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, "Card declined", result.Message)
	assert.Len(t, store.values, 2)
}
