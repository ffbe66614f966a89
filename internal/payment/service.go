package payment

import (
	"context"
	"errors"
	"log"
	"net/url"

	"github.com/blisora/storefront/internal/backend"
	"github.com/blisora/storefront/internal/domain"
	"github.com/blisora/storefront/internal/events"
	"github.com/blisora/storefront/internal/session"
)

var (
	// ErrNoOrder means the page was reached without an order id.
	ErrNoOrder = errors.New("no order found, please complete checkout first")
	// ErrNoOrderEcho means the session store holds no order from checkout.
	// The payment page never re-fetches the order from the server, so this
	// is terminal.
	ErrNoOrderEcho = errors.New("no order data found, please complete checkout first")
)

type Backend interface {
	CompletePayment(ctx context.Context, sessionID, orderID string, payment backend.PaymentRequest) (*domain.Order, error)
}

type State string

const (
	StateReady   State = "ready"
	StateFailed  State = "failed"
	StateSuccess State = "success"
)

type Result struct {
	State   State           `json:"state"`
	Order   *domain.Order   `json:"order,omitempty"`
	Message string          `json:"message,omitempty"`
	Handoff *domain.Handoff `json:"handoff,omitempty"`
}

type Service struct {
	backend Backend
	store   session.Store
	events  *events.Publisher
}

func NewService(b Backend, store session.Store, publisher *events.Publisher) *Service {
	return &Service{
		backend: b,
		store:   store,
		events:  publisher,
	}
}

// Load rebuilds the order summary purely from the echo checkout persisted.
// The totals shown here are whatever checkout produced; the server is not
// re-queried.
func (s *Service) Load(ctx context.Context, sessionID, orderID string) (*domain.OrderSummary, error) {
	if orderID == "" {
		return nil, ErrNoOrder
	}

	var order domain.Order
	err := s.store.Get(ctx, sessionID, session.KeyOrder, &order)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrNoOrderEcho
	}
	if err != nil {
		return nil, err
	}

	summary := order.Summary()
	return &summary, nil
}

// Submit validates the card locally, sends only the cardholder name and the
// last four digits, and on success clears the persisted saga state before
// handing off to confirmation. On failure the session state is untouched so
// the guest can retry.
func (s *Service) Submit(ctx context.Context, sessionID, orderID string, form CardForm) (*Result, error) {
	if orderID == "" {
		return nil, ErrNoOrder
	}

	form.Sanitize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	req := backend.PaymentRequest{
		PaymentMethod: domain.PaymentMethodCard,
		CardDetails: backend.CardDetails{
			Name:  form.Name,
			Last4: form.Last4(),
		},
	}

	order, err := s.backend.CompletePayment(ctx, sessionID, orderID, req)
	if err != nil {
		return &Result{
			State:   StateFailed,
			Message: backend.ErrorMessage(err, "Payment failed"),
		}, nil
	}

	if err := s.store.Delete(ctx, sessionID, session.KeyDraft); err != nil {
		log.Printf("failed to delete checkout draft for session %s: %v", sessionID, err)
	}
	if err := s.store.Delete(ctx, sessionID, session.KeyOrder); err != nil {
		log.Printf("failed to delete order echo for session %s: %v", sessionID, err)
	}

	s.events.Publish(ctx, events.Event{
		Type:      events.TypePaymentCompleted,
		SessionID: sessionID,
		OrderRef:  order.OrderRef,
		OrderID:   order.ID,
		Amount:    order.TotalAmount,
	})

	return &Result{
		State: StateSuccess,
		Order: order,
		Handoff: &domain.Handoff{
			Target: "/confirmation?orderRef=" + url.QueryEscape(order.OrderRef),
			Delay:  domain.RedirectDelay,
		},
	}, nil
}
