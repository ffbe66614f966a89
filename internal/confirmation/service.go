package confirmation

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/blisora/storefront/internal/backend"
	"github.com/blisora/storefront/internal/domain"
	"github.com/blisora/storefront/internal/session"
)

// ErrMissingRef means the page was reached without an order reference. No
// lookup is attempted.
var ErrMissingRef = errors.New("no order reference found")

var ErrOrderNotFound = backend.ErrOrderNotFound

type Backend interface {
	OrderByRef(ctx context.Context, sessionID, orderRef, email, phone string) (*domain.Order, error)
}

type View struct {
	Order         domain.Order `json:"order"`
	OrderStatus   Badge        `json:"orderStatus"`
	PaymentStatus Badge        `json:"paymentStatus"`
}

type Service struct {
	backend Backend
	store   session.Store
}

func NewService(b Backend, store session.Store) *Service {
	return &Service{backend: b, store: store}
}

// Load fetches the order by its reference, augmenting the lookup with the
// guest's email and phone recovered from the persisted checkout draft (the
// backend's secondary ownership check for guest orders). The draft is deleted
// once the order loads; it is one-time use.
func (s *Service) Load(ctx context.Context, sessionID, orderRef string) (*View, error) {
	if orderRef == "" {
		return nil, ErrMissingRef
	}

	var email, phone string
	var draft domain.CheckoutDraft
	if err := s.store.Get(ctx, sessionID, session.KeyDraft, &draft); err == nil {
		email = draft.Email
		phone = draft.Phone
	}

	order, err := s.backend.OrderByRef(ctx, sessionID, orderRef, email, phone)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, sessionID, session.KeyDraft); err != nil {
		log.Printf("failed to delete checkout draft for session %s: %v", sessionID, err)
	}

	return newView(order), nil
}

// Track performs the reference+contact lookup as a standalone query form. It
// touches no session state; the contact is free text interpreted as an email
// when it contains "@" and as a phone number otherwise.
func (s *Service) Track(ctx context.Context, orderRef, contact string) (*View, error) {
	if orderRef == "" {
		return nil, ErrMissingRef
	}

	var email, phone string
	contact = strings.TrimSpace(contact)
	if strings.Contains(contact, "@") {
		email = contact
	} else {
		phone = contact
	}

	order, err := s.backend.OrderByRef(ctx, "", orderRef, email, phone)
	if err != nil {
		return nil, err
	}
	return newView(order), nil
}

func newView(order *domain.Order) *View {
	return &View{
		Order:         *order,
		OrderStatus:   OrderStatusBadge(order.OrderStatus),
		PaymentStatus: PaymentStatusBadge(order.PaymentStatus),
	}
}
