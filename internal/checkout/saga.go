package checkout

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

type State string

const (
	StateLoading     State = "loading"
	StateReady       State = "ready"
	StateSubmitting  State = "submitting"
	StateFailed      State = "failed"
	StateCardHandoff State = "card-handoff"
	StateCashSuccess State = "cash-success"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to check out")

type Backend interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	ShippingQuote(ctx context.Context, sessionID string, subtotal float64) (float64, error)
	SubmitCheckout(ctx context.Context, sessionID string, payload domain.CheckoutPayload) (*domain.Order, error)
	ClearCart(ctx context.Context, sessionID string) error
}

// Page is what the checkout stage renders on entry.
type Page struct {
	State        State       `json:"state"`
	Cart         domain.Cart `json:"cart"`
	ShippingCost float64     `json:"shippingCost"`
	Total        float64     `json:"total"`
}

// Result is the outcome of a submission attempt. Failed results carry the
// user-facing message and keep the draft so the guest can retry; terminal
// results carry the created order and the navigation hand-off.
type Result struct {
	State   State           `json:"state"`
	Order   *domain.Order   `json:"order,omitempty"`
	Message string          `json:"message,omitempty"`
	Handoff *domain.Handoff `json:"handoff,omitempty"`
}

type Saga struct {
	backend Backend
	store   session.Store
	events  *events.Publisher
}

func NewSaga(b Backend, store session.Store, publisher *events.Publisher) *Saga {
	return &Saga{
		backend: b,
		store:   store,
		events:  publisher,
	}
}

// Begin loads the cart and requests a shipping quote keyed by its subtotal.
// A failed quote is non-fatal; shipping defaults to 0 and the guest may still
// submit.
func (s *Saga) Begin(ctx context.Context, sessionID string) (*Page, error) {
	cart, err := s.backend.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	var shippingCost float64
	quote, err := s.backend.ShippingQuote(ctx, sessionID, cart.Subtotal)
	if err != nil {
		log.Printf("shipping quote failed for session %s: %v", sessionID, err)
	} else {
		shippingCost = quote
	}

	return &Page{
		State:        StateReady,
		Cart:         *cart,
		ShippingCost: shippingCost,
		Total:        cart.Subtotal + shippingCost,
	}, nil
}

// Submit validates the draft locally, posts the checkout, persists the order
// echo and the draft for the later stages, clears the cart, and branches on
// the payment method.
func (s *Saga) Submit(ctx context.Context, sessionID string, draft *domain.CheckoutDraft) (*Result, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	order, err := s.backend.SubmitCheckout(ctx, sessionID, draft.Payload())
	if err != nil {
		// Back to ready; the draft is not cleared on failure.
		return &Result{
			State:   StateFailed,
			Message: backend.ErrorMessage(err, "Checkout failed"),
		}, nil
	}

	// The payment stage rebuilds its summary from this echo without a
	// network round trip, and confirmation recovers the guest's contact
	// details from the draft.
	if err := s.store.Set(ctx, sessionID, session.KeyOrder, order); err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, sessionID, session.KeyDraft, draft); err != nil {
		return nil, err
	}

	// The backend is not confirmed to clear the cart on checkout, so clear
	// it explicitly. Best effort.
	if err := s.backend.ClearCart(ctx, sessionID); err != nil {
		log.Printf("post-checkout cart clear failed for session %s: %v", sessionID, err)
	}

	s.events.Publish(ctx, events.Event{
		Type:      events.TypeCheckoutCompleted,
		SessionID: sessionID,
		OrderRef:  order.OrderRef,
		OrderID:   order.ID,
		Amount:    order.TotalAmount,
	})

	if draft.PaymentMethod == domain.PaymentMethodCash {
		return &Result{
			State: StateCashSuccess,
			Order: order,
			Handoff: &domain.Handoff{
				Target: "/confirmation?orderRef=" + url.QueryEscape(order.OrderRef),
				Delay:  domain.RedirectDelay,
			},
		}, nil
	}

	return &Result{
		State: StateCardHandoff,
		Order: order,
		Handoff: &domain.Handoff{
			Target: "/payment?orderId=" + url.QueryEscape(order.ID),
		},
	}, nil
}
