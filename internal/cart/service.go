package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/blisora/storefront/internal/domain"
	"golang.org/x/sync/singleflight"
)

var (
	ErrLineBusy         = errors.New("another update for this item is still in flight")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
)

type Backend interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	UpdateItem(ctx context.Context, sessionID, productID string, quantity int, variant *domain.Variant) (*domain.Cart, error)
}

// View is what the cart page renders: the cart, its derived summary, and an
// optional non-blocking notice when loading fell back to an empty cart.
type View struct {
	Cart          domain.Cart `json:"cart"`
	Summary       Summary     `json:"summary"`
	CheckoutReady bool        `json:"checkoutReady"`
	Notice        string      `json:"notice,omitempty"`
}

type Service struct {
	backend Backend
	sfg     singleflight.Group // collapses concurrent reads per session

	mu       sync.Mutex
	inflight map[string]struct{} // sessionID+lineKey of mutations in flight
}

func NewService(backend Backend) *Service {
	return &Service{
		backend:  backend,
		inflight: make(map[string]struct{}),
	}
}

// Load fetches the authoritative cart. Any failure is treated as an empty
// cart with a notice; the cart page never renders a page-level error.
func (s *Service) Load(ctx context.Context, sessionID string) View {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		return s.backend.GetCart(ctx, sessionID)
	})
	if err != nil {
		log.Printf("cart load failed for session %s: %v", sessionID, err)
		return View{
			Cart:    domain.Cart{Items: []domain.CartItem{}},
			Summary: Summarize(nil),
			Notice:  "Failed to load cart",
		}
	}

	cart := v.(*domain.Cart)
	return View{
		Cart:          *cart,
		Summary:       Summarize(cart),
		CheckoutReady: !cart.IsEmpty(),
	}
}

// SetQuantity issues a quantity mutation for one cart line and re-reads the
// cart for ground truth; there is no optimistic local update. Quantity 0
// removes the line. While a mutation for a given line is in flight, further
// mutations for that line are rejected; unrelated lines proceed.
func (s *Service) SetQuantity(ctx context.Context, sessionID, productID string, quantity int, variant *domain.Variant) (View, error) {
	if quantity < 0 {
		return View{}, ErrNegativeQuantity
	}

	guard := sessionID + ":" + domain.LineKey(productID, variant)
	if !s.acquire(guard) {
		return View{}, ErrLineBusy
	}
	defer s.release(guard)

	if _, err := s.backend.UpdateItem(ctx, sessionID, productID, quantity, variant); err != nil {
		return View{}, err
	}

	cart, err := s.backend.GetCart(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	return View{
		Cart:          *cart,
		Summary:       Summarize(cart),
		CheckoutReady: !cart.IsEmpty(),
	}, nil
}

// Remove is a quantity-0 mutation.
func (s *Service) Remove(ctx context.Context, sessionID, productID string, variant *domain.Variant) (View, error) {
	return s.SetQuantity(ctx, sessionID, productID, 0, variant)
}

func (s *Service) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *Service) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}
