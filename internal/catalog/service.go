package catalog

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/blisora/storefront/internal/domain"
	"github.com/blisora/storefront/internal/session"
)

var ErrProductNotFound = errors.New("product not found")

type Backend interface {
	Products(ctx context.Context, query, gender string) ([]domain.Product, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error)
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
}

// Listing pairs a product with its derived slug for linking.
type Listing struct {
	domain.Product
	Slug string `json:"slug"`
}

type Service struct {
	backend Backend
	store   session.Store

	mu       sync.Mutex
	inflight map[string]*searchSlot // supersedable search per session
}

// searchSlot identifies one in-flight catalog search so a finished search
// only clears its own slot.
type searchSlot struct {
	cancel context.CancelFunc
}

func NewService(b Backend, store session.Store) *Service {
	return &Service{
		backend:  b,
		store:    store,
		inflight: make(map[string]*searchSlot),
	}
}

// List queries the catalog with the optional search text and audience filter.
// An explicitly chosen audience is persisted as the session's last choice;
// otherwise the persisted choice applies. A newer List call for the same
// session cancels the one still in flight — the only cancellation in the
// system; the superseded caller sees context.Canceled.
func (s *Service) List(ctx context.Context, sessionID, query string, audience domain.Audience) ([]Listing, domain.Audience, error) {
	if audience.Valid() {
		if err := s.store.Set(ctx, sessionID, session.KeyAudience, audience); err != nil {
			log.Printf("failed to persist audience for session %s: %v", sessionID, err)
		}
	} else {
		var stored domain.Audience
		if err := s.store.Get(ctx, sessionID, session.KeyAudience, &stored); err == nil && stored.Valid() {
			audience = stored
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	slot := &searchSlot{cancel: cancel}
	s.supersede(sessionID, slot)
	defer s.finish(sessionID, slot)

	products, err := s.backend.Products(ctx, strings.TrimSpace(query), audience.BackendGender())
	if err != nil {
		return nil, audience, err
	}

	listings := make([]Listing, 0, len(products))
	for _, p := range products {
		listings = append(listings, Listing{Product: p, Slug: Slug(p.Name)})
	}
	return listings, audience, nil
}

// BySlug resolves a human-readable slug to a backend product record by
// matching derived slugs over the full listing.
func (s *Service) BySlug(ctx context.Context, slug string) (*domain.Product, error) {
	products, err := s.backend.Products(ctx, "", "")
	if err != nil {
		return nil, err
	}
	for i := range products {
		if Slug(products[i].Name) == slug {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// AddToCart adds the product and re-fetches the cart for ground truth.
func (s *Service) AddToCart(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if _, err := s.backend.AddItem(ctx, sessionID, productID, quantity); err != nil {
		return nil, err
	}
	return s.backend.GetCart(ctx, sessionID)
}

func (s *Service) supersede(sessionID string, slot *searchSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.inflight[sessionID]; ok {
		prev.cancel()
	}
	s.inflight[sessionID] = slot
}

func (s *Service) finish(sessionID string, slot *searchSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Only clear the slot if it is still ours; a newer search may have
	// replaced it already.
	if s.inflight[sessionID] == slot {
		delete(s.inflight, sessionID)
	}
	slot.cancel()
}
