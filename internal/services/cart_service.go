package services

import (
	"context"

	"gamestore/internal/domain"
	"gamestore/internal/metrics"
)

// CartService loads a session's cart, applies one change and stores it again.
type CartService struct {
	Carts   CartStore
	Games   GameRepository
	Metrics *metrics.StoreMetrics
}

func NewCartService(carts CartStore, games GameRepository, m *metrics.StoreMetrics) *CartService {
	return &CartService{Carts: carts, Games: games, Metrics: m}
}

func (s *CartService) View(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return s.Carts.Load(ctx, sessionID)
}

// Add looks the game up by id so the cart always carries catalog data.
func (s *CartService) Add(ctx context.Context, sessionID string, gameID int64, qty int) error {
	g, err := s.Games.Get(ctx, gameID)
	if err != nil {
		return err
	}
	cart, err := s.Carts.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := cart.AddItem(g, qty); err != nil {
		return err
	}
	if err := s.Carts.Save(ctx, sessionID, cart); err != nil {
		return err
	}
	s.Metrics.RecordCartAdd()
	return nil
}

func (s *CartService) Remove(ctx context.Context, sessionID string, gameID int64) error {
	cart, err := s.Carts.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	cart.RemoveLine(domain.Game{ID: gameID})
	return s.Carts.Save(ctx, sessionID, cart)
}

func (s *CartService) Save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	return s.Carts.Save(ctx, sessionID, cart)
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.Carts.Clear(ctx, sessionID)
}

// Move keeps a visitor's cart when their session id is reissued at sign in.
func (s *CartService) Move(ctx context.Context, fromSessionID, toSessionID string) error {
	return s.Carts.Move(ctx, fromSessionID, toSessionID)
}
