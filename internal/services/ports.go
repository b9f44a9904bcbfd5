package services

import (
	"context"

	"gamestore/internal/domain"
)

// GameRepository is the catalog storage the services read and write.
type GameRepository interface {
	List(ctx context.Context, q domain.GameQuery) ([]domain.Game, error)
	Count(ctx context.Context, category string) (int, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id int64) (domain.Game, error)
	Save(ctx context.Context, g *domain.Game) error
	// Delete returns (nil, nil) when the game does not exist.
	Delete(ctx context.Context, id int64) (*domain.Game, error)
}

// CartStore keeps one cart per session id.
type CartStore interface {
	Load(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error
	Clear(ctx context.Context, sessionID string) error
	// Move hands the cart of one session id to another.
	Move(ctx context.Context, fromSessionID, toSessionID string) error
}

// OrderProcessor places a finished order: payment, persistence, notification.
type OrderProcessor interface {
	ProcessOrder(ctx context.Context, cart *domain.Cart, shipping domain.ShippingDetails) error
}

type AuthProvider interface {
	Authenticate(ctx context.Context, username, password string) (bool, error)
}

// SessionManager ties the sid cookie to a signed-in user.
type SessionManager interface {
	SignIn(ctx context.Context, sid, username string) error
	SignOut(ctx context.Context, sid string) error
	CurrentUser(ctx context.Context, sid string) (*domain.User, error)
}
