package handlers

import (
	"context"

	"github.com/jmoiron/sqlx"

	"gamestore/internal/config"
	applog "gamestore/internal/log"
	"gamestore/internal/metrics"
	"gamestore/internal/repos"
	"gamestore/internal/services"
)

type Deps struct {
	Sessions services.SessionManager

	GameHandler     *GameHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	AccountHandler  *AccountHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, m *metrics.StoreMetrics) *Deps {
	gameRepo := repos.NewGameRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)

	processor := services.NewStoreOrderProcessor(orderRepo)
	processor.OnPlaced = func(_ context.Context, orderID string) {
		applog.Logger().WithField("order_id", orderID).Info("order.placed")
	}

	catalogSvc := services.NewCatalogService(gameRepo, cfg.PageSize)
	cartSvc := services.NewCartService(cartRepo, gameRepo, m)
	checkoutSvc := services.NewCheckoutService(processor, m)
	authSvc := services.NewAuthService(userRepo)
	adminSvc := services.NewAdminService(gameRepo, m)

	return &Deps{
		Sessions:        authSvc,
		GameHandler:     &GameHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		CheckoutHandler: &CheckoutHandler{Cart: cartSvc, Checkout: checkoutSvc},
		AccountHandler:  &AccountHandler{Auth: authSvc, Sessions: authSvc, Carts: cartSvc},
		AdminHandler:    &AdminHandler{Admin: adminSvc, Orders: orderRepo},
	}
}
