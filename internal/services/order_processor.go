package services

import (
	"context"

	"github.com/google/uuid"

	"gamestore/internal/domain"
	"gamestore/internal/repos"
)

// OrderWriter persists an order header with its items atomically.
type OrderWriter interface {
	Create(ctx context.Context, o repos.OrderRow, items []repos.OrderItemRow) error
}

// StoreOrderProcessor records orders in the store database.
type StoreOrderProcessor struct {
	Orders OrderWriter
	// OnPlaced, if set, is told the new order id after it is stored.
	OnPlaced func(ctx context.Context, orderID string)
}

func NewStoreOrderProcessor(orders OrderWriter) *StoreOrderProcessor {
	return &StoreOrderProcessor{Orders: orders}
}

func (p *StoreOrderProcessor) ProcessOrder(ctx context.Context, cart *domain.Cart, s domain.ShippingDetails) error {
	o := repos.OrderRow{
		ID:       uuid.NewString(),
		Name:     s.Name,
		Line1:    s.Line1,
		Line2:    s.Line2,
		Line3:    s.Line3,
		City:     s.City,
		State:    s.State,
		Zip:      s.Zip,
		Country:  s.Country,
		GiftWrap: s.GiftWrap,
		Total:    cart.ComputeTotalValue(),
	}
	lines := cart.Lines()
	items := make([]repos.OrderItemRow, 0, len(lines))
	for _, l := range lines {
		items = append(items, repos.OrderItemRow{
			GameID: l.Game.ID,
			Name:   l.Game.Name,
			Qty:    l.Quantity,
			Price:  l.Game.Price,
		})
	}
	if err := p.Orders.Create(ctx, o, items); err != nil {
		return err
	}
	if p.OnPlaced != nil {
		p.OnPlaced(ctx, o.ID)
	}
	return nil
}
