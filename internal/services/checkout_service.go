package services

import (
	"context"

	"gamestore/internal/domain"
	"gamestore/internal/metrics"
)

type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeEmptyCart
	OutcomeInvalidShipping
	OutcomeCompleted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmptyCart:
		return "empty_cart"
	case OutcomeInvalidShipping:
		return "invalid_shipping"
	case OutcomeCompleted:
		return "completed"
	default:
		return "failed"
	}
}

// CheckoutService gates order submission and hands valid orders to the processor.
type CheckoutService struct {
	Processor OrderProcessor
	Metrics   *metrics.StoreMetrics
}

func NewCheckoutService(p OrderProcessor, m *metrics.StoreMetrics) *CheckoutService {
	return &CheckoutService{Processor: p, Metrics: m}
}

// Submit checks for an empty cart first, then shipping validity, and only
// then calls the processor once. The cart is cleared only after the
// processor succeeds; a processor error is returned unchanged with
// OutcomeFailed and the cart left as it was.
func (s *CheckoutService) Submit(ctx context.Context, cart *domain.Cart, shipping domain.ShippingDetails, shippingValid bool) (Outcome, error) {
	out, err := s.submit(ctx, cart, shipping, shippingValid)
	s.Metrics.RecordCheckout(out.String())
	return out, err
}

func (s *CheckoutService) submit(ctx context.Context, cart *domain.Cart, shipping domain.ShippingDetails, shippingValid bool) (Outcome, error) {
	if cart == nil || cart.IsEmpty() {
		return OutcomeEmptyCart, nil
	}
	if !shippingValid {
		return OutcomeInvalidShipping, nil
	}
	if err := s.Processor.ProcessOrder(ctx, cart, shipping); err != nil {
		return OutcomeFailed, err
	}
	cart.Clear()
	return OutcomeCompleted, nil
}
