package handlers

import (
	"github.com/gofiber/fiber/v2"

	"gamestore/internal/domain"
	applog "gamestore/internal/log"
	"gamestore/internal/services"
	"gamestore/internal/validate"
)

type CheckoutHandler struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
}

func (h *CheckoutHandler) Form(c *fiber.Ctx) error {
	cart, err := h.Cart.View(c.UserContext(), ensureSID(c))
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return serverError(c, "Could not load your cart")
	}
	return render(c, "checkout", fiber.Map{"Cart": cart, "Ship": domain.ShippingDetails{}, "Errors": validate.Errors{}})
}

func shippingForm(c *fiber.Ctx) domain.ShippingDetails {
	return domain.ShippingDetails{
		Name:     c.FormValue("name"),
		Line1:    c.FormValue("line1"),
		Line2:    c.FormValue("line2"),
		Line3:    c.FormValue("line3"),
		City:     c.FormValue("city"),
		State:    c.FormValue("state"),
		Zip:      c.FormValue("zip"),
		Country:  c.FormValue("country"),
		GiftWrap: c.FormValue("giftWrap") == "on" || c.FormValue("giftWrap") == "true",
	}
}

// POST /checkout
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	sid := ensureSID(c)
	ctx := c.UserContext()
	cart, err := h.Cart.View(ctx, sid)
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return serverError(c, "Could not load your cart")
	}

	ship, errs := validate.Shipping(shippingForm(c))
	if !errs.OK() {
		fields := make([]string, 0, len(errs))
		for f := range errs {
			fields = append(fields, f)
		}
		applog.Security(c, "validation.fail", map[string]any{"fields": fields})
	}

	out, err := h.Checkout.Submit(ctx, cart, ship, errs.OK())
	switch out {
	case services.OutcomeEmptyCart:
		errs["Cart"] = "Sorry, your cart is empty!"
		fallthrough
	case services.OutcomeInvalidShipping:
		c.Status(fiber.StatusBadRequest)
		return render(c, "checkout", fiber.Map{"Cart": cart, "Ship": ship, "Errors": errs})
	case services.OutcomeCompleted:
		applog.Audit(c, "checkout.completed", map[string]any{"name": ship.Name, "gift_wrap": ship.GiftWrap})
		data := fiber.Map{"Ship": ship}
		if err := h.Cart.Clear(ctx, sid); err != nil {
			applog.Error(c, "checkout.cart.clear.fail", err, nil)
			data["CartWarning"] = "Your order was placed, but we could not empty your cart. Please remove the items before ordering again."
		}
		return render(c, "completed", data)
	default:
		applog.Error(c, "checkout.process.fail", err, nil)
		return serverError(c, "We could not place your order. Your cart has been kept; please try again.")
	}
}
