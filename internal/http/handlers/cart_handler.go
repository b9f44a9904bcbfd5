package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"gamestore/internal/domain"
	applog "gamestore/internal/log"
	"gamestore/internal/repos"
	"gamestore/internal/services"
	"gamestore/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func cartRedirect(c *fiber.Ctx, returnURL string) error {
	return c.Redirect("/cart?returnUrl=" + url.QueryEscape(returnURL))
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cart, err := h.Cart.View(c.UserContext(), sid)
	if err != nil {
		applog.Error(c, "cart.load.fail", err, nil)
		return serverError(c, "Could not load your cart")
	}
	return render(c, "cart", fiber.Map{
		"Cart":      cart,
		"ReturnURL": validate.ReturnURL(c.Query("returnUrl")),
	})
}

// POST /cart/add
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.FormValue("gameId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "gameId"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid gameId")
	}
	qty, ok := validate.Qty(c.FormValue("qty"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "qty"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid quantity")
	}
	returnURL := validate.ReturnURL(c.FormValue("returnUrl"))

	err := h.Cart.Add(c.UserContext(), sid, id, qty)
	switch {
	case errors.Is(err, repos.ErrNotFound):
		return notFound(c, "This game is no longer available")
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).SendString("invalid quantity")
	case err != nil:
		applog.Error(c, "cart.add.fail", err, map[string]any{"game_id": id})
		return serverError(c, "Could not update your cart")
	}
	applog.Info(c, "cart.add", map[string]any{"game_id": id, "qty": qty})
	return cartRedirect(c, returnURL)
}

// POST /cart/remove
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.FormValue("gameId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "gameId"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid gameId")
	}
	if err := h.Cart.Remove(c.UserContext(), sid, id); err != nil {
		applog.Error(c, "cart.remove.fail", err, map[string]any{"game_id": id})
		return serverError(c, "Could not update your cart")
	}
	return cartRedirect(c, validate.ReturnURL(c.FormValue("returnUrl")))
}
