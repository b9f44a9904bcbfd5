package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"gamestore/internal/domain"
	"gamestore/internal/log"
	"gamestore/internal/repos"
	"gamestore/internal/services"
	"gamestore/internal/validate"
)

type GameHandler struct {
	Catalog *services.CatalogService
}

// List serves / and /games with an optional category filter and page number.
func (h *GameHandler) List(c *fiber.Ctx) error {
	category, ok := validate.Category(c.Query("category"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return notFound(c, "No such category")
	}
	page, err := h.Catalog.List(c.UserContext(), domain.GameQuery{
		Category: category,
		Page:     validate.Page(c.Query("page")),
	})
	if err != nil {
		log.Error(c, "games.list.fail", err, nil)
		return serverError(c, "Could not load games. Please retry.")
	}
	cats, err := h.Catalog.Categories(c.UserContext())
	if err != nil {
		log.Error(c, "games.categories.fail", err, nil)
		return serverError(c, "Could not load games. Please retry.")
	}
	return render(c, "games", fiber.Map{
		"Page":       page,
		"Categories": cats,
		"ReturnURL":  c.OriginalURL(),
	})
}

// Image writes the stored picture with its own content type.
func (h *GameHandler) Image(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	data, mime, err := h.Catalog.Image(c.UserContext(), id)
	if errors.Is(err, repos.ErrNotFound) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if err != nil {
		log.Error(c, "games.image.fail", err, map[string]any{"game_id": id})
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	c.Set(fiber.HeaderContentType, mime)
	return c.Send(data)
}
