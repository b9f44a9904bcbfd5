package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"gamestore/internal/domain"
	applog "gamestore/internal/log"
	"gamestore/internal/repos"
	"gamestore/internal/services"
	"gamestore/internal/validate"
)

type AdminHandler struct {
	Admin  *services.AdminService
	Orders *repos.OrderRepo
}

// GET /admin
func (h *AdminHandler) Index(c *fiber.Ctx) error {
	games, err := h.Admin.List(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.games.list.fail", err, nil)
		return serverError(c, "Could not load games")
	}
	return render(c, "admin_index", fiber.Map{"Games": games})
}

// GET /admin/create
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	return render(c, "admin_edit", fiber.Map{"Game": domain.Game{}, "Errors": validate.Errors{}})
}

// GET /admin/edit/:id
func (h *AdminHandler) Edit(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Game not found")
	}
	g, err := h.Admin.Get(c.UserContext(), id)
	if errors.Is(err, repos.ErrNotFound) {
		return notFound(c, "Game not found")
	}
	if err != nil {
		applog.Error(c, "admin.games.get.fail", err, map[string]any{"game_id": id})
		return serverError(c, "Could not load game")
	}
	return render(c, "admin_edit", fiber.Map{"Game": g, "Errors": validate.Errors{}})
}

// readImage returns nil when no file was uploaded.
func readImage(fh *multipart.FileHeader) (*services.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &services.Image{Data: data, MimeType: http.DetectContentType(data)}, nil
}

// POST /admin/edit (multipart)
func (h *AdminHandler) Save(c *fiber.Ctx) error {
	g, errs := validate.GameForm(c.FormValue("name"), c.FormValue("description"), c.FormValue("category"), c.FormValue("price"))
	if raw := strings.TrimSpace(c.FormValue("id")); raw != "" && raw != "0" {
		id, ok := validate.ID(raw)
		if !ok {
			return c.Status(fiber.StatusBadRequest).SendString("invalid id")
		}
		g.ID = id
	}

	var img *services.Image
	// FormFile fails when nothing was uploaded; the game keeps its image then.
	if fh, err := c.FormFile("image"); err == nil {
		img, err = readImage(fh)
		if err != nil {
			applog.Error(c, "admin.games.upload.fail", err, nil)
			return serverError(c, "Could not read the uploaded image")
		}
		if img != nil {
			mime, ok := validate.ImageMime(img.MimeType)
			if !ok {
				errs["Image"] = "Please upload a PNG, JPEG, GIF or WebP image"
			}
			img.MimeType = mime
		}
	}

	if !errs.OK() {
		applog.Security(c, "validation.fail", map[string]any{"form": "game", "errors": len(errs)})
		c.Status(fiber.StatusBadRequest)
		return render(c, "admin_edit", fiber.Map{"Game": g, "Errors": errs})
	}

	msg, err := h.Admin.Save(c.UserContext(), &g, img)
	if errors.Is(err, repos.ErrNotFound) {
		return notFound(c, "Game not found")
	}
	if err != nil {
		applog.Error(c, "admin.games.save.fail", err, map[string]any{"game_id": g.ID})
		return serverError(c, "Could not save game")
	}
	applog.Audit(c, "admin.games.save", map[string]any{"game_id": g.ID, "image": img != nil})
	setFlash(c, msg)
	return c.Redirect("/admin")
}

// POST /admin/delete
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("gameId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid gameId")
	}
	msg, err := h.Admin.Delete(c.UserContext(), id)
	if err != nil {
		applog.Error(c, "admin.games.delete.fail", err, map[string]any{"game_id": id})
		return serverError(c, "Could not delete game")
	}
	if msg != "" {
		applog.Audit(c, "admin.games.delete", map[string]any{"game_id": id})
	}
	setFlash(c, msg)
	return c.Redirect("/admin")
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.Orders.ListLatest(c.UserContext(), 100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return serverError(c, "Could not load orders")
	}
	return render(c, "admin_orders", fiber.Map{"Orders": ords})
}

// GET /admin/orders/:id
func (h *AdminHandler) OrderDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	order, items, err := h.Orders.Get(c.UserContext(), id)
	if errors.Is(err, repos.ErrNotFound) {
		return notFound(c, "Order not found")
	}
	if err != nil {
		applog.Error(c, "admin.orders.get.fail", err, map[string]any{"order_id": id})
		return serverError(c, "Could not load order")
	}
	return render(c, "admin_order", fiber.Map{"Order": order, "Items": items})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status, ok := validate.OrderStatus(c.FormValue("status"))
	if id == "" || !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id or status")
	}
	err := h.Orders.UpdateStatus(c.UserContext(), id, status)
	if errors.Is(err, repos.ErrNotFound) {
		return notFound(c, "Order not found")
	}
	if err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return serverError(c, "Could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	setFlash(c, "Order "+id+" is now "+status)
	return c.Redirect("/admin/orders")
}
