package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	applog "gamestore/internal/log"
	"gamestore/internal/services"
)

// LoadUser attaches the signed-in user (if any) to the request for templates and logs.
func LoadUser(sessions services.SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies(sidCookie); sid != "" {
			if u, err := sessions.CurrentUser(c.UserContext(), sid); err == nil && u != nil {
				c.Locals("user", u)
				c.Locals("user_id", u.ID)
			}
		}
		return c.Next()
	}
}

func loginRedirect(c *fiber.Ctx) error {
	return c.Redirect("/login?returnUrl=" + url.QueryEscape(c.OriginalURL()))
}

func RequireAdmin(sessions services.SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sidCookie)
		if sid == "" {
			return loginRedirect(c)
		}
		u, err := sessions.CurrentUser(c.UserContext(), sid)
		if err != nil || u == nil {
			return loginRedirect(c)
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"user": u.Username})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		c.Locals("user", u)
		c.Locals("user_id", u.ID)
		return c.Next()
	}
}
