package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sidCookie = "sid"

// ensureSID returns the visitor's session id, issuing a new cookie if needed.
func ensureSID(c *fiber.Ctx) string {
	if sid := c.Cookies(sidCookie); sid != "" {
		return sid
	}
	return issueSID(c)
}

// issueSID sets a fresh session id cookie and returns it.
func issueSID(c *fiber.Ctx) string {
	sid := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // enable true behind TLS
	})
	return sid
}

func expireSID(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
