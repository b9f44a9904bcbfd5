package handlers

import (
	"github.com/gofiber/fiber/v2"

	"gamestore/internal/log"
	"gamestore/internal/services"
	"gamestore/internal/validate"
)

const badLogin = "Invalid name or password"

type AccountHandler struct {
	Auth     services.AuthProvider
	Sessions services.SessionManager
	Carts    *services.CartService
}

func (h *AccountHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": "", "ReturnURL": validate.ReturnURL(c.Query("returnUrl"))})
}

func (h *AccountHandler) loginFailed(c *fiber.Ctx, username, returnURL, reason string) error {
	log.Security(c, "auth.login.fail", map[string]any{"username": username, "reason": reason})
	c.Status(fiber.StatusUnauthorized)
	return render(c, "login", fiber.Map{"Err": badLogin, "Username": username, "ReturnURL": returnURL})
}

func (h *AccountHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	returnURL := validate.ReturnURL(c.FormValue("returnUrl"))
	username, ok := validate.Username(c.FormValue("username"))
	if !ok {
		return h.loginFailed(c, "", returnURL, "bad_format")
	}
	pass := c.FormValue("password")
	if !validate.Password(pass) {
		return h.loginFailed(c, username, returnURL, "bad_password_format")
	}

	ok, err := h.Auth.Authenticate(c.UserContext(), username, pass)
	if err != nil {
		log.Error(c, "auth.login.error", err, nil)
		return serverError(c, "Sign in is unavailable right now. Please try again.")
	}
	if !ok {
		return h.loginFailed(c, username, returnURL, "bad_credentials")
	}

	// The pre-login id is never promoted; the cart follows the new one.
	fresh := issueSID(c)
	if err := h.Carts.Move(c.UserContext(), sid, fresh); err != nil {
		log.Error(c, "auth.cart.move.fail", err, nil)
		return serverError(c, "Sign in is unavailable right now. Please try again.")
	}
	if err := h.Sessions.SignOut(c.UserContext(), sid); err != nil {
		log.Error(c, "auth.session.drop.fail", err, nil)
	}
	if err := h.Sessions.SignIn(c.UserContext(), fresh, username); err != nil {
		log.Error(c, "auth.session.bind.fail", err, nil)
		return serverError(c, "Sign in is unavailable right now. Please try again.")
	}

	log.Audit(c, "auth.login.success", map[string]any{"username": username})
	return c.Redirect(returnURL)
}

func (h *AccountHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies(sidCookie); sid != "" {
		if err := h.Sessions.SignOut(c.UserContext(), sid); err != nil {
			log.Error(c, "auth.logout.fail", err, nil)
		}
	}
	expireSID(c)
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/")
}
