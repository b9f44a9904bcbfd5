package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gamestore/internal/config"
	applog "gamestore/internal/log"
)

// ErrorHandler logs the failure and shows a friendly page without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code = fe.Code
		msg = fe.Message
	}
	applog.Error(c, "server.error", err, map[string]any{"code": code})
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

// One JSON object per request, next to the applog entries.
const accessFormat = `{"ts":"${time}","kind":"access","status":${status},"method":"${method}","path":"${path}","latency":"${latency}","req_id":"${locals:requestid}"}` + "\n"

// NewApp builds the Fiber app with middleware and every route.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	engine := html.New(cfg.TemplateDir, ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		BodyLimit:    cfg.MaxBodyBytes,
		ErrorHandler: ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     accessFormat,
		TimeFormat: time.RFC3339,
		Output:     applog.Logger().Out,
	}))
	app.Use(helmet.New())
	app.Use(LoadUser(d.Sessions))
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return p == "/healthz" || p == "/metrics"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("notfound", fiber.Map{"Message": "Too many requests. Please slow down."})
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"reason": err.Error()})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))

	// ---------- Catalog ----------
	app.Get("/", d.GameHandler.List)
	app.Get("/games", d.GameHandler.List)
	app.Get("/game/:id/image", d.GameHandler.Image)

	// ---------- Cart & checkout ----------
	app.Get("/cart", d.CartHandler.View)
	app.Post("/cart/add", d.CartHandler.Add)
	app.Post("/cart/remove", d.CartHandler.Remove)
	app.Get("/checkout", d.CheckoutHandler.Form)
	app.Post("/checkout", d.CheckoutHandler.Submit)

	// ---------- Account (login throttled) ----------
	app.Get("/login", d.AccountHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			c.Status(fiber.StatusTooManyRequests)
			return render(c, "login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), d.AccountHandler.Login)
	app.Post("/logout", d.AccountHandler.Logout)

	// ---------- Admin ----------
	admin := app.Group("/admin", RequireAdmin(d.Sessions))
	admin.Get("/", d.AdminHandler.Index)
	admin.Get("/create", d.AdminHandler.Create)
	admin.Get("/edit/:id", d.AdminHandler.Edit)
	admin.Post("/edit", d.AdminHandler.Save)
	admin.Post("/delete", d.AdminHandler.Delete)
	admin.Get("/orders", d.AdminHandler.OrdersPage)
	admin.Get("/orders/:id", d.AdminHandler.OrderDetail)
	admin.Post("/orders/:id/status", d.AdminHandler.UpdateOrderStatus)

	// ---------- Ops & 404 ----------
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use(func(c *fiber.Ctx) error {
		return notFound(c, "Page not found")
	})
	return app
}
