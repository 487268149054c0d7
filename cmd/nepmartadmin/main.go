package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/google/uuid"

	"nepmartadmin/internal/config"
	"nepmartadmin/internal/http/handlers"
	applog "nepmartadmin/internal/log"
	"nepmartadmin/internal/remote"
	"nepmartadmin/internal/session"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := session.OpenDB(cfg.SessionDSN)
	if err != nil {
		log.Fatal(err)
	}
	guard := session.NewGuard(session.NewSQLStore(db), cfg.AdminID, cfg.AdminPasswordHash, cfg.SessionSecret, cfg.SessionTTL)

	rc := remote.New(cfg.RemoteBaseURL)

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	deps := handlers.NewDeps(rc, guard)

	// Public: login with throttle
	app.Get("/login", handlers.PublicOnly(guard), deps.Auth.LoginForm)
	app.Post("/login", handlers.PublicOnly(guard), limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.Auth.Login)
	app.Post("/logout", deps.Auth.Logout)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// Protected screens
	guarded := app.Group("/", handlers.RequireSession(guard))
	guarded.Get("/", deps.Products.Page)
	guarded.Post("/products", deps.Products.Create)
	guarded.Post("/products/:kind/:id", deps.Products.Update)
	guarded.Post("/products/:kind/:id/delete", deps.Products.Delete)

	guarded.Get("/orders", deps.Orders.Page)
	guarded.Get("/orders/preview/:id", deps.Orders.Preview)
	guarded.Post("/orders/:id/delete", deps.Orders.Delete)
	guarded.Post("/orders/:kind/:id/status", deps.Orders.SetStatus)

	guarded.Get("/updates", deps.Updates.Page)
	guarded.Post("/updates", deps.Updates.Post)
	guarded.Post("/updates/:id/delete", deps.Updates.Delete)

	guarded.Get("/users", deps.Users.Page)
	guarded.Post("/users/:id/delete", deps.Users.Delete)

	// Unknown paths land on the dashboard when logged in, else on login.
	app.Use(handlers.Fallback(guard))

	log.Fatal(app.Listen(":" + cfg.Port))
}
