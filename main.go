package main

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/sirupsen/logrus"

	"github.com/Abburizal/royal-wedding-byullysjah/app/config"
	"github.com/Abburizal/royal-wedding-byullysjah/app/database"
	"github.com/Abburizal/royal-wedding-byullysjah/app/routes/admin"
	"github.com/Abburizal/royal-wedding-byullysjah/app/routes/auth"
	"github.com/Abburizal/royal-wedding-byullysjah/app/routes/public"
	"github.com/Abburizal/royal-wedding-byullysjah/app/services"
)

// wantsJSON reports whether a failed request should get a JSON error
// instead of a rendered page.
func wantsJSON(c *fiber.Ctx) bool {
	path := c.Path()
	switch {
	case path == "/contact" || path == "/inquiry":
		return true
	case c.Method() == fiber.MethodDelete:
		return true
	case strings.HasPrefix(path, "/admin/update-"):
		return true
	case strings.HasSuffix(path, "/notes") || strings.HasSuffix(path, "/change-password"):
		return true
	}
	return false
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if wantsJSON(c) {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	switch code {
	case fiber.StatusNotFound:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Page Not Found - Royal Wedding by Ully Sjah",
			"ErrorCode":    "404",
			"ErrorTitle":   "Page Not Found",
			"ErrorMessage": "The page you are looking for does not exist.",
		})
	case fiber.StatusForbidden:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Access Forbidden - Royal Wedding by Ully Sjah",
			"ErrorCode":    "403",
			"ErrorTitle":   "Access Forbidden",
			"ErrorMessage": "You don't have permission to access this resource.",
		})
	case fiber.StatusServiceUnavailable:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Service Unavailable - Royal Wedding by Ully Sjah",
			"ErrorCode":    "503",
			"ErrorTitle":   "Service Unavailable",
			"ErrorMessage": "We're experiencing technical difficulties. Please try again later.",
		})
	default:
		logrus.WithError(err).Error("Unhandled request error")
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Server Error - Royal Wedding by Ully Sjah",
			"ErrorCode":    "500",
			"ErrorTitle":   "Internal Server Error",
			"ErrorMessage": "We're experiencing technical difficulties. Please try again later.",
		})
	}
}

func main() {
	cfg := config.Load()

	if cfg.Production {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if err := cfg.ConnectDB(); err != nil {
		logrus.WithError(err).Fatal("Cannot establish database connection")
	}
	defer cfg.DB.Close()

	if !cfg.Degraded {
		if err := database.RunMigrations(cfg.DB); err != nil {
			logrus.WithError(err).Fatal("Failed to run migrations")
		}
	}

	engine := html.New("./views", ".html")
	engine.Reload(!cfg.Production)

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Static("/static", "./public")

	users := database.NewUserStore(cfg.DB)
	sessions := database.NewSessionStore(cfg.DB)
	inquiries := database.NewInquiryStore(cfg.DB)
	mailer := services.NewMailer(cfg.SMTP, cfg.MailTo)

	authHandlers := &auth.Handlers{
		Sessions:        sessions,
		Users:           users,
		Production:      cfg.Production,
		AdminFailClosed: cfg.AdminFailClosed,
	}

	app.Use(authHandlers.AttachUser)

	public.SetupPublicRoutes(app, &public.Handlers{
		Inquiries: inquiries,
		Mailer:    mailer,
	})
	auth.SetupAuthRoutes(app, authHandlers)
	admin.SetupAdminRoutes(app, authHandlers, &admin.Handlers{
		Inquiries: inquiries,
	})

	logrus.WithField("port", cfg.Port).Info("Royal Wedding by Ully Sjah listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}
