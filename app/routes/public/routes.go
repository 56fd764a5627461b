package public

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Abburizal/royal-wedding-byullysjah/app/models"
	"github.com/Abburizal/royal-wedding-byullysjah/app/validation"
)

// InquiryStore is the slice of the inquiry store intake needs.
type InquiryStore interface {
	Create(inq *models.Inquiry) error
}

// Mailer dispatches the intake notification to the business inbox.
type Mailer interface {
	SendIntakeNotification(inq *models.Inquiry) error
}

type Handlers struct {
	Inquiries InquiryStore
	Mailer    Mailer
}

// SetupPublicRoutes registers the marketing pages and the two intake
// forms.
func SetupPublicRoutes(app *fiber.App, h *Handlers) {
	app.Get("/", h.Home)
	app.Post("/contact", h.SubmitContact)
	app.Post("/inquiry", h.SubmitInquiry)
}

func (h *Handlers) Home(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Title":    "Royal Wedding by Ully Sjah",
		"Packages": models.Packages,
	})
}

func (h *Handlers) SubmitContact(c *fiber.Ctx) error {
	return h.submit(c, models.KindContact)
}

func (h *Handlers) SubmitInquiry(c *fiber.Ctx) error {
	return h.submit(c, models.KindInquiry)
}

// submit runs the payload through the intake validator, persists it,
// and notifies the business inbox. Mail and, in degraded mode,
// persistence are best effort: a reachable inbox is enough to not
// lose the lead.
func (h *Handlers) submit(c *fiber.Ctx, kind string) error {
	var in validation.InquiryInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Data tidak valid",
		})
	}

	inq, verrs := validation.ValidateInquiry(kind, in, time.Now())
	if len(verrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Data tidak valid",
			"errors":  verrs.Messages(),
		})
	}

	if err := h.Inquiries.Create(inq); err != nil {
		if !errors.Is(err, models.ErrStoreUnavailable) {
			return err
		}
		logrus.WithField("kind", kind).Warn("Store unavailable, submission not persisted")
	}

	if h.Mailer != nil {
		if err := h.Mailer.SendIntakeNotification(inq); err != nil {
			logrus.WithError(err).Warn("Failed to send intake notification")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Pesan berhasil dikirim! Kami akan segera menghubungi Anda.",
	})
}
