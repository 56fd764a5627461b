package admin

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Abburizal/royal-wedding-byullysjah/app/models"
	"github.com/Abburizal/royal-wedding-byullysjah/app/routes/auth"
)

// InquiryStore is the slice of the inquiry store the admin panel needs.
type InquiryStore interface {
	GetByID(kind, id string) (*models.Inquiry, error)
	List(kind, status string, limit int) ([]*models.Inquiry, error)
	Recent(limit int) ([]*models.Inquiry, error)
	CountByStatus(kind string) (map[string]int, error)
	UpdateStatus(kind, id, status string) (*models.Inquiry, error)
	UpdateNotes(kind, id, notes string) error
	Delete(kind, id string) error
}

type Handlers struct {
	Inquiries InquiryStore
}

const listLimit = 200

// SetupAdminRoutes registers the admin panel behind the auth and
// admin guards.
func SetupAdminRoutes(app *fiber.App, ah *auth.Handlers, h *Handlers) {
	admin := app.Group("/admin", ah.RequireAuth, ah.RequireAdmin)
	admin.Get("/", h.Dashboard)
	admin.Get("/inquiries", h.ListInquiries)
	admin.Post("/update-status", h.UpdateContactStatus)
	admin.Post("/update-inquiry-status", h.UpdateInquiryStatus)
	admin.Get("/contact/:id", h.ContactDetail)
	admin.Get("/inquiry/:id", h.InquiryDetail)
	admin.Post("/contact/:id/notes", h.UpdateContactNotes)
	admin.Post("/inquiry/:id/notes", h.UpdateInquiryNotes)
	admin.Delete("/contact/:id", h.DeleteContact)
	admin.Delete("/inquiry/:id", h.DeleteInquiry)
}

func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	recent, err := h.Inquiries.Recent(10)
	if err != nil && !errors.Is(err, models.ErrStoreUnavailable) {
		return err
	}
	contactCounts, _ := h.Inquiries.CountByStatus(models.KindContact)
	inquiryCounts, _ := h.Inquiries.CountByStatus(models.KindInquiry)

	return c.Render("admin/dashboard", fiber.Map{
		"Title":         "Dashboard - Royal Wedding by Ully Sjah",
		"Recent":        recent,
		"ContactCounts": contactCounts,
		"InquiryCounts": inquiryCounts,
	})
}

func (h *Handlers) ListInquiries(c *fiber.Ctx) error {
	kind := c.Query("kind", models.KindInquiry)
	if kind != models.KindContact && kind != models.KindInquiry {
		kind = models.KindInquiry
	}
	status := c.Query("status")
	if status != "" && !models.ValidStatus(kind, status) {
		status = ""
	}

	records, err := h.Inquiries.List(kind, status, listLimit)
	if err != nil {
		return err
	}
	return c.Render("admin/inquiries", fiber.Map{
		"Title":    "Inquiries - Royal Wedding by Ully Sjah",
		"Kind":     kind,
		"Status":   status,
		"Statuses": models.StatusesFor(kind),
		"Records":  records,
	})
}

func (h *Handlers) UpdateContactStatus(c *fiber.Ctx) error {
	return h.updateStatus(c, models.KindContact)
}

func (h *Handlers) UpdateInquiryStatus(c *fiber.Ctx) error {
	return h.updateStatus(c, models.KindInquiry)
}

func (h *Handlers) updateStatus(c *fiber.Ctx, kind string) error {
	var req struct {
		ID     string `json:"id" form:"id"`
		Status string `json:"status" form:"status"`
	}
	if err := c.BodyParser(&req); err != nil || req.ID == "" || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "id and status are required",
		})
	}

	inq, err := h.Inquiries.UpdateStatus(kind, req.ID, req.Status)
	if err != nil {
		var inv *models.InvalidStatusError
		switch {
		case errors.As(err, &inv):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false, "error": inv.Error(),
			})
		case errors.Is(err, models.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "error": "Record not found",
			})
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "record": inq})
}

func (h *Handlers) ContactDetail(c *fiber.Ctx) error {
	return h.detail(c, models.KindContact)
}

func (h *Handlers) InquiryDetail(c *fiber.Ctx) error {
	return h.detail(c, models.KindInquiry)
}

func (h *Handlers) detail(c *fiber.Ctx, kind string) error {
	inq, err := h.Inquiries.GetByID(kind, c.Params("id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}
	days, hasDate := inq.DaysUntilWedding(time.Now())
	return c.Render("admin/detail", fiber.Map{
		"Title":            "Detail - Royal Wedding by Ully Sjah",
		"Record":           inq,
		"Statuses":         models.StatusesFor(kind),
		"DaysUntilWedding": days,
		"HasWeddingDate":   hasDate,
	})
}

func (h *Handlers) UpdateContactNotes(c *fiber.Ctx) error {
	return h.updateNotes(c, models.KindContact)
}

func (h *Handlers) UpdateInquiryNotes(c *fiber.Ctx) error {
	return h.updateNotes(c, models.KindInquiry)
}

func (h *Handlers) updateNotes(c *fiber.Ctx, kind string) error {
	var req struct {
		Notes string `json:"notes" form:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "Invalid request",
		})
	}
	if len(req.Notes) > 500 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "error": "Notes cannot exceed 500 characters",
		})
	}
	if err := h.Inquiries.UpdateNotes(kind, c.Params("id"), req.Notes); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "error": "Record not found",
			})
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handlers) DeleteContact(c *fiber.Ctx) error {
	return h.delete(c, models.KindContact)
}

func (h *Handlers) DeleteInquiry(c *fiber.Ctx) error {
	return h.delete(c, models.KindInquiry)
}

func (h *Handlers) delete(c *fiber.Ctx, kind string) error {
	if err := h.Inquiries.Delete(kind, c.Params("id")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "error": "Record not found",
			})
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
