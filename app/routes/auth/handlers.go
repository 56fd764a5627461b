package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abburizal/royal-wedding-byullysjah/app/models"
	"github.com/Abburizal/royal-wedding-byullysjah/app/validation"
)

// dummyHash is compared against when the identifier matches no user,
// so a miss costs the same bcrypt work as a wrong password.
const dummyHash = "$2a$12$K3JNi5dQgRGnY5y1F3JyhuPq8XHdTO4jbXF/PJpuW6qEKVTkLAEVW"

const loginTitle = "Admin Login - Royal Wedding by Ully Sjah"
const registerTitle = "Create Admin User - Royal Wedding by Ully Sjah"

// SetupAuthRoutes registers the login, logout, register and
// change-password routes under /admin.
func SetupAuthRoutes(app *fiber.App, h *Handlers) {
	admin := app.Group("/admin")
	admin.Get("/login", h.RequireGuest, h.ShowLogin)
	admin.Post("/login", h.RequireGuest, h.Login)
	admin.Post("/logout", h.Logout)
	admin.Get("/register", h.RequireAuth, h.RequireSuperAdmin, h.ShowRegister)
	admin.Post("/register", h.RequireAuth, h.RequireSuperAdmin, h.Register)
	admin.Post("/change-password", h.RequireAuth, h.ChangePassword)
}

func (h *Handlers) ShowLogin(c *fiber.Ctx) error {
	var success string
	if c.Query("success") == "logged_out" {
		success = "You have been logged out."
	}
	return c.Render("auth/login", fiber.Map{
		"Title":   loginTitle,
		"Success": success,
	})
}

func (h *Handlers) renderLoginError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).Render("auth/login", fiber.Map{
		"Title": loginTitle,
		"Error": msg,
	})
}

func (h *Handlers) Login(c *fiber.Ctx) error {
	var req struct {
		Identifier string `json:"identifier" form:"identifier"`
		Password   string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return h.renderLoginError(c, fiber.StatusBadRequest, "Please provide both username/email and password")
	}
	if req.Identifier == "" || req.Password == "" {
		return h.renderLoginError(c, fiber.StatusBadRequest, "Please provide both username/email and password")
	}

	user, err := h.Users.GetByIdentifier(req.Identifier)
	if err != nil {
		if errors.Is(err, models.ErrStoreUnavailable) {
			return h.renderLoginError(c, fiber.StatusServiceUnavailable, "Login is temporarily unavailable. Please try again later.")
		}
		if !errors.Is(err, models.ErrNotFound) {
			return err
		}
		// Same work as a real comparison, same answer as a wrong
		// password.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(req.Password))
		return h.renderLoginError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if !h.Users.VerifyPassword(user, req.Password) {
		return h.renderLoginError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if err := h.Users.UpdateLastLogin(user.ID); err != nil {
		logrus.WithError(err).Warn("Failed to stamp last login")
	}

	// Consume the pre-login return path, then always issue a fresh
	// session id.
	returnTo := ""
	if oldSid := c.Cookies(SessionCookie); oldSid != "" {
		returnTo, _ = h.Sessions.ConsumeReturnTo(oldSid)
		_ = h.Sessions.Destroy(oldSid)
	}

	sess, err := h.Sessions.Create(user)
	if err != nil {
		return h.renderLoginError(c, fiber.StatusServiceUnavailable, "Login is temporarily unavailable. Please try again later.")
	}
	h.setSessionCookie(c, sess.ID)

	if returnTo == "" {
		returnTo = "/admin"
	}
	return c.Redirect(returnTo)
}

func (h *Handlers) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies(SessionCookie); sid != "" {
		if err := h.Sessions.Destroy(sid); err != nil {
			logrus.WithError(err).Warn("Failed to destroy session on logout")
		}
	}
	h.clearSessionCookie(c)
	return c.Redirect("/admin/login?success=logged_out")
}

func (h *Handlers) ShowRegister(c *fiber.Ctx) error {
	return c.Render("auth/register", fiber.Map{
		"Title": registerTitle,
	})
}

func (h *Handlers) renderRegister(c *fiber.Ctx, status int, errMsg, success string) error {
	return c.Status(status).Render("auth/register", fiber.Map{
		"Title":   registerTitle,
		"Error":   errMsg,
		"Success": success,
	})
}

func (h *Handlers) Register(c *fiber.Ctx) error {
	var req struct {
		Username        string `json:"username" form:"username"`
		Email           string `json:"email" form:"email"`
		Password        string `json:"password" form:"password"`
		ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
		Role            string `json:"role" form:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return h.renderRegister(c, fiber.StatusBadRequest, "Invalid request", "")
	}

	switch {
	case req.Username == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "":
		return h.renderRegister(c, fiber.StatusBadRequest, "All fields are required", "")
	case len(req.Username) < 3 || len(req.Username) > 50:
		return h.renderRegister(c, fiber.StatusBadRequest, "Username must be between 3 and 50 characters", "")
	case !validation.IsValidEmail(req.Email):
		return h.renderRegister(c, fiber.StatusBadRequest, "Please enter a valid email address", "")
	case req.Password != req.ConfirmPassword:
		return h.renderRegister(c, fiber.StatusBadRequest, "Passwords do not match", "")
	case len(req.Password) < 6:
		return h.renderRegister(c, fiber.StatusBadRequest, "Password must be at least 6 characters long", "")
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}
	if !models.ValidRole(role) {
		return h.renderRegister(c, fiber.StatusBadRequest, "Invalid role", "")
	}

	if _, err := h.Users.Create(req.Username, req.Email, req.Password, role); err != nil {
		var dup *models.DuplicateError
		if errors.As(err, &dup) {
			return h.renderRegister(c, fiber.StatusConflict, "User with this email or username already exists", "")
		}
		if errors.Is(err, models.ErrStoreUnavailable) {
			return h.renderRegister(c, fiber.StatusServiceUnavailable, "Registration is temporarily unavailable. Please try again later.", "")
		}
		return err
	}
	return h.renderRegister(c, fiber.StatusOK, "", "Admin user created successfully")
}

func (h *Handlers) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"current_password" form:"current_password"`
		NewPassword     string `json:"new_password" form:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if len(req.NewPassword) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password must be at least 6 characters long"})
	}

	sess := c.Locals("session").(*models.Session)
	user, err := h.Users.GetByID(sess.UserID)
	if err != nil {
		return err
	}
	if !h.Users.VerifyPassword(user, req.CurrentPassword) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Current password is incorrect"})
	}
	if err := h.Users.UpdatePassword(user.ID, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}
