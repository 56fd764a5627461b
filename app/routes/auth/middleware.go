package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Abburizal/royal-wedding-byullysjah/app/models"
)

// SessionCookie is the single cookie the client holds. Its value is
// an opaque session id; all session state lives server-side.
const SessionCookie = "rw_session"

const sessionCookieMaxAge = 7 * 24 * time.Hour

// SessionStore is the slice of the session store the guards need.
type SessionStore interface {
	Get(id string) (*models.Session, error)
	Create(user *models.User) (*models.Session, error)
	CreateGuest(returnTo string) (*models.Session, error)
	Touch(sess *models.Session) error
	Destroy(id string) error
	SetReturnTo(id, path string) error
	ConsumeReturnTo(id string) (string, error)
}

// UserStore is the slice of the credential store the handlers need.
type UserStore interface {
	GetByIdentifier(identifier string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Create(username, email, password, role string) (*models.User, error)
	VerifyPassword(user *models.User, candidate string) bool
	UpdateLastLogin(id string) error
	UpdatePassword(id, password string) error
}

// Handlers carries the auth guards and the login/logout/register
// handlers, with their stores threaded explicitly.
type Handlers struct {
	Sessions SessionStore
	Users    UserStore

	// Production controls the Secure flag on the session cookie.
	Production bool

	// AdminFailClosed blocks guarded routes with a 503 when the
	// session store is unreachable, instead of bouncing to a login
	// page that cannot succeed anyway.
	AdminFailClosed bool
}

func (h *Handlers) setSessionCookie(c *fiber.Ctx, id string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(sessionCookieMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   h.Production,
		SameSite: "Lax",
	})
}

func (h *Handlers) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.Production,
		SameSite: "Lax",
	})
}

// currentSession loads the session behind the request cookie, if any.
// Missing, malformed and expired cookies all come back as nil.
func (h *Handlers) currentSession(c *fiber.Ctx) (*models.Session, error) {
	sid := c.Cookies(SessionCookie)
	if sid == "" {
		return nil, nil
	}
	sess, err := h.Sessions.Get(sid)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	return sess, err
}

// RequireAuth admits authenticated sessions, lazily refreshing their
// expiry, and redirects everyone else to the login page with the
// requested path recorded for the post-login redirect.
func (h *Handlers) RequireAuth(c *fiber.Ctx) error {
	sess, err := h.currentSession(c)
	if err != nil {
		if errors.Is(err, models.ErrStoreUnavailable) {
			if h.AdminFailClosed {
				return h.storeDown(c)
			}
			return c.Redirect("/admin/login")
		}
		return err
	}

	if sess != nil && sess.IsAuthenticated && sess.UserID != "" {
		if err := h.Sessions.Touch(sess); err != nil {
			logrus.WithError(err).Warn("Session touch failed")
		}
		c.Locals("session", sess)
		return c.Next()
	}

	// Remember where they were headed. An anonymous visitor gets a
	// guest session just to carry the path across the login.
	path := c.OriginalURL()
	if sess != nil {
		_ = h.Sessions.SetReturnTo(sess.ID, path)
	} else if guest, err := h.Sessions.CreateGuest(path); err == nil {
		h.setSessionCookie(c, guest.ID)
	}
	return c.Redirect("/admin/login")
}

// RequireGuest admits only visitors who are not logged in; an
// authenticated session is sent to the admin landing page instead.
func (h *Handlers) RequireGuest(c *fiber.Ctx) error {
	sess, err := h.currentSession(c)
	if err == nil && sess != nil && sess.IsAuthenticated && sess.UserID != "" {
		return c.Redirect("/admin")
	}
	return c.Next()
}

// RequireAdmin admits admin and super_admin sessions. The caller is
// known but under-privileged, so the answer is a 403 page, never a
// redirect. Must run after RequireAuth.
func (h *Handlers) RequireAdmin(c *fiber.Ctx) error {
	sess, ok := c.Locals("session").(*models.Session)
	if !ok || !sess.IsAdmin() {
		return h.accessDenied(c, "Access denied. Admin privileges required.")
	}
	return c.Next()
}

// RequireSuperAdmin admits super_admin sessions only.
func (h *Handlers) RequireSuperAdmin(c *fiber.Ctx) error {
	sess, ok := c.Locals("session").(*models.Session)
	if !ok || !sess.IsSuperAdmin() {
		return h.accessDenied(c, "Access denied. Super admin privileges required.")
	}
	return c.Next()
}

// AttachUser exposes the logged-in user to templates on every route.
// Failures are ignored; pages simply render as anonymous.
func (h *Handlers) AttachUser(c *fiber.Ctx) error {
	if sess, err := h.currentSession(c); err == nil && sess != nil && sess.IsAuthenticated {
		c.Locals("CurrentUser", sess)
	}
	return c.Next()
}

func (h *Handlers) accessDenied(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusForbidden).Render("error", fiber.Map{
		"Title":        "Access Forbidden - Royal Wedding by Ully Sjah",
		"ErrorCode":    "403",
		"ErrorTitle":   "Access Forbidden",
		"ErrorMessage": msg,
	})
}

func (h *Handlers) storeDown(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).Render("error", fiber.Map{
		"Title":        "Service Unavailable - Royal Wedding by Ully Sjah",
		"ErrorCode":    "503",
		"ErrorTitle":   "Service Unavailable",
		"ErrorMessage": "The admin area is temporarily unavailable. Please try again later.",
	})
}
