package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abburizal/royal-wedding-byullysjah/app/models"
)

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestLoginWrongCredentialsIsGeneric(t *testing.T) {
	h, _, users := newTestHandlers()
	app := newTestApp(h)
	users.add("budi", "budi@example.com", "secret123", models.RoleAdmin)

	attempt := func(identifier, password string) (int, string) {
		resp, err := app.Test(postForm("/admin/login", url.Values{
			"identifier": {identifier},
			"password":   {password},
		}))
		require.NoError(t, err)
		return resp.StatusCode, readBody(t, resp)
	}

	// Known user, wrong password, twice in a row.
	code1, body1 := attempt("budi", "wrong-password")
	code2, body2 := attempt("budi", "wrong-password")
	assert.Equal(t, fiber.StatusUnauthorized, code1)
	assert.Equal(t, code1, code2)
	assert.Equal(t, body1, body2, "repeated failures must be indistinguishable")

	// Unknown user: exact same answer, so the identifier cannot be
	// probed.
	code3, body3 := attempt("nobody", "wrong-password")
	assert.Equal(t, code1, code3)
	assert.Equal(t, body1, body3)
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	h, _, users := newTestHandlers()
	app := newTestApp(h)
	user := users.add("budi", "budi@example.com", "secret123", models.RoleAdmin)

	for _, identifier := range []string{"budi", "budi@example.com", "BUDI@example.com"} {
		resp, err := app.Test(postForm("/admin/login", url.Values{
			"identifier": {identifier},
			"password":   {"secret123"},
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode, "identifier %q", identifier)
		assert.Equal(t, "/admin", resp.Header.Get("Location"))
	}
	assert.NotNil(t, user.LastLogin, "successful login stamps last_login")
}

func TestLoginConsumesReturnToOnce(t *testing.T) {
	h, sessions, users := newTestHandlers()
	app := newTestApp(h)
	users.add("budi", "budi@example.com", "secret123", models.RoleAdmin)

	guest, err := sessions.CreateGuest("/admin/inquiries")
	require.NoError(t, err)

	form := url.Values{"identifier": {"budi"}, "password": {"secret123"}}
	resp, err := app.Test(withCookie(postForm("/admin/login", form), guest.ID))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/inquiries", resp.Header.Get("Location"))

	// The pre-login session is gone and a fresh id was issued.
	_, err = sessions.Get(guest.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.NotEqual(t, guest.ID, cookie.Value)

	newSess, err := sessions.Get(cookie.Value)
	require.NoError(t, err)
	assert.True(t, newSess.IsAuthenticated)
	assert.Empty(t, newSess.ReturnTo, "the return path is single use")

	// A second login without the old cookie lands on the default page.
	resp, err = app.Test(postForm("/admin/login", form))
	require.NoError(t, err)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestLogoutDestroysSession(t *testing.T) {
	h, sessions, users := newTestHandlers()
	app := newTestApp(h)
	user := users.add("budi", "budi@example.com", "secret123", models.RoleAdmin)
	sess, err := sessions.Create(user)
	require.NoError(t, err)

	resp, err := app.Test(withCookie(postForm("/admin/logout", url.Values{}), sess.ID))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login?success=logged_out", resp.Header.Get("Location"))

	_, err = sessions.Get(sess.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value, "the client cookie is cleared")
}

func superAdminSession(t *testing.T, sessions *memSessions, users *memUsers) *models.Session {
	t.Helper()
	user := users.add("ully", "ully@example.com", "secret123", models.RoleSuperAdmin)
	sess, err := sessions.Create(user)
	require.NoError(t, err)
	return sess
}

func TestRegisterCreatesAdmin(t *testing.T) {
	h, sessions, users := newTestHandlers()
	app := newTestApp(h)
	sess := superAdminSession(t, sessions, users)

	form := url.Values{
		"username":         {"newadmin"},
		"email":            {"Admin@Example.com"},
		"password":         {"secret123"},
		"confirm_password": {"secret123"},
	}
	resp, err := app.Test(withCookie(postForm("/admin/register", form), sess.ID))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	created, err := users.GetByIdentifier("newadmin")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", created.Email)
	assert.Equal(t, models.RoleAdmin, created.Role, "role defaults to admin")
}

func TestRegisterDuplicateEmailDifferentCase(t *testing.T) {
	h, sessions, users := newTestHandlers()
	app := newTestApp(h)
	sess := superAdminSession(t, sessions, users)
	users.add("existing", "a@x.com", "secret123", models.RoleAdmin)

	form := url.Values{
		"username":         {"another"},
		"email":            {"A@x.com"},
		"password":         {"secret123"},
		"confirm_password": {"secret123"},
	}
	resp, err := app.Test(withCookie(postForm("/admin/register", form), sess.ID))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "already exists")
}

func TestRegisterValidation(t *testing.T) {
	h, sessions, users := newTestHandlers()
	app := newTestApp(h)
	sess := superAdminSession(t, sessions, users)

	cases := []struct {
		name string
		form url.Values
	}{
		{"missing fields", url.Values{"username": {"x"}}},
		{"short username", url.Values{
			"username": {"ab"}, "email": {"a@x.com"},
			"password": {"secret123"}, "confirm_password": {"secret123"},
		}},
		{"bad email", url.Values{
			"username": {"valid"}, "email": {"nope"},
			"password": {"secret123"}, "confirm_password": {"secret123"},
		}},
		{"password mismatch", url.Values{
			"username": {"valid"}, "email": {"a@x.com"},
			"password": {"secret123"}, "confirm_password": {"different1"},
		}},
		{"short password", url.Values{
			"username": {"valid"}, "email": {"a@x.com"},
			"password": {"abc"}, "confirm_password": {"abc"},
		}},
		{"bad role", url.Values{
			"username": {"valid"}, "email": {"a@x.com"},
			"password": {"secret123"}, "confirm_password": {"secret123"},
			"role": {"root"},
		}},
	}
	for _, tc := range cases {
		resp, err := app.Test(withCookie(postForm("/admin/register", tc.form), sess.ID))
		require.NoError(t, err, tc.name)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, tc.name)
	}
}

func TestChangePassword(t *testing.T) {
	h, sessions, users := newTestHandlers()
	app := newTestApp(h)
	user := users.add("budi", "budi@example.com", "oldpass123", models.RoleAdmin)
	sess, err := sessions.Create(user)
	require.NoError(t, err)

	form := url.Values{
		"current_password": {"wrongpass"},
		"new_password":     {"newpass123"},
	}
	resp, err := app.Test(withCookie(postForm("/admin/change-password", form), sess.ID))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	form.Set("current_password", "oldpass123")
	resp, err = app.Test(withCookie(postForm("/admin/change-password", form), sess.ID))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, users.VerifyPassword(user, "newpass123"))
}
