package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abburizal/royal-wedding-byullysjah/app/models"
	"github.com/Abburizal/royal-wedding-byullysjah/app/routes/auth"
)

// stubSessions holds one fixed admin session for guard traversal.
type stubSessions struct {
	sess *models.Session
}

func (s *stubSessions) Get(id string) (*models.Session, error) {
	if s.sess != nil && s.sess.ID == id {
		return s.sess, nil
	}
	return nil, models.ErrNotFound
}

func (s *stubSessions) Create(*models.User) (*models.Session, error) { return nil, models.ErrNotFound }
func (s *stubSessions) CreateGuest(string) (*models.Session, error) { return nil, models.ErrNotFound }
func (s *stubSessions) Touch(*models.Session) error                 { return nil }
func (s *stubSessions) Destroy(string) error                        { return nil }
func (s *stubSessions) SetReturnTo(string, string) error            { return nil }
func (s *stubSessions) ConsumeReturnTo(string) (string, error)      { return "", nil }

// memInquiries implements InquiryStore over a map.
type memInquiries struct {
	records map[string]*models.Inquiry
}

func newMemInquiries() *memInquiries {
	return &memInquiries{records: make(map[string]*models.Inquiry)}
}

func (m *memInquiries) GetByID(kind, id string) (*models.Inquiry, error) {
	inq, ok := m.records[id]
	if !ok || inq.Kind != kind {
		return nil, models.ErrNotFound
	}
	return inq, nil
}

func (m *memInquiries) List(kind, status string, limit int) ([]*models.Inquiry, error) {
	var out []*models.Inquiry
	for _, inq := range m.records {
		if inq.Kind == kind && (status == "" || inq.Status == status) {
			out = append(out, inq)
		}
	}
	return out, nil
}

func (m *memInquiries) Recent(limit int) ([]*models.Inquiry, error) {
	var out []*models.Inquiry
	for _, inq := range m.records {
		out = append(out, inq)
	}
	return out, nil
}

func (m *memInquiries) CountByStatus(kind string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, inq := range m.records {
		if inq.Kind == kind {
			counts[inq.Status]++
		}
	}
	return counts, nil
}

func (m *memInquiries) UpdateStatus(kind, id, status string) (*models.Inquiry, error) {
	if !models.ValidStatus(kind, status) {
		return nil, &models.InvalidStatusError{Kind: kind, Status: status}
	}
	inq, err := m.GetByID(kind, id)
	if err != nil {
		return nil, err
	}
	inq.Status = status
	if status == models.StatusContacted {
		now := time.Now()
		inq.LastContactedAt = &now
	}
	return inq, nil
}

func (m *memInquiries) UpdateNotes(kind, id, notes string) error {
	inq, err := m.GetByID(kind, id)
	if err != nil {
		return err
	}
	inq.Notes = notes
	return nil
}

func (m *memInquiries) Delete(kind, id string) error {
	if _, err := m.GetByID(kind, id); err != nil {
		return err
	}
	delete(m.records, id)
	return nil
}

func newAdminApp(store InquiryStore, sess *models.Session) *fiber.App {
	engine := html.New("../../../views", ".html")
	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
	})
	ah := &auth.Handlers{
		Sessions:        &stubSessions{sess: sess},
		Users:           nil, // login handlers are not exercised here
		AdminFailClosed: true,
	}
	SetupAdminRoutes(app, ah, &Handlers{Inquiries: store})
	return app
}

func adminSession() *models.Session {
	return &models.Session{
		ID:              "11111111-1111-1111-1111-111111111111",
		UserID:          "u1",
		Username:        "budi",
		Role:            models.RoleAdmin,
		IsAuthenticated: true,
		ExpiresAt:       time.Now().Add(time.Hour),
		LastRefreshedAt: time.Now(),
	}
}

func adminReq(method, path string, payload any, sess *models.Session) *http.Request {
	var req *http.Request
	if payload != nil {
		body, _ := json.Marshal(payload)
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: sess.ID})
	return req
}

func seedInquiry(store *memInquiries, kind string) *models.Inquiry {
	inq := &models.Inquiry{
		ID:          "rec-" + kind,
		Kind:        kind,
		Name:        "Budi",
		Email:       "budi@example.com",
		Phone:       "08123456789",
		Message:     "We would like a quote.",
		Status:      models.StatusNew,
		SubmittedAt: time.Now(),
	}
	store.records[inq.ID] = inq
	return inq
}

func TestUpdateStatusStampsContactedAt(t *testing.T) {
	store := newMemInquiries()
	sess := adminSession()
	app := newAdminApp(store, sess)
	inq := seedInquiry(store, models.KindContact)

	resp, err := app.Test(adminReq(http.MethodPost, "/admin/update-status",
		map[string]string{"id": inq.ID, "status": models.StatusContacted}, sess))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.StatusContacted, inq.Status)
	assert.NotNil(t, inq.LastContactedAt)
}

func TestUpdateStatusRejectsForeignStatus(t *testing.T) {
	store := newMemInquiries()
	sess := adminSession()
	app := newAdminApp(store, sess)
	inq := seedInquiry(store, models.KindContact)

	// "quoted" belongs to the inquiry status set, not contact.
	resp, err := app.Test(adminReq(http.MethodPost, "/admin/update-status",
		map[string]string{"id": inq.ID, "status": models.StatusQuoted}, sess))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.StatusNew, inq.Status, "the record is untouched")
}

func TestUpdateStatusUnknownRecord(t *testing.T) {
	store := newMemInquiries()
	sess := adminSession()
	app := newAdminApp(store, sess)

	resp, err := app.Test(adminReq(http.MethodPost, "/admin/update-inquiry-status",
		map[string]string{"id": "missing", "status": models.StatusContacted}, sess))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteIsHardAndScopedByKind(t *testing.T) {
	store := newMemInquiries()
	sess := adminSession()
	app := newAdminApp(store, sess)
	inq := seedInquiry(store, models.KindContact)

	// Deleting through the wrong kind's route must miss.
	resp, err := app.Test(adminReq(http.MethodDelete, "/admin/inquiry/"+inq.ID, nil, sess))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(adminReq(http.MethodDelete, "/admin/contact/"+inq.ID, nil, sess))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, store.records)

	// Gone for good.
	resp, err = app.Test(adminReq(http.MethodDelete, "/admin/contact/"+inq.ID, nil, sess))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	store := newMemInquiries()
	app := newAdminApp(store, adminSession())

	// No cookie at all: bounced to login.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/inquiries", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

func TestUpdateNotes(t *testing.T) {
	store := newMemInquiries()
	sess := adminSession()
	app := newAdminApp(store, sess)
	inq := seedInquiry(store, models.KindInquiry)

	resp, err := app.Test(adminReq(http.MethodPost, "/admin/inquiry/"+inq.ID+"/notes",
		map[string]string{"notes": "called, call back monday"}, sess))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "called, call back monday", inq.Notes)
}
