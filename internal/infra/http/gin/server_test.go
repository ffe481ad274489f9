package ginserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/auth"
	availsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/availability"
	blogsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/blog"
	blogagentsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/blogagent"
	bookingsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/booking"
	contentsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/content"
	gallerysvc "github.com/thienvyma/tagiangecolodge/internal/app/services/gallery"
	roomssvc "github.com/thienvyma/tagiangecolodge/internal/app/services/rooms"
	"github.com/thienvyma/tagiangecolodge/internal/domain/rooms"
	"github.com/thienvyma/tagiangecolodge/internal/infra/config"
	"github.com/thienvyma/tagiangecolodge/internal/infra/obs"
	"github.com/thienvyma/tagiangecolodge/internal/infra/security"
	"github.com/thienvyma/tagiangecolodge/internal/infra/storage/memory"
)

const adminPassword = "s3cret-pass"

type testEnv struct {
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	bookingRepo := memory.NewBookingRepository()
	roomRepo := memory.NewRoomRepository()

	require.NoError(t, roomRepo.Save(context.Background(), &rooms.Room{
		ID:          "family-room",
		Name:        "Family Room",
		NightlyRate: 500000,
		Capacity:    4,
		Available:   true,
	}))

	hash, err := security.BcryptHasher{}.Hash(adminPassword)
	require.NoError(t, err)

	authService := &authsvc.Service{
		AdminUser: "admin",
		AdminHash: hash,
		Sessions:  memory.NewSessionStore(),
		Passwords: security.BcryptHasher{},
		Tokens:    security.RandomTokenGenerator{},
	}

	handlers := Handlers{
		Availability: AvailabilityHandler{Service: availsvc.NewService(bookingRepo)},
		Booking:      BookingHandler{Service: &bookingsvc.Service{Bookings: bookingRepo, Rooms: roomRepo}},
		Rooms:        RoomsHandler{Service: roomssvc.NewService(roomRepo)},
		Gallery:      GalleryHandler{Service: &gallerysvc.Service{Items: memory.NewGalleryRepository()}},
		Blog: BlogHandler{
			Service:  blogsvc.NewService(memory.NewBlogRepository()),
			AgentSvc: &blogagentsvc.Service{Generator: cannedGenerator{}},
		},
		Content:      ContentHandler{Service: contentsvc.NewService(memory.NewContentRepository())},
		Auth:         AuthHandler{Service: authService},
		RequireAdmin: AuthMiddleware{Service: authService}.Handle,
	}

	cfg := config.Config{Env: "test", HTTPAddr: ":0"}
	server := NewServer(cfg, obs.Middleware{}, obs.HealthHandlers{}, handlers)
	return &testEnv{handler: server.Handler}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/admin/auth/login", map[string]string{
		"username": "admin",
		"password": adminPassword,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

// cannedGenerator stands in for the Gemini client; replies the way the
// model does, with a fenced JSON block.
type cannedGenerator struct{}

func (cannedGenerator) Generate(context.Context, string) (string, []string, error) {
	reply := "```json\n{\"title\":\"Trekking Tà Giang mùa xuân\",\"excerpt\":\"Cung trekking đẹp nhất Khánh Sơn\",\"content\":\"# Tà Giang\",\"tags\":[\"trekking\"],\"seo\":{\"metaTitle\":\"Trekking Tà Giang\",\"metaDescription\":\"desc\",\"focusKeyword\":\"trekking tà giang\"}}\n```"
	return reply, []string{"https://vietnam.travel/khanh-son"}, nil
}

func submitBody(checkin, checkout string) map[string]any {
	return map[string]any{
		"guest_name": "Trần Thị B",
		"phone":      "0987654321",
		"room_id":    "family-room",
		"checkin":    checkin,
		"checkout":   checkout,
		"guests":     2,
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/livez", nil, nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/readyz", nil, nil).Code)
}

func TestAvailabilityRequiresRoomID(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/availability", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingLifecycle(t *testing.T) {
	env := newTestEnv(t)

	// Guest submits a request.
	rec := env.do(t, http.MethodPost, "/api/v1/bookings", submitBody("2030-01-10", "2030-01-13"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var receipt struct {
		BookingID  string `json:"booking_id"`
		TotalPrice int64  `json:"total_price"`
		Nights     int    `json:"nights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, 3, receipt.Nights)
	assert.Equal(t, int64(1500000), receipt.TotalPrice)

	// Pending bookings do not block the calendar. The endpoint returns a
	// bare array of ranges.
	rec = env.do(t, http.MethodGet, "/api/v1/availability?room_id=family-room", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var booked []struct {
		CheckIn  string `json:"checkin"`
		CheckOut string `json:"checkout"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &booked))
	assert.Empty(t, booked)

	// Admin confirms.
	cookie := env.login(t)
	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/bookings/%s/confirm", receipt.BookingID), nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	// Confirmed range now appears in the public feed.
	rec = env.do(t, http.MethodGet, "/api/v1/availability?room_id=family-room", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	booked = booked[:0]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &booked))
	require.Len(t, booked, 1)
	assert.Equal(t, "2030-01-10", booked[0].CheckIn)
	assert.Equal(t, "2030-01-13", booked[0].CheckOut)

	// Overlapping request is now rejected.
	rec = env.do(t, http.MethodPost, "/api/v1/bookings", submitBody("2030-01-12", "2030-01-15"), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Back to back is fine.
	rec = env.do(t, http.MethodPost, "/api/v1/bookings", submitBody("2030-01-13", "2030-01-15"), nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestBookingValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	body := submitBody("2030-01-10", "2030-01-13")
	body["phone"] = ""
	rec := env.do(t, http.MethodPost, "/api/v1/bookings", body, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/bookings", submitBody("2030-01-13", "2030-01-10"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body = submitBody("2030-01-10", "2030-01-13")
	body["room_id"] = "no-such-room"
	rec = env.do(t, http.MethodPost, "/api/v1/bookings", body, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/admin/bookings", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/bookings", nil, &http.Cookie{Name: SessionCookie, Value: "forged"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/admin/auth/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/bookings", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/auth/logout", nil, cookie)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/bookings", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestContentUpdateVersionConflict(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	update := map[string]any{"payload": map[string]string{"title": "Tà Giang"}, "version": 0}
	rec := env.do(t, http.MethodPut, "/api/v1/admin/content/hero", update, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/admin/content/hero", update, cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/admin/content/sidebar", update, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoomsCRUD(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/rooms", map[string]any{
		"name":         "Dorm",
		"nightly_rate": 150000,
		"capacity":     8,
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = env.do(t, http.MethodGet, "/api/v1/rooms", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dorm")

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/rooms/"+created.ID, nil, cookie)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/rooms/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlogPublicRead(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/blog", map[string]any{
		"title":   "Trekking Tà Giang",
		"content": "Một hành trình đáng nhớ.",
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Slug)

	rec = env.do(t, http.MethodGet, "/api/v1/blog/"+created.Slug, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Trekking")

	rec = env.do(t, http.MethodGet, "/api/v1/blog/khong-ton-tai", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlogAgentDraft(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/blog/agent", map[string]string{
		"topic": "Trekking mùa xuân",
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Draft struct {
			Title   string   `json:"title"`
			Sources []string `json:"sources"`
		} `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Trekking Tà Giang mùa xuân", resp.Draft.Title)
	assert.Equal(t, []string{"https://vietnam.travel/khanh-son"}, resp.Draft.Sources)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/blog/agent", map[string]string{"topic": ""}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
