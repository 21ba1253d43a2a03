package web

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisata/internal/api"
	"wisata/internal/auth"
	"wisata/internal/auth/guard"
	"wisata/internal/auth/models"
	"wisata/internal/catalog"
	"wisata/internal/platform/health"
	"wisata/internal/session"
	"wisata/internal/storefront"
)

// fakeUpstream is a canned tourism API: one verified admin, one
// unverified traveller, a small catalog.
func fakeUpstream() http.Handler {
	mux := http.NewServeMux()

	adminUser := `{"id":1,"name":"Admin","email":"admin@wisata.test","role":"admin","email_verified_at":"2026-01-01T00:00:00Z"}`
	travellerUser := `{"id":5,"name":"Putri","email":"putri@wisata.test","role":"user"}`

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		switch creds["email"] {
		case "admin@wisata.test":
			io.WriteString(w, `{"message":"ok","data":{"token":"admin-token","user":`+adminUser+`}}`)
		case "putri@wisata.test":
			w.WriteHeader(http.StatusForbidden)
			io.WriteString(w, `{"message":"Email not verified","data":{"token":"putri-token","user":`+travellerUser+`}}`)
		default:
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"Invalid credentials"}`)
		}
	})
	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true}`)
	})
	mux.HandleFunc("POST /verify-email", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if otp, _ := body["otp"].(float64); otp != 123456 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			io.WriteString(w, `{"message":"invalid","errors":{"otp":["The OTP is invalid."]}}`)
			return
		}
		verified := strings.Replace(travellerUser, `"role":"user"`, `"role":"user","email_verified_at":"2026-08-29T10:00:00Z"`, 1)
		io.WriteString(w, `{"success":true,"data":{"access_token":"putri-verified-token","user":`+verified+`}}`)
	})
	mux.HandleFunc("GET /tour-packages/get", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":1,"slug":"ijen-crater","name":"Ijen Crater","is_available":true},{"id":2,"slug":"closed","name":"Closed Tour","is_available":false}]`)
	})
	mux.HandleFunc("GET /activity-packages/get", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})
	mux.HandleFunc("GET /rental-packages/get", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})
	mux.HandleFunc("GET /admin/tours", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer admin-token" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"Unauthenticated."}`)
			return
		}
		io.WriteString(w, `[{"id":1,"name":"Ijen Crater"}]`)
	})
	mux.HandleFunc("GET /admin/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":{"total_tours":1,"total_activities":0,"total_rentals":0,"total_bookings":3}}`)
	})
	mux.HandleFunc("GET /admin/dashboard/recent-bookings", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":[{"id":9,"customer_name":"Putri","package_name":"Ijen Crater"}]}`)
	})
	mux.HandleFunc("GET /admin/dashboard/recent-reviews", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":[]}`)
	})

	return mux
}

type gateway struct {
	router  http.Handler
	manager *auth.Manager
}

func newGateway(t *testing.T) *gateway {
	t.Helper()

	upstream := httptest.NewServer(fakeUpstream())
	t.Cleanup(upstream.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := session.NewMemory()
	client := api.NewClient(upstream.URL, store, api.WithLogger(log))

	manager := auth.NewManager(store,
		auth.WithManagerLogger(log),
		auth.WithNotifier(client.Auth()),
	)
	manager.Load()
	flow := auth.NewFlow(client.Auth(), manager, log)

	h := New(Config{
		Logger:          log,
		Manager:         manager,
		Flow:            flow,
		Guard:           guard.New(manager, log, nil),
		Dashboard:       client.Dashboard(),
		Tours:           catalog.NewTours(client, log),
		Activities:      catalog.NewActivities(client, log),
		Rentals:         catalog.NewRentals(client, log),
		TourBrowser:     storefront.NewTourBrowser(client, log),
		ActivityBrowser: storefront.NewActivityBrowser(client, log),
		RentalBrowser:   storefront.NewRentalBrowser(client, log),
		Home:            storefront.NewHome(client, storefront.WithHomeLogger(log)),
		Health:          health.New("test"),
	})
	return &gateway{router: h.Router(), manager: manager}
}

func (g *gateway) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	g.router.ServeHTTP(rec, req)
	return rec
}

func (g *gateway) signIn(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return g.do(t, http.MethodPost, "/login", map[string]string{"email": email, "password": password})
}

func TestAnonymousIsRedirectedToLogin(t *testing.T) {
	g := newGateway(t)
	rec := g.do(t, http.MethodGet, "/my-bookings", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?from=%2Fmy-bookings", rec.Header().Get("Location"))
}

func TestPublicStorefrontNeedsNoSession(t *testing.T) {
	g := newGateway(t)
	rec := g.do(t, http.MethodGet, "/tour-packages", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool       `json:"success"`
		Data    []api.Tour `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1, "unavailable packages are filtered out")
	assert.Equal(t, "Ijen Crater", body.Data[0].Name)
}

func TestUnavailableDetailIsWithheld(t *testing.T) {
	g := newGateway(t)
	rec := g.do(t, http.MethodGet, "/tour-packages/closed", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "This tour package is currently unavailable")
}

func TestVerifiedAdminLogin(t *testing.T) {
	g := newGateway(t)
	rec := g.signIn(t, "admin@wisata.test", "secret")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect_to":"/admin"`)
}

func TestRejectedCredentials(t *testing.T) {
	g := newGateway(t)
	rec := g.signIn(t, "nobody@wisata.test", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.False(t, g.manager.IsAuthenticated())
}

func TestUnverifiedTravellerIsRoutedToVerification(t *testing.T) {
	g := newGateway(t)
	rec := g.signIn(t, "putri@wisata.test", "secret")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect_to":"/verify-email"`)

	// The session is open but the home page bounces to verification.
	require.True(t, g.manager.IsAuthenticated())
	home := g.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusSeeOther, home.Code)
	assert.Equal(t, "/verify-email", home.Header().Get("Location"))

	// The verification page itself renders, no redirect loop.
	verify := g.do(t, http.MethodGet, "/verify-email", nil)
	assert.Equal(t, http.StatusOK, verify.Code)
}

func TestVerificationPromotesSession(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, "putri@wisata.test", "secret")

	bad := g.do(t, http.MethodPost, "/verify-email", map[string]string{"email": "putri@wisata.test", "otp": "111111"})
	assert.Equal(t, http.StatusUnprocessableEntity, bad.Code)
	assert.Contains(t, bad.Body.String(), "The OTP is invalid.")

	good := g.do(t, http.MethodPost, "/verify-email", map[string]string{"email": "putri@wisata.test", "otp": "123456"})
	require.Equal(t, http.StatusOK, good.Code)
	assert.Contains(t, good.Body.String(), `"redirect_to":"/"`)

	home := g.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, home.Code)
}

func TestAdminDashboardAggregate(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, "admin@wisata.test", "secret")

	rec := g.do(t, http.MethodGet, "/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_bookings":3`)
}

func TestUnverifiedAdminBypassesVerification(t *testing.T) {
	g := newGateway(t)
	admin := models.User{ID: 1, Name: "Admin", Email: "admin@wisata.test", Role: models.RoleAdmin}
	require.NoError(t, g.manager.Login(admin, "admin-token", false, ""))
	require.True(t, g.manager.NeedsVerification())

	// The admin console waives verification outright.
	console := g.do(t, http.MethodGet, "/admin/tours", nil)
	assert.Equal(t, http.StatusOK, console.Code)

	// Verification-demanding routes render too, per the admin bypass.
	home := g.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, home.Code)
}

func TestTravellerCannotEnterAdminConsole(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, "putri@wisata.test", "secret")

	rec := g.do(t, http.MethodGet, "/admin/tours", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestAdminCatalogUsesSessionToken(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, "admin@wisata.test", "secret")

	rec := g.do(t, http.MethodGet, "/admin/tours", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ijen Crater")
}

func TestLogoutClosesSession(t *testing.T) {
	g := newGateway(t)
	g.signIn(t, "admin@wisata.test", "secret")
	require.True(t, g.manager.IsAuthenticated())

	rec := g.do(t, http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, g.manager.IsAuthenticated())

	after := g.do(t, http.MethodGet, "/settings", nil)
	assert.Equal(t, http.StatusSeeOther, after.Code)
}

func TestSessionEndpointReportsState(t *testing.T) {
	g := newGateway(t)
	rec := g.do(t, http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)

	g.signIn(t, "putri@wisata.test", "secret")
	rec = g.do(t, http.MethodGet, "/session", nil)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	assert.Contains(t, rec.Body.String(), `"needs_verification":true`)
}

func TestHealthEndpoints(t *testing.T) {
	g := newGateway(t)
	assert.Equal(t, http.StatusOK, g.do(t, http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, g.do(t, http.MethodGet, "/health", nil).Code)
}
