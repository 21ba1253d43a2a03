package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisata/internal/auth/models"
	"wisata/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewMemory()
	return NewClient(srv.URL, store), store
}

func TestBearerTokenReadFreshPerCall(t *testing.T) {
	var seen []string
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	})

	require.NoError(t, store.Write(session.Record{Token: "first", User: []byte(`{}`)}))
	_, err := client.Tours().List(context.Background())
	require.NoError(t, err)

	require.NoError(t, store.Write(session.Record{Token: "second", User: []byte(`{}`)}))
	_, err = client.Tours().List(context.Background())
	require.NoError(t, err)

	require.NoError(t, store.Clear())
	_, err = client.Tours().List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer first", "Bearer second", ""}, seen)
}

func TestPublicEndpointsNeverAttachToken(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	})
	require.NoError(t, store.Write(session.Record{Token: "secret", User: []byte(`{}`)}))

	_, err := client.PublicTours().List(context.Background())
	require.NoError(t, err)
}

func TestListWrapsBareArray(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/tours", r.URL.Path)
		w.Write([]byte(`[{"id":1,"name":"Ijen Crater"},{"id":2,"name":"Bromo Sunrise"}]`))
	})

	res, err := client.Tours().List(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "Bromo Sunrise", res.Data[1].Name)
}

func TestListFailureUsesFallbackMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	})

	res, err := client.Tours().List(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Failed to fetch tours", res.Message)
	assert.Empty(t, res.Data)
}

func TestTransportFailureBecomesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, session.NewMemory())

	res, err := client.Tours().List(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
	assert.Empty(t, res.Data)
}

func TestUpdateSendsMultipartWithMethodOverride(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/tours/7", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "PUT", r.FormValue("_method"))
		assert.Equal(t, "Ijen Crater", r.FormValue("name"))
		assert.Equal(t, "150000", r.FormValue("price_per_person"))
		assert.Equal(t, "true", r.FormValue("is_available"))

		files := r.MultipartForm.File["image[]"]
		require.Len(t, files, 2)
		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		content, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "jpegdata", string(content))

		w.Write([]byte(`{"success":true,"data":{"id":7,"name":"Ijen Crater"}}`))
	})
	require.NoError(t, store.Write(session.Record{Token: "admintok", User: []byte(`{}`)}))

	res, err := client.Tours().Update(context.Background(), 7, TourInput{
		Name:           "Ijen Crater",
		PricePerPerson: "150000",
		Available:      true,
		Images: []Upload{
			{Name: "cover.jpg", Content: strings.NewReader("jpegdata")},
			{Name: "trail.jpg", Content: strings.NewReader("moredata")},
		},
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(7), res.Data.ID)
}

func TestCreateOmitsMethodOverride(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Empty(t, r.FormValue("_method"))
		w.Write([]byte(`{"success":true,"data":{"id":1}}`))
	})
	require.NoError(t, store.Write(session.Record{Token: "admintok", User: []byte(`{}`)}))

	res, err := client.Rentals().Create(context.Background(), RentalInput{Type: "car"})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestLoginVerified(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "admin@wisata.test", creds["email"])
		w.Write([]byte(`{"message":"ok","data":{"token":"tok-1","user":{"id":1,"name":"Admin","email":"admin@wisata.test","role":"admin","email_verified_at":"2026-01-01T00:00:00Z"}}}`))
	})

	got, err := client.Auth().Login(context.Background(), "admin@wisata.test", "secret")
	require.NoError(t, err)
	assert.True(t, got.Verified)
	assert.Equal(t, "tok-1", got.Token)
	assert.Equal(t, models.RoleAdmin, got.User.Role)
}

func TestLoginUnverifiedStillIssuesToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Email not verified","data":{"token":"tok-2","user":{"id":5,"name":"Putri","email":"putri@wisata.test","role":"user"}}}`))
	})

	got, err := client.Auth().Login(context.Background(), "putri@wisata.test", "secret")
	require.NoError(t, err)
	assert.False(t, got.Verified)
	assert.Equal(t, "tok-2", got.Token)
	assert.Equal(t, int64(5), got.User.ID)
}

func TestLoginRejectedCredentials(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	_, err := client.Auth().Login(context.Background(), "x@y.test", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestVerifyEmailSendsIntegerOTP(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/verify-email", r.URL.Path)
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "123456", string(body["otp"]))
		w.Write([]byte(`{"success":true,"data":{"access_token":"fresh","user":{"id":5,"name":"Putri","email":"putri@wisata.test","role":"user","email_verified_at":"2026-08-29T10:00:00Z"}}}`))
	})

	got, err := client.Auth().VerifyEmail(context.Background(), "putri@wisata.test", 123456)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.AccessToken)
	assert.True(t, got.User.VerifiedEmail())
}

func TestVerifyEmailFlattensValidationErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"The given data was invalid.","errors":{"otp":["The OTP is invalid."]}}`))
	})

	_, err := client.Auth().VerifyEmail(context.Background(), "putri@wisata.test", 111111)
	require.Error(t, err)
	assert.Equal(t, "The OTP is invalid.", err.Error())
}

func TestLogoutUsesExplicitToken(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logout", r.URL.Path)
		assert.Equal(t, "Bearer captured", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true}`))
	})
	// The store is already cleared by the time logout fires.
	require.NoError(t, store.Clear())

	require.NoError(t, client.Auth().Logout(context.Background(), "captured"))
}

func TestDashboardStats(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/dashboard/stats", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"total_tours":12,"total_activities":8,"total_rentals":5,"total_bookings":140,"revenue":"45000000"}}`))
	})
	require.NoError(t, store.Write(session.Record{Token: "admintok", User: []byte(`{}`)}))

	res, err := client.Dashboard().Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 12, res.Data.TotalTours)
	assert.InDelta(t, 45000000, float64(res.Data.Revenue), 0.001)
}
