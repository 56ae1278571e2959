package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkotelnikov/invoicehub/internal/logging"
	"github.com/dkotelnikov/invoicehub/internal/server/repositories/repomanager"
	"github.com/dkotelnikov/invoicehub/internal/server/services"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, m, err := repomanager.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, m.RunMigrations(context.Background(), db))

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	srv, err := NewHTTPServer(":0", logger,
		services.NewUserService(db, m),
		services.NewInvoiceService(db, m, logger),
		"test-secret", time.Hour)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// newBrowser returns a client with a cookie jar that does not follow
// redirects, so tests can assert on Location headers directly.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, c *http.Client, rawURL string, form url.Values) *http.Response {
	t.Helper()
	resp, err := c.Post(rawURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func signup(t *testing.T, c *http.Client, base, username, password string) {
	t.Helper()
	resp := postForm(t, c, base+"/signup", url.Values{
		"username": {username},
		"password": {password},
	})
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	ts := setupTestServer(t)
	c := newBrowser(t)

	for _, path := range []string{"/", "/edit/1", "/delete/1"} {
		resp, err := c.Get(ts.URL + path)
		require.NoError(t, err)
		readBody(t, resp)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}
}

func TestSignupLogsInImmediately(t *testing.T) {
	ts := setupTestServer(t)
	c := newBrowser(t)

	signup(t, c, ts.URL, "alice", "correcthorse")

	// the signup response set the session cookie; home now renders
	resp, err := c.Get(ts.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "alice")
}

func TestSignupDuplicateUsername(t *testing.T) {
	ts := setupTestServer(t)

	signup(t, newBrowser(t), ts.URL, "alice", "correcthorse")

	resp := postForm(t, newBrowser(t), ts.URL+"/signup", url.Values{
		"username": {"alice"},
		"password": {"batterystaple"},
	})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, "username already exists")
}

func TestSignupShortPassword(t *testing.T) {
	ts := setupTestServer(t)

	resp := postForm(t, newBrowser(t), ts.URL+"/signup", url.Values{
		"username": {"alice"},
		"password": {"short"},
	})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "password must be at least 8 characters")
}

func TestLoginWrongCredentials(t *testing.T) {
	ts := setupTestServer(t)

	signup(t, newBrowser(t), ts.URL, "alice", "correcthorse")

	tests := []struct {
		name string
		form url.Values
	}{
		{"wrong password", url.Values{"username": {"alice"}, "password": {"not-it-at-all"}}},
		{"unknown user", url.Values{"username": {"mallory"}, "password": {"correcthorse"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postForm(t, newBrowser(t), ts.URL+"/login", tt.form)
			body := readBody(t, resp)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			// same message either way, no account enumeration
			assert.Contains(t, body, "invalid username or password")
		})
	}
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	ts := setupTestServer(t)

	signup(t, newBrowser(t), ts.URL, "alice", "correcthorse")

	c := newBrowser(t)
	resp := postForm(t, c, ts.URL+"/login", url.Values{
		"username": {"alice"},
		"password": {"correcthorse"},
	})
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	resp, err := c.Get(ts.URL + "/")
	require.NoError(t, err)
	readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = c.Get(ts.URL + "/logout")
	require.NoError(t, err)
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// session is gone, home is gated again
	resp, err = c.Get(ts.URL + "/")
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLogoutWithoutSession(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := newBrowser(t).Get(ts.URL + "/logout")
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestTamperedSessionCookie(t *testing.T) {
	ts := setupTestServer(t)
	c := newBrowser(t)

	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	c.Jar.SetCookies(u, []*http.Cookie{{Name: "session", Value: "not.a.jwt"}})

	resp, err := c.Get(ts.URL + "/")
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func validInvoiceForm() url.Values {
	return url.Values{
		"customer_name":    {"ACME Corp"},
		"customer_address": {"1 Main Street"},
		"date":             {"15/03/2024"},
		"invoice_no":       {"INV-001"},
		"description":      {"Consulting"},
		"invoice_total":    {"1250.50"},
	}
}

func TestCreateAndListInvoice(t *testing.T) {
	ts := setupTestServer(t)
	c := newBrowser(t)
	signup(t, c, ts.URL, "alice", "correcthorse")

	resp := postForm(t, c, ts.URL+"/", validInvoiceForm())
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	resp, err := c.Get(ts.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "ACME Corp")
	assert.Contains(t, body, "INV-001")
	assert.Contains(t, body, "1250.5")
	assert.Contains(t, body, "Unpaid")
}

func TestCreateInvoiceValidation(t *testing.T) {
	ts := setupTestServer(t)
	c := newBrowser(t)
	signup(t, c, ts.URL, "alice", "correcthorse")

	tests := []struct {
		name    string
		mutate  func(url.Values)
		message string
	}{
		{"missing field", func(f url.Values) { f.Set("description", "   ") }, "all fields are required"},
		{"bad total", func(f url.Values) { f.Set("invoice_total", "abc") }, "invalid total"},
		{"negative total", func(f url.Values) { f.Set("invoice_total", "-5") }, "invalid total"},
		{"bad date", func(f url.Values) { f.Set("date", "31/02/2024") }, "invalid date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validInvoiceForm()
			tt.mutate(form)

			resp := postForm(t, c, ts.URL+"/", form)
			body := readBody(t, resp)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, body, tt.message)
		})
	}

	// none of the rejected submissions were persisted
	resp, err := c.Get(ts.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.NotContains(t, body, "INV-001")
}

func TestEditInvoice(t *testing.T) {
	ts := setupTestServer(t)
	c := newBrowser(t)
	signup(t, c, ts.URL, "alice", "correcthorse")

	resp := postForm(t, c, ts.URL+"/", validInvoiceForm())
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp, err := c.Get(ts.URL + "/edit/1")
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "ACME Corp")

	form := validInvoiceForm()
	form.Set("customer_name", "ACME Holdings")
	form.Set("status", "Paid")
	resp = postForm(t, c, ts.URL+"/edit/1", form)
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp, err = c.Get(ts.URL + "/")
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, "ACME Holdings")
	assert.Contains(t, body, "Paid")
}

func TestEditInvoiceInvalidStatus(t *testing.T) {
	ts := setupTestServer(t)
	c := newBrowser(t)
	signup(t, c, ts.URL, "alice", "correcthorse")

	resp := postForm(t, c, ts.URL+"/", validInvoiceForm())
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	form := validInvoiceForm()
	form.Set("status", "Overdue")
	resp = postForm(t, c, ts.URL+"/edit/1", form)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "invalid status")
}

func TestDeleteInvoiceIdempotent(t *testing.T) {
	ts := setupTestServer(t)
	c := newBrowser(t)
	signup(t, c, ts.URL, "alice", "correcthorse")

	resp := postForm(t, c, ts.URL+"/", validInvoiceForm())
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	// deleting twice succeeds both times
	for i := 0; i < 2; i++ {
		resp, err := c.Get(ts.URL + "/delete/1")
		require.NoError(t, err)
		readBody(t, resp)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	}

	resp2, err := c.Get(ts.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp2)
	assert.NotContains(t, body, "ACME Corp")
}

func TestCrossTenantIsolation(t *testing.T) {
	ts := setupTestServer(t)

	alice := newBrowser(t)
	signup(t, alice, ts.URL, "alice", "correcthorse")
	resp := postForm(t, alice, ts.URL+"/", validInvoiceForm())
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	bob := newBrowser(t)
	signup(t, bob, ts.URL, "bob", "batterystaple")

	// bob's list does not include alice's invoice
	resp, err := bob.Get(ts.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.NotContains(t, body, "ACME Corp")

	// bob cannot open alice's invoice for editing
	resp, err = bob.Get(ts.URL + "/edit/1")
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// bob's delete of alice's invoice is a no-op
	resp, err = bob.Get(ts.URL + "/delete/1")
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp, err = alice.Get(ts.URL + "/")
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, "ACME Corp")
}

func TestBadInvoiceIDRedirectsHome(t *testing.T) {
	ts := setupTestServer(t)
	c := newBrowser(t)
	signup(t, c, ts.URL, "alice", "correcthorse")

	for _, path := range []string{"/edit/abc", "/delete/abc"} {
		resp, err := c.Get(ts.URL + path)
		require.NoError(t, err)
		readBody(t, resp)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/", resp.Header.Get("Location"), path)
	}
}
