//go:build e2e

package e2e_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/storetrack-backend/internal/adapter/jsonstore"
	"github.com/heartmarshall/storetrack-backend/internal/app"
	"github.com/heartmarshall/storetrack-backend/internal/config"
	"github.com/heartmarshall/storetrack-backend/internal/domain"
	"github.com/heartmarshall/storetrack-backend/internal/transport/middleware"
)

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// testServer wraps the full-stack HTTP server for E2E tests. Each server
// gets its own temp data directory and its own cookie jar, so tests are
// independent.
type testServer struct {
	URL    string
	Client *http.Client
	Store  *jsonstore.Store
}

// setupTestServer bootstraps the application stack on a temp data dir
// with two seeded accounts: admin/admin123 (manager) and alice/pass123
// (staff).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			LoginRateLimit: 1000,
		},
		Storage: config.StorageConfig{
			DataDir:  t.TempDir(),
			LockWait: 2 * time.Second,
		},
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret-at-least-32-chars-long!!",
			JWTIssuer:  "test-issuer",
			CookieName: "session",
		},
		Payroll:   config.PayrollConfig{HourlyRate: 15.0},
		Tasks:     config.TasksConfig{OverdueAfter: 24 * time.Hour},
		Inventory: config.InventoryConfig{LowStockThreshold: 5, BorrowOverdue: 168 * time.Hour},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		},
	}

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	store, err := jsonstore.New(cfg.Storage, logger)
	require.NoError(t, err)

	users := jsonstore.NewUserRepo(store)
	seedUser(t, users, "admin", "admin123", domain.RoleManager)
	seedUser(t, users, "alice", "pass123", domain.RoleStaff)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(rateLimiter.Stop)

	srv := httptest.NewServer(app.NewRouter(cfg, logger, store, rateLimiter))
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: newClient(t), Store: store}
}

// newClient builds a cookie-jar client that surfaces redirects to the
// tests instead of following them.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// seedAndLoginStaff registers an extra staff account against the running
// server's store and logs it in.
func seedAndLoginStaff(t *testing.T, ts *testServer, username, password string) {
	t.Helper()
	seedUser(t, jsonstore.NewUserRepo(ts.Store), username, password, domain.RoleStaff)
	ts.login(t, username, password)
}

func seedUser(t *testing.T, users *jsonstore.UserRepo, username, password string, role domain.Role) {
	t.Helper()
	err := users.Append(t.Context(), domain.User{
		ID:       uuid.New(),
		Username: username,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
}

// login authenticates and stores the session cookie in the client jar.
func (ts *testServer) login(t *testing.T, username, password string) {
	t.Helper()
	status, _ := ts.postForm(t, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusOK, status, "login %s", username)
}

func (ts *testServer) logout(t *testing.T) {
	t.Helper()
	resp := ts.get(t, "/logout")
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

// postForm sends a form-encoded POST and returns status + decoded JSON
// body (nil when the body is not JSON).
func (ts *testServer) postForm(t *testing.T, path string, form url.Values) (int, map[string]any) {
	t.Helper()

	resp, err := ts.Client.Post(ts.URL+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func (ts *testServer) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := ts.Client.Get(ts.URL + path)
	require.NoError(t, err)
	return resp
}

// getJSON sends a GET and requires a 200 JSON response.
func (ts *testServer) getJSON(t *testing.T, path string) map[string]any {
	t.Helper()

	resp := ts.get(t, path)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "GET %s", path)

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// getCSV sends a GET and returns the response body as trimmed CSV lines.
func (ts *testServer) getCSV(t *testing.T, path string) []string {
	t.Helper()

	resp := ts.get(t, path)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "GET %s", path)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(body)), "\n")
}

// list extracts a JSON array field from a decoded response.
func list(t *testing.T, result map[string]any, field string) []any {
	t.Helper()
	v, ok := result[field]
	require.True(t, ok, "expected %q in response", field)
	if v == nil {
		return nil
	}
	items, ok := v.([]any)
	require.True(t, ok, "expected %q to be an array", field)
	return items
}

// item extracts the i-th object from a JSON array field.
func item(t *testing.T, result map[string]any, field string, i int) map[string]any {
	t.Helper()
	items := list(t, result, field)
	require.Greater(t, len(items), i)
	obj, ok := items[i].(map[string]any)
	require.True(t, ok)
	return obj
}
