package main

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"finhub/internal/handlers"
	"finhub/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegisterLoginTrackScenario walks the whole application through a
// browser-like client: register, log in, record one income and one outcome,
// and check the dashboard totals.
func TestRegisterLoginTrackScenario(t *testing.T) {
	if _, err := os.Stat("../../web/templates"); os.IsNotExist(err) {
		t.Skip("Template directory not found, skipping e2e test")
	}

	db, err := storage.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	h := handlers.NewHandlers(db, "../../web/templates", filepath.Join(t.TempDir(), "chart.png"), false)
	server := httptest.NewServer(setupRouter(h, "../../web/static"))
	defer server.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	post := func(path string, values url.Values) *http.Response {
		t.Helper()
		resp, err := client.PostForm(server.URL+path, values)
		require.NoError(t, err, "POST %s", path)
		return resp
	}
	get := func(path string) string {
		t.Helper()
		resp, err := client.Get(server.URL + path)
		require.NoError(t, err, "GET %s", path)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, "GET %s", path)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(body)
	}

	// Register alice.
	resp := post("/register", url.Values{
		"username":         {"alice"},
		"name":             {"Alice A"},
		"password":         {"pw123"},
		"confirm_password": {"pw123"},
	})
	resp.Body.Close()

	// Log in.
	resp = post("/", url.Values{"username": {"alice"}, "password": {"pw123"}})
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasSuffix(resp.Request.URL.Path, "/alice"),
		"login should land on the dashboard, got %s", resp.Request.URL.Path)
	assert.Contains(t, string(body), "Alice A")

	// Record one income and one outcome through the embedded dashboard forms.
	resp = post("/alice", url.Values{
		"add_income":  {"1"},
		"amount":      {"100"},
		"type":        {"Salary"},
		"description": {"paycheck"},
	})
	resp.Body.Close()

	resp = post("/alice", url.Values{
		"add_outcome": {"1"},
		"amount":      {"40"},
		"type":        {"Food"},
		"description": {"groceries"},
	})
	resp.Body.Close()

	// The dashboard reports the totals.
	dashboard := get("/alice")
	assert.Contains(t, dashboard, "Total income: <span class=\"amount\">100.00</span>")
	assert.Contains(t, dashboard, "Total outcome: <span class=\"amount\">40.00</span>")
	assert.Contains(t, dashboard, "paycheck")
	assert.Contains(t, dashboard, "groceries")

	// Totals survive independently in the store.
	user, err := db.GetUserByUsername("alice")
	require.NoError(t, err)
	totalIncome, err := db.TotalIncome(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100, totalIncome, 0.001)
	totalOutcome, err := db.TotalOutcome(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 40, totalOutcome, 0.001)

	// Log out and verify the dashboard is gated again.
	resp, err = client.Get(server.URL + "/logout")
	require.NoError(t, err)
	resp.Body.Close()

	noRedirect := &http.Client{
		Jar:           jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err = noRedirect.Get(server.URL + "/alice")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}
