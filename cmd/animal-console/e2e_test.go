//go:build e2e

package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// These run against a live console wired to cmd/mockzoo, e.g.
//
//	SEED_USER=e2e SEED_PASSWORD=e2e-password mockzoo &
//	API_URL=http://localhost:8081 animal-console &
//	go test -tags e2e ./cmd/animal-console/
var (
	consoleURL  string
	e2eUser     string
	e2ePassword string
)

func TestMain(m *testing.M) {
	consoleURL = getEnv("CONSOLE_URL", "http://localhost:3000")
	e2eUser = getEnv("E2E_USER", "e2e")
	e2ePassword = getEnv("E2E_PASSWORD", "e2e-password")

	if err := waitForService(consoleURL+"/ready", 30*time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Console not ready: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// waitForService polls a URL until it's healthy or timeout is reached.
func waitForService(url string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return nil
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("service not ready after %v", timeout)
}

// browser is an HTTP client that keeps cookies and follows redirects.
func browser(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

func submit(t *testing.T, client *http.Client, path string, form url.Values) (string, string) {
	t.Helper()
	resp, err := client.PostForm(consoleURL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return resp.Request.URL.Path, string(body)
}

func visit(t *testing.T, client *http.Client, path string) (string, string) {
	t.Helper()
	resp, err := client.Get(consoleURL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.Request.URL.Path, string(body)
}

// TestE2E_ProtectedViewNeedsLogin verifies the gate sends anonymous visitors to the entry view.
func TestE2E_ProtectedViewNeedsLogin(t *testing.T) {
	path, body := visit(t, browser(t), "/home")

	require.Equal(t, "/", path)
	require.Contains(t, body, `action="/login"`)
}

// TestE2E_AnimalLifecycle logs in, then creates, edits and deletes one animal.
func TestE2E_AnimalLifecycle(t *testing.T) {
	client := browser(t)
	name := "e2e-" + uuid.NewString()[:8]

	path, _ := submit(t, client, "/login", url.Values{"username": {e2eUser}, "password": {e2ePassword}})
	require.Equal(t, "/home", path, "login should land on the animals view")

	path, body := submit(t, client, "/home/animals", url.Values{
		"name": {name}, "species": {"Panthera leo"}, "age": {"5"}, "habitat": {"Savanna"},
	})
	require.Equal(t, "/home", path)
	require.Contains(t, body, name)

	row := regexp.MustCompile(`data-id="([^"]+)">\s*<td>` + regexp.QuoteMeta(name) + `</td>`).FindStringSubmatch(body)
	require.Len(t, row, 2, "created animal row not found")
	id := row[1]

	_, body = submit(t, client, "/home/animals/"+url.PathEscape(id), url.Values{
		"name": {name}, "species": {"Panthera leo"}, "age": {"6"}, "habitat": {"Zoo"},
	})
	require.Contains(t, body, "<td>Zoo</td>")

	_, body = visit(t, client, "/home/animals/"+url.PathEscape(id)+"/delete")
	require.Contains(t, body, `id="delete-prompt"`)
	require.Contains(t, body, name, "the prompt alone must not delete")

	_, body = submit(t, client, "/home/animals/"+url.PathEscape(id)+"/delete", nil)
	require.NotContains(t, body, name)

	path, _ = submit(t, client, "/logout", nil)
	require.Equal(t, "/", path)
}
