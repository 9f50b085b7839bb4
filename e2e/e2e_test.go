// Package e2e provides end-to-end API tests against a running salescope
// instance. Set E2E_BASE_URL to run them; they are skipped otherwise so the
// unit suite stays hermetic.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("E2E_BASE_URL")
	if url == "" {
		t.Skip("E2E_BASE_URL not set, skipping end-to-end tests")
	}
	return url
}

func client() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client().Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	base := baseURL(t)

	resp, err := client().Get(base + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
	assert.NotEmpty(t, health.Version)
}

func TestHistoryRoundTrip(t *testing.T) {
	base := baseURL(t)
	id := fmt.Sprintf("e2e-%d", time.Now().UnixNano())

	resp := postJSON(t, base+"/api/history", map[string]any{
		"id":          id,
		"mode":        "transcript",
		"companyName": "E2E Test Co",
		"leadScore":   50,
		"result":      map[string]any{},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list, err := client().Get(base + "/api/history")
	require.NoError(t, err)
	defer list.Body.Close()
	require.Equal(t, http.StatusOK, list.StatusCode)

	var entries []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(list.Body).Decode(&entries))

	found := false
	for _, e := range entries {
		if e.ID == id {
			found = true
		}
	}
	assert.True(t, found, "appended entry should be listed")

	// Clean up the test entry.
	req, err := http.NewRequest(http.MethodDelete, base+"/api/history", bytes.NewReader([]byte(fmt.Sprintf(`{"id":%q}`, id))))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	del, err := client().Do(req)
	require.NoError(t, err)
	defer del.Body.Close()
	assert.Equal(t, http.StatusOK, del.StatusCode)
}

func TestWorkspaceLifecycle(t *testing.T) {
	base := baseURL(t)
	company := fmt.Sprintf("E2E Workspace %d", time.Now().UnixNano())

	resp := postJSON(t, base+"/api/workspaces/placeholder", map[string]string{"companyName": company})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ws struct {
		Workspace struct {
			Slug string `json:"slug"`
		} `json:"workspace"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ws))
	require.NotEmpty(t, ws.Workspace.Slug)

	get, err := client().Get(base + "/api/workspaces/" + ws.Workspace.Slug)
	require.NoError(t, err)
	defer get.Body.Close()
	assert.Equal(t, http.StatusOK, get.StatusCode)
}

func TestValidationRejectsEmptyAnalyze(t *testing.T) {
	base := baseURL(t)

	resp := postJSON(t, base+"/api/analyze", map[string]string{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
