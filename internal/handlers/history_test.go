package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"salescope/internal/models"
	"salescope/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T, st *store.Store, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := st.AddEntry(models.HistoryEntry{
			ID:          id,
			Timestamp:   1750000000000,
			Mode:        models.ModeTranscript,
			CompanyName: "Acme",
		})
		require.NoError(t, err)
	}
}

func TestListHistoryHandler(t *testing.T) {
	st := store.New(t.TempDir())
	seedHistory(t, st, "e1", "e2")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, ListHistoryHandler(st)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var entries []models.HistoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	// Newest first.
	assert.Equal(t, "e2", entries[0].ID)
}

func TestAddHistoryHandler(t *testing.T) {
	st := store.New(t.TempDir())

	entry := models.HistoryEntry{
		ID:          "e1",
		Mode:        models.ModeTranscript,
		CompanyName: "Acme",
		LeadScore:   75,
	}

	c, rec := postJSON(t, "/api/history", entry)
	require.NoError(t, AddHistoryHandler(st)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var entries []models.HistoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "e1", entries[0].ID)
	// Missing timestamp is stamped server-side.
	assert.NotZero(t, entries[0].Timestamp)
}

func TestAddHistoryHandler_Validation(t *testing.T) {
	st := store.New(t.TempDir())

	tests := []struct {
		name          string
		entry         models.HistoryEntry
		expectedError string
	}{
		{"missing id", models.HistoryEntry{CompanyName: "Acme"}, "Entry id is required"},
		{"missing company", models.HistoryEntry{ID: "e1"}, "Company name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := postJSON(t, "/api/history", tt.entry)
			require.NoError(t, AddHistoryHandler(st)(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tt.expectedError)
		})
	}
}

func TestDeleteHistoryHandler_ByID(t *testing.T) {
	st := store.New(t.TempDir())
	seedHistory(t, st, "e1", "e2")

	c, rec := postJSON(t, "/api/history", models.HistoryDeleteRequest{ID: "e1"})
	require.NoError(t, DeleteHistoryHandler(st)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var entries []models.HistoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "e2", entries[0].ID)
}

func TestDeleteHistoryHandler_ClearAll(t *testing.T) {
	st := store.New(t.TempDir())
	seedHistory(t, st, "e1", "e2", "e3")

	c, rec := postJSON(t, "/api/history", models.HistoryDeleteRequest{ClearAll: true})
	require.NoError(t, DeleteHistoryHandler(st)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	entries, err := st.ReadHistory()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteHistoryHandler_MissingID(t *testing.T) {
	st := store.New(t.TempDir())

	c, rec := postJSON(t, "/api/history", models.HistoryDeleteRequest{})
	require.NoError(t, DeleteHistoryHandler(st)(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
