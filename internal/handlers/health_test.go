package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salescope/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"returns healthy status", "1.0.0"},
		{"returns healthy with custom version", "2.5.3"},
		{"returns healthy with empty version", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := HealthHandler(tt.version)
			err := handler(c)

			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)

			var response models.HealthResponse
			err = json.Unmarshal(rec.Body.Bytes(), &response)
			require.NoError(t, err)

			assert.Equal(t, "healthy", response.Status)
			assert.Equal(t, tt.version, response.Version)
			assert.WithinDuration(t, time.Now().UTC(), response.Timestamp, 5*time.Second)
		})
	}
}
