package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"salescope/internal/models"
	"salescope/internal/store"

	"github.com/labstack/echo/v4"
)

// ListHistoryHandler returns the stored interaction history, newest first
func ListHistoryHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := st.ReadHistory()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to read history",
			})
		}
		return c.JSON(http.StatusOK, entries)
	}
}

// AddHistoryHandler appends one interaction record
func AddHistoryHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var entry models.HistoryEntry
		if err := c.Bind(&entry); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		if strings.TrimSpace(entry.ID) == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Entry id is required",
			})
		}
		if strings.TrimSpace(entry.CompanyName) == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Company name is required",
			})
		}
		if entry.Timestamp == 0 {
			entry.Timestamp = time.Now().UnixMilli()
		}

		entries, err := st.AddEntry(entry)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to save history entry",
			})
		}
		return c.JSON(http.StatusOK, entries)
	}
}

// DeleteHistoryHandler removes one entry by id, or everything with clearAll
func DeleteHistoryHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.HistoryDeleteRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		if req.ClearAll {
			if err := st.ClearHistory(); err != nil {
				return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
					Error: "Failed to clear history",
				})
			}
			return c.JSON(http.StatusOK, []models.HistoryEntry{})
		}

		if strings.TrimSpace(req.ID) == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Entry id is required",
			})
		}

		entries, err := st.RemoveEntry(req.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to delete history entry",
			})
		}
		return c.JSON(http.StatusOK, entries)
	}
}
