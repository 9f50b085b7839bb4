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

// AddNoteHandler adds a note to a deal room
func AddNoteHandler(st *store.Store, newID func() string) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")

		var req models.NoteCreateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		content := strings.TrimSpace(req.Content)
		if content == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Note content is required",
			})
		}

		now := time.Now().UnixMilli()
		note := models.WorkspaceNote{
			ID:        newID(),
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		}

		workspace, err := st.AddNote(slug, note)
		if err != nil {
			return workspaceError(c, err, "Failed to add note")
		}
		return c.JSON(http.StatusOK, workspace)
	}
}

// UpdateNoteHandler edits a note's content
func UpdateNoteHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")

		var req models.NoteUpdateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		if strings.TrimSpace(req.NoteID) == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Note id is required",
			})
		}
		content := strings.TrimSpace(req.Content)
		if content == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Note content is required",
			})
		}

		workspace, err := st.UpdateNote(slug, req.NoteID, content)
		if err != nil {
			return workspaceError(c, err, "Failed to update note")
		}
		return c.JSON(http.StatusOK, workspace)
	}
}

// DeleteNoteHandler removes a note from a deal room
func DeleteNoteHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")

		var req models.NoteDeleteRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		if strings.TrimSpace(req.NoteID) == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Note id is required",
			})
		}

		workspace, err := st.RemoveNote(slug, req.NoteID)
		if err != nil {
			return workspaceError(c, err, "Failed to delete note")
		}
		return c.JSON(http.StatusOK, workspace)
	}
}
