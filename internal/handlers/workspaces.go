package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"salescope/internal/models"
	"salescope/internal/store"
	"salescope/internal/utils"

	"github.com/labstack/echo/v4"
)

// GetWorkspaceHandler returns a deal room plus the history entries whose
// company slug matches it
func GetWorkspaceHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")

		workspace, err := st.ReadWorkspace(slug)
		if err != nil {
			return workspaceError(c, err, "Failed to read workspace")
		}

		interactions, err := matchingInteractions(st, slug)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to read history",
			})
		}

		return c.JSON(http.StatusOK, models.WorkspaceResponse{
			Workspace:    workspace,
			Interactions: interactions,
		})
	}
}

// CreateWorkspaceHandler creates or fetches the deal room for a company,
// importing AI-suggested tasks from that company's analysis next steps
func CreateWorkspaceHandler(st *store.Store, newID func() string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateWorkspaceRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		companyName := strings.TrimSpace(req.CompanyName)
		if companyName == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Company name is required",
			})
		}
		if len(companyName) > MaxCompanyNameLength {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Company name exceeds %d characters", MaxCompanyNameLength),
			})
		}

		slug := utils.CompanySlug(companyName)
		workspace, err := st.GetOrCreateWorkspace(slug, companyName)
		if err != nil {
			return workspaceError(c, err, "Failed to create workspace")
		}

		interactions, err := matchingInteractions(st, slug)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to read history",
			})
		}

		workspace, err = importSuggestedTasks(st, workspace, interactions, newID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to import suggested tasks",
			})
		}

		return c.JSON(http.StatusOK, models.WorkspaceResponse{
			Workspace:    workspace,
			Interactions: interactions,
		})
	}
}

// importSuggestedTasks copies analysis next steps into the workspace as AI
// tasks, skipping any text already present.
func importSuggestedTasks(st *store.Store, workspace *models.Workspace, interactions []models.HistoryEntry, newID func() string) (*models.Workspace, error) {
	existing := make(map[string]bool, len(workspace.Tasks))
	for _, task := range workspace.Tasks {
		existing[task.Text] = true
	}

	added := false
	for _, entry := range interactions {
		for _, step := range entry.Result.NextSteps {
			step = strings.TrimSpace(step)
			if step == "" || existing[step] {
				continue
			}
			workspace.Tasks = append(workspace.Tasks, models.WorkspaceTask{
				ID:            newID(),
				Text:          step,
				Status:        models.TaskPending,
				Priority:      models.PriorityMedium,
				CreatedAt:     time.Now().UnixMilli(),
				Source:        models.TaskSourceAI,
				SourceEntryID: entry.ID,
			})
			existing[step] = true
			added = true
		}
	}

	if !added {
		return workspace, nil
	}
	if err := st.WriteWorkspace(workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

// matchingInteractions returns the history entries whose recomputed company
// slug equals the workspace slug.
func matchingInteractions(st *store.Store, slug string) ([]models.HistoryEntry, error) {
	entries, err := st.ReadHistory()
	if err != nil {
		return nil, err
	}

	matched := make([]models.HistoryEntry, 0)
	for _, entry := range entries {
		if utils.CompanySlug(entry.CompanyName) == slug {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

// workspaceError maps store sentinel errors onto HTTP statuses.
func workspaceError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, store.ErrInvalidSlug):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid workspace slug"})
	case errors.Is(err, store.ErrWorkspaceNotFound):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Workspace not found"})
	case errors.Is(err, store.ErrTaskNotFound):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Task not found"})
	case errors.Is(err, store.ErrNoteNotFound):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Note not found"})
	case errors.Is(err, store.ErrTaskLimit), errors.Is(err, store.ErrNoteLimit), errors.Is(err, store.ErrDocumentLimit):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fallback})
	}
}
