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

func validPriority(p string) bool {
	return p == models.PriorityLow || p == models.PriorityMedium || p == models.PriorityHigh
}

func validDueDate(d string) bool {
	_, err := time.Parse("2006-01-02", d)
	return err == nil
}

// AddTaskHandler adds a manual task to a deal room
func AddTaskHandler(st *store.Store, newID func() string) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")

		var req models.TaskCreateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		text := strings.TrimSpace(req.Text)
		if text == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Task text is required",
			})
		}

		priority := req.Priority
		if priority == "" {
			priority = models.PriorityMedium
		}
		if !validPriority(priority) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Priority must be low, medium, or high",
			})
		}

		var dueDate *string
		if req.DueDate != "" {
			if !validDueDate(req.DueDate) {
				return c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Error: "Due date must be YYYY-MM-DD",
				})
			}
			dueDate = &req.DueDate
		}

		task := models.WorkspaceTask{
			ID:        newID(),
			Text:      text,
			Status:    models.TaskPending,
			Priority:  priority,
			DueDate:   dueDate,
			CreatedAt: time.Now().UnixMilli(),
			Source:    models.TaskSourceManual,
		}

		workspace, err := st.AddTask(slug, task)
		if err != nil {
			return workspaceError(c, err, "Failed to add task")
		}
		return c.JSON(http.StatusOK, workspace)
	}
}

// UpdateTaskHandler updates a task's text, status, priority, or due date
func UpdateTaskHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")

		var req models.TaskUpdateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		if strings.TrimSpace(req.TaskID) == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Task id is required",
			})
		}
		if req.Updates.Status != nil &&
			*req.Updates.Status != models.TaskPending && *req.Updates.Status != models.TaskCompleted {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Status must be pending or completed",
			})
		}
		if req.Updates.Priority != nil && !validPriority(*req.Updates.Priority) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Priority must be low, medium, or high",
			})
		}
		if req.Updates.DueDate != nil && *req.Updates.DueDate != "" && !validDueDate(*req.Updates.DueDate) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Due date must be YYYY-MM-DD",
			})
		}

		workspace, err := st.UpdateTask(slug, req.TaskID, req.Updates)
		if err != nil {
			return workspaceError(c, err, "Failed to update task")
		}
		return c.JSON(http.StatusOK, workspace)
	}
}

// DeleteTaskHandler removes a task from a deal room
func DeleteTaskHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")

		var req models.TaskDeleteRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		if strings.TrimSpace(req.TaskID) == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Task id is required",
			})
		}

		workspace, err := st.RemoveTask(slug, req.TaskID)
		if err != nil {
			return workspaceError(c, err, "Failed to delete task")
		}
		return c.JSON(http.StatusOK, workspace)
	}
}
