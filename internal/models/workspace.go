package models

// Task statuses and priorities.
const (
	TaskPending   = "pending"
	TaskCompleted = "completed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task sources.
const (
	TaskSourceAI     = "ai"
	TaskSourceManual = "manual"
)

// WorkspaceTask is one action item inside a deal room.
type WorkspaceTask struct {
	ID            string  `json:"id"`
	Text          string  `json:"text"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	DueDate       *string `json:"dueDate"` // YYYY-MM-DD
	CreatedAt     int64   `json:"createdAt"`
	CompletedAt   *int64  `json:"completedAt"`
	Source        string  `json:"source"`
	SourceEntryID string  `json:"sourceEntryId,omitempty"`
}

// WorkspaceNote is a free-form note inside a deal room.
type WorkspaceNote struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// WorkspaceDocument is the metadata for an uploaded file. The binary lives in
// a side file under the workspace's directory, named by FileName.
type WorkspaceDocument struct {
	ID           string `json:"id"`
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	SizeBytes    int64  `json:"sizeBytes"`
	UploadedAt   int64  `json:"uploadedAt"`
}

// Workspace is the per-company deal room: tasks, notes, and documents keyed by
// the company's slug. The slug is recomputed from the company name and joins
// the workspace to history entries for the same company.
type Workspace struct {
	Slug        string              `json:"slug"`
	CompanyName string              `json:"companyName"`
	CreatedAt   int64               `json:"createdAt"`
	UpdatedAt   int64               `json:"updatedAt"`
	Tasks       []WorkspaceTask     `json:"tasks"`
	Notes       []WorkspaceNote     `json:"notes"`
	Documents   []WorkspaceDocument `json:"documents"`
}
