package models

import "time"

// HealthResponse represents a basic health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// ErrorResponse is the uniform error body for every failure path.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AnalyzeRequest is the payload for the analyze endpoint. When EventForm is
// present and Transcript is empty, the briefing text is derived from the form.
type AnalyzeRequest struct {
	Transcript  string     `json:"transcript"`
	CompanyName string     `json:"companyName"`
	DealStage   string     `json:"dealStage"`
	DealAmount  string     `json:"dealAmount,omitempty"`
	Source      string     `json:"source,omitempty"`
	EventForm   *EventForm `json:"eventForm,omitempty"`
}

// ChatMessage is one prior turn of the assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"` // user or assistant
	Content string `json:"content"`
}

// ChatRequest is the payload for the chat endpoint. Context is optional; when
// absent the server selects relevant history itself.
type ChatRequest struct {
	Question            string        `json:"question"`
	Context             string        `json:"context,omitempty"`
	ConversationHistory []ChatMessage `json:"conversationHistory,omitempty"`
}

// ExtractedTask is an action item parsed out of an assistant answer.
type ExtractedTask struct {
	Task     string `json:"task"`
	Owner    string `json:"owner"`
	Deadline string `json:"deadline"`
	Source   string `json:"source"`
}

// ChatResponse is the assistant's answer plus any extracted tasks.
type ChatResponse struct {
	Answer string          `json:"answer"`
	Tasks  []ExtractedTask `json:"tasks,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// CoachingScriptRequest is the payload for the coaching-script endpoint.
// AnalysisResult, when present, is passed to the model as context with its
// scores clamped to [0,100].
type CoachingScriptRequest struct {
	Transcript     string          `json:"transcript"`
	CompanyName    string          `json:"companyName"`
	DealStage      string          `json:"dealStage,omitempty"`
	Source         string          `json:"source,omitempty"`
	AnalysisResult *AnalysisResult `json:"analysisResult,omitempty"`
}

// VoiceCoachingRequest is the payload for the text-to-speech endpoint.
type VoiceCoachingRequest struct {
	CoachingSummary string `json:"coachingSummary"`
}

// HistoryDeleteRequest removes one entry by id, or everything with ClearAll.
type HistoryDeleteRequest struct {
	ID       string `json:"id,omitempty"`
	ClearAll bool   `json:"clearAll,omitempty"`
}

// WorkspaceResponse pairs a workspace with the history entries whose company
// slug matches it.
type WorkspaceResponse struct {
	Workspace    *Workspace     `json:"workspace"`
	Interactions []HistoryEntry `json:"interactions"`
}

// CreateWorkspaceRequest creates or fetches a workspace for a company.
type CreateWorkspaceRequest struct {
	CompanyName string `json:"companyName"`
}

// TaskCreateRequest adds a task to a workspace.
type TaskCreateRequest struct {
	Text     string `json:"text"`
	Priority string `json:"priority,omitempty"`
	DueDate  string `json:"dueDate,omitempty"`
}

// TaskUpdates holds the mutable task fields; nil means leave unchanged.
type TaskUpdates struct {
	Text     *string `json:"text,omitempty"`
	Status   *string `json:"status,omitempty"`
	Priority *string `json:"priority,omitempty"`
	DueDate  *string `json:"dueDate,omitempty"`
}

// TaskUpdateRequest updates a task in a workspace.
type TaskUpdateRequest struct {
	TaskID  string      `json:"taskId"`
	Updates TaskUpdates `json:"updates"`
}

// TaskDeleteRequest removes a task from a workspace.
type TaskDeleteRequest struct {
	TaskID string `json:"taskId"`
}

// NoteCreateRequest adds a note to a workspace.
type NoteCreateRequest struct {
	Content string `json:"content"`
}

// NoteUpdateRequest edits a note in a workspace.
type NoteUpdateRequest struct {
	NoteID  string `json:"noteId"`
	Content string `json:"content"`
}

// NoteDeleteRequest removes a note from a workspace.
type NoteDeleteRequest struct {
	NoteID string `json:"noteId"`
}

// DocumentDeleteRequest removes a document and its stored file.
type DocumentDeleteRequest struct {
	DocID string `json:"docId"`
}

// Batch item statuses.
const (
	BatchPending    = "pending"
	BatchProcessing = "processing"
	BatchCompleted  = "completed"
	BatchError      = "error"
)

// BatchItem is one transcript in a batch run with its per-item outcome.
type BatchItem struct {
	ID          string          `json:"id"`
	Transcript  string          `json:"transcript"`
	CompanyName string          `json:"companyName"`
	DealStage   string          `json:"dealStage,omitempty"`
	DealAmount  string          `json:"dealAmount,omitempty"`
	Status      string          `json:"status"`
	Result      *AnalysisResult `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// BatchRequest is the payload for the batch endpoint.
type BatchRequest struct {
	Items []BatchItem `json:"items"`
}

// BatchResponse returns every item with its final status.
type BatchResponse struct {
	Items []BatchItem `json:"items"`
	Error string      `json:"error,omitempty"`
}

// FollowUpEmailRequest sends a drafted follow-up email to a recipient.
type FollowUpEmailRequest struct {
	To          string `json:"to"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	CompanyName string `json:"companyName,omitempty"`
}

// FollowUpEmailResponse reports the outcome of a follow-up email send.
type FollowUpEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
