package models

// Input modes for an analyzed conversation.
const (
	ModeTranscript  = "transcript"
	ModeEmailThread = "email-thread"
	ModeEventForm   = "event-form"
	ModeBatch       = "batch"
)

// Deal risk levels reported by the model.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// EventForm holds the structured qualifying notes captured after a brief
// event or conference conversation (BANT-style).
type EventForm struct {
	ProspectName         string `json:"prospectName"`
	ProspectTitle        string `json:"prospectTitle"`
	CompanyName          string `json:"companyName"`
	EventName            string `json:"eventName"`
	PainPoint            string `json:"painPoint"`
	Budget               string `json:"budget"`
	BudgetNotes          string `json:"budgetNotes"`
	DecisionMaker        string `json:"decisionMaker"`
	DecisionMakerName    string `json:"decisionMakerName"`
	Timeline             string `json:"timeline"`
	CompetitorsMentioned string `json:"competitorsMentioned"`
	InterestLevel        string `json:"interestLevel"`
	NextStepsDiscussed   string `json:"nextStepsDiscussed"`
	NotableQuotes        string `json:"notableQuotes"`
	AdditionalNotes      string `json:"additionalNotes"`
}

// HistoryEntry is one analyzed conversation and its assessment. Entries are
// immutable once created; the store only appends and removes them.
type HistoryEntry struct {
	ID          string `json:"id"`
	Timestamp   int64  `json:"timestamp"` // epoch milliseconds
	Mode        string `json:"mode"`
	CompanyName string `json:"companyName"`
	LeadScore   int    `json:"leadScore"`
	WorthChasing bool  `json:"worthChasing"`
	DealRisk    string `json:"dealRisk"`

	Result AnalysisResult `json:"result"`

	// Restoration data; transcript is omitted for some restored batch summaries.
	Transcript    string     `json:"transcript,omitempty"`
	DealStage     string     `json:"dealStage,omitempty"`
	DealAmount    string     `json:"dealAmount,omitempty"`
	ThreadContext string     `json:"threadContext,omitempty"`
	EventForm     *EventForm `json:"eventForm,omitempty"`
}
