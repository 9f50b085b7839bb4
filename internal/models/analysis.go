package models

// BuyingSignal is a positive indicator the model found in the conversation.
type BuyingSignal struct {
	Signal   string `json:"signal"`
	Evidence string `json:"evidence"`
}

// Objection is a pushback or risk signal the model found in the conversation.
type Objection struct {
	Objection string `json:"objection"`
	Evidence  string `json:"evidence"`
}

// SuggestedQuestion is a discovery question the rep should ask next.
type SuggestedQuestion struct {
	Question string `json:"question"`
	Reason   string `json:"reason"`
}

// DealEconomics holds extracted contract and pipeline figures.
type DealEconomics struct {
	ExtractedMonthlySpend *float64 `json:"extractedMonthlySpend"`
	ExtractedAnnualSpend  *float64 `json:"extractedAnnualSpend"`
	ContractTermMonths    *float64 `json:"contractTermMonths"`
	TotalContractValue    *float64 `json:"totalContractValue"`
	WeightedPipelineValue *float64 `json:"weightedPipelineValue"`
	Reasoning             string   `json:"reasoning"`
}

// RevenueRiskItem is a single revenue risk with severity and supporting evidence.
type RevenueRiskItem struct {
	Risk     string `json:"risk"`
	Severity string `json:"severity"`
	Evidence string `json:"evidence"`
}

// RevenueRiskAssessment summarizes the revenue-side risk of the deal.
type RevenueRiskAssessment struct {
	OverallScore             *float64          `json:"overallScore"`
	BudgetConstraintSeverity string            `json:"budgetConstraintSeverity"`
	PaymentDelayLikelihood   string            `json:"paymentDelayLikelihood"`
	CancellationRisk         string            `json:"cancellationRisk"`
	Risks                    []RevenueRiskItem `json:"risks"`
	Reasoning                string            `json:"reasoning"`
}

// CompetitorPriceIntel captures pricing intelligence about one competitor.
type CompetitorPriceIntel struct {
	Competitor       string  `json:"competitor"`
	MentionedPrice   *string `json:"mentionedPrice"`
	DiscountPressure bool    `json:"discountPressure"`
	Context          string  `json:"context"`
}

// CompetitivePricing aggregates competitor and discount-pressure signals.
type CompetitivePricing struct {
	CompetitorsDetected    []CompetitorPriceIntel `json:"competitorsDetected"`
	DiscountPressureLevel  string                 `json:"discountPressureLevel"`
	PriceSensitivitySignal string                 `json:"priceSensitivitySignal"`
	Reasoning              string                 `json:"reasoning"`
}

// ROIPayback holds ROI and payback-period estimates for the prospect.
type ROIPayback struct {
	ProspectCurrentCost     *string  `json:"prospectCurrentCost"`
	ProspectExpectedSavings *string  `json:"prospectExpectedSavings"`
	ImpliedROIPercent       *float64 `json:"impliedROIPercent"`
	PaybackPeriodMonths     *float64 `json:"paybackPeriodMonths"`
	DataConfidence          string   `json:"dataConfidence"`
	Reasoning               string   `json:"reasoning"`
}

// BudgetHealthIndicator describes the prospect's budget situation.
type BudgetHealthIndicator struct {
	Status           string  `json:"status"`
	ApprovalProcess  *string `json:"approvalProcess"`
	FiscalYearTiming *string `json:"fiscalYearTiming"`
	BudgetOwner      *string `json:"budgetOwner"`
	Reasoning        string  `json:"reasoning"`
}

// FinancialAnalysis is the optional financial sub-analysis of a conversation.
type FinancialAnalysis struct {
	DealEconomics      DealEconomics         `json:"dealEconomics"`
	RevenueRisk        RevenueRiskAssessment `json:"revenueRisk"`
	CompetitivePricing CompetitivePricing    `json:"competitivePricing"`
	ROIPayback         ROIPayback            `json:"roiPayback"`
	BudgetHealth       BudgetHealthIndicator `json:"budgetHealth"`
}

// AnalysisResult is the full structured assessment of one sales conversation.
type AnalysisResult struct {
	LeadScore              int                 `json:"leadScore"`
	LeadScoreReasoning     string              `json:"leadScoreReasoning"`
	WorthChasing           bool                `json:"worthChasing"`
	WorthChasingReasoning  string              `json:"worthChasingReasoning"`
	DealRisk               string              `json:"dealRisk"`
	DealRiskReasoning      string              `json:"dealRiskReasoning"`
	CloseForecast          int                 `json:"closeForecast"`
	CloseForecastReasoning string              `json:"closeForecastReasoning"`
	BuyingSignals          []BuyingSignal      `json:"buyingSignals"`
	Objections             []Objection         `json:"objections"`
	NextSteps              []string            `json:"nextSteps"`
	FollowUpEmail          string              `json:"followUpEmail"`
	CoachingSummary        string              `json:"coachingSummary"`
	SuggestedQuestions     []SuggestedQuestion `json:"suggestedQuestions,omitempty"`
	FinancialAnalysis      *FinancialAnalysis  `json:"financialAnalysis,omitempty"`
}

// MissedQuestion is a question the rep should have asked, with the why.
type MissedQuestion struct {
	Question string `json:"question"`
	Why      string `json:"why"`
}

// CoachingSections is the structured breakdown of a coaching script.
type CoachingSections struct {
	Greeting          string           `json:"greeting"`
	Strengths         []string         `json:"strengths"`
	Improvements      []string         `json:"improvements"`
	MissedQuestions   []MissedQuestion `json:"missedQuestions"`
	NextCallQuestions []MissedQuestion `json:"nextCallQuestions"`
	Closing           string           `json:"closing"`
}

// CoachingScript is a spoken coaching debrief plus its structured sections.
type CoachingScript struct {
	Script   string           `json:"script"`
	Sections CoachingSections `json:"sections"`
}
