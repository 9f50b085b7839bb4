package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"salescope/internal/models"
)

// ShapeError reports an upstream response that failed validation against the
// expected schema. It names every violated field so the caller can log and
// report exactly what was wrong. Model output is non-deterministic, so a
// shape failure is retriable: the same input may validate on the next call.
type ShapeError struct {
	Fields []string
}

func (e *ShapeError) Error() string {
	if len(e.Fields) == 0 {
		return "response is not valid JSON"
	}
	return "response failed shape validation: " + strings.Join(e.Fields, ", ")
}

var dealRiskValues = map[string]bool{
	models.RiskLow:    true,
	models.RiskMedium: true,
	models.RiskHigh:   true,
}

// validateAnalysis checks a raw model response against the analysis schema
// and decodes it. Scores outside [0,100] are shape violations, never clamped.
func validateAnalysis(raw string) (*models.AnalysisResult, error) {
	cleaned := stripFences(raw)
	if !gjson.Valid(cleaned) {
		return nil, &ShapeError{}
	}

	root := gjson.Parse(cleaned)
	if !root.IsObject() {
		return nil, &ShapeError{Fields: []string{"(root)"}}
	}

	var violated []string
	check := func(field string, ok bool) {
		if !ok {
			violated = append(violated, field)
		}
	}

	check("leadScore", isScore(root.Get("leadScore")))
	check("leadScoreReasoning", root.Get("leadScoreReasoning").Type == gjson.String)
	check("worthChasing", root.Get("worthChasing").IsBool())
	check("worthChasingReasoning", root.Get("worthChasingReasoning").Type == gjson.String)
	check("dealRisk", dealRiskValues[root.Get("dealRisk").String()])
	check("dealRiskReasoning", root.Get("dealRiskReasoning").Type == gjson.String)
	check("closeForecast", isScore(root.Get("closeForecast")))
	check("closeForecastReasoning", root.Get("closeForecastReasoning").Type == gjson.String)
	check("buyingSignals", root.Get("buyingSignals").IsArray())
	check("objections", root.Get("objections").IsArray())
	check("nextSteps", root.Get("nextSteps").IsArray())
	check("followUpEmail", root.Get("followUpEmail").Type == gjson.String)
	check("coachingSummary", root.Get("coachingSummary").Type == gjson.String)

	if v := root.Get("suggestedQuestions"); v.Exists() {
		check("suggestedQuestions", v.IsArray())
	}
	if v := root.Get("financialAnalysis"); v.Exists() {
		check("financialAnalysis", v.IsObject())
	}

	if len(violated) > 0 {
		return nil, &ShapeError{Fields: violated}
	}

	// Scores may legally arrive as non-integer numbers; decode through a
	// float shadow and round.
	var decoded struct {
		models.AnalysisResult
		LeadScore     float64 `json:"leadScore"`
		CloseForecast float64 `json:"closeForecast"`
	}
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}

	result := decoded.AnalysisResult
	result.LeadScore = int(math.Round(decoded.LeadScore))
	result.CloseForecast = int(math.Round(decoded.CloseForecast))
	return &result, nil
}

func isScore(v gjson.Result) bool {
	if v.Type != gjson.Number {
		return false
	}
	n := v.Float()
	return n >= 0 && n <= 100
}

// validateCoachingScript checks a raw model response against the coaching
// script schema and decodes it.
func validateCoachingScript(raw string) (*models.CoachingScript, error) {
	cleaned := stripFences(raw)
	if !gjson.Valid(cleaned) {
		return nil, &ShapeError{}
	}

	root := gjson.Parse(cleaned)
	if !root.IsObject() {
		return nil, &ShapeError{Fields: []string{"(root)"}}
	}

	var violated []string
	check := func(field string, ok bool) {
		if !ok {
			violated = append(violated, field)
		}
	}

	script := root.Get("script")
	check("script", script.Type == gjson.String && len(script.String()) >= 100)

	sections := root.Get("sections")
	if !sections.IsObject() {
		violated = append(violated, "sections")
	} else {
		check("sections.greeting", sections.Get("greeting").Type == gjson.String)
		check("sections.strengths", sections.Get("strengths").IsArray())
		check("sections.improvements", sections.Get("improvements").IsArray())
		check("sections.missedQuestions", sections.Get("missedQuestions").IsArray())
		check("sections.nextCallQuestions", sections.Get("nextCallQuestions").IsArray())
		check("sections.closing", sections.Get("closing").Type == gjson.String)
	}

	if len(violated) > 0 {
		return nil, &ShapeError{Fields: violated}
	}

	var result models.CoachingScript
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("decode coaching script: %w", err)
	}
	return &result, nil
}
