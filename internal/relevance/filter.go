// Package relevance selects which history entries to inject as grounding
// context for the chat assistant. It is a cheap, explainable keyword heuristic
// over a small capped history, deliberately not an embedding search: the
// additive scoring can be unit tested term by term and costs nothing per call.
package relevance

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"salescope/internal/models"
)

const (
	maxEntries    = 10
	maxEntriesAll = 25
	fallbackCount = 5
	excerptLength = 300
)

// EmptyHistoryMessage is returned when there is no history to select from.
const EmptyHistoryMessage = "No customer interaction history available yet."

// The keyword tables below are hand-picked configuration carried over from the
// production heuristic. Changing them changes which entries get selected for a
// given question, so treat gaps (missing synonyms) as notes, not fixes.
var modeKeywords = map[string][]string{
	models.ModeEmailThread: {"email", "emails", "thread", "threads", "inbox", "sent", "reply", "replied"},
	models.ModeEventForm:   {"event", "events", "conference", "booth", "meetup", "trade show"},
	models.ModeTranscript:  {"call", "calls", "meeting", "meetings", "transcript", "transcripts"},
	models.ModeBatch:       {"batch", "bulk", "multiple"},
}

var financialKeywords = []string{
	"budget", "arr", "mrr", "revenue", "pipeline", "roi", "pricing",
	"competitor", "discount", "contract", "spend", "payback",
}

var broadIntentMarkers = []string{"all ", "every ", "pipeline", "summary", "overview", "dashboard"}

// Filter scores every history entry against the question and returns a single
// bounded text block of the most relevant entries, ready to inject into a
// model prompt. now drives the recency bonus; for a fixed now the output is a
// pure function of its inputs.
func Filter(question string, history []models.HistoryEntry, now time.Time) string {
	if len(history) == 0 {
		return EmptyHistoryMessage
	}

	questionLower := strings.ToLower(question)
	wantsAll := false
	for _, marker := range broadIntentMarkers {
		if strings.Contains(questionLower, marker) {
			wantsAll = true
			break
		}
	}

	limit := maxEntries
	if wantsAll {
		limit = maxEntriesAll
	}

	type scored struct {
		entry   models.HistoryEntry
		keyword int // keyword terms only; selection threshold
		total   int // keyword + recency bonus; ranking order
	}
	entries := make([]scored, len(history))
	for i, e := range history {
		kw := keywordScore(question, e)
		entries[i] = scored{entry: e, keyword: kw, total: kw + recencyBonus(now, e.Timestamp)}
	}

	// Stable sort keeps input relative order on ties. Callers should not
	// depend on the tie order beyond it being deterministic.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].total > entries[j].total
	})

	// Take the top entries that matched at least one keyword term. The
	// recency bonus ranks them but does not by itself make an entry
	// relevant, so a question with no recognizable tokens falls through to
	// the head of the recency-ranked list instead of a full page of noise.
	selected := make([]scored, 0, limit)
	for _, s := range entries {
		if s.keyword > 0 && len(selected) < limit {
			selected = append(selected, s)
		}
	}
	if len(selected) == 0 {
		n := fallbackCount
		if len(entries) < n {
			n = len(entries)
		}
		selected = entries[:n]
	}

	summaries := make([]string, len(selected))
	for i, s := range selected {
		summaries[i] = formatEntrySummary(s.entry)
	}

	return fmt.Sprintf("=== Sales History (%d of %d entries) ===\n\n%s",
		len(selected), len(history), strings.Join(summaries, "\n\n---\n\n"))
}

// keywordScore computes the additive keyword relevance of one entry. Missing
// optional fields simply contribute nothing to their term.
func keywordScore(question string, entry models.HistoryEntry) int {
	questionLower := strings.ToLower(question)
	questionTokens := tokenize(question)
	score := 0

	// Company name exact match is the strongest signal.
	if entry.CompanyName != "" && strings.Contains(questionLower, strings.ToLower(entry.CompanyName)) {
		score += 100
	}

	// Company name keyword overlap, substring either direction.
	companyTokens := tokenize(entry.CompanyName)
	for _, token := range questionTokens {
		if len(token) < 3 {
			continue
		}
		for _, ct := range companyTokens {
			if strings.Contains(ct, token) || strings.Contains(token, ct) {
				score += 20
				break
			}
		}
	}

	// Transcript keyword overlap.
	transcriptLower := strings.ToLower(entry.Transcript)
	for _, token := range questionTokens {
		if len(token) < 3 {
			continue
		}
		if strings.Contains(transcriptLower, token) {
			score += 5
		}
	}

	// Analysis text keyword overlap.
	resultText := resultSearchText(entry.Result)
	for _, token := range questionTokens {
		if len(token) < 3 {
			continue
		}
		if strings.Contains(resultText, token) {
			score += 3
		}
	}

	// A financial question boosts every entry once, regardless of whether the
	// entry carries financial data.
	for _, kw := range financialKeywords {
		if strings.Contains(questionLower, kw) {
			score += 15
			break
		}
	}

	// Mode preference: a question about emails favors email-thread entries.
	for _, kw := range modeKeywords[entry.Mode] {
		if strings.Contains(questionLower, kw) {
			score += 15
			break
		}
	}

	return score
}

// recencyBonus always adds something, so ties rank toward newer entries.
func recencyBonus(now time.Time, timestampMillis int64) int {
	ageHours := now.Sub(time.UnixMilli(timestampMillis)).Hours()
	switch {
	case ageHours < 1:
		return 10
	case ageHours < 24:
		return 7
	case ageHours < 168:
		return 4
	default:
		return 2
	}
}

func resultSearchText(r models.AnalysisResult) string {
	parts := []string{
		r.LeadScoreReasoning,
		r.WorthChasingReasoning,
		r.DealRiskReasoning,
		r.CloseForecastReasoning,
		r.CoachingSummary,
		r.FollowUpEmail,
	}
	parts = append(parts, r.NextSteps...)
	for _, b := range r.BuyingSignals {
		parts = append(parts, b.Signal+" "+b.Evidence)
	}
	for _, o := range r.Objections {
		parts = append(parts, o.Objection+" "+o.Evidence)
	}

	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.ToLower(strings.Join(kept, " "))
}

// tokenize lowercases, strips non-alphanumerics to whitespace, and splits.
func tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

func formatEntrySummary(entry models.HistoryEntry) string {
	ts := time.UnixMilli(entry.Timestamp).UTC()

	excerpt := "(no transcript)"
	if entry.Transcript != "" {
		runes := []rune(entry.Transcript)
		truncated := len(runes) > excerptLength
		if truncated {
			runes = runes[:excerptLength]
		}
		excerpt = strings.TrimSpace(strings.ReplaceAll(string(runes), "\n", " "))
		if truncated {
			excerpt += "..."
		}
	}

	worth := "No"
	if entry.WorthChasing {
		worth = "Yes"
	}

	lines := []string{
		fmt.Sprintf("[%s] (%s) - %s", entry.CompanyName, entry.Mode, ts.Format("2006-01-02 15:04")),
		fmt.Sprintf("Lead Score: %d | Worth Chasing: %s | Deal Risk: %s", entry.LeadScore, worth, entry.DealRisk),
	}

	if entry.DealStage != "" {
		lines = append(lines, "Deal Stage: "+entry.DealStage)
	}
	if entry.DealAmount != "" {
		lines = append(lines, "Deal Amount: $"+entry.DealAmount)
	}

	if fa := entry.Result.FinancialAnalysis; fa != nil {
		if line := financialLine(fa); line != "" {
			lines = append(lines, line)
		}
	}

	if len(entry.Result.NextSteps) > 0 {
		steps := entry.Result.NextSteps
		if len(steps) > 3 {
			steps = steps[:3]
		}
		lines = append(lines, "Next Steps: "+strings.Join(steps, "; "))
	}
	if len(entry.Result.BuyingSignals) > 0 {
		signals := entry.Result.BuyingSignals
		if len(signals) > 2 {
			signals = signals[:2]
		}
		names := make([]string, len(signals))
		for i, s := range signals {
			names[i] = s.Signal
		}
		lines = append(lines, "Buying Signals: "+strings.Join(names, "; "))
	}
	if len(entry.Result.Objections) > 0 {
		objections := entry.Result.Objections
		if len(objections) > 2 {
			objections = objections[:2]
		}
		names := make([]string, len(objections))
		for i, o := range objections {
			names[i] = o.Objection
		}
		lines = append(lines, "Objections: "+strings.Join(names, "; "))
	}

	lines = append(lines, "Excerpt: "+excerpt)

	return strings.Join(lines, "\n")
}

func financialLine(fa *models.FinancialAnalysis) string {
	var parts []string
	if fa.DealEconomics.WeightedPipelineValue != nil {
		parts = append(parts, "Pipeline: $"+groupThousands(*fa.DealEconomics.WeightedPipelineValue))
	}
	if fa.DealEconomics.ExtractedAnnualSpend != nil {
		parts = append(parts, "ARR: $"+groupThousands(*fa.DealEconomics.ExtractedAnnualSpend))
	}
	if fa.BudgetHealth.Status != "" {
		parts = append(parts, "Budget: "+fa.BudgetHealth.Status)
	}
	if fa.RevenueRisk.OverallScore != nil {
		parts = append(parts, fmt.Sprintf("Revenue Risk: %s/100", trimFloat(*fa.RevenueRisk.OverallScore)))
	}
	if len(fa.CompetitivePricing.CompetitorsDetected) > 0 {
		names := make([]string, len(fa.CompetitivePricing.CompetitorsDetected))
		for i, c := range fa.CompetitivePricing.CompetitorsDetected {
			names[i] = c.Competitor
		}
		parts = append(parts, "Competitors: "+strings.Join(names, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Financial: " + strings.Join(parts, " | ")
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// groupThousands renders 1234567.5 as "1,234,567.5".
func groupThousands(v float64) string {
	s := trimFloat(v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := b.String()
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}
