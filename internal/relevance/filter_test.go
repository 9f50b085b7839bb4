package relevance

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"salescope/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var frozenNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func historyEntry(id, company, mode string, age time.Duration) models.HistoryEntry {
	return models.HistoryEntry{
		ID:          id,
		Timestamp:   frozenNow.Add(-age).UnixMilli(),
		Mode:        mode,
		CompanyName: company,
		LeadScore:   65,
		DealRisk:    models.RiskMedium,
	}
}

func blockCount(output string) int {
	body := output[strings.Index(output, "===\n\n")+len("===\n\n"):]
	return strings.Count(body, "\n\n---\n\n") + 1
}

func TestFilter_EmptyHistorySentinel(t *testing.T) {
	for _, question := range []string{"", "what about acme?", "summary of everything"} {
		assert.Equal(t, EmptyHistoryMessage, Filter(question, nil, frozenNow))
		assert.Equal(t, EmptyHistoryMessage, Filter(question, []models.HistoryEntry{}, frozenNow))
	}
}

func TestFilter_DeterministicForFixedNow(t *testing.T) {
	history := []models.HistoryEntry{
		historyEntry("1", "Acme Corp", models.ModeTranscript, 2*time.Hour),
		historyEntry("2", "Globex", models.ModeEmailThread, 48*time.Hour),
		historyEntry("3", "Initech", models.ModeEventForm, 10*24*time.Hour),
	}

	first := Filter("how is the acme deal going", history, frozenNow)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Filter("how is the acme deal going", history, frozenNow))
	}
}

func TestKeywordScore_CompanySubstringAddsExactly100(t *testing.T) {
	// Company tokens are shorter than 3 characters, so the token-overlap
	// term contributes nothing and the two questions differ only in the
	// verbatim company-name substring.
	entry := historyEntry("1", "X9 Co", models.ModeTranscript, 2*time.Hour)

	with := keywordScore("tell me about x9 co", entry)
	without := keywordScore("tell me about", entry)

	assert.Equal(t, 100, with-without)
	assert.Equal(t, 0, without)
}

func TestKeywordScore_Terms(t *testing.T) {
	tests := []struct {
		name     string
		question string
		entry    models.HistoryEntry
		expected int
	}{
		{
			name:     "company token overlap",
			question: "anything new with globex?",
			entry:    historyEntry("1", "Globex Industrial", models.ModeTranscript, time.Hour),
			// exact substring miss ("globex" != "globex industrial"),
			// one token overlap with "globex"
			expected: 20,
		},
		{
			name:     "transcript keyword hits",
			question: "who mentioned kubernetes migration",
			entry: func() models.HistoryEntry {
				e := historyEntry("1", "Acme", models.ModeTranscript, time.Hour)
				e.Transcript = "We discussed the Kubernetes migration timeline in depth."
				return e
			}(),
			// "kubernetes" and "migration" hit at +5 each; the other
			// tokens miss the transcript
			expected: 10,
		},
		{
			name:     "analysis text keyword hits",
			question: "which deals had discount objections",
			entry: func() models.HistoryEntry {
				e := historyEntry("1", "Acme", models.ModeTranscript, time.Hour)
				e.Result.Objections = []models.Objection{{Objection: "Asked for a discount", Evidence: "can you do 20% off"}}
				return e
			}(),
			// "discount" hits the objection text (+3) and is also a
			// financial keyword (+15)
			expected: 18,
		},
		{
			name:     "financial keyword boost is one-time",
			question: "compare budget and pricing and roi",
			entry:    historyEntry("1", "Acme", models.ModeTranscript, time.Hour),
			expected: 15,
		},
		{
			name:     "mode keyword boost requires matching mode",
			question: "show me recent emails",
			entry:    historyEntry("1", "Acme", models.ModeEmailThread, time.Hour),
			expected: 15,
		},
		{
			name:     "mode keyword misses on wrong mode",
			question: "show me recent emails",
			entry:    historyEntry("1", "Acme", models.ModeTranscript, time.Hour),
			expected: 0,
		},
		{
			name:     "no recognizable tokens",
			question: "zzqy wvvx",
			entry:    historyEntry("1", "Acme", models.ModeTranscript, time.Hour),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, keywordScore(tt.question, tt.entry))
		})
	}
}

func TestRecencyBonus(t *testing.T) {
	tests := []struct {
		age      time.Duration
		expected int
	}{
		{30 * time.Minute, 10},
		{5 * time.Hour, 7},
		{3 * 24 * time.Hour, 4},
		{30 * 24 * time.Hour, 2},
	}
	for _, tt := range tests {
		ts := frozenNow.Add(-tt.age).UnixMilli()
		assert.Equal(t, tt.expected, recencyBonus(frozenNow, ts), "age %s", tt.age)
	}
}

func TestFilter_BoundedOutput(t *testing.T) {
	history := make([]models.HistoryEntry, 30)
	for i := range history {
		history[i] = historyEntry(fmt.Sprintf("id-%d", i), "Acme", models.ModeTranscript, time.Duration(i)*time.Hour)
	}

	ordinary := Filter("how is acme doing", history, frozenNow)
	assert.Equal(t, 10, blockCount(ordinary))
	assert.Contains(t, ordinary, "=== Sales History (10 of 30 entries) ===")

	broad := Filter("give me a summary of acme", history, frozenNow)
	assert.Equal(t, 25, blockCount(broad))
	assert.Contains(t, broad, "=== Sales History (25 of 30 entries) ===")
}

func TestFilter_BoundedBySmallHistory(t *testing.T) {
	history := []models.HistoryEntry{
		historyEntry("1", "Acme", models.ModeTranscript, time.Hour),
		historyEntry("2", "Acme", models.ModeTranscript, 2*time.Hour),
	}

	out := Filter("how is acme doing", history, frozenNow)
	assert.Equal(t, 2, blockCount(out))
}

func TestFilter_FallbackToFiveMostRelevantByRecency(t *testing.T) {
	history := make([]models.HistoryEntry, 8)
	for i := range history {
		history[i] = historyEntry(fmt.Sprintf("id-%d", i), fmt.Sprintf("Company%d", i), models.ModeTranscript, time.Duration(i*48)*time.Hour)
	}

	out := Filter("zzqy wvvx qqjj", history, frozenNow)

	assert.Equal(t, 5, blockCount(out))
	assert.Contains(t, out, "=== Sales History (5 of 8 entries) ===")
	// The newest entries carry the largest recency bonus and win the
	// fallback slots.
	assert.Contains(t, out, "[Company0]")
	assert.Contains(t, out, "[Company4]")
	assert.NotContains(t, out, "[Company5]")
}

func TestFilter_FallbackWithFewerThanFiveEntries(t *testing.T) {
	history := []models.HistoryEntry{
		historyEntry("1", "Acme", models.ModeTranscript, time.Hour),
		historyEntry("2", "Globex", models.ModeTranscript, 2*time.Hour),
	}

	out := Filter("zzqy wvvx", history, frozenNow)
	assert.Equal(t, 2, blockCount(out))
	assert.Contains(t, out, "=== Sales History (2 of 2 entries) ===")
}

func TestFilter_RanksExactCompanyMatchFirst(t *testing.T) {
	history := []models.HistoryEntry{
		historyEntry("old-acme", "Acme", models.ModeTranscript, 20*24*time.Hour),
		historyEntry("new-globex", "Globex", models.ModeTranscript, time.Minute),
	}

	out := Filter("what happened with acme", history, frozenNow)

	// Despite being much older, the exact company match outranks the
	// recency bonus of the other entry.
	acmeIdx := strings.Index(out, "[Acme]")
	globexIdx := strings.Index(out, "[Globex]")
	require.NotEqual(t, -1, acmeIdx)
	if globexIdx != -1 {
		assert.Less(t, acmeIdx, globexIdx)
	}
}

func TestFormatEntrySummary(t *testing.T) {
	e := historyEntry("1", "Acme Corp", models.ModeEmailThread, time.Hour)
	e.WorthChasing = true
	e.LeadScore = 82
	e.DealRisk = models.RiskLow
	e.DealStage = "Negotiation"
	e.DealAmount = "120000"
	e.Transcript = strings.Repeat("line one\nline two ", 30) // > 300 chars
	e.Result.NextSteps = []string{"Send contract", "Book legal review", "Intro to CFO", "Fourth step"}
	e.Result.BuyingSignals = []models.BuyingSignal{
		{Signal: "Asked for contract", Evidence: "send it over"},
		{Signal: "CFO looped in", Evidence: "cc'd finance"},
		{Signal: "Third signal", Evidence: "x"},
	}
	e.Result.Objections = []models.Objection{{Objection: "Timeline concern", Evidence: "Q3 at earliest"}}

	pipeline := 250000.0
	riskScore := 35.0
	e.Result.FinancialAnalysis = &models.FinancialAnalysis{
		DealEconomics: models.DealEconomics{WeightedPipelineValue: &pipeline},
		RevenueRisk:   models.RevenueRiskAssessment{OverallScore: &riskScore},
		BudgetHealth:  models.BudgetHealthIndicator{Status: "Confirmed"},
		CompetitivePricing: models.CompetitivePricing{
			CompetitorsDetected: []models.CompetitorPriceIntel{{Competitor: "RivalSoft"}},
		},
	}

	summary := formatEntrySummary(e)

	assert.Contains(t, summary, "[Acme Corp] (email-thread)")
	assert.Contains(t, summary, "Lead Score: 82 | Worth Chasing: Yes | Deal Risk: Low")
	assert.Contains(t, summary, "Deal Stage: Negotiation")
	assert.Contains(t, summary, "Deal Amount: $120000")
	assert.Contains(t, summary, "Financial: Pipeline: $250,000 | Budget: Confirmed | Revenue Risk: 35/100 | Competitors: RivalSoft")
	// Next steps capped at 3, signals at 2
	assert.Contains(t, summary, "Next Steps: Send contract; Book legal review; Intro to CFO")
	assert.NotContains(t, summary, "Fourth step")
	assert.Contains(t, summary, "Buying Signals: Asked for contract; CFO looped in")
	assert.NotContains(t, summary, "Third signal")
	assert.Contains(t, summary, "Objections: Timeline concern")
	// Excerpt is truncated with collapsed newlines
	assert.Contains(t, summary, "Excerpt: ")
	assert.Contains(t, summary, "...")
	assert.NotContains(t, summary, "line one\nline two")
}

func TestFormatEntrySummary_NoTranscript(t *testing.T) {
	e := historyEntry("1", "Acme", models.ModeTranscript, time.Hour)
	assert.Contains(t, formatEntrySummary(e), "Excerpt: (no transcript)")
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{250000, "250,000"},
		{1234567.5, "1,234,567.5"},
		{-42000, "-42,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, groupThousands(tt.in), "%v", tt.in)
	}
}
