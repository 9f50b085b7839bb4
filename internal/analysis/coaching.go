package analysis

import (
	"fmt"

	"salescope/internal/models"
)

const coachingSystemPrompt = "You are a veteran B2B sales coach. Always respond with valid JSON only, no markdown or code fences."

func coachingSourceLabel(source string) string {
	switch source {
	case models.ModeEmailThread:
		return "email exchange"
	case models.ModeEventForm:
		return "event conversation"
	default:
		return "sales call"
	}
}

func coachingInputLabel(source string) string {
	switch source {
	case models.ModeEmailThread:
		return "EMAIL THREAD"
	case models.ModeEventForm:
		return "EVENT NOTES"
	default:
		return "TRANSCRIPT"
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// analysisContext renders the prior analysis as prompt context. This is the
// one path where out-of-range scores are clamped instead of rejected: the
// analysis here is caller-supplied context, not upstream output under
// validation, and a bad score should degrade the prompt, not fail the call.
func analysisContext(r *models.AnalysisResult) string {
	if r == nil {
		return ""
	}

	worth := "No"
	if r.WorthChasing {
		worth = "Yes"
	}

	risk := r.DealRisk
	if len(risk) > 20 {
		risk = risk[:20]
	}
	summary := r.CoachingSummary
	if len(summary) > 1000 {
		summary = summary[:1000]
	}

	return fmt.Sprintf(`

ANALYSIS RESULTS (for context):
- Lead Score: %d/100
- Worth Chasing: %s
- Deal Risk: %s
- Close Forecast: %d%%
- Coaching Summary: %s`,
		clampScore(r.LeadScore), worth, risk, clampScore(r.CloseForecast), summary)
}

// buildCoachingPrompt assembles the user prompt for a spoken coaching
// debrief of one conversation.
func buildCoachingPrompt(req models.CoachingScriptRequest) string {
	sourceLabel := coachingSourceLabel(req.Source)

	stage := ""
	if req.DealStage != "" {
		stage = fmt.Sprintf(" (%s stage)", req.DealStage)
	}

	return fmt.Sprintf(`You are a veteran B2B sales manager with 20+ years of experience. You just reviewed a rep's %s with %s%s. Give them a coaching debrief.

%s:
"""
%s
"""%s

Respond ONLY with valid JSON in this exact format (no markdown, no code fences):
{
  "script": "<300-500 word conversational coaching monologue meant to be spoken aloud. No bullet points. Warm, direct tone, like talking to the rep over coffee. Open with something like 'Hey, nice work on that %s with %s...'. Cover strengths, areas to improve, and especially the questions they should be asking. End with encouragement.>",
  "sections": {
    "greeting": "<1-2 sentence warm opener>",
    "strengths": ["<specific thing done well with evidence from the conversation>", "<another strength>"],
    "improvements": ["<specific area to work on, tied to what actually happened>", "<another improvement>"],
    "missedQuestions": [
      { "question": "<question they SHOULD have asked>", "why": "<why this question matters for this specific deal>" }
    ],
    "nextCallQuestions": [
      { "question": "<forward-looking question for the next touchpoint>", "why": "<why this will advance the deal>" }
    ],
    "closing": "<1-2 sentence encouraging closer>"
  }
}

Guidelines:
- strengths: 2-3 specific things done well, with evidence from the conversation.
- improvements: 2-3 areas to work on, tied to what actually happened.
- missedQuestions: 3-5 questions they should have asked, each with the why. This is the most important section. Focus on budget, authority, need, timeline, competitive landscape, and decision process.
- nextCallQuestions: 3-5 forward-looking questions for the next touchpoint.
- script: 300-500 words, conversational monologue with no bullet points. It will be spoken aloud as audio coaching.`,
		sourceLabel,
		req.CompanyName,
		stage,
		coachingInputLabel(req.Source),
		req.Transcript,
		analysisContext(req.AnalysisResult),
		sourceLabel,
		req.CompanyName,
	)
}
