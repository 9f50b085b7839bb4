package analysis

import (
	"fmt"
	"strings"

	"salescope/internal/models"
)

const systemPrompt = "You are a sales intelligence AI. Always respond with valid JSON only, no markdown or code fences."

// sourceProfile adjusts the analysis instructions to the kind of conversation
// being analyzed: a live call transcript, an asynchronous email thread, or
// structured notes from a brief event conversation.
type sourceProfile struct {
	preamble          string
	evidenceGuideline string
	evidenceKind      string
	inputLabel        string
	interactionWord   string
}

func profileFor(source string) sourceProfile {
	switch source {
	case models.ModeEmailThread:
		return sourceProfile{
			preamble: `You are an expert B2B sales analyst reviewing an email thread between a sales rep and a prospect, not a live meeting. Weigh the signals that matter in asynchronous communication:
- Response times, reply length, tone shifts, and engagement level across the thread.
- Buying signals in the prospect's language: pricing questions, demo requests, looping in colleagues, fast replies, detailed questions.
- Risk signals: slow or short replies, competitor mentions, timeline pushback, going quiet.
- The follow-up email should read as the natural next reply in the thread.
- Coaching should cover the rep's written communication: subject lines, personalization, clarity, calls to action, follow-up timing.`,
			evidenceGuideline: `- buyingSignals: pricing or feature questions, quick replies, decision makers looped in, requests for next steps, expressed urgency or pain.
- objections: delayed responses, dismissive replies, competitor mentions, budget pushback, "we'll get back to you" language, signs of ghosting.
- For "evidence" fields: quote the relevant line from the email thread.`,
			evidenceKind:    "exact quote or line from the email thread",
			inputLabel:      "EMAIL THREAD:",
			interactionWord: "email exchange",
		}
	case models.ModeEventForm:
		return sourceProfile{
			preamble: `You are an expert B2B sales analyst reviewing structured notes from a brief event or conference conversation, not a full meeting transcript. The rep captured BANT-style qualifying information from a quick exchange:
- Evidence fields should reference the notes provided rather than exact quotes, since there is no verbatim transcript.
- Scores may carry wider uncertainty given the limited data; say so in the reasoning.
- Focus on the qualifying signals available: budget, authority, need, and timeline.
- Still provide actionable next steps and a follow-up email suited to post-event outreach.`,
			evidenceGuideline: `- buyingSignals: budget confirmation, decision-maker access, timeline urgency, expressed pain points, interest level.
- objections: budget concerns, unclear authority, long timelines, competitor preference, low interest.
- For "evidence" fields: summarize the relevant note or data point. Do not fabricate quotes.`,
			evidenceKind:    "summary of the relevant note",
			inputLabel:      "EVENT NOTES:",
			interactionWord: "conversation",
		}
	default:
		return sourceProfile{
			preamble: "You are an expert B2B sales analyst. Analyze the following sales meeting transcript and provide a comprehensive assessment.",
			evidenceGuideline: `- buyingSignals: urgency, budget discussions, timeline mentions, stakeholder involvement, positive sentiment.
- objections: pricing concerns, competitor comparisons, timeline delays, lack of authority.`,
			evidenceKind:    "exact quote or line from the transcript",
			inputLabel:      "TRANSCRIPT:",
			interactionWord: "call",
		}
	}
}

// buildAnalysisPrompt assembles the user prompt for one analysis request,
// including the strict JSON response contract the model must follow.
func buildAnalysisPrompt(req models.AnalyzeRequest) string {
	p := profileFor(req.Source)

	dealAmount := "Deal Amount: Not specified"
	if req.DealAmount != "" {
		dealAmount = "Deal Amount: $" + req.DealAmount
	}

	return fmt.Sprintf(`%s

Company: %s
Deal Stage: %s
%s

%s
"""
%s
"""

Respond ONLY with valid JSON in the following exact format (no markdown, no code fences):
{
  "leadScore": <number 0-100>,
  "leadScoreReasoning": "<1-2 sentence explanation>",
  "worthChasing": <true or false>,
  "worthChasingReasoning": "<1-2 sentence explanation>",
  "dealRisk": "<Low | Medium | High>",
  "dealRiskReasoning": "<1-2 sentence explanation>",
  "closeForecast": <number 0-100>,
  "closeForecastReasoning": "<1-2 sentence explanation>",
  "buyingSignals": [
    {
      "signal": "<description of the buying signal>",
      "evidence": "<%s>"
    }
  ],
  "objections": [
    {
      "objection": "<description of the objection>",
      "evidence": "<%s>"
    }
  ],
  "nextSteps": [
    "<actionable next step>"
  ],
  "followUpEmail": "<a professional follow-up email draft>",
  "coachingSummary": "<a 3-5 sentence coaching summary for the sales rep>",
  "suggestedQuestions": [
    { "question": "<specific question the rep should ask>", "reason": "<why this matters>" }
  ]
}

Guidelines:
- leadScore: 0 = dead lead, 100 = guaranteed close. Consider engagement, budget authority, timeline, and fit.
- dealRisk: based on objections, competitor mentions, vague commitments, missing decision makers.
- closeForecast: probability of closing this deal given all available signals.
%s
- nextSteps: 3-5 specific, actionable steps with clear owners where possible.
- followUpEmail: professional, references specific discussion points, includes a clear call to action.
- coachingSummary: constructive feedback on the rep's performance in this %s.
- suggestedQuestions: 3-5 discovery questions the rep should have asked or should ask next, each with a reason tied to THIS deal.`,
		p.preamble,
		req.CompanyName,
		req.DealStage,
		dealAmount,
		p.inputLabel,
		req.Transcript,
		p.evidenceKind,
		p.evidenceKind,
		p.evidenceGuideline,
		p.interactionWord,
	)
}

// stripFences removes markdown code fences a model sometimes wraps around its
// JSON despite instructions.
func stripFences(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
