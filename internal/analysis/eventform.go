package analysis

import (
	"strings"

	"salescope/internal/models"
)

// BriefingText renders structured event-form notes as the briefing document
// the model analyzes in place of a transcript. Empty fields are omitted.
func BriefingText(form models.EventForm) string {
	var sections []string

	sections = append(sections, "=== EVENT CONVERSATION BRIEFING ===", "")

	if form.ProspectName != "" || form.ProspectTitle != "" {
		name := form.ProspectName
		if name == "" {
			name = "Unknown"
		}
		line := "PROSPECT: " + name
		if form.ProspectTitle != "" {
			line += " (" + form.ProspectTitle + ")"
		}
		sections = append(sections, line)
	}
	sections = append(sections, "COMPANY: "+form.CompanyName)
	if form.EventName != "" {
		sections = append(sections, "EVENT: "+form.EventName)
	}
	sections = append(sections, "")

	if form.PainPoint != "" {
		sections = append(sections, "PAIN POINT / NEED DESCRIBED:", form.PainPoint, "")
	}

	sections = append(sections, "QUALIFYING INFORMATION:")
	if form.Budget != "" {
		line := "- Budget Available: " + form.Budget
		if form.BudgetNotes != "" {
			line += " - " + form.BudgetNotes
		}
		sections = append(sections, line)
	}
	if form.DecisionMaker != "" {
		line := "- Decision Maker: " + form.DecisionMaker
		if form.DecisionMaker == "Someone Else" && form.DecisionMakerName != "" {
			line += " (" + form.DecisionMakerName + ")"
		}
		sections = append(sections, line)
	}
	if form.Timeline != "" {
		sections = append(sections, "- Timeline: "+form.Timeline)
	}
	if form.InterestLevel != "" {
		sections = append(sections, "- Interest/Energy Level: "+form.InterestLevel)
	}
	sections = append(sections, "")

	if form.CompetitorsMentioned != "" {
		sections = append(sections, "COMPETITORS MENTIONED:", form.CompetitorsMentioned, "")
	}
	if form.NextStepsDiscussed != "" {
		sections = append(sections, "NEXT STEPS DISCUSSED:", form.NextStepsDiscussed, "")
	}
	if form.NotableQuotes != "" {
		sections = append(sections, "NOTABLE QUOTES:", form.NotableQuotes, "")
	}
	if form.AdditionalNotes != "" {
		sections = append(sections, "ADDITIONAL NOTES:", form.AdditionalNotes, "")
	}

	sections = append(sections, "=== END BRIEFING ===")

	return strings.Join(sections, "\n")
}
