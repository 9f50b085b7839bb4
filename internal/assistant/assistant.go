// Package assistant answers free-text questions about the sales history. It
// grounds the model on a caller-supplied context block and parses structured
// action items out of the answer.
package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"salescope/internal/models"
)

// Input ceilings enforced before anything reaches the model.
const (
	MaxQuestionLength = 2000
	MaxContextLength  = 30000

	maxConversationMessages = 20
	maxMessageContentLength = 5000
)

const systemPrompt = `You are an AI Sales Assistant with access to the team's customer interaction history. You help the sales team by answering questions about companies, prospects, and deals, summarizing interactions, finding patterns, and extracting action items.

When extracting tasks or action items, format each one on its own line using this exact format:
TASK: description here | OWNER: Sales Rep | DEADLINE: the date or TBD | SOURCE: company name

For OWNER, use the actual rep name from the transcript if available, otherwise "Sales Rep". For DEADLINE, use specific dates from the data when mentioned, otherwise "TBD".

Rules:
- Be concise, direct, and specific. Get straight to the point.
- NEVER use square brackets like [Your Name], [Your Team], [Date]. Use real values or omit.
- NEVER generate template emails or template content unless explicitly asked.
- When referencing data, use the actual company name and specific details.
- If the history does not have enough information, say so clearly.
- Keep responses short. Use bullet points, not long paragraphs.
- Do not add separators like --- between sections. Just use headings and bullet points.
- Format monetary values with $ and appropriate notation.`

var taskLine = regexp.MustCompile(`(?m)^TASK:\s*(.+?)\s*\|\s*OWNER:\s*(.+?)\s*\|\s*DEADLINE:\s*(.+?)\s*\|\s*SOURCE:\s*(.+?)\s*$`)

var (
	bareTaskLine   = regexp.MustCompile(`(?m)^TASK:\s*.+$`)
	horizontalRule = regexp.MustCompile(`(?m)^---+$`)
	excessBlanks   = regexp.MustCompile(`\n{3,}`)
)

// ExtractTasks parses every well-formed TASK line out of an answer. A line
// that does not match the full four-field pipe pattern is left as prose.
func ExtractTasks(text string) []models.ExtractedTask {
	matches := taskLine.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	tasks := make([]models.ExtractedTask, 0, len(matches))
	for _, m := range matches {
		tasks = append(tasks, models.ExtractedTask{
			Task:     strings.TrimSpace(m[1]),
			Owner:    strings.TrimSpace(m[2]),
			Deadline: strings.TrimSpace(m[3]),
			Source:   strings.TrimSpace(m[4]),
		})
	}
	return tasks
}

// StripTaskLines removes TASK lines and --- rules from the displayed answer,
// collapsing the blank runs left behind. Tasks render separately as cards.
func StripTaskLines(text string) string {
	out := bareTaskLine.ReplaceAllString(text, "")
	out = horizontalRule.ReplaceAllString(out, "")
	out = excessBlanks.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// CapHistory keeps the most recent turns, dropping malformed entries and
// truncating oversized message bodies.
func CapHistory(history []models.ChatMessage) []models.ChatMessage {
	if len(history) > maxConversationMessages {
		history = history[len(history)-maxConversationMessages:]
	}

	capped := make([]models.ChatMessage, 0, len(history))
	for _, msg := range history {
		if msg.Role != "user" && msg.Role != "assistant" {
			continue
		}
		content := msg.Content
		if len(content) > maxMessageContentLength {
			content = content[:maxMessageContentLength]
		}
		capped = append(capped, models.ChatMessage{Role: msg.Role, Content: content})
	}
	return capped
}

// BuildMessages assembles the completion request: system prompt, a priming
// exchange carrying the history context, the capped prior turns, then the
// question.
func BuildMessages(question, contextBlock string, history []models.ChatMessage) []openai.ChatCompletionMessage {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}

	if contextBlock != "" {
		messages = append(messages,
			openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: "Here is the relevant customer interaction history for context:\n\n" + contextBlock,
			},
			openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: "I've reviewed the customer interaction history. How can I help you?",
			},
		)
	}

	for _, msg := range CapHistory(history) {
		role := openai.ChatMessageRoleUser
		if msg.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}

	return append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: question})
}

// Client asks the model grounded sales questions.
type Client struct {
	api    *openai.Client
	model  string
	logger zerolog.Logger
}

// NewClient creates an assistant client for the given API key and model.
func NewClient(apiKey, model string, logger zerolog.Logger) *Client {
	return &Client{
		api:    openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

// Ask answers one question, returning the display answer and any extracted
// tasks. The context block is truncated to its ceiling, never rejected.
func (c *Client) Ask(ctx context.Context, question, contextBlock string, history []models.ChatMessage) (string, []models.ExtractedTask, error) {
	if len(contextBlock) > MaxContextLength {
		contextBlock = contextBlock[:MaxContextLength]
	}

	c.logger.Info().
		Int("question_len", len(question)).
		Int("context_len", len(contextBlock)).
		Int("history_turns", len(history)).
		Msg("Chat question")

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    BuildMessages(question, contextBlock, history),
		Temperature: 0.4,
	})
	if err != nil {
		return "", nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil, fmt.Errorf("no response from OpenAI")
	}

	rawAnswer := resp.Choices[0].Message.Content
	tasks := ExtractTasks(rawAnswer)

	answer := rawAnswer
	if len(tasks) > 0 {
		answer = StripTaskLines(rawAnswer)
	}
	return answer, tasks, nil
}
