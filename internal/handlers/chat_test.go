package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"salescope/internal/assistant"
	"salescope/internal/config"
	"salescope/internal/models"
	"salescope/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAsker struct {
	lastQuestion string
	lastContext  string
	lastHistory  []models.ChatMessage
	answer       string
	tasks        []models.ExtractedTask
	err          error
}

func (f *fakeAsker) Ask(_ context.Context, question, contextBlock string, history []models.ChatMessage) (string, []models.ExtractedTask, error) {
	f.lastQuestion = question
	f.lastContext = contextBlock
	f.lastHistory = history
	if f.err != nil {
		return "", nil, f.err
	}
	return f.answer, f.tasks, nil
}

func TestChatHandler(t *testing.T) {
	st := store.New(t.TempDir())
	asker := &fakeAsker{answer: "Acme looks strong.", tasks: []models.ExtractedTask{
		{Task: "Send deck", Owner: "Jordan", Deadline: "TBD", Source: "Acme"},
	}}

	c, rec := postJSON(t, "/api/chat", models.ChatRequest{
		Question: "How is Acme doing?",
		Context:  "=== Sales History (1 of 1 entries) ===",
	})

	handler := ChatHandler(testConfig(), asker, st)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Acme looks strong.", resp.Answer)
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, "Send deck", resp.Tasks[0].Task)

	// The provided context is passed through untouched.
	assert.Equal(t, "=== Sales History (1 of 1 entries) ===", asker.lastContext)
}

func TestChatHandler_BuildsContextFromStore(t *testing.T) {
	st := store.New(t.TempDir())
	_, err := st.AddEntry(models.HistoryEntry{
		ID:          "e1",
		Timestamp:   time.Now().UnixMilli(),
		Mode:        models.ModeTranscript,
		CompanyName: "Acme Corp",
		LeadScore:   80,
		DealRisk:    models.RiskLow,
	})
	require.NoError(t, err)

	asker := &fakeAsker{answer: "ok"}
	c, rec := postJSON(t, "/api/chat", models.ChatRequest{Question: "Tell me about Acme"})

	handler := ChatHandler(testConfig(), asker, st)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, asker.lastContext, "Sales History")
	assert.Contains(t, asker.lastContext, "Acme Corp")
}

func TestChatHandler_EmptyHistorySentinel(t *testing.T) {
	st := store.New(t.TempDir())
	asker := &fakeAsker{answer: "ok"}

	c, _ := postJSON(t, "/api/chat", models.ChatRequest{Question: "anything at all"})

	handler := ChatHandler(testConfig(), asker, st)
	require.NoError(t, handler(c))

	assert.Equal(t, "No customer interaction history available yet.", asker.lastContext)
}

func TestChatHandler_Validation(t *testing.T) {
	st := store.New(t.TempDir())

	tests := []struct {
		name           string
		question       string
		expectedStatus int
		expectedError  string
	}{
		{"empty question", "", http.StatusBadRequest, "Question is required"},
		{"whitespace question", "   ", http.StatusBadRequest, "Question is required"},
		{"question too long", strings.Repeat("a", assistant.MaxQuestionLength+1), http.StatusBadRequest, "Question exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := postJSON(t, "/api/chat", models.ChatRequest{Question: tt.question})

			handler := ChatHandler(testConfig(), &fakeAsker{}, st)
			require.NoError(t, handler(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)

			var resp models.ChatResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tt.expectedError)
		})
	}
}

func TestChatHandler_MissingAPIKey(t *testing.T) {
	st := store.New(t.TempDir())
	c, rec := postJSON(t, "/api/chat", models.ChatRequest{Question: "hello"})

	handler := ChatHandler(&config.Config{}, &fakeAsker{}, st)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
