// Package batch analyzes a set of transcripts one at a time. Items run
// strictly sequentially and a failure on one item never aborts the rest.
package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"salescope/internal/analysis"
	"salescope/internal/models"
	"salescope/internal/store"
)

// MaxItems is the largest batch accepted in one request.
const MaxItems = 10

// ErrTooManyItems rejects a batch over the item ceiling.
var ErrTooManyItems = fmt.Errorf("batch exceeds %d items", MaxItems)

// Recorder persists a completed analysis. Satisfied by *store.Store.
type Recorder interface {
	AddEntry(entry models.HistoryEntry) ([]models.HistoryEntry, error)
}

var _ Recorder = (*store.Store)(nil)

// Runner drives an Analyzer over batch items sequentially, persisting each
// success as a history entry before moving to the next item.
type Runner struct {
	analyzer analysis.Analyzer
	recorder Recorder
	logger   zerolog.Logger
	newID    func() string
	now      func() time.Time
}

// NewRunner creates a batch runner writing successes through the recorder.
func NewRunner(analyzer analysis.Analyzer, recorder Recorder, logger zerolog.Logger) *Runner {
	return &Runner{
		analyzer: analyzer,
		recorder: recorder,
		logger:   logger,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Run processes the items in order, exactly one analysis in flight at a time.
// Every item comes back with a terminal status: completed with a result, or
// error with a message. A cancelled context marks the remaining items as
// errors without calling the model for them.
func (r *Runner) Run(ctx context.Context, items []models.BatchItem) ([]models.BatchItem, error) {
	if len(items) > MaxItems {
		return nil, ErrTooManyItems
	}

	out := make([]models.BatchItem, len(items))
	copy(out, items)

	for i := range out {
		item := &out[i]
		if item.ID == "" {
			item.ID = r.newID()
		}
		item.Status = models.BatchPending
	}

	for i := range out {
		item := &out[i]

		if err := ctx.Err(); err != nil {
			item.Status = models.BatchError
			item.Error = "batch cancelled"
			continue
		}

		item.Status = models.BatchProcessing
		r.logger.Info().
			Str("item_id", item.ID).
			Str("company", item.CompanyName).
			Int("position", i+1).
			Int("total", len(out)).
			Msg("Batch item started")

		result, err := r.processItem(ctx, item)
		if err != nil {
			item.Status = models.BatchError
			item.Error = err.Error()
			r.logger.Error().Err(err).Str("item_id", item.ID).Msg("Batch item failed")
			continue
		}

		item.Status = models.BatchCompleted
		item.Result = result
		r.logger.Info().
			Str("item_id", item.ID).
			Int("lead_score", result.LeadScore).
			Msg("Batch item completed")
	}

	return out, nil
}

func (r *Runner) processItem(ctx context.Context, item *models.BatchItem) (*models.AnalysisResult, error) {
	if strings.TrimSpace(item.Transcript) == "" {
		return nil, fmt.Errorf("transcript is required")
	}
	if strings.TrimSpace(item.CompanyName) == "" {
		return nil, fmt.Errorf("companyName is required")
	}

	result, err := r.analyzer.Analyze(ctx, models.AnalyzeRequest{
		Transcript:  item.Transcript,
		CompanyName: item.CompanyName,
		DealStage:   item.DealStage,
		DealAmount:  item.DealAmount,
		Source:      models.ModeTranscript,
	})
	if err != nil {
		return nil, err
	}

	entry := models.HistoryEntry{
		ID:           r.newID(),
		Timestamp:    r.now().UnixMilli(),
		Mode:         models.ModeBatch,
		CompanyName:  item.CompanyName,
		LeadScore:    result.LeadScore,
		WorthChasing: result.WorthChasing,
		DealRisk:     result.DealRisk,
		Result:       *result,
		Transcript:   item.Transcript,
		DealStage:    item.DealStage,
		DealAmount:   item.DealAmount,
	}
	if _, err := r.recorder.AddEntry(entry); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}
	return result, nil
}
