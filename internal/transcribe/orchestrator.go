package transcribe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/littleyear/iv-engine/internal/metrics"
)

// RecordStore is the persistence collaborator. UpdateInterview merge-patches
// the stored interview: status and answers are independently patchable, and
// a patch carrying both is applied as one write.
type RecordStore interface {
	UpdateInterview(ctx context.Context, interviewID string, patch InterviewPatch) error
}

// PublishFunc is a callback for status events (SSE fan-out). May be nil.
type PublishFunc func(eventType, interviewID string, payload any)

// Orchestrator drives the transcription pipeline for one interview at a
// time per interview id: mark processing, transcribe, map segments to
// answers, persist the terminal state.
type Orchestrator struct {
	store   RecordStore
	client  Transcriber
	publish PublishFunc
	log     zerolog.Logger
	now     func() time.Time

	mu      sync.Mutex
	running map[string]struct{}
}

func NewOrchestrator(store RecordStore, client Transcriber, publish PublishFunc, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		store:   store,
		client:  client,
		publish: publish,
		log:     log,
		now:     time.Now,
		running: make(map[string]struct{}),
	}
}

// Running reports whether a run for the interview is currently in flight.
func (o *Orchestrator) Running(interviewID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.running[interviewID]
	return ok
}

func (o *Orchestrator) acquire(interviewID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.running[interviewID]; ok {
		return false
	}
	o.running[interviewID] = struct{}{}
	return true
}

func (o *Orchestrator) release(interviewID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.running, interviewID)
}

// Run executes the pipeline. The processing marker is persisted before any
// network activity; on client failure the failure is persisted with the
// answers left untouched and the same error is returned to the caller. On
// success the completed status, raw segments, and the freshly computed
// answers replace the stored ones in a single update — every answer the
// mapper produced text for is overwritten, manual edits included, since
// there is no merge step between mapper output and the write.
//
// A second Run for the same interview while one is in flight returns
// ErrRunInProgress.
func (o *Orchestrator) Run(ctx context.Context, interviewID, videoKey string, timestamps []QuestionTimestamp, apiKey string) (*RunResult, error) {
	if !o.acquire(interviewID) {
		return nil, ErrRunInProgress
	}
	defer o.release(interviewID)

	start := o.now()
	log := o.log.With().Str("interview_id", interviewID).Logger()

	processing := Status{Status: StatusProcessing}
	if err := o.store.UpdateInterview(ctx, interviewID, InterviewPatch{Transcription: &processing}); err != nil {
		return nil, fmt.Errorf("mark processing: %w", err)
	}
	o.emit("transcription.processing", interviewID, map[string]any{"status": StatusProcessing})

	segments, err := o.client.Transcribe(ctx, videoKey, apiKey)
	if err != nil {
		msg := err.Error()
		failed := Status{Status: StatusFailed, Error: &msg}
		if perr := o.store.UpdateInterview(ctx, interviewID, InterviewPatch{Transcription: &failed}); perr != nil {
			log.Error().Err(perr).Msg("failed to persist failed status")
		}
		metrics.TranscriptionRunsTotal.WithLabelValues("failed").Inc()
		o.emit("transcription.failed", interviewID, map[string]any{"status": StatusFailed, "error": msg})
		log.Warn().Err(err).Msg("transcription run failed")
		return nil, err
	}

	answers := MapSegmentsToQuestions(segments, timestamps)

	completedAt := o.now()
	completed := Status{
		Status:      StatusCompleted,
		RawSegments: segments,
		CompletedAt: &completedAt,
	}
	if err := o.store.UpdateInterview(ctx, interviewID, InterviewPatch{
		Transcription: &completed,
		Answers:       answers,
	}); err != nil {
		return nil, fmt.Errorf("persist transcription: %w", err)
	}

	metrics.TranscriptionRunsTotal.WithLabelValues("completed").Inc()
	metrics.TranscriptionRunDuration.Observe(completedAt.Sub(start).Seconds())
	o.emit("transcription.completed", interviewID, map[string]any{
		"status":   StatusCompleted,
		"answers":  len(answers),
		"segments": len(segments),
	})
	log.Info().
		Int("segments", len(segments)).
		Int("answers", len(answers)).
		Dur("duration_ms", completedAt.Sub(start)).
		Msg("transcription run complete")

	return &RunResult{Answers: answers, Segments: segments}, nil
}

func (o *Orchestrator) emit(eventType, interviewID string, payload any) {
	if o.publish != nil {
		o.publish(eventType, interviewID, payload)
	}
}
