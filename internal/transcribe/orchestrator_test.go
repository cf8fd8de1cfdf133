package transcribe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordedPatch struct {
	interviewID string
	patch       InterviewPatch
}

type fakeRecordStore struct {
	mu      sync.Mutex
	patches []recordedPatch
	err     error
}

func (s *fakeRecordStore) UpdateInterview(ctx context.Context, interviewID string, patch InterviewPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.patches = append(s.patches, recordedPatch{interviewID: interviewID, patch: patch})
	return nil
}

func (s *fakeRecordStore) all() []recordedPatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]recordedPatch, len(s.patches))
	copy(out, s.patches)
	return out
}

type fakeTranscriber struct {
	segments []Segment
	err      error
	block    chan struct{} // if non-nil, Transcribe waits until closed
	calls    int
	mu       sync.Mutex
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, videoKey, apiKey string) ([]Segment, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.segments, f.err
}

func newTestOrchestrator(store RecordStore, client Transcriber) *Orchestrator {
	return NewOrchestrator(store, client, nil, zerolog.Nop())
}

func TestRun_Success(t *testing.T) {
	store := &fakeRecordStore{}
	client := &fakeTranscriber{segments: []Segment{
		{Start: 0, End: 1.5, Text: "Hello"},
		{Start: 2.1, End: 3, Text: "Blue is my favorite"},
	}}
	o := newTestOrchestrator(store, client)

	timestamps := []QuestionTimestamp{
		{QuestionID: "intro", TimestampMs: 0},
		{QuestionID: "favoriteColor", TimestampMs: 2000},
	}

	result, err := o.Run(context.Background(), "iv-1", "iv-1.mp4", timestamps, "key")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Answers["favoriteColor"].Text != "Blue is my favorite" {
		t.Errorf("favoriteColor = %q", result.Answers["favoriteColor"].Text)
	}

	patches := store.all()
	if len(patches) != 2 {
		t.Fatalf("got %d patches, want 2", len(patches))
	}

	first := patches[0].patch
	if first.Transcription == nil || first.Transcription.Status != StatusProcessing {
		t.Errorf("first patch = %+v, want processing status", first.Transcription)
	}
	if first.Answers != nil {
		t.Error("processing patch must not touch answers")
	}
	if first.Transcription.RawSegments != nil || first.Transcription.Error != nil || first.Transcription.CompletedAt != nil {
		t.Error("processing patch must clear prior segments, error and completion time")
	}

	second := patches[1].patch
	if second.Transcription == nil || second.Transcription.Status != StatusCompleted {
		t.Fatalf("second patch = %+v, want completed status", second.Transcription)
	}
	if len(second.Transcription.RawSegments) != 2 {
		t.Errorf("persisted %d segments, want 2", len(second.Transcription.RawSegments))
	}
	if second.Transcription.CompletedAt == nil {
		t.Error("completed patch missing CompletedAt")
	}
	if second.Answers == nil {
		t.Fatal("completed patch must replace answers")
	}
	if second.Answers["favoriteColor"].Source != SourceAuto {
		t.Errorf("answer source = %q, want %q", second.Answers["favoriteColor"].Source, SourceAuto)
	}
}

func TestRun_ProcessingPersistedBeforeUpload(t *testing.T) {
	store := &fakeRecordStore{}
	var patchesAtCall int
	client := &checkpointTranscriber{fn: func() {
		patchesAtCall = len(store.all())
	}}
	o := newTestOrchestrator(store, client)

	if _, err := o.Run(context.Background(), "iv-1", "v.mp4", nil, "key"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if patchesAtCall != 1 {
		t.Errorf("patches before upload = %d, want 1 (processing marker)", patchesAtCall)
	}
}

type checkpointTranscriber struct {
	fn func()
}

func (c *checkpointTranscriber) Transcribe(ctx context.Context, videoKey, apiKey string) ([]Segment, error) {
	c.fn()
	return []Segment{}, nil
}

func TestRun_FailurePersistsErrorAndLeavesAnswers(t *testing.T) {
	store := &fakeRecordStore{}
	svcErr := &ServiceError{StatusCode: 401, Message: "invalid key"}
	client := &fakeTranscriber{err: svcErr}
	o := newTestOrchestrator(store, client)

	_, err := o.Run(context.Background(), "iv-1", "v.mp4", nil, "bad")
	if !errors.Is(err, svcErr) {
		t.Fatalf("Run returned %v, want the client error unchanged", err)
	}

	patches := store.all()
	if len(patches) != 2 {
		t.Fatalf("got %d patches, want 2", len(patches))
	}
	failed := patches[1].patch
	if failed.Transcription == nil || failed.Transcription.Status != StatusFailed {
		t.Fatalf("terminal patch = %+v, want failed status", failed.Transcription)
	}
	if failed.Transcription.Error == nil || *failed.Transcription.Error != "invalid key" {
		t.Errorf("persisted error = %v, want %q", failed.Transcription.Error, "invalid key")
	}
	if failed.Answers != nil {
		t.Error("failed run must leave answers untouched")
	}
}

func TestRun_ConcurrentRunRejected(t *testing.T) {
	store := &fakeRecordStore{}
	block := make(chan struct{})
	client := &fakeTranscriber{block: block, segments: []Segment{}}
	o := newTestOrchestrator(store, client)

	done := make(chan error, 1)
	go func() {
		_, err := o.Run(context.Background(), "iv-1", "v.mp4", nil, "key")
		done <- err
	}()

	// wait for the first run to reach the blocking upload
	deadline := time.After(2 * time.Second)
	for !o.Running("iv-1") {
		select {
		case <-deadline:
			t.Fatal("first run never started")
		case <-time.After(time.Millisecond):
		}
	}

	if _, err := o.Run(context.Background(), "iv-1", "v.mp4", nil, "key"); !errors.Is(err, ErrRunInProgress) {
		t.Fatalf("second run err = %v, want ErrRunInProgress", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first run: %v", err)
	}
	if o.Running("iv-1") {
		t.Error("run marker not released")
	}

	// the marker is per interview, and released after completion
	if _, err := o.Run(context.Background(), "iv-1", "v.mp4", nil, "key"); err != nil {
		t.Fatalf("rerun after completion blocked: %v", err)
	}
}

func TestRun_MarkProcessingFailureAborts(t *testing.T) {
	store := &fakeRecordStore{err: errors.New("db down")}
	client := &fakeTranscriber{}
	o := newTestOrchestrator(store, client)

	if _, err := o.Run(context.Background(), "iv-1", "v.mp4", nil, "key"); err == nil {
		t.Fatal("want error when the processing marker cannot be persisted")
	}
	if client.calls != 0 {
		t.Errorf("upload attempted %d times, want 0", client.calls)
	}
}
