package transcribe

import "time"

// Answer sources.
const (
	SourceAuto   = "auto"
	SourceEdited = "edited"
)

// Pipeline status values. Transitions go pending → processing →
// {completed|failed}; a retry re-enters processing from either terminal
// state.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// QuestionTimestamp records one showing of a question during recording.
// A question shown more than once produces multiple entries with the same
// question id. Entries are kept in capture order.
type QuestionTimestamp struct {
	QuestionID  string `json:"questionId"`
	TimestampMs int64  `json:"timestampMs"`
}

// Segment is a contiguous span of transcribed speech returned by the
// speech service, with start/end offsets in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// AnswerRecord is one question's answer text. Source is "auto" when the
// pipeline produced it and "edited" after a manual correction.
type AnswerRecord struct {
	Text     string     `json:"text"`
	Source   string     `json:"source"`
	EditedAt *time.Time `json:"editedAt"`
}

// Status is the persisted pipeline state for one interview.
type Status struct {
	Status      string     `json:"status"`
	RawSegments []Segment  `json:"rawSegments"`
	Error       *string    `json:"error"`
	CompletedAt *time.Time `json:"completedAt"`
}

// InterviewPatch is a merge-patch for a stored interview. Nil fields are
// left untouched; a non-nil Answers map replaces the stored map entirely.
type InterviewPatch struct {
	Transcription *Status
	Answers       map[string]AnswerRecord
}

// RunResult is what a successful pipeline run produced.
type RunResult struct {
	Answers  map[string]AnswerRecord `json:"answers"`
	Segments []Segment               `json:"segments"`
}
