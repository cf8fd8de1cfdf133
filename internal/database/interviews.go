package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/littleyear/iv-engine/internal/transcribe"
)

// ErrNotFound is returned when an interview id does not exist.
var ErrNotFound = errors.New("interview not found")

// Interview is the stored record for one birthday interview.
type Interview struct {
	ID                 string                             `json:"id"`
	ChildName          string                             `json:"childName"`
	RecordedAt         *time.Time                         `json:"recordedAt"`
	VideoKey           string                             `json:"videoKey,omitempty"`
	QuestionTimestamps []transcribe.QuestionTimestamp     `json:"questionTimestamps"`
	Transcription      transcribe.Status                  `json:"transcription"`
	Answers            map[string]transcribe.AnswerRecord `json:"answers"`
	CreatedAt          time.Time                          `json:"createdAt"`
	UpdatedAt          time.Time                          `json:"updatedAt"`
}

const interviewColumns = `id, child_name, recorded_at, video_key, question_timestamps, transcription, answers, created_at, updated_at`

// CreateInterview inserts a new interview. A missing id is generated; the
// transcription status starts as pending.
func (db *DB) CreateInterview(ctx context.Context, iv *Interview) error {
	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}
	if iv.Transcription.Status == "" {
		iv.Transcription = transcribe.Status{Status: transcribe.StatusPending}
	}
	if iv.QuestionTimestamps == nil {
		iv.QuestionTimestamps = []transcribe.QuestionTimestamp{}
	}
	if iv.Answers == nil {
		iv.Answers = map[string]transcribe.AnswerRecord{}
	}

	tsJSON, err := json.Marshal(iv.QuestionTimestamps)
	if err != nil {
		return fmt.Errorf("marshal question timestamps: %w", err)
	}
	trJSON, err := json.Marshal(iv.Transcription)
	if err != nil {
		return fmt.Errorf("marshal transcription: %w", err)
	}
	ansJSON, err := json.Marshal(iv.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	err = db.Pool.QueryRow(ctx, `
		INSERT INTO interviews (id, child_name, recorded_at, video_key, question_timestamps, transcription, answers)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, iv.ID, iv.ChildName, iv.RecordedAt, iv.VideoKey, tsJSON, trJSON, ansJSON).
		Scan(&iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}
	return nil
}

// GetInterview loads one interview by id.
func (db *DB) GetInterview(ctx context.Context, id string) (*Interview, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id)
	iv, err := scanInterview(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return iv, nil
}

// ListInterviews returns interviews newest-first.
func (db *DB) ListInterviews(ctx context.Context, limit, offset int) ([]*Interview, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+interviewColumns+`
		FROM interviews
		ORDER BY recorded_at DESC NULLS LAST, created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

// SetVideoKey records where the interview's recording was stored.
func (db *DB) SetVideoKey(ctx context.Context, id, videoKey string) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE interviews SET video_key = $2, updated_at = now() WHERE id = $1`,
		id, videoKey)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateInterview merge-patches an interview: only the patch's non-nil
// fields are written, in one UPDATE. A patch carrying both transcription
// and answers lands atomically, which is what the pipeline's completion
// write relies on. A non-nil answers map replaces the stored map entirely.
func (db *DB) UpdateInterview(ctx context.Context, id string, patch transcribe.InterviewPatch) error {
	sets, args, err := buildInterviewPatch(patch)
	if err != nil {
		return err
	}
	if len(sets) == 0 {
		return nil
	}

	args = append([]any{id}, args...)
	query := `UPDATE interviews SET ` + strings.Join(sets, ", ") + `, updated_at = now() WHERE id = $1`

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update interview: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateAnswer writes a single answer record, leaving the rest of the
// answers map and the transcription status untouched.
func (db *DB) UpdateAnswer(ctx context.Context, id, questionID string, rec transcribe.AnswerRecord) error {
	recJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal answer: %w", err)
	}

	tag, err := db.Pool.Exec(ctx, `
		UPDATE interviews
		SET answers = jsonb_set(COALESCE(answers, '{}'::jsonb), ARRAY[$2], $3::jsonb, true),
		    updated_at = now()
		WHERE id = $1
	`, id, questionID, recJSON)
	if err != nil {
		return fmt.Errorf("update answer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// buildInterviewPatch turns a patch into SET clauses and args. Parameter
// numbering starts at $2; $1 is the interview id.
func buildInterviewPatch(patch transcribe.InterviewPatch) ([]string, []any, error) {
	var sets []string
	var args []any

	if patch.Transcription != nil {
		trJSON, err := json.Marshal(patch.Transcription)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal transcription: %w", err)
		}
		args = append(args, trJSON)
		sets = append(sets, fmt.Sprintf("transcription = $%d", len(args)+1))
	}
	if patch.Answers != nil {
		ansJSON, err := json.Marshal(patch.Answers)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal answers: %w", err)
		}
		args = append(args, ansJSON)
		sets = append(sets, fmt.Sprintf("answers = $%d", len(args)+1))
	}

	return sets, args, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInterview(row rowScanner) (*Interview, error) {
	var iv Interview
	var tsJSON, trJSON, ansJSON []byte

	err := row.Scan(&iv.ID, &iv.ChildName, &iv.RecordedAt, &iv.VideoKey,
		&tsJSON, &trJSON, &ansJSON, &iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tsJSON, &iv.QuestionTimestamps); err != nil {
		return nil, fmt.Errorf("unmarshal question timestamps: %w", err)
	}
	if err := json.Unmarshal(trJSON, &iv.Transcription); err != nil {
		return nil, fmt.Errorf("unmarshal transcription: %w", err)
	}
	if err := json.Unmarshal(ansJSON, &iv.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	return &iv, nil
}
