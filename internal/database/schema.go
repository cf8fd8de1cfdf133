package database

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS interviews (
	id                  text PRIMARY KEY,
	child_name          text NOT NULL DEFAULT '',
	recorded_at         timestamptz,
	video_key           text NOT NULL DEFAULT '',
	question_timestamps jsonb NOT NULL DEFAULT '[]'::jsonb,
	transcription       jsonb NOT NULL DEFAULT '{"status":"pending","rawSegments":null,"error":null,"completedAt":null}'::jsonb,
	answers             jsonb NOT NULL DEFAULT '{}'::jsonb,
	created_at          timestamptz NOT NULL DEFAULT now(),
	updated_at          timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_interviews_recorded_at ON interviews (recorded_at DESC);
CREATE INDEX IF NOT EXISTS idx_interviews_status ON interviews ((transcription->>'status'));
`

// InitSchema applies the schema. Every statement is idempotent, so this
// runs unconditionally at startup.
func (db *DB) InitSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schemaSQL); err != nil {
		return err
	}
	db.log.Debug().Msg("schema ensured")
	return nil
}
