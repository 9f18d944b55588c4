package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	domain "github.com/reelcheck/reelcheck/internal/domain/analysis"
)

type FailureRepository struct {
	db *sql.DB
}

func NewFailureRepository(db *sql.DB) *FailureRepository { return &FailureRepository{db: db} }

func (r *FailureRepository) Save(ctx context.Context, f *domain.Failure) error {
	const q = `
INSERT INTO analysis_failures
  (session_id, analysis_id, stage, message, payload_json, created_at)
VALUES ($1,$2,$3,$4,$5,$6);
`
	msg := f.Message
	if strings.TrimSpace(msg) == "" {
		msg = "-"
	}
	payload := f.PayloadJSON
	if strings.TrimSpace(payload) == "" {
		payload = "{}"
	} else {
		// ensure valid json; if invalid, wrap as string field
		var js any
		if json.Unmarshal([]byte(payload), &js) != nil {
			b, _ := json.Marshal(map[string]string{"raw": payload})
			payload = string(b)
		}
	}
	created := f.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		stringOrDash(f.SessionID), stringOrDash(f.AnalysisID), stringOrDash(f.Stage),
		msg, payload, created)
	return err
}

func (r *FailureRepository) Latest(ctx context.Context, session string, limit int) ([]*domain.Failure, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, session_id, analysis_id, stage, message, payload_json, created_at
FROM analysis_failures
WHERE session_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, session, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Failure
	for rows.Next() {
		var f domain.Failure
		if err := rows.Scan(&f.ID, &f.SessionID, &f.AnalysisID, &f.Stage, &f.Message, &f.PayloadJSON, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
