package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/reelcheck/reelcheck/internal/domain/analysis"
)

type TurnRepository struct {
	db *sql.DB
}

func NewTurnRepository(db *sql.DB) *TurnRepository { return &TurnRepository{db: db} }

func (r *TurnRepository) Append(ctx context.Context, t *domain.Turn) error {
	const q = `
INSERT INTO conversation_turns
  (session_id, analysis_id, seq, role, content, created_at)
VALUES ($1,$2,$3,$4,$5,$6);
`
	created := t.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		stringOrDash(t.SessionID), t.AnalysisID, t.Seq, t.Role, t.Content, created)
	return err
}

// List balikin log penuh urut seq; windowing urusan caller.
func (r *TurnRepository) List(ctx context.Context, session string, id domain.ID) ([]*domain.Turn, error) {
	const q = `
SELECT session_id, analysis_id, seq, role, content, created_at
FROM conversation_turns
WHERE session_id=$1 AND analysis_id=$2
ORDER BY seq ASC;
`
	rows, err := r.db.QueryContext(ctx, q, session, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Turn
	for rows.Next() {
		var t domain.Turn
		if err := rows.Scan(&t.SessionID, &t.AnalysisID, &t.Seq, &t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *TurnRepository) DeleteBySession(ctx context.Context, session string) error {
	const q = `DELETE FROM conversation_turns WHERE session_id=$1;`
	_, err := r.db.ExecContext(ctx, q, session)
	return err
}
