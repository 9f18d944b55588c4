package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	domain "github.com/reelcheck/reelcheck/internal/domain/analysis"
	"github.com/reelcheck/reelcheck/internal/domain/literature"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save insert/update Analysis record. Citations disimpan sebagai JSON.
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO analyses
(id, session_id, triggered_at, source_url, language, caption,
 transcript, verdict, literature_summary, citations_json,
 status, artifact_url, duration_ms)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 transcript=VALUES(transcript), verdict=VALUES(verdict),
 literature_summary=VALUES(literature_summary), citations_json=VALUES(citations_json),
 status=VALUES(status), artifact_url=VALUES(artifact_url), duration_ms=VALUES(duration_ms);
`
	session := stringOrDash(a.SessionID)
	status := stringOrDash(string(a.Status))
	triggered := a.TriggeredAt
	if triggered.IsZero() {
		triggered = time.Now()
	}

	citations, err := json.Marshal(a.Citations)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, q,
		a.ID, session, triggered, a.SourceURL, a.Language, a.Caption,
		a.Transcript, a.Verdict, a.LiteratureSummary, string(citations),
		status, a.ArtifactURL, a.DurationMS,
	)
	return err
}

// Get by ID + session
func (r *AnalysisRepository) Get(ctx context.Context, session string, id domain.ID) (*domain.Analysis, error) {
	const q = `
SELECT id, session_id, triggered_at, source_url, language, caption,
       transcript, verdict, literature_summary, citations_json,
       status, artifact_url, duration_ms
FROM analyses
WHERE session_id=? AND id=? LIMIT 1;
`
	row := r.db.QueryRowContext(ctx, q, session, id)
	return scanAnalysis(row.Scan)
}

// Latest analyses per session
func (r *AnalysisRepository) Latest(ctx context.Context, session string, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, session_id, triggered_at, source_url, language, caption,
       transcript, verdict, literature_summary, citations_json,
       status, artifact_url, duration_ms
FROM analyses
WHERE session_id=? ORDER BY triggered_at DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, session, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateStatus update kolom status saja
func (r *AnalysisRepository) UpdateStatus(ctx context.Context, session string, id domain.ID, status domain.Status) error {
	const q = `UPDATE analyses SET status=? WHERE session_id=? AND id=?;`
	_, err := r.db.ExecContext(ctx, q, status, session, id)
	return err
}

func scanAnalysis(scan func(dest ...any) error) (*domain.Analysis, error) {
	var a domain.Analysis
	var citations string
	if err := scan(
		&a.ID, &a.SessionID, &a.TriggeredAt, &a.SourceURL, &a.Language, &a.Caption,
		&a.Transcript, &a.Verdict, &a.LiteratureSummary, &citations,
		&a.Status, &a.ArtifactURL, &a.DurationMS,
	); err != nil {
		return nil, err
	}
	if citations != "" && citations != "null" {
		var list []literature.Citation
		if err := json.Unmarshal([]byte(citations), &list); err == nil {
			a.Citations = list
		}
	}
	return &a, nil
}
