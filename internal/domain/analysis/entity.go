package analysis

import (
	"time"

	"github.com/reelcheck/reelcheck/internal/domain/literature"
	"github.com/reelcheck/reelcheck/internal/domain/media"
)

// ID tipe untuk Analysis
type ID string

// Status enum
type Status string

const (
	StatusRunning         Status = "running"
	StatusReady           Status = "ready"
	StatusEmptyTranscript Status = "empty_transcript"
	StatusFailed          Status = "failed"
)

// Aggregate Root: Analysis. Dibuat sekali per run dan tidak pernah
// dimutasi setelah ready; jawaban chat tidak mengubah transcript,
// caption, maupun citations.
type Analysis struct {
	ID                ID                    `json:"id"`
	SessionID         string                `json:"session_id"`
	TriggeredAt       time.Time             `json:"triggered_at"`
	SourceURL         string                `json:"source_url"`
	Language          media.Language        `json:"language"`
	Caption           string                `json:"caption"`
	Transcript        string                `json:"transcript"`
	Verdict           string                `json:"verdict,omitempty"`
	LiteratureSummary string                `json:"literature_summary,omitempty"`
	Citations         []literature.Citation `json:"citations,omitempty"`
	Status            Status                `json:"status"`
	ArtifactURL       string                `json:"artifact_url,omitempty"`
	DurationMS        int64                 `json:"duration_ms"`
}

// Turn role enum
type TurnRole string

const (
	TurnUser      TurnRole = "user"
	TurnAssistant TurnRole = "assistant"
)

// Turn satu giliran percakapan follow-up
type Turn struct {
	SessionID  string    `json:"session_id"`
	AnalysisID ID        `json:"analysis_id"`
	Seq        int       `json:"seq"`
	Role       TurnRole  `json:"role"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Failure catatan kegagalan fatal satu run, termasuk raw payload upstream
// untuk diagnosa shape mismatch.
type Failure struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	AnalysisID  string    `json:"analysis_id"`
	Stage       string    `json:"stage"` // resolving | downloading | composing
	Message     string    `json:"message"`
	PayloadJSON string    `json:"payload_json,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
