package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	domai "github.com/reelcheck/reelcheck/internal/domain/ai"
	domain "github.com/reelcheck/reelcheck/internal/domain/analysis"
	"github.com/reelcheck/reelcheck/internal/domain/literature"
	"github.com/reelcheck/reelcheck/internal/domain/media"
	"github.com/reelcheck/reelcheck/internal/infra/ai/prompt"
)

const (
	chatWindow        = 10
	verdictMaxTokens  = 2048
	answerMaxTokens   = 1024
	samplingTemp      = 0.7
	cleanupAttempts   = 5
	cleanupBackoff    = 300 * time.Millisecond
)

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// LinkResolver port ke layanan resolusi link + download audio
type LinkResolver interface {
	Fetch(ctx context.Context, videoURL string) (map[string]any, error)
	Download(ctx context.Context, audioURL string) (string, int64, error)
}

// Transcriber port ke chunked transcriber; tidak pernah gagal fatal
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, lang media.Language) string
}

// LiteratureSearcher port ke aggregator literatur
type LiteratureSearcher interface {
	Search(ctx context.Context, query string) (string, []literature.Citation)
}

// Service implements use-cases untuk satu run analisa + chat follow-up.
// Semua state per request; aman dipakai concurrent antar session.
type Service struct {
	Resolver    LinkResolver
	Transcriber Transcriber
	Literature  LiteratureSearcher
	AI          domai.ClientFactory
	Repo        domain.Repository
	Turns       domain.TurnRepository
	Failures    domain.FailureRepository
	Artifacts   domain.ArtifactStore
	Clock       Clock
}

//
// ==== USE CASES ====
//

// Command untuk trigger analisa
type AnalyzeCommand struct {
	SessionID string
	URL       string
	Language  media.Language
}

// AnalyzeUntilDone → jalanin analisa dengan context.Background()
// cocok dipanggil dari goroutine di router supaya gak kena context canceled
func (s *Service) AnalyzeUntilDone(cmd AnalyzeCommand) (*domain.Analysis, error) {
	return s.Analyze(context.Background(), cmd)
}

// Analyze jalankan pipeline penuh: resolve → download → transcribe →
// aggregate+compose → persist. Gagal di resolve/download fatal; gagal di
// transkripsi atau literatur cuma menurunkan kualitas hasil.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*domain.Analysis, error) {
	now := s.Clock.Now()
	id := domain.ID(uuid.New().String())

	// --- Resolving ---
	payload, err := s.Resolver.Fetch(ctx, cmd.URL)
	if err != nil {
		s.recordFailure(cmd.SessionID, string(id), "resolving", err, nil)
		return nil, err
	}

	resolved, err := media.Resolve(payload)
	if err != nil {
		// payload mentah ikut disimpan supaya shape mismatch bisa didiagnosa
		s.recordFailure(cmd.SessionID, string(id), "resolving", err, payload)
		return nil, err
	}
	caption := resolved.Caption

	initial := &domain.Analysis{
		ID:          id,
		SessionID:   cmd.SessionID,
		TriggeredAt: now,
		SourceURL:   cmd.URL,
		Language:    cmd.Language,
		Caption:     caption,
		Status:      domain.StatusRunning,
	}
	if err := s.Repo.Save(ctx, initial); err != nil {
		return nil, err
	}

	// --- Downloading ---
	audioPath, size, err := s.Resolver.Download(ctx, resolved.AudioURL)
	if err != nil {
		s.recordFailure(cmd.SessionID, string(id), "downloading", err, payload)
		_ = s.Repo.UpdateStatus(context.Background(), cmd.SessionID, id, domain.StatusFailed)
		return nil, err
	}
	log.Printf("analysis id=%s downloaded audio bytes=%d", id, size)
	defer s.removeWithRetry(audioPath)

	// --- Transcribing ---
	transcript := s.Transcriber.Transcribe(ctx, audioPath, cmd.Language)
	if transcript == "" {
		// soft failure: lapor dan berhenti tanpa raise
		result := *initial
		result.Status = domain.StatusEmptyTranscript
		result.DurationMS = time.Since(now).Milliseconds()
		if err := s.Repo.Save(ctx, &result); err != nil {
			return nil, err
		}
		return &result, nil
	}

	// --- Aggregating + Composing ---
	summary, citations := s.Literature.Search(ctx, prompt.SearchQuery(transcript))

	verdict, err := s.compose(ctx, caption, transcript, summary)
	if err != nil {
		s.recordFailure(cmd.SessionID, string(id), "composing", err, nil)
		_ = s.Repo.UpdateStatus(context.Background(), cmd.SessionID, id, domain.StatusFailed)
		return nil, err
	}

	artifactURL := s.uploadTranscript(ctx, cmd.SessionID, string(id), transcript)

	result := &domain.Analysis{
		ID:                id,
		SessionID:         cmd.SessionID,
		TriggeredAt:       now,
		SourceURL:         cmd.URL,
		Language:          cmd.Language,
		Caption:           caption,
		Transcript:        transcript,
		Verdict:           verdict,
		LiteratureSummary: summary,
		Citations:         citations,
		Status:            domain.StatusReady,
		ArtifactURL:       artifactURL,
		DurationMS:        time.Since(now).Milliseconds(),
	}
	if err := s.Repo.Save(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) compose(ctx context.Context, caption, transcript, summary string) (string, error) {
	client, idx, err := s.AI.Client(ctx)
	if err != nil {
		return "", err
	}
	log.Printf("composer using credential index=%d", idx)

	raw, err := client.Complete(ctx, domai.CompletionRequest{
		Messages:    prompt.FactCheck(caption, transcript, summary),
		Temperature: samplingTemp,
		MaxTokens:   verdictMaxTokens,
	})
	if err != nil {
		return "", err
	}
	return prompt.FormatVerdict(raw), nil
}

// Answer jawab pertanyaan follow-up dengan konteks analisa + window 10
// turn terakhir. Error di jalur chat tidak pernah mematikan session:
// kegagalan muncul sebagai jawaban bernada error di transcript percakapan.
func (s *Service) Answer(ctx context.Context, session string, id domain.ID, question string) (string, error) {
	a, err := s.Repo.Get(ctx, session, id)
	if err != nil {
		return "", err
	}

	history, err := s.Turns.List(ctx, session, id)
	if err != nil {
		return "", err
	}
	windowed := history
	if len(windowed) > chatWindow {
		windowed = windowed[len(windowed)-chatWindow:]
	}

	answer := s.chatCompletion(ctx, a, windowed, question)

	seq := len(history)
	userTurn := &domain.Turn{
		SessionID: session, AnalysisID: id, Seq: seq,
		Role: domain.TurnUser, Content: question, CreatedAt: s.Clock.Now(),
	}
	assistantTurn := &domain.Turn{
		SessionID: session, AnalysisID: id, Seq: seq + 1,
		Role: domain.TurnAssistant, Content: answer, CreatedAt: s.Clock.Now(),
	}
	if err := s.Turns.Append(ctx, userTurn); err != nil {
		return "", err
	}
	if err := s.Turns.Append(ctx, assistantTurn); err != nil {
		return "", err
	}
	return answer, nil
}

func (s *Service) chatCompletion(ctx context.Context, a *domain.Analysis, history []*domain.Turn, question string) string {
	client, _, err := s.AI.Client(ctx)
	if err != nil {
		return fmt.Sprintf("Chat error: %v", err)
	}
	answer, err := client.Complete(ctx, domai.CompletionRequest{
		Messages:    prompt.Chat(a, history, question),
		Temperature: samplingTemp,
		MaxTokens:   answerMaxTokens,
	})
	if err != nil {
		return fmt.Sprintf("Chat error: %v", err)
	}
	return answer
}

// Reset buang semua state percakapan milik session; analisa berikutnya
// mulai dari kosong lagi.
func (s *Service) Reset(ctx context.Context, session string) error {
	return s.Turns.DeleteBySession(ctx, session)
}

// Latest ambil N analisa terakhir
func (s *Service) Latest(ctx context.Context, session string, limit int) ([]*domain.Analysis, error) {
	return s.Repo.Latest(ctx, session, limit)
}

// Get ambil 1 analisa by id
func (s *Service) Get(ctx context.Context, session string, id domain.ID) (*domain.Analysis, error) {
	return s.Repo.Get(ctx, session, id)
}

// Failures ambil catatan kegagalan terakhir (buat diagnosa operator)
func (s *Service) LatestFailures(ctx context.Context, session string, limit int) ([]*domain.Failure, error) {
	return s.Failures.Latest(ctx, session, limit)
}

//
// ==== helpers ====
//

func (s *Service) recordFailure(session, id, stage string, cause error, payload map[string]any) {
	f := &domain.Failure{
		SessionID:  session,
		AnalysisID: id,
		Stage:      stage,
		Message:    cause.Error(),
		CreatedAt:  s.Clock.Now(),
	}
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			f.PayloadJSON = string(raw)
		}
	}
	if s.Failures == nil {
		return
	}
	if err := s.Failures.Save(context.Background(), f); err != nil {
		log.Printf("failure record not saved session=%s stage=%s: %v", session, stage, err)
	}
}

func (s *Service) uploadTranscript(ctx context.Context, session, id, transcript string) string {
	if s.Artifacts == nil {
		return ""
	}
	f, err := os.CreateTemp("", "reelcheck-transcript-*.txt")
	if err != nil {
		log.Printf("transcript artifact temp file error: %v", err)
		return ""
	}
	if _, err := f.WriteString(transcript); err != nil {
		f.Close()
		os.Remove(f.Name())
		log.Printf("transcript artifact write error: %v", err)
		return ""
	}
	f.Close()

	key := fmt.Sprintf("%s/%s/transcript.txt", session, id)
	url, err := s.Artifacts.UploadAndCleanup(ctx, f.Name(), key)
	if err != nil {
		os.Remove(f.Name())
		log.Printf("transcript artifact upload error: %v", err)
		return ""
	}
	return url
}

// removeWithRetry hapus file download dengan bounded retry; kalau tetap
// gagal cukup dilog, jangan crash.
func (s *Service) removeWithRetry(path string) {
	var err error
	for attempt := 0; attempt < cleanupAttempts; attempt++ {
		err = os.Remove(path)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			return
		}
		if attempt < cleanupAttempts-1 {
			time.Sleep(cleanupBackoff)
		}
	}
	log.Printf("cleanup warning: failed to delete %s after %d attempts: %v", path, cleanupAttempts, err)
}
