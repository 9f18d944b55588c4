package transcribe

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reelcheck/reelcheck/internal/domain/media"
	domain "github.com/reelcheck/reelcheck/internal/domain/transcribe"
)

const (
	chunkSeconds       = 10
	noiseSampleSeconds = 1
	removeAttempts     = 5
	removeBackoff      = 300 * time.Millisecond
)

// ProgressFunc dipanggil tiap chunk selesai (berhasil maupun gagal)
type ProgressFunc func(done, total int)

// Service transkripsi chunked: pecah audio jadi window 10 detik, kenali
// tiap window secara independen, gabungkan yang berhasil. Tidak pernah
// gagal fatal — chunk yang gagal cukup di-skip.
type Service struct {
	Splitter   domain.Splitter
	Recognizer domain.Recognizer
	// Progress opsional, boleh nil
	Progress ProgressFunc
	// Sleep injectable supaya retry cleanup gampang ditest
	Sleep func(time.Duration)
}

func NewService(splitter domain.Splitter, recognizer domain.Recognizer) *Service {
	return &Service{
		Splitter:   splitter,
		Recognizer: recognizer,
		Sleep:      time.Sleep,
	}
}

// Transcribe balikin best-effort gabungan chunk yang berhasil, atau
// string kosong kalau semua gagal.
func (s *Service) Transcribe(ctx context.Context, audioPath string, lang media.Language) string {
	chunks, err := s.Splitter.Split(ctx, audioPath, chunkSeconds)
	if err != nil {
		log.Printf("transcribe split failed path=%s err=%v", audioPath, err)
		return ""
	}
	if len(chunks) == 0 {
		return ""
	}
	log.Printf("transcribe start chunks=%d locale=%s", len(chunks), lang.Locale())

	// slot per posisi chunk; gagal = tetap kosong, urutan tidak berubah
	segments := make([]domain.Segment, len(chunks))

	for i, chunk := range chunks {
		segments[i] = domain.Segment{Index: chunk.Index}

		text, err := s.Recognizer.Recognize(ctx, domain.RecognizeRequest{
			Path:               chunk.Path,
			Language:           lang,
			NoiseSampleSeconds: noiseSampleSeconds,
		})
		switch {
		case err == nil:
			segments[i].Text = text
		case errors.Is(err, domain.ErrNoSpeech):
			// bukan error, skip diam-diam
			log.Printf("transcribe chunk=%d no speech", chunk.Index)
		case errors.Is(err, domain.ErrService):
			log.Printf("transcribe chunk=%d service error: %v", chunk.Index, err)
		default:
			log.Printf("transcribe chunk=%d unexpected error: %v", chunk.Index, err)
		}

		s.removeWithRetry(chunk.Path)

		if s.Progress != nil {
			s.Progress(i+1, len(chunks))
		}
	}

	// hapus direktori chunk-nya juga; isi yang leak sudah dilog
	if len(chunks) > 0 {
		_ = os.Remove(filepath.Dir(chunks[0].Path))
	}

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.Text != "" {
			parts = append(parts, seg.Text)
		}
	}
	return strings.Join(parts, " ")
}

// removeWithRetry hapus temp chunk dengan bounded retry; file kadang
// masih di-lock proses lain sesaat setelah dipakai.
func (s *Service) removeWithRetry(path string) {
	for attempt := 0; attempt < removeAttempts; attempt++ {
		err := os.Remove(path)
		if err == nil || os.IsNotExist(err) {
			return
		}
		if attempt < removeAttempts-1 {
			s.Sleep(removeBackoff)
		}
	}
	log.Printf("cleanup warning: failed to delete %s after %d attempts", path, removeAttempts)
}
