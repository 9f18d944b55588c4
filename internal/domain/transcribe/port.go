package transcribe

import (
	"context"

	"github.com/reelcheck/reelcheck/internal/domain/media"
)

// Chunk satu potongan audio berdurasi tetap
type Chunk struct {
	Index int
	Path  string
}

// Segment hasil transkripsi satu chunk; Text kosong kalau chunk gagal.
type Segment struct {
	Index int
	Text  string
}

// Splitter port (interface untuk pemecah audio jadi chunk)
type Splitter interface {
	Split(ctx context.Context, path string, seconds int) ([]Chunk, error)
}

// RecognizeRequest untuk Recognizer
type RecognizeRequest struct {
	Path     string
	Language media.Language
	// NoiseSampleSeconds: durasi sampel awal untuk kalibrasi ambient noise
	NoiseSampleSeconds int
}

// Recognizer port (interface untuk backend speech-to-text)
type Recognizer interface {
	Recognize(ctx context.Context, req RecognizeRequest) (string, error)
}
