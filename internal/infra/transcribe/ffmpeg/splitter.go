package ffmpeg

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	domain "github.com/reelcheck/reelcheck/internal/domain/transcribe"
)

// Splitter pecah file audio jadi chunk wav berdurasi tetap pakai ffmpeg
// segment muxer. Chunk ditaruh di direktori temp per run.
type Splitter struct {
	randSource *rand.Rand
}

func NewSplitter() *Splitter {
	// Create a dedicated random source to avoid contention
	src := rand.NewSource(time.Now().UnixNano())
	return &Splitter{
		randSource: rand.New(src),
	}
}

func (s *Splitter) Split(ctx context.Context, path string, seconds int) ([]domain.Chunk, error) {
	if seconds <= 0 {
		seconds = 10
	}

	outDir := filepath.Join(os.TempDir(), fmt.Sprintf("reelcheck-chunks-%d", s.randSource.Int()))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	pattern := filepath.Join(outDir, "chunk-%04d.wav")
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-i", path,
		"-f", "segment",
		"-segment_time", fmt.Sprintf("%d", seconds),
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		pattern,
	)

	// jalankan ffmpeg
	out, err := cmd.CombinedOutput()
	if err != nil {
		os.RemoveAll(outDir)
		return nil, fmt.Errorf("ffmpeg split error: %v, output=%s", err, string(out))
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".wav" {
			names = append(names, e.Name())
		}
	}
	// nama chunk sudah zero-padded, sort lexicographic = urutan posisi
	sort.Strings(names)

	chunks := make([]domain.Chunk, 0, len(names))
	for i, name := range names {
		chunks = append(chunks, domain.Chunk{Index: i, Path: filepath.Join(outDir, name)})
	}
	return chunks, nil
}
