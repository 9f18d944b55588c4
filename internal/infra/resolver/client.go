package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/reelcheck/reelcheck/internal/domain/media"
)

// Client panggil layanan autolink (RapidAPI style) untuk resolve link
// social media jadi payload metadata, lalu download audio-nya.
type Client struct {
	endpoint string
	apiKey   string
	apiHost  string
	http     *http.Client
	download *http.Client
}

func New(endpoint, apiKey, apiHost string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		apiHost:  apiHost,
		http:     &http.Client{Timeout: 10 * time.Second},
		// download file audio bisa lebih lama dari call metadata
		download: &http.Client{Timeout: 60 * time.Second},
	}
}

// Fetch kirim URL video ke layanan resolusi, balikin payload mentah.
// Payload sengaja tidak di-struct-kan: schema upstream tidak stabil.
func (c *Client) Fetch(ctx context.Context, videoURL string) (map[string]any, error) {
	body, err := json.Marshal(map[string]string{"url": videoURL})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.apiHost)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("link resolution request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("link resolution returned status %d", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("link resolution payload decode failed: %w", err)
	}
	return payload, nil
}

// Download ambil audio dari URL hasil resolve ke temp file .mp3.
// Caller yang bertanggung jawab hapus file-nya.
func (c *Client) Download(ctx context.Context, audioURL string) (string, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", media.ErrDownload, err)
	}

	resp, err := c.download.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", media.ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("%w: status %d", media.ErrDownload, resp.StatusCode)
	}

	f, err := os.CreateTemp("", "reelcheck-*.mp3")
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", media.ErrDownload, err)
	}

	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		return "", 0, fmt.Errorf("%w: %v", media.ErrDownload, err)
	}

	log.Printf("audio downloaded path=%s size=%d", f.Name(), n)
	return f.Name(), n, nil
}
