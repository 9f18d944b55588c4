package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	domain "github.com/reelcheck/reelcheck/internal/domain/transcribe"
)

// Recognizer kirim satu chunk wav ke backend speech-to-text lewat HTTP.
// Body: raw audio; locale + noise sample dikirim sebagai query param.
type Recognizer struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func New(endpoint, apiKey string) *Recognizer {
	return &Recognizer{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type recognizeResponse struct {
	Text string `json:"text"`
}

func (r *Recognizer) Recognize(ctx context.Context, req domain.RecognizeRequest) (string, error) {
	data, err := os.ReadFile(req.Path)
	if err != nil {
		return "", fmt.Errorf("%w: read chunk: %v", domain.ErrService, err)
	}

	url := fmt.Sprintf("%s?language=%s&noise_sample_seconds=%d",
		r.endpoint, req.Language.Locale(), req.NoiseSampleSeconds)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrService, err)
	}
	httpReq.Header.Set("Content-Type", "audio/wav")
	if r.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrService, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// lanjut parse di bawah
	case resp.StatusCode == http.StatusUnprocessableEntity:
		// backend bilang gak ada speech di chunk ini
		return "", domain.ErrNoSpeech
	default:
		return "", fmt.Errorf("%w: status %d", domain.ErrService, resp.StatusCode)
	}

	var body recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode: %v", domain.ErrService, err)
	}
	if body.Text == "" {
		return "", domain.ErrNoSpeech
	}
	return body.Text, nil
}
