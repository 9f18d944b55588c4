package semanticscholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	domain "github.com/reelcheck/reelcheck/internal/domain/literature"
)

const maxResults = 5

// Client Semantic Scholar graph API, satu call per query.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResponse struct {
	Data []struct {
		PaperID string `json:"paperId"`
		Title   string `json:"title"`
		URL     string `json:"url"`
		Year    int    `json:"year"`
	} `json:"data"`
}

func (c *Client) Search(ctx context.Context, query string) ([]domain.Citation, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("limit", fmt.Sprintf("%d", maxResults))
	q.Set("fields", "title,url,year")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/paper/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("semantic scholar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("semantic scholar returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("semantic scholar decode failed: %w", err)
	}

	out := make([]domain.Citation, 0, len(body.Data))
	for _, item := range body.Data {
		// entry tanpa judul atau URL gak berguna buat sitasi
		if item.Title == "" || item.URL == "" {
			continue
		}
		year := ""
		if item.Year > 0 {
			year = fmt.Sprintf("%d", item.Year)
		}
		out = append(out, domain.Citation{
			Title:      item.Title,
			URL:        item.URL,
			Source:     domain.SourceSemanticScholar,
			Year:       year,
			ExternalID: item.PaperID,
		})
		if len(out) == maxResults {
			break
		}
	}
	return out, nil
}
