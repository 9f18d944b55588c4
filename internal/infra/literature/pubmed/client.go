package pubmed

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

const (
	maxResults = 3
	// URL kanonik artikel dibentuk dari template + pmid
	articleURLTemplate = "https://pubmed.ncbi.nlm.nih.gov/%s/"
)

// Client NCBI E-utilities dua fase: esearch (cari id) lalu esummary
// (ambil judul per id).
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

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

func (c *Client) Search(ctx context.Context, query string) ([]domain.Citation, error) {
	ids, err := c.searchIDs(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	titles, err := c.fetchSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	// urutan ikut idlist dari esearch, bukan urutan map summary
	out := make([]domain.Citation, 0, len(ids))
	for _, id := range ids {
		title := titles[id]
		if title == "" {
			continue
		}
		out = append(out, domain.Citation{
			Title:      title,
			URL:        fmt.Sprintf(articleURLTemplate, id),
			Source:     domain.SourcePubMed,
			ExternalID: id,
		})
	}
	return out, nil
}

func (c *Client) searchIDs(ctx context.Context, query string) ([]string, error) {
	q := url.Values{}
	q.Set("db", "pubmed")
	q.Set("term", query)
	q.Set("retmax", fmt.Sprintf("%d", maxResults))
	q.Set("retmode", "json")

	var body esearchResponse
	if err := c.getJSON(ctx, c.baseURL+"/esearch.fcgi?"+q.Encode(), &body); err != nil {
		return nil, err
	}
	ids := body.ESearchResult.IDList
	if len(ids) > maxResults {
		ids = ids[:maxResults]
	}
	return ids, nil
}

func (c *Client) fetchSummaries(ctx context.Context, ids []string) (map[string]string, error) {
	q := url.Values{}
	q.Set("db", "pubmed")
	q.Set("id", strings.Join(ids, ","))
	q.Set("retmode", "json")

	// result di esummary: map pmid -> object dengan field title
	var body struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/esummary.fcgi?"+q.Encode(), &body); err != nil {
		return nil, err
	}

	titles := make(map[string]string, len(ids))
	for _, id := range ids {
		raw, ok := body.Result[id]
		if !ok {
			continue
		}
		var article struct {
			Title string `json:"title"`
		}
		if err := json.Unmarshal(raw, &article); err != nil {
			continue
		}
		titles[id] = article.Title
	}
	return titles, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("pubmed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pubmed returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
