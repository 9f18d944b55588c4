package literature

// Source enum untuk provenance sitasi
type Source string

const (
	SourcePubMed          Source = "pubmed"
	SourceSemanticScholar Source = "semantic_scholar"
)

// Citation is a normalized bibliographic reference with provenance attached.
type Citation struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Source     Source `json:"source"`
	Year       string `json:"year,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}
