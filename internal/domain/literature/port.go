package literature

import "context"

// Searcher port (interface untuk satu layanan pencarian bibliografi)
type Searcher interface {
	Search(ctx context.Context, query string) ([]Citation, error)
}
