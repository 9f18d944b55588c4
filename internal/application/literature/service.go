package literature

import (
	"context"
	"log"
	"strings"

	domain "github.com/reelcheck/reelcheck/internal/domain/literature"
)

const (
	summaryFromPrimary   = 2
	summaryFromSecondary = 3
	noReferencesSummary  = "No medical references found"
)

// Aggregator gabungkan hasil dua layanan pencarian bibliografi jadi satu
// daftar sitasi + ringkasan bullet. Tidak pernah gagal fatal: layanan
// yang error kontribusinya dianggap kosong.
type Aggregator struct {
	Primary   domain.Searcher // PubMed-style
	Secondary domain.Searcher // Semantic-Scholar-style
	// Dedupe: buang duplikat lintas sumber by normalized title.
	// Default off — perilaku historis tanpa dedup dipertahankan.
	Dedupe bool
}

// Search balikin ringkasan human-readable + daftar sitasi terurut:
// semua hasil primary dulu (urutan upstream), lalu secondary.
func (a *Aggregator) Search(ctx context.Context, query string) (string, []domain.Citation) {
	primary := a.query(ctx, a.Primary, "pubmed", query)
	secondary := a.query(ctx, a.Secondary, "semantic_scholar", query)

	citations := make([]domain.Citation, 0, len(primary)+len(secondary))
	citations = append(citations, primary...)
	citations = append(citations, secondary...)

	if a.Dedupe {
		citations = dedupeByTitle(citations)
	}

	return buildSummary(primary, secondary), citations
}

func (a *Aggregator) query(ctx context.Context, s domain.Searcher, name, query string) []domain.Citation {
	if s == nil {
		return nil
	}
	results, err := s.Search(ctx, query)
	if err != nil {
		// degrade: sumber ini kosong, run tetap lanjut
		log.Printf("literature source=%s degraded: %v", name, err)
		return nil
	}
	return results
}

func buildSummary(primary, secondary []domain.Citation) string {
	var lines []string
	for i, c := range primary {
		if i == summaryFromPrimary {
			break
		}
		lines = append(lines, "• "+c.Title)
	}
	for i, c := range secondary {
		if i == summaryFromSecondary {
			break
		}
		lines = append(lines, "• "+c.Title)
	}
	if len(lines) == 0 {
		return noReferencesSummary
	}
	return strings.Join(lines, "\n")
}

// dedupeByTitle pertahankan kemunculan pertama (source-priority menang)
func dedupeByTitle(in []domain.Citation) []domain.Citation {
	seen := make(map[string]bool, len(in))
	out := make([]domain.Citation, 0, len(in))
	for _, c := range in {
		key := strings.ToLower(strings.TrimSpace(c.Title))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
