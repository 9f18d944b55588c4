package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelcheck/reelcheck/internal/domain/ai"
	"github.com/reelcheck/reelcheck/internal/domain/analysis"
	"github.com/reelcheck/reelcheck/internal/domain/literature"
)

func TestFormatVerdictBold(t *testing.T) {
	assert.Equal(t, "the <b>claim</b> is wrong", FormatVerdict("the **claim** is wrong"))
	assert.Equal(t, "<b>a</b> and <b>b</b>", FormatVerdict("**a** and **b**"))
	// marker tanpa pasangan dibiarkan
	assert.Equal(t, "broken ** marker", FormatVerdict("broken ** marker"))
}

func TestFormatVerdictBullets(t *testing.T) {
	in := "* first\n- second\nplain\n  * indented"
	out := FormatVerdict(in)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "• first", lines[0])
	assert.Equal(t, "• second", lines[1])
	assert.Equal(t, "plain", lines[2])
	assert.Equal(t, "  • indented", lines[3])
}

func TestSearchQueryTruncates(t *testing.T) {
	long := strings.Repeat("a", 1000)
	assert.Len(t, SearchQuery(long), QueryMaxChars)
	assert.Equal(t, "short", SearchQuery("short"))
}

func TestSearchQueryTruncatesAtRuneBoundary(t *testing.T) {
	// transcript Hindi: tiap aksara Devanagari 3 byte
	long := strings.Repeat("स्वास्थ्य", 50)
	got := SearchQuery(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, QueryMaxChars, utf8.RuneCountInString(got))
	assert.True(t, strings.HasPrefix(long, got))

	// transcript pendek multi-byte tidak disentuh
	short := "स्वास्थ्य"
	assert.Equal(t, short, SearchQuery(short))
}

func TestFactCheckMessages(t *testing.T) {
	msgs := FactCheck("cap", "trans", "refs")
	require.Len(t, msgs, 2)
	assert.Equal(t, ai.RoleSystem, msgs[0].Role)
	assert.Equal(t, ai.RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "cap")
	assert.Contains(t, msgs[1].Content, "trans")
	assert.Contains(t, msgs[1].Content, "refs")
	assert.Contains(t, msgs[1].Content, "Accurate, Partially True, Misleading, False")
	assert.Contains(t, msgs[1].Content, "Do NOT use **")
}

func TestChatMessages(t *testing.T) {
	a := &analysis.Analysis{
		Caption:    "cap",
		Transcript: "trans",
		Verdict:    "verdict",
		Citations: []literature.Citation{
			{Title: "T1", URL: "u1", Source: literature.SourcePubMed},
		},
	}
	history := []*analysis.Turn{
		{Role: analysis.TurnUser, Content: "q1"},
		{Role: analysis.TurnAssistant, Content: "a1"},
	}

	msgs := Chat(a, history, "q2")
	require.Len(t, msgs, 4)
	assert.Equal(t, ai.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "[1] T1 (pubmed) u1")
	assert.Equal(t, ai.RoleUser, msgs[1].Role)
	assert.Equal(t, "q1", msgs[1].Content)
	assert.Equal(t, ai.RoleAssistant, msgs[2].Role)
	assert.Equal(t, ai.RoleUser, msgs[3].Role)
	assert.Equal(t, "q2", msgs[3].Content)
}

func TestChatMessagesNoCitations(t *testing.T) {
	a := &analysis.Analysis{Caption: "c", Transcript: "t", Verdict: "v"}
	msgs := Chat(a, nil, "q")
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Content, "(none)")
}
