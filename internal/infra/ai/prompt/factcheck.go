package prompt

import (
	"fmt"
	"strings"

	"github.com/reelcheck/reelcheck/internal/domain/ai"
	"github.com/reelcheck/reelcheck/internal/domain/analysis"
)

const (
	// panjang transcript yang dipakai sebagai query pencarian literatur
	QueryMaxChars = 250

	factCheckSystem = "You are a medical fact-checker. Be accurate, direct, and ground every claim in the provided references."

	factCheckTemplate = `Analyze this short-form health video content.

Caption: %s

Transcript: %s

Medical references:
%s

Your task, in exactly five parts:
1. The claim - restate what the video is claiming (max 2 lines)
2. Verdict - rate accuracy as exactly one of: Accurate, Partially True, Misleading, False
3. Explanation - what is actually true, with scientific backing from the references
4. Caveats - anything incorrect, oversimplified, or missing context
5. Bottom line - your verdict in one sentence

Keep it in short bullet points and easy to read.
Do NOT use ** for emphasis anywhere in your response; the rendering layer applies its own formatting.`

	chatSystemTemplate = `You are a helpful medical assistant. You have context about an analyzed short-form video:

Caption: %s
Transcript: %s
Fact-check verdict: %s

Available references:
%s

Answer questions based on this context. Be friendly and accurate.`
)

// SearchQuery ambil awal transcript sebagai query literatur.
// Potong per rune, bukan per byte: transcript Hindi itu Devanagari
// multi-byte dan backend bibliografi menolak UTF-8 yang kepotong.
func SearchQuery(transcript string) string {
	count := 0
	for i := range transcript {
		if count == QueryMaxChars {
			return transcript[:i]
		}
		count++
	}
	return transcript
}

// FactCheck susun messages untuk analisa awal.
func FactCheck(caption, transcript, literatureSummary string) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleSystem, Content: factCheckSystem},
		{Role: ai.RoleUser, Content: fmt.Sprintf(factCheckTemplate, caption, transcript, literatureSummary)},
	}
}

// Chat susun messages untuk pertanyaan follow-up: system context berisi
// caption, transcript, verdict, dan daftar sitasi, lalu window history,
// lalu pertanyaan baru. History harus sudah di-window oleh caller.
func Chat(a *analysis.Analysis, history []*analysis.Turn, question string) []ai.Message {
	var refs strings.Builder
	if len(a.Citations) == 0 {
		refs.WriteString("(none)")
	}
	for i, c := range a.Citations {
		fmt.Fprintf(&refs, "[%d] %s (%s) %s\n", i+1, c.Title, c.Source, c.URL)
	}

	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: fmt.Sprintf(chatSystemTemplate,
			a.Caption, a.Transcript, a.Verdict, refs.String())},
	}
	for _, t := range history {
		role := ai.RoleUser
		if t.Role == analysis.TurnAssistant {
			role = ai.RoleAssistant
		}
		messages = append(messages, ai.Message{Role: role, Content: t.Content})
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: question})
	return messages
}
