package media

import (
	"log"
	"sort"
	"strings"
)

// Resolve locates the best-guess audio asset URL inside an untyped payload
// from the link-resolution service. The upstream schema is not stable, so
// resolution is an ordered chain of heuristics; first match wins. The
// caption rides along so callers get both halves of the resolved link.
func Resolve(payload map[string]any) (*Resolved, error) {
	for _, s := range strategies {
		url, ok := s.fn(payload)
		if ok {
			log.Printf("resolver strategy=%s matched url=%s", s.name, url)
			return &Resolved{Caption: Caption(payload), AudioURL: url}, nil
		}
		log.Printf("resolver strategy=%s no match", s.name)
	}
	return nil, &ResolutionError{Keys: topLevelKeys(payload)}
}

// Caption extracts the caption-like field from the payload.
func Caption(payload map[string]any) string {
	for _, key := range []string{"title", "caption", "description"} {
		if v, ok := payload[key].(string); ok && v != "" {
			return v
		}
	}
	return "No Caption Found"
}

type strategy struct {
	name string
	fn   func(map[string]any) (string, bool)
}

// Urutan strategy penting: type-match selalu menang atas positional fallback.
var strategies = []strategy{
	{"medias-typed-entry", mediasTypedEntry},
	{"medias-index-1", mediasIndexOne},
	{"audio-url-field", audioURLField},
	{"medias-audio-key", mediasAudioKey},
	{"audio-named-field", audioNamedField},
}

// Strategy 1: scan medias array, cari entry bertipe audio atau URL yang
// mengandung "audio".
func mediasTypedEntry(payload map[string]any) (string, bool) {
	items, ok := payload["medias"].([]any)
	if !ok {
		return "", false
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		url, _ := m["url"].(string)
		typ, _ := m["type"].(string)
		if typ == "audio" || (url != "" && strings.Contains(strings.ToLower(url), "audio")) {
			if url != "" {
				return url, true
			}
		}
	}
	return "", false
}

// Strategy 2: fallback ke medias[1] (heuristik legacy, memang rapuh).
func mediasIndexOne(payload map[string]any) (string, bool) {
	items, ok := payload["medias"].([]any)
	if !ok || len(items) <= 1 {
		return "", false
	}
	switch v := items[1].(type) {
	case map[string]any:
		if url, ok := v["url"].(string); ok && url != "" {
			return url, true
		}
	case string:
		if v != "" {
			return v, true
		}
	}
	return "", false
}

// Strategy 3: field audio_url langsung di top level.
func audioURLField(payload map[string]any) (string, bool) {
	url, ok := payload["audio_url"].(string)
	return url, ok && url != ""
}

// Strategy 4: medias sebagai mapping, bukan array.
func mediasAudioKey(payload map[string]any) (string, bool) {
	m, ok := payload["medias"].(map[string]any)
	if !ok {
		return "", false
	}
	url, ok := m["audio"].(string)
	return url, ok && url != ""
}

// Strategy 5: key apa pun yang mengandung "audio" dengan value URL http.
func audioNamedField(payload map[string]any) (string, bool) {
	for _, key := range topLevelKeys(payload) {
		if !strings.Contains(strings.ToLower(key), "audio") {
			continue
		}
		if v, ok := payload[key].(string); ok && strings.HasPrefix(v, "http") {
			return v, true
		}
	}
	return "", false
}

// topLevelKeys sorted supaya urutan scan deterministik
func topLevelKeys(payload map[string]any) []string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
