package media

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTypedEntryWins(t *testing.T) {
	payload := map[string]any{
		"title": "claim video",
		"medias": []any{
			map[string]any{"type": "video", "url": "a"},
			map[string]any{"type": "audio", "url": "b"},
		},
	}
	res, err := Resolve(payload)
	require.NoError(t, err)
	assert.Equal(t, "b", res.AudioURL)
	assert.Equal(t, "claim video", res.Caption)
}

func TestResolveAudioSubstringInURL(t *testing.T) {
	payload := map[string]any{
		"medias": []any{
			map[string]any{"type": "video", "url": "https://cdn.example.com/v/1.mp4"},
			map[string]any{"type": "unknown", "url": "https://cdn.example.com/AUDIO/1.mp3"},
		},
	}
	res, err := Resolve(payload)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/AUDIO/1.mp3", res.AudioURL)
}

func TestResolvePositionalFallback(t *testing.T) {
	payload := map[string]any{
		"medias": []any{
			map[string]any{"url": "first"},
			map[string]any{"url": "second"},
		},
	}
	res, err := Resolve(payload)
	require.NoError(t, err)
	assert.Equal(t, "second", res.AudioURL)
}

func TestResolvePositionalFallbackStringItems(t *testing.T) {
	payload := map[string]any{"medias": []any{"x", "y"}}
	res, err := Resolve(payload)
	require.NoError(t, err)
	assert.Equal(t, "y", res.AudioURL)
}

func TestResolveAudioURLField(t *testing.T) {
	payload := map[string]any{"audio_url": "https://cdn.example.com/a.mp3"}
	res, err := Resolve(payload)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.mp3", res.AudioURL)
	// tanpa field caption-like, fallback caption tetap keisi
	assert.Equal(t, "No Caption Found", res.Caption)
}

func TestResolveMediasMapping(t *testing.T) {
	payload := map[string]any{
		"medias": map[string]any{"audio": "https://cdn.example.com/m.mp3"},
	}
	res, err := Resolve(payload)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/m.mp3", res.AudioURL)
}

func TestResolveAudioNamedField(t *testing.T) {
	payload := map[string]any{
		"title":          "x",
		"audioStreamURL": "https://cdn.example.com/s.mp3",
	}
	res, err := Resolve(payload)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/s.mp3", res.AudioURL)
}

func TestResolveAudioNamedFieldRequiresHTTP(t *testing.T) {
	payload := map[string]any{"audio_codec": "aac"}
	_, err := Resolve(payload)
	require.Error(t, err)
}

func TestResolveNoMatchListsKeys(t *testing.T) {
	payload := map[string]any{"title": "x", "medias": []any{}}
	_, err := Resolve(payload)
	require.Error(t, err)

	var resErr *ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, []string{"medias", "title"}, resErr.Keys)
	assert.Contains(t, resErr.Error(), "medias")
}

func TestCaption(t *testing.T) {
	assert.Equal(t, "t", Caption(map[string]any{"title": "t", "caption": "c"}))
	assert.Equal(t, "c", Caption(map[string]any{"caption": "c"}))
	assert.Equal(t, "d", Caption(map[string]any{"description": "d"}))
	assert.Equal(t, "No Caption Found", Caption(map[string]any{}))
	assert.Equal(t, "No Caption Found", Caption(map[string]any{"title": ""}))
}

func TestLocale(t *testing.T) {
	assert.Equal(t, "hi-IN", LanguageHindi.Locale())
	assert.Equal(t, "en-US", LanguageEnglish.Locale())
}
