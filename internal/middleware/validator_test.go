package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelcheck/reelcheck/internal/domain/media"
)

func TestValidateLanguage(t *testing.T) {
	lang, err := ValidateLanguage("Hindi")
	require.NoError(t, err)
	assert.Equal(t, media.LanguageHindi, lang)

	lang, err = ValidateLanguage("English")
	require.NoError(t, err)
	assert.Equal(t, media.LanguageEnglish, lang)

	_, err = ValidateLanguage("French")
	assert.Error(t, err)
}

func TestValidateMediaURL(t *testing.T) {
	assert.NoError(t, ValidateMediaURL("https://instagram.com/reel/x"))
	assert.Error(t, ValidateMediaURL(""))
	assert.Error(t, ValidateMediaURL("ftp://host/file"))
	assert.Error(t, ValidateMediaURL("http://localhost:8080/x"))
	assert.Error(t, ValidateMediaURL("http://192.168.1.5/x"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello\x00  "))
	assert.Equal(t, "a b", SanitizeString("a\x01\x02 b"))
	assert.Equal(t, "line1\nline2", SanitizeString("line1\nline2"))
	assert.Equal(t, "", SanitizeString("\x00\x01"))
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 20, ValidateLimit(0))
	assert.Equal(t, 20, ValidateLimit(-5))
	assert.Equal(t, 50, ValidateLimit(50))
	assert.Equal(t, 100, ValidateLimit(500))
}
