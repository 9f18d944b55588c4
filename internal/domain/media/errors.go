package media

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDownload indicates the resolved audio URL could not be fetched.
var ErrDownload = errors.New("audio download failed")

// ResolutionError dilempar kalau semua strategy gagal nemuin audio URL.
// Keys diisi top-level keys dari payload supaya gampang didiagnosa.
type ResolutionError struct {
	Keys []string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not find audio URL in response, available keys: [%s]",
		strings.Join(e.Keys, ", "))
}
