package transcribe

import "errors"

// ErrNoSpeech indicates the backend found no recognizable speech in the chunk.
// Bukan error beneran; chunk-nya di-skip diam-diam.
var ErrNoSpeech = errors.New("no speech detected")

// ErrService indicates the recognition backend itself failed (network, quota, 5xx).
var ErrService = errors.New("speech service error")
