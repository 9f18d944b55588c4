package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrAllKeysFailed indicates every configured credential failed the probe (or none configured).
var ErrAllKeysFailed = errors.New("all ai credentials failed")
