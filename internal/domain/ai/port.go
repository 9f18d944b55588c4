package ai

import "context"

// Role enum untuk pesan chat completion
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message satu pesan role-tagged dalam request completion
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest parameter untuk satu panggilan model
type CompletionRequest struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// Client interface untuk layanan chat completion
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ClientFactory returns a working client chosen by trying each configured
// credential in order, plus the index of the credential that was selected.
type ClientFactory interface {
	Client(ctx context.Context) (Client, int, error)
}
