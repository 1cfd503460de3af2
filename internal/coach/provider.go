// Package coach generates an optional one-line post-game encouragement
// via an OpenAI-compatible model. The app works without it: when no API
// key is configured, or the request fails, the static tier message is all
// the player sees.
package coach

import "context"

// Provider is the abstraction over the chat-completion backend.
type Provider interface {
	// Complete sends a system+user prompt pair and returns the raw text reply.
	Complete(ctx context.Context, system, user string) (string, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}
