package provider

import "context"

// Type represents the LLM server type
type Type string

const (
	TypeOllama       Type = "ollama"
	TypeOpenAICompat Type = "openai-compat"
	TypeUnknown      Type = "unknown"
)

// String returns the string representation of the provider type
func (t Type) String() string {
	return string(t)
}

// DisplayName returns a human-readable name for the provider type
func (t Type) DisplayName() string {
	switch t {
	case TypeOllama:
		return "Ollama"
	case TypeOpenAICompat:
		return "OpenAI-compatible"
	default:
		return "Unknown"
	}
}

// Info holds provider metadata
type Info struct {
	Type   Type     // Provider type
	Name   string   // Display name (e.g., "Ollama")
	Host   string   // Base URL
	Model  string   // Selected model
	Models []string // Available models
}

// Provider is the flat capability interface every model server
// variant implements: one blocking generation call, a reachability
// check, and a model listing.
type Provider interface {
	// Generate sends one prompt and returns the full response text.
	Generate(ctx context.Context, prompt, systemPrompt string) (string, error)

	// IsAvailable reports whether the server can be reached.
	IsAvailable(ctx context.Context) bool

	// ListModels queries available models from the server.
	ListModels(ctx context.Context) ([]string, error)

	// Info returns provider metadata.
	Info() *Info

	// SetModel sets the active model.
	SetModel(model string)
}
