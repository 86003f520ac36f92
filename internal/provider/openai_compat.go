package provider

import "context"

// OpenAICompatProvider implements Provider for any server exposing the
// OpenAI-compatible API surface (vLLM, llama.cpp server, cloud APIs).
type OpenAICompatProvider struct {
	*BaseProvider
}

// NewOpenAICompatProvider creates a provider for an OpenAI-compatible server
func NewOpenAICompatProvider(host, apiKey string) *OpenAICompatProvider {
	return &OpenAICompatProvider{BaseProvider: NewBaseProvider(TypeOpenAICompat, host, apiKey)}
}

// ListModels queries the /v1/models endpoint
func (p *OpenAICompatProvider) ListModels(ctx context.Context) ([]string, error) {
	return p.ListModelsOpenAI(ctx)
}
