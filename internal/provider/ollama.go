package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// OllamaProvider implements Provider for Ollama servers
type OllamaProvider struct {
	*BaseProvider
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(host, apiKey string) *OllamaProvider {
	return &OllamaProvider{BaseProvider: NewBaseProvider(TypeOllama, host, apiKey)}
}

// ListModels queries available models from the Ollama server.
// Tries the OpenAI-compatible endpoint first, falls back to the
// native /api/tags endpoint.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	models, err := p.ListModelsOpenAI(ctx)
	if err == nil && len(models) > 0 {
		return models, nil
	}

	return p.listModelsNative(ctx)
}

// listModelsNative queries the Ollama-specific /api/tags endpoint
func (p *OllamaProvider) listModelsNative(ctx context.Context) ([]string, error) {
	url := p.info.Host + "/api/tags"

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	// Ollama /api/tags response format
	var tagsResp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&tagsResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	models := make([]string, 0, len(tagsResp.Models))
	for _, m := range tagsResp.Models {
		models = append(models, m.Name)
	}

	p.info.Models = models
	return models, nil
}
