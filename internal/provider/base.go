package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	defaultConnectTimeout = 10 * time.Second

	// availabilityTimeout bounds the reachability probe.
	availabilityTimeout = 2 * time.Second
)

// BaseProvider contains common provider functionality
type BaseProvider struct {
	info       *Info
	httpClient *http.Client
	apiKey     string
}

// NewBaseProvider creates a base provider with common setup
func NewBaseProvider(providerType Type, host, apiKey string) *BaseProvider {
	host = strings.TrimSuffix(host, "/")

	return &BaseProvider{
		info: &Info{
			Type: providerType,
			Name: providerType.DisplayName(),
			Host: host,
		},
		httpClient: newHTTPClient(),
		apiKey:     apiKey,
	}
}

// Info returns provider metadata
func (p *BaseProvider) Info() *Info {
	return p.info
}

// SetModel sets the active model
func (p *BaseProvider) SetModel(model string) {
	p.info.Model = model
}

// client returns an OpenAI-compatible client for the server
func (p *BaseProvider) client() *openai.Client {
	config := openai.DefaultConfig(p.apiKey)
	config.BaseURL = p.info.Host + "/v1"
	config.HTTPClient = p.httpClient
	return openai.NewClientWithConfig(config)
}

// Generate sends one blocking chat completion request and returns the
// full response text. Timeout and cancellation come from ctx.
func (p *BaseProvider) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	if p.info.Model == "" {
		return "", fmt.Errorf("no model selected")
	}

	var messages []openai.ChatCompletionMessage
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := p.client().CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    p.info.Model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("server returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// IsAvailable reports whether the server responds at all.
func (p *BaseProvider) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, availabilityTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", p.info.Host, nil)
	if err != nil {
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 500
}

// ListModelsOpenAI queries the /v1/models endpoint (OpenAI-compatible)
func (p *BaseProvider) ListModelsOpenAI(ctx context.Context) ([]string, error) {
	url := p.info.Host + "/v1/models"

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var modelsResp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	models := make([]string, 0, len(modelsResp.Data))
	for _, m := range modelsResp.Data {
		models = append(models, m.ID)
	}

	p.info.Models = models
	return models, nil
}

// newHTTPClient creates an HTTP client for LLM API requests.
// Client-level timeout is disabled (0) because generation can take
// tens of seconds; timeout is controlled via context instead.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 0,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   defaultConnectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
