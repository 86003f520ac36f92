package provider

import (
	"context"
	"fmt"
)

// New creates a provider based on the vendor configuration.
// If vendor is empty or "auto", the provider type is auto-detected.
func New(ctx context.Context, host, vendor, apiKey string) (Provider, error) {
	if host == "" {
		return nil, fmt.Errorf("host is required")
	}

	providerType := ParseVendor(vendor)
	if providerType == TypeUnknown {
		providerType = Detect(ctx, host)
	}

	return NewWithType(providerType, host, apiKey)
}

// NewWithType creates a provider with an explicit type (no auto-detection)
func NewWithType(providerType Type, host, apiKey string) (Provider, error) {
	if host == "" {
		return nil, fmt.Errorf("host is required")
	}

	switch providerType {
	case TypeOllama:
		return NewOllamaProvider(host, apiKey), nil
	default:
		// OpenAI-compatible is the most widely supported surface
		return NewOpenAICompatProvider(host, apiKey), nil
	}
}
