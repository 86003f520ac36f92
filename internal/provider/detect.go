package provider

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

// Detect identifies the provider type from host URL.
// It first checks URL patterns, then probes endpoints if needed.
func Detect(ctx context.Context, host string) Type {
	host = strings.TrimSuffix(host, "/")
	hostLower := strings.ToLower(host)

	// 1. Check URL patterns first (fast path)
	if strings.Contains(hostLower, "ollama") {
		return TypeOllama
	}
	if strings.Contains(hostLower, "vllm") || strings.Contains(hostLower, "llama") {
		return TypeOpenAICompat
	}

	// 2. Probe endpoints to detect (slower path)
	// Ollama has a unique /api/tags endpoint
	if probeEndpoint(ctx, host, "/api/tags") {
		return TypeOllama
	}

	if probeEndpoint(ctx, host, "/v1/models") {
		return TypeOpenAICompat
	}

	return TypeUnknown
}

// probeEndpoint checks if an endpoint responds successfully
func probeEndpoint(ctx context.Context, host, path string) bool {
	client := &http.Client{
		Timeout: 5 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 3 * time.Second,
			}).DialContext,
		},
	}

	url := strings.TrimSuffix(host, "/") + path
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return false
	}

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	// 404 means the endpoint doesn't exist, but 401/403 means it
	// exists and needs auth
	return resp.StatusCode >= 200 && resp.StatusCode < 500 && resp.StatusCode != 404
}

// ParseVendor parses a vendor string from config into a Type.
// Returns TypeUnknown if the vendor should be auto-detected.
func ParseVendor(vendor string) Type {
	vendor = strings.ToLower(strings.TrimSpace(vendor))

	switch vendor {
	case "ollama":
		return TypeOllama
	case "vllm", "llama.cpp", "llamacpp", "llama", "openai", "openai-compat":
		return TypeOpenAICompat
	case "", "auto":
		return TypeUnknown
	default:
		return TypeUnknown
	}
}
