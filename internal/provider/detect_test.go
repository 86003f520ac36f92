package provider

import "testing"

func TestParseVendor(t *testing.T) {
	cases := []struct {
		vendor string
		want   Type
	}{
		{"ollama", TypeOllama},
		{"Ollama", TypeOllama},
		{"vllm", TypeOpenAICompat},
		{"llama.cpp", TypeOpenAICompat},
		{"llamacpp", TypeOpenAICompat},
		{"llama", TypeOpenAICompat},
		{"openai", TypeOpenAICompat},
		{"openai-compat", TypeOpenAICompat},
		{"", TypeUnknown},
		{"auto", TypeUnknown},
		{"something-else", TypeUnknown},
	}

	for _, c := range cases {
		if got := ParseVendor(c.vendor); got != c.want {
			t.Errorf("ParseVendor(%q) = %v, want %v", c.vendor, got, c.want)
		}
	}
}

func TestTypeDisplayName(t *testing.T) {
	if TypeOllama.DisplayName() != "Ollama" {
		t.Errorf("Unexpected display name: %s", TypeOllama.DisplayName())
	}
	if TypeOpenAICompat.DisplayName() != "OpenAI-compatible" {
		t.Errorf("Unexpected display name: %s", TypeOpenAICompat.DisplayName())
	}
	if TypeUnknown.DisplayName() != "Unknown" {
		t.Errorf("Unexpected display name: %s", TypeUnknown.DisplayName())
	}
}
