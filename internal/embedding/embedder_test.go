package embedding

import "testing"

func TestParseProvider(t *testing.T) {
	provider, err := ParseProvider("bedrock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider != ProviderBedrock {
		t.Errorf("expected bedrock, got %s", provider)
	}

	provider, err = ParseProvider("openai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider != ProviderOpenAI {
		t.Errorf("expected openai, got %s", provider)
	}
}

func TestParseProvider_Unknown(t *testing.T) {
	if _, err := ParseProvider("huggingface"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestEnsureDimension(t *testing.T) {
	vec := make([]float32, 1024)

	if err := EnsureDimension(vec, 1024); err != nil {
		t.Errorf("expected matching dimension to pass, got %v", err)
	}

	if err := EnsureDimension(vec, 768); err == nil {
		t.Error("expected mismatch error for 1024 vs 768")
	}
}
