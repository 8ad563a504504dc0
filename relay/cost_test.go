package relay

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(""); got != 0 {
		t.Fatalf("empty string should estimate 0 tokens, got %d", got)
	}
	if got := EstimateTokens(strings.Repeat("a", 400)); got != 100 {
		t.Fatalf("400 chars should estimate 100 tokens, got %d", got)
	}
}

func TestEstimateCostNonNegative(t *testing.T) {
	if got := EstimateCost("gpt-4o-mini", 0, 0); got != 0 {
		t.Fatalf("zero tokens should cost 0, got %f", got)
	}
	got := EstimateCost("gpt-4o-mini", 1000, 500)
	if got <= 0 {
		t.Fatalf("expected positive cost, got %f", got)
	}
}

func TestEstimateCostUnknownModelUsesDefault(t *testing.T) {
	known := EstimateCost("gpt-4o-mini", 1000, 500)
	unknown := EstimateCost("some-future-model", 1000, 500)
	if known != unknown {
		t.Fatalf("unknown model should use the default price: %f vs %f", known, unknown)
	}
}

func TestEstimateCostScalesWithOutput(t *testing.T) {
	small := EstimateCost("gpt-4o", 100, 100)
	large := EstimateCost("gpt-4o", 100, 1000)
	if large <= small {
		t.Fatalf("more output tokens must not cost less: %f vs %f", small, large)
	}
}
