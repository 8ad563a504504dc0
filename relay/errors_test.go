package relay

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/harshgoy877/travdif-bot-backend/openai"
)

func TestClassifyAPIErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Category
	}{
		{"unauthorized", &openai.APIError{StatusCode: http.StatusUnauthorized}, CategoryAuth},
		{"forbidden", &openai.APIError{StatusCode: http.StatusForbidden}, CategoryAuth},
		{"rate limited", &openai.APIError{StatusCode: http.StatusTooManyRequests}, CategoryQuota},
		{"not found", &openai.APIError{StatusCode: http.StatusNotFound}, CategoryModel},
		{"model code", &openai.APIError{StatusCode: http.StatusBadRequest, Code: "model_not_found"}, CategoryModel},
		{"quota type", &openai.APIError{StatusCode: http.StatusBadRequest, Type: "insufficient_quota"}, CategoryQuota},
		{"other vendor error", &openai.APIError{StatusCode: http.StatusBadRequest, Message: "bad input"}, CategoryUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Fatalf("Classify() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestClassifyWrappedAPIError(t *testing.T) {
	err := fmt.Errorf("failed to poll run: %w", &openai.APIError{StatusCode: http.StatusUnauthorized})
	if got := Classify(err); got != CategoryAuth {
		t.Fatalf("wrapped error lost its category: %s", got)
	}
}

func TestClassifyTimeouts(t *testing.T) {
	if got := Classify(context.DeadlineExceeded); got != CategoryTimeout {
		t.Fatalf("deadline exceeded should classify as timeout, got %s", got)
	}
}

func TestClassifySubstringFallback(t *testing.T) {
	cases := []struct {
		err  error
		want Category
	}{
		{fmt.Errorf("invalid api key provided"), CategoryAuth},
		{fmt.Errorf("you have exceeded your quota"), CategoryQuota},
		{fmt.Errorf("unknown model foo"), CategoryModel},
		{fmt.Errorf("request timeout while dialing"), CategoryTimeout},
		{fmt.Errorf("connection reset by peer"), CategoryUnknown},
	}

	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
