package relay

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/harshgoy877/travdif-bot-backend/openai"
)

// Category is the closed set of vendor failure classes. The HTTP layer maps
// each category to a fixed user-facing string; the underlying detail is only
// logged.
type Category string

const (
	CategoryAuth    Category = "auth"
	CategoryQuota   Category = "quota"
	CategoryModel   Category = "model"
	CategoryTimeout Category = "timeout"
	CategoryUnknown Category = "unknown"
)

// Classify maps a relay error to its category. Status codes and vendor error
// types are preferred; message substrings are a last resort for transport
// errors with no structure.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return CategoryAuth
		case http.StatusTooManyRequests:
			return CategoryQuota
		case http.StatusNotFound:
			return CategoryModel
		}
		if apiErr.Code == "model_not_found" || strings.Contains(apiErr.Message, "model") {
			return CategoryModel
		}
		if apiErr.Type == "insufficient_quota" {
			return CategoryQuota
		}
		return CategoryUnknown
	}

	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		switch genaiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return CategoryAuth
		case http.StatusTooManyRequests:
			return CategoryQuota
		case http.StatusNotFound:
			return CategoryModel
		}
		return CategoryUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CategoryTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"):
		return CategoryAuth
	case strings.Contains(msg, "quota"), strings.Contains(msg, "rate limit"):
		return CategoryQuota
	case strings.Contains(msg, "model"):
		return CategoryModel
	case strings.Contains(msg, "timeout"):
		return CategoryTimeout
	}
	return CategoryUnknown
}
