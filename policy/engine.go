// Package policy evaluates model-switch requests against a rego allow-list.
package policy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.model_policy.decision"),
		rego.Module("model_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the model policy. Input is a map with a "model" key.
// Returns "allow" or "block".
func (e *Engine) Evaluate(ctx context.Context, input any) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return "block", nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return "block", nil
}

const policyTemplate = `package model_policy

import rego.v1

default decision := "block"

allowed_models := %s

decision := "allow" if {
	input.model in allowed_models
}
`

// AllowListPolicy builds the rego module for a fixed model allow-list.
func AllowListPolicy(models []string) string {
	if models == nil {
		models = []string{}
	}
	list, _ := json.Marshal(models)
	return fmt.Sprintf(policyTemplate, list)
}
