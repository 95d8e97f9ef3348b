// Package llm abstracts the generative-language providers that produce
// raw question sets. The model is treated as an untrusted, best-effort
// JSON emitter; callers must run its output through the quiz
// normalizer before persisting anything.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is a text-completion service returning structured JSON.
type Provider interface {
	// Generate sends the prompt and returns the model output. When the
	// request carries a Schema the provider asks for native structured
	// output and checks the result against the schema before returning.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request is a single-turn generation request. Quiz generation never
// needs conversation history.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Prompt is the user message, built by the generator package and
	// persisted verbatim in quiz history.
	Prompt string

	// Schema, when set, is the JSON Schema the response must conform to.
	Schema *Schema

	MaxTokens int

	// Temperature in [0,1]; zero means deterministic.
	Temperature float64
}

// Schema names a JSON Schema definition for structured output.
type Schema struct {
	Name       string
	Definition map[string]any
}

// Response is the model output.
type Response struct {
	// Content is the generated JSON (schema-checked when a Schema was
	// requested).
	Content json.RawMessage

	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}
