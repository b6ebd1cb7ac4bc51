// ABOUTME: Strict decoding of model replies into typed results
// ABOUTME: Separates malformed-reply errors from transport failures
package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError means the model answered but the reply did not match the
// expected shape. It is distinct from transport errors so callers can
// decide whether to retry or to surface the raw text.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ai: malformed model reply: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// stripCodeFence removes a surrounding markdown code fence if present.
// Models occasionally wrap JSON replies even in JSON response mode.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// decodeStrict unmarshals text into out, rejecting unknown fields and
// trailing garbage.
func decodeStrict(text string, out any) error {
	dec := json.NewDecoder(strings.NewReader(stripCodeFence(text)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data after JSON value")
	}
	return nil
}
