// ABOUTME: Tests for strict model reply decoding
// ABOUTME: Covers code fence stripping, unknown fields, and error typing
package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizdesk/bizdesk/models"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"fenced", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced with language", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.input))
		})
	}
}

func TestDecodeStrictRejectsUnknownFields(t *testing.T) {
	var reply adReply
	err := decodeStrict(`{"headline":"H","body":"B","call_to_action":"C","extra":"nope"}`, &reply)
	require.Error(t, err)
}

func TestDecodeStrictRejectsTrailingData(t *testing.T) {
	var reply adReply
	err := decodeStrict(`{"headline":"H","body":"B","call_to_action":"C"} garbage`, &reply)
	require.Error(t, err)
}

func TestDecodeStrictAcceptsFencedReply(t *testing.T) {
	var reply adReply
	err := decodeStrict("```json\n{\"headline\":\"H\",\"body\":\"B\",\"call_to_action\":\"C\"}\n```", &reply)
	require.NoError(t, err)
	assert.Equal(t, "H", reply.Headline)
	assert.Equal(t, "C", reply.CallToAct)
}

func TestParseErrorIsDistinctFromTransportError(t *testing.T) {
	parseErr := &ParseError{Raw: "not json", Err: errors.New("invalid character")}

	var target *ParseError
	assert.True(t, errors.As(parseErr, &target))
	assert.NotErrorIs(t, parseErr, ErrEmptyResponse)
	assert.Contains(t, parseErr.Error(), "malformed model reply")
}

func TestPrioritySuggestionValidation(t *testing.T) {
	valid := PrioritySuggestion{Title: "Call Dana", Priority: models.PriorityHigh}
	assert.True(t, valid.Valid())

	assert.False(t, PrioritySuggestion{Title: "", Priority: models.PriorityHigh}.Valid())
	assert.False(t, PrioritySuggestion{Title: "X", Priority: "urgent"}.Valid())
	assert.False(t, PrioritySuggestion{Title: "   ", Priority: models.PriorityLow}.Valid())
}

func TestPsychologyProfileString(t *testing.T) {
	p := PsychologyProfile{
		Archetype:  "Analytical buyer",
		Motivators: []string{"ROI", "low risk"},
		Approach:   "Lead with numbers",
	}
	s := p.String()
	assert.Contains(t, s, "Analytical buyer")
	assert.Contains(t, s, "ROI, low risk")
	assert.Contains(t, s, "Lead with numbers")
}

func TestNewClientWithoutKey(t *testing.T) {
	_, err := NewClient(t.Context(), "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
