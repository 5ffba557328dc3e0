package subagent

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateNumbersInCompletionOrder(t *testing.T) {
	outcomes := []Outcome{
		{Name: "broken", Kind: OutcomeFailure, Err: errors.New("no model")},
		{Name: "first", Kind: OutcomeSuccess, Report: "A"},
		{Name: "second", Kind: OutcomeSuccess, Report: "B"},
	}
	var display strings.Builder

	out, err := Aggregate(outcomes, &display)
	require.NoError(t, err)

	assert.Equal(t, "=== Agent 1 Output ===\nA\n\n=== Agent 2 Output ===\nB\n\n", out)
	lines := strings.Split(strings.TrimSpace(display.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `Agent "broken" failed: no model`)
}

func TestAggregateDropsEmptySuccess(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []Outcome
		want     string
	}{
		{
			name:     "empty",
			outcomes: []Outcome{{Kind: OutcomeSuccess, Report: ""}},
			want:     "",
		},
		{
			name:     "whitespace",
			outcomes: []Outcome{{Kind: OutcomeSuccess, Report: "   "}},
			want:     "",
		},
		{
			name: "does not consume a number",
			outcomes: []Outcome{
				{Kind: OutcomeSuccess, Report: " \n"},
				{Kind: OutcomeSuccess, Report: "real"},
			},
			want: "=== Agent 1 Output ===\nreal\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var display strings.Builder
			out, err := Aggregate(tt.outcomes, &display)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.Empty(t, display.String())
		})
	}
}

func TestAggregateDistinguishesCrash(t *testing.T) {
	var display strings.Builder
	out, err := Aggregate([]Outcome{
		{Name: "a", Kind: OutcomeCrashed, Err: errors.New("panic: boom")},
		{Name: "b", Kind: OutcomeFailure, Err: errors.New("timeout")},
	}, &display)
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.Contains(t, display.String(), `Agent "a" crashed unexpectedly: panic: boom`)
	assert.Contains(t, display.String(), `Agent "b" failed: timeout`)
}

func TestAggregateDisplayError(t *testing.T) {
	_, err := Aggregate([]Outcome{{Name: "a", Kind: OutcomeFailure, Err: errors.New("x")}}, failingWriter{})
	assert.ErrorIs(t, err, errWrite)
}

func TestOutcomeKindString(t *testing.T) {
	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "failure", OutcomeFailure.String())
	assert.Equal(t, "crashed", OutcomeCrashed.String())
	assert.Equal(t, "unknown", OutcomeKind(9).String())
}
