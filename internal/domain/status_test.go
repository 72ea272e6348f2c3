package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/theusc6/global-impact-platform/pkg/domain-errors"
)

var allStatuses = []DonationStatus{StatusPending, StatusProcessing, StatusCompleted, StatusFailed}

func TestTransition_Table(t *testing.T) {
	legal := map[DonationStatus][]DonationStatus{
		StatusPending:    {StatusProcessing, StatusFailed},
		StatusProcessing: {StatusCompleted, StatusFailed},
		StatusCompleted:  {},
		StatusFailed:     {},
	}

	for _, current := range allStatuses {
		allowed := map[DonationStatus]bool{}
		for _, target := range legal[current] {
			allowed[target] = true
		}

		for _, requested := range allStatuses {
			got, err := Transition(current, requested)
			if allowed[requested] {
				require.NoError(t, err, "%s -> %s should be legal", current, requested)
				assert.Equal(t, requested, got)
			} else {
				require.Error(t, err, "%s -> %s should be illegal", current, requested)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeIllegalTransition))
				assert.Contains(t, err.Error(), string(current))
				assert.Contains(t, err.Error(), string(requested))
			}
		}
	}
}

func TestTransition_TerminalRejectsNoOp(t *testing.T) {
	// Terminal states accept no further transitions, including self-moves.
	_, err := Transition(StatusCompleted, StatusCompleted)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeIllegalTransition))

	_, err = Transition(StatusFailed, StatusFailed)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeIllegalTransition))
}

func TestTransition_NoSkipToTerminal(t *testing.T) {
	_, err := Transition(StatusPending, StatusCompleted)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeIllegalTransition))
}

func TestDonationStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
}

func TestParseDonationStatus(t *testing.T) {
	for _, s := range allStatuses {
		got, err := ParseDonationStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseDonationStatus("REFUNDED")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
