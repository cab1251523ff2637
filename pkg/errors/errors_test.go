package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"usage sentinel", ErrUsage, ExitUsage},
		{"wrapped usage", fmt.Errorf("parsing args: %w", ErrUsage), ExitUsage},
		{"app error", New(ErrCorpusLoad, ExitFailure, "no such directory"), ExitFailure},
		{"app error usage", Newf(ErrUsage, ExitUsage, "got %d arguments", 3), ExitUsage},
		{"unknown term", fmt.Errorf("scoring: %w", ErrUnknownTerm), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := Newf(ErrCorpusLoad, ExitFailure, "reading %s", "doc1.txt")
	assert.ErrorIs(t, err, ErrCorpusLoad)
	assert.Equal(t, "corpus load failed: reading doc1.txt", err.Error())
}
