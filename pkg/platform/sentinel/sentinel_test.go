package sentinel

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedSentinelsStayDistinct(t *testing.T) {
	all := []error{ErrNotFound, ErrConflict, ErrInvalidState, ErrUnavailable}
	for i, want := range all {
		wrapped := fmt.Errorf("finalize application: %w", want)
		for j, other := range all {
			assert.Equal(t, i == j, errors.Is(wrapped, other), "%v vs %v", want, other)
		}
	}
}
