package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("boom")
	err := WrapErrorf(orig, ErrBadParamInput, "edge %d", 3)

	assert.ErrorIs(t, err, orig)
	assert.Equal(t, ErrBadParamInput, ErrorCode(err))
	assert.Equal(t, "edge 3: boom", err.Error())

	wrapped := fmt.Errorf("outer: %w", err)
	assert.Equal(t, ErrBadParamInput, ErrorCode(wrapped))
	assert.Equal(t, ErrInternalServerError, ErrorCode(errors.New("plain")))
}

func TestReverseG(t *testing.T) {
	in := []int{1, 2, 3}
	out := ReverseG(in)
	assert.Equal(t, []int{3, 2, 1}, out)
	assert.Equal(t, []int{1, 2, 3}, in)
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-9)
}
