package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitishsanghi/robometrics/model"
)

func TestNewStreamRejectsMismatchedColumnLength(t *testing.T) {
	_, err := model.NewStream("s", []float64{0, 1, 2}, map[string][]any{"x": {1.0, 2.0}})
	require.Error(t, err)
}

func TestNewStreamRejectsNonMonotonicTime(t *testing.T) {
	_, err := model.NewStream("s", []float64{0, 2, 1}, nil)
	require.Error(t, err)
}

func TestStreamSliceLeftExcludesUpperBound(t *testing.T) {
	s, err := model.NewStream("s", []float64{0, 1, 2, 3}, map[string][]any{"x": {0.0, 1.0, 2.0, 3.0}})
	require.NoError(t, err)

	sliced, err := s.Slice(1, 3, "left")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, sliced.T)
}

func TestStreamSliceBothIncludesUpperBound(t *testing.T) {
	s, err := model.NewStream("s", []float64{0, 1, 2, 3}, map[string][]any{"x": {0.0, 1.0, 2.0, 3.0}})
	require.NoError(t, err)

	sliced, err := s.Slice(1, 3, "both")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, sliced.T)
}

func TestStreamSliceRejectsInvalidInclusive(t *testing.T) {
	s, err := model.NewStream("s", []float64{0, 1}, nil)
	require.NoError(t, err)
	_, err = s.Slice(0, 1, "right")
	require.Error(t, err)
}
