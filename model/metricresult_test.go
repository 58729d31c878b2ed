package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitishsanghi/robometrics/model"
)

func TestNewMetricResultRejectsInvalidDirection(t *testing.T) {
	_, err := model.NewMetricResult(1.0, nil, "sideways", true, nil)
	require.Error(t, err)
}

func TestNewMetricResultAcceptsKnownDirections(t *testing.T) {
	for _, dir := range []string{"higher", "lower", "neutral"} {
		res, err := model.NewMetricResult(1.0, nil, dir, true, nil)
		require.NoError(t, err)
		assert.Equal(t, dir, res.Direction)
	}
}

func TestInvalidBuildsFailureResult(t *testing.T) {
	res := model.Invalid("higher", "insufficient samples")
	assert.False(t, res.Valid)
	assert.Nil(t, res.Value)
	assert.Equal(t, "higher", res.Direction)
	require.NotNil(t, res.Notes)
	assert.Equal(t, "insufficient samples", *res.Notes)
}
