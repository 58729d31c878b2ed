package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitishsanghi/robometrics/model"
)

func TestNewScenarioRejectsNonPositiveDuration(t *testing.T) {
	_, err := model.NewScenario("sc1", "run1", 5.0, 5.0, "test", nil, nil)
	require.Error(t, err)

	_, err = model.NewScenario("sc1", "run1", 5.0, 2.0, "test", nil, nil)
	require.Error(t, err)
}

func TestNewScenarioDefaultsNilTags(t *testing.T) {
	sc, err := model.NewScenario("sc1", "run1", 0.0, 1.0, "test", nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, sc.Tags)
	assert.Empty(t, sc.Tags)
}

func TestScenarioJSONKeyOrder(t *testing.T) {
	sc, err := model.NewScenario("sc1", "run1", 0.0, 1.0, "test", map[string]string{"a": "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "sc1", sc.ScenarioID)
	assert.Equal(t, "run1", sc.RunID)

	data, err := json.Marshal(sc)
	require.NoError(t, err)
	assert.Equal(t, `{"eval_profile":null,"intent":"test","run_id":"run1","scenario_id":"sc1","t0":0,"t1":1,"tags":{"a":"b"}}`, string(data))
}
