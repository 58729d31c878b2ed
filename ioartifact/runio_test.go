package ioartifact_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitishsanghi/robometrics/ioartifact"
	"github.com/nitishsanghi/robometrics/model"
)

func writeJSONForTest(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func buildRun(t *testing.T) (*model.Run, *model.SchemaReport) {
	t.Helper()
	stream, err := model.NewStream("state.pose2d", []float64{0, 1},
		map[string][]any{"x": {0.0, 1.0}, "y": {0.0, 0.0}})
	require.NoError(t, err)
	run := &model.Run{
		RunID:   "run-1",
		Meta:    map[string]any{"source": "test"},
		Streams: map[string]*model.Stream{"state.pose2d": stream},
		Events:  []model.Event{{T: 0.5, Name: "obstacle_detected", Attrs: map[string]any{"severity": "high"}}},
	}
	return run, model.NewSchemaReport()
}

func TestWriteThenReadRunRoundTrips(t *testing.T) {
	run, report := buildRun(t)
	outDir := t.TempDir()

	runDir, err := ioartifact.WriteRun(run, report, outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "run-1"), runDir)

	got, _, err := ioartifact.ReadRun(runDir)
	require.NoError(t, err)
	assert.Equal(t, run.RunID, got.RunID)
	require.Contains(t, got.Streams, "state.pose2d")
	assert.Equal(t, []float64{0, 1}, got.Streams["state.pose2d"].T)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "obstacle_detected", got.Events[0].Name)
}

func TestScenarioSetFileNameSanitizesID(t *testing.T) {
	name := ioartifact.ScenarioSetFileName("set/with weird:chars")
	assert.Equal(t, "set_with_weird_chars.scset.json", name)
}

func TestWriteReadScenarioSetRejectsWrongSpecVersion(t *testing.T) {
	set, err := model.NewScenarioSet("set-1", "2026-01-01T00:00:00Z", nil, nil)
	require.NoError(t, err)
	outDir := t.TempDir()

	path, err := ioartifact.WriteScenarioSet(set, outDir)
	require.NoError(t, err)

	_, err = ioartifact.ReadScenarioSet(path)
	require.NoError(t, err)

	set.SpecVersion = "9.9.9"
	badPath := filepath.Join(outDir, "bad.scset.json")
	require.NoError(t, writeJSONForTest(badPath, set))
	_, err = ioartifact.ReadScenarioSet(badPath)
	require.Error(t, err)
}
