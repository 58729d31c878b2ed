package ioartifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nitishsanghi/robometrics/model"
)

// WriteRun persists run under outDir/run.RunID, writing meta.json,
// schema_report.json, streams.parquet, and events.parquet. It returns the
// run's directory.
func WriteRun(run *model.Run, report *model.SchemaReport, outDir string) (string, error) {
	runDir := filepath.Join(outDir, run.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("create run directory: %w", err)
	}

	metaPayload := map[string]any{
		"run_id":       run.RunID,
		"spec_version": model.SpecVersion,
		"meta":         run.Meta,
	}
	if err := writeJSON(filepath.Join(runDir, "meta.json"), metaPayload); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "schema_report.json"), report); err != nil {
		return "", err
	}

	streamRows, err := streamsToRows(run)
	if err != nil {
		return "", err
	}
	if err := writeStreamRows(filepath.Join(runDir, "streams.parquet"), streamRows); err != nil {
		return "", err
	}

	eventRows, err := eventsToRows(run.Events)
	if err != nil {
		return "", err
	}
	if err := writeEventRows(filepath.Join(runDir, "events.parquet"), eventRows); err != nil {
		return "", err
	}

	return runDir, nil
}

// ReadRun loads a run directory previously written by WriteRun.
func ReadRun(runDir string) (*model.Run, *model.SchemaReport, error) {
	var metaPayload struct {
		RunID string         `json:"run_id"`
		Meta  map[string]any `json:"meta"`
	}
	if err := readJSON(filepath.Join(runDir, "meta.json"), &metaPayload); err != nil {
		return nil, nil, err
	}

	streamRows, err := readStreamRows(filepath.Join(runDir, "streams.parquet"))
	if err != nil {
		return nil, nil, err
	}
	streams, err := rowsToStreams(streamRows)
	if err != nil {
		return nil, nil, err
	}

	eventRows, err := readEventRows(filepath.Join(runDir, "events.parquet"))
	if err != nil {
		return nil, nil, err
	}
	events, err := rowsToEvents(eventRows)
	if err != nil {
		return nil, nil, err
	}

	var report model.SchemaReport
	if err := readJSON(filepath.Join(runDir, "schema_report.json"), &report); err != nil {
		return nil, nil, err
	}

	meta := metaPayload.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	run := &model.Run{RunID: metaPayload.RunID, Meta: meta, Streams: streams, Events: events}
	return run, &report, nil
}

func streamsToRows(run *model.Run) ([]streamRow, error) {
	names := make([]string, 0, len(run.Streams))
	for name := range run.Streams {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows []streamRow
	for _, name := range names {
		stream := run.Streams[name]
		cols := make([]string, 0, len(stream.Data))
		for col := range stream.Data {
			cols = append(cols, col)
		}
		sort.Strings(cols)

		for idx, t := range stream.T {
			cell := make(map[string]any, len(cols))
			for _, col := range cols {
				cell[col] = stream.Data[col][idx]
			}
			dataJSON, err := json.Marshal(cell)
			if err != nil {
				return nil, fmt.Errorf("encode data_json for stream %q: %w", name, err)
			}
			rows = append(rows, streamRow{Stream: name, T: t, DataJSON: string(dataJSON)})
		}
	}
	return rows, nil
}

func rowsToStreams(rows []streamRow) (map[string]*model.Stream, error) {
	streams := map[string]*model.Stream{}
	order := []string{}
	grouped := map[string][]streamRow{}
	for _, row := range rows {
		if _, seen := grouped[row.Stream]; !seen {
			order = append(order, row.Stream)
		}
		grouped[row.Stream] = append(grouped[row.Stream], row)
	}

	for _, name := range order {
		group := grouped[name]
		t := make([]float64, len(group))
		data := map[string][]any{}
		for i, row := range group {
			t[i] = row.T
			var cell map[string]any
			if err := json.Unmarshal([]byte(row.DataJSON), &cell); err != nil {
				return nil, fmt.Errorf("decode data_json for stream %q: %w", name, err)
			}
			for k, v := range cell {
				data[k] = append(data[k], v)
			}
		}
		stream, err := model.NewStream(name, t, data)
		if err != nil {
			return nil, err
		}
		streams[name] = stream
	}
	return streams, nil
}

func eventsToRows(events []model.Event) ([]eventRow, error) {
	rows := make([]eventRow, 0, len(events))
	for _, ev := range events {
		attrsJSON, err := json.Marshal(ev.Attrs)
		if err != nil {
			return nil, fmt.Errorf("encode attrs_json: %w", err)
		}
		rows = append(rows, eventRow{T: ev.T, Name: ev.Name, AttrsJSON: string(attrsJSON)})
	}
	return rows, nil
}

func rowsToEvents(rows []eventRow) ([]model.Event, error) {
	events := make([]model.Event, 0, len(rows))
	for _, row := range rows {
		attrs := map[string]any{}
		if row.AttrsJSON != "" {
			if err := json.Unmarshal([]byte(row.AttrsJSON), &attrs); err != nil {
				return nil, fmt.Errorf("decode attrs_json: %w", err)
			}
		}
		events = append(events, model.Event{T: row.T, Name: row.Name, Attrs: attrs})
	}
	return events, nil
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
