// Package demolog implements the DemoLog adapter: reading a directory
// containing meta.json, run.parquet, and events.parquet into a Run.
package demolog

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/nitishsanghi/robometrics/model"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

// row mirrors run.parquet's fixed wide-table schema: one column per
// required signal, plus the optional obstacle clearance column.
type row struct {
	T               float64  `parquet:"name=t, type=DOUBLE"`
	PoseX           float64  `parquet:"name=state_pose2d_x, type=DOUBLE"`
	PoseY           float64  `parquet:"name=state_pose2d_y, type=DOUBLE"`
	PoseYaw         float64  `parquet:"name=state_pose2d_yaw, type=DOUBLE"`
	TwistVX         float64  `parquet:"name=state_twist2d_vx, type=DOUBLE"`
	TwistVY         float64  `parquet:"name=state_twist2d_vy, type=DOUBLE"`
	TwistWZ         float64  `parquet:"name=state_twist2d_wz, type=DOUBLE"`
	CommandVX       float64  `parquet:"name=command_twist2d_vx, type=DOUBLE"`
	CommandVY       float64  `parquet:"name=command_twist2d_vy, type=DOUBLE"`
	CommandWZ       float64  `parquet:"name=command_twist2d_wz, type=DOUBLE"`
	GoalX           float64  `parquet:"name=mission_goal2d_x, type=DOUBLE"`
	GoalY           float64  `parquet:"name=mission_goal2d_y, type=DOUBLE"`
	GoalYaw         float64  `parquet:"name=mission_goal2d_yaw, type=DOUBLE"`
	Status          string   `parquet:"name=mission_status, type=BYTE_ARRAY, convertedtype=UTF8"`
	ObstacleMinDist *float64 `parquet:"name=obstacle_min_distance, type=DOUBLE, repetitiontype=OPTIONAL"`
}

type eventRow struct {
	T         float64 `parquet:"name=t, type=DOUBLE"`
	Name      string  `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	AttrsJSON string  `parquet:"name=attrs_json, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// Read loads a DemoLog run directory into a Run and a SchemaReport.
// Missing required files or columns are fatal (SchemaReport errors);
// missing optional columns or non-finite numeric values are warnings.
func Read(dir string) (*model.Run, *model.SchemaReport, error) {
	report := model.NewSchemaReport()

	meta := loadMeta(dir, report)
	runID, _ := meta["run_id"].(string)
	if runID == "" {
		runID = filepath.Base(dir)
	}

	rows, hasRun := loadRunParquet(dir, report)
	events := loadEventsParquet(dir, report)

	streams := map[string]*model.Stream{}
	if hasRun {
		streams = buildStreams(rows, report)
	}

	run := &model.Run{RunID: runID, Meta: meta, Streams: streams, Events: events}
	return run, report, nil
}

func loadMeta(dir string, report *model.SchemaReport) map[string]any {
	path := filepath.Join(dir, "meta.json")
	data, err := os.ReadFile(path)
	if err != nil {
		report.AddError("meta.json not found")
		return map[string]any{}
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		report.AddError(fmt.Sprintf("meta.json is invalid JSON: %s", err))
		return map[string]any{}
	}
	return payload
}

func loadRunParquet(dir string, report *model.SchemaReport) ([]row, bool) {
	path := filepath.Join(dir, "run.parquet")
	if _, err := os.Stat(path); err != nil {
		report.AddError("run.parquet not found")
		return nil, false
	}

	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		report.AddError(fmt.Sprintf("run.parquet could not be read: %s", err))
		return nil, false
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(row), 4)
	if err != nil {
		report.AddError(fmt.Sprintf("run.parquet could not be read: %s", err))
		return nil, false
	}
	defer pr.ReadStop()

	n := int(pr.GetNumRows())
	rows := make([]row, n)
	if n > 0 {
		if err := pr.Read(&rows); err != nil {
			report.AddError(fmt.Sprintf("run.parquet could not be read: %s", err))
			return nil, false
		}
	}

	return rows, true
}

func loadEventsParquet(dir string, report *model.SchemaReport) []model.Event {
	path := filepath.Join(dir, "events.parquet")
	if _, err := os.Stat(path); err != nil {
		report.AddError("events.parquet not found")
		return nil
	}

	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		report.AddError(fmt.Sprintf("events.parquet could not be read: %s", err))
		return nil
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(eventRow), 4)
	if err != nil {
		report.AddError(fmt.Sprintf("events.parquet could not be read: %s", err))
		return nil
	}
	defer pr.ReadStop()

	n := int(pr.GetNumRows())
	rows := make([]eventRow, n)
	if n > 0 {
		if err := pr.Read(&rows); err != nil {
			report.AddError(fmt.Sprintf("events.parquet could not be read: %s", err))
			return nil
		}
	}

	events := make([]model.Event, 0, len(rows))
	for _, r := range rows {
		attrs := map[string]any{}
		if r.AttrsJSON != "" {
			if err := json.Unmarshal([]byte(r.AttrsJSON), &attrs); err != nil {
				report.AddWarning(fmt.Sprintf("event at t=%v attrs could not be parsed as JSON", r.T))
				attrs = map[string]any{}
			}
		}
		events = append(events, model.Event{T: r.T, Name: r.Name, Attrs: attrs})
	}
	return events
}

func buildStreams(rows []row, report *model.SchemaReport) map[string]*model.Stream {
	n := len(rows)
	t := make([]float64, n)
	for i, r := range rows {
		t[i] = r.T
	}

	streams := map[string]*model.Stream{}

	add := func(name string, data map[string][]any) {
		s, err := model.NewStream(name, t, data)
		if err != nil {
			report.AddError(err.Error())
			return
		}
		streams[name] = s
	}

	poseX, poseY, poseYaw := make([]any, n), make([]any, n), make([]any, n)
	twistVX, twistVY, twistWZ := make([]any, n), make([]any, n), make([]any, n)
	cmdVX, cmdVY, cmdWZ := make([]any, n), make([]any, n), make([]any, n)
	goalX, goalY, goalYaw := make([]any, n), make([]any, n), make([]any, n)
	status := make([]any, n)
	minDist := make([]any, n)
	haveMinDist := false

	nonFinite := map[string]bool{}
	for i, r := range rows {
		poseX[i], poseY[i], poseYaw[i] = r.PoseX, r.PoseY, r.PoseYaw
		twistVX[i], twistVY[i], twistWZ[i] = r.TwistVX, r.TwistVY, r.TwistWZ
		cmdVX[i], cmdVY[i], cmdWZ[i] = r.CommandVX, r.CommandVY, r.CommandWZ
		goalX[i], goalY[i], goalYaw[i] = r.GoalX, r.GoalY, r.GoalYaw
		status[i] = r.Status
		if r.ObstacleMinDist != nil {
			haveMinDist = true
			minDist[i] = *r.ObstacleMinDist
			if math.IsNaN(*r.ObstacleMinDist) || math.IsInf(*r.ObstacleMinDist, 0) {
				nonFinite["obstacle.min_distance"] = true
			}
		} else {
			minDist[i] = nil
		}
		for label, v := range map[string]float64{
			"state.pose2d.x": r.PoseX, "state.pose2d.y": r.PoseY, "state.pose2d.yaw": r.PoseYaw,
			"state.twist2d.vx": r.TwistVX, "state.twist2d.vy": r.TwistVY, "state.twist2d.wz": r.TwistWZ,
			"command.twist2d.vx": r.CommandVX, "command.twist2d.vy": r.CommandVY, "command.twist2d.wz": r.CommandWZ,
			"mission.goal2d.x": r.GoalX, "mission.goal2d.y": r.GoalY, "mission.goal2d.yaw": r.GoalYaw,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				nonFinite[label] = true
			}
		}
	}
	for label := range nonFinite {
		report.AddWarning(fmt.Sprintf("%s column contains non-finite values", label))
	}

	add("state.pose2d", map[string][]any{"x": poseX, "y": poseY, "yaw": poseYaw})
	add("state.twist2d", map[string][]any{"vx": twistVX, "vy": twistVY, "wz": twistWZ})
	add("command.twist2d", map[string][]any{"vx": cmdVX, "vy": cmdVY, "wz": cmdWZ})
	add("mission.goal2d", map[string][]any{"x": goalX, "y": goalY, "yaw": goalYaw})
	add("mission.status", map[string][]any{"status": status})
	if haveMinDist {
		add("obstacle", map[string][]any{"min_distance": minDist})
	} else if n > 0 {
		report.AddWarning("run.parquet missing optional column: obstacle.min_distance")
	}

	return streams
}
