package model

// Run is a single recording: metadata, time-aligned streams, and a sparse
// sequence of events.
// Field order tracks sorted json tag names (events, meta, run_id, streams).
type Run struct {
	Events  []Event            `json:"events"`
	Meta    map[string]any     `json:"meta"`
	RunID   string             `json:"run_id"`
	Streams map[string]*Stream `json:"streams"`
}

// GetStream returns the named stream, or nil if the run has none by that
// name.
func (r *Run) GetStream(name string) *Stream {
	return r.Streams[name]
}

// FilterEvents returns events matching the given name (if non-nil) and
// falling within [t0, t1) (if the bounds are non-nil). Any of the three
// filters may be omitted independently.
func (r *Run) FilterEvents(name *string, t0, t1 *float64) []Event {
	var out []Event
	for _, e := range r.Events {
		if name != nil && e.Name != *name {
			continue
		}
		if t0 != nil && e.T < *t0 {
			continue
		}
		if t1 != nil && e.T >= *t1 {
			continue
		}
		out = append(out, e)
	}
	return out
}

// TimeBounds returns the run's time envelope as the min/max over the union
// of all stream sample times. ok is false when no stream has any sample,
// in which case callers must not clamp to the envelope.
func (r *Run) TimeBounds() (tmin, tmax float64, ok bool) {
	first := true
	for _, s := range r.Streams {
		for _, t := range s.T {
			if first {
				tmin, tmax = t, t
				first = false
				continue
			}
			if t < tmin {
				tmin = t
			}
			if t > tmax {
				tmax = t
			}
		}
	}
	return tmin, tmax, !first
}
