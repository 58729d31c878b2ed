package model

import "fmt"

// Stream is a named bundle of time-aligned columns. Column values are
// scalar JSON-like cells (float64, int64, bool, string, or nil) stored as
// `any` so a single column can, like the wire format, carry a tagged
// variant per cell.
// Field order matches the lexicographic key order the wire format
// requires: encoding/json emits struct fields in declaration order, so
// declaration order here must track the sorted json tag names (data, name,
// t) rather than any more natural grouping.
type Stream struct {
	Data map[string][]any `json:"data"`
	Name string           `json:"name"`
	T    []float64        `json:"t"`
}

// NewStream validates column-length agreement and time monotonicity before
// returning a Stream. Both are invariants: violating either is a
// programmer-facing error, never a silently-tolerated condition.
func NewStream(name string, t []float64, data map[string][]any) (*Stream, error) {
	s := &Stream{Name: name, T: t, Data: data}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stream) validate() error {
	for col, values := range s.Data {
		if len(values) != len(s.T) {
			return fmt.Errorf("stream column %q length %d != %d", col, len(values), len(s.T))
		}
	}
	for i := 1; i < len(s.T); i++ {
		if s.T[i] < s.T[i-1] {
			return fmt.Errorf("stream time values must be non-decreasing")
		}
	}
	return nil
}

// Slice returns a new Stream containing only the samples whose time falls
// within [t0, t1) when inclusive is "left" (the default, and the rule the
// engine always uses), or [t0, t1] when inclusive is "both". Any other
// value of inclusive is an invalid-argument error.
func (s *Stream) Slice(t0, t1 float64, inclusive string) (*Stream, error) {
	if inclusive == "" {
		inclusive = "left"
	}
	if inclusive != "left" && inclusive != "both" {
		return nil, fmt.Errorf("inclusive must be 'left' or 'both', got %q", inclusive)
	}

	var indices []int
	for i, ti := range s.T {
		switch inclusive {
		case "left":
			if t0 <= ti && ti < t1 {
				indices = append(indices, i)
			}
		case "both":
			if t0 <= ti && ti <= t1 {
				indices = append(indices, i)
			}
		}
	}

	slicedT := make([]float64, len(indices))
	for j, i := range indices {
		slicedT[j] = s.T[i]
	}
	slicedData := make(map[string][]any, len(s.Data))
	for col, values := range s.Data {
		sliced := make([]any, len(indices))
		for j, i := range indices {
			sliced[j] = values[i]
		}
		slicedData[col] = sliced
	}

	return &Stream{Name: s.Name, T: slicedT, Data: slicedData}, nil
}
