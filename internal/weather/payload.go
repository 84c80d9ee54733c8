package weather

import (
	"fmt"
	"strings"
)

// Snapshot is a flat provider object: one value per field plus its timestamp.
type Snapshot struct {
	Time   string
	Values map[string]float64
}

// Columns is a columnar provider object: Values[field][i] belongs to Time[i].
type Columns struct {
	Time   []string
	Values map[string][]float64
}

// Len is the number of time steps.
func (c Columns) Len() int {
	return len(c.Time)
}

// Check verifies that every field is present and as long as Time.
func (c Columns) Check(fields []string) error {
	var missing, short []string
	for _, f := range fields {
		col, ok := c.Values[f]
		switch {
		case !ok:
			missing = append(missing, f)
		case len(col) != len(c.Time):
			short = append(short, fmt.Sprintf("%s(%d)", f, len(col)))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing fields %s", ErrMalformedResponse, strings.Join(missing, ","))
	}
	if len(short) > 0 {
		return fmt.Errorf("%w: expected %d values, got %s", ErrMalformedResponse, len(c.Time), strings.Join(short, ","))
	}
	return nil
}

// fieldReader collects missing fields while a record is being mapped so that
// mapping functions can read values without checking each one.
type fieldReader struct {
	lookup  func(field string) (float64, bool)
	missing []string
}

func snapshotReader(s Snapshot) *fieldReader {
	return &fieldReader{lookup: func(field string) (float64, bool) {
		v, ok := s.Values[field]
		return v, ok
	}}
}

func columnReader(c Columns, i int) *fieldReader {
	return &fieldReader{lookup: func(field string) (float64, bool) {
		col, ok := c.Values[field]
		if !ok || i < 0 || i >= len(col) {
			return 0, false
		}
		return col[i], true
	}}
}

func (r *fieldReader) get(field string) float64 {
	v, ok := r.lookup(field)
	if !ok {
		r.missing = append(r.missing, field)
	}
	return v
}

func (r *fieldReader) err() error {
	if len(r.missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing fields %s", ErrMalformedResponse, strings.Join(r.missing, ","))
}
