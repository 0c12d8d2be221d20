// Package dataset reads and writes the start/goal dataset CSV consumed by the evaluation runs.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/rtreach/evaltools/utils"
)

// Header is the first line of every dataset file.
var Header = []string{"vehicle_x", "vehicle_y", "start_x", "start_y", "goal_x", "goal_y"}

// Row is one persisted sample: a vehicle initial position and an accepted start/goal pair.
type Row struct {
	Vehicle r2.Point
	Start   r2.Point
	Goal    r2.Point
}

func (r Row) record() []string {
	values := []float64{r.Vehicle.X, r.Vehicle.Y, r.Start.X, r.Start.Y, r.Goal.X, r.Goal.Y}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out
}

// Writer writes dataset rows as CSV. The header is written before the first row.
type Writer struct {
	w             *csv.Writer
	headerWritten bool
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// WriteHeader writes the header if it has not been written yet.
func (w *Writer) WriteHeader() error {
	if w.headerWritten {
		return nil
	}
	w.headerWritten = true
	return w.w.Write(Header)
}

// Write writes rows, preceded by the header on first use.
func (w *Writer) Write(rows ...Row) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.w.Write(r.record()); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// WriteFile writes the header and rows to path, creating parent directories as needed.
func WriteFile(path string, rows []Row) (err error) {
	f, err := utils.CreateWithParents(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()

	w := NewWriter(f)
	if err := w.Write(rows...); err != nil {
		return errors.Wrapf(err, "writing %q", path)
	}
	return w.Flush()
}

// Read parses a dataset CSV. The header must match Header exactly.
func Read(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset is empty, expected a header")
		}
		return nil, err
	}
	for i, name := range Header {
		if header[i] != name {
			return nil, errors.Errorf("unexpected column %d in header: got %q, want %q", i, header[i], name)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		var values [6]float64
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d, column %q", line, Header[i])
			}
			values[i] = v
		}
		rows = append(rows, Row{
			Vehicle: r2.Point{X: values[0], Y: values[1]},
			Start:   r2.Point{X: values[2], Y: values[3]},
			Goal:    r2.Point{X: values[4], Y: values[5]},
		})
	}
	return rows, nil
}

// ReadFile parses the dataset CSV at path.
func ReadFile(path string) ([]Row, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck
	defer f.Close()
	rows, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading dataset %q", path)
	}
	return rows, nil
}
