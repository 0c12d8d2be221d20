package dataset

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	err := w.Write(Row{
		Vehicle: r2.Point{X: 0.25, Y: -0.125},
		Start:   r2.Point{X: 0.1, Y: 0.2},
		Goal:    r2.Point{X: 4, Y: -0.5},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, w.Flush(), test.ShouldBeNil)

	test.That(t, buf.String(), test.ShouldEqual,
		"vehicle_x,vehicle_y,start_x,start_y,goal_x,goal_y\n0.25,-0.125,0.1,0.2,4,-0.5\n")
}

func TestHeaderOnlyOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	test.That(t, w.Write(), test.ShouldBeNil)
	test.That(t, w.Write(Row{}), test.ShouldBeNil)
	test.That(t, w.Flush(), test.ShouldBeNil)
	test.That(t, strings.Count(buf.String(), "vehicle_x"), test.ShouldEqual, 1)
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eval_input_data", "bicycle", "corr_dataset.csv")
	rows := []Row{
		{Vehicle: r2.Point{X: 0.1, Y: 0.3}, Start: r2.Point{X: -0.4, Y: 0.05}, Goal: r2.Point{X: 3.9, Y: 0.45}},
		{Vehicle: r2.Point{X: -0.2, Y: 0.0}, Start: r2.Point{X: 0.33333333333333331, Y: -0.1}, Goal: r2.Point{X: 4.4, Y: -0.3}},
	}
	test.That(t, WriteFile(path, rows), test.ShouldBeNil)

	read, err := ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, read, test.ShouldResemble, rows)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	test.That(t, err, test.ShouldBeError, "dataset is empty, expected a header")

	_, err = Read(strings.NewReader("vehicle_x,vehicle_y,start_x,start_y,goal_x,goal\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `got "goal", want "goal_y"`)

	_, err = Read(strings.NewReader("vehicle_x,vehicle_y,start_x,start_y,goal_x,goal_y\n1,2,3,4,five,6\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `line 2, column "goal_x"`)

	// spaces after commas, as in hand-edited files, are tolerated
	rows, err := Read(strings.NewReader("vehicle_x, vehicle_y, start_x, start_y, goal_x, goal_y\n1, 2, 3, 4, 5, 6\n"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rows, test.ShouldHaveLength, 1)
	test.That(t, rows[0].Goal, test.ShouldResemble, r2.Point{X: 5, Y: 6})

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	test.That(t, err, test.ShouldNotBeNil)
}
