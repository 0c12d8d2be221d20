package viz

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/samber/lo"

	"github.com/rtreach/evaltools/dataset"
	"github.com/rtreach/evaltools/logging"
	"github.com/rtreach/evaltools/sampling"
	"github.com/rtreach/evaltools/spatialmath"
	"github.com/rtreach/evaltools/traces"
)

// TrajectoryFootprint is the half extents of the vehicle box drawn along trajectories.
var TrajectoryFootprint = r2.Point{X: 0.25, Y: 0.15}

// trajectoryStride is how many states apart footprints are drawn.
const trajectoryStride = 4

// TrajectoryFigure draws the corridor run: the two obstacles next to the x axis, the primary
// trajectory in green and, when given, the safe fallback trajectory in red.
func TrajectoryFigure(states, fallback []traces.State) (*Scene, error) {
	scene, err := NewScene(r2.Rect{X: r1.Interval{Lo: 0, Hi: 4.2}, Y: r1.Interval{Lo: -1, Hi: 1}}, DefaultPixelsPerMeter)
	if err != nil {
		return nil, err
	}
	scene.SetTitle("Safe Trajectory w/ Subgoal")
	for _, center := range []r2.Point{{X: 2, Y: 0.7}, {X: 2, Y: -0.7}} {
		rect, err := spatialmath.NewRectFromDims(center, r2.Point{X: 0.5, Y: 0.5}, "obstacle")
		if err != nil {
			return nil, err
		}
		scene.AddObstacle(rect, Blue)
	}
	scene.AddTrajectory(states, TrajectoryFootprint, trajectoryStride, false, Green)
	if len(fallback) > 0 {
		scene.AddTrajectory(fallback, TrajectoryFootprint, trajectoryStride, true, Red)
	}
	scene.AddLine(r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 0}, true)
	scene.AddMarker(r2.Point{X: 1.5, Y: 0}, Dot, 10, Blue)
	scene.AddMarker(r2.Point{X: 4, Y: 0}, Star, 25, Gold)
	return scene, nil
}

// ReachFigure draws two reach tubes between circular obstacles. The last two rects of each tube
// are the whole-horizon hulls and are left out.
func ReachFigure(primary, subgoal []traces.TubeRect) (*Scene, error) {
	scene, err := NewScene(r2.Rect{X: r1.Interval{Lo: 0, Hi: 3.2}, Y: r1.Interval{Lo: 0, Hi: 2.2}}, DefaultPixelsPerMeter)
	if err != nil {
		return nil, err
	}
	scene.SetTitle("Reachtube Subgoal Search, reachtime=2 s")
	scene.AddCircle(r2.Point{X: 2.25, Y: 0.75}, 0.4, Blue)
	scene.AddCircle(r2.Point{X: 0.75, Y: 1.5}, 0.4, Blue)
	scene.AddTube(dropHulls(subgoal), LightPink)
	scene.AddTube(dropHulls(primary), LightGreen)
	scene.AddLine(r2.Point{X: 0, Y: 0}, r2.Point{X: 3, Y: 2}, true)
	scene.AddMarker(r2.Point{X: 1.5, Y: 1}, Dot, 10, Green)
	scene.AddMarker(r2.Point{X: 2.25, Y: 1.5}, Dot, 10, Red)
	scene.AddMarker(r2.Point{X: 3, Y: 2}, Star, 25, Gold)
	return scene, nil
}

func dropHulls(rects []traces.TubeRect) []traces.TubeRect {
	return lo.DropRight(rects, 2)
}

// DatasetFigure draws a generated dataset over the obstacle zones and sampling boxes of cfg.
func DatasetFigure(rows []dataset.Row, cfg sampling.Config, logger logging.Logger) (*Scene, error) {
	sampler, err := sampling.NewSampler(cfg, logger)
	if err != nil {
		return nil, err
	}

	window := cfg.StartBounds.Rect().Union(cfg.GoalBounds.Rect()).Union(cfg.VehicleBounds.Rect())
	var zones []spatialmath.Rect
	for _, o := range cfg.Obstacles {
		square, footprint := sampler.ObstacleZones(o)
		zones = append(zones, square, footprint)
		window = window.Union(square.Bounds()).Union(footprint.Bounds())
	}
	for _, row := range rows {
		window = window.AddPoint(row.Start).AddPoint(row.Goal).AddPoint(row.Vehicle)
	}
	window = window.ExpandedByMargin(0.25)

	scene, err := NewScene(window, DefaultPixelsPerMeter/2)
	if err != nil {
		return nil, err
	}
	scene.SetTitle("Start/Goal Dataset")
	for i, zone := range zones {
		fill := Blue
		if i%2 == 1 {
			fill = LightPink
		}
		scene.AddObstacle(zone, fill)
	}
	scene.AddOutline(cfg.StartBounds.Rect(), Green)
	scene.AddOutline(cfg.GoalBounds.Rect(), Red)
	scene.AddOutline(cfg.VehicleBounds.Rect(), Blue)
	scene.AddPairs(rows)
	return scene, nil
}
