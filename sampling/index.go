package sampling

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r2"

	"github.com/rtreach/evaltools/spatialmath"
)

// indexPadding keeps every R-tree rect strictly positive in size, rtreego rejects zero lengths.
// It grows with coordinate magnitude so the padding never rounds away; rtreego does not report
// rects that only touch.
const (
	indexPadding    = 1e-9
	indexRelPadding = 1e-9
)

// obstacleEntry wraps an obstacle for R-tree storage.
type obstacleEntry struct {
	obstacle Obstacle
	bbox     rtreego.Rect
}

// Bounds implements rtreego.Spatial interface.
func (e *obstacleEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// obstacleIndex answers "which obstacles could a segment touch" so the dense point test only runs
// against nearby obstacles.
type obstacleIndex struct {
	tree      *rtreego.Rtree
	obstacles []Obstacle
}

// newObstacleIndex indexes every obstacle by the union of its zones.
func newObstacleIndex(obstacles []Obstacle, zonesOf func(Obstacle) zonePair) (*obstacleIndex, error) {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for _, o := range obstacles {
		zones := zonesOf(o)
		union := zones[0].Bounds().Union(zones[1].Bounds())
		bbox, err := paddedRect(union.Lo(), union.Hi())
		if err != nil {
			return nil, err
		}
		tree.Insert(&obstacleEntry{obstacle: o, bbox: bbox})
	}

	return &obstacleIndex{tree: tree, obstacles: obstacles}, nil
}

// nearSegment returns the obstacles whose zone bounding box intersects the segment's bounding box.
func (idx *obstacleIndex) nearSegment(from, to r2.Point) []Obstacle {
	if len(idx.obstacles) == 0 {
		return nil
	}
	query := spatialmath.SegmentBounds(from, to)
	bbox, err := paddedRect(query.Lo(), query.Hi())
	if err != nil {
		// Non-finite coordinates; fall back to testing everything.
		return idx.obstacles
	}

	results := idx.tree.SearchIntersect(bbox)
	obstacles := make([]Obstacle, 0, len(results))
	for _, item := range results {
		obstacles = append(obstacles, item.(*obstacleEntry).obstacle)
	}
	return obstacles
}

func pad(v float64) float64 {
	return math.Max(indexPadding, indexRelPadding*math.Abs(v))
}

// paddedRect widens [lo, hi] outward on both axes.
func paddedRect(lo, hi r2.Point) (rtreego.Rect, error) {
	minX, minY := lo.X-pad(lo.X), lo.Y-pad(lo.Y)
	maxX, maxY := hi.X+pad(hi.X), hi.Y+pad(hi.Y)
	return rtreego.NewRect(rtreego.Point{minX, minY}, []float64{maxX - minX, maxY - minY})
}
