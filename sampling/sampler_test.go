package sampling

import (
	"context"
	"math/rand"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/rtreach/evaltools/logging"
	"github.com/rtreach/evaltools/spatialmath"
)

// corridorConfig mirrors the bicycle corridor: two columns of obstacles with a gap around y = 0.
func corridorConfig() Config {
	return Config{
		Obstacles: []Obstacle{
			NewObstacle(2, 0.7), NewObstacle(2, 1.4), NewObstacle(2, 1.9), NewObstacle(2, 2.4),
			NewObstacle(2, -0.7), NewObstacle(2, -1.4), NewObstacle(2, -1.9), NewObstacle(2, -2.4),
		},
		Width:         0.5,
		VehicleWidth:  0.7,
		VehicleHeight: 0.5,
		StartBounds:   spatialmath.SquareBounds(-0.5, 0.5),
		GoalBounds:    spatialmath.NewBounds(3.5, 4.5, -0.5, 0.5),
		VehicleBounds: spatialmath.SquareBounds(-0.5, 0.5),
	}
}

func newTestSampler(t *testing.T, cfg Config, opts ...Option) *Sampler {
	t.Helper()
	opts = append([]Option{WithSeed(1), WithClock(clock.NewMock())}, opts...)
	s, err := NewSampler(cfg, logging.NewTestLogger(t), opts...)
	test.That(t, err, test.ShouldBeNil)
	return s
}

func TestSingleObstacleScenario(t *testing.T) {
	cfg := Config{
		Obstacles:     []Obstacle{NewObstacle(2, 0.7)},
		Width:         0.5,
		VehicleWidth:  0.7,
		VehicleHeight: 0.5,
	}
	s := newTestSampler(t, cfg)

	origin := r2.Point{X: 0, Y: 0}
	test.That(t, s.IsFeasible(origin, r2.Point{X: 4, Y: 0}), test.ShouldBeTrue)
	test.That(t, s.IsCollision(origin, r2.Point{X: 4, Y: 0}, cfg.Obstacles[0]), test.ShouldBeFalse)

	// the endpoint coincides with the obstacle center
	test.That(t, s.IsFeasible(origin, r2.Point{X: 2, Y: 0.7}), test.ShouldBeFalse)
	test.That(t, s.IsCollision(origin, r2.Point{X: 2, Y: 0.7}, cfg.Obstacles[0]), test.ShouldBeTrue)
}

func TestCollisionPointInclusiveBounds(t *testing.T) {
	s := newTestSampler(t, Config{Width: 0.5, VehicleWidth: 0.7, VehicleHeight: 0.5})
	o := NewObstacle(2, 0.7)

	// square zone edges
	test.That(t, s.IsCollisionPoint(r2.Point{X: 2 - 0.5/2, Y: 0.7}, o), test.ShouldBeTrue)
	test.That(t, s.IsCollisionPoint(r2.Point{X: 2, Y: 0.7 + 0.5/2}, o), test.ShouldBeTrue)
	// footprint zone edge, wider than the square on x
	test.That(t, s.IsCollisionPoint(r2.Point{X: 2 + 0.7/2, Y: 0.7}, o), test.ShouldBeTrue)
	test.That(t, s.IsCollisionPoint(r2.Point{X: 2 + 0.7/2 + 1e-9, Y: 0.7}, o), test.ShouldBeFalse)
	// inside the footprint's x range but above both zones
	test.That(t, s.IsCollisionPoint(r2.Point{X: 2.3, Y: 0.7 + 0.26}, o), test.ShouldBeFalse)

	square, footprint := s.ObstacleZones(o)
	test.That(t, square.HalfSize(), test.ShouldResemble, r2.Point{X: 0.25, Y: 0.25})
	test.That(t, footprint.HalfSize(), test.ShouldResemble, r2.Point{X: 0.35, Y: 0.25})
	test.That(t, footprint.Center(), test.ShouldResemble, o.Center)
}

func TestGeneratePairsInvariant(t *testing.T) {
	cfg := corridorConfig()
	s := newTestSampler(t, cfg)

	pairs, err := s.GeneratePairs(context.Background(), 200)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pairs, test.ShouldHaveLength, 200)

	for _, pair := range pairs {
		test.That(t, cfg.StartBounds.Rect().ContainsPoint(pair.Start), test.ShouldBeTrue)
		test.That(t, cfg.GoalBounds.Rect().ContainsPoint(pair.Goal), test.ShouldBeTrue)
		for _, p := range spatialmath.Interpolate(pair.Start, pair.Goal, DefaultResolution) {
			for _, o := range cfg.Obstacles {
				square, footprint := s.ObstacleZones(o)
				test.That(t, square.ContainsPoint(p), test.ShouldBeFalse)
				test.That(t, footprint.ContainsPoint(p), test.ShouldBeFalse)
			}
		}
	}
}

func TestGeneratePairsCounts(t *testing.T) {
	s := newTestSampler(t, corridorConfig())
	for _, n := range []int{1, 2, 7, 33} {
		pairs, err := s.GeneratePairs(context.Background(), n)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, pairs, test.ShouldHaveLength, n)
	}

	_, err := s.GeneratePairs(context.Background(), -1)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestZeroPairsDrawsNothing(t *testing.T) {
	src := &countingSource{Source: rand.NewSource(3)}
	//nolint:gosec
	s := newTestSampler(t, corridorConfig(), WithRand(rand.New(src)))

	pairs, err := s.GeneratePairs(context.Background(), 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pairs, test.ShouldNotBeNil)
	test.That(t, pairs, test.ShouldBeEmpty)
	test.That(t, src.draws, test.ShouldEqual, 0)

	rows, err := s.GenerateDataset(context.Background(), 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rows, test.ShouldBeEmpty)
	test.That(t, src.draws, test.ShouldEqual, 0)
}

func TestInfeasibleConfigCapped(t *testing.T) {
	cfg := corridorConfig()
	// every start point sits inside this obstacle's square zone
	cfg.Obstacles = append(cfg.Obstacles, NewObstacle(0, 0))
	cfg.Width = 2
	cfg.MaxAttempts = 25
	src := &countingSource{Source: rand.NewSource(3)}
	//nolint:gosec
	s := newTestSampler(t, cfg, WithRand(rand.New(src)))

	pairs, err := s.GeneratePairs(context.Background(), 5)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, IsInfeasibleConfigError(err), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "after 25 attempts")
	test.That(t, pairs, test.ShouldBeEmpty)
	// four uniform draws per attempt
	test.That(t, src.draws, test.ShouldEqual, 4*25)
}

func TestCanceledContext(t *testing.T) {
	s := newTestSampler(t, corridorConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GenerateFeasiblePair(ctx)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "context canceled")
	test.That(t, IsInfeasibleConfigError(err), test.ShouldBeFalse)
}

func TestSameSeedSameDataset(t *testing.T) {
	a := newTestSampler(t, corridorConfig(), WithSeed(42))
	b := newTestSampler(t, corridorConfig(), WithSeed(42))

	rowsA, err := a.GenerateDataset(context.Background(), 50)
	test.That(t, err, test.ShouldBeNil)
	rowsB, err := b.GenerateDataset(context.Background(), 50)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rowsA, test.ShouldResemble, rowsB)

	c := newTestSampler(t, corridorConfig(), WithSeed(43))
	rowsC, err := c.GenerateDataset(context.Background(), 50)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rowsC, test.ShouldNotResemble, rowsA)
}

func TestGenerateDatasetRows(t *testing.T) {
	cfg := corridorConfig()
	s := newTestSampler(t, cfg)
	rows, err := s.GenerateDataset(context.Background(), 20)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rows, test.ShouldHaveLength, 20)
	for _, row := range rows {
		test.That(t, cfg.VehicleBounds.Rect().ContainsPoint(row.Vehicle), test.ShouldBeTrue)
		test.That(t, s.IsFeasible(row.Start, row.Goal), test.ShouldBeTrue)
	}
}

func TestIndexAgreesWithBruteForce(t *testing.T) {
	cfg := corridorConfig()
	cfg.StartBounds = spatialmath.SquareBounds(-1, 5)
	cfg.GoalBounds = spatialmath.SquareBounds(-1, 5)
	s := newTestSampler(t, cfg)

	rng := rand.New(rand.NewSource(11))
	disagreements := 0
	for i := 0; i < 2000; i++ {
		start, goal := cfg.StartBounds.Sample(rng), cfg.GoalBounds.Sample(rng)
		bruteForce := true
		for _, o := range cfg.Obstacles {
			if s.IsCollision(start, goal, o) {
				bruteForce = false
				break
			}
		}
		if bruteForce != s.IsFeasible(start, goal) {
			disagreements++
		}
	}
	test.That(t, disagreements, test.ShouldEqual, 0)
}

func TestIndexKeepsTouchingObstaclesFarFromOrigin(t *testing.T) {
	cfg := Config{
		Obstacles:     []Obstacle{NewObstacle(1e8, 0)},
		Width:         0.5,
		VehicleWidth:  0.7,
		VehicleHeight: 0.5,
		StartBounds:   spatialmath.SquareBounds(-0.5, 0.5),
		GoalBounds:    spatialmath.SquareBounds(-0.5, 0.5),
		VehicleBounds: spatialmath.SquareBounds(-0.5, 0.5),
	}
	s := newTestSampler(t, cfg)
	_, footprint := s.ObstacleZones(cfg.Obstacles[0])
	edge := footprint.Bounds()

	// starts exactly on the footprint's right edge
	start := r2.Point{X: edge.X.Hi, Y: 0}
	goal := r2.Point{X: edge.X.Hi + 1, Y: 1}
	test.That(t, s.IsCollision(start, goal, cfg.Obstacles[0]), test.ShouldBeTrue)
	test.That(t, s.IsFeasible(start, goal), test.ShouldBeFalse)

	// touching only the top edge of the footprint
	start = r2.Point{X: 1e8 - 2, Y: edge.Y.Hi}
	goal = r2.Point{X: 1e8 + 2, Y: edge.Y.Hi}
	test.That(t, s.IsCollision(start, goal, cfg.Obstacles[0]), test.ShouldBeTrue)
	test.That(t, s.IsFeasible(start, goal), test.ShouldBeFalse)
}

func TestInvalidConfig(t *testing.T) {
	cfg := corridorConfig()
	cfg.Width = -1
	cfg.GoalBounds = spatialmath.NewBounds(4.5, 3.5, -0.5, 0.5)
	_, err := NewSampler(cfg, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "obstacle width must be non-negative")
	test.That(t, err.Error(), test.ShouldContainSubstring, "goal bounds")
}

func TestSummaryLog(t *testing.T) {
	logger, observed := logging.NewObservedTestLogger(t)
	s, err := NewSampler(corridorConfig(), logger, WithSeed(5), WithClock(clock.NewMock()))
	test.That(t, err, test.ShouldBeNil)

	_, err = s.GeneratePairs(context.Background(), 10)
	test.That(t, err, test.ShouldBeNil)

	summary := observed.FilterMessage("generated feasible pairs").All()
	test.That(t, summary, test.ShouldHaveLength, 1)
	fields := summary[0].ContextMap()
	test.That(t, fields["pairs"], test.ShouldEqual, int64(10))
	test.That(t, fields["attempts"], test.ShouldBeGreaterThanOrEqualTo, int64(10))
	test.That(t, fields["elapsed"], test.ShouldEqual, "0s")
	test.That(t, observed.FilterMessage("generated 10/10 pairs").Len(), test.ShouldEqual, 1)
}

type countingSource struct {
	rand.Source
	draws int
}

func (c *countingSource) Int63() int64 {
	c.draws++
	return c.Source.Int63()
}
