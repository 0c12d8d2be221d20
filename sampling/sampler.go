package sampling

import (
	"context"
	"math/rand"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/rtreach/evaltools/dataset"
	"github.com/rtreach/evaltools/logging"
	"github.com/rtreach/evaltools/spatialmath"
	"github.com/rtreach/evaltools/utils"
)

// Pair is a candidate or accepted start/goal pair.
type Pair struct {
	Start r2.Point
	Goal  r2.Point
}

// zonePair holds an obstacle's square zone and its vehicle footprint zone, in that order.
type zonePair [2]spatialmath.Rect

// Option configures a Sampler.
type Option func(*Sampler)

// WithRand makes the sampler draw from rng.
func WithRand(rng *rand.Rand) Option {
	return func(s *Sampler) {
		s.rng = rng
	}
}

// WithSeed makes the sampler draw from a generator seeded with seed.
func WithSeed(seed int64) Option {
	return func(s *Sampler) {
		//nolint:gosec
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithClock replaces the clock used for timing and default seeding.
func WithClock(clk clock.Clock) Option {
	return func(s *Sampler) {
		s.clock = clk
	}
}

// Sampler draws feasible start/goal pairs. It is not safe for concurrent use.
type Sampler struct {
	cfg    Config
	logger logging.Logger
	rng    *rand.Rand
	clock  clock.Clock

	// zone templates centered at the origin, translated onto each obstacle
	square    spatialmath.Rect
	footprint spatialmath.Rect
	index     *obstacleIndex
}

// NewSampler validates cfg and returns a sampler for it.
func NewSampler(cfg Config, logger logging.Logger, opts ...Option) (*Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid sampler config")
	}

	s := &Sampler{
		cfg:    cfg,
		logger: logger,
		clock:  clock.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		//nolint:gosec
		s.rng = rand.New(rand.NewSource(s.clock.Now().UnixNano()))
	}

	var err error
	s.square, err = spatialmath.NewRectFromDims(r2.Point{}, r2.Point{X: cfg.Width, Y: cfg.Width}, "square")
	if err != nil {
		return nil, err
	}
	s.footprint, err = spatialmath.NewRectFromDims(r2.Point{}, r2.Point{X: cfg.VehicleWidth, Y: cfg.VehicleHeight}, "footprint")
	if err != nil {
		return nil, err
	}
	s.index, err = newObstacleIndex(cfg.Obstacles, s.zones)
	if err != nil {
		return nil, errors.Wrap(err, "indexing obstacles")
	}

	logger.Debugw("sampler ready",
		"obstacles", len(cfg.Obstacles),
		"resolution", cfg.resolution(),
		"max_attempts", cfg.maxAttempts())
	return s, nil
}

// Config returns the configuration the sampler was built with.
func (s *Sampler) Config() Config {
	return s.cfg
}

func (s *Sampler) zones(o Obstacle) zonePair {
	return zonePair{s.square.Translate(o.Center), s.footprint.Translate(o.Center)}
}

// ObstacleZones returns the square zone and the vehicle footprint zone of o.
func (s *Sampler) ObstacleZones(o Obstacle) (square, footprint spatialmath.Rect) {
	z := s.zones(o)
	return z[0], z[1]
}

// IsCollisionPoint reports whether p lies inside either zone of o, boundaries included.
func (s *Sampler) IsCollisionPoint(p r2.Point, o Obstacle) bool {
	z := s.zones(o)
	return z[0].ContainsPoint(p) || z[1].ContainsPoint(p)
}

// IsCollision reports whether any of the evenly spaced points on the segment from start to goal
// collides with o.
func (s *Sampler) IsCollision(start, goal r2.Point, o Obstacle) bool {
	return s.collides(spatialmath.Interpolate(start, goal, s.cfg.resolution()), o)
}

func (s *Sampler) collides(points []r2.Point, o Obstacle) bool {
	for _, p := range points {
		if s.IsCollisionPoint(p, o) {
			return true
		}
	}
	return false
}

// IsFeasible reports whether the segment from start to goal clears every obstacle.
func (s *Sampler) IsFeasible(start, goal r2.Point) bool {
	candidates := s.index.nearSegment(start, goal)
	if len(candidates) == 0 {
		return true
	}
	points := spatialmath.Interpolate(start, goal, s.cfg.resolution())
	for _, o := range candidates {
		if s.collides(points, o) {
			return false
		}
	}
	return true
}

// GenerateFeasiblePair draws candidates until one is feasible or the attempt cap is reached.
func (s *Sampler) GenerateFeasiblePair(ctx context.Context) (Pair, error) {
	pair, _, err := s.generateFeasiblePair(ctx)
	return pair, err
}

func (s *Sampler) generateFeasiblePair(ctx context.Context) (Pair, int, error) {
	maxAttempts := s.cfg.maxAttempts()
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Pair{}, attempt - 1, errors.Wrap(err, "sampling interrupted")
		}
		start := s.cfg.StartBounds.Sample(s.rng)
		goal := s.cfg.GoalBounds.Sample(s.rng)
		if s.IsFeasible(start, goal) {
			return Pair{Start: start, Goal: goal}, attempt, nil
		}
	}
	return Pair{}, maxAttempts, NewInfeasibleConfigError(maxAttempts)
}

// GeneratePairs returns exactly n feasible pairs. On failure the pairs accepted so far are
// returned with the error.
func (s *Sampler) GeneratePairs(ctx context.Context, n int) ([]Pair, error) {
	if n < 0 {
		return nil, NewNegativeCountError(n)
	}

	pairs := make([]Pair, 0, n)
	if n == 0 {
		return pairs, nil
	}

	start := s.clock.Now()
	totalAttempts := 0
	progressEvery := utils.ScaleByPct(n, 0.1)
	if progressEvery == 0 {
		progressEvery = 1
	}
	for len(pairs) < n {
		pair, attempts, err := s.generateFeasiblePair(ctx)
		totalAttempts += attempts
		if err != nil {
			s.logger.Warnw("stopped generating pairs", "accepted", len(pairs), "requested", n, "error", err)
			return pairs, err
		}
		pairs = append(pairs, pair)
		if len(pairs)%progressEvery == 0 {
			s.logger.Debugf("generated %d/%d pairs", len(pairs), n)
		}
	}

	s.logger.Infow("generated feasible pairs",
		"pairs", n,
		"attempts", totalAttempts,
		"elapsed", s.clock.Since(start).String())
	return pairs, nil
}

// SampleVehiclePositions draws n vehicle initial positions uniformly from the vehicle bounds.
func (s *Sampler) SampleVehiclePositions(n int) []r2.Point {
	if n <= 0 {
		return []r2.Point{}
	}
	positions := make([]r2.Point, n)
	for i := range positions {
		positions[i] = s.cfg.VehicleBounds.Sample(s.rng)
	}
	return positions
}

// GenerateDataset samples n vehicle positions, then n feasible pairs, and zips them into rows.
func (s *Sampler) GenerateDataset(ctx context.Context, n int) ([]dataset.Row, error) {
	if n < 0 {
		return nil, NewNegativeCountError(n)
	}
	vehicles := s.SampleVehiclePositions(n)
	pairs, err := s.GeneratePairs(ctx, n)
	if err != nil {
		return nil, err
	}

	rows := make([]dataset.Row, n)
	for i := range rows {
		rows[i] = dataset.Row{Vehicle: vehicles[i], Start: pairs[i].Start, Goal: pairs[i].Goal}
	}
	return rows, nil
}
