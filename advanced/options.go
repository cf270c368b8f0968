package advanced

import (
	"go.uber.org/zap"

	"github.com/gorkemerdogan/DelaunayVoronoiCreator/internal"
)

const DefaultSliverTolerance = 1e-12

type Options struct {
	// Points closer than this to an existing point are rejected as duplicates.
	// Zero only rejects exact duplicates.
	Epsilon float64
	// Triangles flatter than this (see internal.Sliverness) get no Voronoi
	// vertex and are reported as degenerate.
	SliverTolerance float64
	Logger          *zap.Logger
	// Run the structural checks after every insertion. A failing check rolls
	// the insertion back. Expensive; meant for tests and debugging.
	Validate bool
}

type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Epsilon:         internal.Tolerance,
		SliverTolerance: DefaultSliverTolerance,
		Logger:          zap.NewNop(),
	}
}

func WithEpsilon(eps float64) Option {
	if eps < 0 {
		panic("WithEpsilon: epsilon must be non-negative")
	}
	return func(o *Options) {
		o.Epsilon = eps
	}
}

func WithSliverTolerance(tolerance float64) Option {
	if tolerance < 0 {
		panic("WithSliverTolerance: tolerance must be non-negative")
	}
	return func(o *Options) {
		o.SliverTolerance = tolerance
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		if logger == nil {
			logger = zap.NewNop()
		}
		o.Logger = logger
	}
}

func WithValidation(validate bool) Option {
	return func(o *Options) {
		o.Validate = validate
	}
}
