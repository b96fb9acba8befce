package wln

import "go.uber.org/zap"

// Options configures a Parser. Constructed with functional options the
// same way katalvlaran/lvlath's builder.Constructor/builderConfig pair
// configures a graph builder: zero-value-safe defaults, each knob applied
// independently.
type Options struct {
	// MaxAtoms bounds the atom pool (spec.md section 5 default 1024).
	MaxAtoms int
	// MaxRings bounds the ring pool (spec.md section 5 default 1024).
	MaxRings int
	// MaxEdgesPerAtom bounds each atom's edge arrays (spec.md section 5, fixed at 8).
	MaxEdgesPerAtom int
	// MaxCarbonChain bounds a single packed alkyl chain (spec.md section 5 default 100).
	MaxCarbonChain int
	// Lenient turns a bond that would exceed a valence ceiling into a
	// recorded Warning: the bond is skipped and the parse continues. No
	// letter is rewritten (M->N, N->K, Y->X are not applied).
	Lenient bool
	// Logger receives one structured entry per state transition at
	// zap.DebugLevel; defaults to a no-op logger.
	Logger *zap.Logger
}

// Option mutates an Options value.
type Option func(*Options)

// DefaultOptions returns the spec.md section 5 resource bounds in strict
// mode with a no-op logger.
func DefaultOptions() Options {
	return Options{
		MaxAtoms:        1024,
		MaxRings:        1024,
		MaxEdgesPerAtom: 8,
		MaxCarbonChain:  100,
		Lenient:         false,
		Logger:          zap.NewNop(),
	}
}

// WithMaxAtoms overrides the atom pool ceiling.
func WithMaxAtoms(n int) Option { return func(o *Options) { o.MaxAtoms = n } }

// WithMaxRings overrides the ring pool ceiling.
func WithMaxRings(n int) Option { return func(o *Options) { o.MaxRings = n } }

// WithMaxCarbonChain overrides the packed-alkyl-chain length ceiling.
func WithMaxCarbonChain(n int) Option { return func(o *Options) { o.MaxCarbonChain = n } }

// WithLenient toggles lenient-mode hypervalence recovery.
func WithLenient(lenient bool) Option { return func(o *Options) { o.Lenient = lenient } }

// WithLogger installs a structured logger for per-character tracing.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func newOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
