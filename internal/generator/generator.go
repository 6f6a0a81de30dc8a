// Package generator produces deterministic synthetic records from declarative
// templates. A Generator owns a seeded pseudo-random source; the same seed
// and call order always reproduce the same records.
package generator

import (
	"github.com/seedforge/seedforge/internal/audit"
	"github.com/seedforge/seedforge/internal/prng"
	"github.com/seedforge/seedforge/internal/schema"
	"github.com/seedforge/seedforge/pkg/types"
)

// Generator is a caller-owned generation engine. It is stateful (the
// pseudo-random source advances with every draw) and not safe for concurrent
// use; give each logical thread of control its own instance.
type Generator struct {
	rng      *prng.Source
	seed     int64
	registry *schema.Registry
	log      *audit.Logger
}

// New creates a Generator with an explicit seed. Reusing an instance across
// batches continues the sequence rather than resetting it; construct a fresh
// instance to restart from the seed.
func New(registry *schema.Registry, logger *audit.Logger, seed int64) *Generator {
	return &Generator{
		rng:      prng.New(seed),
		seed:     seed,
		registry: registry,
		log:      logger,
	}
}

// NewFromEntropy creates a Generator with a seed drawn from system entropy.
// The chosen seed is available via Seed so runs stay reproducible.
func NewFromEntropy(registry *schema.Registry, logger *audit.Logger) *Generator {
	source, seed := prng.NewFromEntropy()
	return &Generator{
		rng:      source,
		seed:     seed,
		registry: registry,
		log:      logger,
	}
}

// Seed returns the seed this instance was constructed with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// FromOptions builds a Generator honoring opts.Seed: explicit when set,
// entropy-derived otherwise.
func FromOptions(registry *schema.Registry, logger *audit.Logger, opts types.GenerateOptions) *Generator {
	if opts.Seed != nil {
		return New(registry, logger, *opts.Seed)
	}
	return NewFromEntropy(registry, logger)
}

// Run is the one-shot form: construct a generator per opts.Seed and produce
// a single batch with it.
func Run(registry *schema.Registry, logger *audit.Logger, templateName string, opts types.GenerateOptions) (*Result, error) {
	return FromOptions(registry, logger, opts).Batch(templateName, opts)
}
