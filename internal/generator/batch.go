package generator

import (
	"fmt"

	"github.com/seedforge/seedforge/internal/fixtures"
	"github.com/seedforge/seedforge/pkg/types"
)

// maxUniqueAttempts bounds the retries for a single batch slot when
// uniqueness is requested.
const maxUniqueAttempts = 100

// Result is the outcome of a batch generation.
type Result struct {
	// Records holds exactly the requested count, in generation order.
	Records []types.Record
	// Seed is the seed the generator was constructed with.
	Seed int64
	// Exhausted counts slots where the uniqueness retry budget ran out and
	// a duplicate record was emitted anyway.
	Exhausted int
}

// Batch generates opts.Count records of the named template. Uniqueness is
// best effort: a full-length batch always beats failing the whole batch for
// one unresolved collision, so an exhausted slot emits its last candidate
// and is counted in Result.Exhausted.
//
// The generator's seed is fixed at construction; opts.Seed is resolved by
// Run and by the CLI, not here.
func (g *Generator) Batch(templateName string, opts types.GenerateOptions) (*Result, error) {
	tpl, err := g.registry.Get(templateName)
	if err != nil {
		return nil, err
	}
	g.log.LogTemplateLoad(tpl.Name, g.registry.Source(tpl.Name))

	count := opts.Count
	if count < 1 {
		count = 1
	}
	variations := opts.VariationsEnabled()

	result := &Result{
		Records: make([]types.Record, 0, count),
		Seed:    g.seed,
	}

	var seen map[string]struct{}
	if opts.Unique {
		seen = make(map[string]struct{}, count)
	}

	for i := 0; i < count; i++ {
		record, err := g.Record(tpl, variations)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", tpl.Name, err)
		}

		if opts.Unique {
			key := record.CanonicalKey()
			attempts := 1
			for {
				if _, dup := seen[key]; !dup {
					break
				}
				if attempts >= maxUniqueAttempts {
					result.Exhausted++
					g.log.LogUniqueExhausted(tpl.Name, i, attempts)
					break
				}
				record, err = g.Record(tpl, variations)
				if err != nil {
					return nil, fmt.Errorf("template %q: %w", tpl.Name, err)
				}
				key = record.CanonicalKey()
				attempts++
			}
			seen[key] = struct{}{}
		}

		result.Records = append(result.Records, record)
	}

	g.log.LogGenerate(tpl.Name, count, g.seed, opts.Unique)

	return result, nil
}

// GenerateAndExport composes Batch with a fixture-store write, returning the
// generated result and the path written. An export failure aborts after
// generation; the error propagates and nothing is returned.
func (g *Generator) GenerateAndExport(store *fixtures.Store, templateName, filename string, opts types.GenerateOptions) (*Result, string, error) {
	result, err := g.Batch(templateName, opts)
	if err != nil {
		return nil, "", err
	}

	path, err := store.Export(result.Records, filename)
	g.log.LogExport(templateName, path, len(result.Records), err)
	if err != nil {
		return nil, "", fmt.Errorf("template %q: %w", templateName, err)
	}

	return result, path, nil
}
