package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seedforge/seedforge/internal/fixtures"
	"github.com/seedforge/seedforge/internal/generator"
	"github.com/seedforge/seedforge/internal/ui"
	"github.com/seedforge/seedforge/pkg/types"
)

var (
	generateCount      int
	generateOutput     string
	generateSeed       int64
	generateUnique     bool
	generateVariations bool
	generateForce      bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [template]",
	Short: "Generate a fixture file from a template",
	Long: `Generate records from the named template and write them to a JSON
fixture file under the configured fixtures directory.

Pass --seed to reproduce a previous run exactly; without it a seed is drawn
from system entropy and printed so the run can be repeated later.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&generateCount, "count", "c", 0, "number of records to generate (default from config, usually 1)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output filename (default <template>.json)")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "seed for the pseudo-random sequence (default: system entropy)")
	generateCmd.Flags().BoolVar(&generateUnique, "unique", false, "reject duplicate records within the batch (best effort)")
	generateCmd.Flags().BoolVar(&generateVariations, "variations", true, "mutate pooled values with digit/suffix appends")
	generateCmd.Flags().BoolVarP(&generateForce, "force", "f", false, "overwrite an existing fixture file without asking")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	templateName := args[0]

	cfg, registry, logger, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer logger.Close()

	opts := types.GenerateOptions{
		Count:  generateCount,
		Unique: generateUnique,
	}
	if opts.Count == 0 {
		opts.Count = cfg.Generator.Count
	}
	if cmd.Flags().Changed("seed") {
		seed := generateSeed
		opts.Seed = &seed
	}
	variations := generateVariations
	if !cmd.Flags().Changed("variations") {
		variations = cfg.Generator.Variations
	}
	opts.Variations = &variations

	if err := os.MkdirAll(cfg.Fixtures.Dir, 0700); err != nil {
		return fmt.Errorf("failed to create fixtures directory: %w", err)
	}
	store := fixtures.NewStore(cfg.Fixtures.Dir)

	filename := generateOutput
	if filename == "" {
		filename = templateName + ".json"
	}

	if store.Exists(filename) && !generateForce {
		if !ui.Confirm(os.Stdin, fmt.Sprintf("Fixture %s already exists. Overwrite?", store.Path(filename))) {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}
	}

	gen := generator.FromOptions(registry, logger, opts)
	verboseLog("generating %d record(s) of %q with seed %d", opts.Count, templateName, gen.Seed())

	result, path, err := gen.GenerateAndExport(store, templateName, filename, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Generated %d record(s) from template %q\n", len(result.Records), templateName)
	fmt.Printf("Written to: %s\n", path)
	fmt.Printf("Seed: %d\n", result.Seed)
	if result.Exhausted > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d record(s) may be duplicates (uniqueness retries exhausted)\n", result.Exhausted)
	}

	return nil
}
