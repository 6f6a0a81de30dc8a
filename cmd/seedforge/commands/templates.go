package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seedforge/seedforge/internal/schema"
)

// templatesCmd represents the templates command
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect available templates",
	Long: `List and inspect the fixture templates seedforge knows about: the
builtin ones compiled into the binary plus any JSON templates in the
configured templates directory.`,
}

// templatesListCmd represents the templates list command
var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all templates",
	RunE:  runTemplatesList,
}

// templatesShowCmd represents the templates show command
var templatesShowCmd = &cobra.Command{
	Use:   "show [template]",
	Short: "Show a template's schema, constraints, enums and data pools",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesShow,
}

// templatesValidateCmd represents the templates validate command
var templatesValidateCmd = &cobra.Command{
	Use:   "validate [template]",
	Short: "Run the structural sanity pass over a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesValidate,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)
	templatesCmd.AddCommand(templatesValidateCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	_, registry, logger, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer logger.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tFIELDS")
	fmt.Fprintln(w, "----\t------\t------")

	for _, name := range registry.Names() {
		tpl, err := registry.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", name, registry.Source(name), tpl.FieldCount())
	}
	return w.Flush()
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	_, registry, logger, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer logger.Close()

	tpl, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Template: %s (%s)\n\nSchema:\n", tpl.Name, registry.Source(tpl.Name))
	printFields(tpl.Root, 1)

	if len(tpl.Constraints) > 0 {
		fmt.Println("\nConstraints:")
		for _, name := range sortedKeys(tpl.Constraints) {
			cons := tpl.Constraints[name]
			var parts []string
			if cons.Min != nil {
				parts = append(parts, fmt.Sprintf("min=%v", *cons.Min))
			}
			if cons.Max != nil {
				parts = append(parts, fmt.Sprintf("max=%v", *cons.Max))
			}
			if cons.MinLength != nil {
				parts = append(parts, fmt.Sprintf("minLength=%d", *cons.MinLength))
			}
			if cons.MaxLength != nil {
				parts = append(parts, fmt.Sprintf("maxLength=%d", *cons.MaxLength))
			}
			if cons.Decimal != nil {
				parts = append(parts, fmt.Sprintf("decimal=%d", *cons.Decimal))
			}
			if cons.MinAge != nil {
				parts = append(parts, fmt.Sprintf("minAge=%d", *cons.MinAge))
			}
			if cons.MaxAge != nil {
				parts = append(parts, fmt.Sprintf("maxAge=%d", *cons.MaxAge))
			}
			fmt.Printf("  %s: %s\n", name, strings.Join(parts, ", "))
		}
	}

	if len(tpl.Enums) > 0 {
		fmt.Println("\nEnums:")
		for _, name := range sortedKeys(tpl.Enums) {
			fmt.Printf("  %s: %s\n", name, strings.Join(tpl.Enums[name], ", "))
		}
	}

	if len(tpl.Data) > 0 {
		fmt.Println("\nData pools:")
		for _, name := range sortedKeys(tpl.Data) {
			fmt.Printf("  %s: %d value(s)\n", name, len(tpl.Data[name]))
		}
	}

	return nil
}

func runTemplatesValidate(cmd *cobra.Command, args []string) error {
	_, registry, logger, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer logger.Close()

	tpl, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	warnings := schema.Validate(tpl)
	if len(warnings) == 0 {
		fmt.Printf("Template %q: no issues found\n", tpl.Name)
		return nil
	}

	fmt.Printf("Template %q: %d issue(s)\n", tpl.Name, len(warnings))
	for _, w := range warnings {
		fmt.Printf("  - %s\n", w)
	}
	return nil
}

// printFields renders a schema subtree with indentation.
func printFields(fields []schema.Field, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, f := range fields {
		switch f.Desc.Kind {
		case schema.KindObject:
			fmt.Printf("%s%s:\n", indent, f.Name)
			printFields(f.Desc.Fields, depth+1)
		case schema.KindArray:
			fmt.Printf("%s%s: array of %s\n", indent, f.Name, describeElem(*f.Desc.Elem))
			if f.Desc.Elem.Kind == schema.KindObject {
				printFields(f.Desc.Elem.Fields, depth+1)
			}
		case schema.KindUnknown:
			fmt.Printf("%s%s: %s (unrecognized, generates as string/enum)\n", indent, f.Name, f.Desc.Tag)
		default:
			fmt.Printf("%s%s: %s\n", indent, f.Name, f.Desc.Tag)
		}
	}
}

func describeElem(d schema.Descriptor) string {
	switch d.Kind {
	case schema.KindObject:
		return "object"
	case schema.KindArray:
		return "array"
	case schema.KindUnknown:
		return fmt.Sprintf("%s (unrecognized)", d.Tag)
	default:
		return d.Tag
	}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
