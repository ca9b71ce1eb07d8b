// Command fsverify runs the three-statement verification pipeline against
// an analyst-authored model file or CSV directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"fsverify/pkg/checks"
	"fsverify/pkg/engine"
	"fsverify/pkg/ingest"
	"fsverify/pkg/mapping"
	"fsverify/pkg/report"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[fsverify] no .env file found, using process environment")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runCmd(os.Args[2:])
	case "generate-mapping":
		err = generateMappingCmd(os.Args[2:])
	case "validate-mapping":
		err = validateMappingCmd(os.Args[2:])
	case "diagnose-mapping":
		err = diagnoseMappingCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("[fsverify] %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: fsverify <run|generate-mapping|validate-mapping|diagnose-mapping> [flags]")
}

func loadConfigFlag(path string) (*mapping.Config, error) {
	return mapping.LoadConfigOverBuiltin(path)
}

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	input := fs.String("input", "", "path to a model file or CSV directory")
	mappingPath := fs.String("mapping", os.Getenv("FSVERIFY_MAPPING"), "path to a mapping config YAML file (optional)")
	absTol := fs.Float64("abs-tol", 0, "absolute tolerance override (0 = engine default)")
	pctTol := fs.Float64("pct-tol", 0, "relative tolerance override as a fraction (0 = engine default)")
	jsonOut := fs.String("json", "", "write JSON report to this path instead of stdout summary")
	markdownOut := fs.String("markdown", "", "write Markdown report to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("run: -input is required")
	}

	cfg, err := loadConfigFlag(*mappingPath)
	if err != nil {
		return err
	}

	model, diagnostics, err := ingest.Load(*input, cfg)
	if err != nil {
		return err
	}
	for stmtType, diag := range diagnostics {
		for _, w := range diag.Warnings {
			log.Printf("[fsverify] %s: %s", stmtType, w)
		}
	}

	eng := engine.New(engine.Options{Tolerances: checks.Tolerances{AbsTol: *absTol, PctTol: *pctTol}})
	results, metadata := eng.Run(model)
	rep := report.Build(model, results, metadata)

	if *jsonOut != "" {
		data, err := rep.ToJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(*jsonOut, data, 0o644); err != nil {
			return fmt.Errorf("run: write json report: %w", err)
		}
	}
	if *markdownOut != "" {
		if err := os.WriteFile(*markdownOut, []byte(rep.RenderMarkdown()), 0o644); err != nil {
			return fmt.Errorf("run: write markdown report: %w", err)
		}
	}
	if *jsonOut == "" && *markdownOut == "" {
		rep.PrintSummary(os.Stdout)
	}

	os.Exit(rep.ExitCode())
	return nil
}

func diagnoseMappingCmd(args []string) error {
	fs := flag.NewFlagSet("diagnose-mapping", flag.ExitOnError)
	input := fs.String("input", "", "path to a model file or CSV directory")
	mappingPath := fs.String("mapping", os.Getenv("FSVERIFY_MAPPING"), "path to a mapping config YAML file (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("diagnose-mapping: -input is required")
	}

	cfg, err := loadConfigFlag(*mappingPath)
	if err != nil {
		return err
	}
	_, diagnostics, err := ingest.Load(*input, cfg)
	if err != nil {
		return err
	}
	for _, stmtType := range []string{"income_statement", "balance_sheet", "cash_flow"} {
		diag, ok := diagnostics[stmtType]
		if !ok {
			continue
		}
		fmt.Printf("%s: %d/%d mapped (%d exact, %d alias, %d fuzzy), %d unmapped\n",
			stmtType, diag.MappedCount, diag.TotalInputFields, diag.ExactMatches, diag.AliasMatches, diag.FuzzyMatches, diag.UnmappedCount)
		for _, u := range diag.UnmappedFields {
			fmt.Printf("  unmapped: %q\n", u)
		}
		for _, w := range diag.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}
	return nil
}

func generateMappingCmd(args []string) error {
	fs := flag.NewFlagSet("generate-mapping", flag.ExitOnError)
	input := fs.String("input", "", "path to a model file or CSV directory")
	out := fs.String("out", "mapping_template.hjson", "path to write the generated template")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("generate-mapping: -input is required")
	}

	cfg, err := mapping.BuiltinConfig()
	if err != nil {
		return err
	}
	_, diagnostics, err := ingest.Load(*input, cfg)
	if err != nil {
		return err
	}

	unmapped := map[string][]string{}
	for stmtType, diag := range diagnostics {
		unmapped[stmtType] = diag.UnmappedFields
	}
	template := mapping.GenerateTemplate(unmapped)
	if err := os.WriteFile(*out, []byte(template), 0o644); err != nil {
		return fmt.Errorf("generate-mapping: write template: %w", err)
	}
	fmt.Printf("wrote mapping template to %s\n", *out)
	return nil
}

func validateMappingCmd(args []string) error {
	fs := flag.NewFlagSet("validate-mapping", flag.ExitOnError)
	path := fs.String("config", "", "path to a mapping config YAML file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("validate-mapping: -config is required")
	}

	cfg, err := mapping.LoadConfig(*path)
	if err != nil {
		return err
	}
	problems := mapping.ValidateConfigDocument(cfg)
	if len(problems) == 0 {
		fmt.Println("mapping config is valid")
		return nil
	}
	fmt.Println("mapping config has problems:")
	for _, p := range problems {
		fmt.Printf("  - %s\n", p)
	}
	os.Exit(1)
	return nil
}
