package mapping

import (
	"fmt"
	"sort"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"

	"fsverify/pkg/statement"
)

// GenerateTemplate builds a starter mapping-config document for the
// per-statement-type unmapped labels a diagnose pass turned up, as HJSON —
// a JSON superset that tolerates inline comments, the better target for a
// file an analyst is expected to hand-edit next (spec §9 supplemented
// features, "mapping template generation").
func GenerateTemplate(unmapped map[string][]string) string {
	var b strings.Builder
	b.WriteString("// Starter mapping config generated from unmapped input labels.\n")
	b.WriteString("// Fill in the canonical field each label should resolve to, then\n")
	b.WriteString("// move it under that field's aliases list below.\n\n")
	b.WriteString("settings:\n{\n  fuzzy_threshold: 85\n  unmapped_fields: warn\n  auto_sign_normalization: true\n}\n\n")

	for _, stmtType := range []string{statement.TypeIncomeStatement, statement.TypeBalanceSheet, statement.TypeCashFlow} {
		labels := unmapped[stmtType]
		if len(labels) == 0 {
			continue
		}
		sorted := append([]string(nil), labels...)
		sort.Strings(sorted)

		fmt.Fprintf(&b, "%s:\n{\n", stmtType)
		for _, field := range statement.CanonicalFields(stmtType) {
			fmt.Fprintf(&b, "  %s:\n  {\n    aliases: []\n  }\n", field)
		}
		b.WriteString("}\n\n")

		b.WriteString("// Unmapped input labels seen for this statement, for reference:\n")
		for _, l := range sorted {
			fmt.Fprintf(&b, "// - %q\n", l)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ValidateTemplate parses an HJSON mapping-config template (or any
// HJSON/JSON document in the same shape) structurally, reporting the first
// error encountered. It checks syntax only, not the document's keys.
func ValidateTemplate(data []byte) error {
	var generic interface{}
	if err := hjson.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("mapping: invalid hjson: %w", err)
	}
	return nil
}

// ValidateConfigDocument structurally sanity-checks a YAML mapping config
// already parsed by LoadConfig: every declared alias must be non-empty
// after normalization, and fuzzy_threshold must sit in [0, 100].
func ValidateConfigDocument(cfg *Config) []string {
	var problems []string
	if cfg.Settings.FuzzyThreshold < 0 || cfg.Settings.FuzzyThreshold > 100 {
		problems = append(problems, fmt.Sprintf("fuzzy_threshold %d is out of range [0, 100]", cfg.Settings.FuzzyThreshold))
	}
	switch cfg.Settings.UnmappedFields {
	case "warn", "error", "ignore":
	default:
		problems = append(problems, fmt.Sprintf("unmapped_fields %q is not one of warn|error|ignore", cfg.Settings.UnmappedFields))
	}
	for _, stmtType := range []string{statement.TypeIncomeStatement, statement.TypeBalanceSheet, statement.TypeCashFlow} {
		for field, aliases := range cfg.Declared[stmtType] {
			for _, a := range aliases {
				if normalize(a) == "" {
					problems = append(problems, fmt.Sprintf("%s.%s: alias %q normalizes to empty string", stmtType, field, a))
				}
			}
		}
	}
	return problems
}
