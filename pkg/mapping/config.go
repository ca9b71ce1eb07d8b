// Package mapping resolves arbitrary analyst-authored line-item labels to
// canonical statement.CanonicalFields identifiers, and loads the alias
// catalog that drives that resolution.
package mapping

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"fsverify/pkg/statement"
)

// Settings are the resolved, fully-defaulted mapping behavior knobs.
type Settings struct {
	FuzzyThreshold         int
	UnmappedFields         string // warn | error | ignore
	AutoSignNormalization  bool
}

func defaultSettings() Settings {
	return Settings{
		FuzzyThreshold:        85,
		UnmappedFields:        "warn",
		AutoSignNormalization: true,
	}
}

// rawSettings mirrors the YAML document's settings block with pointer
// fields so an absent key is distinguishable from an explicit zero value.
type rawSettings struct {
	FuzzyThreshold        *int    `yaml:"fuzzy_threshold"`
	UnmappedFields        *string `yaml:"unmapped_fields"`
	AutoSignNormalization *bool   `yaml:"auto_sign_normalization"`
}

type rawFieldAliases struct {
	Aliases []string `yaml:"aliases"`
}

type rawDocument struct {
	Settings       rawSettings                `yaml:"settings"`
	IncomeStatement map[string]rawFieldAliases `yaml:"income_statement"`
	BalanceSheet    map[string]rawFieldAliases `yaml:"balance_sheet"`
	CashFlow        map[string]rawFieldAliases `yaml:"cash_flow"`
}

// aliasEntry is one (normalized alias -> canonical field) pairing kept in a
// deterministic, byte-sorted order for substring and fuzzy matching.
type aliasEntry struct {
	Normalized string
	Canonical  string
}

// Config is an immutable, resolved mapping configuration: settings plus,
// per statement type, the declared alias table, a reverse index from
// normalized alias to canonical field, and a sorted entry list for
// order-sensitive matching passes.
type Config struct {
	Settings Settings
	Declared map[string]map[string][]string // stmtType -> canonical field -> raw aliases
	Warnings []string

	reverseIndex map[string]map[string]string
	entries      map[string][]aliasEntry

	ovSettings rawSettings // retained for override-aware merging
}

// NewDefaultConfig returns an empty, fully-defaulted configuration with no
// declared aliases. LoadConfigOverBuiltin merges over BuiltinConfig, not
// over this.
func NewDefaultConfig() *Config {
	c := &Config{
		Settings: defaultSettings(),
		Declared: map[string]map[string][]string{
			statement.TypeIncomeStatement: {},
			statement.TypeBalanceSheet:    {},
			statement.TypeCashFlow:        {},
		},
	}
	c.finalize()
	return c
}

// LoadConfig reads a YAML mapping configuration from path and finalizes it
// (reverse index construction, collision detection) relative to built-in
// defaults for any settings the file omits.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mapping: read config %s: %w", path, err)
	}
	var doc rawDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("mapping: parse config %s: %w", path, err)
	}

	c := &Config{
		Settings:   resolveSettings(defaultSettings(), doc.Settings),
		ovSettings: doc.Settings,
		Declared: map[string]map[string][]string{
			statement.TypeIncomeStatement: declaredFrom(doc.IncomeStatement),
			statement.TypeBalanceSheet:    declaredFrom(doc.BalanceSheet),
			statement.TypeCashFlow:        declaredFrom(doc.CashFlow),
		},
	}
	c.finalize()
	return c, nil
}

func declaredFrom(m map[string]rawFieldAliases) map[string][]string {
	out := make(map[string][]string, len(m))
	for field, fa := range m {
		out[field] = append([]string(nil), fa.Aliases...)
	}
	return out
}

func resolveSettings(base Settings, ov rawSettings) Settings {
	out := base
	if ov.FuzzyThreshold != nil {
		out.FuzzyThreshold = *ov.FuzzyThreshold
	}
	if ov.UnmappedFields != nil {
		out.UnmappedFields = *ov.UnmappedFields
	}
	if ov.AutoSignNormalization != nil {
		out.AutoSignNormalization = *ov.AutoSignNormalization
	}
	return out
}

// finalize builds the reverse index and sorted alias-entry list for every
// statement type from Declared, recording a warning on each intra-table
// collision (first-declared canonical field wins, by sorted field name).
func (c *Config) finalize() {
	c.reverseIndex = map[string]map[string]string{}
	c.entries = map[string][]aliasEntry{}

	for _, stmtType := range []string{statement.TypeIncomeStatement, statement.TypeBalanceSheet, statement.TypeCashFlow} {
		table := c.Declared[stmtType]
		rindex, entries, warnings := buildReverseIndex(table)
		c.reverseIndex[stmtType] = rindex
		c.entries[stmtType] = entries
		c.Warnings = append(c.Warnings, warnings...)
	}
}

// buildReverseIndex normalizes every declared alias (plus the canonical
// field's own name) for a single statement type's table, deduplicates, and
// resolves collisions first-wins in sorted canonical-field order.
func buildReverseIndex(table map[string][]string) (map[string]string, []aliasEntry, []string) {
	fields := make([]string, 0, len(table))
	for f := range table {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	rindex := map[string]string{}
	var warnings []string
	seen := map[string]struct{}{}

	for _, field := range fields {
		aliasSet := map[string]struct{}{normalize(field): {}}
		for _, a := range table[field] {
			aliasSet[normalize(a)] = struct{}{}
		}
		normAliases := make([]string, 0, len(aliasSet))
		for a := range aliasSet {
			normAliases = append(normAliases, a)
		}
		sort.Strings(normAliases)

		for _, norm := range normAliases {
			if norm == "" {
				continue
			}
			if existing, ok := rindex[norm]; ok && existing != field {
				warnings = append(warnings, fmt.Sprintf(
					"alias %q already mapped to %q; ignoring duplicate mapping to %q", norm, existing, field))
				continue
			}
			if _, dup := seen[norm]; !dup {
				rindex[norm] = field
				seen[norm] = struct{}{}
			}
		}
	}

	entries := make([]aliasEntry, 0, len(rindex))
	for norm, field := range rindex {
		entries = append(entries, aliasEntry{Normalized: norm, Canonical: field})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Normalized < entries[j].Normalized })

	return rindex, entries, warnings
}

// MergeConfigs combines base and override: settings are override-wins per
// key, alias tables are unioned by canonical field (override extends base),
// and on reverse-index collisions the override's mapping wins outright.
func MergeConfigs(base, override *Config) *Config {
	merged := &Config{
		Settings:     resolveSettings(base.Settings, override.ovSettings),
		Declared:     map[string]map[string][]string{},
		reverseIndex: map[string]map[string]string{},
		entries:      map[string][]aliasEntry{},
	}

	for _, stmtType := range []string{statement.TypeIncomeStatement, statement.TypeBalanceSheet, statement.TypeCashFlow} {
		mergedTable := map[string][]string{}
		for field, aliases := range base.Declared[stmtType] {
			mergedTable[field] = append([]string(nil), aliases...)
		}
		for field, aliases := range override.Declared[stmtType] {
			mergedTable[field] = append(append([]string(nil), mergedTable[field]...), aliases...)
		}
		merged.Declared[stmtType] = mergedTable

		rindex := map[string]string{}
		for norm, field := range base.reverseIndex[stmtType] {
			rindex[norm] = field
		}
		for norm, field := range override.reverseIndex[stmtType] {
			rindex[norm] = field // override wins unconditionally
		}
		merged.reverseIndex[stmtType] = rindex

		entries := make([]aliasEntry, 0, len(rindex))
		for norm, field := range rindex {
			entries = append(entries, aliasEntry{Normalized: norm, Canonical: field})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Normalized < entries[j].Normalized })
		merged.entries[stmtType] = entries
	}

	return merged
}
