package mapping

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v2"

	"fsverify/pkg/statement"
)

//go:embed assets/default_mapping.yaml
var builtinMappingYAML []byte

// BuiltinConfig parses the repo's shipped alias catalog — the base layer
// every caller-supplied mapping config is merged over via MergeConfigs.
func BuiltinConfig() (*Config, error) {
	var doc rawDocument
	if err := yaml.Unmarshal(builtinMappingYAML, &doc); err != nil {
		return nil, fmt.Errorf("mapping: parse builtin catalog: %w", err)
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

// LoadConfigOverBuiltin loads path as an override layered over BuiltinConfig,
// the form most callers (CLI, ingest) actually want: an analyst's custom
// aliases extending, not replacing, the shipped catalog.
func LoadConfigOverBuiltin(path string) (*Config, error) {
	base, err := BuiltinConfig()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return base, nil
	}
	override, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return MergeConfigs(base, override), nil
}
