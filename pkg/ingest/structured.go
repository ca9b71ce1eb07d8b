// Package ingest implements the four input-format parsers — structured
// JSON, tabular CSV/spreadsheet, multi-sheet spreadsheet, and single-sheet
// "stacked" spreadsheet — that turn analyst-authored files into a
// statement.FinancialModel, plus the format auto-detection that picks among
// them.
package ingest

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"fsverify/pkg/mapping"
	"fsverify/pkg/statement"
)

// statementKeyAliases lists the top-level JSON keys accepted for each
// statement section, tried in order.
var statementKeyAliases = map[string][]string{
	statement.TypeIncomeStatement: {"income_statements", "income_statement", "is", "pnl", "p&l"},
	statement.TypeBalanceSheet:    {"balance_sheets", "balance_sheet", "bs"},
	statement.TypeCashFlow:        {"cash_flows", "cash_flow", "cf", "cash_flow_statement"},
}

type structuredDoc struct {
	CompanyName       string                               `json:"company_name"`
	Currency          string                                `json:"currency"`
	Unit              string                                `json:"unit"`
	Periods           []string                              `json:"periods"`
	HistoricalPeriods []string                              `json:"historical_periods"`
	ProjectedPeriods  []string                              `json:"projected_periods"`
	Metadata          map[string]interface{}                `json:"metadata"`
	Raw               map[string]map[string]map[string]interface{} `json:"-"`
}

// ParseStructuredJSON reads a hierarchical key/value document: top-level
// metadata plus one statement-section object per statement type, each
// period -> field -> number. Field names may be canonical or aliases; they
// are resolved through cfg. Malformed JSON (trailing commas, stray text,
// single quotes) is repaired before parsing, matching the teacher's
// SmartParse fallback chain.
func ParseStructuredJSON(data []byte, cfg *mapping.Config) (*statement.FinancialModel, map[string]statement.MappingDiagnostics, error) {
	var generic map[string]interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		repaired, rerr := jsonrepair.RepairJSON(string(data))
		if rerr != nil {
			return nil, nil, fmt.Errorf("ingest: structured json unreadable: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &generic); err != nil {
			return nil, nil, fmt.Errorf("ingest: structured json unreadable even after repair: %w", err)
		}
		log.Printf("[structured] repaired malformed input JSON before parsing")
	}

	model := statement.NewFinancialModel()
	if v, ok := generic["company_name"].(string); ok && v != "" {
		model.CompanyName = v
	}
	if v, ok := generic["currency"].(string); ok && v != "" {
		model.Currency = v
	}
	if v, ok := generic["unit"].(string); ok && v != "" {
		model.Unit = v
	}
	model.Periods = stringSlice(generic["periods"])
	model.HistoricalPeriods = stringSlice(generic["historical_periods"])
	model.ProjectedPeriods = stringSlice(generic["projected_periods"])
	if md, ok := generic["metadata"].(map[string]interface{}); ok {
		model.Metadata = md
	}

	diagnostics := map[string]statement.MappingDiagnostics{}

	for _, stmtType := range []string{statement.TypeIncomeStatement, statement.TypeBalanceSheet, statement.TypeCashFlow} {
		section := firstSection(generic, statementKeyAliases[stmtType])
		if section == nil {
			continue
		}

		labels := make([]string, 0)
		seenLabel := map[string]struct{}{}
		periodFields := map[string]map[string]interface{}{} // label -> period -> raw
		for period, fieldsRaw := range section {
			fields, ok := fieldsRaw.(map[string]interface{})
			if !ok {
				continue
			}
			for label, raw := range fields {
				if _, ok := seenLabel[label]; !ok {
					seenLabel[label] = struct{}{}
					labels = append(labels, label)
					periodFields[label] = map[string]interface{}{}
				}
				periodFields[label][period] = raw
			}
		}
		sort.Strings(labels)

		mappingTable, diag := mapping.MapFields(labels, stmtType, cfg)
		diagnostics[stmtType] = diag

		for label, canonical := range mappingTable {
			for period, raw := range periodFields[label] {
				ensureStatement(model, stmtType, period)
				assignField(model, stmtType, period, canonical, raw)
			}
		}
	}

	applySignNormalization(model, cfg.Settings)
	finalizePeriods(model)
	return model, diagnostics, nil
}

func firstSection(generic map[string]interface{}, keys []string) map[string]interface{} {
	for _, k := range keys {
		if v, ok := generic[k].(map[string]interface{}); ok {
			return v
		}
	}
	return nil
}

func stringSlice(v interface{}) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
