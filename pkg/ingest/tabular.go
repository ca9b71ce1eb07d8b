package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"encoding/csv"

	"fsverify/pkg/mapping"
	"fsverify/pkg/statement"
)

// ParseTabularGrid reads a rectangular grid (rows-as-line-items,
// columns-as-periods) per spec §4.6: row 0 holds period labels in columns
// 1..N (empty columns ignored); each following row whose column 0 is a
// non-empty string contributes one line item across those periods.
func ParseTabularGrid(rows [][]string, stmtType string, cfg *mapping.Config) (*statement.FinancialModel, statement.MappingDiagnostics, error) {
	model := statement.NewFinancialModel()
	diag := statement.MappingDiagnostics{StatementType: stmtType}
	if len(rows) == 0 {
		return model, diag, nil
	}

	header := rows[0]
	periodCols := map[int]string{}
	for col := 1; col < len(header); col++ {
		label := strings.TrimSpace(header[col])
		if label == "" {
			continue
		}
		periodCols[col] = label
		model.Periods = append(model.Periods, label)
	}

	labels := make([]string, 0, len(rows)-1)
	rowOf := map[string]int{}
	for r := 1; r < len(rows); r++ {
		row := rows[r]
		if len(row) == 0 {
			continue
		}
		label := strings.TrimSpace(row[0])
		if label == "" {
			continue
		}
		labels = append(labels, label)
		rowOf[label] = r
	}

	mappingTable, d := mapping.MapFields(labels, stmtType, cfg)
	diag = d

	for label, canonical := range mappingTable {
		row := rows[rowOf[label]]
		for col, period := range periodCols {
			if col >= len(row) {
				continue
			}
			ensureStatement(model, stmtType, period)
			assignField(model, stmtType, period, canonical, row[col])
		}
	}

	applySignNormalization(model, cfg.Settings)
	finalizePeriods(model)
	return model, diag, nil
}

// csvFilenameCandidates maps each statement type to the filenames the CSV
// directory probe tries, in order, matching spec §6.
var csvFilenameCandidates = map[string][]string{
	statement.TypeIncomeStatement: {"income_statement.csv", "income_statements.csv", "is.csv", "pnl.csv"},
	statement.TypeBalanceSheet:    {"balance_sheet.csv", "balance_sheets.csv", "bs.csv"},
	statement.TypeCashFlow:        {"cash_flow.csv", "cash_flows.csv", "cf.csv", "cash_flow_statement.csv"},
}

// ParseCSVDirectory probes dir for one CSV file per statement type and
// merges the three tabular parses into a single model.
func ParseCSVDirectory(dir string, cfg *mapping.Config) (*statement.FinancialModel, map[string]statement.MappingDiagnostics, error) {
	model := statement.NewFinancialModel()
	diagnostics := map[string]statement.MappingDiagnostics{}

	for _, stmtType := range []string{statement.TypeIncomeStatement, statement.TypeBalanceSheet, statement.TypeCashFlow} {
		path := findCSVFile(dir, csvFilenameCandidates[stmtType])
		if path == "" {
			continue
		}
		rows, err := readCSVRows(path)
		if err != nil {
			return nil, nil, fmt.Errorf("ingest: read %s: %w", path, err)
		}
		partial, diag, err := ParseTabularGrid(rows, stmtType, cfg)
		if err != nil {
			return nil, nil, err
		}
		diagnostics[stmtType] = diag
		mergeStatementSection(model, partial, stmtType)
	}

	finalizePeriods(model)
	return model, diagnostics, nil
}

func findCSVFile(dir string, candidates []string) string {
	for _, name := range candidates {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// mergeStatementSection folds partial's single-statement-type data (and
// period list) into model.
func mergeStatementSection(model *statement.FinancialModel, partial *statement.FinancialModel, stmtType string) {
	for _, p := range partial.Periods {
		if !containsString(model.Periods, p) {
			model.Periods = append(model.Periods, p)
		}
	}
	switch stmtType {
	case statement.TypeIncomeStatement:
		for period, is := range partial.IncomeStatements {
			model.IncomeStatements[period] = is
		}
	case statement.TypeBalanceSheet:
		for period, bs := range partial.BalanceSheets {
			model.BalanceSheets[period] = bs
		}
	case statement.TypeCashFlow:
		for period, cf := range partial.CashFlows {
			model.CashFlows[period] = cf
		}
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
