package ingest

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"fsverify/pkg/mapping"
	"fsverify/pkg/statement"
)

// sheetNameKeywords maps each statement type to the lowercase substrings a
// sheet name is checked against for multi-sheet detection, per spec §6.
var sheetNameKeywords = map[string][]string{
	statement.TypeIncomeStatement: {"income", "p&l", "p & l", "profit and loss", "profit & loss"},
	statement.TypeBalanceSheet:    {"balance"},
	statement.TypeCashFlow:        {"cash flow", "cashflow"},
}

// findFinancialSheets matches sheet names against sheetNameKeywords,
// returning the first sheet name found for each statement type.
func findFinancialSheets(sheetNames []string) map[string]string {
	found := map[string]string{}
	for _, name := range sheetNames {
		lower := strings.ToLower(name)
		for _, stmtType := range sectionOrder {
			if _, already := found[stmtType]; already {
				continue
			}
			for _, kw := range sheetNameKeywords[stmtType] {
				if strings.Contains(lower, kw) {
					found[stmtType] = name
					break
				}
			}
		}
	}
	return found
}

// ParseMultiSheetWorkbook reads one explicit sheet per statement type
// (layout identical to the tabular CSV grid: header row of periods,
// subsequent rows labeled) and merges the results.
func ParseMultiSheetWorkbook(path string, cfg *mapping.Config) (*statement.FinancialModel, map[string]statement.MappingDiagnostics, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := findFinancialSheets(f.GetSheetList())
	model := statement.NewFinancialModel()
	diagnostics := map[string]statement.MappingDiagnostics{}

	for _, stmtType := range sectionOrder {
		sheetName, ok := sheets[stmtType]
		if !ok {
			continue
		}
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, nil, fmt.Errorf("ingest: read sheet %s: %w", sheetName, err)
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

// ParseStackedWorkbook reads the workbook's single relevant sheet (its
// first sheet, by convention — a stacked model is authored on one tab) and
// runs ParseStackedSheet over its rows.
func ParseStackedWorkbook(path string, cfg *mapping.Config) (*statement.FinancialModel, map[string]statement.MappingDiagnostics, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheetNames := f.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, nil, fmt.Errorf("ingest: workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheetNames[0])
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: read sheet %s: %w", sheetNames[0], err)
	}
	return ParseStackedSheet(rows, cfg)
}
