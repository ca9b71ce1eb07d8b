package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"fsverify/pkg/mapping"
	"fsverify/pkg/statement"
)

// Load auto-detects path's input format and dispatches to the matching
// parser, per spec §6: a directory is CSV; .json is structured; .xlsx/.xlsm
// is inspected for financial-section sheet names to choose multi-sheet vs.
// stacked, falling back to multi-sheet if the stacked attempt yields
// nothing.
func Load(path string, cfg *mapping.Config) (*statement.FinancialModel, map[string]statement.MappingDiagnostics, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: stat %s: %w", path, err)
	}

	if info.IsDir() {
		return ParseCSVDirectory(path, cfg)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("ingest: read %s: %w", path, err)
		}
		return ParseStructuredJSON(data, cfg)

	case ".xlsx", ".xlsm":
		return loadSpreadsheet(path, cfg)

	default:
		return nil, nil, fmt.Errorf("ingest: unrecognized input format for %s", path)
	}
}

func loadSpreadsheet(path string, cfg *mapping.Config) (*statement.FinancialModel, map[string]statement.MappingDiagnostics, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: open workbook %s: %w", path, err)
	}
	sheetNames := f.GetSheetList()
	f.Close()

	found := findFinancialSheets(sheetNames)
	if len(found) >= 2 {
		return ParseMultiSheetWorkbook(path, cfg)
	}

	model, diag, err := ParseStackedWorkbook(path, cfg)
	if err != nil {
		return nil, nil, err
	}
	if len(model.IncomeStatements) == 0 && len(model.BalanceSheets) == 0 && len(model.CashFlows) == 0 {
		return ParseMultiSheetWorkbook(path, cfg)
	}
	return model, diag, nil
}
