package ingest

import (
	"testing"

	"fsverify/pkg/mapping"
	"fsverify/pkg/statement"
)

func TestParseTabularGridMapsPeriodsAndLabels(t *testing.T) {
	rows := [][]string{
		{"Line Item", "FY2022", "FY2023"},
		{"Net Sales", "900", "1000"},
		{"Cost of Goods Sold", "500", "600"},
	}
	cfg, err := mapping.BuiltinConfig()
	if err != nil {
		t.Fatalf("BuiltinConfig: %v", err)
	}

	model, diag, err := ParseTabularGrid(rows, statement.TypeIncomeStatement, cfg)
	if err != nil {
		t.Fatalf("ParseTabularGrid: %v", err)
	}
	if diag.MappedCount != 2 {
		t.Errorf("mapped_count = %d, want 2", diag.MappedCount)
	}
	is2022, ok := model.IncomeStatements["FY2022"]
	if !ok || is2022.Revenue != 900 || is2022.COGS != 500 {
		t.Errorf("FY2022 = %+v, want revenue 900 cogs 500", is2022)
	}
	is2023, ok := model.IncomeStatements["FY2023"]
	if !ok || is2023.Revenue != 1000 || is2023.COGS != 600 {
		t.Errorf("FY2023 = %+v, want revenue 1000 cogs 600", is2023)
	}
}

func TestParseTabularGridSkipsBlankLabelRows(t *testing.T) {
	rows := [][]string{
		{"Line Item", "FY2023"},
		{"", "ignored because the label is blank"},
		{"Net Sales", "1000"},
	}
	cfg, err := mapping.BuiltinConfig()
	if err != nil {
		t.Fatalf("BuiltinConfig: %v", err)
	}
	model, _, err := ParseTabularGrid(rows, statement.TypeIncomeStatement, cfg)
	if err != nil {
		t.Fatalf("ParseTabularGrid: %v", err)
	}
	if len(model.IncomeStatements) != 1 {
		t.Fatalf("expected only one mapped income statement period, got %d", len(model.IncomeStatements))
	}
}
