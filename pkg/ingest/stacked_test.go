package ingest

import (
	"testing"

	"fsverify/pkg/mapping"
)

// TestParseStackedSheetSkipsPostDCFSection reproduces spec §8 S5: a single
// free-form sheet with a company-name em dash header, an Income Statement
// block, and a DCF section that both terminates the IS block and contains a
// bogus second "Revenue" row that must never be read.
func TestParseStackedSheetSkipsPostDCFSection(t *testing.T) {
	rows := [][]string{
		{"AcmeCo — Model"},
		{"Income Statement"},
		{"", "FY2023", "FY2024E"},
		{"Revenue", "1000", "1100"},
		{"COGS", "600", "650"},
		{"DCF Valuation"},
		{"Revenue", "9999", "9999"},
	}

	cfg, err := mapping.BuiltinConfig()
	if err != nil {
		t.Fatalf("BuiltinConfig: %v", err)
	}

	model, _, err := ParseStackedSheet(rows, cfg)
	if err != nil {
		t.Fatalf("ParseStackedSheet: %v", err)
	}

	if model.CompanyName != "AcmeCo" {
		t.Errorf("company_name = %q, want AcmeCo", model.CompanyName)
	}

	is2023, ok := model.IncomeStatements["FY2023"]
	if !ok {
		t.Fatalf("missing FY2023 income statement")
	}
	if is2023.Revenue != 1000 {
		t.Errorf("FY2023 revenue = %v, want 1000 (not the post-DCF bogus 9999)", is2023.Revenue)
	}
	if is2023.COGS != 600 {
		t.Errorf("FY2023 cogs = %v, want 600", is2023.COGS)
	}

	is2024, ok := model.IncomeStatements["FY2024E"]
	if !ok {
		t.Fatalf("missing FY2024E income statement")
	}
	if is2024.Revenue != 1100 {
		t.Errorf("FY2024E revenue = %v, want 1100", is2024.Revenue)
	}
}

func TestDetectCompanyNameFallsBackToUnknown(t *testing.T) {
	rows := [][]string{{"Income Statement"}, {"Revenue", "100"}}
	if got := detectCompanyName(rows); got != "Unknown" {
		t.Errorf("detectCompanyName = %q, want Unknown", got)
	}
}

func TestClassifySectionsStopPatternClosesWithoutReopening(t *testing.T) {
	rows := [][]string{
		{"Balance Sheet"},
		{"", "FY2023"},
		{"Cash", "100"},
		{"Comparable Companies Analysis"},
		{"Cash", "999"},
	}
	sections := classifySections(rows)
	if len(sections) != 1 {
		t.Fatalf("expected exactly 1 section, got %d", len(sections))
	}
	if sections[0].endRow != 2 {
		t.Errorf("endRow = %d, want 2 (the stop pattern must not extend the section)", sections[0].endRow)
	}
}
