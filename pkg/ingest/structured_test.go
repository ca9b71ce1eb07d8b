package ingest

import (
	"testing"

	"fsverify/pkg/mapping"
)

func TestParseStructuredJSONMapsAliases(t *testing.T) {
	data := []byte(`{
		"company_name": "AcmeCo",
		"periods": ["FY2023"],
		"income_statement": {
			"FY2023": {"Net Sales": 1000, "Cost of Goods Sold": 600}
		}
	}`)

	cfg, err := mapping.BuiltinConfig()
	if err != nil {
		t.Fatalf("BuiltinConfig: %v", err)
	}
	model, diagnostics, err := ParseStructuredJSON(data, cfg)
	if err != nil {
		t.Fatalf("ParseStructuredJSON: %v", err)
	}
	if model.CompanyName != "AcmeCo" {
		t.Errorf("company_name = %q, want AcmeCo", model.CompanyName)
	}
	is, ok := model.IncomeStatements["FY2023"]
	if !ok {
		t.Fatalf("missing FY2023 income statement")
	}
	if is.Revenue != 1000 {
		t.Errorf("revenue = %v, want 1000", is.Revenue)
	}
	if is.COGS != 600 {
		t.Errorf("cogs = %v, want 600", is.COGS)
	}
	diag, ok := diagnostics["income_statement"]
	if !ok || diag.MappedCount != 2 {
		t.Errorf("diagnostics = %+v, want 2 mapped fields", diag)
	}
}

func TestParseStructuredJSONRepairsMalformedInput(t *testing.T) {
	// Trailing comma, the classic malformed-analyst-JSON case.
	data := []byte(`{
		"company_name": "AcmeCo",
		"income_statement": {
			"FY2023": {"Net Sales": 1000,},
		},
	}`)

	cfg, err := mapping.BuiltinConfig()
	if err != nil {
		t.Fatalf("BuiltinConfig: %v", err)
	}
	model, _, err := ParseStructuredJSON(data, cfg)
	if err != nil {
		t.Fatalf("ParseStructuredJSON: %v", err)
	}
	if model.IncomeStatements["FY2023"] == nil || model.IncomeStatements["FY2023"].Revenue != 1000 {
		t.Errorf("expected repaired json to still resolve revenue to 1000, got %+v", model.IncomeStatements["FY2023"])
	}
}
