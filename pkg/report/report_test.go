package report

import (
	"encoding/json"
	"strings"
	"testing"

	"fsverify/pkg/engine"
	"fsverify/pkg/statement"
)

func ptr(v float64) *float64 { return &v }

func sampleResults() []statement.CheckResult {
	return []statement.CheckResult{
		{CheckID: "STR-001", Category: statement.CategoryStructural, Severity: statement.SeverityPass, Period: "FY2023"},
		{CheckID: "STR-010", Category: statement.CategoryStructural, Severity: statement.SeverityError, Period: "FY2023", Message: "gross profit breaks", ExpectedValue: ptr(100), ActualValue: ptr(90)},
		{CheckID: "XST-001", Category: statement.CategoryCrossStatement, Severity: statement.SeverityCritical, Period: "FY2023", Message: "net income mismatch"},
	}
}

func sampleMetadata() map[string]engine.CheckStatus {
	return map[string]engine.CheckStatus{
		"STR-001": {Status: "ok"},
		"STR-010": {Status: "ok"},
		"XST-001": {Status: "ok"},
	}
}

func TestBuildComputesCriticalHealth(t *testing.T) {
	model := statement.NewFinancialModel()
	model.CompanyName = "AcmeCo"
	model.Periods = []string{"FY2023"}

	rep := Build(model, sampleResults(), sampleMetadata())
	if rep.Summary.OverallHealth != HealthCritical {
		t.Errorf("overall_health = %s, want critical", rep.Summary.OverallHealth)
	}
	if rep.Summary.TotalChecks != 3 || rep.Summary.Passed != 1 || rep.Summary.Failed != 2 {
		t.Errorf("totals = %+v, want total 3 passed 1 failed 2", rep.Summary)
	}
	if rep.ExitCode() != 2 {
		t.Errorf("exit code = %d, want 2", rep.ExitCode())
	}
}

func TestOverallHealthPrecedence(t *testing.T) {
	cases := []struct {
		bySeverity map[statement.Severity]int
		want       OverallHealth
	}{
		{map[statement.Severity]int{statement.SeverityPass: 5}, HealthClean},
		{map[statement.Severity]int{statement.SeverityWarning: 1, statement.SeverityPass: 4}, HealthWarningsOnly},
		{map[statement.Severity]int{statement.SeverityError: 1, statement.SeverityWarning: 1}, HealthErrorsFound},
		{map[statement.Severity]int{statement.SeverityCritical: 1, statement.SeverityError: 1}, HealthCritical},
	}
	for _, c := range cases {
		if got := overallHealth(c.bySeverity); got != c.want {
			t.Errorf("overallHealth(%v) = %s, want %s", c.bySeverity, got, c.want)
		}
	}
}

func TestGetFailuresFiltersBySeverityRank(t *testing.T) {
	model := statement.NewFinancialModel()
	rep := Build(model, sampleResults(), sampleMetadata())

	errorsAndUp := rep.GetFailures(statement.SeverityError)
	if len(errorsAndUp) != 2 {
		t.Fatalf("GetFailures(error) returned %d, want 2", len(errorsAndUp))
	}
	criticalOnly := rep.GetFailures(statement.SeverityCritical)
	if len(criticalOnly) != 1 || criticalOnly[0].CheckID != "XST-001" {
		t.Fatalf("GetFailures(critical) = %+v, want just XST-001", criticalOnly)
	}
}

func TestToJSONRoundTrips(t *testing.T) {
	model := statement.NewFinancialModel()
	model.CompanyName = "AcmeCo"
	rep := Build(model, sampleResults(), sampleMetadata())

	data, err := rep.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal report json: %v", err)
	}
	summary, ok := decoded["summary"].(map[string]interface{})
	if !ok {
		t.Fatalf("decoded report missing summary object")
	}
	if summary["company_name"] != "AcmeCo" {
		t.Errorf("company_name = %v, want AcmeCo", summary["company_name"])
	}
}

func TestRenderMarkdownListsFailures(t *testing.T) {
	model := statement.NewFinancialModel()
	rep := Build(model, sampleResults(), sampleMetadata())
	md := rep.RenderMarkdown()
	if !strings.Contains(md, "STR-010") || !strings.Contains(md, "XST-001") {
		t.Errorf("markdown report missing failure rows: %s", md)
	}
}

func TestRenderHTMLWrapsMarkdown(t *testing.T) {
	model := statement.NewFinancialModel()
	rep := Build(model, sampleResults(), sampleMetadata())
	html, err := rep.RenderHTML()
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(html, "<h1>") && !strings.Contains(html, "<table>") {
		t.Errorf("expected goldmark to emit some html structure, got: %s", html)
	}
}
