package checks

import (
	"testing"

	"fsverify/pkg/statement"
)

// TestRetainedEarningsRollforwardFailure reproduces spec §8 S3: retained
// earnings of 590 that doesn't reconcile to prior retained earnings plus net
// income plus dividends within the 2%-of-actual tolerance floor.
func TestRetainedEarningsRollforwardFailure(t *testing.T) {
	model := statement.NewFinancialModel()
	model.Periods = []string{"FY2022", "FY2023"}

	model.BalanceSheets["FY2022"] = &statement.BalanceSheet{Period: "FY2022", RetainedEarnings: 400}
	model.BalanceSheets["FY2023"] = &statement.BalanceSheet{Period: "FY2023", RetainedEarnings: 590}
	model.IncomeStatements["FY2023"] = &statement.IncomeStatement{Period: "FY2023", NetIncome: 150}
	model.CashFlows["FY2023"] = &statement.CashFlowStatement{Period: "FY2023", DividendsPaid: 0}
	// expected = 400 + 150 + 0 = 550, actual 590, delta 40 > tol(max(0.01, 0.02*590)=11.8)

	results := xstRetainedEarningsRollforward(model, DefaultTolerances())
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Severity != statement.SeverityError {
		t.Errorf("severity = %s, want error", r.Severity)
	}
	if r.Period != "FY2023" {
		t.Errorf("period = %s, want FY2023", r.Period)
	}
	if r.ExpectedValue == nil || *r.ExpectedValue != 550 {
		t.Errorf("expected_value = %v, want 550", r.ExpectedValue)
	}
}

// TestRetainedEarningsRollforwardWithinTolerance asserts the 2%-of-actual
// floor actually widens the band rather than just matching the default.
func TestRetainedEarningsRollforwardWithinTolerance(t *testing.T) {
	model := statement.NewFinancialModel()
	model.Periods = []string{"FY2022", "FY2023"}

	model.BalanceSheets["FY2022"] = &statement.BalanceSheet{Period: "FY2022", RetainedEarnings: 1000}
	model.BalanceSheets["FY2023"] = &statement.BalanceSheet{Period: "FY2023", RetainedEarnings: 1215}
	model.IncomeStatements["FY2023"] = &statement.IncomeStatement{Period: "FY2023", NetIncome: 200}
	model.CashFlows["FY2023"] = &statement.CashFlowStatement{Period: "FY2023", DividendsPaid: 0}
	// expected = 1200, actual 1215, delta 15 <= tol(max(0.01, 0.02*1215)=24.3);
	// the default 0.5% band (0.005*1215=6.075) would reject it.

	results := xstRetainedEarningsRollforward(model, DefaultTolerances())
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Severity != statement.SeverityPass {
		t.Errorf("severity = %s, want pass", results[0].Severity)
	}
}

func TestNetIncomeAgreementAcrossStatements(t *testing.T) {
	model := statement.NewFinancialModel()
	model.Periods = []string{"FY2023"}
	model.IncomeStatements["FY2023"] = &statement.IncomeStatement{Period: "FY2023", NetIncome: 100}
	model.CashFlows["FY2023"] = &statement.CashFlowStatement{Period: "FY2023", NetIncome: 90}

	results := xstNetIncomeAgrees(model, DefaultTolerances())
	if len(results) != 1 || results[0].Severity != statement.SeverityCritical {
		t.Fatalf("expected one critical mismatch, got %+v", results)
	}
}
