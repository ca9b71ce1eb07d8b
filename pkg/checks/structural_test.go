package checks

import (
	"testing"

	"fsverify/pkg/statement"
)

// identityModel returns a single-period model where every structural
// identity holds exactly, used as the baseline for "this check should pass"
// assertions and perturbed per-test to force a specific failure.
func identityModel() *statement.FinancialModel {
	m := statement.NewFinancialModel()
	m.Periods = []string{"FY2023"}
	m.HistoricalPeriods = []string{"FY2023"}

	m.IncomeStatements["FY2023"] = &statement.IncomeStatement{
		Period: "FY2023", Revenue: 1000, COGS: 600, GrossProfit: 400,
		SGA: 100, RD: 50, Depreciation: 20, TotalOpex: 170,
		EBIT: 230, InterestExpense: 10, EBT: 220, TaxExpense: 55, NetIncome: 165,
	}
	m.BalanceSheets["FY2023"] = &statement.BalanceSheet{
		Period: "FY2023",
		Cash: 200, AccountsReceivable: 150, Inventory: 100, TotalCurrentAssets: 450,
		PPEGross: 500, AccumulatedDepreciation: 100, PPENet: 400, TotalNonCurrentAssets: 400,
		TotalAssets: 850,
		AccountsPayable: 80, TotalCurrentLiabilities: 80,
		LongTermDebt: 200, TotalNonCurrentLiabilities: 200, TotalLiabilities: 280,
		CommonStock: 50, AdditionalPaidInCapital: 150, RetainedEarnings: 370, TotalEquity: 570,
		TotalLiabilitiesAndEquity: 850,
	}
	m.CashFlows["FY2023"] = &statement.CashFlowStatement{
		Period: "FY2023", NetIncome: 165, DepreciationAmortization: 20,
		CashFromOperations: 185, Capex: -50, CashFromInvesting: -50,
		DividendsPaid: -20, CashFromFinancing: -20,
		NetChangeInCash: 115, BeginningCash: 85, EndingCash: 200,
	}
	return m
}

func onlyFail(results []statement.CheckResult) []statement.CheckResult {
	var out []statement.CheckResult
	for _, r := range results {
		if r.Severity != statement.SeverityPass {
			out = append(out, r)
		}
	}
	return out
}

// TestIdentityModelBalances reproduces spec §8 S1: a fully self-consistent
// model produces no structural failures.
func TestIdentityModelBalances(t *testing.T) {
	model := identityModel()
	tol := DefaultTolerances()
	for _, def := range structuralChecks {
		for _, r := range def.Evaluate(model, tol) {
			if r.Severity != statement.SeverityPass {
				t.Errorf("%s unexpectedly failed: %s", def.ID, r.Message)
			}
		}
	}
}

// TestBrokenBalanceSheetIsCritical reproduces spec §8 S2: a balance sheet
// where total assets doesn't equal total liabilities and equity fails
// STR-001 at CRITICAL severity.
func TestBrokenBalanceSheetIsCritical(t *testing.T) {
	model := identityModel()
	model.BalanceSheets["FY2023"].TotalAssets = 900 // no longer equals total L&E of 850

	results := onlyFail(strBalanceSheetBalances(model, DefaultTolerances()))
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 STR-001 failure, got %d", len(results))
	}
	if results[0].Severity != statement.SeverityCritical {
		t.Errorf("severity = %s, want critical", results[0].Severity)
	}
}

func TestPPENetSkippedWhenAllZero(t *testing.T) {
	model := statement.NewFinancialModel()
	model.Periods = []string{"FY2023"}
	model.BalanceSheets["FY2023"] = &statement.BalanceSheet{Period: "FY2023"}
	results := strPPENet(model, DefaultTolerances())
	if len(results) != 0 {
		t.Errorf("expected STR-030 to be skipped when PP&E fields are all zero, got %d results", len(results))
	}
}

func TestUniversalInvariantTotalsReconcile(t *testing.T) {
	model := identityModel()
	model.BalanceSheets["FY2023"].TotalAssets = 900

	var all []statement.CheckResult
	for _, def := range AllChecks() {
		all = append(all, def.Evaluate(model, DefaultTolerances())...)
	}
	passed, failed := 0, 0
	for _, r := range all {
		if r.Severity == statement.SeverityPass {
			passed++
		} else {
			failed++
		}
	}
	if passed+failed != len(all) {
		t.Fatalf("passed(%d) + failed(%d) != total(%d)", passed, failed, len(all))
	}
}
