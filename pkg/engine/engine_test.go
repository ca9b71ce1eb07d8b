package engine

import (
	"testing"

	"fsverify/pkg/checks"
	"fsverify/pkg/statement"
)

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

// TestCleanModelProducesNoFailures reproduces spec §8 S1 end to end through
// the engine, not just an individual check function.
func TestCleanModelProducesNoFailures(t *testing.T) {
	eng := New(Options{})
	results, metadata := eng.Run(identityModel())

	for _, r := range results {
		if r.Severity != statement.SeverityPass {
			t.Errorf("%s/%s unexpectedly failed: %s", r.CheckID, r.Period, r.Message)
		}
	}
	for id, status := range metadata {
		if status.Status != "ok" {
			t.Errorf("check %s reported status %q, want ok", id, status.Status)
		}
	}
}

// TestBrokenModelIsCritical reproduces spec §8 S2: a broken balance sheet
// surfaces a CRITICAL result through the full engine run.
func TestBrokenModelIsCritical(t *testing.T) {
	model := identityModel()
	model.BalanceSheets["FY2023"].TotalAssets = 900

	eng := New(Options{})
	results, _ := eng.Run(model)

	foundCritical := false
	for _, r := range results {
		if r.CheckID == "STR-001" && r.Severity == statement.SeverityCritical {
			foundCritical = true
		}
	}
	if !foundCritical {
		t.Fatalf("expected STR-001 to report critical on a broken balance sheet")
	}
}

// TestRunPreservesRegistrationOrder asserts results come back in check ×
// period registration order (spec §5), independent of goroutine completion
// order.
func TestRunPreservesRegistrationOrder(t *testing.T) {
	model := identityModel()
	eng := New(Options{})
	results, _ := eng.Run(model)

	// The identity model has a single period, so the (t-1, t) rollforward
	// checks and the margin/growth checks emit nothing; the expected order
	// lists only the checks that produce at least one result for it.
	defs := checks.AllChecks()
	wantOrder := make([]string, 0, len(defs))
	for _, d := range defs {
		if len(d.Evaluate(model, checks.DefaultTolerances())) > 0 {
			wantOrder = append(wantOrder, d.ID)
		}
	}

	var gotOrder []string
	lastID := ""
	for _, r := range results {
		if r.CheckID != lastID {
			gotOrder = append(gotOrder, r.CheckID)
			lastID = r.CheckID
		}
	}
	if len(gotOrder) != len(wantOrder) {
		t.Fatalf("distinct check IDs in results = %d, want %d", len(gotOrder), len(wantOrder))
	}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("result order[%d] = %s, want %s", i, gotOrder[i], wantOrder[i])
		}
	}
}

func TestCategoryAllowListFilters(t *testing.T) {
	eng := New(Options{CategoryAllow: []string{string(statement.CategoryStructural)}})
	results, _ := eng.Run(identityModel())
	for _, r := range results {
		if r.Category != statement.CategoryStructural {
			t.Errorf("category = %s, want only structural checks to run", r.Category)
		}
	}
}

func TestCheckIDDenylistExcludes(t *testing.T) {
	eng := New(Options{CheckIDDenylist: []string{"STR-001"}})
	results, _ := eng.Run(identityModel())
	for _, r := range results {
		if r.CheckID == "STR-001" {
			t.Fatalf("STR-001 should have been excluded by the denylist")
		}
	}
}
