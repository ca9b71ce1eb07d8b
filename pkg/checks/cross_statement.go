package checks

import (
	"fmt"
	"math"

	"fsverify/pkg/statement"
)

// crossStatementChecks reconcile line items across the three statements,
// spec §4.8 "Cross-statement" table. Rollforward checks (XST-002/006/007)
// iterate (t-1, t) period pairs in declared order.
var crossStatementChecks = []CheckDef{
	{ID: "XST-001", Name: "Net income agrees IS vs CF", Category: statement.CategoryCrossStatement, Evaluate: xstNetIncomeAgrees},
	{ID: "XST-002", Name: "Retained earnings rolls forward", Category: statement.CategoryCrossStatement, Evaluate: xstRetainedEarningsRollforward},
	{ID: "XST-003", Name: "CF ending cash agrees with BS cash", Category: statement.CategoryCrossStatement, Evaluate: xstEndingCashAgreesBS},
	{ID: "XST-004", Name: "CF beginning cash continuity", Category: statement.CategoryCrossStatement, Evaluate: xstBeginningCashContinuity},
	{ID: "XST-005", Name: "D&A agrees IS vs CF", Category: statement.CategoryCrossStatement, Evaluate: xstDAAgrees},
	{ID: "XST-006", Name: "PP&E rolls forward via capex/depreciation", Category: statement.CategoryCrossStatement, Evaluate: xstPPERollforward},
	{ID: "XST-007", Name: "Debt balance rolls forward via issuance/repayment", Category: statement.CategoryCrossStatement, Evaluate: xstDebtRollforward},
	{ID: "XST-008", Name: "Implied interest rate is plausible", Category: statement.CategoryCrossStatement, Evaluate: xstImpliedInterestRate},
	{ID: "XST-009", Name: "Working-capital deltas agree BS vs CF", Category: statement.CategoryCrossStatement, Evaluate: xstWorkingCapitalDeltas},
	{ID: "XST-010", Name: "Effective tax rate is plausible", Category: statement.CategoryCrossStatement, Evaluate: xstEffectiveTaxRate},
}

func xstNetIncomeAgrees(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		is, hasIS := model.IncomeStatements[period]
		cf, hasCF := model.CashFlows[period]
		if !hasIS || !hasCF {
			continue
		}
		t := bandFor(is.NetIncome, cf.NetIncome, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("XST-001", "Net income agrees IS vs CF", statement.CategoryCrossStatement, period,
			statement.SeverityCritical, is.NetIncome, cf.NetIncome, t,
			"income statement and cash flow net income agree",
			"income statement and cash flow net income disagree"))
	}
	return out
}

func xstRetainedEarningsRollforward(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	periods := model.GetOrderedPeriods()
	for i := 1; i < len(periods); i++ {
		prev, cur := periods[i-1], periods[i]
		bsPrev, okPrev := model.BalanceSheets[prev]
		bsCur, okCur := model.BalanceSheets[cur]
		is, okIS := model.IncomeStatements[cur]
		cf, okCF := model.CashFlows[cur]
		if !okPrev || !okCur || !okIS || !okCF {
			continue
		}
		expected := bsPrev.RetainedEarnings + is.NetIncome + cf.DividendsPaid
		t := math.Max(tol.AbsTol, 0.02*math.Abs(bsCur.RetainedEarnings))
		out = append(out, closeCheck("XST-002", "Retained earnings rolls forward", statement.CategoryCrossStatement, cur,
			statement.SeverityError, expected, bsCur.RetainedEarnings, t,
			"retained earnings reconciles to prior retained earnings plus net income plus dividends",
			"retained earnings does not reconcile to prior retained earnings plus net income plus dividends"))
	}
	return out
}

func xstEndingCashAgreesBS(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		cf, hasCF := model.CashFlows[period]
		bs, hasBS := model.BalanceSheets[period]
		if !hasCF || !hasBS {
			continue
		}
		t := bandFor(cf.EndingCash, bs.Cash, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("XST-003", "CF ending cash agrees with BS cash", statement.CategoryCrossStatement, period,
			statement.SeverityCritical, cf.EndingCash, bs.Cash, t,
			"cash flow ending cash agrees with balance sheet cash",
			"cash flow ending cash disagrees with balance sheet cash"))
	}
	return out
}

func xstBeginningCashContinuity(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	periods := model.GetOrderedPeriods()
	for i := 1; i < len(periods); i++ {
		prev, cur := periods[i-1], periods[i]
		cfPrev, okPrev := model.CashFlows[prev]
		cfCur, okCur := model.CashFlows[cur]
		if !okPrev || !okCur {
			continue
		}
		t := bandFor(cfPrev.EndingCash, cfCur.BeginningCash, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("XST-004", "CF beginning cash continuity", statement.CategoryCrossStatement, cur,
			statement.SeverityCritical, cfPrev.EndingCash, cfCur.BeginningCash, t,
			"beginning cash matches the prior period's ending cash",
			"beginning cash does not match the prior period's ending cash"))
	}
	return out
}

func xstDAAgrees(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		is, hasIS := model.IncomeStatements[period]
		cf, hasCF := model.CashFlows[period]
		if !hasIS || !hasCF {
			continue
		}
		isDA := is.Depreciation + is.Amortization
		if isDA == 0 || cf.DepreciationAmortization == 0 {
			continue
		}
		t := bandFor(isDA, cf.DepreciationAmortization, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("XST-005", "D&A agrees IS vs CF", statement.CategoryCrossStatement, period,
			statement.SeverityWarning, isDA, cf.DepreciationAmortization, t,
			"income statement D&A agrees with cash flow D&A",
			"income statement D&A disagrees with cash flow D&A"))
	}
	return out
}

func xstPPERollforward(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	periods := model.GetOrderedPeriods()
	for i := 1; i < len(periods); i++ {
		prev, cur := periods[i-1], periods[i]
		bsPrev, okPrev := model.BalanceSheets[prev]
		bsCur, okCur := model.BalanceSheets[cur]
		is, okIS := model.IncomeStatements[cur]
		cf, okCF := model.CashFlows[cur]
		if !okPrev || !okCur || !okIS || !okCF {
			continue
		}
		expected := bsPrev.PPENet + (-cf.Capex) - is.Depreciation
		t := math.Max(tol.AbsTol, 0.05*math.Abs(bsCur.PPENet))
		out = append(out, closeCheck("XST-006", "PP&E rolls forward via capex/depreciation", statement.CategoryCrossStatement, cur,
			statement.SeverityWarning, expected, bsCur.PPENet, t,
			"net PP&E reconciles to prior net PP&E plus capex less depreciation",
			"net PP&E does not reconcile to prior net PP&E plus capex less depreciation"))
	}
	return out
}

func xstDebtRollforward(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	periods := model.GetOrderedPeriods()
	sumDebt := func(bs *statement.BalanceSheet) float64 {
		return bs.ShortTermDebt + bs.CurrentPortionLTD + bs.LongTermDebt
	}
	for i := 1; i < len(periods); i++ {
		prev, cur := periods[i-1], periods[i]
		bsPrev, okPrev := model.BalanceSheets[prev]
		bsCur, okCur := model.BalanceSheets[cur]
		cf, okCF := model.CashFlows[cur]
		if !okPrev || !okCur || !okCF {
			continue
		}
		expected := sumDebt(bsPrev) + cf.DebtIssuance + cf.DebtRepayment
		actual := sumDebt(bsCur)
		t := math.Max(tol.AbsTol, 0.03*math.Abs(actual))
		out = append(out, closeCheck("XST-007", "Debt balance rolls forward via issuance/repayment", statement.CategoryCrossStatement, cur,
			statement.SeverityWarning, expected, actual, t,
			"total debt reconciles to prior total debt plus issuance plus repayment",
			"total debt does not reconcile to prior total debt plus issuance plus repayment"))
	}
	return out
}

func xstImpliedInterestRate(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	periods := model.GetOrderedPeriods()
	sumDebt := func(bs *statement.BalanceSheet) float64 {
		return bs.ShortTermDebt + bs.CurrentPortionLTD + bs.LongTermDebt
	}
	for i := 1; i < len(periods); i++ {
		prev, cur := periods[i-1], periods[i]
		bsPrev, okPrev := model.BalanceSheets[prev]
		bsCur, okCur := model.BalanceSheets[cur]
		is, okIS := model.IncomeStatements[cur]
		if !okPrev || !okCur || !okIS {
			continue
		}
		avgDebt := (sumDebt(bsPrev) + sumDebt(bsCur)) / 2
		if avgDebt <= 0 || is.InterestExpense <= 0 {
			continue
		}
		rate := is.InterestExpense / avgDebt
		pass := rate >= 0.005 && rate <= 0.15
		msg := fmt.Sprintf("implied interest rate %.2f%% is within [0.50%%, 15.00%%]", rate*100)
		if !pass {
			msg = fmt.Sprintf("implied interest rate %.2f%% is outside [0.50%%, 15.00%%]", rate*100)
		}
		out = append(out, result("XST-008", "Implied interest rate is plausible", statement.CategoryCrossStatement, cur,
			pass, statement.SeverityWarning, msg, 0.0775, rate, 0.0725))
	}
	return out
}

func xstWorkingCapitalDeltas(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	periods := model.GetOrderedPeriods()
	type wcLine struct {
		label     string
		bsGetter  func(*statement.BalanceSheet) float64
		cfGetter  func(*statement.CashFlowStatement) float64
		liability bool
	}
	lines := []wcLine{
		{"accounts receivable", func(b *statement.BalanceSheet) float64 { return b.AccountsReceivable }, func(c *statement.CashFlowStatement) float64 { return c.ChangeInReceivables }, false},
		{"inventory", func(b *statement.BalanceSheet) float64 { return b.Inventory }, func(c *statement.CashFlowStatement) float64 { return c.ChangeInInventory }, false},
		{"accounts payable", func(b *statement.BalanceSheet) float64 { return b.AccountsPayable }, func(c *statement.CashFlowStatement) float64 { return c.ChangeInPayables }, true},
	}
	for i := 1; i < len(periods); i++ {
		prev, cur := periods[i-1], periods[i]
		bsPrev, okPrev := model.BalanceSheets[prev]
		bsCur, okCur := model.BalanceSheets[cur]
		cf, okCF := model.CashFlows[cur]
		if !okPrev || !okCur || !okCF {
			continue
		}
		for _, line := range lines {
			bsDelta := line.bsGetter(bsCur) - line.bsGetter(bsPrev)
			expected := bsDelta
			if !line.liability {
				expected = -bsDelta // asset increase is a cash use
			}
			actual := line.cfGetter(cf)
			t := math.Max(tol.AbsTol, 0.05*math.Max(math.Abs(bsDelta), math.Abs(actual)))
			out = append(out, closeCheck("XST-009", fmt.Sprintf("Working-capital delta agrees BS vs CF (%s)", line.label),
				statement.CategoryCrossStatement, cur, statement.SeverityWarning, expected, actual, t,
				fmt.Sprintf("%s balance-sheet delta agrees with its cash-flow line", line.label),
				fmt.Sprintf("%s balance-sheet delta disagrees with its cash-flow line", line.label)))
		}
	}
	return out
}

func xstEffectiveTaxRate(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		is, ok := model.IncomeStatements[period]
		if !ok || is.EBT == 0 {
			continue
		}
		rate := is.TaxExpense / is.EBT
		pass := rate >= -0.05 && rate <= 0.50
		msg := fmt.Sprintf("effective tax rate %.2f%% is within [-5%%, 50%%]", rate*100)
		if !pass {
			msg = fmt.Sprintf("effective tax rate %.2f%% is outside [-5%%, 50%%]", rate*100)
		}
		out = append(out, result("XST-010", "Effective tax rate is plausible", statement.CategoryCrossStatement, period,
			pass, statement.SeverityWarning, msg, 0.225, rate, 0.275))
	}
	return out
}
