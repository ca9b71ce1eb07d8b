package checks

import (
	"fmt"
	"math"

	"fsverify/pkg/statement"
)

// reasonablenessChecks flag economically implausible values rather than
// arithmetic breaks, spec §4.8 "Reasonableness" table.
var reasonablenessChecks = []CheckDef{
	{ID: "RSN-001", Name: "Projected margins within historical band", Category: statement.CategoryReasonableness, Evaluate: rsnMarginBand},
	{ID: "RSN-002", Name: "Revenue growth within plausible range", Category: statement.CategoryReasonableness, Evaluate: rsnRevenueGrowth},
	{ID: "RSN-003", Name: "Leverage and coverage within plausible range", Category: statement.CategoryReasonableness, Evaluate: rsnLeverageCoverage},
	{ID: "RSN-004", Name: "Working-capital days within plausible range", Category: statement.CategoryReasonableness, Evaluate: rsnWorkingCapitalDays},
	{ID: "RSN-005", Name: "No negative balances on always-nonnegative fields", Category: statement.CategoryReasonableness, Evaluate: rsnNoNegativeBalances},
	{ID: "RSN-006", Name: "Capex within plausible share of revenue", Category: statement.CategoryReasonableness, Evaluate: rsnCapexShare},
	{ID: "RSN-007", Name: "Free cash flow reconciles; flags sustained cash burn", Category: statement.CategoryReasonableness, Evaluate: rsnFreeCashFlow},
}

type marginSeries struct {
	gross, ebit, net []float64
}

func rsnMarginBand(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	var hist marginSeries
	for _, period := range model.HistoricalPeriods {
		is, ok := model.IncomeStatements[period]
		if !ok || is.Revenue == 0 {
			continue
		}
		hist.gross = append(hist.gross, is.GrossProfit/is.Revenue)
		hist.ebit = append(hist.ebit, is.EBIT/is.Revenue)
		hist.net = append(hist.net, is.NetIncome/is.Revenue)
	}
	if len(hist.gross) < 2 {
		return nil
	}

	checkOne := func(name string, series []float64, actual float64, period string) statement.CheckResult {
		mean, stdev, min, max := meanStdevMinMax(series)
		lowBand, highBand := min-0.05, max+0.05
		withinBand := actual >= lowBand && actual <= highBand
		withinZ := true
		if stdev > 0 {
			z := (actual - mean) / stdev
			withinZ = math.Abs(z) <= 2.5
		}
		pass := withinBand && withinZ
		msg := fmt.Sprintf("%s margin %.2f%% is within the historical band [%.2f%%, %.2f%%]", name, actual*100, lowBand*100, highBand*100)
		if !pass {
			msg = fmt.Sprintf("%s margin %.2f%% is outside the historical band [%.2f%%, %.2f%%]", name, actual*100, lowBand*100, highBand*100)
		}
		return result("RSN-001", "Projected margins within historical band", statement.CategoryReasonableness, period,
			pass, statement.SeverityWarning, msg, mean, actual, highBand-lowBand)
	}

	for _, period := range model.ProjectedPeriods {
		is, ok := model.IncomeStatements[period]
		if !ok || is.Revenue == 0 {
			continue
		}
		out = append(out, checkOne("gross", hist.gross, is.GrossProfit/is.Revenue, period))
		out = append(out, checkOne("EBIT", hist.ebit, is.EBIT/is.Revenue, period))
		out = append(out, checkOne("net", hist.net, is.NetIncome/is.Revenue, period))
	}
	return out
}

// meanStdevMinMax computes the sample statistics RSN-001 needs, with
// sample stdev (n-1 divisor) degrading to 0 for a single observation.
func meanStdevMinMax(xs []float64) (mean, stdev, min, max float64) {
	if len(xs) == 0 {
		return 0, 0, 0, 0
	}
	min, max = xs[0], xs[0]
	sum := 0.0
	for _, x := range xs {
		sum += x
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	mean = sum / float64(len(xs))
	if len(xs) < 2 {
		return mean, 0, min, max
	}
	var sq float64
	for _, x := range xs {
		sq += (x - mean) * (x - mean)
	}
	stdev = math.Sqrt(sq / float64(len(xs)-1))
	return mean, stdev, min, max
}

func rsnRevenueGrowth(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	periods := model.GetOrderedPeriods()
	for i := 1; i < len(periods); i++ {
		prev, cur := periods[i-1], periods[i]
		isPrev, okPrev := model.IncomeStatements[prev]
		isCur, okCur := model.IncomeStatements[cur]
		if !okPrev || !okCur || isPrev.Revenue == 0 {
			continue
		}
		growth := (isCur.Revenue - isPrev.Revenue) / math.Abs(isPrev.Revenue)
		pass := growth >= -0.30 && growth <= 0.50
		severity := statement.SeverityWarning
		if math.Abs(growth) >= 1.00 {
			severity = statement.SeverityError
		}
		msg := fmt.Sprintf("revenue growth %.2f%% is within [-30%%, +50%%]", growth*100)
		if !pass {
			msg = fmt.Sprintf("revenue growth %.2f%% is outside [-30%%, +50%%]", growth*100)
		}
		out = append(out, result("RSN-002", "Revenue growth within plausible range", statement.CategoryReasonableness, cur,
			pass, severity, msg, 0.10, growth, 0.40))
	}
	return out
}

func rsnLeverageCoverage(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		bs, okBS := model.BalanceSheets[period]
		is, okIS := model.IncomeStatements[period]
		if !okBS || !okIS {
			continue
		}
		totalDebt := bs.ShortTermDebt + bs.CurrentPortionLTD + bs.LongTermDebt
		if is.EBITDA != nil && *is.EBITDA > 0 {
			leverage := totalDebt / *is.EBITDA
			pass := leverage <= 8.0
			msg := fmt.Sprintf("debt/EBITDA %.2fx is within 8.0x", leverage)
			if !pass {
				msg = fmt.Sprintf("debt/EBITDA %.2fx exceeds 8.0x", leverage)
			}
			out = append(out, result("RSN-003", "Leverage and coverage within plausible range", statement.CategoryReasonableness, period,
				pass, statement.SeverityWarning, msg, 8.0, leverage, 0))
		}
		if is.InterestExpense > 0 {
			coverage := is.EBIT / is.InterestExpense
			pass := coverage >= 1.0
			msg := fmt.Sprintf("interest coverage %.2fx is at or above 1.0x", coverage)
			severity := statement.SeverityError
			if !pass {
				msg = fmt.Sprintf("interest coverage %.2fx is below 1.0x", coverage)
			}
			out = append(out, result("RSN-003", "Leverage and coverage within plausible range", statement.CategoryReasonableness, period,
				pass, severity, msg, 1.0, coverage, 0))
		}
	}
	return out
}

func rsnWorkingCapitalDays(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		bs, okBS := model.BalanceSheets[period]
		is, okIS := model.IncomeStatements[period]
		if !okBS || !okIS {
			continue
		}
		emit := func(name string, value, lo, hi float64) {
			pass := value >= lo && value <= hi
			msg := fmt.Sprintf("%s %.1f days is within [%.0f, %.0f]", name, value, lo, hi)
			if !pass {
				msg = fmt.Sprintf("%s %.1f days is outside [%.0f, %.0f]", name, value, lo, hi)
			}
			out = append(out, result("RSN-004", "Working-capital days within plausible range", statement.CategoryReasonableness, period,
				pass, statement.SeverityWarning, msg, (lo+hi)/2, value, (hi-lo)/2))
		}
		if is.Revenue != 0 {
			dso := bs.AccountsReceivable / (is.Revenue / 365)
			emit("DSO", dso, 0, 180)
		}
		if is.COGS != 0 {
			dio := bs.Inventory / (is.COGS / 365)
			emit("DIO", dio, 0, 365)
			dpo := bs.AccountsPayable / (is.COGS / 365)
			emit("DPO", dpo, 0, 180)
		}
	}
	return out
}

func rsnNoNegativeBalances(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	emit := func(name string, value float64, period string) {
		pass := value >= -tol.AbsTol
		msg := fmt.Sprintf("%s is non-negative", name)
		if !pass {
			msg = fmt.Sprintf("%s is negative", name)
		}
		out = append(out, result("RSN-005", "No negative balances on always-nonnegative fields", statement.CategoryReasonableness, period,
			pass, statement.SeverityError, msg, 0, value, 0))
	}
	for _, period := range model.GetOrderedPeriods() {
		if bs, ok := model.BalanceSheets[period]; ok {
			emit("cash", bs.Cash, period)
			emit("accounts receivable", bs.AccountsReceivable, period)
			emit("inventory", bs.Inventory, period)
			emit("total assets", bs.TotalAssets, period)
			emit("accounts payable", bs.AccountsPayable, period)
		}
		if is, ok := model.IncomeStatements[period]; ok {
			emit("revenue", is.Revenue, period)
			emit("cogs", is.COGS, period)
		}
	}
	return out
}

func rsnCapexShare(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		is, okIS := model.IncomeStatements[period]
		cf, okCF := model.CashFlows[period]
		if !okIS || !okCF || is.Revenue == 0 {
			continue
		}
		share := math.Abs(cf.Capex) / is.Revenue
		pass := share <= 0.40
		msg := fmt.Sprintf("capex is %.1f%% of revenue, within 40%%", share*100)
		if !pass {
			msg = fmt.Sprintf("capex is %.1f%% of revenue, exceeding 40%%", share*100)
		}
		out = append(out, result("RSN-006", "Capex within plausible share of revenue", statement.CategoryReasonableness, period,
			pass, statement.SeverityWarning, msg, 0.40, share, 0))
	}
	return out
}

func rsnFreeCashFlow(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	periods := model.GetOrderedPeriods()
	burnStreak := 0
	for _, period := range periods {
		cf, ok := model.CashFlows[period]
		if !ok {
			continue
		}
		cfoPlusCapex := cf.CashFromOperations + cf.Capex

		if cf.FreeCashFlow != nil {
			t := bandFor(cfoPlusCapex, *cf.FreeCashFlow, tol.AbsTol, tol.PctTol)
			out = append(out, closeCheck("RSN-007", "Free cash flow reconciles; flags sustained cash burn", statement.CategoryReasonableness, period,
				statement.SeverityError, cfoPlusCapex, *cf.FreeCashFlow, t,
				"free cash flow reconciles to CFO plus capex",
				"free cash flow does not reconcile to CFO plus capex"))
		}

		if cfoPlusCapex < 0 {
			burnStreak++
		} else {
			burnStreak = 0
		}
		if burnStreak >= 3 {
			out = append(out, result("RSN-007", "Free cash flow reconciles; flags sustained cash burn", statement.CategoryReasonableness, period,
				false, statement.SeverityWarning,
				"CFO plus capex has been negative for 3 or more consecutive periods",
				0, cfoPlusCapex, 0))
		}
	}
	return out
}
