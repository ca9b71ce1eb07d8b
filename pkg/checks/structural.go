package checks

import "fsverify/pkg/statement"

// structuralChecks are the intra-statement arithmetic rules, spec §4.8
// "Structural" table.
var structuralChecks = []CheckDef{
	{ID: "STR-001", Name: "Balance sheet balances", Category: statement.CategoryStructural, Evaluate: strBalanceSheetBalances},
	{ID: "STR-002", Name: "Total assets = current + non-current", Category: statement.CategoryStructural, Evaluate: strTotalAssetsSplit},
	{ID: "STR-003", Name: "Total liabilities = current + non-current", Category: statement.CategoryStructural, Evaluate: strTotalLiabilitiesSplit},
	{ID: "STR-004", Name: "Total L&E = liabilities + equity", Category: statement.CategoryStructural, Evaluate: strTotalLESplit},
	{ID: "STR-010", Name: "Gross profit = revenue - COGS", Category: statement.CategoryStructural, Evaluate: strGrossProfit},
	{ID: "STR-011", Name: "EBIT bridges from gross profit", Category: statement.CategoryStructural, Evaluate: strEBIT},
	{ID: "STR-012", Name: "EBT bridges from EBIT", Category: statement.CategoryStructural, Evaluate: strEBT},
	{ID: "STR-013", Name: "Net income = EBT - tax", Category: statement.CategoryStructural, Evaluate: strNetIncome},
	{ID: "STR-020", Name: "Ending cash rolls forward", Category: statement.CategoryStructural, Evaluate: strEndingCash},
	{ID: "STR-021", Name: "Net change in cash = CFO + CFI + CFF", Category: statement.CategoryStructural, Evaluate: strNetChangeInCash},
	{ID: "STR-022", Name: "CFO bridges from net income", Category: statement.CategoryStructural, Evaluate: strCFOBridge},
	{ID: "STR-030", Name: "PP&E net = gross - accumulated depreciation", Category: statement.CategoryStructural, Evaluate: strPPENet},
	{ID: "STR-031", Name: "Total current assets sums its components", Category: statement.CategoryStructural, Evaluate: strTotalCurrentAssets},
	{ID: "STR-032", Name: "Total current liabilities sums its components", Category: statement.CategoryStructural, Evaluate: strTotalCurrentLiabilities},
	{ID: "STR-033", Name: "Total equity sums its components", Category: statement.CategoryStructural, Evaluate: strTotalEquity},
}

func strBalanceSheetBalances(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		bs, ok := model.BalanceSheets[period]
		if !ok {
			continue
		}
		t := bandFor(bs.TotalAssets, bs.TotalLiabilitiesAndEquity, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-001", "Balance sheet balances", statement.CategoryStructural, period,
			statement.SeverityCritical, bs.TotalLiabilitiesAndEquity, bs.TotalAssets, t,
			"total assets equals total liabilities and equity",
			"total assets does not equal total liabilities and equity"))
	}
	return out
}

func strTotalAssetsSplit(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		bs, ok := model.BalanceSheets[period]
		if !ok {
			continue
		}
		expected := bs.TotalCurrentAssets + bs.TotalNonCurrentAssets
		t := bandFor(expected, bs.TotalAssets, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-002", "Total assets = current + non-current", statement.CategoryStructural, period,
			statement.SeverityError, expected, bs.TotalAssets, t,
			"total assets reconciles to current + non-current assets",
			"total assets does not reconcile to current + non-current assets"))
	}
	return out
}

func strTotalLiabilitiesSplit(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		bs, ok := model.BalanceSheets[period]
		if !ok {
			continue
		}
		expected := bs.TotalCurrentLiabilities + bs.TotalNonCurrentLiabilities
		t := bandFor(expected, bs.TotalLiabilities, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-003", "Total liabilities = current + non-current", statement.CategoryStructural, period,
			statement.SeverityError, expected, bs.TotalLiabilities, t,
			"total liabilities reconciles to current + non-current liabilities",
			"total liabilities does not reconcile to current + non-current liabilities"))
	}
	return out
}

func strTotalLESplit(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		bs, ok := model.BalanceSheets[period]
		if !ok {
			continue
		}
		expected := bs.TotalLiabilities + bs.TotalEquity
		t := bandFor(expected, bs.TotalLiabilitiesAndEquity, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-004", "Total L&E = liabilities + equity", statement.CategoryStructural, period,
			statement.SeverityError, expected, bs.TotalLiabilitiesAndEquity, t,
			"total liabilities and equity reconciles to liabilities + equity",
			"total liabilities and equity does not reconcile to liabilities + equity"))
	}
	return out
}

func strGrossProfit(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		is, ok := model.IncomeStatements[period]
		if !ok {
			continue
		}
		expected := is.Revenue - is.COGS
		t := bandFor(expected, is.GrossProfit, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-010", "Gross profit = revenue - COGS", statement.CategoryStructural, period,
			statement.SeverityError, expected, is.GrossProfit, t,
			"gross profit reconciles to revenue minus COGS",
			"gross profit does not reconcile to revenue minus COGS"))
	}
	return out
}

func strEBIT(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		is, ok := model.IncomeStatements[period]
		if !ok {
			continue
		}
		opex := is.TotalOpex
		if opex == 0 {
			opex = is.SGA + is.RD + is.Depreciation + is.Amortization + is.OtherOpex
		}
		expected := is.GrossProfit - opex
		t := bandFor(expected, is.EBIT, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-011", "EBIT bridges from gross profit", statement.CategoryStructural, period,
			statement.SeverityError, expected, is.EBIT, t,
			"EBIT reconciles to gross profit minus operating expenses",
			"EBIT does not reconcile to gross profit minus operating expenses"))
	}
	return out
}

func strEBT(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		is, ok := model.IncomeStatements[period]
		if !ok {
			continue
		}
		expected := is.EBIT - is.InterestExpense + is.InterestIncome + is.OtherIncomeExpense
		t := bandFor(expected, is.EBT, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-012", "EBT bridges from EBIT", statement.CategoryStructural, period,
			statement.SeverityError, expected, is.EBT, t,
			"EBT reconciles to EBIT net of interest and other income/expense",
			"EBT does not reconcile to EBIT net of interest and other income/expense"))
	}
	return out
}

func strNetIncome(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		is, ok := model.IncomeStatements[period]
		if !ok {
			continue
		}
		expected := is.EBT - is.TaxExpense
		t := bandFor(expected, is.NetIncome, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-013", "Net income = EBT - tax", statement.CategoryStructural, period,
			statement.SeverityError, expected, is.NetIncome, t,
			"net income reconciles to EBT minus tax expense",
			"net income does not reconcile to EBT minus tax expense"))
	}
	return out
}

func strEndingCash(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		cf, ok := model.CashFlows[period]
		if !ok {
			continue
		}
		expected := cf.BeginningCash + cf.NetChangeInCash
		t := bandFor(expected, cf.EndingCash, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-020", "Ending cash rolls forward", statement.CategoryStructural, period,
			statement.SeverityCritical, expected, cf.EndingCash, t,
			"ending cash reconciles to beginning cash plus net change",
			"ending cash does not reconcile to beginning cash plus net change"))
	}
	return out
}

func strNetChangeInCash(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		cf, ok := model.CashFlows[period]
		if !ok {
			continue
		}
		expected := cf.CashFromOperations + cf.CashFromInvesting + cf.CashFromFinancing
		t := bandFor(expected, cf.NetChangeInCash, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-021", "Net change in cash = CFO + CFI + CFF", statement.CategoryStructural, period,
			statement.SeverityCritical, expected, cf.NetChangeInCash, t,
			"net change in cash reconciles to CFO + CFI + CFF",
			"net change in cash does not reconcile to CFO + CFI + CFF"))
	}
	return out
}

func strCFOBridge(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		cf, ok := model.CashFlows[period]
		if !ok {
			continue
		}
		expected := cf.NetIncome + cf.DepreciationAmortization + cf.StockBasedCompensation +
			cf.DeferredTaxes + cf.ChangeInReceivables + cf.ChangeInInventory + cf.ChangeInPayables +
			cf.ChangeInOtherWorkingCapital + cf.OtherOperating
		t := bandFor(expected, cf.CashFromOperations, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-022", "CFO bridges from net income", statement.CategoryStructural, period,
			statement.SeverityError, expected, cf.CashFromOperations, t,
			"cash from operations reconciles to the net-income bridge",
			"cash from operations does not reconcile to the net-income bridge"))
	}
	return out
}

func strPPENet(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		bs, ok := model.BalanceSheets[period]
		if !ok {
			continue
		}
		if bs.PPEGross == 0 && bs.AccumulatedDepreciation == 0 && bs.PPENet == 0 {
			continue
		}
		expected := bs.PPEGross - bs.AccumulatedDepreciation
		t := bandFor(expected, bs.PPENet, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-030", "PP&E net = gross - accumulated depreciation", statement.CategoryStructural, period,
			statement.SeverityError, expected, bs.PPENet, t,
			"PP&E net reconciles to gross minus accumulated depreciation",
			"PP&E net does not reconcile to gross minus accumulated depreciation"))
	}
	return out
}

func strTotalCurrentAssets(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		bs, ok := model.BalanceSheets[period]
		if !ok {
			continue
		}
		expected := bs.Cash + bs.ShortTermInvestments + bs.AccountsReceivable + bs.Inventory +
			bs.PrepaidExpenses + bs.OtherCurrentAssets
		t := bandFor(expected, bs.TotalCurrentAssets, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-031", "Total current assets sums its components", statement.CategoryStructural, period,
			statement.SeverityError, expected, bs.TotalCurrentAssets, t,
			"total current assets reconciles to its components",
			"total current assets does not reconcile to its components"))
	}
	return out
}

func strTotalCurrentLiabilities(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		bs, ok := model.BalanceSheets[period]
		if !ok {
			continue
		}
		expected := bs.AccountsPayable + bs.AccruedLiabilities + bs.ShortTermDebt +
			bs.CurrentPortionLTD + bs.OtherCurrentLiabilities
		t := bandFor(expected, bs.TotalCurrentLiabilities, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-032", "Total current liabilities sums its components", statement.CategoryStructural, period,
			statement.SeverityError, expected, bs.TotalCurrentLiabilities, t,
			"total current liabilities reconciles to its components",
			"total current liabilities does not reconcile to its components"))
	}
	return out
}

func strTotalEquity(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult {
	var out []statement.CheckResult
	for _, period := range model.GetOrderedPeriods() {
		bs, ok := model.BalanceSheets[period]
		if !ok {
			continue
		}
		expected := bs.CommonStock + bs.AdditionalPaidInCapital + bs.RetainedEarnings +
			bs.TreasuryStock + bs.AccumulatedOtherComprehensiveIncome
		t := bandFor(expected, bs.TotalEquity, tol.AbsTol, tol.PctTol)
		out = append(out, closeCheck("STR-033", "Total equity sums its components", statement.CategoryStructural, period,
			statement.SeverityError, expected, bs.TotalEquity, t,
			"total equity reconciles to its components",
			"total equity does not reconcile to its components"))
	}
	return out
}
