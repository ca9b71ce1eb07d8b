package statement

import "sort"

// incomeStatementFields, balanceSheetFields and cashFlowFields are the
// closed, compile-time enumeration of canonical field identifiers per
// statement type. Each entry is a setter closure, giving the mapper a
// "set field by identifier" primitive without runtime reflection.
var incomeStatementFields = map[string]func(*IncomeStatement, float64){
	"revenue":                func(s *IncomeStatement, v float64) { s.Revenue = v },
	"cogs":                   func(s *IncomeStatement, v float64) { s.COGS = v },
	"gross_profit":           func(s *IncomeStatement, v float64) { s.GrossProfit = v },
	"sga":                    func(s *IncomeStatement, v float64) { s.SGA = v },
	"rd":                     func(s *IncomeStatement, v float64) { s.RD = v },
	"other_opex":             func(s *IncomeStatement, v float64) { s.OtherOpex = v },
	"depreciation":           func(s *IncomeStatement, v float64) { s.Depreciation = v },
	"amortization":           func(s *IncomeStatement, v float64) { s.Amortization = v },
	"total_opex":             func(s *IncomeStatement, v float64) { s.TotalOpex = v },
	"ebit":                   func(s *IncomeStatement, v float64) { s.EBIT = v },
	"interest_expense":       func(s *IncomeStatement, v float64) { s.InterestExpense = v },
	"interest_income":        func(s *IncomeStatement, v float64) { s.InterestIncome = v },
	"other_income_expense":   func(s *IncomeStatement, v float64) { s.OtherIncomeExpense = v },
	"ebt":                    func(s *IncomeStatement, v float64) { s.EBT = v },
	"tax_expense":            func(s *IncomeStatement, v float64) { s.TaxExpense = v },
	"net_income":             func(s *IncomeStatement, v float64) { s.NetIncome = v },
	"ebitda":                 func(s *IncomeStatement, v float64) { s.EBITDA = &v },
	"effective_tax_rate":     func(s *IncomeStatement, v float64) { s.EffectiveTaxRate = &v },
	"shares_outstanding_basic":   func(s *IncomeStatement, v float64) { s.SharesOutstandingBasic = &v },
	"shares_outstanding_diluted": func(s *IncomeStatement, v float64) { s.SharesOutstandingDiluted = &v },
	"eps_basic":              func(s *IncomeStatement, v float64) { s.EPSBasic = &v },
	"eps_diluted":            func(s *IncomeStatement, v float64) { s.EPSDiluted = &v },
}

var balanceSheetFields = map[string]func(*BalanceSheet, float64){
	"cash":                     func(s *BalanceSheet, v float64) { s.Cash = v },
	"short_term_investments":   func(s *BalanceSheet, v float64) { s.ShortTermInvestments = v },
	"accounts_receivable":      func(s *BalanceSheet, v float64) { s.AccountsReceivable = v },
	"inventory":                func(s *BalanceSheet, v float64) { s.Inventory = v },
	"prepaid_expenses":         func(s *BalanceSheet, v float64) { s.PrepaidExpenses = v },
	"other_current_assets":     func(s *BalanceSheet, v float64) { s.OtherCurrentAssets = v },
	"total_current_assets":     func(s *BalanceSheet, v float64) { s.TotalCurrentAssets = v },
	"ppe_gross":                func(s *BalanceSheet, v float64) { s.PPEGross = v },
	"accumulated_depreciation": func(s *BalanceSheet, v float64) { s.AccumulatedDepreciation = v },
	"ppe_net":                  func(s *BalanceSheet, v float64) { s.PPENet = v },
	"goodwill":                 func(s *BalanceSheet, v float64) { s.Goodwill = v },
	"intangible_assets":        func(s *BalanceSheet, v float64) { s.IntangibleAssets = v },
	"other_non_current_assets": func(s *BalanceSheet, v float64) { s.OtherNonCurrentAssets = v },
	"total_non_current_assets": func(s *BalanceSheet, v float64) { s.TotalNonCurrentAssets = v },
	"total_assets":             func(s *BalanceSheet, v float64) { s.TotalAssets = v },
	"accounts_payable":         func(s *BalanceSheet, v float64) { s.AccountsPayable = v },
	"accrued_liabilities":      func(s *BalanceSheet, v float64) { s.AccruedLiabilities = v },
	"short_term_debt":          func(s *BalanceSheet, v float64) { s.ShortTermDebt = v },
	"current_portion_ltd":      func(s *BalanceSheet, v float64) { s.CurrentPortionLTD = v },
	"other_current_liabilities": func(s *BalanceSheet, v float64) { s.OtherCurrentLiabilities = v },
	"total_current_liabilities": func(s *BalanceSheet, v float64) { s.TotalCurrentLiabilities = v },
	"long_term_debt":              func(s *BalanceSheet, v float64) { s.LongTermDebt = v },
	"deferred_tax_liability":      func(s *BalanceSheet, v float64) { s.DeferredTaxLiability = v },
	"other_non_current_liabilities": func(s *BalanceSheet, v float64) { s.OtherNonCurrentLiabilities = v },
	"total_non_current_liabilities": func(s *BalanceSheet, v float64) { s.TotalNonCurrentLiabilities = v },
	"total_liabilities":             func(s *BalanceSheet, v float64) { s.TotalLiabilities = v },
	"common_stock":                  func(s *BalanceSheet, v float64) { s.CommonStock = v },
	"additional_paid_in_capital":    func(s *BalanceSheet, v float64) { s.AdditionalPaidInCapital = v },
	"retained_earnings":             func(s *BalanceSheet, v float64) { s.RetainedEarnings = v },
	"treasury_stock":                func(s *BalanceSheet, v float64) { s.TreasuryStock = v },
	"accumulated_other_comprehensive_income": func(s *BalanceSheet, v float64) { s.AccumulatedOtherComprehensiveIncome = v },
	"total_equity":                  func(s *BalanceSheet, v float64) { s.TotalEquity = v },
	"total_liabilities_and_equity":  func(s *BalanceSheet, v float64) { s.TotalLiabilitiesAndEquity = v },
}

var cashFlowFields = map[string]func(*CashFlowStatement, float64){
	"net_income":                      func(s *CashFlowStatement, v float64) { s.NetIncome = v },
	"depreciation_amortization":       func(s *CashFlowStatement, v float64) { s.DepreciationAmortization = v },
	"stock_based_compensation":        func(s *CashFlowStatement, v float64) { s.StockBasedCompensation = v },
	"deferred_taxes":                  func(s *CashFlowStatement, v float64) { s.DeferredTaxes = v },
	"change_in_receivables":           func(s *CashFlowStatement, v float64) { s.ChangeInReceivables = v },
	"change_in_inventory":             func(s *CashFlowStatement, v float64) { s.ChangeInInventory = v },
	"change_in_payables":              func(s *CashFlowStatement, v float64) { s.ChangeInPayables = v },
	"change_in_other_working_capital": func(s *CashFlowStatement, v float64) { s.ChangeInOtherWorkingCapital = v },
	"other_operating":                 func(s *CashFlowStatement, v float64) { s.OtherOperating = v },
	"cash_from_operations":            func(s *CashFlowStatement, v float64) { s.CashFromOperations = v },
	"capex":                           func(s *CashFlowStatement, v float64) { s.Capex = v },
	"acquisitions":                    func(s *CashFlowStatement, v float64) { s.Acquisitions = v },
	"purchase_of_investments":         func(s *CashFlowStatement, v float64) { s.PurchaseOfInvestments = v },
	"sale_of_investments":             func(s *CashFlowStatement, v float64) { s.SaleOfInvestments = v },
	"other_investing":                 func(s *CashFlowStatement, v float64) { s.OtherInvesting = v },
	"cash_from_investing":             func(s *CashFlowStatement, v float64) { s.CashFromInvesting = v },
	"debt_issuance":                   func(s *CashFlowStatement, v float64) { s.DebtIssuance = v },
	"debt_repayment":                  func(s *CashFlowStatement, v float64) { s.DebtRepayment = v },
	"equity_issuance":                 func(s *CashFlowStatement, v float64) { s.EquityIssuance = v },
	"share_repurchases":               func(s *CashFlowStatement, v float64) { s.ShareRepurchases = v },
	"dividends_paid":                  func(s *CashFlowStatement, v float64) { s.DividendsPaid = v },
	"other_financing":                 func(s *CashFlowStatement, v float64) { s.OtherFinancing = v },
	"cash_from_financing":             func(s *CashFlowStatement, v float64) { s.CashFromFinancing = v },
	"net_change_in_cash":              func(s *CashFlowStatement, v float64) { s.NetChangeInCash = v },
	"beginning_cash":                  func(s *CashFlowStatement, v float64) { s.BeginningCash = v },
	"ending_cash":                     func(s *CashFlowStatement, v float64) { s.EndingCash = v },
	"free_cash_flow":                  func(s *CashFlowStatement, v float64) { s.FreeCashFlow = &v },
}

// StatementType names the three supported statement kinds.
const (
	TypeIncomeStatement = "income_statement"
	TypeBalanceSheet    = "balance_sheet"
	TypeCashFlow        = "cash_flow"
)

// CanonicalFields returns the sorted canonical field identifiers declared
// for a statement type, or nil for an unrecognized type.
func CanonicalFields(stmtType string) []string {
	var m map[string]struct{}
	switch stmtType {
	case TypeIncomeStatement:
		m = keysOf(incomeStatementFields)
	case TypeBalanceSheet:
		m = keysOf(balanceSheetFields)
	case TypeCashFlow:
		m = keysOf(cashFlowFields)
	default:
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func keysOf[V any](m map[string]V) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

// SetField assigns value to the field named by canonical identifier field on
// stmt, dispatching on the concrete statement type. It reports whether field
// was recognized for that statement's type.
func SetField(stmt interface{}, field string, value float64) bool {
	switch s := stmt.(type) {
	case *IncomeStatement:
		if fn, ok := incomeStatementFields[field]; ok {
			fn(s, value)
			return true
		}
	case *BalanceSheet:
		if fn, ok := balanceSheetFields[field]; ok {
			fn(s, value)
			return true
		}
	case *CashFlowStatement:
		if fn, ok := cashFlowFields[field]; ok {
			fn(s, value)
			return true
		}
	}
	return false
}
