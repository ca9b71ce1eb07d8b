package ingest

import (
	"sort"
	"strings"

	"fsverify/pkg/mapping"
	"fsverify/pkg/numparse"
	"fsverify/pkg/statement"
)

// ensureStatement guarantees model has a zero-valued statement record of
// stmtType for period, allocating one if absent.
func ensureStatement(model *statement.FinancialModel, stmtType, period string) {
	switch stmtType {
	case statement.TypeIncomeStatement:
		if _, ok := model.IncomeStatements[period]; !ok {
			model.IncomeStatements[period] = &statement.IncomeStatement{Period: period}
		}
	case statement.TypeBalanceSheet:
		if _, ok := model.BalanceSheets[period]; !ok {
			model.BalanceSheets[period] = &statement.BalanceSheet{Period: period}
		}
	case statement.TypeCashFlow:
		if _, ok := model.CashFlows[period]; !ok {
			model.CashFlows[period] = &statement.CashFlowStatement{Period: period}
		}
	}
}

// assignField coerces raw into a float64 via numparse (silently, per the
// per-cell parse error contract) and sets it on the period's statement.
func assignField(model *statement.FinancialModel, stmtType, period, canonicalField string, raw interface{}) {
	value := numparse.ParseOrZero(raw)
	switch stmtType {
	case statement.TypeIncomeStatement:
		statement.SetField(model.IncomeStatements[period], canonicalField, value)
	case statement.TypeBalanceSheet:
		statement.SetField(model.BalanceSheets[period], canonicalField, value)
	case statement.TypeCashFlow:
		statement.SetField(model.CashFlows[period], canonicalField, value)
	}
}

// applySignNormalization runs the cash-flow sign normalizer over every
// period's cash flow statement, honoring the auto_sign_normalization
// setting.
func applySignNormalization(model *statement.FinancialModel, settings mapping.Settings) {
	if !settings.AutoSignNormalization {
		return
	}
	for _, cf := range model.CashFlows {
		mapping.NormalizeSign(cf)
	}
}

// finalizePeriods fills model.Periods (if still empty) and classifies
// historical/projected periods by trailing E/e/P/p, matching the stacked
// parser's heuristic — applied here too so structured/tabular inputs that
// omit historical_periods/projected_periods still get a useful split.
func finalizePeriods(model *statement.FinancialModel) {
	if len(model.Periods) == 0 {
		model.Periods = model.GetOrderedPeriods()
	}
	if len(model.HistoricalPeriods) > 0 || len(model.ProjectedPeriods) > 0 {
		return
	}
	var hist, proj []string
	for _, p := range model.Periods {
		if isProjectedLabel(p) {
			proj = append(proj, p)
		} else {
			hist = append(hist, p)
		}
	}
	sort.Strings(hist)
	sort.Strings(proj)
	model.HistoricalPeriods = hist
	model.ProjectedPeriods = proj
}

func isProjectedLabel(period string) bool {
	trimmed := strings.TrimSpace(period)
	if trimmed == "" {
		return false
	}
	last := trimmed[len(trimmed)-1]
	return last == 'E' || last == 'e' || last == 'P' || last == 'p'
}
