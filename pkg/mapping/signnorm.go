package mapping

import "fsverify/pkg/statement"

// signFlippedFields are forced negative (accounting-convention outflow)
// whenever they arrive positive from an input that expresses them as
// unsigned magnitudes.
var signFlippedFields = map[string]func(*statement.CashFlowStatement) *float64{
	"capex":                   func(s *statement.CashFlowStatement) *float64 { return &s.Capex },
	"acquisitions":            func(s *statement.CashFlowStatement) *float64 { return &s.Acquisitions },
	"purchase_of_investments": func(s *statement.CashFlowStatement) *float64 { return &s.PurchaseOfInvestments },
	"debt_repayment":          func(s *statement.CashFlowStatement) *float64 { return &s.DebtRepayment },
	"share_repurchases":       func(s *statement.CashFlowStatement) *float64 { return &s.ShareRepurchases },
	"dividends_paid":          func(s *statement.CashFlowStatement) *float64 { return &s.DividendsPaid },
}

// NormalizeSign forces cf's outflow fields to their accounting-convention
// negative sign, no-op if already negative or zero. Idempotent: applying it
// twice yields the same statement.
func NormalizeSign(cf *statement.CashFlowStatement) {
	if cf == nil {
		return
	}
	for _, getter := range signFlippedFields {
		ptr := getter(cf)
		if *ptr > 0 {
			*ptr = -*ptr
		}
	}
}

// NormalizeSignIfEnabled applies NormalizeSign only when settings request it,
// matching spec §4.5: a no-op for other statement types is implicit since
// this helper only ever takes a *CashFlowStatement.
func NormalizeSignIfEnabled(cf *statement.CashFlowStatement, settings Settings) {
	if settings.AutoSignNormalization {
		NormalizeSign(cf)
	}
}
