// Package statement holds the in-memory representation of a three-statement
// financial model: the Income Statement, Balance Sheet, and Cash Flow
// Statement, each keyed by reporting period, plus the shared result types
// the mapping and check layers produce.
package statement

import "sort"

// Severity ranks a CheckResult from a clean pass to a blocking failure.
type Severity string

const (
	SeverityPass     Severity = "pass"
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityPass:     0,
	SeverityInfo:     1,
	SeverityWarning:  2,
	SeverityError:    3,
	SeverityCritical: 4,
}

// Rank returns the ordering position of s (PASS < INFO < WARNING < ERROR < CRITICAL).
func (s Severity) Rank() int {
	return severityRank[s]
}

// CheckCategory groups checks in the catalog.
type CheckCategory string

const (
	CategoryStructural      CheckCategory = "structural"
	CategoryCrossStatement  CheckCategory = "cross_statement"
	CategoryReasonableness  CheckCategory = "reasonableness"
)

// CheckResult is the outcome of a single check evaluated for one period.
type CheckResult struct {
	CheckID      string                 `json:"check_id"`
	CheckName    string                 `json:"check_name"`
	Category     CheckCategory          `json:"category"`
	Severity     Severity               `json:"severity"`
	Period       string                 `json:"period"`
	Message      string                 `json:"message"`
	ExpectedValue *float64              `json:"expected_value,omitempty"`
	ActualValue  *float64               `json:"actual_value,omitempty"`
	Delta        *float64               `json:"delta,omitempty"`
	DeltaPct     *float64               `json:"delta_pct,omitempty"`
	Tolerance    *float64               `json:"tolerance,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// MatchType records how a raw input label was resolved to a canonical field.
type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchAlias    MatchType = "alias"
	MatchFuzzy    MatchType = "fuzzy"
	MatchUnmapped MatchType = "unmapped"
)

// FuzzyCandidate is one ranked fuzzy-match candidate for a label.
type FuzzyCandidate struct {
	Alias string  `json:"alias"`
	Ratio float64 `json:"ratio"`
}

// MappingResult is the resolution outcome for a single input label.
type MappingResult struct {
	InputName       string           `json:"input_name"`
	NormalizedName  string           `json:"normalized_name"`
	InternalField   string           `json:"internal_field,omitempty"`
	MatchType       MatchType        `json:"match_type"`
	Confidence      float64          `json:"confidence"`
	FuzzyCandidates []FuzzyCandidate `json:"fuzzy_candidates,omitempty"`
}

// MappingDiagnostics summarizes field resolution for one statement type.
type MappingDiagnostics struct {
	StatementType    string          `json:"statement_type"`
	TotalInputFields int             `json:"total_input_fields"`
	MappedCount      int             `json:"mapped_count"`
	UnmappedCount    int             `json:"unmapped_count"`
	ExactMatches     int             `json:"exact_matches"`
	AliasMatches     int             `json:"alias_matches"`
	FuzzyMatches     int             `json:"fuzzy_matches"`
	Results          []MappingResult `json:"results"`
	UnmappedFields   []string        `json:"unmapped_fields"`
	Warnings         []string        `json:"warnings"`
}

// IncomeStatement holds one period's income statement line items.
type IncomeStatement struct {
	Period string `json:"period"`

	Revenue             float64 `json:"revenue"`
	COGS                float64 `json:"cogs"`
	GrossProfit         float64 `json:"gross_profit"`
	SGA                 float64 `json:"sga"`
	RD                  float64 `json:"rd"`
	OtherOpex           float64 `json:"other_opex"`
	Depreciation        float64 `json:"depreciation"`
	Amortization        float64 `json:"amortization"`
	TotalOpex           float64 `json:"total_opex"`
	EBIT                float64 `json:"ebit"`
	InterestExpense     float64 `json:"interest_expense"`
	InterestIncome      float64 `json:"interest_income"`
	OtherIncomeExpense  float64 `json:"other_income_expense"`
	EBT                 float64 `json:"ebt"`
	TaxExpense          float64 `json:"tax_expense"`
	NetIncome           float64 `json:"net_income"`

	// Optional granularity, absent unless supplied by the input.
	EBITDA                  *float64 `json:"ebitda,omitempty"`
	EffectiveTaxRate        *float64 `json:"effective_tax_rate,omitempty"`
	SharesOutstandingBasic  *float64 `json:"shares_outstanding_basic,omitempty"`
	SharesOutstandingDiluted *float64 `json:"shares_outstanding_diluted,omitempty"`
	EPSBasic                *float64 `json:"eps_basic,omitempty"`
	EPSDiluted              *float64 `json:"eps_diluted,omitempty"`
}

// BalanceSheet holds one period's balance sheet line items.
type BalanceSheet struct {
	Period string `json:"period"`

	// Current assets
	Cash                 float64 `json:"cash"`
	ShortTermInvestments float64 `json:"short_term_investments"`
	AccountsReceivable   float64 `json:"accounts_receivable"`
	Inventory            float64 `json:"inventory"`
	PrepaidExpenses      float64 `json:"prepaid_expenses"`
	OtherCurrentAssets   float64 `json:"other_current_assets"`
	TotalCurrentAssets   float64 `json:"total_current_assets"`

	// Non-current assets
	PPEGross                 float64 `json:"ppe_gross"`
	AccumulatedDepreciation  float64 `json:"accumulated_depreciation"`
	PPENet                   float64 `json:"ppe_net"`
	Goodwill                 float64 `json:"goodwill"`
	IntangibleAssets         float64 `json:"intangible_assets"`
	OtherNonCurrentAssets    float64 `json:"other_non_current_assets"`
	TotalNonCurrentAssets    float64 `json:"total_non_current_assets"`
	TotalAssets              float64 `json:"total_assets"`

	// Current liabilities
	AccountsPayable          float64 `json:"accounts_payable"`
	AccruedLiabilities       float64 `json:"accrued_liabilities"`
	ShortTermDebt            float64 `json:"short_term_debt"`
	CurrentPortionLTD        float64 `json:"current_portion_ltd"`
	OtherCurrentLiabilities  float64 `json:"other_current_liabilities"`
	TotalCurrentLiabilities  float64 `json:"total_current_liabilities"`

	// Non-current liabilities
	LongTermDebt                 float64 `json:"long_term_debt"`
	DeferredTaxLiability          float64 `json:"deferred_tax_liability"`
	OtherNonCurrentLiabilities    float64 `json:"other_non_current_liabilities"`
	TotalNonCurrentLiabilities    float64 `json:"total_non_current_liabilities"`
	TotalLiabilities              float64 `json:"total_liabilities"`

	// Equity
	CommonStock                        float64 `json:"common_stock"`
	AdditionalPaidInCapital             float64 `json:"additional_paid_in_capital"`
	RetainedEarnings                    float64 `json:"retained_earnings"`
	TreasuryStock                       float64 `json:"treasury_stock"`
	AccumulatedOtherComprehensiveIncome float64 `json:"accumulated_other_comprehensive_income"`
	TotalEquity                         float64 `json:"total_equity"`
	TotalLiabilitiesAndEquity           float64 `json:"total_liabilities_and_equity"`
}

// CashFlowStatement holds one period's cash flow statement line items.
type CashFlowStatement struct {
	Period string `json:"period"`

	// Operating
	NetIncome                    float64 `json:"net_income"`
	DepreciationAmortization     float64 `json:"depreciation_amortization"`
	StockBasedCompensation       float64 `json:"stock_based_compensation"`
	DeferredTaxes                float64 `json:"deferred_taxes"`
	ChangeInReceivables          float64 `json:"change_in_receivables"`
	ChangeInInventory            float64 `json:"change_in_inventory"`
	ChangeInPayables             float64 `json:"change_in_payables"`
	ChangeInOtherWorkingCapital  float64 `json:"change_in_other_working_capital"`
	OtherOperating               float64 `json:"other_operating"`
	CashFromOperations           float64 `json:"cash_from_operations"`

	// Investing
	Capex                float64 `json:"capex"`
	Acquisitions         float64 `json:"acquisitions"`
	PurchaseOfInvestments float64 `json:"purchase_of_investments"`
	SaleOfInvestments    float64 `json:"sale_of_investments"`
	OtherInvesting       float64 `json:"other_investing"`
	CashFromInvesting    float64 `json:"cash_from_investing"`

	// Financing
	DebtIssuance      float64 `json:"debt_issuance"`
	DebtRepayment     float64 `json:"debt_repayment"`
	EquityIssuance    float64 `json:"equity_issuance"`
	ShareRepurchases  float64 `json:"share_repurchases"`
	DividendsPaid     float64 `json:"dividends_paid"`
	OtherFinancing    float64 `json:"other_financing"`
	CashFromFinancing float64 `json:"cash_from_financing"`

	// Summary
	NetChangeInCash float64 `json:"net_change_in_cash"`
	BeginningCash   float64 `json:"beginning_cash"`
	EndingCash      float64 `json:"ending_cash"`

	// Optional
	FreeCashFlow *float64 `json:"free_cash_flow,omitempty"`
}

// FinancialModel is the complete parsed three-statement model across periods.
type FinancialModel struct {
	CompanyName       string                        `json:"company_name"`
	Currency          string                        `json:"currency"`
	Unit              string                        `json:"unit"`
	Periods           []string                      `json:"periods"`
	HistoricalPeriods []string                      `json:"historical_periods"`
	ProjectedPeriods  []string                      `json:"projected_periods"`
	IncomeStatements  map[string]*IncomeStatement   `json:"income_statements"`
	BalanceSheets     map[string]*BalanceSheet      `json:"balance_sheets"`
	CashFlows         map[string]*CashFlowStatement `json:"cash_flows"`
	Metadata          map[string]interface{}       `json:"metadata"`
}

// NewFinancialModel returns a model with default company name and empty maps,
// matching the Python original's dataclass defaults.
func NewFinancialModel() *FinancialModel {
	return &FinancialModel{
		CompanyName:      "Unknown",
		Currency:         "USD",
		Unit:             "millions",
		IncomeStatements: map[string]*IncomeStatement{},
		BalanceSheets:    map[string]*BalanceSheet{},
		CashFlows:        map[string]*CashFlowStatement{},
		Metadata:         map[string]interface{}{},
	}
}

// GetOrderedPeriods returns periods in declared order if present, else the
// sorted deduplicated union of keys across the three statement maps.
func (m *FinancialModel) GetOrderedPeriods() []string {
	if len(m.Periods) > 0 {
		return m.Periods
	}
	seen := map[string]struct{}{}
	for p := range m.IncomeStatements {
		seen[p] = struct{}{}
	}
	for p := range m.BalanceSheets {
		seen[p] = struct{}{}
	}
	for p := range m.CashFlows {
		seen[p] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// HasCompletePeriod reports whether all three statements exist for period.
func (m *FinancialModel) HasCompletePeriod(period string) bool {
	_, hasIS := m.IncomeStatements[period]
	_, hasBS := m.BalanceSheets[period]
	_, hasCF := m.CashFlows[period]
	return hasIS && hasBS && hasCF
}
