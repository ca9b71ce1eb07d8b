package checks

import "fsverify/pkg/statement"

// CheckDef is one entry in the catalog: an identity plus a stateless
// evaluation closure over a model and its tolerances. Per DESIGN NOTES §9
// of the spec, this tagged-record-plus-closure shape stands in for the
// inheritance hierarchy a check registry would use in a language that has
// one.
type CheckDef struct {
	ID       string
	Name     string
	Category statement.CheckCategory
	Evaluate func(model *statement.FinancialModel, tol Tolerances) []statement.CheckResult
}

// AllChecks returns the full catalog in registration order: structural,
// then cross-statement, then reasonableness, matching the grouping in
// spec §4.8.
func AllChecks() []CheckDef {
	out := make([]CheckDef, 0, len(structuralChecks)+len(crossStatementChecks)+len(reasonablenessChecks))
	out = append(out, structuralChecks...)
	out = append(out, crossStatementChecks...)
	out = append(out, reasonablenessChecks...)
	return out
}

// result builds a CheckResult for one (check, period) evaluation, deriving
// severity from pass/fail, and filling expected/actual/delta/delta_pct/
// tolerance only on failure (a clean PASS doesn't need the diagnostic
// payload).
func result(id, name string, cat statement.CheckCategory, period string, pass bool, severityOnFail statement.Severity, message string, expected, actual, tolerance float64) statement.CheckResult {
	r := statement.CheckResult{
		CheckID:   id,
		CheckName: name,
		Category:  cat,
		Period:    period,
		Message:   message,
	}
	if pass {
		r.Severity = statement.SeverityPass
		return r
	}
	r.Severity = severityOnFail
	r.ExpectedValue = ptr(expected)
	r.ActualValue = ptr(actual)
	r.Delta = ptr(delta(actual, expected))
	r.DeltaPct = deltaPct(actual, expected)
	r.Tolerance = ptr(tolerance)
	return r
}

// closeCheck is the common shape for the many STR-*/XST-* rules that boil
// down to "actual ≈ expected within a tolerance band": evaluate once,
// return the appropriately-filled CheckResult.
func closeCheck(id, name string, cat statement.CheckCategory, period string, severityOnFail statement.Severity, expected, actual, tol float64, okMsg, failMsg string) statement.CheckResult {
	if absWithin(expected, actual, tol) {
		return result(id, name, cat, period, true, severityOnFail, okMsg, expected, actual, tol)
	}
	return result(id, name, cat, period, false, severityOnFail, failMsg, expected, actual, tol)
}

func absWithin(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}
