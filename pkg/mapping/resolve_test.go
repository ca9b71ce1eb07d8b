package mapping

import (
	"testing"

	"fsverify/pkg/statement"
)

func configWith(t *testing.T, stmtType string, canonical string, aliases []string, fuzzyThreshold int) *Config {
	t.Helper()
	cfg := NewDefaultConfig()
	cfg.Settings.FuzzyThreshold = fuzzyThreshold
	cfg.Declared[stmtType][canonical] = aliases
	cfg.finalize()
	return cfg
}

func TestResolveExactMatchDominance(t *testing.T) {
	cfg := configWith(t, statement.TypeIncomeStatement, "revenue", []string{"Net Sales", "Sales"}, 85)

	for _, label := range []string{"Revenue", "revenue", "Net Sales", "sales"} {
		t.Run(label, func(t *testing.T) {
			res := Resolve(label, statement.TypeIncomeStatement, cfg)
			if res.InternalField != "revenue" || res.MatchType != statement.MatchExact {
				t.Fatalf("Resolve(%q) = (%q, %s), want (revenue, exact)", label, res.InternalField, res.MatchType)
			}
			if res.Confidence != 1.0 {
				t.Errorf("confidence = %v, want 1.0", res.Confidence)
			}
		})
	}
}

func TestResolveAggressiveExact(t *testing.T) {
	cfg := configWith(t, statement.TypeIncomeStatement, "sga", []string{"selling general administrative expenses"}, 85)
	res := Resolve("Total Selling General Administrative Expenses", statement.TypeIncomeStatement, cfg)
	if res.InternalField != "sga" || res.MatchType != statement.MatchAlias {
		t.Fatalf("Resolve = (%q, %s), want (sga, alias)", res.InternalField, res.MatchType)
	}
	if res.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", res.Confidence)
	}
}

// TestResolveAmbiguousFuzzy reproduces spec §8 S4: two canonical fields
// with near-identical fuzzy ratios must be declared unmapped.
func TestResolveAmbiguousFuzzy(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Settings.FuzzyThreshold = 70
	cfg.Declared[statement.TypeIncomeStatement]["revenue"] = []string{"sales", "net revenue"}
	cfg.Declared[statement.TypeIncomeStatement]["revenue_other"] = []string{"other revenue"}
	cfg.finalize()

	res := Resolve("revenu", statement.TypeIncomeStatement, cfg)
	if res.MatchType != statement.MatchUnmapped {
		t.Fatalf("match_type = %s, want unmapped", res.MatchType)
	}
	if len(res.FuzzyCandidates) < 2 {
		t.Fatalf("fuzzy_candidates has %d entries, want >= 2", len(res.FuzzyCandidates))
	}
	canonicals := map[string]struct{}{}
	for _, c := range res.FuzzyCandidates {
		field, ok := cfg.reverseIndex[statement.TypeIncomeStatement][c.Alias]
		if !ok {
			continue
		}
		canonicals[field] = struct{}{}
	}
	if len(canonicals) < 2 {
		t.Fatalf("expected fuzzy candidates spanning >=2 canonical fields, got %v", canonicals)
	}
}

func TestMapFieldsDuplicateTargetSkipped(t *testing.T) {
	cfg := configWith(t, statement.TypeIncomeStatement, "revenue", []string{"sales"}, 85)

	mappingTable, diag := MapFields([]string{"Revenue", "Sales"}, statement.TypeIncomeStatement, cfg)
	if len(mappingTable) != 1 {
		t.Fatalf("mapping table has %d entries, want 1 (duplicate target collapses to the first)", len(mappingTable))
	}
	if mappingTable["Revenue"] != "revenue" {
		t.Errorf("first label should keep the claim on revenue, got %v", mappingTable)
	}
	if diag.UnmappedCount != 1 {
		t.Errorf("unmapped_count = %d, want 1 for the skipped duplicate", diag.UnmappedCount)
	}
	if len(diag.Warnings) == 0 {
		t.Errorf("expected a duplicate-target warning")
	}
}

func TestMapFieldsSkipsBlankLabels(t *testing.T) {
	cfg := configWith(t, statement.TypeIncomeStatement, "revenue", []string{"sales"}, 85)
	_, diag := MapFields([]string{"", "   ", "Revenue"}, statement.TypeIncomeStatement, cfg)
	if diag.TotalInputFields != 1 {
		t.Errorf("total_input_fields = %d, want 1 (blanks skipped)", diag.TotalInputFields)
	}
}

func TestSubstringContainmentMatch(t *testing.T) {
	cfg := configWith(t, statement.TypeBalanceSheet, "accounts_receivable", []string{"trade receivables"}, 85)
	res := Resolve("Trade Receivables Outstanding", statement.TypeBalanceSheet, cfg)
	if res.InternalField != "accounts_receivable" {
		t.Fatalf("Resolve = %q, want accounts_receivable via substring containment", res.InternalField)
	}
	if res.MatchType != statement.MatchAlias || res.Confidence != 0.85 {
		t.Errorf("match_type/confidence = %s/%v, want alias/0.85", res.MatchType, res.Confidence)
	}
}

func TestUnmappedBelowThreshold(t *testing.T) {
	cfg := configWith(t, statement.TypeIncomeStatement, "revenue", []string{"sales"}, 85)
	res := Resolve("completely unrelated label", statement.TypeIncomeStatement, cfg)
	if res.MatchType != statement.MatchUnmapped {
		t.Fatalf("match_type = %s, want unmapped", res.MatchType)
	}
	if res.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", res.Confidence)
	}
}
