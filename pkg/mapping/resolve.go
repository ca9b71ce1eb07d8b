package mapping

import (
	"fmt"
	"sort"
	"strings"

	"fsverify/pkg/statement"
)

// tokenContains reports whether needle's whitespace-delimited tokens appear
// as a contiguous run within haystack's tokens, so "revenu" does not match
// inside "net revenue" (a mid-word fragment) while "trade receivables"
// still matches inside "trade receivables outstanding" (whole words).
func tokenContains(haystack, needle string) bool {
	hTokens := strings.Fields(haystack)
	nTokens := strings.Fields(needle)
	if len(nTokens) == 0 || len(nTokens) > len(hTokens) {
		return false
	}
	for i := 0; i+len(nTokens) <= len(hTokens); i++ {
		match := true
		for j, t := range nTokens {
			if hTokens[i+j] != t {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Resolve maps a single input label to a canonical field for statement type
// stmtType, applying the four-stage algorithm in order and stopping at the
// first hit: exact, aggressive-exact, substring containment, then fuzzy.
func Resolve(label string, stmtType string, cfg *Config) statement.MappingResult {
	normalized := normalize(label)
	result := statement.MappingResult{
		InputName:      label,
		NormalizedName: normalized,
		MatchType:      statement.MatchUnmapped,
	}

	rindex := cfg.reverseIndex[stmtType]
	entries := cfg.entries[stmtType]

	// Stage 1: exact.
	if field, ok := rindex[normalized]; ok {
		result.InternalField = field
		result.MatchType = statement.MatchExact
		result.Confidence = 1.00
		return result
	}

	// Stage 2: aggressive-exact.
	aggressive := normalizeAggressive(label)
	if field, ok := rindex[aggressive]; ok {
		result.InternalField = field
		result.MatchType = statement.MatchAlias
		result.Confidence = 0.95
		return result
	}

	// Stage 3: substring containment. Containment is checked at word
	// boundaries so a short word fragment ("revenu") doesn't falsely
	// swallow a longer alias ("net revenue") that merely happens to
	// contain it mid-word; that ambiguity belongs to stage 4 fuzzy
	// matching instead. Iteration is over the sorted entry list so the
	// "first matching wins" rule is deterministic.
	for _, e := range entries {
		if len(e.Normalized) <= 3 {
			continue
		}
		if tokenContains(e.Normalized, normalized) || tokenContains(normalized, e.Normalized) {
			result.InternalField = e.Canonical
			result.MatchType = statement.MatchAlias
			result.Confidence = 0.85
			return result
		}
	}

	// Stage 4: fuzzy.
	type scored struct {
		entry aliasEntry
		ratio float64
	}
	var candidates []scored
	for _, e := range entries {
		ratio := similarityRatio(normalized, e.Normalized) * 100
		if ratio >= float64(cfg.Settings.FuzzyThreshold) {
			candidates = append(candidates, scored{e, ratio})
		}
	}
	if len(candidates) == 0 {
		return result
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].ratio > candidates[j].ratio })

	top := 3
	if len(candidates) < top {
		top = len(candidates)
	}
	for _, c := range candidates[:top] {
		result.FuzzyCandidates = append(result.FuzzyCandidates, statement.FuzzyCandidate{
			Alias: c.entry.Normalized,
			Ratio: c.ratio,
		})
	}

	// Ambiguity rule: if the top two candidates map to different canonical
	// fields and their ratios differ by less than 5 points, it's unmapped.
	if len(candidates) >= 2 &&
		candidates[0].entry.Canonical != candidates[1].entry.Canonical &&
		candidates[0].ratio-candidates[1].ratio < 5.0 {
		return result
	}

	best := candidates[0]
	result.InternalField = best.entry.Canonical
	result.MatchType = statement.MatchFuzzy
	result.Confidence = best.ratio / 100
	return result
}

// MapFields batch-resolves a sequence of input labels (in input order) for
// one statement type, skipping blanks and collapsing duplicate targets onto
// the first label that claimed them.
func MapFields(labels []string, stmtType string, cfg *Config) (map[string]string, statement.MappingDiagnostics) {
	diag := statement.MappingDiagnostics{StatementType: stmtType}
	mapping := map[string]string{}
	claimed := map[string]struct{}{}

	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			continue
		}
		diag.TotalInputFields++

		result := Resolve(label, stmtType, cfg)
		if result.InternalField != "" {
			if _, dup := claimed[result.InternalField]; dup {
				diag.Warnings = append(diag.Warnings, fmt.Sprintf(
					"duplicate target %q for label %q; skipping", result.InternalField, label))
				result.InternalField = ""
				result.MatchType = statement.MatchUnmapped
				result.Confidence = 0
				diag.UnmappedCount++
				diag.UnmappedFields = append(diag.UnmappedFields, label)
				diag.Results = append(diag.Results, result)
				continue
			}
			claimed[result.InternalField] = struct{}{}
			mapping[label] = result.InternalField
			diag.MappedCount++
			switch result.MatchType {
			case statement.MatchExact:
				diag.ExactMatches++
			case statement.MatchAlias:
				diag.AliasMatches++
			case statement.MatchFuzzy:
				diag.FuzzyMatches++
			}
		} else {
			diag.UnmappedCount++
			diag.UnmappedFields = append(diag.UnmappedFields, label)
		}
		diag.Results = append(diag.Results, result)
	}

	return mapping, diag
}
