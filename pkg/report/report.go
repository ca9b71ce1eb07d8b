// Package report aggregates engine.Run's raw CheckResults into a
// VerificationReport: severity/category summaries, an overall health
// verdict, and JSON/Markdown/HTML export.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"fsverify/pkg/engine"
	"fsverify/pkg/statement"
)

// OverallHealth is the report's single-word verdict, spec §4.8.
type OverallHealth string

const (
	HealthClean        OverallHealth = "clean"
	HealthWarningsOnly OverallHealth = "warnings_found"
	HealthErrorsFound  OverallHealth = "errors_found"
	HealthCritical     OverallHealth = "critical"
)

// CategorySummary is one category's pass/fail tally.
type CategorySummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	PassRate float64 `json:"pass_rate"`
}

// Summary is the report's headline block, spec §6.
type Summary struct {
	CompanyName    string                     `json:"company_name"`
	RunID          string                     `json:"run_id"`
	OverallHealth  OverallHealth              `json:"overall_health"`
	TotalChecks    int                        `json:"total_checks"`
	Passed         int                        `json:"passed"`
	Failed         int                        `json:"failed"`
	PassRate       float64                    `json:"pass_rate"`
	BySeverity     map[statement.Severity]int `json:"by_severity"`
	ByCategory     map[statement.CheckCategory]CategorySummary `json:"by_category"`
	PeriodsAnalyzed []string                  `json:"periods_analyzed"`
}

// VerificationReport is the complete output of one verification run.
type VerificationReport struct {
	Summary       Summary                        `json:"summary"`
	CheckMetadata map[string]engine.CheckStatus  `json:"check_metadata"`
	Results       []statement.CheckResult        `json:"results"`
}

// Build aggregates raw check results and per-check run metadata into a
// VerificationReport for model.
func Build(model *statement.FinancialModel, results []statement.CheckResult, metadata map[string]engine.CheckStatus) *VerificationReport {
	summary := Summary{
		CompanyName:     model.CompanyName,
		RunID:           uuid.NewString(),
		BySeverity:      map[statement.Severity]int{},
		ByCategory:      map[statement.CheckCategory]CategorySummary{},
		PeriodsAnalyzed: model.GetOrderedPeriods(),
	}

	catTotals := map[statement.CheckCategory]*CategorySummary{}
	for _, r := range results {
		summary.TotalChecks++
		summary.BySeverity[r.Severity]++
		if r.Severity == statement.SeverityPass {
			summary.Passed++
		} else {
			summary.Failed++
		}

		cs, ok := catTotals[r.Category]
		if !ok {
			cs = &CategorySummary{}
			catTotals[r.Category] = cs
		}
		cs.Total++
		if r.Severity == statement.SeverityPass {
			cs.Passed++
		} else {
			cs.Failed++
		}
	}
	for cat, cs := range catTotals {
		if cs.Total > 0 {
			cs.PassRate = float64(cs.Passed) / float64(cs.Total)
		}
		summary.ByCategory[cat] = *cs
	}
	if summary.TotalChecks > 0 {
		summary.PassRate = float64(summary.Passed) / float64(summary.TotalChecks)
	}
	summary.OverallHealth = overallHealth(summary.BySeverity)

	return &VerificationReport{
		Summary:       summary,
		CheckMetadata: metadata,
		Results:       results,
	}
}

func overallHealth(bySeverity map[statement.Severity]int) OverallHealth {
	if bySeverity[statement.SeverityCritical] > 0 {
		return HealthCritical
	}
	if bySeverity[statement.SeverityError] > 0 {
		return HealthErrorsFound
	}
	if bySeverity[statement.SeverityWarning] > 0 {
		return HealthWarningsOnly
	}
	return HealthClean
}

// ExitCode maps OverallHealth to the CLI's exit-code contract (spec §6):
// 0 clean/warnings-only, 1 errors, 2 critical.
func (r *VerificationReport) ExitCode() int {
	switch r.Summary.OverallHealth {
	case HealthCritical:
		return 2
	case HealthErrorsFound:
		return 1
	default:
		return 0
	}
}

// GetFailures returns results at or above minSeverity, in original order.
func (r *VerificationReport) GetFailures(minSeverity statement.Severity) []statement.CheckResult {
	var out []statement.CheckResult
	for _, res := range r.Results {
		if res.Severity.Rank() >= minSeverity.Rank() {
			out = append(out, res)
		}
	}
	return out
}

// ByCategory groups results by category, preserving original order within
// each group.
func (r *VerificationReport) ByCategory() map[statement.CheckCategory][]statement.CheckResult {
	out := map[statement.CheckCategory][]statement.CheckResult{}
	for _, res := range r.Results {
		out[res.Category] = append(out[res.Category], res)
	}
	return out
}

// ByPeriod groups results by period, preserving original order within each
// group.
func (r *VerificationReport) ByPeriod() map[string][]statement.CheckResult {
	out := map[string][]statement.CheckResult{}
	for _, res := range r.Results {
		out[res.Period] = append(out[res.Period], res)
	}
	return out
}

// ToJSON marshals the report, matching spec §6's JSON report shape.
func (r *VerificationReport) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("report: marshal json: %w", err)
	}
	return data, nil
}

// PrintSummary writes a plain-text console summary, the Go port of the
// Python original's VerificationReport.print_summary().
func (r *VerificationReport) PrintSummary(w io.Writer) {
	s := r.Summary
	fmt.Fprintf(w, "Verification report for %s (run %s)\n", s.CompanyName, s.RunID)
	fmt.Fprintf(w, "Overall health: %s\n", s.OverallHealth)
	fmt.Fprintf(w, "Checks: %d total, %d passed, %d failed (%.1f%% pass rate)\n",
		s.TotalChecks, s.Passed, s.Failed, s.PassRate*100)
	fmt.Fprintf(w, "By severity: critical=%d error=%d warning=%d info=%d pass=%d\n",
		s.BySeverity[statement.SeverityCritical], s.BySeverity[statement.SeverityError],
		s.BySeverity[statement.SeverityWarning], s.BySeverity[statement.SeverityInfo],
		s.BySeverity[statement.SeverityPass])

	var cats []string
	for cat := range s.ByCategory {
		cats = append(cats, string(cat))
	}
	sort.Strings(cats)
	for _, cat := range cats {
		cs := s.ByCategory[statement.CheckCategory(cat)]
		fmt.Fprintf(w, "  %s: %d/%d passed (%.1f%%)\n", cat, cs.Passed, cs.Total, cs.PassRate*100)
	}
}

// RenderMarkdown renders the report as a human-readable Markdown document:
// a summary table followed by a single table of every non-pass result, in
// result order (not grouped by severity).
func (r *VerificationReport) RenderMarkdown() string {
	var b bytes.Buffer
	s := r.Summary
	fmt.Fprintf(&b, "# Verification report — %s\n\n", s.CompanyName)
	fmt.Fprintf(&b, "Run `%s` — overall health: **%s**\n\n", s.RunID, s.OverallHealth)
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total checks | %d |\n", s.TotalChecks)
	fmt.Fprintf(&b, "| Passed | %d |\n", s.Passed)
	fmt.Fprintf(&b, "| Failed | %d |\n", s.Failed)
	fmt.Fprintf(&b, "| Pass rate | %.1f%% |\n\n", s.PassRate*100)

	failures := r.GetFailures(statement.SeverityInfo)
	if len(failures) == 0 {
		b.WriteString("No failures.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "## Failures\n\n")
	fmt.Fprintf(&b, "| Check | Severity | Period | Message |\n|---|---|---|---|\n")
	for _, f := range failures {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", f.CheckID, f.Severity, f.Period, f.Message)
	}
	return b.String()
}

// RenderHTML converts RenderMarkdown's output to HTML via goldmark, for
// callers that want a browsable export rather than raw Markdown text.
func (r *VerificationReport) RenderHTML() (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(r.RenderMarkdown()), &buf); err != nil {
		return "", fmt.Errorf("report: render html: %w", err)
	}
	return buf.String(), nil
}
