package ingest

import (
	"log"
	"regexp"
	"strings"

	"fsverify/pkg/mapping"
	"fsverify/pkg/numparse"
	"fsverify/pkg/statement"
)

// sectionPatterns classify a row's first few cells as opening a financial
// statement section, per spec §4.7.
var sectionPatterns = map[string][]*regexp.Regexp{
	statement.TypeIncomeStatement: {
		regexp.MustCompile(`(?i)income\s*statement`),
		regexp.MustCompile(`(?i)profit\s*(&|and)?\s*loss`),
		regexp.MustCompile(`(?i)\bp\s*&?\s*l\b`),
		regexp.MustCompile(`(?i)statement\s*of\s*(profit|income|operations)`),
	},
	statement.TypeBalanceSheet: {
		regexp.MustCompile(`(?i)balance\s*sheet`),
		regexp.MustCompile(`(?i)statement\s*of\s*(financial\s*)?position`),
	},
	statement.TypeCashFlow: {
		regexp.MustCompile(`(?i)cash\s*flow`),
		regexp.MustCompile(`(?i)statement\s*of\s*cash\s*flows?`),
	},
}

// sectionOrder fixes a deterministic classification order: stop wins, then
// IS, BS, CF, matching spec §4.7 phase 1.
var sectionOrder = []string{statement.TypeIncomeStatement, statement.TypeBalanceSheet, statement.TypeCashFlow}

// stopPatterns terminate the current section without opening a new one.
var stopPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bdcf\b`),
	regexp.MustCompile(`(?i)valuation`),
	regexp.MustCompile(`(?i)sensitivity`),
	regexp.MustCompile(`(?i)scenario\s*(assum|analy)`),
	regexp.MustCompile(`(?i)football\s*field`),
	regexp.MustCompile(`(?i)\bwacc\b`),
	regexp.MustCompile(`(?i)comps?\s*(table|analy)`),
	regexp.MustCompile(`(?i)comparable`),
	regexp.MustCompile(`(?i)multiples`),
	regexp.MustCompile(`(?i)\blbo\b`),
	regexp.MustCompile(`(?i)monte\s*carlo`),
}

// skipSubLabelPatterns mark rows within a section whose data must be
// ignored (sub-headings, not line items).
var skipSubLabelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^assets$`),
	regexp.MustCompile(`(?i)equity\s*(and|&)\s*liabilities`),
	regexp.MustCompile(`(?i)current\s*(assets|liabilities)`),
	regexp.MustCompile(`(?i)non-?current\s*(assets|liabilities)`),
	regexp.MustCompile(`(?i)operating\s*activities`),
	regexp.MustCompile(`(?i)investing\s*activities`),
	regexp.MustCompile(`(?i)financing\s*activities`),
	regexp.MustCompile(`(?i)changes?\s*in\s*working\s*capital`),
	regexp.MustCompile(`(?i)total\s*income`),
	regexp.MustCompile(`(?i)total\s*expenses`),
	regexp.MustCompile(`(?i)total\s*expenditure`),
}

var periodRegex = regexp.MustCompile(`(?i)^(fy|cy|q[1-4][-\s]?|h[12][-\s]?)?\d{4}\s*[epfab]?$`)

const emDash = "—"

type stackedSection struct {
	stmtType string
	headerRow int
	endRow    int // inclusive
}

// ParseStackedSheet segments a single free-form spreadsheet into IS/BS/CF
// sections (skipping DCF/valuation/comps blocks), infers each section's
// period header row and label column, and extracts line items, per spec
// §4.7.
func ParseStackedSheet(rows [][]string, cfg *mapping.Config) (*statement.FinancialModel, map[string]statement.MappingDiagnostics, error) {
	model := statement.NewFinancialModel()
	model.CompanyName = detectCompanyName(rows)
	diagnostics := map[string]statement.MappingDiagnostics{}

	sections := classifySections(rows)
	for _, sec := range sections {
		labels, periodOrder, periodValues, ok := extractSection(rows, sec)
		if !ok {
			log.Printf("[stacked] section %s at row %d skipped: no period header found", sec.stmtType, sec.headerRow)
			continue
		}
		for _, p := range periodOrder {
			if !containsString(model.Periods, p) {
				model.Periods = append(model.Periods, p)
			}
		}

		mappingTable, diag := mapping.MapFields(labels, sec.stmtType, cfg)
		diagnostics[sec.stmtType] = diag

		for label, canonical := range mappingTable {
			for _, period := range periodOrder {
				raw, ok := periodValues[label][period]
				if !ok {
					continue
				}
				ensureStatement(model, sec.stmtType, period)
				assignField(model, sec.stmtType, period, canonical, raw)
			}
		}
	}

	applySignNormalization(model, cfg.Settings)
	finalizePeriods(model)
	return model, diagnostics, nil
}

// classifySections runs phase 1: a top-to-bottom scan classifying each row
// as stop / IS / BS / CF / neither, opening and closing sections as it goes.
func classifySections(rows [][]string) []stackedSection {
	var sections []stackedSection
	var current *stackedSection

	closeCurrent := func(endRow int) {
		if current != nil {
			current.endRow = endRow
			sections = append(sections, *current)
			current = nil
		}
	}

	for i, row := range rows {
		if matchesAny(row, stopPatterns) {
			closeCurrent(i - 1)
			continue
		}
		if stmtType := classifyFinancialHeader(row); stmtType != "" {
			closeCurrent(i - 1)
			current = &stackedSection{stmtType: stmtType, headerRow: i}
			continue
		}
	}
	closeCurrent(len(rows) - 1)
	return sections
}

// classifyFinancialHeader checks columns 0..3 against the IS/BS/CF header
// patterns in that fixed order, returning the first statement type that
// matches, or "" for no match.
func classifyFinancialHeader(row []string) string {
	for _, stmtType := range sectionOrder {
		if matchesAny(row, sectionPatterns[stmtType]) {
			return stmtType
		}
	}
	return ""
}

func matchesAny(row []string, patterns []*regexp.Regexp) bool {
	limit := len(row)
	if limit > 4 {
		limit = 4
	}
	for col := 0; col < limit; col++ {
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		for _, p := range patterns {
			if p.MatchString(cell) {
				return true
			}
		}
	}
	return false
}

// extractSection runs phase 2 for one section: period-row detection,
// period-column mapping, label-column scoring, and line extraction.
func extractSection(rows [][]string, sec stackedSection) (labels []string, periodOrder []string, periodValues map[string]map[string]interface{}, ok bool) {
	periodRowIdx, periodCols, found := findPeriodRow(rows, sec)
	if !found {
		return nil, nil, nil, false
	}
	for _, pc := range periodCols {
		periodOrder = append(periodOrder, pc.label)
	}

	labelCol := scoreLabelColumn(rows, periodRowIdx+1, sec.endRow, periodCols)

	periodValues = map[string]map[string]interface{}{}
	seenLabel := map[string]struct{}{}

	for r := periodRowIdx + 1; r <= sec.endRow && r < len(rows); r++ {
		row := rows[r]
		label := candidateLabel(row, labelCol, periodCols)
		if label == "" {
			continue
		}
		if classifyFinancialHeader(row) != "" {
			break
		}
		if matchesAny(row, skipSubLabelPatterns) {
			continue
		}
		lower := strings.ToLower(label)
		if strings.Contains(lower, "balance check") || strings.Contains(lower, "eps (") {
			continue
		}

		if _, dup := seenLabel[label]; !dup {
			seenLabel[label] = struct{}{}
			labels = append(labels, label)
			periodValues[label] = map[string]interface{}{}
		}
		for _, pc := range periodCols {
			if pc.col < len(row) {
				periodValues[label][pc.label] = row[pc.col]
			}
		}
	}

	return labels, periodOrder, periodValues, true
}

type periodColumn struct {
	col   int
	label string
}

// findPeriodRow scans [header_idx, min(header_idx+5, end_idx)] for the
// first row with >= 2 cells matching the strict period regex, returning its
// period columns in column order, deduplicated by first-occurrence label.
func findPeriodRow(rows [][]string, sec stackedSection) (int, []periodColumn, bool) {
	limit := sec.headerRow + 5
	if limit > sec.endRow {
		limit = sec.endRow
	}
	for r := sec.headerRow; r <= limit && r < len(rows); r++ {
		row := rows[r]
		var cols []periodColumn
		seen := map[string]struct{}{}
		count := 0
		for c, cell := range row {
			trimmed := strings.TrimSpace(cell)
			if trimmed == "" || !periodRegex.MatchString(trimmed) {
				continue
			}
			count++
			if _, dup := seen[trimmed]; dup {
				continue
			}
			seen[trimmed] = struct{}{}
			cols = append(cols, periodColumn{col: c, label: trimmed})
		}
		if count >= 2 {
			return r, cols, true
		}
	}
	return 0, nil, false
}

// scoreLabelColumn scores every non-period column over [startRow, endRow]
// by the count of string cells with trimmed length > 2 that aren't
// numeric; the highest-scoring column wins, ties broken by lowest index.
func scoreLabelColumn(rows [][]string, startRow, endRow int, periodCols []periodColumn) int {
	isPeriodCol := map[int]struct{}{}
	for _, pc := range periodCols {
		isPeriodCol[pc.col] = struct{}{}
	}

	scores := map[int]int{}
	maxCol := 0
	for r := startRow; r <= endRow && r < len(rows); r++ {
		for c, cell := range rows[r] {
			if _, excluded := isPeriodCol[c]; excluded {
				continue
			}
			if c > maxCol {
				maxCol = c
			}
			trimmed := strings.TrimSpace(cell)
			if len(trimmed) <= 2 || looksNumeric(trimmed) {
				continue
			}
			scores[c]++
		}
	}

	best, bestScore := 0, 0
	for c := 0; c <= maxCol; c++ {
		if scores[c] > bestScore {
			best, bestScore = c, scores[c]
		}
	}
	if bestScore == 0 {
		return 0
	}
	return best
}

// candidateLabel reads the label for a data row from labelCol, falling
// back to labelCol+1 then labelCol-1 (excluding period columns, requiring
// non-numeric content of length > 1).
func candidateLabel(row []string, labelCol int, periodCols []periodColumn) string {
	isPeriodCol := map[int]struct{}{}
	for _, pc := range periodCols {
		isPeriodCol[pc.col] = struct{}{}
	}
	tryCol := func(c int) string {
		if c < 0 || c >= len(row) {
			return ""
		}
		if _, excluded := isPeriodCol[c]; excluded {
			return ""
		}
		trimmed := strings.TrimSpace(row[c])
		if len(trimmed) <= 1 || looksNumeric(trimmed) {
			return ""
		}
		return trimmed
	}
	if v := tryCol(labelCol); v != "" {
		return v
	}
	if v := tryCol(labelCol + 1); v != "" {
		return v
	}
	return tryCol(labelCol - 1)
}

func looksNumeric(s string) bool {
	_, err := numparse.Parse(s)
	return err == nil
}

// detectCompanyName scans the first five rows for a string cell containing
// an em dash; the prefix before it, trimmed, is the company name.
func detectCompanyName(rows [][]string) string {
	limit := 5
	if limit > len(rows) {
		limit = len(rows)
	}
	for r := 0; r < limit; r++ {
		for _, cell := range rows[r] {
			if idx := strings.Index(cell, emDash); idx >= 0 {
				name := strings.TrimSpace(cell[:idx])
				if name != "" {
					return name
				}
			}
		}
	}
	return "Unknown"
}
