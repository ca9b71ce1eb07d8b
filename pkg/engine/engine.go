// Package engine instantiates the check catalog, runs it against a
// financial model, and contains per-check failures so one bad rule can't
// take down the whole verification run.
package engine

import (
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"fsverify/pkg/checks"
	"fsverify/pkg/statement"
)

// CheckStatus records how one check's evaluation went, independent of the
// pass/fail CheckResults it may have produced.
type CheckStatus struct {
	Status string `json:"status"` // "ok" | "error"
	Error  string `json:"error,omitempty"`
}

// Options configures which checks Engine.Run evaluates.
type Options struct {
	Tolerances     checks.Tolerances
	CategoryAllow  []string // empty means all categories
	CheckIDDenylist []string
}

// Engine holds the checks instantiated for one run, per spec §4.8
// "Construction": built once, read-only during Run.
type Engine struct {
	defs []checks.CheckDef
	tol  checks.Tolerances
}

// New instantiates every check in checks.AllChecks, filtered by opts'
// category allow-list and check-ID deny-list.
func New(opts Options) *Engine {
	allow := toSet(opts.CategoryAllow)
	deny := toSet(opts.CheckIDDenylist)

	var defs []checks.CheckDef
	for _, def := range checks.AllChecks() {
		if len(allow) > 0 {
			if _, ok := allow[string(def.Category)]; !ok {
				continue
			}
		}
		if _, denied := deny[def.ID]; denied {
			continue
		}
		defs = append(defs, def)
	}

	tol := opts.Tolerances
	if tol.AbsTol == 0 && tol.PctTol == 0 {
		tol = checks.DefaultTolerances()
	}
	return &Engine{defs: defs, tol: tol}
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, i := range items {
		out[i] = struct{}{}
	}
	return out
}

// Run evaluates every registered check against model. Results preserve
// check-registration × period order (spec §5) regardless of goroutine
// completion order, since each check writes into its own pre-assigned
// output slot. A check that panics is recorded in the returned metadata
// with status "error" and does not abort the run.
func (e *Engine) Run(model *statement.FinancialModel) ([]statement.CheckResult, map[string]CheckStatus) {
	results := make([][]statement.CheckResult, len(e.defs))
	metadata := make([]CheckStatus, len(e.defs))

	var g errgroup.Group
	for i, def := range e.defs {
		i, def := i, def
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					metadata[i] = CheckStatus{Status: "error", Error: fmt.Sprintf("panic: %v", r)}
					log.Printf("[engine] check %s panicked: %v", def.ID, r)
				}
			}()
			results[i] = def.Evaluate(model, e.tol)
			if metadata[i].Status == "" {
				metadata[i] = CheckStatus{Status: "ok"}
			}
			return nil
		})
	}
	_ = g.Wait() // check goroutines never return a non-nil error; failures are contained via recover above

	var ordered []statement.CheckResult
	metaByID := map[string]CheckStatus{}
	for i, def := range e.defs {
		ordered = append(ordered, results[i]...)
		metaByID[def.ID] = metadata[i]
	}
	return ordered, metaByID
}
