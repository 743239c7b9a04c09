// Package compare runs the same packing instance through all three
// rectpack engines and reports whether they agree on feasibility —
// spec.md's testable property §8.4, operationalized as a reusable harness.
package compare

import (
	"context"
	"fmt"

	"github.com/piwi3910/rectpack"
)

// EngineResult holds one engine's outcome within a Report.
type EngineResult struct {
	Algorithm rectpack.Algorithm
	Result    rectpack.Result
	Err       error
}

// Report is the outcome of running one instance through every engine.
type Report struct {
	Results []EngineResult
	// Agree is true when every engine that did not error reached the same
	// Feasible verdict.
	Agree bool
}

// allAlgorithms lists the engines Run exercises, in a fixed order so a
// Report's Results slice is deterministic.
var allAlgorithms = []rectpack.Algorithm{
	rectpack.Backtracking,
	rectpack.DancingLinks,
	rectpack.IntegerProgramming,
}

// Run calls rectpack.Pack once per engine, sequentially (per spec.md's
// non-goal of parallel search), and reports whether they agree.
func Run(ctx context.Context, h, w int, pieces []rectpack.Piece, allowRotation bool, opts ...rectpack.Option) Report {
	report := Report{Results: make([]EngineResult, 0, len(allAlgorithms))}

	var firstFeasible *bool
	agree := true
	for _, algo := range allAlgorithms {
		res, err := rectpack.Pack(ctx, h, w, pieces, allowRotation, algo, opts...)
		report.Results = append(report.Results, EngineResult{Algorithm: algo, Result: res, Err: err})
		if err != nil {
			continue
		}
		if firstFeasible == nil {
			v := res.Feasible
			firstFeasible = &v
		} else if *firstFeasible != res.Feasible {
			agree = false
		}
	}
	report.Agree = agree
	return report
}

// Summary renders a one-line-per-engine human-readable report, grounded on
// the teacher's ComparisonResult reporting style.
func (r Report) Summary() string {
	out := ""
	for _, er := range r.Results {
		if er.Err != nil {
			out += fmt.Sprintf("%s: error: %v\n", er.Algorithm, er.Err)
			continue
		}
		out += fmt.Sprintf("%s: feasible=%v diagnostic=%q\n", er.Algorithm, er.Result.Feasible, er.Result.Diagnostic)
	}
	return out
}
