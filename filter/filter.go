// Package filter implements client-side match filters written in the expr
// language, for example:
//
//	isFinished() && TotalGoals >= 3 && involves("Arsenal")
//
// Match fields are exposed as variables (HomeTeam, AwayTeam, Status,
// Competition, Date, Matchday, Stage, HomeGoals, AwayGoals, TotalGoals,
// Winner) and the whole match as Match. Missing scores count as zero goals;
// use hasScore() to tell them apart.
package filter

import (
	"maps"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog"

	"github.com/s0up4200/matchboard/footballdata"
)

// Filter is a compiled match filter. It is safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
	funcs      map[string]any
	logger     zerolog.Logger
}

// Match evaluates the filter against a match. Evaluation errors, such as a
// comparison on a misspelled field, count as no match and are logged at
// debug level.
func (f *Filter) Match(match footballdata.Match) bool {
	env := createRuntimeEnvironment(match)
	maps.Copy(env, f.funcs)

	result, err := expr.Run(f.program, env)
	if err != nil {
		f.logger.Debug().
			Err(err).
			Str("expression", f.expression).
			Int("match_id", match.ID).
			Msg("Filter evaluation failed")
		return false
	}

	// AsBool at compile time guarantees the type
	return result.(bool)
}

// Apply returns the matches the filter accepts, in their original order.
// The result is never nil.
func (f *Filter) Apply(matches []footballdata.Match) []footballdata.Match {
	out := make([]footballdata.Match, 0, len(matches))
	for _, m := range matches {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// String implements fmt.Stringer
func (f *Filter) String() string {
	return f.expression
}
