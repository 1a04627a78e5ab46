package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/s0up4200/matchboard/footballdata"
)

// DefaultCacheSize is the number of compiled expressions kept by NewCompiler
const DefaultCacheSize = 100

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache sets the size of the compiled expression cache. Zero disables it.
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		c.cacheSize = size
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helperFuncs, funcs)
		maps.Copy(c.customFuncs, funcs)
	}
}

// WithLogger sets the logger compiled filters report evaluation errors to
func WithLogger(logger zerolog.Logger) CompilerOption {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// Compiler compiles match filter expressions. It is safe for concurrent use.
type Compiler struct {
	helperFuncs map[string]any
	customFuncs map[string]any
	cacheSize   int
	cache       *lru.Cache[string, *Filter]
	logger      zerolog.Logger
}

// NewCompiler creates a new expr-based filter compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		helperFuncs: createHelperFunctions(),
		customFuncs: make(map[string]any),
		cacheSize:   DefaultCacheSize,
		logger:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cacheSize > 0 {
		// lru.New only fails for non-positive sizes
		c.cache, _ = lru.New[string, *Filter](c.cacheSize)
	}

	return c
}

var defaultCompiler = NewCompiler()

// Compile compiles expression with the package level compiler
func Compile(expression string) (*Filter, error) {
	return defaultCompiler.Compile(expression)
}

// Compile compiles an expression into an executable filter
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Compile with static environment for validation
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(), // match fields are bound at run time
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &Filter{
		expression: expression,
		program:    program,
		funcs:      c.customFuncs,
		logger:     c.logger,
	}

	if c.cache != nil {
		c.cache.Add(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 32)
	addHelperFunctions(funcs)
	addMatchHelpers(funcs, footballdata.Match{})
	return funcs
}

// addHelperFunctions adds the match independent helpers
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["daysAhead"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, days)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}

// addMatchHelpers binds the helpers that close over one match
func addMatchHelpers(env map[string]any, match footballdata.Match) {
	fullTime := match.Score.FullTime

	env["isFinished"] = func() bool {
		return match.Status == footballdata.StatusFinished
	}
	env["isLive"] = func() bool {
		return match.Status.IsLive()
	}
	env["isScheduled"] = func() bool {
		return match.Status == footballdata.StatusScheduled || match.Status == footballdata.StatusTimed
	}
	env["hasScore"] = func() bool {
		return fullTime.Complete()
	}
	env["involves"] = func(team string) bool {
		return teamMatches(match.HomeTeam, team) || teamMatches(match.AwayTeam, team)
	}
	env["homeWin"] = func() bool {
		return fullTime.Complete() && *fullTime.Home > *fullTime.Away
	}
	env["awayWin"] = func() bool {
		return fullTime.Complete() && *fullTime.Away > *fullTime.Home
	}
	env["draw"] = func() bool {
		return fullTime.Complete() && *fullTime.Home == *fullTime.Away
	}
	env["wonBy"] = func(team string) bool {
		if !fullTime.Complete() {
			return false
		}
		switch {
		case *fullTime.Home > *fullTime.Away:
			return teamMatches(match.HomeTeam, team)
		case *fullTime.Away > *fullTime.Home:
			return teamMatches(match.AwayTeam, team)
		}
		return false
	}
}

// createRuntimeEnvironment creates the runtime environment for one match
func createRuntimeEnvironment(match footballdata.Match) map[string]any {
	env := make(map[string]any, 48)

	addHelperFunctions(env)
	addMatchHelpers(env, match)

	home, away := goals(match.Score.FullTime.Home), goals(match.Score.FullTime.Away)

	env["Match"] = match
	env["ID"] = match.ID
	env["Status"] = string(match.Status)
	env["Competition"] = match.Competition.Code
	env["Date"] = match.UTCDate
	env["Stage"] = match.Stage
	env["Matchday"] = 0
	if match.Matchday != nil {
		env["Matchday"] = *match.Matchday
	}
	env["HomeTeam"] = match.HomeTeam.DisplayName()
	env["AwayTeam"] = match.AwayTeam.DisplayName()
	env["HomeGoals"] = home
	env["AwayGoals"] = away
	env["TotalGoals"] = home + away
	env["Winner"] = match.Score.Winner

	return env
}

func goals(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// teamMatches compares case-insensitively against every name of a team
func teamMatches(team footballdata.Team, name string) bool {
	if name == "" {
		return false
	}
	for _, candidate := range []string{team.Name, team.ShortName, team.TLA} {
		if candidate != "" && strings.Contains(strings.ToLower(candidate), strings.ToLower(name)) {
			return true
		}
	}
	return false
}
