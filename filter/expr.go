package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/s0up4200/proxy6/px6"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	custom     map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.custom, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		custom: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CompileFilter compiles an expression without caching
func CompileFilter(expression string) (CompiledFilter, error) {
	return NewExprCompiler().Compile(expression)
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	custom map[string]any
	cache  *lruCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
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

	// A zero proxy gives the checker the type of every field and helper
	program, err := expr.Compile(expression,
		expr.Env(newEnvironment(px6.Proxy{}, time.Now(), c.custom)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		custom:     c.custom,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate evaluates the filter against a proxy
func (f *exprFilter) Evaluate(proxy px6.Proxy) (bool, error) {
	result, err := expr.Run(f.program, newEnvironment(proxy, time.Now(), f.custom))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			ProxyID:    proxy.ID,
			Err:        err,
		}
	}

	// AsBool guarantees the result type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// newEnvironment exposes a proxy and the helper functions to an expression
func newEnvironment(proxy px6.Proxy, now time.Time, custom map[string]any) map[string]any {
	env := make(map[string]any, 24+len(custom))

	addStringHelpers(env)
	env["now"] = func() time.Time { return now }

	expires := proxy.Expires()
	env["ID"] = proxy.ID.String()
	env["IP"] = proxy.IP
	env["Host"] = proxy.Host
	env["Port"] = int(proxy.Port)
	env["User"] = proxy.User
	env["Type"] = proxy.Type.String()
	env["Country"] = strings.ToLower(proxy.Country)
	env["Description"] = proxy.Description.String()
	env["Active"] = bool(proxy.Active)
	env["Version"] = int(proxy.Version)
	env["Expires"] = expires

	env["daysLeft"] = createDaysLeftFunc(expires, now)
	env["expiresWithin"] = createExpiresWithinFunc(expires, now)
	env["isType"] = createIsTypeFunc(proxy.Type)
	env["inCountry"] = createInCountryFunc(proxy.Country)

	maps.Copy(env, custom)
	return env
}

// addStringHelpers adds case-insensitive text matching. contains, startsWith
// and endsWith are expr operators, so the helpers use other names.
func addStringHelpers(env map[string]any) {
	env["hasText"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["hasTextPrefix"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["hasTextSuffix"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}

// createDaysLeftFunc counts whole days until expiry, 0 when unknown or past
func createDaysLeftFunc(expires, now time.Time) func() int {
	days := 0
	if !expires.IsZero() && expires.After(now) {
		days = int(expires.Sub(now).Hours() / 24)
	}
	return func() int {
		return days
	}
}

func createExpiresWithinFunc(expires, now time.Time) func(int) bool {
	return func(days int) bool {
		if expires.IsZero() {
			return false
		}
		return !expires.After(now.AddDate(0, 0, days))
	}
}

func createIsTypeFunc(typ px6.ProxyType) func(string) bool {
	return func(name string) bool {
		parsed, err := px6.ParseProxyType(name)
		return err == nil && parsed == typ
	}
}

func createInCountryFunc(country string) func(...string) bool {
	country = strings.ToLower(country)
	return func(codes ...string) bool {
		return slices.ContainsFunc(codes, func(code string) bool {
			return strings.EqualFold(code, country)
		})
	}
}
