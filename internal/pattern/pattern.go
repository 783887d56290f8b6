// Package pattern compiles catalog rule tokens into cell matchers.
//
// A token is either one of the symbolic names below or a literal. Symbolic
// tokens match dynamic data (timestamps, ids); literals require exact
// equality. Every matcher tests the whole value.
package pattern

import (
	"regexp"
	"sort"

	"github.com/ppiankov/exportcheck/internal/cache"
)

// Symbolic rule tokens
const (
	TokenDateTime  = "DATETIME"   // 19-Feb-2026 11:55:33
	TokenDateOnly  = "DATE_ONLY"  // Same shape as DATETIME
	TokenDateSlash = "DATE_SLASH" // 24/02/2000
	TokenInteger   = "INTEGER"    // 255529
	TokenNumericID = "NUMERIC_ID" // Same as INTEGER
	TokenAny       = "ANY"
	TokenEmpty     = "EMPTY"
	TokenNonEmpty  = "NONEMPTY"
)

var (
	dateTimeRe  = regexp.MustCompile(`^\d{1,2}-[A-Za-z]{3}-\d{4} \d{2}:\d{2}:\d{2}$`)
	dateSlashRe = regexp.MustCompile(`^\d{1,2}/\d{2}/\d{4}$`)
	integerRe   = regexp.MustCompile(`^[0-9]+$`)
)

// Matcher tests whether a single cell value conforms to a rule
type Matcher interface {
	Matches(value string) bool
}

// MatcherFunc adapts a function to the Matcher interface
type MatcherFunc func(value string) bool

// Matches calls f(value)
func (f MatcherFunc) Matches(value string) bool { return f(value) }

// Literal matches exactly one string
type Literal string

// Matches reports whether value equals the literal
func (l Literal) Matches(value string) bool { return value == string(l) }

type regexMatcher struct {
	re *regexp.Regexp
}

func (m regexMatcher) Matches(value string) bool { return m.re.MatchString(value) }

var symbolic = map[string]Matcher{
	TokenDateTime:  regexMatcher{dateTimeRe},
	TokenDateOnly:  regexMatcher{dateTimeRe},
	TokenDateSlash: regexMatcher{dateSlashRe},
	TokenInteger:   regexMatcher{integerRe},
	TokenNumericID: regexMatcher{integerRe},
	TokenAny:       MatcherFunc(func(string) bool { return true }),
	TokenEmpty:     MatcherFunc(func(v string) bool { return v == "" }),
	TokenNonEmpty:  MatcherFunc(func(v string) bool { return v != "" }),
}

var descriptions = map[string]string{
	TokenDateTime:  "day-Mon-year hh:mm:ss, e.g. 19-Feb-2026 11:55:33",
	TokenDateOnly:  "alias of DATETIME",
	TokenDateSlash: "d/mm/yyyy, e.g. 24/02/2000",
	TokenInteger:   "one or more ASCII digits",
	TokenNumericID: "alias of INTEGER",
	TokenAny:       "any value, including empty",
	TokenEmpty:     "the empty string",
	TokenNonEmpty:  "any value except the empty string",
}

// Describe returns a short description of a symbolic token, or "" for literals
func Describe(token string) string {
	return descriptions[token]
}

// Compile resolves a token to its matcher without caching
func Compile(token string) Matcher {
	if m, ok := symbolic[token]; ok {
		return m
	}
	return Literal(token)
}

// IsSymbolic reports whether token is a recognized rule name
func IsSymbolic(token string) bool {
	_, ok := symbolic[token]
	return ok
}

// Tokens returns the recognized rule names in sorted order
func Tokens() []string {
	names := make([]string, 0, len(symbolic))
	for name := range symbolic {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compiler memoizes compiled matchers per distinct token
type Compiler struct {
	cache cache.Cache[Matcher]
}

// NewCompiler creates a compiler whose matchers live for the whole process
func NewCompiler() *Compiler {
	return &Compiler{
		cache: cache.NewMemoryCache[Matcher](cache.NoExpiration, 0),
	}
}

// Compile returns the matcher for token, compiling it on first use
func (c *Compiler) Compile(token string) Matcher {
	key := cache.Key("pattern", token)
	if m, found := c.cache.Get(key); found {
		return m
	}
	m := Compile(token)
	c.cache.Set(key, m, cache.NoExpiration)
	return m
}

// Compiled returns how many distinct tokens have been compiled
func (c *Compiler) Compiled() int {
	return c.cache.Len()
}
