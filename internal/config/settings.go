// Package config implements configuration resolution for restyle: upward
// discovery of .restyle fragments, translation of the deprecated flat
// schema, schema validation, and structural merging with provenance.
package config

import (
	"regexp"
	"sort"
)

// FileName is the well-known configuration file name searched for in
// each directory.
const FileName = ".restyle"

// Settings holds a parsed configuration fragment or a merged effective
// configuration. Values are bool, int, string, []interface{}, Set,
// Pattern, IndentRule, nested Settings, or Tagged. Settings values are
// treated as immutable; merge and translate build new containers.
type Settings map[string]interface{}

// Merge directives recognized on tagged values.
const (
	DirectiveReplace  = "replace"
	DirectiveDisplace = "displace"
)

// Tagged wraps a value carrying a merge directive (!replace or
// !displace in YAML). Validation applies to the wrapped value; only the
// merger consults the directive.
type Tagged struct {
	Directive string
	Value     interface{}
}

// untag returns the value inside a Tagged wrapper, or v itself.
func untag(v interface{}) interface{} {
	if t, ok := v.(Tagged); ok {
		return t.Value
	}
	return v
}

// Set is an ordered collection of unique values. Merging two sets
// unions them, keeping first-seen order.
type Set []interface{}

// NewSet builds a Set from items, dropping duplicates while keeping the
// first occurrence of each.
func NewSet(items ...interface{}) Set {
	s := make(Set, 0, len(items))
	for _, it := range items {
		if !s.Contains(it) {
			s = append(s, it)
		}
	}
	return s
}

// Contains reports whether the set holds a value structurally equal to v.
func (s Set) Contains(v interface{}) bool {
	for _, m := range s {
		if equalValues(m, v) {
			return true
		}
	}
	return false
}

// Union returns a new set holding s's members followed by the members
// of other not already present.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s), len(s)+len(other))
	copy(out, s)
	for _, m := range other {
		if !out.Contains(m) {
			out = append(out, m)
		}
	}
	return out
}

// Pattern is a compiled regular expression that keeps its source text
// so it can be rendered back out.
type Pattern struct {
	Source string
	re     *regexp.Regexp
}

// CompilePattern compiles src into a Pattern.
func CompilePattern(src string) (Pattern, error) {
	re, err := regexp.Compile(src)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{Source: src, re: re}, nil
}

// MatchString reports whether the pattern matches s.
func (p Pattern) MatchString(s string) bool {
	return p.re != nil && p.re.MatchString(s)
}

func (p Pattern) String() string {
	return p.Source
}

// IndentKind names one indentation directive form.
type IndentKind string

const (
	IndentInner IndentKind = "inner"
	IndentBlock IndentKind = "block"
	IndentStair IndentKind = "stair"
)

// Indenter is a single indentation directive: a kind plus its numeric
// arguments, e.g. [block, 1] or [inner, 2, 0].
type Indenter struct {
	Kind IndentKind
	Args []int
}

// IndentRule is the full indentation rule for one symbol or pattern
// key. Rules are leaf values: a deeper fragment's rule for the same key
// overrides an earlier one wholesale.
type IndentRule []Indenter

// Fragment pairs the settings parsed from one configuration file with
// the path it was read from.
type Fragment struct {
	Path     string
	Settings Settings
}

// Effective is a fully merged configuration plus the ordered list of
// file paths that contributed to it, shallowest first. Built-in
// defaults contribute no source entry.
type Effective struct {
	Settings Settings
	Sources  []string
}

// Extend folds one more fragment onto e, returning a new value.
func (e Effective) Extend(f Fragment) Effective {
	sources := make([]string, 0, len(e.Sources)+1)
	sources = append(sources, e.Sources...)
	sources = append(sources, f.Path)
	return Effective{
		Settings: MergeSettings(e.Settings, f.Settings),
		Sources:  sources,
	}
}

// lookup walks nested maps along path, seeing through Tagged wrappers.
func (s Settings) lookup(path ...string) (interface{}, bool) {
	var cur interface{} = s
	for _, key := range path {
		m, ok := untag(cur).(Settings)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return untag(cur), true
}

// FilePattern returns the compiled files.pattern regex, if configured
// with a valid pattern.
func (s Settings) FilePattern() (Pattern, bool) {
	v, ok := s.lookup("files", "pattern")
	if !ok {
		return Pattern{}, false
	}
	switch pv := v.(type) {
	case Pattern:
		return pv, true
	case string:
		p, err := CompilePattern(pv)
		if err != nil {
			return Pattern{}, false
		}
		return p, true
	}
	return Pattern{}, false
}

// FileExtensions returns the files.extensions set.
func (s Settings) FileExtensions() (Set, bool) {
	v, ok := s.lookup("files", "extensions")
	if !ok {
		return nil, false
	}
	set, ok := v.(Set)
	return set, ok
}

// IgnoreRules returns the files.ignore set of exact names and patterns.
func (s Settings) IgnoreRules() (Set, bool) {
	v, ok := s.lookup("files", "ignore")
	if !ok {
		return nil, false
	}
	set, ok := v.(Set)
	return set, ok
}

// RuleEnabled reports whether rules.<name>.enabled is true.
func (s Settings) RuleEnabled(name string) bool {
	v, ok := s.lookup("rules", name, "enabled")
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Keys returns the map's keys sorted alphabetically.
func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Paths returns the dotted path of every field set in s, sorted. Known
// leaf fields stop the descent, so an indents table counts as one path
// rather than one per symbol.
func (s Settings) Paths() []string {
	var paths []string
	var walk func(m Settings, prefix string)
	walk = func(m Settings, prefix string) {
		for k, v := range m {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			if _, isLeaf := LookupField(path); isLeaf {
				paths = append(paths, path)
				continue
			}
			if inner, ok := asSettings(untag(v)); ok {
				walk(inner, path)
				continue
			}
			paths = append(paths, path)
		}
	}
	walk(s, "")
	sort.Strings(paths)
	return paths
}

// clone returns a deep copy of s. Scalars and typed leaves are shared;
// maps, sequences, and sets are copied.
func (s Settings) clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case Settings:
		return tv.clone()
	case map[string]interface{}:
		return Settings(tv).clone()
	case []interface{}:
		out := make([]interface{}, len(tv))
		for i, m := range tv {
			out[i] = cloneValue(m)
		}
		return out
	case Set:
		out := make(Set, len(tv))
		for i, m := range tv {
			out[i] = cloneValue(m)
		}
		return out
	case Tagged:
		return Tagged{Directive: tv.Directive, Value: cloneValue(tv.Value)}
	default:
		return v
	}
}

// equalValues compares two settings values structurally. Patterns
// compare by source text, tagged values by their contents.
func equalValues(a, b interface{}) bool {
	a, b = untag(a), untag(b)
	switch av := a.(type) {
	case Settings:
		bv, ok := asSettings(b)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, ok := bv[k]
			if !ok || !equalValues(v, w) {
				return false
			}
		}
		return true
	case map[string]interface{}:
		return equalValues(Settings(av), b)
	case []interface{}:
		bv, ok := asSequence(b)
		if !ok {
			return false
		}
		return equalSequences(av, bv)
	case Set:
		bv, ok := asSequence(b)
		if !ok {
			return false
		}
		return equalSequences(av, bv)
	case Pattern:
		switch bv := b.(type) {
		case Pattern:
			return av.Source == bv.Source
		case string:
			return av.Source == bv
		}
		return false
	case IndentRule:
		bv, ok := b.(IndentRule)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalIndenters(av[i], bv[i]) {
				return false
			}
		}
		return true
	case string:
		if bv, ok := b.(Pattern); ok {
			return av == bv.Source
		}
		return a == b
	default:
		return a == b
	}
}

func equalIndenters(a, b Indenter) bool {
	if a.Kind != b.Kind || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if a.Args[i] != b.Args[i] {
			return false
		}
	}
	return true
}

func asSettings(v interface{}) (Settings, bool) {
	switch tv := v.(type) {
	case Settings:
		return tv, true
	case map[string]interface{}:
		return Settings(tv), true
	}
	return nil, false
}

func asSequence(v interface{}) ([]interface{}, bool) {
	switch tv := v.(type) {
	case []interface{}:
		return tv, true
	case Set:
		return []interface{}(tv), true
	}
	return nil, false
}

func equalSequences(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalValues(a[i], b[i]) {
			return false
		}
	}
	return true
}

// StripDirectives returns a copy of s with all Tagged wrappers removed.
// Used when rendering an effective configuration, where merge
// directives no longer mean anything.
func StripDirectives(s Settings) Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = stripValue(v)
	}
	return out
}

func stripValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case Tagged:
		return stripValue(tv.Value)
	case Settings:
		return StripDirectives(tv)
	case map[string]interface{}:
		return StripDirectives(Settings(tv))
	case []interface{}:
		out := make([]interface{}, len(tv))
		for i, m := range tv {
			out[i] = stripValue(m)
		}
		return out
	case Set:
		out := make(Set, len(tv))
		for i, m := range tv {
			out[i] = stripValue(m)
		}
		return out
	default:
		return v
	}
}
