package config

import "strings"

// legacyField maps one deprecated flat-schema key to its home in the
// current nested schema.
type legacyField struct {
	Key     string      // deprecated flat key
	Target  string      // dotted path in the current schema
	Default interface{} // default under the old schema; matching values are dropped
}

// legacyFields is the complete translation table for the deprecated
// flat schema. Every flat key has exactly one destination.
var legacyFields = []legacyField{
	{"indentation", "rules.indentation.enabled", true},
	{"list-indent-size", "rules.indentation.list-indent", 2},
	{"indents", "rules.indentation.indents", Settings{}},
	{"line-break-vars", "rules.vars.enabled", true},
	{"line-break-functions", "rules.functions.enabled", true},
	{"reformat-types", "rules.types.enabled", true},
	{"remove-surrounding-whitespace", "rules.whitespace.remove-surrounding", true},
	{"remove-trailing-whitespace", "rules.whitespace.remove-trailing", true},
	{"insert-missing-whitespace", "rules.whitespace.insert-missing", true},
	{"remove-consecutive-blank-lines", "rules.blank-lines.trim-consecutive", true},
	{"max-consecutive-blank-lines", "rules.blank-lines.max-consecutive", 2},
	{"insert-padding-lines", "rules.blank-lines.insert-padding", true},
	{"padding-lines", "rules.blank-lines.padding-lines", 2},
	{"rewrite-namespaces", "rules.namespaces.enabled", true},
	{"single-import-break-width", "rules.namespaces.import-break-width", 30},
	{"require-eof-newline", "rules.eof-newline.enabled", false},
	{"file-pattern", "files.pattern", `\.clj[csx]?$`},
	{"file-ignore", "files.ignore", []interface{}{}},
}

// IsLegacy reports whether the settings use the deprecated flat
// schema. Any flat key present makes the fragment legacy.
func IsLegacy(s Settings) bool {
	for _, f := range legacyFields {
		if _, ok := s[f.Key]; ok {
			return true
		}
	}
	return false
}

// TranslateLegacy rewrites deprecated flat-schema keys into their
// current nested locations and returns the result. A value equal to
// the old schema's default is dropped rather than carried forward, so
// a translated fragment only pins what its author deliberately
// changed. Note the old and current defaults are not all the same
// (require-eof-newline in particular), so dropping can change the
// effective value of a key the author spelled out.
//
// Settings without legacy keys are returned unchanged, which makes the
// translation idempotent. The input is never mutated.
func TranslateLegacy(s Settings) Settings {
	if !IsLegacy(s) {
		return s
	}
	out := s.clone()
	for _, f := range legacyFields {
		v, ok := out[f.Key]
		if !ok {
			continue
		}
		delete(out, f.Key)
		if equalValues(v, f.Default) {
			continue
		}
		setPath(out, f.Target, v)
	}
	return out
}

// setPath stores v at a dotted path, creating intermediate maps. An
// intermediate non-map value is overwritten; the schema walk rejects
// such fragments later anyway.
func setPath(s Settings, path string, v interface{}) {
	keys := strings.Split(path, ".")
	cur := s
	for _, k := range keys[:len(keys)-1] {
		next, ok := cur[k].(Settings)
		if !ok {
			next = Settings{}
			cur[k] = next
		}
		cur = next
	}
	cur[keys[len(keys)-1]] = v
}
