package config

import (
	"fmt"
	"strings"
)

// SchemaError reports a settings value that does not satisfy the
// configuration schema.
type SchemaError struct {
	Path    string // file the fragment came from, when known
	Field   string // dotted settings path of the offending value
	Message string // what was expected and what was found
}

func (e *SchemaError) Error() string {
	switch {
	case e.Path != "" && e.Field != "":
		return fmt.Sprintf("%s: field '%s': %s", e.Path, e.Field, e.Message)
	case e.Field != "":
		return fmt.Sprintf("field '%s': %s", e.Field, e.Message)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Validate checks s against the schema and returns a canonical copy:
// extension and ignore sequences become Sets, indent rules are decoded
// into IndentRule values, and pattern strings are checked to compile.
// Directive wrappers are validated by their contents and preserved.
// The input is never mutated.
func Validate(s Settings) (Settings, error) {
	return validateGroup(s, "")
}

func validateGroup(s Settings, prefix string) (Settings, error) {
	out := make(Settings, len(s))
	for k, v := range s {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		cv, err := validateAt(path, v)
		if err != nil {
			return nil, err
		}
		out[k] = cv
	}
	return out, nil
}

func validateAt(path string, v interface{}) (interface{}, error) {
	if t, ok := v.(Tagged); ok {
		inner, err := validateAt(path, t.Value)
		if err != nil {
			return nil, err
		}
		return Tagged{Directive: t.Directive, Value: inner}, nil
	}
	if f, ok := LookupField(path); ok {
		return validateField(f, path, v)
	}
	if IsGroup(path) {
		m, ok := asSettings(v)
		if !ok {
			return nil, &SchemaError{
				Field:   path,
				Message: fmt.Sprintf("expected a mapping, got %s", typeName(v)),
			}
		}
		return validateGroup(m, path)
	}
	return nil, &SchemaError{Field: path, Message: "unknown setting"}
}

func validateField(f FieldSchema, path string, v interface{}) (interface{}, error) {
	fail := func(format string, args ...interface{}) error {
		return &SchemaError{Field: path, Message: fmt.Sprintf(format, args...)}
	}
	switch f.Type {
	case TypeFlag:
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return nil, fail("expected %s, got %s", f.Type, typeName(v))
	case TypeNat:
		n, ok := asInt(v)
		if !ok {
			return nil, fail("expected %s, got %s", f.Type, typeName(v))
		}
		if n < 0 {
			return nil, fail("expected %s, got %d", f.Type, n)
		}
		return n, nil
	case TypeString:
		if str, ok := v.(string); ok {
			return str, nil
		}
		return nil, fail("expected %s, got %s", f.Type, typeName(v))
	case TypeRegex:
		str, ok := v.(string)
		if !ok {
			if p, isPattern := v.(Pattern); isPattern {
				return p.Source, nil
			}
			return nil, fail("expected %s, got %s", f.Type, typeName(v))
		}
		if _, err := CompilePattern(str); err != nil {
			return nil, fail("invalid regular expression: %v", err)
		}
		return str, nil
	case TypeStringSet:
		seq, ok := asSequence(v)
		if !ok {
			return nil, fail("expected %s, got %s", f.Type, typeName(v))
		}
		set := make(Set, 0, len(seq))
		for i, m := range seq {
			str, isStr := m.(string)
			if !isStr {
				return nil, fail("element %d: expected string, got %s", i, typeName(m))
			}
			if !set.Contains(str) {
				set = append(set, str)
			}
		}
		return set, nil
	case TypeIgnoreSet:
		seq, ok := asSequence(v)
		if !ok {
			return nil, fail("expected %s, got %s", f.Type, typeName(v))
		}
		set := make(Set, 0, len(seq))
		for i, m := range seq {
			switch m.(type) {
			case string, Pattern:
			default:
				return nil, fail("element %d: expected name or pattern, got %s", i, typeName(m))
			}
			if !set.Contains(m) {
				set = append(set, m)
			}
		}
		return set, nil
	case TypeIndents:
		return validateIndents(path, v)
	}
	return nil, fail("unsupported field type")
}

func validateIndents(path string, v interface{}) (interface{}, error) {
	m, ok := asSettings(v)
	if !ok {
		return nil, &SchemaError{
			Field:   path,
			Message: fmt.Sprintf("expected mapping of indent rules, got %s", typeName(v)),
		}
	}
	out := make(Settings, len(m))
	for key, rv := range m {
		field := path + "." + key
		if expr, isPattern := PatternKey(key); isPattern {
			if _, err := CompilePattern(expr); err != nil {
				return nil, &SchemaError{
					Field:   field,
					Message: fmt.Sprintf("invalid pattern key: %v", err),
				}
			}
		}
		rule, err := decodeIndentRule(rv)
		if err != nil {
			return nil, &SchemaError{Field: field, Message: err.Error()}
		}
		out[key] = rule
	}
	return out, nil
}

// PatternKey reports whether an indents key is a /pattern/ form and
// returns the inner expression.
func PatternKey(key string) (string, bool) {
	if len(key) >= 3 && strings.HasPrefix(key, "/") && strings.HasSuffix(key, "/") {
		return key[1 : len(key)-1], true
	}
	return "", false
}

func decodeIndentRule(v interface{}) (interface{}, error) {
	if t, ok := v.(Tagged); ok {
		inner, err := decodeIndentRule(t.Value)
		if err != nil {
			return nil, err
		}
		return Tagged{Directive: t.Directive, Value: inner}, nil
	}
	if r, ok := v.(IndentRule); ok {
		return r, nil
	}
	seq, ok := asSequence(v)
	if !ok {
		return nil, fmt.Errorf("expected a sequence of indent directives, got %s", typeName(v))
	}
	rule := make(IndentRule, 0, len(seq))
	for _, item := range seq {
		ind, err := decodeIndenter(item)
		if err != nil {
			return nil, err
		}
		rule = append(rule, ind)
	}
	return rule, nil
}

func decodeIndenter(v interface{}) (Indenter, error) {
	seq, ok := asSequence(v)
	if !ok || len(seq) == 0 {
		return Indenter{}, fmt.Errorf("expected [kind, args...], got %s", typeName(v))
	}
	kindStr, ok := seq[0].(string)
	if !ok {
		return Indenter{}, fmt.Errorf("indent kind must be a string, got %s", typeName(seq[0]))
	}
	args := make([]int, 0, len(seq)-1)
	for _, a := range seq[1:] {
		n, isInt := asInt(a)
		if !isInt || n < 0 {
			return Indenter{}, fmt.Errorf("indent arguments must be non-negative integers, got %s", typeName(a))
		}
		args = append(args, n)
	}
	kind := IndentKind(kindStr)
	switch kind {
	case IndentBlock, IndentStair:
		if len(args) != 1 {
			return Indenter{}, fmt.Errorf("%s takes exactly one argument", kind)
		}
	case IndentInner:
		if len(args) < 1 || len(args) > 2 {
			return Indenter{}, fmt.Errorf("inner takes one or two arguments")
		}
	default:
		return Indenter{}, fmt.Errorf("unknown indent kind %q (expected inner, block, or stair)", kindStr)
	}
	return Indenter{Kind: kind, Args: args}, nil
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

// typeName names a settings value's shape for error messages.
func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int, int64:
		return "integer"
	case float64:
		return "number"
	case string:
		return "string"
	case Settings, map[string]interface{}:
		return "mapping"
	case []interface{}:
		return "sequence"
	case Set:
		return "set"
	case Pattern:
		return "pattern"
	case IndentRule:
		return "indent rule"
	case Tagged:
		return "tagged value"
	default:
		return fmt.Sprintf("%T", v)
	}
}
