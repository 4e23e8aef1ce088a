package config

import "sort"

// FieldType defines the expected shape of a settings value.
type FieldType int

const (
	TypeFlag      FieldType = iota // boolean toggle
	TypeNat                        // non-negative integer
	TypeString                     // plain string
	TypeRegex                      // string that must compile as a regular expression
	TypeStringSet                  // sequence of strings, merged as a set
	TypeIgnoreSet                  // sequence of names and !regex patterns, merged as a set
	TypeIndents                    // open mapping of symbol or /pattern/ keys to indent rules
)

// String returns the human-readable name of the field type, used in
// schema error messages.
func (t FieldType) String() string {
	switch t {
	case TypeFlag:
		return "boolean"
	case TypeNat:
		return "non-negative integer"
	case TypeString:
		return "string"
	case TypeRegex:
		return "regular expression string"
	case TypeStringSet:
		return "sequence of strings"
	case TypeIgnoreSet:
		return "sequence of names and patterns"
	case TypeIndents:
		return "mapping of indent rules"
	default:
		return "unknown"
	}
}

// FieldSchema defines a known settings field with its expected type.
type FieldSchema struct {
	Path        string    // Dotted settings path (e.g., "rules.indentation.list-indent")
	Type        FieldType // Expected value shape for validation
	Description string    // Human-readable description for help text
}

// KnownFields is the registry of all settings fields. Groups are
// closed: a key that is neither a known field nor a prefix of one is
// rejected by Validate.
var KnownFields = map[string]FieldSchema{
	"files.pattern": {
		Path:        "files.pattern",
		Type:        TypeRegex,
		Description: "Regular expression matched against candidate file names",
	},
	"files.extensions": {
		Path:        "files.extensions",
		Type:        TypeStringSet,
		Description: "File extensions treated as source files when no pattern is set",
	},
	"files.ignore": {
		Path:        "files.ignore",
		Type:        TypeIgnoreSet,
		Description: "Exact names and !regex patterns of files and directories to skip",
	},
	"rules.indentation.enabled": {
		Path:        "rules.indentation.enabled",
		Type:        TypeFlag,
		Description: "Reindent forms",
	},
	"rules.indentation.list-indent": {
		Path:        "rules.indentation.list-indent",
		Type:        TypeNat,
		Description: "Indentation applied to list bodies without a matching rule",
	},
	"rules.indentation.indents": {
		Path:        "rules.indentation.indents",
		Type:        TypeIndents,
		Description: "Indent rules keyed by symbol or /pattern/",
	},
	"rules.whitespace.enabled": {
		Path:        "rules.whitespace.enabled",
		Type:        TypeFlag,
		Description: "Normalize whitespace inside forms",
	},
	"rules.whitespace.remove-surrounding": {
		Path:        "rules.whitespace.remove-surrounding",
		Type:        TypeFlag,
		Description: "Remove whitespace surrounding inner forms",
	},
	"rules.whitespace.remove-trailing": {
		Path:        "rules.whitespace.remove-trailing",
		Type:        TypeFlag,
		Description: "Remove whitespace at the ends of lines",
	},
	"rules.whitespace.insert-missing": {
		Path:        "rules.whitespace.insert-missing",
		Type:        TypeFlag,
		Description: "Insert whitespace missing between adjacent forms",
	},
	"rules.blank-lines.enabled": {
		Path:        "rules.blank-lines.enabled",
		Type:        TypeFlag,
		Description: "Normalize blank lines between top-level forms",
	},
	"rules.blank-lines.trim-consecutive": {
		Path:        "rules.blank-lines.trim-consecutive",
		Type:        TypeFlag,
		Description: "Collapse runs of blank lines down to max-consecutive",
	},
	"rules.blank-lines.max-consecutive": {
		Path:        "rules.blank-lines.max-consecutive",
		Type:        TypeNat,
		Description: "Maximum consecutive blank lines to allow",
	},
	"rules.blank-lines.insert-padding": {
		Path:        "rules.blank-lines.insert-padding",
		Type:        TypeFlag,
		Description: "Insert blank lines between adjacent top-level forms",
	},
	"rules.blank-lines.padding-lines": {
		Path:        "rules.blank-lines.padding-lines",
		Type:        TypeNat,
		Description: "Blank lines inserted between top-level forms",
	},
	"rules.eof-newline.enabled": {
		Path:        "rules.eof-newline.enabled",
		Type:        TypeFlag,
		Description: "Require a final newline at end of file",
	},
	"rules.comments.enabled": {
		Path:        "rules.comments.enabled",
		Type:        TypeFlag,
		Description: "Normalize comment leader characters",
	},
	"rules.comments.inline-prefix": {
		Path:        "rules.comments.inline-prefix",
		Type:        TypeString,
		Description: "Leader for comments sharing a line with code",
	},
	"rules.comments.leading-prefix": {
		Path:        "rules.comments.leading-prefix",
		Type:        TypeString,
		Description: "Leader for comments on their own line",
	},
	"rules.vars.enabled": {
		Path:        "rules.vars.enabled",
		Type:        TypeFlag,
		Description: "Line-break var definitions",
	},
	"rules.functions.enabled": {
		Path:        "rules.functions.enabled",
		Type:        TypeFlag,
		Description: "Line-break function definitions",
	},
	"rules.types.enabled": {
		Path:        "rules.types.enabled",
		Type:        TypeFlag,
		Description: "Reformat type definition forms",
	},
	"rules.namespaces.enabled": {
		Path:        "rules.namespaces.enabled",
		Type:        TypeFlag,
		Description: "Rewrite and sort ns forms",
	},
	"rules.namespaces.indent-size": {
		Path:        "rules.namespaces.indent-size",
		Type:        TypeNat,
		Description: "Indentation inside rewritten ns forms",
	},
	"rules.namespaces.import-break-width": {
		Path:        "rules.namespaces.import-break-width",
		Type:        TypeNat,
		Description: "Width under which a single import stays on one line",
	},
}

// groupPaths holds every dotted prefix of a known field, so the
// validator can tell a misspelled leaf from a group needing recursion.
var groupPaths = buildGroupPaths()

func buildGroupPaths() map[string]bool {
	groups := make(map[string]bool)
	for path := range KnownFields {
		for i := len(path) - 1; i > 0; i-- {
			if path[i] != '.' {
				continue
			}
			prefix := path[:i]
			if groups[prefix] {
				break
			}
			groups[prefix] = true
		}
	}
	return groups
}

// LookupField returns the schema for a dotted settings path.
func LookupField(path string) (FieldSchema, bool) {
	f, ok := KnownFields[path]
	return f, ok
}

// IsGroup reports whether path names a settings group rather than a
// leaf field.
func IsGroup(path string) bool {
	return groupPaths[path]
}

// FieldPaths returns all known field paths in sorted order.
func FieldPaths() []string {
	paths := make([]string, 0, len(KnownFields))
	for p := range KnownFields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
