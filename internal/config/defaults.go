package config

// Defaults returns the built-in base settings in canonical form. Every
// resolution starts from these; discovered fragments merge on top.
// Callers receive a fresh copy each call.
func Defaults() Settings {
	return Settings{
		"files": Settings{
			"pattern":    `\.clj[csx]?$`,
			"extensions": NewSet("clj", "cljc", "cljs", "cljx"),
			"ignore":     NewSet(".git", ".hg"),
		},
		"rules": Settings{
			"indentation": Settings{
				"enabled":     true,
				"list-indent": 2,
				"indents":     defaultIndents(),
			},
			"whitespace": Settings{
				"enabled":            true,
				"remove-surrounding": true,
				"remove-trailing":    true,
				"insert-missing":     true,
			},
			"blank-lines": Settings{
				"enabled":          true,
				"trim-consecutive": true,
				"max-consecutive":  2,
				"insert-padding":   true,
				"padding-lines":    2,
			},
			"eof-newline": Settings{
				"enabled": true,
			},
			"comments": Settings{
				"enabled":        false,
				"inline-prefix":  "; ",
				"leading-prefix": ";; ",
			},
			"vars": Settings{
				"enabled": true,
			},
			"functions": Settings{
				"enabled": true,
			},
			"types": Settings{
				"enabled": true,
			},
			"namespaces": Settings{
				"enabled":            true,
				"indent-size":        2,
				"import-break-width": 30,
			},
		},
	}
}

// defaultIndents is the indent table applied when no fragment
// overrides it. Keys are symbols or /pattern/ forms.
func defaultIndents() Settings {
	rule := func(kind IndentKind, args ...int) IndentRule {
		return IndentRule{{Kind: kind, Args: args}}
	}
	return Settings{
		"/^def/":   rule(IndentInner, 0),
		"/^let/":   rule(IndentBlock, 1),
		"/^when/":  rule(IndentBlock, 1),
		"/^if/":    rule(IndentBlock, 1),
		"/^with-/": rule(IndentInner, 0),
		"as->":     rule(IndentBlock, 2),
		"binding":  rule(IndentBlock, 1),
		"bound-fn": rule(IndentInner, 0),
		"case":     rule(IndentBlock, 1),
		"catch":    rule(IndentBlock, 2),
		"cond":     rule(IndentBlock, 0),
		"condp":    rule(IndentBlock, 2),
		"do":       rule(IndentBlock, 0),
		"doseq":    rule(IndentBlock, 1),
		"dotimes":  rule(IndentBlock, 1),
		"doto":     rule(IndentBlock, 1),
		"fn":       rule(IndentInner, 0),
		"for":      rule(IndentBlock, 1),
		"loop":     rule(IndentBlock, 1),
		"ns":       rule(IndentBlock, 1),
		"proxy":    rule(IndentBlock, 2),
		"reify":    rule(IndentInner, 0),
		"testing":  rule(IndentBlock, 1),
		"try":      rule(IndentBlock, 0),
		"letfn": IndentRule{
			{Kind: IndentBlock, Args: []int{1}},
			{Kind: IndentInner, Args: []int{2, 0}},
		},
	}
}
