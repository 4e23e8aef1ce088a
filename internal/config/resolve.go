package config

// Resolve computes the effective configuration governing start: the
// built-in defaults plus every fragment FindUp discovers, folded
// shallowest to deepest. Provenance lists only discovered files; the
// defaults contribute no source entry.
func Resolve(start string, limit int) (Effective, error) {
	frags, err := FindUp(start, limit)
	if err != nil {
		return Effective{}, err
	}
	return resolveFragments(frags), nil
}

// ResolveFiles folds the named fragment files, in order, onto the
// defaults. Unlike FindUp, a missing file is an error here: the caller
// asked for it by name.
func ResolveFiles(paths ...string) (Effective, error) {
	frags := make([]Fragment, 0, len(paths))
	for _, p := range paths {
		frag, err := LoadFragment(p)
		if err != nil {
			return Effective{}, err
		}
		if frag == nil {
			return Effective{}, &ParseError{Path: p, Message: "no such configuration file"}
		}
		frags = append(frags, *frag)
	}
	return resolveFragments(frags), nil
}

func resolveFragments(frags []Fragment) Effective {
	eff := Effective{Settings: Defaults()}
	for _, f := range frags {
		eff = eff.Extend(f)
	}
	return eff
}
