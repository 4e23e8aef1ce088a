package config

// MergeSettings combines two settings maps, with overlay taking
// precedence. For each key present on both sides:
//
//   - an overlay value tagged !replace wins verbatim, tag included
//   - a base value tagged !displace gives way to the overlay
//   - two sets union, keeping base order first
//   - two sequences concatenate
//   - two mappings merge recursively
//   - anything else, the overlay wins
//
// Keys present on one side pass through. Neither input is mutated; the
// result shares unmerged values with its inputs, which is safe because
// settings values are treated as immutable.
func MergeSettings(base, overlay Settings) Settings {
	out := make(Settings, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, ov := range overlay {
		if bv, ok := out[k]; ok {
			out[k] = mergeValue(bv, ov)
		} else {
			out[k] = ov
		}
	}
	return out
}

func mergeValue(base, overlay interface{}) interface{} {
	if t, ok := overlay.(Tagged); ok && t.Directive == DirectiveReplace {
		return overlay
	}
	if t, ok := base.(Tagged); ok && t.Directive == DirectiveDisplace {
		return overlay
	}

	merged, ok := mergeStructural(untag(base), untag(overlay))
	if !ok {
		return overlay
	}
	// A tag picked up in an earlier fold stays on the base value; an
	// overlay tag only matters again when a later fold sees it on the
	// base side.
	if t, isTagged := base.(Tagged); isTagged {
		return Tagged{Directive: t.Directive, Value: merged}
	}
	return merged
}

func mergeStructural(base, overlay interface{}) (interface{}, bool) {
	switch bv := base.(type) {
	case Set:
		if ov, ok := overlay.(Set); ok {
			return bv.Union(ov), true
		}
	case []interface{}:
		if ov, ok := overlay.([]interface{}); ok {
			out := make([]interface{}, 0, len(bv)+len(ov))
			out = append(out, bv...)
			out = append(out, ov...)
			return out, true
		}
	case Settings:
		if ov, ok := asSettings(overlay); ok {
			return MergeSettings(bv, ov), true
		}
	case map[string]interface{}:
		if ov, ok := asSettings(overlay); ok {
			return MergeSettings(Settings(bv), ov), true
		}
	}
	return nil, false
}

// Merge folds fragments left to right into one effective
// configuration. With no arguments it returns empty settings and no
// sources; with one, that fragment's settings. Fragments found walking
// upward are passed shallowest first, so deeper directories override.
func Merge(frags ...Fragment) Effective {
	eff := Effective{Settings: Settings{}}
	for _, f := range frags {
		eff = eff.Extend(f)
	}
	return eff
}
