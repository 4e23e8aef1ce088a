// Package config_test tests structural merging of settings and the fragment fold.
// Related: internal/config/merge.go
// Tags: config, merge, directives, fold, provenance
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSettingsStructural(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		base    Settings
		overlay Settings
		want    Settings
	}{
		"scalar overlay wins": {
			base:    Settings{"a": 1},
			overlay: Settings{"a": 2},
			want:    Settings{"a": 2},
		},
		"disjoint keys pass through": {
			base:    Settings{"a": 1},
			overlay: Settings{"b": 2},
			want:    Settings{"a": 1, "b": 2},
		},
		"sequences concatenate": {
			base:    Settings{"a": []interface{}{"x", "y"}},
			overlay: Settings{"a": []interface{}{"y", "z"}},
			want:    Settings{"a": []interface{}{"x", "y", "y", "z"}},
		},
		"sets union keeping base order": {
			base:    Settings{"a": NewSet("x", "y")},
			overlay: Settings{"a": NewSet("y", "z")},
			want:    Settings{"a": NewSet("x", "y", "z")},
		},
		"mappings merge recursively": {
			base:    Settings{"m": Settings{"x": 1, "y": 1}},
			overlay: Settings{"m": Settings{"y": 2, "z": 2}},
			want:    Settings{"m": Settings{"x": 1, "y": 2, "z": 2}},
		},
		"mismatched shapes fall back to overlay": {
			base:    Settings{"a": []interface{}{"x"}},
			overlay: Settings{"a": "scalar"},
			want:    Settings{"a": "scalar"},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := MergeSettings(tc.base, tc.overlay)
			assert.True(t, equalValues(tc.want, got),
				"merge mismatch:\nwant %#v\ngot  %#v", tc.want, got)
		})
	}
}

func TestMergeReplaceDirective(t *testing.T) {
	t.Parallel()

	base := Settings{"exts": NewSet("clj", "cljc")}
	overlay := Settings{"exts": Tagged{Directive: DirectiveReplace, Value: NewSet("edn")}}

	got := MergeSettings(base, overlay)
	tagged, ok := got["exts"].(Tagged)
	require.True(t, ok, "the replace wrapper must survive the merge")
	assert.Equal(t, DirectiveReplace, tagged.Directive)
	assert.Equal(t, NewSet("edn"), tagged.Value, "no union with the base value")
}

func TestMergeDisplaceDirective(t *testing.T) {
	t.Parallel()

	base := Settings{"exts": Tagged{Directive: DirectiveDisplace, Value: NewSet("clj")}}
	overlay := Settings{"exts": NewSet("edn")}

	got := MergeSettings(base, overlay)
	assert.Equal(t, NewSet("edn"), got["exts"], "a displaceable base gives way entirely")

	// Without an overlay the displaceable value stands.
	kept := MergeSettings(base, Settings{})
	tagged, ok := kept["exts"].(Tagged)
	require.True(t, ok)
	assert.Equal(t, NewSet("clj"), tagged.Value)
}

func TestMergeTagPersistsAcrossFolds(t *testing.T) {
	t.Parallel()

	// A replaced value keeps its tag, so later untagged fragments merge
	// into it structurally rather than resetting it.
	a := Fragment{Path: "a/.restyle", Settings: Settings{"exts": NewSet("clj")}}
	b := Fragment{Path: "a/b/.restyle", Settings: Settings{
		"exts": Tagged{Directive: DirectiveReplace, Value: NewSet("edn")},
	}}
	c := Fragment{Path: "a/b/c/.restyle", Settings: Settings{"exts": NewSet("cljx")}}

	eff := Merge(a, b, c)
	tagged, ok := eff.Settings["exts"].(Tagged)
	require.True(t, ok)
	assert.Equal(t, DirectiveReplace, tagged.Directive)
	assert.Equal(t, NewSet("edn", "cljx"), tagged.Value)
}

func TestMergeFoldOrder(t *testing.T) {
	t.Parallel()

	frags := []Fragment{
		{Path: "one", Settings: Settings{"n": 1}},
		{Path: "two", Settings: Settings{"n": 2}},
		{Path: "three", Settings: Settings{"n": 3}},
	}

	eff := Merge(frags...)
	assert.Equal(t, 3, eff.Settings["n"], "the deepest fragment wins")
	assert.Equal(t, []string{"one", "two", "three"}, eff.Sources)
}

func TestMergeEmpty(t *testing.T) {
	t.Parallel()

	eff := Merge()
	assert.Empty(t, eff.Settings)
	assert.Empty(t, eff.Sources)

	single := Merge(Fragment{Path: "p", Settings: Settings{"a": 1}})
	assert.Equal(t, 1, single.Settings["a"])
	assert.Equal(t, []string{"p"}, single.Sources)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	base := Settings{"m": Settings{"x": 1}}
	overlay := Settings{"m": Settings{"y": 2}, "extra": true}

	_ = MergeSettings(base, overlay)

	inner, ok := base["m"].(Settings)
	require.True(t, ok)
	_, leaked := inner["y"]
	assert.False(t, leaked, "base must not absorb overlay keys")
	_, grew := base["extra"]
	assert.False(t, grew)
	assert.Len(t, overlay, 2)
}

func TestExtendAccumulatesSources(t *testing.T) {
	t.Parallel()

	eff := Effective{Settings: Defaults()}
	eff = eff.Extend(Fragment{Path: "a/.restyle", Settings: Settings{
		"rules": Settings{"blank-lines": Settings{"max-consecutive": 1}},
	}})
	eff = eff.Extend(Fragment{Path: "a/b/.restyle", Settings: Settings{
		"rules": Settings{"blank-lines": Settings{"max-consecutive": 0}},
	}})

	assert.Equal(t, []string{"a/.restyle", "a/b/.restyle"}, eff.Sources)
	v, ok := eff.Settings.lookup("rules", "blank-lines", "max-consecutive")
	require.True(t, ok)
	assert.Equal(t, 0, v)

	// Untouched defaults shine through.
	assert.True(t, eff.Settings.RuleEnabled("eof-newline"))
}
