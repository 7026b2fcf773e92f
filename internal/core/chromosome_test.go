package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheme_AdaptationPredicates(t *testing.T) {
	cases := []struct {
		scheme          Scheme
		adaptsParents   bool
		adaptsChildren  bool
		lamarckian      bool
		name            string
	}{
		{Darwin, false, false, false, "darwin"},
		{LamarckParents, true, false, true, "lamarck-parents"},
		{LamarckChildren, false, true, true, "lamarck-children"},
		{LamarckAll, true, true, true, "lamarck-all"},
		{BaldwinParents, true, false, false, "baldwin-parents"},
		{BaldwinChildren, false, true, false, "baldwin-children"},
		{BaldwinAll, true, true, false, "baldwin-all"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.adaptsParents, tc.scheme.adaptsParents())
			assert.Equal(t, tc.adaptsChildren, tc.scheme.adaptsChildren())
			assert.Equal(t, tc.lamarckian, tc.scheme.lamarckian())
			assert.Equal(t, tc.name, tc.scheme.String())
		})
	}
}

func TestElitism_String(t *testing.T) {
	cases := map[Elitism]string{
		ElitismUnknownDefault:    "unknown-default",
		ElitismNone:              "none",
		ElitismParentsSurvive:    "parents-survive",
		ElitismOneParentSurvives: "one-parent-survives",
		ElitismRescoreParents:    "rescore-parents",
		ElitismPurebredOnly:      "purebred-only",
	}
	for elitism, want := range cases {
		assert.Equal(t, want, elitism.String())
	}
}
