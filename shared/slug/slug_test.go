package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"turndown/shared/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "simple label", label: "Make Bed", want: "make-bed"},
		{name: "already lowercase", label: "vacuum", want: "vacuum"},
		{name: "punctuation collapses", label: "Scrub & Rinse  Shower!", want: "scrub-rinse-shower"},
		{name: "digits kept", label: "Floor 2 Mop", want: "floor-2-mop"},
		{name: "leading and trailing noise", label: "  --Dust Surfaces-- ", want: "dust-surfaces"},
		{name: "empty label", label: "", want: ""},
		{name: "only punctuation", label: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Make(tt.label))
		})
	}
}

func TestMakeUnique(t *testing.T) {
	taken := map[string]bool{
		"mop-floor":   true,
		"mop-floor-2": true,
	}
	isTaken := func(candidate string) bool { return taken[candidate] }

	assert.Equal(t, "make-bed", slug.MakeUnique("Make Bed", isTaken))
	assert.Equal(t, "mop-floor-3", slug.MakeUnique("Mop Floor", isTaken))
	assert.Equal(t, "task", slug.MakeUnique("!!!", isTaken))
}
