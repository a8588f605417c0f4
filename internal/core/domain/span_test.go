package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSpan_LengthCountsRunes(t *testing.T) {
	span := TextSpan{Start: 10, Text: "Zürich"}

	assert.Equal(t, 6, span.Length())
	assert.Equal(t, 16, span.End())
}

func TestNameType(t *testing.T) {
	assert.False(t, Untyped.IsTyped())
	assert.Equal(t, "untyped", Untyped.String())

	pers := NameType("persName")
	assert.True(t, pers.IsTyped())
	assert.Equal(t, "persName", pers.String())
}

func TestAcceptedSpan_Overlaps(t *testing.T) {
	base := AcceptedSpan{Start: 10, Length: 5} // [10, 15)

	tests := []struct {
		name  string
		other AcceptedSpan
		want  bool
	}{
		{"identical", AcceptedSpan{Start: 10, Length: 5}, true},
		{"inside", AcceptedSpan{Start: 11, Length: 2}, true},
		{"around", AcceptedSpan{Start: 5, Length: 20}, true},
		{"left partial", AcceptedSpan{Start: 8, Length: 3}, true},
		{"right partial", AcceptedSpan{Start: 14, Length: 3}, true},
		{"touching left", AcceptedSpan{Start: 5, Length: 5}, false},
		{"touching right", AcceptedSpan{Start: 15, Length: 2}, false},
		{"disjoint", AcceptedSpan{Start: 30, Length: 2}, false},
		{"zero length inside", AcceptedSpan{Start: 12, Length: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestAcceptedSpan_Contains(t *testing.T) {
	outer := AcceptedSpan{Start: 0, Length: 10}

	assert.True(t, outer.Contains(AcceptedSpan{Start: 2, Length: 3}))
	assert.True(t, outer.Contains(outer))
	assert.False(t, outer.Contains(AcceptedSpan{Start: 8, Length: 3}))
	assert.Equal(t, 10, outer.End())
}
