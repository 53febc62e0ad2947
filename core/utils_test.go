package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: []string{}},
		{name: "only separators", in: " , ,, ", want: []string{}},
		{name: "simple", in: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "trims and drops empties", in: "UPSC, Notes,  ", want: []string{"UPSC", "Notes"}},
		{name: "inner spaces kept", in: "Bank Exam , SSC", want: []string{"Bank Exam", "SSC"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitCSV(tt.in))
		})
	}
}

// Splitting the joined string must reproduce the same tokens as splitting the
// original input directly; the normalization is idempotent after one pass.
func TestSplitCSV_roundTrip(t *testing.T) {
	inputs := []string{"", "UPSC, Notes,  ", "a,,b", " x , y ,z,", "one"}
	for _, in := range inputs {
		first := SplitCSV(in)
		again := SplitCSV(JoinCSV(first))
		assert.Equal(t, first, again, "input %q", in)
	}
}

func TestCoerce(t *testing.T) {
	assert.True(t, CoerceBool("true"))
	assert.True(t, CoerceBool("on"))
	assert.False(t, CoerceBool(""))
	assert.False(t, CoerceBool("false"))
	assert.Equal(t, 42, CoerceInt(" 42 "))
	assert.Equal(t, 0, CoerceInt("lol"))
	assert.Equal(t, 99.99, CoerceFloat("99.99"))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Awe", CleanString("  Awe "))
	assert.Equal(t, "awe", CleanString("  Awe ", true))
}
