package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "nil", input: nil, want: nil},
		{name: "empty", input: []string{}, want: []string{}},
		{name: "trims", input: []string{" broker-1:9092 "}, want: []string{"broker-1:9092"}},
		{name: "drops blanks", input: []string{"", "  ", "a"}, want: []string{"a"}},
		{name: "keeps first occurrence", input: []string{"b", "a", " b"}, want: []string{"b", "a"}},
		{name: "case sensitive", input: []string{"A", "a"}, want: []string{"A", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeAndTrim(tt.input))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList("  "))
	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, SplitList("localhost:9092, localhost:9093,,localhost:9092"))
}
