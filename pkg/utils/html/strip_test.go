package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Markets rally", "Markets rally"},
		{"anchor and font", `<a href="https://x.example/a">Storm hits coast</a>&nbsp;&nbsp;<font color="#6f6f6f">Daily News</font>`, "Storm hits coast Daily News"},
		{"script removed", "<p>Hello</p><script>var x = 1;</script>", "Hello"},
		{"entities", "Tom &amp; Jerry&#39;s", "Tom & Jerry's"},
		{"whitespace", "  a \n\t b  ", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.input))
		})
	}
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "one two three", CollapseSpace("\none  two\tthree "))
	assert.Equal(t, "", CollapseSpace("   "))
}
