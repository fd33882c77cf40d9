package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlight(t *testing.T) {
	type testCase struct {
		code     string
		lang     string
		contains []string
	}

	tests := []testCase{
		{
			code:     "func main() {}",
			lang:     "go",
			contains: []string{"main", "{", "}", "<span"},
		},
		{
			code:     "foo { bar }",
			lang:     "no-such-language",
			contains: []string{"foo { bar }"},
		},
		{
			code:     "a < b",
			lang:     "text",
			contains: []string{"a &lt; b"},
		},
	}

	for i := range tests {
		tc := &tests[i]
		out, err := Highlight(tc.code, tc.lang)
		require.NoError(t, err, "case %d", i+1)

		for _, s := range tc.contains {
			assert.Contains(t, out, s, "case %d", i+1)
		}
		assert.NotContains(t, out, "<pre", "case %d", i+1)
	}
}
