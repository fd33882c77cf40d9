package sitepipe

import (
	"testing"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test that the library we use actually does what we want it to
func TestIgnoreRules(t *testing.T) {
	type testCase struct {
		path     string
		ignores  []string
		expected bool
	}

	tests := []testCase{
		{
			ignores:  []string{"drafts"},
			path:     "drafts/post.html",
			expected: true,
		},
		{
			ignores:  []string{"draft-*"},
			path:     "blog/draft-one.html",
			expected: true,
		},
		{
			ignores:  []string{"drafts", "!drafts/keep.html"},
			path:     "drafts/keep.html",
			expected: false,
		},
		{
			ignores:  []string{"/partials"},
			path:     "blog/partials/nav.html",
			expected: false,
		},
		{
			ignores:  []string{"#blog/index.html"},
			path:     "blog/index.html",
			expected: false,
		},
	}

	for i := range tests {
		tc := &tests[i]
		ignorer := &ignorerGitignore{GitIgnore: ignore.CompileIgnoreLines(tc.ignores...)}
		assert.Equal(t, tc.expected, ignorer.Ignore(tc.path), "case %d", i+1)
	}
}

func TestParseIgnore(t *testing.T) {
	fs := afero.NewMemMapFs()

	ignorer, err := ParseIgnore(fs, "/site/src/.buildignore")
	require.NoError(t, err)
	assert.False(t, ignorer.Ignore("index.html"))

	writeFiles(t, fs, map[string]string{"/site/src/.buildignore": "drafts\r\n*.bak.html\r\n"})
	ignorer, err = ParseIgnore(fs, "/site/src/.buildignore")
	require.NoError(t, err)
	assert.True(t, ignorer.Ignore("drafts/a.html"))
	assert.True(t, ignorer.Ignore("old.bak.html"))
	assert.False(t, ignorer.Ignore("index.html"))

	var nilIgnorer *ignorerGitignore
	assert.False(t, nilIgnorer.Ignore("anything"))
}
