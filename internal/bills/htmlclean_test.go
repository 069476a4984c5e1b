package bills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanHTML(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips tags",
			input: "<p>This bill requires <b>disclosure</b>.</p>",
			want:  "This bill requires disclosure .",
		},
		{
			name:  "decodes entities",
			input: "Schools &amp; libraries &quot;shall&quot; comply",
			want:  `Schools & libraries "shall" comply`,
		},
		{
			name:  "collapses whitespace",
			input: "One\n\n  two\t three",
			want:  "One two three",
		},
		{
			name:  "amp decoded last",
			input: "&amp;lt;",
			want:  "&lt;",
		},
		{
			name:  "plain text untouched",
			input: "Already clean",
			want:  "Already clean",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanHTML(tc.input))
		})
	}
}
