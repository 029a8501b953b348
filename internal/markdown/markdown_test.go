package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFirstHeading(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"atx heading", "# Introduction\n\nText\n", "Introduction"},
		{"inline markup", "# Visual *testing* handbook\n", "Visual testing handbook"},
		{"skips lower levels", "## Setup\n\n# Real title\n", "Real title"},
		{"setext heading", "Workflow\n========\n", "Workflow"},
		{"no heading", "Just text\n", ""},
		{"empty body", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FirstHeading([]byte(tt.body)))
		})
	}
}
