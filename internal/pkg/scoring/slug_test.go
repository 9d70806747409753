package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already clean", input: "irls", want: "irls"},
		{name: "uppercase", input: "IRLS", want: "irls"},
		{name: "underscores", input: "MHI_5", want: "mhi-5"},
		{name: "surrounding whitespace", input: "  rls-6  ", want: "rls-6"},
		{name: "crlf injection", input: "mhi-5\r\n", want: "mhi-5"},
		{name: "surrounding slashes", input: "/irls/", want: "irls"},
		{name: "disallowed characters", input: "irls!@#", want: "irls"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSlug(tt.input))
		})
	}
}

func TestSlugKeyCollapsesHyphens(t *testing.T) {
	assert.Equal(t, "rls6", SlugKey("RLS_6"))
	assert.Equal(t, "rls6", SlugKey("rls-6"))
	assert.Equal(t, "rls6", SlugKey("rls6"))
	assert.Equal(t, "mhi5", SlugKey("MHI-5"))
}
