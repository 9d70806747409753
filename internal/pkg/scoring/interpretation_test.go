package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func totalResult(total float64) *Result {
	return &Result{Kind: KindTotalScore, Total: &total}
}

func TestInterpret_IRLSThresholds(t *testing.T) {
	tests := []struct {
		total float64
		want  string
	}{
		{total: 0, want: "none"},
		{total: 1, want: "mild"},
		{total: 10, want: "mild"},
		{total: 11, want: "moderate"},
		{total: 20, want: "moderate"},
		{total: 21, want: "severe"},
		{total: 30, want: "severe"},
		{total: 31, want: "very severe"},
		{total: 40, want: "very severe"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Interpret("irls", totalResult(tt.total)), "total %v", tt.total)
	}
}

func TestInterpret_IRLSWithoutTotal(t *testing.T) {
	assert.Equal(t, "no interpretation available", Interpret("irls", &Result{Kind: KindTotalScore}))
	assert.Equal(t, "no interpretation available", Interpret("irls", nil))
}

func TestInterpret_RLS6IsPerDomain(t *testing.T) {
	result := Score("rls-6", nil)
	assert.Equal(t, "RLS-6 is evaluated per domain; no aggregate total applies.", Interpret("rls-6", result))
	assert.Equal(t, "RLS-6 is evaluated per domain; no aggregate total applies.", Interpret("RLS_6", result))
}

func TestInterpret_UnknownFamilies(t *testing.T) {
	assert.Equal(t, "no interpretation available", Interpret("mhi-5", totalResult(80)))
	assert.Equal(t, "no interpretation available", Interpret("some-instrument", totalResult(12)))
}
