package fatigue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeTrend(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
		want    Trend
	}{
		{
			name:    "no history",
			indices: nil,
			want:    TrendStable,
		},
		{
			name:    "single record",
			indices: []int{80},
			want:    TrendStable,
		},
		{
			name:    "rising index is worsening",
			indices: []int{70, 55, 40},
			want:    TrendWorsening,
		},
		{
			name:    "falling index is improving",
			indices: []int{30, 45, 60},
			want:    TrendImproving,
		},
		{
			name:    "movement within delta is stable",
			indices: []int{50, 55, 45},
			want:    TrendStable,
		},
		{
			name:    "exactly delta is stable",
			indices: []int{50, 45, 40},
			want:    TrendStable,
		},
		{
			name:    "only newest three are compared",
			indices: []int{50, 48, 47, 10, 95},
			want:    TrendStable,
		},
		{
			name:    "two records compare directly",
			indices: []int{62, 40},
			want:    TrendWorsening,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalyzeTrend(tt.indices))
		})
	}
}
