package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIntensity(t *testing.T) {
	tables := DefaultTables()

	tests := []struct {
		name      string
		target    string
		expected  float64
		wantMatch bool
	}{
		{
			name:      "exact canonical match",
			target:    "韓國瑜",
			expected:  1.8,
			wantMatch: true,
		},
		{
			name:      "display annotation is stripped before lookup",
			target:    "韓國瑜 (2020年罷免成功)",
			expected:  1.8,
			wantMatch: true,
		},
		{
			name:      "fuzzy substring match",
			target:    "罷免陳柏惟案",
			expected:  1.2,
			wantMatch: true,
		},
		{
			name:      "unknown target defaults to neutral",
			target:    "王小明",
			expected:  1.0,
			wantMatch: false,
		},
		{
			name:      "generic local councillor entry",
			target:    "某地方議員",
			expected:  0.8,
			wantMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := tables.LookupIntensity(ParseTarget(tt.target))
			assert.Equal(t, tt.wantMatch, matched)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestLookupIntensitySkipsShortTokens(t *testing.T) {
	tables := DefaultTables()
	tables.Intensity = map[string]float64{"王 大明": 1.5}

	// The single-rune token "王" must not match every 王-surnamed target.
	got, matched := tables.LookupIntensity(ParseTarget("王小明"))
	assert.False(t, matched)
	assert.InDelta(t, 1.0, got, 1e-9)

	got, matched = tables.LookupIntensity(ParseTarget("王大明"))
	assert.True(t, matched)
	assert.InDelta(t, 1.5, got, 1e-9)
}

func TestLookupIntensityDeterministicOnMultipleMatches(t *testing.T) {
	tables := DefaultTables()
	target := ParseTarget("韓國瑜與柯文哲聯合場")

	first, _ := tables.LookupIntensity(target)
	for i := 0; i < 50; i++ {
		got, matched := tables.LookupIntensity(target)
		assert.True(t, matched)
		assert.Equal(t, first, got)
	}
}
