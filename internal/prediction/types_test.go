package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name       string
		display    string
		wantID     string
		wantAnnot  string
	}{
		{
			name:    "plain name",
			display: "韓國瑜",
			wantID:  "韓國瑜",
		},
		{
			name:      "ascii parenthetical",
			display:   "韓國瑜 (2020年罷免成功)",
			wantID:    "韓國瑜",
			wantAnnot: "2020年罷免成功",
		},
		{
			name:      "full-width parenthetical",
			display:   "羅智強（台北市第1選區）",
			wantID:    "羅智強",
			wantAnnot: "台北市第1選區",
		},
		{
			name:    "surrounding whitespace",
			display: "  柯文哲  ",
			wantID:  "柯文哲",
		},
		{
			name:      "annotation with inner parens keeps outermost pair",
			display:   "趙少康 (媒體人 (政治人物))",
			wantID:    "趙少康",
			wantAnnot: "媒體人 (政治人物)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTarget(tt.display)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, tt.wantAnnot, got.Annotation)
		})
	}
}

func TestNewScenarioInputValidation(t *testing.T) {
	t.Run("rejects empty target", func(t *testing.T) {
		_, err := NewScenarioInput(ScenarioInput{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "target")
	})

	t.Run("rejects age shares not summing to one", func(t *testing.T) {
		_, err := NewScenarioInput(ScenarioInput{
			Target:    Target{Display: "王小明"},
			AgeShares: map[AgeGroup]float64{Youth: 0.5, Middle: 0.5, Elder: 0.5},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sum")
	})

	t.Run("rejects negative age share", func(t *testing.T) {
		_, err := NewScenarioInput(ScenarioInput{
			Target:    Target{Display: "王小明"},
			AgeShares: map[AgeGroup]float64{Youth: -0.1, Middle: 0.6, Elder: 0.5},
		})
		require.Error(t, err)
	})

	t.Run("accepts shares within epsilon", func(t *testing.T) {
		s, err := NewScenarioInput(ScenarioInput{
			Target:    Target{Display: "王小明"},
			AgeShares: map[AgeGroup]float64{Youth: 0.3, Middle: 0.45, Elder: 0.25 + 1e-9},
		})
		require.NoError(t, err)
		assert.NotContains(t, s.Fallbacks, "age_shares")
	})
}

func TestNewScenarioInputDefaults(t *testing.T) {
	s, err := NewScenarioInput(ScenarioInput{Target: Target{Display: "王小明"}})
	require.NoError(t, err)

	assert.InDelta(t, 0.30, s.AgeShares[Youth], 1e-9)
	assert.InDelta(t, 0.45, s.AgeShares[Middle], 1e-9)
	assert.InDelta(t, 0.25, s.AgeShares[Elder], 1e-9)
	assert.Equal(t, defaultWeather, s.Weather)
	assert.Equal(t, defaultForum, s.Forum)
	assert.InDelta(t, defaultHistoricalTurnout, s.HistoricalTurnout, 1e-9)
	assert.InDelta(t, defaultMobilizationCapacity, s.MobilizationCapacity, 1e-9)

	// Every substituted field is tagged so the result can disclose it.
	assert.ElementsMatch(t,
		[]string{"age_shares", "weather", "forum_sentiment", "historical_turnout", "mobilization_capacity"},
		s.Fallbacks)
}

func TestNewScenarioInputClampsRatios(t *testing.T) {
	s, err := NewScenarioInput(ScenarioInput{
		Target: Target{Display: "王小明"},
		Forum: ForumSentiment{
			DcardPositive:  1.4,
			PTTPositive:    -0.2,
			DiscussionHeat: 150,
			PeerPressure:   30,
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, s.Forum.DcardPositive, 1e-9)
	assert.InDelta(t, 0.0, s.Forum.PTTPositive, 1e-9)
	assert.InDelta(t, 100.0, s.Forum.DiscussionHeat, 1e-9)
	assert.InDelta(t, 30.0, s.Forum.PeerPressure, 1e-9)
	assert.NotContains(t, s.Fallbacks, "forum_sentiment")
}

func TestNewScenarioInputCanonicalizesTarget(t *testing.T) {
	s, err := NewScenarioInput(ScenarioInput{
		Target: Target{Display: "韓國瑜 (2020年罷免成功)"},
	})
	require.NoError(t, err)
	assert.Equal(t, "韓國瑜", s.Target.ID)
	assert.Equal(t, "2020年罷免成功", s.Target.Annotation)
}
