package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaEstimate(t *testing.T) {
	est := NewMediaEstimator(DefaultTables(), nil)
	shares := map[AgeGroup]float64{Youth: 0.3, Middle: 0.45, Elder: 0.25}

	t.Run("ordinary target accumulates onto the baseline", func(t *testing.T) {
		got := est.Estimate(shares, ParseTarget("王小明"))

		// youth: 0.5 + (0.30*1.1 + 0.25*1.2 + 0.25*1.0 + 0.20*1.3) * 0.3
		assert.InDelta(t, 0.842, got[Youth], 1e-9)
		assert.InDelta(t, 0.815, got[Middle], 1e-9)
		assert.InDelta(t, 0.794, got[Elder], 1e-9)
	})

	t.Run("high profile target draws more attention", func(t *testing.T) {
		ordinary := est.Estimate(shares, ParseTarget("王小明"))
		highProfile := est.Estimate(shares, ParseTarget("趙少康 (媒體人)"))

		for _, group := range AgeGroups {
			assert.Greater(t, highProfile[group], ordinary[group], "group %s", group)
		}
	})

	t.Run("coefficients stay within the clamp band", func(t *testing.T) {
		for _, target := range []string{"王小明", "韓國瑜", "柯文哲", "趙少康"} {
			got := est.Estimate(shares, ParseTarget(target))
			for group, coef := range got {
				assert.GreaterOrEqual(t, coef, 0.5, "target %s group %s", target, group)
				assert.LessOrEqual(t, coef, 1.5, "target %s group %s", target, group)
			}
		}
	})
}

func TestMediaClampRecorded(t *testing.T) {
	// A dampening constant large enough to overflow the band must clamp and
	// count the excursion instead of surfacing it.
	tables := DefaultTables()
	tables.MediaDampening = 5.0
	rec := &countingRecorder{}
	est := NewMediaEstimator(tables, rec)

	got := est.Estimate(map[AgeGroup]float64{Youth: 1.0}, ParseTarget("韓國瑜"))

	assert.InDelta(t, 1.5, got[Youth], 1e-9)
	assert.Equal(t, 1, rec.clamps["media"])
}
