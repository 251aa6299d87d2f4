package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMotivationEstimate(t *testing.T) {
	est := NewMotivationEstimator(DefaultTables())
	shares := map[AgeGroup]float64{Youth: 0.3, Middle: 0.45, Elder: 0.25}

	t.Run("ordinary target uses base proxies", func(t *testing.T) {
		got := est.Estimate(shares, ParseTarget("王小明"))

		assert.InDelta(t, 0.6*0.7*0.8, got[Youth], 1e-9)
		assert.InDelta(t, 0.8*0.6*0.9, got[Middle], 1e-9)
		assert.InDelta(t, 0.9*0.5*0.7, got[Elder], 1e-9)
	})

	t.Run("controversial target boosts interest for all groups", func(t *testing.T) {
		got := est.Estimate(shares, ParseTarget("韓國瑜 (2020年罷免成功)"))

		assert.InDelta(t, 0.6*1.2*0.7*0.8, got[Youth], 1e-9)
		assert.InDelta(t, 0.8*1.2*0.6*0.9, got[Middle], 1e-9)
		assert.InDelta(t, 0.9*1.2*0.5*0.7, got[Elder], 1e-9)
	})

	t.Run("unknown age group defaults to zero", func(t *testing.T) {
		got := est.Estimate(map[AgeGroup]float64{AgeGroup("toddler"): 1.0}, ParseTarget("王小明"))
		assert.Zero(t, got[AgeGroup("toddler")])
	})

	t.Run("products stay within the unit interval", func(t *testing.T) {
		got := est.Estimate(shares, ParseTarget("柯文哲"))
		for group, coef := range got {
			assert.GreaterOrEqual(t, coef, 0.0, "group %s", group)
			assert.LessOrEqual(t, coef, 1.0, "group %s", group)
		}
	})
}
