package prediction

import (
	"log/slog"
	"strings"
)

// MotivationEstimator converts per-age-group political interest, efficacy and
// economic proxies into a voting-intention coefficient.
type MotivationEstimator struct {
	tables *Tables
}

// NewMotivationEstimator creates a motivation estimator over the given tables.
func NewMotivationEstimator(tables *Tables) *MotivationEstimator {
	return &MotivationEstimator{tables: tables}
}

// Estimate computes voting intention per age group as the product of the
// three base proxies. Targets on the controversy list lift political interest
// for every group before the product is taken. The product of [0,1] proxies
// needs no clamping.
func (e *MotivationEstimator) Estimate(shares map[AgeGroup]float64, target Target) CoefficientMap {
	boost := 1.0
	if e.isControversial(target) {
		boost = e.tables.ControversyBoost
	}

	out := make(CoefficientMap, len(shares))
	for group := range shares {
		params, ok := e.tables.Motivation[group]
		if !ok {
			// Total contract: an unknown group is a data gap, not a failure.
			slog.Warn("motivation: no base params for age group, defaulting to 0",
				"age_group", string(group))
			out[group] = 0
			continue
		}
		interest := params.PoliticalInterest * boost
		out[group] = interest * params.PoliticalEfficacy * params.EconomicMotivation
	}
	return out
}

func (e *MotivationEstimator) isControversial(target Target) bool {
	for _, name := range e.tables.ControversyTargets {
		if strings.Contains(target.ID, name) {
			return true
		}
	}
	return false
}
