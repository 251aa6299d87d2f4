package prediction

import (
	"log/slog"
	"sort"
	"strings"
)

// Regional band. The narrowest of all estimators: geography is a minor
// corrective term, not a dominant driver.
const (
	regionalFloor = 0.95
	regionalCeil  = 1.10
)

// RegionalEstimator converts region identity, historical turnout and
// mobilization capacity into a scalar adjustment coefficient.
type RegionalEstimator struct {
	tables *Tables
	rec    Recorder
}

// NewRegionalEstimator creates a regional estimator over the given tables.
func NewRegionalEstimator(tables *Tables, rec Recorder) *RegionalEstimator {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &RegionalEstimator{tables: tables, rec: rec}
}

// Estimate takes the historical turnout as a percentage (0-100) and the
// mobilization capacity on its 0-100 scale. Clamped to [0.95, 1.1].
func (e *RegionalEstimator) Estimate(region string, historicalTurnoutPct, mobilizationCapacity float64) float64 {
	coef := 1.0
	if historicalTurnoutPct > 60 {
		coef += 0.10
	} else if historicalTurnoutPct < 50 {
		coef -= 0.05
	}

	coef *= 0.9 + (mobilizationCapacity/100)*0.2
	coef *= e.regionMultiplier(region)

	if coef < regionalFloor || coef > regionalCeil {
		e.rec.RecordClamp("regional")
		coef = clamp(coef, regionalFloor, regionalCeil)
	}
	return coef
}

func (e *RegionalEstimator) regionMultiplier(region string) float64 {
	keys := make([]string, 0, len(e.tables.RegionalMultipliers))
	for key := range e.tables.RegionalMultipliers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.Contains(region, key) {
			return e.tables.RegionalMultipliers[key]
		}
	}
	slog.Debug("regional: no multiplier for region, using neutral 1.0", "region", region)
	e.rec.RecordUnknownTarget(region)
	return 1.0
}
