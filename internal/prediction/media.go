package prediction

import "strings"

// Media coefficient range. Values outside are clamped, never rejected.
const (
	mediaFloor = 0.5
	mediaCeil  = 1.5
)

// MediaEstimator converts per-age-group media platform habits and
// target-specific attention into a media amplification coefficient.
type MediaEstimator struct {
	tables *Tables
	rec    Recorder
}

// NewMediaEstimator creates a media estimator over the given tables.
func NewMediaEstimator(tables *Tables, rec Recorder) *MediaEstimator {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &MediaEstimator{tables: tables, rec: rec}
}

// Estimate accumulates platform impact onto a 0.5 baseline rather than
// multiplying terms, which keeps the coefficient stable no matter how many
// platforms a group uses. Final values are clamped to [0.5, 1.5].
func (e *MediaEstimator) Estimate(shares map[AgeGroup]float64, target Target) CoefficientMap {
	baseAttention := 1.0
	if e.isHighProfile(target) {
		baseAttention = 1.5
	}

	out := make(CoefficientMap, len(shares))
	for group := range shares {
		coef := mediaFloor
		for platform, weight := range e.tables.MediaWeights[group] {
			multiplier, ok := e.tables.MediaMultipliers[platform]
			if !ok {
				multiplier = 1.0
			}
			coef += baseAttention * weight * multiplier * e.tables.MediaDampening
		}
		if coef < mediaFloor || coef > mediaCeil {
			e.rec.RecordClamp("media")
			coef = clamp(coef, mediaFloor, mediaCeil)
		}
		out[group] = coef
	}
	return out
}

func (e *MediaEstimator) isHighProfile(target Target) bool {
	for _, name := range e.tables.HighProfileTargets {
		if strings.Contains(target.ID, name) {
			return true
		}
	}
	return false
}
