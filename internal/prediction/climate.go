package prediction

import "math"

// Climate coefficient range, shared with the media estimator by design.
const (
	climateFloor = 0.5
	climateCeil  = 1.5
)

// ClimateEstimator converts aggregate forum mood, discussion heat and peer
// pressure into a social amplification coefficient per age group.
type ClimateEstimator struct {
	tables *Tables
	rec    Recorder
}

// NewClimateEstimator creates a climate estimator over the given tables.
func NewClimateEstimator(tables *Tables, rec Recorder) *ClimateEstimator {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &ClimateEstimator{tables: tables, rec: rec}
}

// Estimate computes three scalars shared across groups, then scales them by
// each group's sensitivity on top of a 0.7 base. Sensitivity drops with age:
// online mood moves younger voters more. Clamped to [0.5, 1.5].
func (e *ClimateEstimator) Estimate(forum ForumSentiment) CoefficientMap {
	sentiment := (forum.DcardPositive+forum.PTTPositive)/2 + 0.5
	heat := math.Min(forum.DiscussionHeat/100+0.8, 1.5)
	pressure := math.Min(forum.PeerPressure/100+0.9, 1.3)

	out := make(CoefficientMap, len(AgeGroups))
	for _, group := range AgeGroups {
		sensitivity := e.tables.ClimateSensitivity[group]
		coef := 0.7 + sentiment*heat*pressure*sensitivity
		if coef < climateFloor || coef > climateCeil {
			e.rec.RecordClamp("climate")
			coef = clamp(coef, climateFloor, climateCeil)
		}
		out[group] = coef
	}
	return out
}
