package types

import "github.com/twvotelab/recall-o-meter/internal/prediction"

// PredictRequest is the JSON body of the predict endpoint. It mirrors
// ScenarioInput with wire-friendly field names; every field except the
// target is optional and falls back to documented defaults.
type PredictRequest struct {
	RecallTarget string                             `json:"recall_target" binding:"required"`
	Region       string                             `json:"region"`
	AgeShares    map[prediction.AgeGroup]float64    `json:"age_shares,omitempty"`
	Weather      *prediction.WeatherReading         `json:"weather,omitempty"`
	Forum        *prediction.ForumSentiment         `json:"forum_sentiment,omitempty"`

	HistoricalTurnout    float64  `json:"historical_turnout,omitempty"`
	MobilizationCapacity float64  `json:"mobilization_capacity,omitempty"`
	RegionalHint         *float64 `json:"regional_hint,omitempty"`
}

// ToScenario maps the request onto a raw scenario for validation.
func (r PredictRequest) ToScenario() prediction.ScenarioInput {
	s := prediction.ScenarioInput{
		Target:               prediction.ParseTarget(r.RecallTarget),
		Region:               r.Region,
		AgeShares:            r.AgeShares,
		HistoricalTurnout:    r.HistoricalTurnout,
		MobilizationCapacity: r.MobilizationCapacity,
		RegionalHint:         r.RegionalHint,
	}
	if r.Weather != nil {
		s.Weather = *r.Weather
	}
	if r.Forum != nil {
		s.Forum = *r.Forum
	}
	return s
}

// PredictResponse wraps a prediction result with request bookkeeping.
type PredictResponse struct {
	prediction.PredictionResult
	Target   prediction.Target `json:"target"`
	Region   string            `json:"region"`
	CacheHit bool              `json:"cache_hit"`
}
