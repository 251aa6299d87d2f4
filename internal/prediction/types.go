package prediction

import (
	"fmt"
	"math"
	"strings"
)

// AgeGroup identifies one of the three population strata the model reasons about.
type AgeGroup string

const (
	Youth  AgeGroup = "youth"  // 18-35
	Middle AgeGroup = "middle" // 36-55
	Elder  AgeGroup = "elder"  // 56+
)

// AgeGroups lists all groups in model order.
var AgeGroups = []AgeGroup{Youth, Middle, Elder}

// CoefficientMap is the common output shape of the per-age-group estimators.
type CoefficientMap map[AgeGroup]float64

// Target is a recall target split into a canonical lookup ID and its display form.
// Lookup tables match against ID tokens only, never the raw display string.
type Target struct {
	ID         string `json:"id"`
	Display    string `json:"display"`
	Annotation string `json:"annotation,omitempty"`
}

// ParseTarget normalizes a display name like "韓國瑜 (2020年罷免成功)" into a
// canonical ID plus the parenthetical annotation. Both ASCII and full-width
// parentheses are recognized.
func ParseTarget(display string) Target {
	s := strings.TrimSpace(display)
	t := Target{Display: s, ID: s}

	for _, pair := range [][2]string{{"(", ")"}, {"（", "）"}} {
		open := strings.Index(s, pair[0])
		if open < 0 {
			continue
		}
		closeIdx := strings.LastIndex(s, pair[1])
		if closeIdx <= open {
			continue
		}
		t.ID = strings.TrimSpace(s[:open])
		t.Annotation = strings.TrimSpace(s[open+len(pair[0]) : closeIdx])
		break
	}
	return t
}

// WeatherReading is an already-shaped weather summary for voting day.
type WeatherReading struct {
	Temperature float64 `json:"temperature"` // °C
	Rainfall    float64 `json:"rainfall"`    // mm/hr equivalent
	Condition   string  `json:"condition"`   // e.g. "晴天", "typhoon"
}

// ForumSentiment is an already-shaped summary of online discussion climate.
type ForumSentiment struct {
	DcardPositive  float64 `json:"dcard_positive"`  // [0,1]
	PTTPositive    float64 `json:"ptt_positive"`    // [0,1]
	DiscussionHeat float64 `json:"discussion_heat"` // [0,100]
	PeerPressure   float64 `json:"peer_pressure"`   // [0,100]
}

// ScenarioInput is a frozen snapshot of everything the estimators need. It is
// built once per prediction request via NewScenarioInput and never mutated.
type ScenarioInput struct {
	Target Target `json:"target"`
	Region string `json:"region"`

	AgeShares map[AgeGroup]float64 `json:"age_shares"`

	Weather WeatherReading `json:"weather"`
	Forum   ForumSentiment `json:"forum"`

	// HistoricalTurnout is the baseline turnout fraction in [0,1].
	HistoricalTurnout float64 `json:"historical_turnout"`
	// MobilizationCapacity is a 0-100 organizational strength score.
	MobilizationCapacity float64 `json:"mobilization_capacity"`

	// RegionalHint, when set, overrides the computed regional coefficient
	// (still clamped to the regional band).
	RegionalHint *float64 `json:"regional_hint,omitempty"`

	// Fallbacks names every field that was absent and filled from defaults.
	Fallbacks []string `json:"fallbacks,omitempty"`
}

const ageShareEpsilon = 1e-6

// Scenario defaults, applied field-by-field when a caller leaves inputs empty.
// The shares mirror the Taiwan eligible-voter age structure the model assumes.
var (
	defaultAgeShares = map[AgeGroup]float64{Youth: 0.30, Middle: 0.45, Elder: 0.25}
	defaultWeather   = WeatherReading{Temperature: 25, Rainfall: 0, Condition: "晴天"}
	defaultForum     = ForumSentiment{DcardPositive: 0.5, PTTPositive: 0.5, DiscussionHeat: 70, PeerPressure: 60}

	defaultHistoricalTurnout    = 0.55
	defaultMobilizationCapacity = 70.0
)

// NewScenarioInput validates raw scenario data and fills documented defaults
// for absent fields. Malformed structure (age shares not summing to 1.0,
// negative shares, an empty target) is the only fatal condition; everything
// downstream degrades gracefully.
func NewScenarioInput(raw ScenarioInput) (ScenarioInput, error) {
	s := raw
	s.Fallbacks = nil

	if strings.TrimSpace(s.Target.Display) == "" {
		return ScenarioInput{}, fmt.Errorf("scenario: recall target must not be empty")
	}
	if s.Target.ID == "" {
		s.Target = ParseTarget(s.Target.Display)
	}

	if len(s.AgeShares) == 0 {
		s.AgeShares = copyShares(defaultAgeShares)
		s.Fallbacks = append(s.Fallbacks, "age_shares")
	} else {
		sum := 0.0
		for _, g := range AgeGroups {
			share := s.AgeShares[g]
			if share < 0 {
				return ScenarioInput{}, fmt.Errorf("scenario: age share for %s is negative (%f)", g, share)
			}
			sum += share
		}
		if math.Abs(sum-1.0) > ageShareEpsilon {
			return ScenarioInput{}, fmt.Errorf("scenario: age shares sum to %f, want 1.0", sum)
		}
		s.AgeShares = copyShares(s.AgeShares)
	}

	if s.Weather == (WeatherReading{}) {
		s.Weather = defaultWeather
		s.Fallbacks = append(s.Fallbacks, "weather")
	}
	if s.Forum == (ForumSentiment{}) {
		s.Forum = defaultForum
		s.Fallbacks = append(s.Fallbacks, "forum_sentiment")
	} else {
		// Ratio fields are a type constraint, not a rejection cause: excursions
		// are pulled back into [0,1] silently.
		s.Forum.DcardPositive = clamp(s.Forum.DcardPositive, 0, 1)
		s.Forum.PTTPositive = clamp(s.Forum.PTTPositive, 0, 1)
		s.Forum.DiscussionHeat = clamp(s.Forum.DiscussionHeat, 0, 100)
		s.Forum.PeerPressure = clamp(s.Forum.PeerPressure, 0, 100)
	}

	if s.HistoricalTurnout == 0 {
		s.HistoricalTurnout = defaultHistoricalTurnout
		s.Fallbacks = append(s.Fallbacks, "historical_turnout")
	} else {
		s.HistoricalTurnout = clamp(s.HistoricalTurnout, 0, 1)
	}
	if s.MobilizationCapacity == 0 {
		s.MobilizationCapacity = defaultMobilizationCapacity
		s.Fallbacks = append(s.Fallbacks, "mobilization_capacity")
	} else {
		s.MobilizationCapacity = clamp(s.MobilizationCapacity, 0, 100)
	}

	return s, nil
}

func copyShares(m map[AgeGroup]float64) map[AgeGroup]float64 {
	out := make(map[AgeGroup]float64, len(m))
	for g, v := range m {
		out[g] = v
	}
	return out
}

// SentimentBreakdown carries the age-stratified sentiment coefficients.
type SentimentBreakdown struct {
	YouthForum           float64 `json:"youth_forum"`
	MiddleForum          float64 `json:"middle_forum"`
	ElderNews            float64 `json:"elder_news"`
	MobilizationModifier float64 `json:"mobilization_modifier"`
	OverallPositiveRatio float64 `json:"overall_positive_ratio"`
}

// Breakdown exposes every intermediate coefficient for explainability.
type Breakdown struct {
	Motivation CoefficientMap     `json:"motivation"`
	Media      CoefficientMap     `json:"media"`
	Climate    CoefficientMap     `json:"climate"`
	Weather    float64            `json:"weather"`
	Regional   float64            `json:"regional"`
	Sentiment  SentimentBreakdown `json:"sentiment"`
	Intensity  float64            `json:"political_intensity"`
}

// PredictionResult is the engine's sole output value.
type PredictionResult struct {
	PredictedTurnout   float64   `json:"predicted_turnout"`   // [0.20, 1.0]
	PredictedAgreement float64   `json:"predicted_agreement"` // [0.10, 0.90]
	WillPass           bool      `json:"will_pass"`
	Reason             string    `json:"reason"`
	Breakdown          Breakdown `json:"breakdown"`
	Fallbacks          []string  `json:"fallbacks,omitempty"`
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
