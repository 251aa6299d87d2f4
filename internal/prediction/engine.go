package prediction

import (
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Legal thresholds for a recall to pass: turnout must reach a quarter of the
// electorate, and strictly more than half of cast ballots must agree.
const (
	turnoutThreshold   = 0.25
	agreementThreshold = 0.50

	// turnoutFloor reflects the assumption that some baseline civic
	// participation always occurs; the model never reports near-zero turnout.
	turnoutFloor = 0.20

	agreementFloor = 0.10
	agreementCeil  = 0.90
)

// Engine combines the six estimators into the two headline predictions and
// the verdict. It is safe for concurrent use: all state is read-only after
// construction.
type Engine struct {
	tables *Tables
	rec    Recorder
	rnd    Rand
	source func(ForumSentiment) PlatformSource

	motivation *MotivationEstimator
	media      *MediaEstimator
	climate    *ClimateEstimator
	weather    *WeatherEstimator
	regional   *RegionalEstimator
	sentiment  *SentimentEstimator
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecorder wires an observability sink for clamp and lookup-miss events.
func WithRecorder(rec Recorder) Option {
	return func(e *Engine) { e.rec = rec }
}

// WithRand replaces the deterministic mobilization factor source.
func WithRand(rnd Rand) Option {
	return func(e *Engine) { e.rnd = rnd }
}

// WithPlatformSource replaces the default scenario-derived sentiment source.
func WithPlatformSource(fn func(ForumSentiment) PlatformSource) Option {
	return func(e *Engine) { e.source = fn }
}

// NewEngine creates an engine over the given reference tables.
func NewEngine(tables *Tables, opts ...Option) *Engine {
	e := &Engine{
		tables: tables,
		rec:    nopRecorder{},
		rnd:    FixedRand(0.5),
		source: NewScenarioSource,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.motivation = NewMotivationEstimator(tables)
	e.media = NewMediaEstimator(tables, e.rec)
	e.climate = NewClimateEstimator(tables, e.rec)
	e.weather = NewWeatherEstimator(tables, e.rec)
	e.regional = NewRegionalEstimator(tables, e.rec)
	e.sentiment = NewSentimentEstimator(tables)
	return e
}

// Predict runs the full pipeline: fan out the six estimators, combine their
// outputs into turnout and agreement, apply the threshold rule. The
// estimators are pure functions of the scenario, so they run in parallel
// with no ordering requirement.
func (e *Engine) Predict(scenario ScenarioInput) PredictionResult {
	var (
		motivation CoefficientMap
		media      CoefficientMap
		climate    CoefficientMap
		weather    float64
		regional   float64
		sentiment  SentimentBreakdown
	)

	var g errgroup.Group
	g.Go(func() error {
		motivation = e.motivation.Estimate(scenario.AgeShares, scenario.Target)
		return nil
	})
	g.Go(func() error {
		media = e.media.Estimate(scenario.AgeShares, scenario.Target)
		return nil
	})
	g.Go(func() error {
		climate = e.climate.Estimate(scenario.Forum)
		return nil
	})
	g.Go(func() error {
		weather = e.weather.Estimate(scenario.Weather)
		return nil
	})
	g.Go(func() error {
		if scenario.RegionalHint != nil {
			regional = clamp(*scenario.RegionalHint, regionalFloor, regionalCeil)
			return nil
		}
		regional = e.regional.Estimate(scenario.Region, scenario.HistoricalTurnout*100, scenario.MobilizationCapacity)
		return nil
	})
	g.Go(func() error {
		sentiment = e.sentiment.Estimate(e.source(scenario.Forum), scenario.Target, e.rnd)
		return nil
	})
	// Estimators have total contracts; the group only synchronizes the fan-in.
	_ = g.Wait()

	intensity, matched := e.tables.LookupIntensity(scenario.Target)
	if !matched {
		slog.Debug("intensity: unknown target, using neutral multiplier",
			"target", scenario.Target.ID)
		e.rec.RecordUnknownTarget(scenario.Target.ID)
	}

	turnout := e.combineTurnout(scenario.AgeShares, motivation, media, climate, weather, regional, intensity)
	agreement := e.combineAgreement(scenario.AgeShares, sentiment, intensity)
	willPass, reason := verdict(turnout, agreement)

	for _, field := range scenario.Fallbacks {
		e.rec.RecordFallback(field)
	}

	return PredictionResult{
		PredictedTurnout:   turnout,
		PredictedAgreement: agreement,
		WillPass:           willPass,
		Reason:             reason,
		Breakdown: Breakdown{
			Motivation: motivation,
			Media:      media,
			Climate:    climate,
			Weather:    weather,
			Regional:   regional,
			Sentiment:  sentiment,
			Intensity:  intensity,
		},
		Fallbacks: scenario.Fallbacks,
	}
}

// combineTurnout sums each group's share-weighted intention amplified by its
// media and climate coefficients, then applies the scalar adjustments.
func (e *Engine) combineTurnout(shares map[AgeGroup]float64, motivation, media, climate CoefficientMap, weather, regional, intensity float64) float64 {
	raw := 0.0
	for group, share := range shares {
		raw += share * motivation[group] * media[group] * climate[group]
	}

	turnout := raw * weather * regional * intensity
	if turnout < turnoutFloor {
		turnout = turnoutFloor
	}
	if turnout > 1 {
		turnout = 1
	}
	return turnout
}

// combineAgreement weighs the stratified sentiment coefficients by population
// share. Mobilization-driven factors deliberately stay out: agreement
// measures direction of vote among those who already decided to vote.
func (e *Engine) combineAgreement(shares map[AgeGroup]float64, s SentimentBreakdown, intensity float64) float64 {
	tune := e.tables.Agreement
	weighted := shares[Youth]*s.YouthForum*tune.Youth +
		shares[Middle]*s.MiddleForum*tune.Middle +
		shares[Elder]*s.ElderNews*tune.Elder

	return clamp(weighted*intensity, agreementFloor, agreementCeil)
}

func verdict(turnout, agreement float64) (bool, string) {
	switch {
	case turnout < turnoutThreshold && agreement <= agreementThreshold:
		return false, fmt.Sprintf("turnout %.1f%% below the 25%% threshold and agreement %.1f%% not above half", turnout*100, agreement*100)
	case turnout < turnoutThreshold:
		return false, fmt.Sprintf("turnout %.1f%% below the 25%% threshold", turnout*100)
	case agreement <= agreementThreshold:
		return false, fmt.Sprintf("agreement %.1f%% not above half", agreement*100)
	default:
		return true, fmt.Sprintf("turnout %.1f%% meets the threshold and agreement %.1f%% is above half", turnout*100, agreement*100)
	}
}
