package prediction

import "strings"

// weatherFloor keeps bad weather from zeroing out turnout entirely.
const weatherFloor = 0.5

// extremeHeatThreshold marks the temperature above which the day counts as
// an extreme-heat condition even when the condition label doesn't say so.
const extremeHeatThreshold = 35.0

// WeatherEstimator converts raw weather readings into a single scalar
// adjustment coefficient.
type WeatherEstimator struct {
	tables *Tables
	rec    Recorder
}

// NewWeatherEstimator creates a weather estimator over the given tables.
func NewWeatherEstimator(tables *Tables, rec Recorder) *WeatherEstimator {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &WeatherEstimator{tables: tables, rec: rec}
}

// Estimate starts at 1.0 and subtracts fixed penalties. The temperature and
// rainfall penalties are tiered, not cumulative: the harsher tier replaces
// the milder one. Each distinct extreme condition, whether named by the
// label or derived from the readings, costs a further 0.15. Floored at 0.5.
func (e *WeatherEstimator) Estimate(w WeatherReading) float64 {
	coef := 1.0

	switch {
	case w.Temperature > extremeHeatThreshold:
		coef -= 0.10
	case w.Temperature > 30:
		coef -= 0.05
	case w.Temperature < 10:
		coef -= 0.08
	}

	switch {
	case w.Rainfall > 15:
		coef -= 0.20
	case w.Rainfall > 5:
		coef -= 0.10
	}

	coef -= 0.15 * float64(e.extremeCount(w))

	if coef < weatherFloor {
		e.rec.RecordClamp("weather")
		coef = weatherFloor
	}
	return coef
}

// extremeCount reports how many distinct extreme conditions the reading
// carries. A labeled extreme (typhoon, severe storm, extreme heat) counts
// once; temperatures past the extreme-heat threshold count as extreme heat
// unless the label already says so.
func (e *WeatherEstimator) extremeCount(w WeatherReading) int {
	label := strings.ToLower(strings.TrimSpace(w.Condition))

	count := 0
	labeled := false
	for _, extreme := range e.tables.ExtremeConditions {
		if label == strings.ToLower(extreme) {
			labeled = true
			count++
			break
		}
	}

	heatLabeled := labeled && (label == "extreme heat" || label == "極端高溫")
	if w.Temperature > extremeHeatThreshold && !heatLabeled {
		count++
	}
	return count
}
