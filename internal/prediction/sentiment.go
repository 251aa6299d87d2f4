package prediction

// Platform identifies a sentiment source the model knows how to weight.
type Platform string

const (
	PlatformPTT      Platform = "ptt"
	PlatformDcard    Platform = "dcard"
	PlatformMobile01 Platform = "mobile01"
	PlatformFacebook Platform = "facebook"
	PlatformNews     Platform = "news"
)

// PlatformSource supplies a per-platform positive-sentiment ratio in [0,1].
// The default implementation derives everything from the scenario's forum
// summary; callers with real per-platform feeds can plug their own.
type PlatformSource interface {
	PositiveRatio(target Target, platform Platform) float64
}

// scenarioSource spreads the two observed forum ratios across the platforms
// the usage tables reference. Secondary forums take the mean of the two;
// news sentiment is pulled toward neutral, the way traditional outlets damp
// forum mood swings.
type scenarioSource struct {
	forum ForumSentiment
}

// NewScenarioSource builds the default PlatformSource for a scenario.
func NewScenarioSource(forum ForumSentiment) PlatformSource {
	return scenarioSource{forum: forum}
}

func (s scenarioSource) PositiveRatio(_ Target, platform Platform) float64 {
	mean := (s.forum.DcardPositive + s.forum.PTTPositive) / 2
	switch platform {
	case PlatformPTT:
		return s.forum.PTTPositive
	case PlatformDcard:
		return s.forum.DcardPositive
	case PlatformNews:
		return clamp(0.5+(mean-0.5)*0.6, 0, 1)
	default:
		return mean
	}
}

// SentimentEstimator blends per-platform positive ratios through each age
// group's platform-usage shares into three stratified coefficients plus a
// mobilization modifier.
type SentimentEstimator struct {
	tables *Tables
}

// NewSentimentEstimator creates a sentiment estimator over the given tables.
func NewSentimentEstimator(tables *Tables) *SentimentEstimator {
	return &SentimentEstimator{tables: tables}
}

// Estimate produces the age-stratified sentiment breakdown. The stochastic
// factor in the mobilization modifier comes from rnd, which the engine pins
// to the 1.2 midpoint unless a caller injects entropy.
func (e *SentimentEstimator) Estimate(source PlatformSource, target Target, rnd Rand) SentimentBreakdown {
	if rnd == nil {
		rnd = FixedRand(0.5)
	}

	youth := e.blend(source, target, Youth)
	middle := e.blend(source, target, Middle)
	elder := e.blend(source, target, Elder)

	factor := 1.1 + 0.2*rnd.Float64()
	modifier := (youth*0.4 + middle*0.35 + elder*0.25) * factor

	return SentimentBreakdown{
		YouthForum:           youth,
		MiddleForum:          middle,
		ElderNews:            elder,
		MobilizationModifier: modifier,
		OverallPositiveRatio: (youth + middle + elder) / 3,
	}
}

// blend computes the usage-share weighted positive ratio for one age group.
// A group with no usage table degrades to the neutral 0.5.
func (e *SentimentEstimator) blend(source PlatformSource, target Target, group AgeGroup) float64 {
	usage := e.tables.ForumUsage[group]
	if len(usage) == 0 {
		return 0.5
	}

	weighted, total := 0.0, 0.0
	for platform, share := range usage {
		weighted += source.PositiveRatio(target, platform) * share
		total += share
	}
	if total == 0 {
		return 0.5
	}
	return clamp(weighted/total, 0, 1)
}
