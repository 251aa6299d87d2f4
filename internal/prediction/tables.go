package prediction

import (
	"encoding/json"
	"fmt"
	"os"
)

// MotivationParams are the per-age-group base proxies the motivation
// estimator multiplies together.
type MotivationParams struct {
	PoliticalInterest  float64 `json:"political_interest"`
	PoliticalEfficacy  float64 `json:"political_efficacy"`
	EconomicMotivation float64 `json:"economic_motivation"`
}

// AgreementTunables are the age-stratified multipliers the aggregator applies
// to the sentiment coefficients. They are tunables, not fixed constants: their
// numeric plausibility is unverified against ground truth.
type AgreementTunables struct {
	Youth  float64 `json:"youth"`
	Middle float64 `json:"middle"`
	Elder  float64 `json:"elder"`
}

// Tables holds every static reference table the engine consults. A Tables
// value is immutable after load; the engine only ever reads it.
type Tables struct {
	Version string `json:"version"`

	Motivation map[AgeGroup]MotivationParams `json:"motivation"`
	// ControversyTargets get the political-interest boost applied.
	ControversyTargets []string `json:"controversy_targets"`
	ControversyBoost   float64  `json:"controversy_boost"`

	// Media platform weights per age group, plus per-platform impact
	// multipliers and the dampening constant.
	MediaWeights     map[AgeGroup]map[string]float64 `json:"media_weights"`
	MediaMultipliers map[string]float64              `json:"media_multipliers"`
	MediaDampening   float64                         `json:"media_dampening"`
	// HighProfileTargets draw elevated base media attention.
	HighProfileTargets []string `json:"high_profile_targets"`

	// ClimateSensitivity decreases with age: younger voters react more
	// strongly to online mood.
	ClimateSensitivity map[AgeGroup]float64 `json:"climate_sensitivity"`

	// ExtremeConditions trigger the extra weather penalty.
	ExtremeConditions []string `json:"extreme_conditions"`

	// RegionalMultipliers are substring-matched against the scenario region.
	RegionalMultipliers map[string]float64 `json:"regional_multipliers"`

	// ForumUsage holds per-age-group platform usage shares for the
	// sentiment estimator.
	ForumUsage map[AgeGroup]map[Platform]float64 `json:"forum_usage"`

	// Intensity maps canonical target names to political-intensity
	// multipliers, roughly [0.8, 1.8].
	Intensity map[string]float64 `json:"intensity"`

	Agreement AgreementTunables `json:"agreement"`
}

// DefaultTables returns the compiled-in reference tables.
func DefaultTables() *Tables {
	return &Tables{
		Version: "2025.07",

		Motivation: map[AgeGroup]MotivationParams{
			Youth:  {PoliticalInterest: 0.6, PoliticalEfficacy: 0.7, EconomicMotivation: 0.8},
			Middle: {PoliticalInterest: 0.8, PoliticalEfficacy: 0.6, EconomicMotivation: 0.9},
			Elder:  {PoliticalInterest: 0.9, PoliticalEfficacy: 0.5, EconomicMotivation: 0.7},
		},
		ControversyTargets: []string{"韓國瑜", "柯文哲", "羅智強"},
		ControversyBoost:   1.2,

		MediaWeights: map[AgeGroup]map[string]float64{
			Youth:  {"instagram": 0.30, "tiktok": 0.25, "youtube": 0.25, "ptt": 0.20},
			Middle: {"facebook": 0.40, "line": 0.30, "tv": 0.20, "news": 0.10},
			Elder:  {"tv": 0.50, "newspaper": 0.20, "radio": 0.20, "word_of_mouth": 0.10},
		},
		MediaMultipliers: map[string]float64{
			"instagram": 1.1, "tiktok": 1.2, "youtube": 1.0, "ptt": 1.3,
			"facebook": 1.1, "line": 0.9, "tv": 1.2, "news": 1.0,
			"newspaper": 0.8, "radio": 0.7, "word_of_mouth": 0.8,
		},
		MediaDampening:     0.3,
		HighProfileTargets: []string{"韓國瑜", "柯文哲", "羅智強", "趙少康"},

		ClimateSensitivity: map[AgeGroup]float64{Youth: 0.30, Middle: 0.25, Elder: 0.20},

		ExtremeConditions: []string{"颱風", "暴雨", "極端高溫", "typhoon", "severe storm", "extreme heat"},

		RegionalMultipliers: map[string]float64{
			"台北": 1.05, "新北": 1.02, "桃園": 1.00, "台中": 1.03,
			"台南": 1.08, "高雄": 1.06, "基隆": 0.98, "新竹": 1.01,
			"苗栗": 0.97, "彰化": 1.00, "南投": 0.96, "雲林": 0.98,
			"嘉義": 1.02, "屏東": 1.04, "宜蘭": 0.99, "花蓮": 0.95,
			"台東": 0.94, "澎湖": 0.92, "金門": 0.90, "連江": 0.88,
		},

		ForumUsage: map[AgeGroup]map[Platform]float64{
			Youth:  {PlatformPTT: 0.45, PlatformDcard: 0.35, PlatformMobile01: 0.20},
			Middle: {PlatformMobile01: 0.60, PlatformPTT: 0.25, PlatformFacebook: 0.15},
			Elder:  {PlatformNews: 0.80, PlatformFacebook: 0.20},
		},

		Intensity: map[string]float64{
			"韓國瑜": 1.8, // 2020 recall, highest attention on record
			"柯文哲": 1.6,
			"羅智強": 1.5,
			"趙少康": 1.4,
			"黃國昌": 1.3, // 2017 recall failed
			"陳柏惟": 1.2, // 2021 recall passed
			"李彥秀": 1.1,
			"蔣萬安": 1.1,
			"邱若華": 0.9,
			"地方議員": 0.8,
		},

		Agreement: AgreementTunables{Youth: 1.2, Middle: 1.0, Elder: 0.8},
	}
}

// LoadTables reads reference tables from a JSON file. A missing path (or
// empty string) yields the compiled-in defaults; a present but malformed file
// is an error, since silently ignoring a hand-edited table would be worse
// than failing at startup.
func LoadTables(path string) (*Tables, error) {
	if path == "" {
		return DefaultTables(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTables(), nil
		}
		return nil, fmt.Errorf("failed to read tables file: %w", err)
	}

	t := DefaultTables()
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to decode tables file %s: %w", path, err)
	}
	return t, nil
}
