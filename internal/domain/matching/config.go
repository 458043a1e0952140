package matching

import (
	"encoding/json"
	"os"
)

// Config holds the tunables the service and Hybrid strategy consume
// (spec §6). Zero values are never valid configuration; callers should
// build one via DefaultConfig and override fields, or LoadConfig from a
// JSON file with environment overrides for the few values that tend to
// move between deployments.
type Config struct {
	FuzzyThreshold      int     `json:"fuzzy_threshold"`
	ConfidenceExactSKU  float64 `json:"confidence_exact_sku"`
	ConfidenceExactName float64 `json:"confidence_exact_name"`
	ConfidenceFuzzySKU  float64 `json:"confidence_fuzzy_sku"`
	ConfidenceFuzzyName float64 `json:"confidence_fuzzy_name"`
	ConfidenceML        float64 `json:"confidence_ml"`
	MinConfidenceAuto   float64 `json:"min_confidence_auto"`
	EnableMLMatching    bool    `json:"enable_ml_matching"`
}

// DefaultConfig returns the spec's §6 defaults.
func DefaultConfig() Config {
	return Config{
		FuzzyThreshold:      70,
		ConfidenceExactSKU:  100,
		ConfidenceExactName: 95,
		ConfidenceFuzzySKU:  90,
		ConfidenceFuzzyName: 80,
		ConfidenceML:        70,
		MinConfidenceAuto:   80,
		EnableMLMatching:    true,
	}
}

// LoadConfig reads a JSON config file layered over DefaultConfig, then
// applies the MATCHER_ENABLE_ML environment override. Missing or
// malformed files fall back to defaults rather than failing startup,
// matching the teacher's tolerant config loading.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, err
		}
		if err == nil {
			if err := json.Unmarshal(data, &cfg); err != nil {
				return DefaultConfig(), err
			}
		}
	}

	if v := os.Getenv("MATCHER_ENABLE_ML"); v != "" {
		cfg.EnableMLMatching = v == "1" || v == "true"
	}

	return cfg, nil
}
