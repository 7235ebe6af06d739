// internal/workers/intake/score-case/config.go
package scorecase

import (
	"time"

	"lawfirm-site/internal/common/config"
	"lawfirm-site/internal/scoring"
)

type Config struct {
	Timeout time.Duration
	Weights scoring.Weights
}

func LoadConfig(cfg *config.Config) *Config {
	timeout := 10 * time.Second
	if wc := config.GetWorkerConfig(cfg, TaskType); wc.Timeout > 0 {
		timeout = config.GetDuration(wc.Timeout)
	}
	return &Config{
		Timeout: timeout,
		Weights: scoring.WeightsFromConfig(cfg.Scoring),
	}
}
