// Package scoring classifies case-intake submissions by likely case value.
// Scoring is pure: the same submission always yields the same CaseScore.
package scoring

import (
	"fmt"

	"lawfirm-site/internal/common/config"
	"lawfirm-site/internal/intake"
)

// CaseScore is the result of scoring one submission.
type CaseScore struct {
	Score       int      `json:"score"`
	IsHighValue bool     `json:"isHighValue"`
	Reasons     []string `json:"reasons"`
}

const (
	ReasonCommercialVehicle = "Commercial vehicle accident"
	ReasonCatastrophic      = "Catastrophic injury severity"
	ReasonSevere            = "Severe injury"
	ReasonNotAtFault        = "Not at fault"
)

// Weights holds the points per criterion and the high-value threshold.
type Weights struct {
	HighValueAccident    int
	HighValueInjury      int
	SeverityCatastrophic int
	SeveritySevere       int
	SeverityModerate     int
	SeverityMinor        int
	NotAtFault           int
	NoAttorney           int
	Threshold            int
}

func DefaultWeights() Weights {
	return Weights{
		HighValueAccident:    30,
		HighValueInjury:      15,
		SeverityCatastrophic: 30,
		SeveritySevere:       20,
		SeverityModerate:     10,
		SeverityMinor:        0,
		NotAtFault:           10,
		NoAttorney:           5,
		Threshold:            50,
	}
}

// WeightsFromConfig copies the scoring section. The loader has already
// filled unset keys with the defaults.
func WeightsFromConfig(cfg config.ScoringConfig) Weights {
	return Weights{
		HighValueAccident:    cfg.HighValueAccident,
		HighValueInjury:      cfg.HighValueInjury,
		SeverityCatastrophic: cfg.SeverityCatastrophic,
		SeveritySevere:       cfg.SeveritySevere,
		SeverityModerate:     cfg.SeverityModerate,
		SeverityMinor:        cfg.SeverityMinor,
		NotAtFault:           cfg.NotAtFault,
		NoAttorney:           cfg.NoAttorney,
		Threshold:            cfg.Threshold,
	}
}

type Engine struct {
	weights Weights
}

func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights}
}

func (e *Engine) Weights() Weights {
	return e.weights
}

// Score applies every criterion in order. Unknown option ids earn nothing.
func (e *Engine) Score(s intake.Submission) CaseScore {
	w := e.weights
	score := 0
	reasons := make([]string, 0, 4)

	if intake.IsHighValueAccident(s.AccidentType) {
		score += w.HighValueAccident
		reasons = append(reasons, ReasonCommercialVehicle)
	}

	if n := countHighValueInjuries(s.InjuryTypes); n > 0 {
		score += n * w.HighValueInjury
		reasons = append(reasons, fmt.Sprintf("%d severe injury type(s)", n))
	}

	switch s.InjurySeverity {
	case intake.SeverityCatastrophic:
		score += w.SeverityCatastrophic
		reasons = append(reasons, ReasonCatastrophic)
	case intake.SeveritySevere:
		score += w.SeveritySevere
		reasons = append(reasons, ReasonSevere)
	case intake.SeverityModerate:
		score += w.SeverityModerate
	case intake.SeverityMinor:
		score += w.SeverityMinor
	}

	if s.AtFault == intake.FaultNo {
		score += w.NotAtFault
		reasons = append(reasons, ReasonNotAtFault)
	}

	if s.HasAttorney == intake.AnswerNo {
		score += w.NoAttorney
	}

	if score < 0 {
		score = 0
	}

	return CaseScore{
		Score:       score,
		IsHighValue: score >= w.Threshold,
		Reasons:     reasons,
	}
}

// countHighValueInjuries counts distinct high-value ids.
func countHighValueInjuries(ids []string) int {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if intake.IsHighValueInjury(id) {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}

var defaultEngine = NewEngine(DefaultWeights())

// Score scores s with the default weights.
func Score(s intake.Submission) CaseScore {
	return defaultEngine.Score(s)
}
