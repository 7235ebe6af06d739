// internal/workers/intake/score-case/models.go
package scorecase

import "lawfirm-site/internal/intake"

type Input struct {
	LeadID     string             `json:"leadId"`
	Submission *intake.Submission `json:"submission"`
}

type Output struct {
	Score            int      `json:"score"`
	IsHighValue      bool     `json:"isHighValue"`
	Reasons          []string `json:"reasons"`
	FollowUpPriority string   `json:"followUpPriority"`
}
