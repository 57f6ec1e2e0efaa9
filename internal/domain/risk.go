package domain

import "github.com/shopspring/decimal"

// RiskStatus classifies a risk category. Scores run 0-100 where higher means
// more exposure, so excellent carries the lowest score.
type RiskStatus string

const (
	RiskExcellent RiskStatus = "excellent"
	RiskGood      RiskStatus = "good"
	RiskWarning   RiskStatus = "warning"
	RiskCritical  RiskStatus = "critical"
)

// RiskCategory is the classification result for one of the eight fixed
// categories.
type RiskCategory struct {
	Name            string     `json:"name"`
	Score           int        `json:"score"` // 0-100
	Status          RiskStatus `json:"status"`
	Message         string     `json:"message"`
	Recommendations []string   `json:"recommendations"`
}

// RiskAssessment is the full eight-category evaluation.
type RiskAssessment struct {
	Categories   []RiskCategory  `json:"categories"`
	OverallScore decimal.Decimal `json:"overallScore"` // mean of category scores
	CriticalGaps []string        `json:"criticalGaps"`
}
