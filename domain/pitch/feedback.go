package pitch

import "time"

// SectionFeedback is the model's assessment of one pitch section.
type SectionFeedback struct {
	Summary  string `json:"summary"`
	Feedback string `json:"feedback"`
	Score    *int   `json:"score,omitempty"`
}

// Feedback is the full structured analysis of a pitch deck. Field names
// mirror the JSON wire format produced by the model and returned to clients.
type Feedback struct {
	AnalysisID     string    `json:"analysis_id"`
	Timestamp      time.Time `json:"timestamp"`
	ProcessingTime float64   `json:"processing_time,omitempty"`

	Problem              SectionFeedback `json:"problem"`
	Solution             SectionFeedback `json:"solution"`
	MarketSize           SectionFeedback `json:"market_size"`
	BusinessModel        SectionFeedback `json:"business_model"`
	GoToMarketStrategy   SectionFeedback `json:"go_to_market_strategy"`
	Traction             SectionFeedback `json:"traction"`
	Team                 SectionFeedback `json:"team"`
	CompetitiveAdvantage SectionFeedback `json:"competitive_advantage"`
	Vision               SectionFeedback `json:"vision"`

	Scores map[string]int `json:"scores"`

	InvestorQuestions []string `json:"investor_questions"`
	OverallImpression string   `json:"overall_impression"`

	ContentStatistics *ContentStatistics `json:"content_statistics,omitempty"`
	RiskFactors       []string           `json:"risk_factors,omitempty"`
	Strengths         []string           `json:"strengths,omitempty"`
}
