package models

import (
	"time"
)

// RenewalAdvice is the coarse renew/renegotiate/terminate banding produced by
// contract analytics, distinct from the recommender's four-way decision.
type RenewalAdvice string

const (
	AdviceRenew       RenewalAdvice = "renew"
	AdviceRenegotiate RenewalAdvice = "renegotiate"
	AdviceTerminate   RenewalAdvice = "terminate"
)

// ContractAnalytics is the output of the performance analysis step.
type ContractAnalytics struct {
	ContractID           string              `json:"contract_id"`
	PerformanceScore     float64             `json:"performance_score"`
	ComplianceScore      float64             `json:"compliance_score"`
	RiskLevel            RiskRating          `json:"risk_level"`
	CostEfficiency       float64             `json:"cost_efficiency"`
	RenewalAdvice        RenewalAdvice       `json:"renewal_recommendation"`
	KeyFindings          []string            `json:"key_findings"`
	ImprovementAreas     []string            `json:"improvement_areas"`
	BenchmarkComparison  BenchmarkComparison `json:"benchmark_comparison"`
	ProjectedSavings     float64             `json:"projected_savings"`
	LastAnalysis         time.Time           `json:"last_analysis"`
}

// BenchmarkComparison relates the vendor's performance to reference points.
type BenchmarkComparison struct {
	IndustryAverage float64 `json:"industry_average"`
	PeerComparison  float64 `json:"peer_comparison"`
	HistoricalTrend float64 `json:"historical_trend"`
}

// RenewalRecommendation is the externally sourced decision that determines
// which branch of steps a renewal workflow contains.
type RenewalRecommendation struct {
	ContractID      string          `json:"contract_id"`
	VendorID        string          `json:"vendor_id"`
	Recommendation  Recommendation  `json:"recommendation"`
	Confidence      int             `json:"confidence"` // 0-100
	Reasoning       []string        `json:"reasoning"`
	EstimatedImpact EstimatedImpact `json:"estimated_impact"`
}

// EstimatedImpact quantifies the expected effect of following a recommendation.
type EstimatedImpact struct {
	CostSavings            float64 `json:"cost_savings"`
	RiskReduction          float64 `json:"risk_reduction"`
	PerformanceImprovement float64 `json:"performance_improvement"`
}
