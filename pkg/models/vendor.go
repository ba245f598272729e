package models

import (
	"time"
)

// VendorStatus represents the operational status of a vendor relationship.
type VendorStatus string

const (
	VendorStatusActive     VendorStatus = "active"
	VendorStatusInactive   VendorStatus = "inactive"
	VendorStatusOnboarding VendorStatus = "onboarding"
	VendorStatusSuspended  VendorStatus = "suspended"
)

// ComplianceStanding summarizes a vendor's overall regulatory posture.
type ComplianceStanding string

const (
	ComplianceCompliant    ComplianceStanding = "compliant"
	ComplianceMinorIssues  ComplianceStanding = "minor_issues"
	ComplianceMajorIssues  ComplianceStanding = "major_issues"
	ComplianceNonCompliant ComplianceStanding = "non_compliant"
)

// RiskRating is the vendor-level risk classification from the last assessment.
type RiskRating string

const (
	RiskLow    RiskRating = "low"
	RiskMedium RiskRating = "medium"
	RiskHigh   RiskRating = "high"
)

// VendorSnapshot is the read model the engine consumes from the vendor
// directory. The engine never mutates it.
type VendorSnapshot struct {
	ID          string            `json:"id" db:"id"`
	Name        string            `json:"name" db:"name"`
	Status      VendorStatus      `json:"status" db:"status"`
	Contact     VendorContact     `json:"contact"`
	Contract    VendorContract    `json:"contract"`
	Performance VendorPerformance `json:"performance"`
	Compliance  VendorCompliance  `json:"compliance"`
	Financials  VendorFinancials  `json:"financials"`
	Risk        VendorRisk        `json:"risk_assessment"`
}

// VendorContact holds notification endpoints for the vendor side.
type VendorContact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// VendorContract is the active contract attached to a vendor.
type VendorContract struct {
	ID        string    `json:"id" db:"id"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	Status    string    `json:"status" db:"status"`
	Value     float64   `json:"value" db:"value"`
}

// DaysUntilExpiry returns the whole days remaining until contract end,
// rounded up. Negative when the contract has already expired.
func (c VendorContract) DaysUntilExpiry(now time.Time) int {
	d := c.EndDate.Sub(now)
	days := int(d.Hours() / 24)
	if d > 0 && d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// VendorPerformance aggregates scored performance data.
type VendorPerformance struct {
	Overall      PerformanceOverall    `json:"overall"`
	Metrics      PerformanceMetrics    `json:"metrics"`
	Trends       PerformanceTrends     `json:"trends"`
	Benchmarking PerformanceBenchmarks `json:"benchmarking"`
}

// PerformanceOverall is the headline score and rating.
type PerformanceOverall struct {
	Score  float64 `json:"score"`
	Rating string  `json:"rating"`
}

// PerformanceMetrics are the individual measured dimensions.
type PerformanceMetrics struct {
	OnTimeDelivery    float64 `json:"on_time_delivery"`
	QualityScore      float64 `json:"quality_score"`
	ResponseTimeHours float64 `json:"response_time_hours"`
}

// PerformanceTrends holds historical score samples, oldest first.
type PerformanceTrends struct {
	Monthly []TrendPoint `json:"monthly"`
}

// TrendPoint is one historical performance sample.
type TrendPoint struct {
	Month string  `json:"month"`
	Score float64 `json:"score"`
}

// PerformanceBenchmarks compare the vendor against industry and peers.
type PerformanceBenchmarks struct {
	IndustryAverage float64 `json:"industry_average"`
	PeerComparison  float64 `json:"peer_comparison"`
}

// VendorCompliance is the regulatory posture consumed by analytics.
type VendorCompliance struct {
	Overall ComplianceStanding `json:"overall"`
}

// VendorFinancials covers billing and realized savings.
type VendorFinancials struct {
	Savings VendorSavings `json:"savings"`
	Billing VendorBilling `json:"billing"`
}

// VendorSavings tracks realized cost savings under the contract.
type VendorSavings struct {
	TotalSaved     float64 `json:"total_saved"`
	SavingsPercent float64 `json:"savings_percent"`
}

// VendorBilling tracks the billing relationship.
type VendorBilling struct {
	OverdueAmount float64 `json:"overdue_amount"`
}

// VendorRisk is the standing risk assessment.
type VendorRisk struct {
	Overall RiskRating `json:"overall"`
}
