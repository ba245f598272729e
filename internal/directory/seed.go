package directory

import (
	"time"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

// DemoVendors returns the demo vendor fixtures used by the serve --demo and
// sweep commands. Contract end dates are relative to now so each vendor lands
// in a different renewal window.
func DemoVendors(now time.Time) []*models.VendorSnapshot {
	day := 24 * time.Hour

	return []*models.VendorSnapshot{
		{
			ID:     "vendor-premium-logistics",
			Name:   "Premium Logistics Partners",
			Status: models.VendorStatusActive,
			Contact: models.VendorContact{
				Email: "accounts@premiumlogistics.example",
				Phone: "+15550100",
			},
			Contract: models.VendorContract{
				ID:        "contract-pl-2024",
				StartDate: now.Add(-320 * day),
				EndDate:   now.Add(45 * day),
				Status:    "active",
				Value:     420000,
			},
			Performance: models.VendorPerformance{
				Overall: models.PerformanceOverall{Score: 96, Rating: "excellent"},
				Metrics: models.PerformanceMetrics{OnTimeDelivery: 98, QualityScore: 95, ResponseTimeHours: 2},
				Trends: models.PerformanceTrends{Monthly: []models.TrendPoint{
					{Month: "2026-05", Score: 93},
					{Month: "2026-06", Score: 95},
					{Month: "2026-07", Score: 96},
				}},
				Benchmarking: models.PerformanceBenchmarks{IndustryAverage: 82, PeerComparison: 88},
			},
			Compliance: models.VendorCompliance{Overall: models.ComplianceCompliant},
			Financials: models.VendorFinancials{
				Savings: models.VendorSavings{TotalSaved: 48000, SavingsPercent: 18},
			},
			Risk: models.VendorRisk{Overall: models.RiskLow},
		},
		{
			ID:     "vendor-midwest-freight",
			Name:   "Midwest Freight Co",
			Status: models.VendorStatusActive,
			Contact: models.VendorContact{
				Email: "billing@midwestfreight.example",
				Phone: "+15550101",
			},
			Contract: models.VendorContract{
				ID:        "contract-mf-2024",
				StartDate: now.Add(-290 * day),
				EndDate:   now.Add(75 * day),
				Status:    "active",
				Value:     185000,
			},
			Performance: models.VendorPerformance{
				Overall: models.PerformanceOverall{Score: 84, Rating: "good"},
				Metrics: models.PerformanceMetrics{OnTimeDelivery: 91, QualityScore: 86, ResponseTimeHours: 5},
				Trends: models.PerformanceTrends{Monthly: []models.TrendPoint{
					{Month: "2026-05", Score: 86},
					{Month: "2026-06", Score: 85},
					{Month: "2026-07", Score: 84},
				}},
				Benchmarking: models.PerformanceBenchmarks{IndustryAverage: 82, PeerComparison: 80},
			},
			Compliance: models.VendorCompliance{Overall: models.ComplianceMinorIssues},
			Financials: models.VendorFinancials{
				Savings: models.VendorSavings{TotalSaved: 12000, SavingsPercent: 9},
			},
			Risk: models.VendorRisk{Overall: models.RiskMedium},
		},
		{
			ID:     "vendor-rapid-haul",
			Name:   "Rapid Haul Services",
			Status: models.VendorStatusActive,
			Contact: models.VendorContact{
				Email: "ops@rapidhaul.example",
				Phone: "+15550102",
			},
			Contract: models.VendorContract{
				ID:        "contract-rh-2025",
				StartDate: now.Add(-350 * day),
				EndDate:   now.Add(20 * day),
				Status:    "active",
				Value:     96000,
			},
			Performance: models.VendorPerformance{
				Overall: models.PerformanceOverall{Score: 74, Rating: "needs improvement"},
				Metrics: models.PerformanceMetrics{OnTimeDelivery: 85, QualityScore: 78, ResponseTimeHours: 9},
				Trends: models.PerformanceTrends{Monthly: []models.TrendPoint{
					{Month: "2026-05", Score: 80},
					{Month: "2026-06", Score: 77},
					{Month: "2026-07", Score: 74},
				}},
				Benchmarking: models.PerformanceBenchmarks{IndustryAverage: 82, PeerComparison: 71},
			},
			Compliance: models.VendorCompliance{Overall: models.ComplianceMajorIssues},
			Financials: models.VendorFinancials{
				Savings: models.VendorSavings{TotalSaved: 3000, SavingsPercent: 4},
				Billing: models.VendorBilling{OverdueAmount: 5400},
			},
			Risk: models.VendorRisk{Overall: models.RiskHigh},
		},
	}
}

// SeedDemo loads the demo fixtures into an in-memory directory.
func SeedDemo(d *InMemoryDirectory, now time.Time) {
	for _, v := range DemoVendors(now) {
		d.Put(v)
	}
}
