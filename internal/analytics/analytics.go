// Package analytics derives contract analytics from vendor snapshots. Results
// are cached with a TTL since they feed dashboards that poll aggressively.
package analytics

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

const (
	defaultTTL    = 15 * time.Minute
	cleanupPeriod = 30 * time.Minute
	savingsMarkup = 1.15
)

// Service computes and caches per-contract analytics.
type Service struct {
	cache *gocache.Cache
}

// NewService creates an analytics Service with the default cache TTL.
func NewService() *Service {
	return &Service{cache: gocache.New(defaultTTL, cleanupPeriod)}
}

// Build computes contract analytics for a vendor snapshot and caches the
// result keyed by contract id.
func (s *Service) Build(vendor *models.VendorSnapshot) *models.ContractAnalytics {
	performance := vendor.Performance.Overall.Score
	compliance := complianceScore(vendor.Compliance.Overall)
	risk := riskLevel(vendor)

	a := &models.ContractAnalytics{
		ContractID:       vendor.Contract.ID,
		PerformanceScore: performance,
		ComplianceScore:  compliance,
		RiskLevel:        risk,
		CostEfficiency:   vendor.Financials.Savings.SavingsPercent,
		RenewalAdvice:    renewalAdvice(performance),
		KeyFindings:      keyFindings(vendor, compliance, risk),
		ImprovementAreas: improvementAreas(vendor),
		BenchmarkComparison: models.BenchmarkComparison{
			IndustryAverage: vendor.Performance.Benchmarking.IndustryAverage,
			PeerComparison:  vendor.Performance.Benchmarking.PeerComparison,
			HistoricalTrend: historicalTrend(vendor),
		},
		ProjectedSavings: vendor.Financials.Savings.TotalSaved * savingsMarkup,
		LastAnalysis:     time.Now().UTC(),
	}

	s.cache.Set(vendor.Contract.ID, a, gocache.DefaultExpiration)
	return a
}

// Cached returns the cached analytics for a contract id, or nil.
func (s *Service) Cached(contractID string) *models.ContractAnalytics {
	if v, ok := s.cache.Get(contractID); ok {
		return v.(*models.ContractAnalytics)
	}
	return nil
}

// All returns every cached analytics entry.
func (s *Service) All() []*models.ContractAnalytics {
	items := s.cache.Items()
	out := make([]*models.ContractAnalytics, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(*models.ContractAnalytics))
	}
	return out
}

func complianceScore(standing models.ComplianceStanding) float64 {
	switch standing {
	case models.ComplianceCompliant:
		return 95
	case models.ComplianceMinorIssues:
		return 85
	case models.ComplianceMajorIssues:
		return 70
	default:
		return 50
	}
}

func renewalAdvice(performance float64) models.RenewalAdvice {
	switch {
	case performance >= 90:
		return models.AdviceRenew
	case performance >= 75:
		return models.AdviceRenegotiate
	default:
		return models.AdviceTerminate
	}
}

// riskLevel sums additive risk factors: weak performance, a standing high or
// medium risk assessment, compliance issues, and overdue billing.
func riskLevel(vendor *models.VendorSnapshot) models.RiskRating {
	total := 0
	if vendor.Performance.Overall.Score < 80 {
		total++
	}
	switch vendor.Risk.Overall {
	case models.RiskHigh:
		total += 2
	case models.RiskMedium:
		total++
	}
	if vendor.Compliance.Overall != models.ComplianceCompliant {
		total++
	}
	if vendor.Financials.Billing.OverdueAmount > 0 {
		total++
	}

	switch {
	case total >= 3:
		return models.RiskHigh
	case total >= 1:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func keyFindings(vendor *models.VendorSnapshot, compliance float64, risk models.RiskRating) []string {
	return []string{
		"Performance: " + formatPercent(vendor.Performance.Overall.Score) + " (" + vendor.Performance.Overall.Rating + ")",
		"Compliance: " + formatPercent(compliance),
		"Cost Savings: " + formatPercent(vendor.Financials.Savings.SavingsPercent),
		"Risk Level: " + string(risk),
	}
}

func improvementAreas(vendor *models.VendorSnapshot) []string {
	var areas []string
	m := vendor.Performance.Metrics

	if m.OnTimeDelivery < 95 {
		areas = append(areas, "On-time delivery performance")
	}
	if m.QualityScore < 90 {
		areas = append(areas, "Service quality consistency")
	}
	if m.ResponseTimeHours > 4 {
		areas = append(areas, "Response time optimization")
	}
	if vendor.Compliance.Overall != models.ComplianceCompliant {
		areas = append(areas, "Regulatory compliance")
	}
	if vendor.Financials.Savings.SavingsPercent < 15 {
		areas = append(areas, "Cost optimization opportunities")
	}

	return areas
}

// historicalTrend is the percentage change from the oldest to the most recent
// monthly score. Zero when fewer than two samples exist.
func historicalTrend(vendor *models.VendorSnapshot) float64 {
	monthly := vendor.Performance.Trends.Monthly
	if len(monthly) < 2 {
		return 0
	}
	recent := monthly[len(monthly)-1].Score
	previous := monthly[0].Score
	if previous == 0 {
		return 0
	}
	return ((recent - previous) / previous) * 100
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}
