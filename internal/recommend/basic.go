package recommend

import (
	"context"
	"fmt"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

// Basic recommends purely from the vendor's overall performance score.
// Thresholds: >=95 auto-renew, <70 terminate, <80 seek alternatives,
// otherwise negotiate terms.
type Basic struct{}

// NewBasic creates a Basic recommender.
func NewBasic() *Basic {
	return &Basic{}
}

// Recommend derives a recommendation from the performance score. It never
// returns an error.
func (b *Basic) Recommend(ctx context.Context, vendor *models.VendorSnapshot) (*models.RenewalRecommendation, error) {
	performance := vendor.Performance.Overall.Score

	recommendation := models.RecommendationNegotiateTerms
	confidence := 70

	switch {
	case performance >= 95:
		recommendation = models.RecommendationAutoRenew
		confidence = 90
	case performance < 70:
		recommendation = models.RecommendationTerminate
		confidence = 95
	case performance < 80:
		recommendation = models.RecommendationSeekAlternatives
		confidence = 85
	}

	riskReduction := -5.0
	performanceImprovement := -10.0
	if performance >= 90 {
		riskReduction = 10
		performanceImprovement = 5
	}

	return &models.RenewalRecommendation{
		ContractID:     vendor.Contract.ID,
		VendorID:       vendor.ID,
		Recommendation: recommendation,
		Confidence:     confidence,
		Reasoning: []string{
			fmt.Sprintf("Current performance score: %.0f%%", performance),
			fmt.Sprintf("Cost efficiency: %.0f%%", vendor.Financials.Savings.SavingsPercent),
			"Market analysis and benchmarking needed",
		},
		EstimatedImpact: models.EstimatedImpact{
			CostSavings:            vendor.Financials.Savings.TotalSaved,
			RiskReduction:          riskReduction,
			PerformanceImprovement: performanceImprovement,
		},
	}, nil
}
