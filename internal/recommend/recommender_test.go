package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

func vendorWithScore(score float64) *models.VendorSnapshot {
	return &models.VendorSnapshot{
		ID:       "vendor-1",
		Name:     "Premium Logistics",
		Contract: models.VendorContract{ID: "contract-1"},
		Performance: models.VendorPerformance{
			Overall: models.PerformanceOverall{Score: score},
		},
		Financials: models.VendorFinancials{
			Savings: models.VendorSavings{TotalSaved: 50000, SavingsPercent: 18},
		},
	}
}

func TestBasic_Thresholds(t *testing.T) {
	cases := []struct {
		score          float64
		recommendation models.Recommendation
		confidence     int
	}{
		{96, models.RecommendationAutoRenew, 90},
		{95, models.RecommendationAutoRenew, 90},
		{94.9, models.RecommendationNegotiateTerms, 70},
		{80, models.RecommendationNegotiateTerms, 70},
		{79.9, models.RecommendationSeekAlternatives, 85},
		{70, models.RecommendationSeekAlternatives, 85},
		{69.9, models.RecommendationTerminate, 95},
		{40, models.RecommendationTerminate, 95},
	}

	for _, tc := range cases {
		rec, err := NewBasic().Recommend(context.Background(), vendorWithScore(tc.score))
		require.NoError(t, err)
		assert.Equal(t, tc.recommendation, rec.Recommendation, "score=%v", tc.score)
		assert.Equal(t, tc.confidence, rec.Confidence, "score=%v", tc.score)
	}
}

func TestBasic_EstimatedImpact(t *testing.T) {
	ctx := context.Background()

	strong, err := NewBasic().Recommend(ctx, vendorWithScore(92))
	require.NoError(t, err)
	assert.Equal(t, 50000.0, strong.EstimatedImpact.CostSavings)
	assert.Equal(t, 10.0, strong.EstimatedImpact.RiskReduction)
	assert.Equal(t, 5.0, strong.EstimatedImpact.PerformanceImprovement)

	weak, err := NewBasic().Recommend(ctx, vendorWithScore(75))
	require.NoError(t, err)
	assert.Equal(t, -5.0, weak.EstimatedImpact.RiskReduction)
	assert.Equal(t, -10.0, weak.EstimatedImpact.PerformanceImprovement)
}

type failingRecommender struct{ err error }

func (f *failingRecommender) Recommend(ctx context.Context, vendor *models.VendorSnapshot) (*models.RenewalRecommendation, error) {
	return nil, f.err
}

func TestFallback_DegradesToBasic(t *testing.T) {
	f := NewFallback(&failingRecommender{err: errors.New("sidecar unreachable")}, nil)

	rec, err := f.Recommend(context.Background(), vendorWithScore(96))
	require.NoError(t, err)
	assert.Equal(t, models.RecommendationAutoRenew, rec.Recommendation)
}

func TestFallback_PrimaryWins(t *testing.T) {
	primary := &staticPrimary{recommendation: models.RecommendationTerminate}
	f := NewFallback(primary, nil)

	rec, err := f.Recommend(context.Background(), vendorWithScore(96))
	require.NoError(t, err)
	assert.Equal(t, models.RecommendationTerminate, rec.Recommendation)
}

type staticPrimary struct{ recommendation models.Recommendation }

func (s *staticPrimary) Recommend(ctx context.Context, vendor *models.VendorSnapshot) (*models.RenewalRecommendation, error) {
	return &models.RenewalRecommendation{Recommendation: s.recommendation, Confidence: 99}, nil
}

func TestHTTPRecommender_DecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/recommendation", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]*models.VendorSnapshot
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "vendor-1", body["vendor"].ID)

		json.NewEncoder(w).Encode(models.RenewalRecommendation{
			Recommendation: models.RecommendationSeekAlternatives,
			Confidence:     77,
			Reasoning:      []string{"market rates dropped"},
		})
	}))
	defer server.Close()

	rec, err := NewHTTPRecommender(server.URL).Recommend(context.Background(), vendorWithScore(88))
	require.NoError(t, err)
	assert.Equal(t, models.RecommendationSeekAlternatives, rec.Recommendation)
	assert.Equal(t, 77, rec.Confidence)
	assert.Equal(t, "contract-1", rec.ContractID)
	assert.Equal(t, "vendor-1", rec.VendorID)
}

func TestHTTPRecommender_FillsDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	rec, err := NewHTTPRecommender(server.URL).Recommend(context.Background(), vendorWithScore(88))
	require.NoError(t, err)
	assert.Equal(t, models.RecommendationNegotiateTerms, rec.Recommendation)
	assert.Equal(t, 85, rec.Confidence)
	assert.Equal(t, []string{"Performance analysis pending"}, rec.Reasoning)
}

func TestHTTPRecommender_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewHTTPRecommender(server.URL).Recommend(context.Background(), vendorWithScore(88))
	assert.Error(t, err)
}
