package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

// HTTPRecommender asks an analysis sidecar for a renewal recommendation.
type HTTPRecommender struct {
	url string
}

// NewHTTPRecommender creates an HTTPRecommender for the sidecar base URL.
func NewHTTPRecommender(url string) *HTTPRecommender {
	return &HTTPRecommender{url: url}
}

// Recommend posts the vendor snapshot to the sidecar and decodes its
// recommendation. Missing fields are filled with conservative defaults.
func (c *HTTPRecommender) Recommend(ctx context.Context, vendor *models.VendorSnapshot) (*models.RenewalRecommendation, error) {
	requestBody, err := json.Marshal(map[string]interface{}{"vendor": vendor})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url+"/recommendation", bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get recommendation: status code %d", resp.StatusCode)
	}

	var rec models.RenewalRecommendation
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	rec.ContractID = vendor.Contract.ID
	rec.VendorID = vendor.ID
	if rec.Recommendation == "" {
		rec.Recommendation = models.RecommendationNegotiateTerms
	}
	if rec.Confidence == 0 {
		rec.Confidence = 85
	}
	if len(rec.Reasoning) == 0 {
		rec.Reasoning = []string{"Performance analysis pending"}
	}

	return &rec, nil
}
