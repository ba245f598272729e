// Package recommend sources renewal recommendations for vendor contracts.
// The engine only depends on the Recommender interface so the real decision
// source is swappable.
package recommend

import (
	"context"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

// Recommender produces a renewal recommendation for a vendor snapshot.
type Recommender interface {
	Recommend(ctx context.Context, vendor *models.VendorSnapshot) (*models.RenewalRecommendation, error)
}

// Logger is the logging interface the fallback chain reports through.
type Logger interface {
	Warn(msg string, args ...interface{})
}

// Fallback chains a primary recommender with the basic score-threshold
// recommender, degrading to the latter whenever the primary errors.
type Fallback struct {
	primary Recommender
	basic   *Basic
	logger  Logger
}

// NewFallback wraps primary with the basic recommender as a fallback.
func NewFallback(primary Recommender, logger Logger) *Fallback {
	return &Fallback{primary: primary, basic: NewBasic(), logger: logger}
}

// Recommend tries the primary recommender and falls back to the basic
// analysis on error. The fallback itself cannot fail.
func (f *Fallback) Recommend(ctx context.Context, vendor *models.VendorSnapshot) (*models.RenewalRecommendation, error) {
	rec, err := f.primary.Recommend(ctx, vendor)
	if err == nil {
		return rec, nil
	}
	if f.logger != nil {
		f.logger.Warn("primary recommender failed, using basic analysis", "vendor_id", vendor.ID, "error", err)
	}
	return f.basic.Recommend(ctx, vendor)
}
