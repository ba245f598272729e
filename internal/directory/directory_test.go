package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

func TestInMemoryDirectory(t *testing.T) {
	ctx := context.Background()
	d := NewInMemoryDirectory()

	_, err := d.Vendor(ctx, "missing")
	assert.ErrorIs(t, err, ErrVendorNotFound)

	d.Put(&models.VendorSnapshot{ID: "b", Name: "B"})
	d.Put(&models.VendorSnapshot{ID: "a", Name: "A"})

	v, err := d.Vendor(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", v.Name)

	all, err := d.AllVendors(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
}

func TestDemoVendors_LandInDistinctWindows(t *testing.T) {
	now := time.Now().UTC()
	vendors := DemoVendors(now)
	require.Len(t, vendors, 3)

	days := make(map[string]int)
	for _, v := range vendors {
		days[v.ID] = v.Contract.DaysUntilExpiry(now)
	}
	assert.Equal(t, 45, days["vendor-premium-logistics"])
	assert.Equal(t, 75, days["vendor-midwest-freight"])
	assert.Equal(t, 20, days["vendor-rapid-haul"])
}

func TestDaysUntilExpiry_Rounding(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	c := models.VendorContract{EndDate: now.Add(36 * time.Hour)}
	assert.Equal(t, 2, c.DaysUntilExpiry(now), "partial days round up")

	c.EndDate = now.Add(48 * time.Hour)
	assert.Equal(t, 2, c.DaysUntilExpiry(now))

	c.EndDate = now.Add(-30 * time.Hour)
	assert.Equal(t, -1, c.DaysUntilExpiry(now), "expired contracts go negative")
}
