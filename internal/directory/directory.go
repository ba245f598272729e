// Package directory provides the vendor directory the lifecycle engine reads
// vendor and contract snapshots from.
package directory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/fleetflow/contract-lifecycle/pkg/models"
)

// ErrVendorNotFound is returned when a vendor id is unknown to the directory.
var ErrVendorNotFound = errors.New("vendor not found")

// Directory is the read-only vendor directory contract consumed by the engine.
type Directory interface {
	// Vendor returns the snapshot for a vendor id.
	Vendor(ctx context.Context, id string) (*models.VendorSnapshot, error)
	// AllVendors returns snapshots for every known vendor.
	AllVendors(ctx context.Context) ([]*models.VendorSnapshot, error)
}

// InMemoryDirectory is a Directory backed by an in-process map. It is the
// default backing for dev and tests.
type InMemoryDirectory struct {
	mu      sync.RWMutex
	vendors map[string]*models.VendorSnapshot
}

// NewInMemoryDirectory creates an empty InMemoryDirectory.
func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{vendors: make(map[string]*models.VendorSnapshot)}
}

// Put inserts or replaces a vendor snapshot.
func (d *InMemoryDirectory) Put(vendor *models.VendorSnapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vendors[vendor.ID] = vendor
}

// Vendor returns the snapshot for a vendor id.
func (d *InMemoryDirectory) Vendor(ctx context.Context, id string) (*models.VendorSnapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.vendors[id]
	if !ok {
		return nil, ErrVendorNotFound
	}
	return v, nil
}

// AllVendors returns snapshots for every known vendor, ordered by id so
// sweeps are deterministic.
func (d *InMemoryDirectory) AllVendors(ctx context.Context) ([]*models.VendorSnapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*models.VendorSnapshot, 0, len(d.vendors))
	for _, v := range d.vendors {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
