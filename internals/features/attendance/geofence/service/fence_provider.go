package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/geofence/model"
)

// FenceProvider: sumber daftar fence aktif sebuah tenant.
// Engine bergantung ke interface ini supaya test bisa pakai fence statis.
type FenceProvider interface {
	ActiveFences(ctx context.Context, tenantID uuid.UUID) ([]model.GeofenceLocationModel, error)
}

// CachedFenceProvider membaca fence dari DB dengan cache TTL per tenant.
// Geometri fence jarang berubah; staleness beberapa menit bisa diterima.
type CachedFenceProvider struct {
	DB  *gorm.DB
	TTL time.Duration

	mu    sync.RWMutex
	cache map[uuid.UUID]cacheEntry
}

type cacheEntry struct {
	fences    []model.GeofenceLocationModel
	expiresAt time.Time
}

func NewCachedFenceProvider(db *gorm.DB, ttl time.Duration) *CachedFenceProvider {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &CachedFenceProvider{
		DB:    db,
		TTL:   ttl,
		cache: make(map[uuid.UUID]cacheEntry),
	}
}

func (p *CachedFenceProvider) ActiveFences(ctx context.Context, tenantID uuid.UUID) ([]model.GeofenceLocationModel, error) {
	p.mu.RLock()
	entry, ok := p.cache[tenantID]
	p.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.fences, nil
	}

	var fences []model.GeofenceLocationModel
	if err := p.DB.WithContext(ctx).
		Where("geofence_location_tenant_id = ? AND geofence_location_is_active = TRUE", tenantID).
		Find(&fences).Error; err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[tenantID] = cacheEntry{fences: fences, expiresAt: time.Now().Add(p.TTL)}
	p.mu.Unlock()

	return fences, nil
}

// Invalidate dipanggil controller admin setelah fence berubah
// supaya perubahan kelihatan tanpa menunggu TTL.
func (p *CachedFenceProvider) Invalidate(tenantID uuid.UUID) {
	p.mu.Lock()
	delete(p.cache, tenantID)
	p.mu.Unlock()
}
