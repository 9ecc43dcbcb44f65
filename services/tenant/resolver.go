package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	tenantRepo "trimly/database/repository/tenant"
	"trimly/models"
	"trimly/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// ErrTenantNotFound is returned for unknown slugs.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantSuspended is returned for suspended or deactivated tenants.
	ErrTenantSuspended = errors.New("tenant suspended")
)

const cachePrefix = "tenant:slug:"

// Resolver maps public tenant slugs to tenant accounts and gates suspended
// tenants. Lookups are cached in redis with a short TTL; cache failures fall
// through to the repository.
type Resolver struct {
	Repo     tenantRepo.TenantRepository
	Cache    *redis.Client // optional
	CacheTTL time.Duration

	// BlockReadsWhenSuspended also blocks public read-only endpoints for
	// suspended tenants. Writes are always blocked.
	BlockReadsWhenSuspended bool
}

// Resolve returns the tenant for a public slug, or ErrTenantNotFound.
func (r *Resolver) Resolve(ctx context.Context, slug string) (*models.Tenant, error) {
	if slug == "" {
		return nil, ErrTenantNotFound
	}

	if r.Cache != nil {
		if data, err := r.Cache.Get(ctx, cachePrefix+slug).Result(); err == nil {
			var cached models.Tenant
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	tenant, err := r.Repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	if r.Cache != nil {
		ttl := r.CacheTTL
		if ttl <= 0 {
			ttl = time.Minute
		}
		if data, err := json.Marshal(tenant); err == nil {
			if err := r.Cache.Set(ctx, cachePrefix+slug, data, ttl).Err(); err != nil {
				utils.GetLogger().Debug("tenant cache set failed", zap.String("slug", slug), zap.Error(err))
			}
		}
	}
	return tenant, nil
}

// AssertActive returns ErrTenantSuspended unless the tenant accepts traffic.
func (r *Resolver) AssertActive(tenant *models.Tenant) error {
	if tenant == nil || !tenant.Active || tenant.Suspended {
		return ErrTenantSuspended
	}
	return nil
}
