package tenant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tenantRepo "trimly/database/repository/tenant"
	"trimly/models"
)

type stubTenantRepo struct {
	tenants map[string]*models.Tenant
	calls   int
}

func (s *stubTenantRepo) FindBySlug(_ context.Context, slug string) (*models.Tenant, error) {
	s.calls++
	t, ok := s.tenants[slug]
	if !ok {
		return nil, tenantRepo.ErrNotFound
	}
	return t, nil
}

func (s *stubTenantRepo) FindByID(_ context.Context, id string) (*models.Tenant, error) {
	for _, t := range s.tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, tenantRepo.ErrNotFound
}

func TestResolve(t *testing.T) {
	repo := &stubTenantRepo{tenants: map[string]*models.Tenant{
		"fadecity": {ID: "tn-1", Slug: "fadecity", Name: "Fade City", Active: true},
	}}
	r := &Resolver{Repo: repo}

	tn, err := r.Resolve(context.Background(), "fadecity")
	require.NoError(t, err)
	assert.Equal(t, "tn-1", tn.ID)

	_, err = r.Resolve(context.Background(), "no-such-shop")
	assert.ErrorIs(t, err, ErrTenantNotFound)

	_, err = r.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestResolveReturnsSuspendedTenant(t *testing.T) {
	// Resolve only maps slugs; gating is AssertActive's job, so middleware
	// can still let suspended tenants serve reads when configured to.
	repo := &stubTenantRepo{tenants: map[string]*models.Tenant{
		"fadecity": {ID: "tn-1", Slug: "fadecity", Active: true, Suspended: true},
	}}
	r := &Resolver{Repo: repo}

	tn, err := r.Resolve(context.Background(), "fadecity")
	require.NoError(t, err)
	assert.True(t, tn.Suspended)
}

func TestAssertActive(t *testing.T) {
	r := &Resolver{}

	assert.NoError(t, r.AssertActive(&models.Tenant{ID: "tn-1", Active: true}))
	assert.ErrorIs(t, r.AssertActive(&models.Tenant{ID: "tn-1", Active: true, Suspended: true}), ErrTenantSuspended)
	assert.ErrorIs(t, r.AssertActive(&models.Tenant{ID: "tn-1", Active: false}), ErrTenantSuspended)
	assert.ErrorIs(t, r.AssertActive(nil), ErrTenantSuspended)
}
