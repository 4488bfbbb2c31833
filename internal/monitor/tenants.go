package monitor

import (
	"context"
	"errors"

	tenantmodels "ixcbridge/internal/tenant/models"
	"ixcbridge/internal/upstream"
	id "ixcbridge/pkg/domain"
	dErrors "ixcbridge/pkg/domain-errors"
	"ixcbridge/pkg/platform/sentinel"
)

// ActiveFinder returns an account's active tenant config.
type ActiveFinder interface {
	Active(ctx context.Context, owner id.AccountID) (*tenantmodels.TenantConfig, error)
}

// AccountTenants is the TenantSource for a monitor bound to one operator account.
type AccountTenants struct {
	finder ActiveFinder
	owner  id.AccountID
}

func NewAccountTenants(finder ActiveFinder, owner id.AccountID) *AccountTenants {
	return &AccountTenants{finder: finder, owner: owner}
}

func (a *AccountTenants) ActiveTenant(ctx context.Context) (upstream.TenantContext, error) {
	if a.owner.IsNil() {
		return upstream.TenantContext{}, ErrNoActiveTenant
	}
	cfg, err := a.finder.Active(ctx, a.owner)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || dErrors.HasCode(err, dErrors.CodeNotFound) {
			return upstream.TenantContext{}, ErrNoActiveTenant
		}
		return upstream.TenantContext{}, err
	}
	return cfg.UpstreamContext(), nil
}
