package bulksync

import (
	"strings"
	"time"

	"ixcbridge/internal/catalog/models"
	"ixcbridge/internal/upstream"
	id "ixcbridge/pkg/domain"
)

// ToCatalog maps an upstream customer onto the local catalog row.
func ToCatalog(tenantID id.TenantID, c upstream.Customer, syncedAt time.Time) *models.Customer {
	return &models.Customer{
		UpstreamID:   strings.TrimSpace(c.ID.String()),
		TenantID:     tenantID,
		LegalName:    c.LegalName.String(),
		TaxID:        c.TaxID.String(),
		MobilePhone:  c.MobilePhone.String(),
		Landline:     c.Landline.String(),
		Email:        c.Email.String(),
		ActiveFlag:   c.ActiveFlag.String(),
		City:         c.City.String(),
		Neighborhood: c.Neighborhood.String(),
		Street:       c.Street.String(),
		StreetNumber: c.StreetNumber.String(),
		PersonType:   c.PersonType.String(),
		MonthlyFee:   c.MonthlyFee.String(),
		SyncedAt:     syncedAt,
	}
}
