package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ixcbridge/internal/catalog/models"
	"ixcbridge/internal/platform/postgres"
	id "ixcbridge/pkg/domain"
	"ixcbridge/pkg/platform/sentinel"
)

// PostgresStore persists synchronized customers in PostgreSQL.
// A first-batch write deletes and reinserts inside one transaction, so readers
// keep seeing the previous catalog until commit.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const customerColumns = `upstream_id, tenant_id, legal_name, tax_id, mobile_phone, landline, email,
	active_flag, city, neighborhood, street, street_number, person_type, monthly_fee, synced_at`

func (s *PostgresStore) ReplaceAndAppend(ctx context.Context, tenantID id.TenantID, records []*models.Customer, firstBatch bool) error {
	return postgres.RunInTx(ctx, s.db, func(ctx context.Context) error {
		exec := postgres.Executor(ctx, s.db)
		if firstBatch {
			if _, err := exec.ExecContext(ctx, `DELETE FROM synced_customers WHERE tenant_id = $1`, uuid.UUID(tenantID)); err != nil {
				return fmt.Errorf("clear tenant catalog: %w", err)
			}
		}

		query := `
			INSERT INTO synced_customers (` + customerColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (upstream_id, tenant_id) DO UPDATE SET
				legal_name = EXCLUDED.legal_name,
				tax_id = EXCLUDED.tax_id,
				mobile_phone = EXCLUDED.mobile_phone,
				landline = EXCLUDED.landline,
				email = EXCLUDED.email,
				active_flag = EXCLUDED.active_flag,
				city = EXCLUDED.city,
				neighborhood = EXCLUDED.neighborhood,
				street = EXCLUDED.street,
				street_number = EXCLUDED.street_number,
				person_type = EXCLUDED.person_type,
				monthly_fee = EXCLUDED.monthly_fee,
				synced_at = EXCLUDED.synced_at
		`
		stmt, err := exec.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare customer upsert: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			if r == nil || r.UpstreamID == "" {
				continue
			}
			_, err := stmt.ExecContext(ctx,
				r.UpstreamID,
				uuid.UUID(tenantID),
				r.LegalName,
				r.TaxID,
				r.MobilePhone,
				r.Landline,
				r.Email,
				r.ActiveFlag,
				r.City,
				r.Neighborhood,
				r.Street,
				r.StreetNumber,
				r.PersonType,
				r.MonthlyFee,
				r.SyncedAt,
			)
			if err != nil {
				return fmt.Errorf("upsert customer %s: %w", r.UpstreamID, err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) List(ctx context.Context, tenantID id.TenantID, q models.Query) (*models.ListResult, error) {
	where := `WHERE tenant_id = $1`
	args := []any{uuid.UUID(tenantID)}
	if search := strings.TrimSpace(q.Search); search != "" {
		args = append(args, postgres.ContainsPattern(search))
		where += ` AND (legal_name ILIKE $2 OR tax_id ILIKE $2 OR mobile_phone ILIKE $2 OR landline ILIKE $2)`
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM synced_customers `+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	args = append(args, q.NormalizedLimit())
	query := fmt.Sprintf(`SELECT %s FROM synced_customers %s ORDER BY legal_name ASC, upstream_id ASC LIMIT $%d`,
		customerColumns, where, len(args))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	result := &models.ListResult{Total: total, Records: make([]*models.Customer, 0)}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		result.Records = append(result.Records, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return result, nil
}

func (s *PostgresStore) FindIDByName(ctx context.Context, tenantID id.TenantID, name string) (string, error) {
	if name == "" {
		return "", sentinel.ErrNotFound
	}
	var upstreamID string
	err := s.db.QueryRowContext(ctx, `
		SELECT upstream_id FROM synced_customers
		WHERE tenant_id = $1 AND legal_name = $2
		ORDER BY upstream_id ASC
		LIMIT 1
	`, uuid.UUID(tenantID), name).Scan(&upstreamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("find customer by name: %w", err)
	}
	return upstreamID, nil
}

func (s *PostgresStore) DeleteTenant(ctx context.Context, tenantID id.TenantID) error {
	exec := postgres.Executor(ctx, s.db)
	if _, err := exec.ExecContext(ctx, `DELETE FROM synced_customers WHERE tenant_id = $1`, uuid.UUID(tenantID)); err != nil {
		return fmt.Errorf("delete tenant catalog: %w", err)
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context, tenantID id.TenantID) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM synced_customers WHERE tenant_id = $1`, uuid.UUID(tenantID)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

func scanCustomer(rows *sql.Rows) (*models.Customer, error) {
	var (
		c        models.Customer
		tenantID uuid.UUID
		fee      sql.NullString
	)
	err := rows.Scan(
		&c.UpstreamID,
		&tenantID,
		&c.LegalName,
		&c.TaxID,
		&c.MobilePhone,
		&c.Landline,
		&c.Email,
		&c.ActiveFlag,
		&c.City,
		&c.Neighborhood,
		&c.Street,
		&c.StreetNumber,
		&c.PersonType,
		&fee,
		&c.SyncedAt,
	)
	if err != nil {
		return nil, err
	}
	c.TenantID = id.TenantID(tenantID)
	c.MonthlyFee = fee.String
	return &c, nil
}
