package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ixcbridge/internal/platform/postgres"
	"ixcbridge/internal/tenant/models"
	id "ixcbridge/pkg/domain"
	"ixcbridge/pkg/platform/sentinel"
)

// PostgresStore persists tenant configs. A partial unique index allows one
// active row per owner; Activate flips rows inside a transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const tenantColumns = `id, owner_id, display_name, base_url, credential, active, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, cfg *models.TenantConfig) error {
	_, err := postgres.Executor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO tenant_configs (`+tenantColumns+`)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7)
	`, uuid.UUID(cfg.ID), uuid.UUID(cfg.OwnerID), cfg.DisplayName, cfg.BaseURL, cfg.Credential, cfg.CreatedAt, cfg.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert tenant config: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, cfg *models.TenantConfig) error {
	res, err := postgres.Executor(ctx, s.db).ExecContext(ctx, `
		UPDATE tenant_configs
		SET display_name = $2, base_url = $3, credential = $4, updated_at = $5
		WHERE id = $1
	`, uuid.UUID(cfg.ID), cfg.DisplayName, cfg.BaseURL, cfg.Credential, cfg.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update tenant config: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Delete(ctx context.Context, tenantID id.TenantID) error {
	res, err := postgres.Executor(ctx, s.db).ExecContext(ctx, `DELETE FROM tenant_configs WHERE id = $1`, uuid.UUID(tenantID))
	if err != nil {
		return fmt.Errorf("delete tenant config: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) FindByID(ctx context.Context, tenantID id.TenantID) (*models.TenantConfig, error) {
	row := postgres.Executor(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenant_configs WHERE id = $1`, uuid.UUID(tenantID))
	return scanOne(row)
}

func (s *PostgresStore) ListByOwner(ctx context.Context, owner id.AccountID) ([]*models.TenantConfig, error) {
	rows, err := postgres.Executor(ctx, s.db).QueryContext(ctx,
		`SELECT `+tenantColumns+` FROM tenant_configs WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`,
		uuid.UUID(owner))
	if err != nil {
		return nil, fmt.Errorf("list tenant configs: %w", err)
	}
	defer rows.Close()

	out := make([]*models.TenantConfig, 0)
	for rows.Next() {
		cfg, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant config: %w", err)
		}
		out = append(out, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tenant configs: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Activate(ctx context.Context, owner id.AccountID, tenantID id.TenantID) error {
	return postgres.RunInTx(ctx, s.db, func(ctx context.Context) error {
		exec := postgres.Executor(ctx, s.db)
		if _, err := exec.ExecContext(ctx,
			`UPDATE tenant_configs SET active = FALSE WHERE owner_id = $1 AND active AND id <> $2`,
			uuid.UUID(owner), uuid.UUID(tenantID)); err != nil {
			return fmt.Errorf("deactivate tenant configs: %w", err)
		}
		res, err := exec.ExecContext(ctx,
			`UPDATE tenant_configs SET active = TRUE WHERE id = $1 AND owner_id = $2`,
			uuid.UUID(tenantID), uuid.UUID(owner))
		if err != nil {
			return fmt.Errorf("activate tenant config: %w", err)
		}
		return requireAffected(res)
	})
}

func (s *PostgresStore) Active(ctx context.Context, owner id.AccountID) (*models.TenantConfig, error) {
	row := postgres.Executor(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenant_configs WHERE owner_id = $1 AND active`, uuid.UUID(owner))
	return scanOne(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row scanner) (*models.TenantConfig, error) {
	cfg, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find tenant config: %w", err)
	}
	return cfg, nil
}

func scanTenant(row scanner) (*models.TenantConfig, error) {
	var (
		cfg      models.TenantConfig
		tenantID uuid.UUID
		ownerID  uuid.UUID
	)
	if err := row.Scan(&tenantID, &ownerID, &cfg.DisplayName, &cfg.BaseURL, &cfg.Credential, &cfg.Active, &cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
		return nil, err
	}
	cfg.ID = id.TenantID(tenantID)
	cfg.OwnerID = id.AccountID(ownerID)
	return &cfg, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
