//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ixcbridge/internal/platform/config"
	"ixcbridge/internal/platform/postgres"
	"ixcbridge/pkg/testutil/containers"
)

func TestOpenWithPgxDriver(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	pg := containers.GetManager().GetPostgres(t)
	require.NoError(t, pg.TruncateTables(ctx, "tenant_configs"))

	db, err := postgres.Open(ctx, config.Database{URL: pg.DSN, Driver: "pgx", MaxOpenConns: 2, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	insert := func(ctx context.Context, tenantID uuid.UUID) error {
		now := time.Now().UTC()
		_, err := postgres.Executor(ctx, db).ExecContext(ctx, `
			INSERT INTO tenant_configs (id, owner_id, display_name, base_url, credential, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			tenantID, uuid.New(), "pgx "+tenantID.String(), "https://ixc.example", "1:key", now, now)
		return err
	}

	tenantID := uuid.New()
	require.NoError(t, postgres.RunInTx(ctx, db, func(ctx context.Context) error {
		return insert(ctx, tenantID)
	}))

	err = insert(ctx, tenantID)
	require.Error(t, err)
	assert.True(t, postgres.IsUniqueViolation(err))
}
