//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"ixcbridge/pkg/testutil/containers"
)

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	suite.Run(t, &StoreSuite{newStore: func() catalogStore {
		require.NoError(t, pg.TruncateTables(context.Background(), "synced_customers"))
		return NewPostgres(pg.DB)
	}})
}
