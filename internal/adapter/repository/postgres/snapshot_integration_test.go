package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshman7/insight-agent-idp/internal/domain"
	infrapg "github.com/harshman7/insight-agent-idp/internal/infrastructure/postgres"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

func migrationsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations")
}

func TestSnapshotRepositoryAgainstPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, infrapg.RunMigrations(dsn, migrationsDir(t), zerolog.Nop()))

	pool, err := infrapg.NewPool(ctx, dsn, 2, 0)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, "TRUNCATE transactions, documents")
	require.NoError(t, err)

	repo := NewSnapshotRepository(pool, zerolog.Nop(), nil)
	march := civil.Date{Year: 2024, Month: time.March, Day: 10}
	april := civil.Date{Year: 2024, Month: time.April, Day: 2}
	inv := "INV-1"

	require.NoError(t, repo.ImportSnapshot(ctx, &domain.Snapshot{
		Documents: []domain.Document{{ID: "d1", Filename: "march.pdf", Type: domain.DocumentTypeInvoice}},
		Transactions: []domain.Transaction{
			{ID: "t1", DocumentID: "d1", Vendor: "Acme", Amount: decimal.RequireFromString("120.50"), Date: &march, Type: domain.DocumentTypeInvoice, InvoiceNumber: &inv},
			{ID: "t2", Vendor: "Acme", Amount: decimal.RequireFromString("80"), Date: &april, Type: domain.DocumentTypeReceipt},
			{ID: "t3", Vendor: "Globex", AmountMissing: true, Type: domain.DocumentTypeReceipt},
		},
	}))

	snap, err := repo.ReadSnapshot(ctx, usecase.SnapshotFilter{})
	require.NoError(t, err)
	require.Len(t, snap.Transactions, 3)
	require.Len(t, snap.Documents, 1)
	assert.Equal(t, []string{"t1"}, snap.Documents[0].TransactionIDs)
	assert.True(t, snap.Transactions[0].Amount.Equal(decimal.RequireFromString("120.50")))
	assert.True(t, snap.Transactions[2].AmountMissing)

	ranged, err := repo.ReadSnapshot(ctx, usecase.SnapshotFilter{Range: domain.DateRange{From: &april}})
	require.NoError(t, err)
	require.Len(t, ranged.Transactions, 1)
	assert.Equal(t, "t2", ranged.Transactions[0].ID)
}
