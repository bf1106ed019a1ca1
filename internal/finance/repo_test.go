package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	"github.com/dispatchly/dispatchly-backend/pkg/enums"
)

func setupFinanceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS money_transfers (
  id TEXT PRIMARY KEY,
  delivery_man_id TEXT,
  merchant_id TEXT,
  kind TEXT NOT NULL,
  amount_cents INTEGER NOT NULL,
  reference TEXT NOT NULL UNIQUE,
  note TEXT,
  transfer_date DATETIME NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func createTransfer(t *testing.T, repo Repository, deliveryManID uuid.UUID, kind enums.TransferKind, amountCents int64) *models.MoneyTransfer {
	t.Helper()

	transfer := &models.MoneyTransfer{
		ID:            uuid.New(),
		DeliveryManID: &deliveryManID,
		Kind:          kind,
		AmountCents:   amountCents,
		Reference:     string(kind) + "-" + uuid.NewString(),
		TransferDate:  time.Now().UTC(),
	}
	created, err := repo.CreateTransfer(context.Background(), transfer)
	require.NoError(t, err)
	return created
}

func TestRepositorySumByCourier(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewRepository(db)

	courierID := uuid.New()
	otherID := uuid.New()
	createTransfer(t, repo, courierID, enums.TransferKindEarnings, 1500)
	createTransfer(t, repo, courierID, enums.TransferKindEarnings, 500)
	createTransfer(t, repo, courierID, enums.TransferKindCOD, 10000)
	createTransfer(t, repo, otherID, enums.TransferKindEarnings, 9999)

	sum, err := repo.SumByCourier(context.Background(), courierID, enums.TransferKindEarnings)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), sum)

	sum, err = repo.SumByCourier(context.Background(), courierID, enums.TransferKindCOD)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), sum)
}

func TestRepositorySumByCourierNoRows(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewRepository(db)

	sum, err := repo.SumByCourier(context.Background(), uuid.New(), enums.TransferKindEarnings)
	require.NoError(t, err)
	assert.Zero(t, sum)
}

func TestRepositoryRejectsDuplicateReference(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewRepository(db)

	courierID := uuid.New()
	transfer := &models.MoneyTransfer{
		ID:            uuid.New(),
		DeliveryManID: &courierID,
		Kind:          enums.TransferKindEarnings,
		AmountCents:   1000,
		Reference:     "earnings-fixed-ref",
		TransferDate:  time.Now().UTC(),
	}
	_, err := repo.CreateTransfer(context.Background(), transfer)
	require.NoError(t, err)

	dup := &models.MoneyTransfer{
		ID:            uuid.New(),
		DeliveryManID: &courierID,
		Kind:          enums.TransferKindEarnings,
		AmountCents:   2000,
		Reference:     "earnings-fixed-ref",
		TransferDate:  time.Now().UTC(),
	}
	_, err = repo.CreateTransfer(context.Background(), dup)
	assert.Error(t, err)
}

func TestRepositoryListByCourier(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewRepository(db)

	courierID := uuid.New()
	createTransfer(t, repo, courierID, enums.TransferKindEarnings, 1000)
	createTransfer(t, repo, courierID, enums.TransferKindCOD, 5000)
	createTransfer(t, repo, uuid.New(), enums.TransferKindEarnings, 7777)

	list, err := repo.ListByCourier(context.Background(), courierID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
