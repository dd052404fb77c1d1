package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekhata-app/ekhata/internal/model"
)

func seedPurchase(t *testing.T, s interface {
	Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
}, customerID string) *model.Transaction {
	t.Helper()
	txn, err := s.Create(context.Background(), &model.Transaction{
		CustomerID: customerID,
		Type:       model.TransactionPurchase,
		Amount:     150,
		Date:       "2024-01-01",
	})
	require.NoError(t, err)
	return txn
}

func TestProductRepository_CreateMany(t *testing.T) {
	s := setupTestStore(t)
	customers := NewCustomerRepository(s)
	transactions := NewTransactionRepository(s)
	repo := NewProductRepository(s)
	ctx := context.Background()

	customer, err := customers.Create(ctx, &model.Customer{Name: "Ram"})
	require.NoError(t, err)
	txn := seedPurchase(t, transactions, customer.ID)

	created, err := repo.CreateMany(ctx, txn.ID, []model.ProductInput{
		{ProductName: "Rice", Quantity: "5kg", Amount: 100},
		{ProductName: "Oil", Quantity: "1l", Amount: 50},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.NotEmpty(t, created[0].ID)
	assert.Equal(t, txn.ID, created[0].TransactionID)

	t.Run("listed in creation order", func(t *testing.T) {
		items, err := repo.ListForTransaction(ctx, txn.ID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Rice", items[0].ProductName)
		assert.Equal(t, "Oil", items[1].ProductName)
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		created, err := repo.CreateMany(ctx, txn.ID, nil)
		require.NoError(t, err)
		assert.Empty(t, created)
	})
}

func TestProductRepository_Delete(t *testing.T) {
	s := setupTestStore(t)
	customers := NewCustomerRepository(s)
	transactions := NewTransactionRepository(s)
	repo := NewProductRepository(s)
	ctx := context.Background()

	customer, err := customers.Create(ctx, &model.Customer{Name: "Ram"})
	require.NoError(t, err)
	txn := seedPurchase(t, transactions, customer.ID)

	created, err := repo.CreateMany(ctx, txn.ID, []model.ProductInput{
		{ProductName: "Rice", Amount: 100},
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created[0].ID))

	items, err := repo.ListForTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, repo.Delete(ctx, created[0].ID), ErrProductNotFound)
}
