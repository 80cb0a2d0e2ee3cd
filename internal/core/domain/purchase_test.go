package domain_test

import (
	"testing"

	"github.com/perkvault/rewards_backend/internal/apperrors"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePurchase(t *testing.T) {
	employee := domain.Employee{ID: 1, Name: "Ana", DiamondBalance: 100}
	product := domain.Product{ID: 2, Name: "Mug", DiamondPrice: 30, Quantity: 5}

	t.Run("happy path computes aggregate cost", func(t *testing.T) {
		total, err := domain.ValidatePurchase(employee, product, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(60), total)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		_, err := domain.ValidatePurchase(employee, product, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		_, err := domain.ValidatePurchase(employee, product, -3)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("insufficient stock names available and requested", func(t *testing.T) {
		_, err := domain.ValidatePurchase(employee, product, 6)
		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Contains(t, err.Error(), "Available: 5")
		assert.Contains(t, err.Error(), "Requested: 6")
	})

	t.Run("insufficient balance names required and available", func(t *testing.T) {
		poor := domain.Employee{ID: 3, DiamondBalance: 20}
		_, err := domain.ValidatePurchase(poor, product, 1)
		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Contains(t, err.Error(), "Required: 30")
		assert.Contains(t, err.Error(), "Available: 20")
	})

	t.Run("balance exactly equal to cost is allowed", func(t *testing.T) {
		exact := domain.Employee{ID: 4, DiamondBalance: 150}
		total, err := domain.ValidatePurchase(exact, product, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(150), total)
	})
}

func TestRejectPurchaseRestoresInventory(t *testing.T) {
	purchase := domain.Purchase{
		ID:          7,
		EmployeeID:  1,
		ProductID:   2,
		ProductName: "Mug",
		Quantity:    2,
		DiamondCost: 60,
		Status:      domain.PurchaseStatusPending,
	}

	refund, restock := purchase.RejectionRefund()
	assert.Equal(t, int64(60), refund, "rejection credits the full snapshot cost")
	assert.Equal(t, int64(2), restock, "rejection returns the full purchased quantity to stock")

	t.Run("refund tracks the snapshot even when the cost diverges from price times quantity", func(t *testing.T) {
		// The live product price may have changed since creation; only the
		// snapshot taken at creation time matters.
		stale := domain.Purchase{Quantity: 3, DiamondCost: 90, Status: domain.PurchaseStatusPending}
		refund, restock := stale.RejectionRefund()
		assert.Equal(t, int64(90), refund)
		assert.Equal(t, int64(3), restock)
	})
}

func TestEnsurePending(t *testing.T) {
	assert.NoError(t, domain.Purchase{Status: domain.PurchaseStatusPending}.EnsurePending())

	err := domain.Purchase{Status: domain.PurchaseStatusRejected}.EnsurePending()
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "already been rejected")

	err = domain.Purchase{Status: domain.PurchaseStatusAccepted}.EnsurePending()
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "already been accepted")
}
