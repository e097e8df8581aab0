package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSale(t *testing.T) {
	t.Parallel()

	carID := uuid.New()

	t.Run("creates valid sale defaulting to completed", func(t *testing.T) {
		t.Parallel()

		sale, err := NewSale("CUST1", "EMP1", carID, 19500, "")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, sale.ID)
		assert.Equal(t, SaleStatusCompleted, sale.Status)
		assert.False(t, sale.SaleDate.IsZero())
	})

	t.Run("accepts explicit status", func(t *testing.T) {
		t.Parallel()

		sale, err := NewSale("CUST1", "EMP1", carID, 19500, SaleStatusPending)
		require.NoError(t, err)

		assert.Equal(t, SaleStatusPending, sale.Status)
	})

	t.Run("rejects empty customer", func(t *testing.T) {
		t.Parallel()

		_, err := NewSale("", "EMP1", carID, 19500, "")
		assert.ErrorIs(t, err, ErrEmptySaleCustomer)
	})

	t.Run("rejects empty employee", func(t *testing.T) {
		t.Parallel()

		_, err := NewSale("CUST1", "", carID, 19500, "")
		assert.ErrorIs(t, err, ErrEmptySaleEmployee)
	})

	t.Run("rejects nil car ID", func(t *testing.T) {
		t.Parallel()

		_, err := NewSale("CUST1", "EMP1", uuid.Nil, 19500, "")
		assert.ErrorIs(t, err, ErrEmptySaleCar)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		t.Parallel()

		_, err := NewSale("CUST1", "EMP1", carID, -1, "")
		assert.ErrorIs(t, err, ErrInvalidSalePrice)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()

		_, err := NewSale("CUST1", "EMP1", carID, 19500, SaleStatus("REFUNDED"))
		assert.ErrorIs(t, err, ErrInvalidSaleStatus)
	})
}
