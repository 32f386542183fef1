package inventory_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekeliveli/stoktakip/internal/domain"
	"github.com/tekeliveli/stoktakip/internal/domain/entity"
	"github.com/tekeliveli/stoktakip/internal/domain/inventory"
)

func TestCurrentStock(t *testing.T) {
	b := entity.StockBalance{
		Material:       entity.Material{InitialStock: 100},
		TotalProduced:  50,
		TotalSold:      20,
		TotalWithdrawn: 30,
	}
	assert.Equal(t, int64(100), inventory.CurrentStock(b))

	assert.Equal(t, int64(7), inventory.CurrentStock(entity.StockBalance{Material: entity.Material{InitialStock: 7}}),
		"sin movimientos el stock actual es el inicial")
}

func TestCheckMovement(t *testing.T) {
	cases := []struct {
		name                    string
		current, produced, sold int64
		wantErr                 error
	}{
		{"entrada y venta válidas", 100, 50, 20, nil},
		{"venta agota exactamente", 10, 0, 10, nil},
		{"venta cubierta por producción del día", 0, 5, 5, nil},
		{"produced negativo", 10, -1, 0, domain.ErrInvalidInput},
		{"sold negativo", 10, 0, -1, domain.ErrInvalidInput},
		{"venta deja stock negativo", 10, 0, 11, domain.ErrInvalidInput},
		{"produced en el tope", 0, inventory.MaxQuantity, 0, nil},
		{"produced sobre el tope", 0, inventory.MaxQuantity + 1, 0, domain.ErrInvalidInput},
		{"sold sobre el tope", inventory.MaxQuantity * 2, 0, inventory.MaxQuantity + 1, domain.ErrInvalidInput},
		{"produced máximo de int64", 0, math.MaxInt64, 0, domain.ErrInvalidInput},
		{"suma desborda int64", math.MaxInt64 - 10, 11, 0, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := inventory.CheckMovement(tc.current, tc.produced, tc.sold)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCheckWithdrawal(t *testing.T) {
	assert.NoError(t, inventory.CheckWithdrawal(130, 30))
	assert.NoError(t, inventory.CheckWithdrawal(130, 130))
	assert.ErrorIs(t, inventory.CheckWithdrawal(130, 200), domain.ErrInsufficientStock)
	assert.ErrorIs(t, inventory.CheckWithdrawal(130, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.CheckWithdrawal(130, -5), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.CheckWithdrawal(math.MaxInt64, math.MaxInt64), domain.ErrInvalidInput)
	assert.NoError(t, inventory.CheckWithdrawal(inventory.MaxQuantity, inventory.MaxQuantity))
}

func TestParseDate(t *testing.T) {
	d, err := inventory.ParseDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2024-01-01", inventory.FormatDate(d))

	_, err = inventory.ParseDate("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.ParseDate("01/02/2024")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseRange(t *testing.T) {
	from, to, err := inventory.ParseRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.True(t, from.Before(to))

	_, _, err = inventory.ParseRange("2024-01-01", "2024-01-01")
	assert.NoError(t, err, "un rango de un solo día es válido")

	_, _, err = inventory.ParseRange("2024-02-01", "2024-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
