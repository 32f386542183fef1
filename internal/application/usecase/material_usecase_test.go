package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekeliveli/stoktakip/internal/application/dto"
	"github.com/tekeliveli/stoktakip/internal/application/inventory"
	"github.com/tekeliveli/stoktakip/internal/application/usecase"
	"github.com/tekeliveli/stoktakip/internal/domain"
	domaininv "github.com/tekeliveli/stoktakip/internal/domain/inventory"
	"github.com/tekeliveli/stoktakip/internal/infrastructure/sqlite"
)

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (*usecase.MaterialUseCase, *inventory.WithdrawalUseCase) {
	t.Helper()
	store, err := sqlite.Open(context.Background(), sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	txRunner := sqlite.NewTxRunner(store)
	materialRepo := sqlite.NewMaterialRepository(store.DB())
	return usecase.NewMaterialUseCase(materialRepo, txRunner, nil),
		inventory.NewWithdrawalUseCase(txRunner, materialRepo, sqlite.NewWithdrawalRepository(store.DB()), nil)
}

func TestMaterial_RegisterGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)

	created, err := uc.Register(ctx, dto.CreateMaterialRequest{
		Name: "  Bolt ", Description: "M8", InitialStock: ptr(int64(100)), Unit: "pcs",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Bolt", created.Name, "se recortan espacios")

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, created.InitialStock, got.InitialStock)
	assert.Equal(t, created.Unit, got.Unit)
	assert.Equal(t, created.CreatedAt.UnixMilli(), got.CreatedAt.UnixMilli())

	second, err := uc.Register(ctx, dto.CreateMaterialRequest{Name: "Nut", InitialStock: ptr(int64(0)), Unit: "pcs"})
	require.NoError(t, err)
	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestMaterial_RegisterValidacion(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)

	cases := map[string]dto.CreateMaterialRequest{
		"sin initial_stock":           {Name: "X", Unit: "kg"},
		"initial_stock < 0":           {Name: "X", Unit: "kg", InitialStock: ptr(int64(-5))},
		"initial_stock sobre el tope": {Name: "X", Unit: "kg", InitialStock: ptr(domaininv.MaxQuantity + 1)},
		"sin nombre":                  {Name: "   ", Unit: "kg", InitialStock: ptr(int64(1))},
		"sin unidad":                  {Name: "X", InitialStock: ptr(int64(1))},
		"nombre largo":                {Name: strings.Repeat("a", 81), Unit: "kg", InitialStock: ptr(int64(1))},
		"descripción larga":           {Name: "X", Description: strings.Repeat("d", 201), Unit: "kg", InitialStock: ptr(int64(1))},
		"unidad larga":                {Name: "X", Unit: strings.Repeat("u", 21), InitialStock: ptr(int64(1))},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Register(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMaterial_GetInexistente(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaterial_Update(t *testing.T) {
	ctx := context.Background()
	uc, withdrawals := setup(t)

	m, err := uc.Register(ctx, dto.CreateMaterialRequest{Name: "Bolt", InitialStock: ptr(int64(100)), Unit: "pcs"})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, m.ID, dto.UpdateMaterialRequest{Description: ptr("acero"), Unit: ptr("box")})
	require.NoError(t, err)
	assert.Equal(t, "Bolt", updated.Name)
	assert.Equal(t, "acero", updated.Description)
	assert.Equal(t, "box", updated.Unit)

	_, err = withdrawals.Withdraw(ctx, dto.WithdrawRequest{MaterialID: m.ID, Quantity: 60})
	require.NoError(t, err)

	_, err = uc.Update(ctx, m.ID, dto.UpdateMaterialRequest{InitialStock: ptr(int64(50))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "100−60 retirados: bajar el inicial a 50 dejaría −10")

	updated, err = uc.Update(ctx, m.ID, dto.UpdateMaterialRequest{InitialStock: ptr(int64(60))})
	require.NoError(t, err)
	assert.Equal(t, int64(60), updated.InitialStock)

	_, err = uc.Update(ctx, m.ID, dto.UpdateMaterialRequest{Name: ptr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, 999, dto.UpdateMaterialRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
