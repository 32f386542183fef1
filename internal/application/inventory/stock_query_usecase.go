package inventory

import (
	"context"
	"fmt"

	"github.com/tekeliveli/stoktakip/internal/application/dto"
	"github.com/tekeliveli/stoktakip/internal/domain"
	domaininv "github.com/tekeliveli/stoktakip/internal/domain/inventory"
	"github.com/tekeliveli/stoktakip/internal/domain/repository"
)

// StockQueryUseCase consultas de stock actual (todos los materiales o uno).
type StockQueryUseCase struct {
	materialRepo repository.MaterialRepository
	queryRepo    repository.StockQueryRepository
	cache        StockCache
}

// NewStockQueryUseCase construye el caso de uso. cache puede ser nil.
func NewStockQueryUseCase(
	materialRepo repository.MaterialRepository,
	queryRepo repository.StockQueryRepository,
	cache StockCache,
) *StockQueryUseCase {
	if cache == nil {
		cache = NopStockCache{}
	}
	return &StockQueryUseCase{materialRepo: materialRepo, queryRepo: queryRepo, cache: cache}
}

// AllCurrentStock una fila por material registrado, en orden de registro.
func (uc *StockQueryUseCase) AllCurrentStock(ctx context.Context) ([]dto.StockLevelResponse, error) {
	balances, err := uc.queryRepo.Balances(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockLevelResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, dto.StockLevelResponse{
			MaterialID:   b.Material.ID,
			Name:         b.Material.Name,
			CurrentStock: domaininv.CurrentStock(b),
			Unit:         b.Material.Unit,
		})
	}
	return out, nil
}

// CurrentStockOf stock actual de un material. Consulta primero el caché; en caso de miss
// lo calcula desde el libro y lo guarda solo si ninguna escritura invalidó el material
// mientras tanto (la versión se lee antes de BalanceOf).
func (uc *StockQueryUseCase) CurrentStockOf(ctx context.Context, materialID int64) (*dto.MaterialStockResponse, error) {
	m, err := uc.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: material %d", domain.ErrNotFound, materialID)
	}
	resp := &dto.MaterialStockResponse{MaterialID: m.ID, Material: m.Name, Unit: m.Unit}

	if stock, ok, err := uc.cache.Get(ctx, materialID); err == nil && ok {
		resp.CurrentStock = stock
		return resp, nil
	}

	version, verErr := uc.cache.Version(ctx, materialID)

	b, err := uc.queryRepo.BalanceOf(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: material %d", domain.ErrNotFound, materialID)
	}
	resp.CurrentStock = domaininv.CurrentStock(*b)
	if verErr == nil {
		_, _ = uc.cache.SetIfVersion(ctx, materialID, version, resp.CurrentStock)
	}
	return resp, nil
}
