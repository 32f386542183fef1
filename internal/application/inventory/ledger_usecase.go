package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/tekeliveli/stoktakip/internal/application/dto"
	"github.com/tekeliveli/stoktakip/internal/domain"
	"github.com/tekeliveli/stoktakip/internal/domain/entity"
	domaininv "github.com/tekeliveli/stoktakip/internal/domain/inventory"
	"github.com/tekeliveli/stoktakip/internal/domain/repository"
)

// LedgerUseCase libro de stock: movimientos fechados de producción/venta por material.
type LedgerUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	movRepo      repository.StockMovementRepository
	queryRepo    repository.StockQueryRepository
	cache        StockCache
}

// NewLedgerUseCase construye el caso de uso. cache puede ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	movRepo repository.StockMovementRepository,
	queryRepo repository.StockQueryRepository,
	cache StockCache,
) *LedgerUseCase {
	if cache == nil {
		cache = NopStockCache{}
	}
	return &LedgerUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		movRepo:      movRepo,
		queryRepo:    queryRepo,
		cache:        cache,
	}
}

// Record agrega un movimiento al libro. Bloquea el material (GetForUpdate), recalcula el stock
// actual dentro de la misma transacción y rechaza la venta que lo dejaría en negativo.
func (uc *LedgerUseCase) Record(ctx context.Context, in dto.RecordStockRequest) (*dto.StockMovementResponse, error) {
	if in.MaterialID <= 0 {
		return nil, fmt.Errorf("%w: material_id requerido", domain.ErrInvalidInput)
	}
	if in.Produced == nil || in.Sold == nil {
		return nil, fmt.Errorf("%w: produced y sold requeridos", domain.ErrInvalidInput)
	}
	date, err := domaininv.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		MaterialID: in.MaterialID,
		Date:       date,
		Produced:   *in.Produced,
		Sold:       *in.Sold,
		CreatedAt:  time.Now().UTC(),
	}
	err = uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		movRepo repository.StockMovementRepository,
		withdrawalRepo repository.WithdrawalRepository,
	) error {
		_, current, err := lockBalance(ctx, materialRepo, movRepo, withdrawalRepo, in.MaterialID)
		if err != nil {
			return err
		}
		if err := domaininv.CheckMovement(current, mov.Produced, mov.Sold); err != nil {
			return err
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	_ = InvalidateStock(ctx, uc.cache, in.MaterialID)
	return toMovementResponse(mov), nil
}

// CurrentStock StockInicial + ΣProducido − ΣVendido − ΣRetirado sobre todo el historial.
func (uc *LedgerUseCase) CurrentStock(ctx context.Context, materialID int64) (int64, error) {
	b, err := uc.queryRepo.BalanceOf(ctx, materialID)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, fmt.Errorf("%w: material %d", domain.ErrNotFound, materialID)
	}
	return domaininv.CurrentStock(*b), nil
}

// ReportBetween totales de producción y venta por material en [startDate, endDate] inclusive.
// Los materiales sin movimientos en el rango no aparecen.
func (uc *LedgerUseCase) ReportBetween(ctx context.Context, startDate, endDate string) ([]dto.ReportLineResponse, error) {
	from, to, err := domaininv.ParseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return uc.report(ctx, from, to)
}

func (uc *LedgerUseCase) report(ctx context.Context, from, to time.Time) ([]dto.ReportLineResponse, error) {
	totals, err := uc.queryRepo.PeriodTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReportLineResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.ReportLineResponse{
			MaterialID:    t.Material.ID,
			Name:          t.Material.Name,
			TotalProduced: t.TotalProduced,
			TotalSold:     t.TotalSold,
			Unit:          t.Material.Unit,
		})
	}
	return out, nil
}

// ListMovements devuelve los movimientos del material en orden de inserción.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, materialID int64) ([]dto.StockMovementResponse, error) {
	m, err := uc.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: material %d", domain.ErrNotFound, materialID)
	}
	list, err := uc.movRepo.ListByMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, mov := range list {
		out = append(out, *toMovementResponse(mov))
	}
	return out, nil
}

// lockBalance bloquea el material y calcula su stock actual con los repos de la transacción.
func lockBalance(
	ctx context.Context,
	materialRepo repository.MaterialRepository,
	movRepo repository.StockMovementRepository,
	withdrawalRepo repository.WithdrawalRepository,
	materialID int64,
) (*entity.Material, int64, error) {
	m, err := materialRepo.GetForUpdate(ctx, materialID)
	if err != nil {
		return nil, 0, err
	}
	if m == nil {
		return nil, 0, fmt.Errorf("%w: material %d", domain.ErrNotFound, materialID)
	}
	produced, sold, err := movRepo.TotalsByMaterial(ctx, materialID)
	if err != nil {
		return nil, 0, err
	}
	withdrawn, err := withdrawalRepo.TotalByMaterial(ctx, materialID)
	if err != nil {
		return nil, 0, err
	}
	current := domaininv.CurrentStock(entity.StockBalance{
		Material:       *m,
		TotalProduced:  produced,
		TotalSold:      sold,
		TotalWithdrawn: withdrawn,
	})
	return m, current, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:         m.ID,
		MaterialID: m.MaterialID,
		Date:       domaininv.FormatDate(m.Date),
		Produced:   m.Produced,
		Sold:       m.Sold,
		CreatedAt:  m.CreatedAt,
	}
}
