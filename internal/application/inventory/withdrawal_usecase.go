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

// WithdrawalUseCase salidas manuales de stock fuera del flujo producción/venta.
type WithdrawalUseCase struct {
	txRunner       TxRunner
	materialRepo   repository.MaterialRepository
	withdrawalRepo repository.WithdrawalRepository
	cache          StockCache
}

// NewWithdrawalUseCase construye el caso de uso. cache puede ser nil.
func NewWithdrawalUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	withdrawalRepo repository.WithdrawalRepository,
	cache StockCache,
) *WithdrawalUseCase {
	if cache == nil {
		cache = NopStockCache{}
	}
	return &WithdrawalUseCase{
		txRunner:       txRunner,
		materialRepo:   materialRepo,
		withdrawalRepo: withdrawalRepo,
		cache:          cache,
	}
}

// Withdraw bloquea el material, verifica StockActual >= Cantidad y registra la salida.
// Si falla, no se escribe nada.
func (uc *WithdrawalUseCase) Withdraw(ctx context.Context, in dto.WithdrawRequest) (*dto.WithdrawResultResponse, error) {
	if in.MaterialID <= 0 {
		return nil, fmt.Errorf("%w: material_id requerido", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser > 0", domain.ErrInvalidInput)
	}

	w := &entity.Withdrawal{
		MaterialID: in.MaterialID,
		Quantity:   in.Quantity,
		CreatedAt:  time.Now().UTC(),
	}
	var remaining int64
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		movRepo repository.StockMovementRepository,
		withdrawalRepo repository.WithdrawalRepository,
	) error {
		_, current, err := lockBalance(ctx, materialRepo, movRepo, withdrawalRepo, in.MaterialID)
		if err != nil {
			return err
		}
		if err := domaininv.CheckWithdrawal(current, in.Quantity); err != nil {
			return err
		}
		if err := withdrawalRepo.Create(ctx, w); err != nil {
			return err
		}
		remaining = current - in.Quantity
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = InvalidateStock(ctx, uc.cache, in.MaterialID)

	return &dto.WithdrawResultResponse{
		Message:            "salida de stock registrada",
		WithdrawalResponse: *toWithdrawalResponse(w),
		CurrentStock:       remaining,
	}, nil
}

// ListWithdrawals devuelve las salidas del material en orden de registro.
func (uc *WithdrawalUseCase) ListWithdrawals(ctx context.Context, materialID int64) ([]dto.WithdrawalResponse, error) {
	m, err := uc.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: material %d", domain.ErrNotFound, materialID)
	}
	list, err := uc.withdrawalRepo.ListByMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WithdrawalResponse, 0, len(list))
	for _, w := range list {
		out = append(out, *toWithdrawalResponse(w))
	}
	return out, nil
}

func toWithdrawalResponse(w *entity.Withdrawal) *dto.WithdrawalResponse {
	return &dto.WithdrawalResponse{
		ID:         w.ID,
		MaterialID: w.MaterialID,
		Quantity:   w.Quantity,
		CreatedAt:  w.CreatedAt,
	}
}
