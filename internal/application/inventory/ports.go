package inventory

import (
	"context"
	"time"

	"github.com/tekeliveli/stoktakip/internal/application/dto"
	"github.com/tekeliveli/stoktakip/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del libro: un escritor a la vez por material (GetForUpdate) y sin lecturas a medias.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		movRepo repository.StockMovementRepository,
		withdrawalRepo repository.WithdrawalRepository,
	) error) error
}

// StockCache caché del stock actual por material. Los errores se tratan como fallo de caché.
//
// Cada material lleva un contador de versión: Invalidate lo incrementa y borra la entrada,
// y SetIfVersion solo escribe si el contador no cambió desde Version. Así un lector que
// calculó el stock antes de una escritura confirmada no puede reinstalar el valor viejo.
type StockCache interface {
	Get(ctx context.Context, materialID int64) (stock int64, ok bool, err error)
	Version(ctx context.Context, materialID int64) (int64, error)
	SetIfVersion(ctx context.Context, materialID, version, stock int64) (stored bool, err error)
	Invalidate(ctx context.Context, materialID int64) error
}

// NopStockCache caché desactivado (siempre miss).
type NopStockCache struct{}

func (NopStockCache) Get(context.Context, int64) (int64, bool, error) { return 0, false, nil }
func (NopStockCache) Version(context.Context, int64) (int64, error)   { return 0, nil }
func (NopStockCache) SetIfVersion(context.Context, int64, int64, int64) (bool, error) {
	return false, nil
}
func (NopStockCache) Invalidate(context.Context, int64) error { return nil }

// invalidateAttempts reintentos de Invalidate tras una escritura confirmada.
const invalidateAttempts = 3

// InvalidateStock invalida la entrada del material con reintentos. Se llama tras una
// escritura confirmada, así que el error no se devuelve al cliente; el adaptador lo registra.
func InvalidateStock(ctx context.Context, cache StockCache, materialID int64) error {
	var err error
	for i := 0; i < invalidateAttempts; i++ {
		if err = cache.Invalidate(ctx, materialID); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			break
		}
	}
	return err
}

// ReportPDFGenerator genera el PDF del reporte de producción/venta y stock actual.
type ReportPDFGenerator interface {
	GenerateStockReportPDF(
		ctx context.Context,
		from, to time.Time,
		lines []dto.ReportLineResponse,
		levels []dto.StockLevelResponse,
	) ([]byte, error)
}
