package inventory

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tekeliveli/stoktakip/internal/domain"
	"github.com/tekeliveli/stoktakip/internal/domain/entity"
)

// DateLayout formato de fecha calendario usado en el libro y en la API.
const DateLayout = "2006-01-02"

// MaxQuantity tope de initial_stock, produced, sold y quantity. Mantiene las sumas del
// libro lejos del desbordamiento de int64 (BIGINT en PostgreSQL, INTEGER en SQLite).
const MaxQuantity int64 = 1_000_000_000_000

// CurrentStock implementa la regla del libro de stock (servicio de dominio).
// StockActual = StockInicial + ΣProducido − ΣVendido − ΣRetirado
func CurrentStock(b entity.StockBalance) int64 {
	return b.Material.InitialStock + b.TotalProduced - b.TotalSold - b.TotalWithdrawn
}

// CheckMovement valida un movimiento producción/venta contra el stock actual.
// La venta no puede dejar el stock en negativo.
func CheckMovement(current, produced, sold int64) error {
	if produced < 0 || sold < 0 {
		return fmt.Errorf("%w: produced y sold deben ser >= 0", domain.ErrInvalidInput)
	}
	if produced > MaxQuantity || sold > MaxQuantity {
		return fmt.Errorf("%w: produced y sold no pueden superar %d", domain.ErrInvalidInput, MaxQuantity)
	}
	if current > math.MaxInt64-produced {
		return fmt.Errorf("%w: produced %d desborda el stock actual %d", domain.ErrInvalidInput, produced, current)
	}
	if current+produced-sold < 0 {
		return fmt.Errorf("%w: la venta (%d) deja el stock en negativo (disponible %d)",
			domain.ErrInvalidInput, sold, current+produced)
	}
	return nil
}

// CheckWithdrawal valida una salida manual contra el stock actual.
func CheckWithdrawal(current, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity debe ser > 0", domain.ErrInvalidInput)
	}
	if quantity > MaxQuantity {
		return fmt.Errorf("%w: quantity no puede superar %d", domain.ErrInvalidInput, MaxQuantity)
	}
	if quantity > current {
		return fmt.Errorf("%w: solicitado %d, disponible %d", domain.ErrInsufficientStock, quantity, current)
	}
	return nil
}

// ParseDate interpreta una fecha YYYY-MM-DD como medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: fecha requerida", domain.ErrInvalidInput)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q no tiene formato YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return t, nil
}

// ParseRange interpreta un rango [start, end] inclusivo; start no puede ser posterior a end.
func ParseRange(start, end string) (time.Time, time.Time, error) {
	from, err := ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date posterior a end_date", domain.ErrInvalidInput)
	}
	return from, to, nil
}

// FormatDate devuelve la fecha en DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
