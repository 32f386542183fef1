package dto

import "time"

// RecordStockRequest body para POST /stock.
type RecordStockRequest struct {
	MaterialID int64  `json:"material_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	Produced   *int64 `json:"produced"`
	Sold       *int64 `json:"sold"`
}

// StockMovementResponse salida de un movimiento producción/venta.
type StockMovementResponse struct {
	ID         int64     `json:"id"`
	MaterialID int64     `json:"material_id"`
	Date       string    `json:"date"`
	Produced   int64     `json:"produced"`
	Sold       int64     `json:"sold"`
	CreatedAt  time.Time `json:"created_at"`
}

// WithdrawRequest body para POST /stock/withdraw.
type WithdrawRequest struct {
	MaterialID int64 `json:"material_id"`
	Quantity   int64 `json:"quantity"`
}

// WithdrawalResponse salida de una salida manual registrada.
type WithdrawalResponse struct {
	ID         int64     `json:"id"`
	MaterialID int64     `json:"material_id"`
	Quantity   int64     `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

// WithdrawResultResponse confirmación de POST /stock/withdraw con el stock resultante.
type WithdrawResultResponse struct {
	Message string `json:"message"`
	WithdrawalResponse
	CurrentStock int64 `json:"current_stock"`
}

// StockLevelResponse una fila de GET /stock/all.
type StockLevelResponse struct {
	MaterialID   int64  `json:"material_id"`
	Name         string `json:"name"`
	CurrentStock int64  `json:"current_stock"`
	Unit         string `json:"unit"`
}

// MaterialStockResponse salida de GET /stock/:material_id.
type MaterialStockResponse struct {
	MaterialID   int64  `json:"material_id"`
	Material     string `json:"material"`
	CurrentStock int64  `json:"current_stock"`
	Unit         string `json:"unit"`
}

// ReportLineResponse una fila de GET /report.
type ReportLineResponse struct {
	MaterialID    int64  `json:"material_id"`
	Name          string `json:"name"`
	TotalProduced int64  `json:"total_produced"`
	TotalSold     int64  `json:"total_sold"`
	Unit          string `json:"unit"`
}
