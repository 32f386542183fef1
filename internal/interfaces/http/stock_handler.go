package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tekeliveli/stoktakip/internal/application/dto"
	"github.com/tekeliveli/stoktakip/internal/application/inventory"
	"github.com/tekeliveli/stoktakip/pkg/logger"
)

// StockHandler movimientos, salidas y consultas de stock actual.
type StockHandler struct {
	ledger     *inventory.LedgerUseCase
	withdrawal *inventory.WithdrawalUseCase
	query      *inventory.StockQueryUseCase
	log        *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(
	ledger *inventory.LedgerUseCase,
	withdrawal *inventory.WithdrawalUseCase,
	query *inventory.StockQueryUseCase,
	log *logger.Logger,
) *StockHandler {
	return &StockHandler{ledger: ledger, withdrawal: withdrawal, query: query, log: log}
}

// Record godoc
// @Summary      Registrar producción/venta
// @Description  Agrega un movimiento fechado. Una venta que deje el stock en negativo se rechaza.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RecordStockRequest  true  "material_id, date (YYYY-MM-DD), produced, sold"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /stock [post]
func (h *StockHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.Record(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Withdraw godoc
// @Summary      Salida manual de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body      dto.WithdrawRequest  true  "material_id, quantity"
// @Success      200   {object}  dto.WithdrawResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /stock/withdraw [post]
func (h *StockHandler) Withdraw(c *fiber.Ctx) error {
	var in dto.WithdrawRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.withdrawal.Withdraw(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// All godoc
// @Summary      Stock actual de todos los materiales
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.StockLevelResponse
// @Router       /stock/all [get]
func (h *StockHandler) All(c *fiber.Ctx) error {
	list, err := h.query.AllCurrentStock(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Current godoc
// @Summary      Stock actual de un material
// @Tags         stock
// @Produce      json
// @Param        material_id  path      int  true  "ID del material"
// @Success      200          {object}  dto.MaterialStockResponse
// @Failure      404          {object}  dto.ErrorResponse
// @Router       /stock/{material_id} [get]
func (h *StockHandler) Current(c *fiber.Ctx) error {
	id, ok := paramID(c, "material_id")
	if !ok {
		return invalidID(c, "material_id")
	}
	out, err := h.query.CurrentStockOf(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Movimientos de un material
// @Tags         stock
// @Produce      json
// @Param        material_id  path     int  true  "ID del material"
// @Success      200          {array}  dto.StockMovementResponse
// @Failure      404          {object} dto.ErrorResponse
// @Router       /stock/{material_id}/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	id, ok := paramID(c, "material_id")
	if !ok {
		return invalidID(c, "material_id")
	}
	list, err := h.ledger.ListMovements(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Withdrawals godoc
// @Summary      Salidas de un material
// @Tags         stock
// @Produce      json
// @Param        material_id  path     int  true  "ID del material"
// @Success      200          {array}  dto.WithdrawalResponse
// @Failure      404          {object} dto.ErrorResponse
// @Router       /stock/{material_id}/withdrawals [get]
func (h *StockHandler) Withdrawals(c *fiber.Ctx) error {
	id, ok := paramID(c, "material_id")
	if !ok {
		return invalidID(c, "material_id")
	}
	list, err := h.withdrawal.ListWithdrawals(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}
