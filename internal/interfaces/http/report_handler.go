package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tekeliveli/stoktakip/internal/application/inventory"
	"github.com/tekeliveli/stoktakip/pkg/logger"
)

// ReportHandler reporte de producción/venta por período (JSON y PDF).
type ReportHandler struct {
	ledger *inventory.LedgerUseCase
	pdf    *inventory.ReportPDFUseCase
	log    *logger.Logger
}

// NewReportHandler construye el handler. pdf puede ser nil (exportación desactivada).
func NewReportHandler(ledger *inventory.LedgerUseCase, pdf *inventory.ReportPDFUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{ledger: ledger, pdf: pdf, log: log}
}

// Report godoc
// @Summary      Reporte de producción y venta
// @Description  Totales por material con movimientos en [start_date, end_date]. Las salidas no se incluyen.
// @Tags         report
// @Produce      json
// @Param        start_date  query     string  true  "YYYY-MM-DD"
// @Param        end_date    query     string  true  "YYYY-MM-DD"
// @Success      200         {array}   dto.ReportLineResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /report [get]
func (h *ReportHandler) Report(c *fiber.Ctx) error {
	lines, err := h.ledger.ReportBetween(c.UserContext(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(lines)
}

// PDF godoc
// @Summary      Reporte en PDF
// @Tags         report
// @Produce      application/pdf
// @Param        start_date  query     string  true  "YYYY-MM-DD"
// @Param        end_date    query     string  true  "YYYY-MM-DD"
// @Success      200         {file}    binary
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /report/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return fiber.ErrNotFound
	}
	doc, filename, err := h.pdf.Generate(c.UserContext(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(doc)
}
