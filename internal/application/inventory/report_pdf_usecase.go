package inventory

import (
	"context"
	"fmt"

	domaininv "github.com/tekeliveli/stoktakip/internal/domain/inventory"
)

// ReportPDFUseCase exporta en PDF el reporte de un rango de fechas junto con el stock actual.
type ReportPDFUseCase struct {
	ledger    *LedgerUseCase
	query     *StockQueryUseCase
	generator ReportPDFGenerator
}

// NewReportPDFUseCase construye el caso de uso.
func NewReportPDFUseCase(ledger *LedgerUseCase, query *StockQueryUseCase, generator ReportPDFGenerator) *ReportPDFUseCase {
	return &ReportPDFUseCase{ledger: ledger, query: query, generator: generator}
}

// Generate devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReportPDFUseCase) Generate(ctx context.Context, startDate, endDate string) ([]byte, string, error) {
	from, to, err := domaininv.ParseRange(startDate, endDate)
	if err != nil {
		return nil, "", err
	}
	lines, err := uc.ledger.report(ctx, from, to)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: reporte: %w", err)
	}
	levels, err := uc.query.AllCurrentStock(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: stock actual: %w", err)
	}
	doc, err := uc.generator.GenerateStockReportPDF(ctx, from, to, lines, levels)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("reporte_stock_%s_%s.pdf", domaininv.FormatDate(from), domaininv.FormatDate(to))
	return doc, filename, nil
}
