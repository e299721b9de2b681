package usecase

import (
	"context"
	"fmt"

	"github.com/kirillkom/invoice-service/internal/core/ports"
)

type ExportInvoicesUseCase struct {
	repo     ports.InvoiceRepository
	exporter ports.LedgerExporter
}

func NewExportInvoicesUseCase(repo ports.InvoiceRepository, exporter ports.LedgerExporter) *ExportInvoicesUseCase {
	return &ExportInvoicesUseCase{repo: repo, exporter: exporter}
}

// ExportLedger renders the full invoice ledger, most recent first, into a
// spreadsheet report.
func (uc *ExportInvoicesUseCase) ExportLedger(ctx context.Context) ([]byte, error) {
	invoices, err := uc.repo.ListRecent(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices for export: %w", err)
	}

	report, err := uc.exporter.Export(ctx, invoices)
	if err != nil {
		return nil, fmt.Errorf("export ledger: %w", err)
	}
	return report, nil
}
