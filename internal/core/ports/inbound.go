package ports

import (
	"context"

	"github.com/kirillkom/invoice-service/internal/core/domain"
)

// InvoiceSubmitter is the inbound contract for driving a submission through
// the create/render/store/notify lifecycle.
type InvoiceSubmitter interface {
	Submit(ctx context.Context, in domain.NewInvoice) (*domain.Invoice, error)
}

// InvoiceLister is the inbound read model for the invoice ledger.
type InvoiceLister interface {
	List(ctx context.Context) ([]domain.Invoice, error)
}

// InvoiceDownloader resolves an invoice id to its stored PDF bytes.
type InvoiceDownloader interface {
	Download(ctx context.Context, id int64) (*domain.Invoice, []byte, error)
}

// LedgerReporter produces the exportable ledger report.
type LedgerReporter interface {
	ExportLedger(ctx context.Context) ([]byte, error)
}
