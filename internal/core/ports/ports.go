package ports

import (
	"context"
	"io"

	"github.com/kirillkom/invoice-service/internal/core/domain"
)

// InvoiceRepository persists and reads invoice state.
type InvoiceRepository interface {
	Create(ctx context.Context, in domain.NewInvoice) (*domain.Invoice, error)
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	Update(ctx context.Context, id int64, patch domain.InvoicePatch) (*domain.Invoice, error)
	ListRecent(ctx context.Context) ([]domain.Invoice, error)
}

// ArtifactStore writes rendered documents under collision-resistant keys and
// resolves a key back to its bytes.
type ArtifactStore interface {
	Save(ctx context.Context, data io.Reader) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// InvoiceRenderer turns an invoice record into a print-ready PDF byte stream.
type InvoiceRenderer interface {
	Render(ctx context.Context, inv *domain.Invoice) ([]byte, error)
}

// Notifier delivers the sent-invoice notification to the client. Failures are
// reported but outcomes never influence the already committed invoice status.
type Notifier interface {
	InvoiceSent(ctx context.Context, n domain.Notification) error
}

// NoticeStore holds at most one pending message per caller session. Take
// consumes the message: a second read returns empty.
type NoticeStore interface {
	Put(ctx context.Context, sessionID, message string) error
	Take(ctx context.Context, sessionID string) (string, error)
}

// LedgerExporter renders the invoice ledger into a downloadable report.
type LedgerExporter interface {
	Export(ctx context.Context, invoices []domain.Invoice) ([]byte, error)
}
