package maillog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/invoice-service/internal/core/domain"
)

// Notifier simulates the outbound invoice email by emitting it to the log.
// The message shape matches what a real mail adapter would send.
type Notifier struct {
	logger  *slog.Logger
	company string
}

func New(logger *slog.Logger, company string) *Notifier {
	if company == "" {
		company = "My Company Inc."
	}
	return &Notifier{logger: logger, company: company}
}

func (n *Notifier) InvoiceSent(_ context.Context, note domain.Notification) error {
	n.logger.Info("email_simulation",
		"to", note.ClientEmail,
		"subject", fmt.Sprintf("Invoice #%d from %s", note.InvoiceID, n.company),
		"body", fmt.Sprintf("Hello %s, please find your invoice attached.", note.ClientName),
		"attachment", note.ArtifactKey,
	)
	return nil
}
