package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kirillkom/invoice-service/internal/core/domain"
	"github.com/kirillkom/invoice-service/internal/core/ports"
)

// SubmitInvoiceUseCase drives one submission through
// Processing -> Sent | Error. It holds no state across submissions.
type SubmitInvoiceUseCase struct {
	repo     ports.InvoiceRepository
	renderer ports.InvoiceRenderer
	store    ports.ArtifactStore
	notifier ports.Notifier
}

func NewSubmitInvoiceUseCase(
	repo ports.InvoiceRepository,
	renderer ports.InvoiceRenderer,
	store ports.ArtifactStore,
	notifier ports.Notifier,
) *SubmitInvoiceUseCase {
	return &SubmitInvoiceUseCase{
		repo:     repo,
		renderer: renderer,
		store:    store,
		notifier: notifier,
	}
}

// Submit creates the record in Processing, renders and stores the PDF, then
// commits artifact+Sent in one update. Any step failure marks the record
// Error and leaves no artifact reference. Notification runs after the Sent
// commit; its outcome never changes invoice state.
func (uc *SubmitInvoiceUseCase) Submit(ctx context.Context, in domain.NewInvoice) (*domain.Invoice, error) {
	if err := validateSubmission(in); err != nil {
		return nil, err
	}

	inv, err := uc.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create invoice record: %w", err)
	}

	sent, err := uc.finalize(ctx, inv)
	if err != nil {
		if failErr := uc.markError(ctx, inv.ID); failErr != nil {
			return inv, fmt.Errorf("%w; mark error status: %v", err, failErr)
		}
		inv.Status = domain.StatusError
		return inv, err
	}

	if err := uc.notifier.InvoiceSent(ctx, domain.NotificationFor(sent)); err != nil {
		// Status is already committed as Sent; a notify failure is logged
		// and swallowed, never escalated.
		slog.Warn("invoice_notification_failed", "invoice_id", sent.ID, "error", err)
	}

	return sent, nil
}

func (uc *SubmitInvoiceUseCase) finalize(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	pdf, err := uc.render(ctx, inv)
	if err != nil {
		return nil, err
	}

	key, err := uc.saveArtifact(ctx, pdf)
	if err != nil {
		return nil, err
	}

	return uc.commitSent(ctx, inv.ID, key)
}

func (uc *SubmitInvoiceUseCase) render(ctx context.Context, inv *domain.Invoice) ([]byte, error) {
	pdf, err := uc.renderer.Render(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("render invoice document: %w", err)
	}
	if len(pdf) == 0 {
		return nil, domain.WrapError(domain.ErrRenderFailed, "render invoice document", errors.New("empty document"))
	}
	return pdf, nil
}

func (uc *SubmitInvoiceUseCase) saveArtifact(ctx context.Context, pdf []byte) (string, error) {
	key, err := uc.store.Save(ctx, bytes.NewReader(pdf))
	if err != nil {
		return "", fmt.Errorf("save artifact: %w", err)
	}
	return key, nil
}

func (uc *SubmitInvoiceUseCase) commitSent(ctx context.Context, id int64, key string) (*domain.Invoice, error) {
	status := domain.StatusSent
	inv, err := uc.repo.Update(ctx, id, domain.InvoicePatch{
		Status:      &status,
		ArtifactKey: &key,
	})
	if err != nil {
		return nil, fmt.Errorf("commit sent status: %w", err)
	}
	return inv, nil
}

func (uc *SubmitInvoiceUseCase) markError(ctx context.Context, id int64) error {
	status := domain.StatusError
	_, err := uc.repo.Update(ctx, id, domain.InvoicePatch{Status: &status})
	return err
}

func validateSubmission(in domain.NewInvoice) error {
	if strings.TrimSpace(in.ClientName) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "validate submission", errors.New("client name is required"))
	}
	if strings.TrimSpace(in.ClientEmail) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "validate submission", errors.New("client email is required"))
	}
	if in.Amount < 0 {
		return domain.WrapError(domain.ErrInvalidInput, "validate submission", errors.New("amount must not be negative"))
	}
	return nil
}
