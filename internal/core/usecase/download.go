package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kirillkom/invoice-service/internal/core/domain"
	"github.com/kirillkom/invoice-service/internal/core/ports"
)

type DownloadInvoiceUseCase struct {
	repo  ports.InvoiceRepository
	store ports.ArtifactStore
}

func NewDownloadInvoiceUseCase(repo ports.InvoiceRepository, store ports.ArtifactStore) *DownloadInvoiceUseCase {
	return &DownloadInvoiceUseCase{repo: repo, store: store}
}

// Download resolves the invoice and fetches its artifact bytes. An unknown
// invoice id and a missing artifact are distinct error kinds even though the
// boundary reports both as not found.
func (uc *DownloadInvoiceUseCase) Download(ctx context.Context, id int64) (*domain.Invoice, []byte, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch invoice by id: %w", err)
	}

	if inv.ArtifactKey == "" {
		return nil, nil, domain.WrapError(domain.ErrArtifactNotFound, "fetch artifact",
			errors.New("invoice has no artifact"))
	}

	rc, err := uc.store.Open(ctx, inv.ArtifactKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open artifact: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, nil, domain.WrapError(domain.ErrArtifactNotFound, "read artifact", err)
	}

	return inv, data, nil
}

// Filename derives the user-facing attachment name for an invoice.
func Filename(id int64) string {
	return fmt.Sprintf("Invoice_%d.pdf", id)
}
