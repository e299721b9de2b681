package usecase

import (
	"context"
	"fmt"

	"github.com/kirillkom/invoice-service/internal/core/domain"
	"github.com/kirillkom/invoice-service/internal/core/ports"
)

type ListInvoicesUseCase struct {
	repo ports.InvoiceRepository
}

func NewListInvoicesUseCase(repo ports.InvoiceRepository) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{repo: repo}
}

// List returns all invoices, most recent first.
func (uc *ListInvoicesUseCase) List(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := uc.repo.ListRecent(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}
