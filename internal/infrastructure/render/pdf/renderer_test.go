package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/kirillkom/invoice-service/internal/core/domain"
)

func sampleInvoice() *domain.Invoice {
	return &domain.Invoice{
		ID:          42,
		ClientName:  "Acme",
		ClientEmail: "billing@acme.test",
		Description: "consulting",
		Amount:      125.50,
		Status:      domain.StatusProcessing,
		CreatedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := r.Render(context.Background(), sampleInvoice())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF magic header, got %q", out[:8])
	}
}

func TestRenderIsReproducible(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	first, err := r.Render(context.Background(), sampleInvoice())
	if err != nil {
		t.Fatalf("first Render() error = %v", err)
	}
	second, err := r.Render(context.Background(), sampleInvoice())
	if err != nil {
		t.Fatalf("second Render() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("rendering the same invoice twice produced different bytes")
	}
}

func TestRenderTemplateFailureIsRenderError(t *testing.T) {
	r, err := Parse(`Invoice #{{.ID}}{{.NoSuchField}}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	_, err = r.Render(context.Background(), sampleInvoice())
	if !domain.IsKind(err, domain.ErrRenderFailed) {
		t.Fatalf("expected ErrRenderFailed, got %v", err)
	}
}

func TestParseRejectsBrokenTemplate(t *testing.T) {
	if _, err := Parse(`{{.ID`); err == nil {
		t.Fatalf("expected parse error for unterminated action")
	}
}
