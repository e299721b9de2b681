package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jung-kurt/gofpdf"

	"github.com/kirillkom/invoice-service/internal/core/domain"
)

// defaultTemplate is the built-in invoice layout: one markup line per
// document line, first line used as the title.
const defaultTemplate = `Invoice #{{.ID}}
Date: {{.CreatedAt.Format "2006-01-02"}}
Bill To: {{.ClientName}} <{{.ClientEmail}}>
Description: {{.Description}}
Amount Due: {{printf "%.2f" .Amount}}`

// Renderer executes an invoice template into intermediate markup and converts
// the markup into a PDF byte stream.
type Renderer struct {
	tmpl *template.Template
}

// New parses the template at templatePath, or the built-in layout when the
// path is empty.
func New(templatePath string) (*Renderer, error) {
	text := defaultTemplate
	if templatePath != "" {
		b, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, fmt.Errorf("read invoice template: %w", err)
		}
		text = string(b)
	}
	return Parse(text)
}

func Parse(text string) (*Renderer, error) {
	tmpl, err := template.New("invoice").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse invoice template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(_ context.Context, inv *domain.Invoice) ([]byte, error) {
	var markup bytes.Buffer
	if err := r.tmpl.Execute(&markup, inv); err != nil {
		return nil, domain.WrapError(domain.ErrRenderFailed, "execute invoice template", err)
	}

	out, err := convert(markup.String(), inv)
	if err != nil {
		return nil, domain.WrapError(domain.ErrRenderFailed, "convert markup to pdf", err)
	}
	return out, nil
}

func convert(markup string, inv *domain.Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	// Pin the document timestamp so re-rendering an invoice is reproducible.
	doc.SetCreationDate(inv.CreatedAt)
	doc.AddPage()

	lines := strings.Split(markup, "\n")
	doc.SetFont("Arial", "B", 16)
	doc.MultiCell(0, 10, strings.TrimSpace(lines[0]), "", "L", false)
	doc.Ln(4)

	doc.SetFont("Arial", "", 12)
	for _, line := range lines[1:] {
		doc.MultiCell(0, 8, strings.TrimSpace(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
