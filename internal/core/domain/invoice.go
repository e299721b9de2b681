package domain

import "time"

type InvoiceStatus string

// Status values match what the record store holds on disk.
const (
	StatusDraft      InvoiceStatus = "Draft"
	StatusProcessing InvoiceStatus = "Processing"
	StatusSent       InvoiceStatus = "Sent"
	StatusError      InvoiceStatus = "Error"
)

// Invoice is the central billing record. ArtifactKey names the stored PDF
// and is only ever set together with StatusSent.
type Invoice struct {
	ID          int64         `json:"id"`
	ClientName  string        `json:"client_name"`
	ClientEmail string        `json:"client_email"`
	Description string        `json:"description"`
	Amount      float64       `json:"amount"`
	ArtifactKey string        `json:"artifact_key,omitempty"`
	Status      InvoiceStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewInvoice carries the caller-supplied fields of a submission before the
// repository has assigned identity and timestamps.
type NewInvoice struct {
	ClientName  string  `json:"client_name"`
	ClientEmail string  `json:"client_email"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// InvoicePatch is a partial update. Nil fields are left untouched.
type InvoicePatch struct {
	Status      *InvoiceStatus
	ArtifactKey *string
}

// Notification is the payload handed to a notifier once an invoice has been
// committed as sent.
type Notification struct {
	InvoiceID   int64  `json:"invoice_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ArtifactKey string `json:"artifact_key"`
}

func NotificationFor(inv *Invoice) Notification {
	return Notification{
		InvoiceID:   inv.ID,
		ClientName:  inv.ClientName,
		ClientEmail: inv.ClientEmail,
		ArtifactKey: inv.ArtifactKey,
	}
}
