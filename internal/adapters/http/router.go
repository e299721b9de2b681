package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kirillkom/invoice-service/internal/core/domain"
	"github.com/kirillkom/invoice-service/internal/core/ports"
	"github.com/kirillkom/invoice-service/internal/core/usecase"
	"github.com/kirillkom/invoice-service/internal/observability/metrics"
)

const serviceName = "api"

const (
	noticeCreated      = "Invoice successfully created and sent to "
	noticeFailed       = "Error generating invoice. Please check logs."
	noticeInvalidInput = "Invalid invoice details. Please check the form and try again."
)

type Router struct {
	submitUC   ports.InvoiceSubmitter
	listUC     ports.InvoiceLister
	downloadUC ports.InvoiceDownloader
	exportUC   ports.LedgerReporter
	notices    ports.NoticeStore
	metrics    *metrics.ServerMetrics

	cookieName     string
	rateLimitRPS   int
	rateLimitBurst int
}

func NewRouter(
	submitUC ports.InvoiceSubmitter,
	listUC ports.InvoiceLister,
	downloadUC ports.InvoiceDownloader,
	exportUC ports.LedgerReporter,
	notices ports.NoticeStore,
	m *metrics.ServerMetrics,
	cookieName string,
	rateLimitRPS, rateLimitBurst int,
) *Router {
	if cookieName == "" {
		cookieName = "invoice_session"
	}
	return &Router{
		submitUC:       submitUC,
		listUC:         listUC,
		downloadUC:     downloadUC,
		exportUC:       exportUC,
		notices:        notices,
		metrics:        m,
		cookieName:     cookieName,
		rateLimitRPS:   rateLimitRPS,
		rateLimitBurst: rateLimitBurst,
	}
}

func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(accessLogMiddleware)
	if rt.metrics != nil {
		r.Use(func(next http.Handler) http.Handler {
			return rt.metrics.Middleware(serviceName, next)
		})
	}
	r.Use(rateLimitMiddleware(rt.rateLimitRPS, rt.rateLimitBurst))

	r.Get("/healthz", rt.healthz)
	r.Route("/v1/invoices", func(r chi.Router) {
		r.Get("/", rt.listInvoices)
		r.Post("/", rt.createInvoice)
		r.Get("/export", rt.exportLedger)
		r.Get("/{invoiceID}/download", rt.downloadInvoice)
	})
	if rt.metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}
	return r
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type listResponse struct {
	Invoices []domain.Invoice `json:"invoices"`
	Notice   string           `json:"notice,omitempty"`
}

func (rt *Router) listInvoices(w http.ResponseWriter, r *http.Request) {
	sessionID := rt.sessionID(w, r)

	invoices, err := rt.listUC.List(r.Context())
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	notice, err := rt.notices.Take(r.Context(), sessionID)
	if err != nil {
		// A broken notice channel must not break the listing.
		slog.Warn("notice_take_failed", "error", err)
		notice = ""
	}

	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	writeJSON(w, http.StatusOK, listResponse{Invoices: invoices, Notice: notice})
}

// createInvoice always completes with a redirect back to the listing; the
// outcome travels through the session notice, not the response code.
func (rt *Router) createInvoice(w http.ResponseWriter, r *http.Request) {
	sessionID := rt.sessionID(w, r)

	if err := r.ParseForm(); err != nil {
		rt.finishCreate(w, r, sessionID, noticeInvalidInput)
		return
	}
	amount, err := strconv.ParseFloat(r.PostFormValue("amount"), 64)
	if err != nil {
		rt.finishCreate(w, r, sessionID, noticeInvalidInput)
		return
	}

	in := domain.NewInvoice{
		ClientName:  r.PostFormValue("client_name"),
		ClientEmail: r.PostFormValue("client_email"),
		Description: r.PostFormValue("description"),
		Amount:      amount,
	}

	start := time.Now()
	inv, err := rt.submitUC.Submit(r.Context(), in)
	if rt.metrics != nil && inv != nil {
		rt.metrics.RecordSubmission(serviceName, inv.Status, time.Since(start))
	}

	switch {
	case err == nil:
		rt.finishCreate(w, r, sessionID, noticeCreated+inv.ClientEmail)
	case domain.IsKind(err, domain.ErrInvalidInput):
		rt.finishCreate(w, r, sessionID, noticeInvalidInput)
	default:
		slog.Error("invoice_submission_failed", "error", err)
		rt.finishCreate(w, r, sessionID, noticeFailed)
	}
}

func (rt *Router) finishCreate(w http.ResponseWriter, r *http.Request, sessionID, notice string) {
	if err := rt.notices.Put(r.Context(), sessionID, notice); err != nil {
		slog.Warn("notice_put_failed", "error", err)
	}
	http.Redirect(w, r, "/v1/invoices", http.StatusSeeOther)
}

func (rt *Router) downloadInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "invoiceID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invoice id must be numeric"})
		return
	}

	inv, data, err := rt.downloadUC.Download(r.Context(), id)
	if err != nil {
		if rt.metrics != nil {
			rt.metrics.RecordDownload(serviceName, downloadOutcome(err), 0)
		}
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordDownload(serviceName, "ok", len(data))
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+usecase.Filename(inv.ID)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (rt *Router) exportLedger(w http.ResponseWriter, r *http.Request) {
	report, err := rt.exportUC.ExportLedger(r.Context())
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(report)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report)
}

func downloadOutcome(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrInvoiceNotFound):
		return "invoice_missing"
	case domain.IsKind(err, domain.ErrArtifactNotFound):
		return "artifact_missing"
	default:
		return "error"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
