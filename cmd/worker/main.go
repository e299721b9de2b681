package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirillkom/invoice-service/internal/config"
	"github.com/kirillkom/invoice-service/internal/core/domain"
	"github.com/kirillkom/invoice-service/internal/infrastructure/notifier/maillog"
	natsqueue "github.com/kirillkom/invoice-service/internal/infrastructure/queue/nats"
	"github.com/kirillkom/invoice-service/internal/observability/logging"
	"github.com/kirillkom/invoice-service/internal/observability/metrics"
)

const serviceName = "invoice-worker"

// The worker drains queued sent-invoice notifications and performs the
// simulated mail delivery. It only runs when NOTIFIER_MODE=nats.
func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue, err := natsqueue.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		log.Fatalf("connect queue: %v", err)
	}
	defer queue.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	metricsServer := startMetricsServer(cfg.WorkerMetricsPort, workerMetrics)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	mailer := maillog.New(logger, cfg.CompanyName)

	log.Printf("worker subscribed to %s", cfg.NATSSubject)
	err = queue.SubscribeInvoiceSent(ctx, func(handlerCtx context.Context, note domain.Notification) error {
		deliverCtx, cancel := context.WithTimeout(handlerCtx, 30*time.Second)
		defer cancel()

		workerMetrics.StartDelivery()
		start := time.Now()
		deliverErr := mailer.InvoiceSent(deliverCtx, note)
		workerMetrics.FinishDelivery(serviceName, time.Since(start), deliverErr)
		return deliverErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}

func startMetricsServer(port string, m *metrics.WorkerMetrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("worker_metrics_server_failed", "error", err)
		}
	}()
	return server
}
