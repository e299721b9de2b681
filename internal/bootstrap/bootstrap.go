package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirillkom/invoice-service/internal/config"
	"github.com/kirillkom/invoice-service/internal/core/ports"
	"github.com/kirillkom/invoice-service/internal/core/usecase"
	"github.com/kirillkom/invoice-service/internal/infrastructure/export/excel"
	noticememory "github.com/kirillkom/invoice-service/internal/infrastructure/notice/memory"
	noticeredis "github.com/kirillkom/invoice-service/internal/infrastructure/notice/redis"
	"github.com/kirillkom/invoice-service/internal/infrastructure/notifier/maillog"
	natsqueue "github.com/kirillkom/invoice-service/internal/infrastructure/queue/nats"
	pdfrender "github.com/kirillkom/invoice-service/internal/infrastructure/render/pdf"
	"github.com/kirillkom/invoice-service/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/invoice-service/internal/infrastructure/resilience"
	"github.com/kirillkom/invoice-service/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Repo    ports.InvoiceRepository
	Notices ports.NoticeStore
	Queue   *natsqueue.Queue

	SubmitUC   ports.InvoiceSubmitter
	ListUC     ports.InvoiceLister
	DownloadUC ports.InvoiceDownloader
	ExportUC   ports.LedgerReporter

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewInvoiceRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	store, err := localfs.New(cfg.ArtifactDir)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init artifact store: %w", err)
	}

	renderer, err := pdfrender.New(cfg.TemplatePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	var notices ports.NoticeStore
	var redisStore *noticeredis.Store
	if cfg.RedisAddr != "" {
		redisStore = noticeredis.New(cfg.RedisAddr, time.Duration(cfg.NoticeTTLSecs)*time.Second)
		notices = redisStore
	} else {
		notices = noticememory.New()
	}

	var notifier ports.Notifier
	var queue *natsqueue.Queue
	if cfg.NotifierMode == "nats" {
		queue, err = natsqueue.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, natsqueue.Options{
			Executor: resilience.NewExecutor(resilience.DefaultConfig()),
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init notification queue: %w", err)
		}
		notifier = queue
	} else {
		notifier = maillog.New(logger, cfg.CompanyName)
	}

	return &App{
		Config:  cfg,
		Repo:    repo,
		Notices: notices,
		Queue:   queue,

		SubmitUC:   usecase.NewSubmitInvoiceUseCase(repo, renderer, store, notifier),
		ListUC:     usecase.NewListInvoicesUseCase(repo),
		DownloadUC: usecase.NewDownloadInvoiceUseCase(repo, store),
		ExportUC:   usecase.NewExportInvoicesUseCase(repo, excel.New()),

		closeFn: func() {
			if queue != nil {
				queue.Close()
			}
			if redisStore != nil {
				_ = redisStore.Close()
			}
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
