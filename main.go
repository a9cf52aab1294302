package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/invoicehub/engine/hub"
	"github.com/invoicehub/engine/model"
	"github.com/invoicehub/engine/reminder"
)

func newLogger(mode string) *slog.Logger {
	if mode == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func dothings() error {
	cfg, err := model.LoadConfig("config.toml")
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Mode)

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		return runMigrations(cfg, logger)
	}

	store, err := model.InitDatabase(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	h := hub.New(store, cfg.DefaultTenant, logger)
	if err := h.Load(ctx); err != nil {
		return err
	}
	analytics := h.Analytics()
	logger.Info("invoices loaded",
		"tenant", cfg.DefaultTenant,
		"total", analytics.TotalInvoices,
		"unpaid", analytics.UnpaidCount,
		"overdue", analytics.OverdueCount,
		"paid", analytics.PaidCount)

	if cfg.Mode == "production" {
		svc := reminder.NewService(cfg, logger)
		sent, err := svc.SendOverdueReminders(h.Invoices(), time.Now())
		if err != nil {
			return err
		}
		logger.Info("overdue reminders sent", "count", sent)
	}
	return nil
}

func main() {
	if err := dothings(); err != nil {
		log.Fatal(err)
	}
}
