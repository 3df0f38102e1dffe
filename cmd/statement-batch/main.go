// Command statement-batch generates one PDF statement per customer of a
// ledger and writes the collected zip archive to disk, optionally
// mailing it as well.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"statements/internal/backend"
	"statements/internal/batch"
	"statements/internal/config"
	applog "statements/internal/log"
	"statements/internal/mailer"
	"statements/internal/render"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentBatch})
	applog.SetDefault(logger)

	var (
		ledgerName = flag.String("ledger", "", "ledger name to generate statements for (default: first configured)")
		outDir     = flag.String("out", ".", "directory to write the zip archive to")
		workers    = flag.Int("workers", 0, "render concurrency (default: BATCH_WORKERS)")
		sendMail   = flag.Bool("email", false, "mail the archive to BATCH_EMAIL_TO after writing it")
	)
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	if len(cfg.Ledgers) == 0 {
		logger.Error("No ledgers configured, set LEDGERS")
		os.Exit(1)
	}

	led := cfg.Ledgers[0]
	if *ledgerName != "" {
		id, ok := cfg.LedgerID(*ledgerName)
		if !ok {
			logger.Error("Unknown ledger", applog.FieldLedger, *ledgerName)
			os.Exit(1)
		}
		led = config.Ledger{Name: *ledgerName, ID: id}
	}

	if *workers <= 0 {
		*workers = cfg.BatchWorkers
	}

	ctx := context.Background()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Backend configuration failed", applog.FieldError, err)
		os.Exit(1)
	}
	factory := backend.NewFactory(logger.Logger)
	result, err := factory.Create(ctx, backendCfg)
	if err != nil {
		logger.Error("Backend initialization failed", applog.FieldError, err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() { _ = result.Cleanup() }()
	}

	rows, err := result.Source.FetchRows(ctx, led.ID, cfg.SheetName)
	if err != nil {
		logger.Error("Ledger fetch failed", applog.FieldLedger, led.Name, applog.FieldError, err)
		os.Exit(1)
	}

	res, err := batch.Run(ctx, rows, batch.Options{
		LedgerName: led.Name,
		Branding: render.Branding{
			CompanyName: cfg.CompanyName,
			TagLine:     cfg.CompanyTagLine,
			Footer:      render.DefaultFooter,
		},
		Workers: *workers,
		Progress: func(done, total int) {
			logger.Info("Batch progress", "done", done, "total", total)
		},
	})
	if err != nil {
		logger.Error("Batch generation failed", applog.FieldLedger, led.Name, applog.FieldError, err)
		os.Exit(1)
	}

	name := fmt.Sprintf("Customer_Statements_%s_%s.zip",
		strings.ReplaceAll(led.Name, " ", "_"), time.Now().Format("02-Jan-2006"))
	path := filepath.Join(*outDir, name)
	if err := os.WriteFile(path, res.Archive, 0o644); err != nil {
		logger.Error("Archive write failed", "path", path, applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Batch completed",
		applog.FieldLedger, led.Name,
		applog.FieldGenerated, res.Generated,
		applog.FieldSkipped, res.Skipped,
		"archive", path)

	if *sendMail {
		if !cfg.MailEnabled() {
			logger.Error("Mail requested but SMTP settings are incomplete")
			os.Exit(1)
		}
		m := mailer.New(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SenderEmail,
		})
		if err := m.SendArchive(cfg.BatchEmailTo, led.Name, name, res.Archive); err != nil {
			logger.Error("Archive mail failed", applog.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Archive mailed", "recipients", len(cfg.BatchEmailTo))
	}
}
