// Command sales-audit consumes sale events published by the box office and
// appends one line per sale to an audit log.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/iliyamo/cinema-box-office/internal/config"
	"github.com/iliyamo/cinema-box-office/internal/queue"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var envFile, auditLog string
	flagSet := pflag.NewFlagSet("sales-audit", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", ".env", "environment file to load before reading the environment")
	flagSet.StringVar(&auditLog, "audit-log", "", "audit log to append to (overrides AUDIT_LOG_PATH)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if flagSet.Changed("audit-log") {
		cfg.AuditLogPath = auditLog
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	logger.Printf("sales-audit: consuming %s into %s", cfg.SalesEventsQueue, cfg.AuditLogPath)
	err = queue.StartAuditConsumer(ctx, queue.ConsumerConfig{
		URL:     cfg.AMQPURL,
		Queue:   cfg.SalesEventsQueue,
		LogPath: cfg.AuditLogPath,
		Logger:  logger,
	})
	if errors.Is(err, context.Canceled) {
		logger.Printf("sales-audit: stopped")
		return nil
	}
	return err
}
