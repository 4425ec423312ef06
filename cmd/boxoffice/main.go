package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/iliyamo/cinema-box-office/internal/boxoffice"
	"github.com/iliyamo/cinema-box-office/internal/config"
	"github.com/iliyamo/cinema-box-office/internal/console"
	"github.com/iliyamo/cinema-box-office/internal/ledger"
	"github.com/iliyamo/cinema-box-office/internal/queue"
	"github.com/iliyamo/cinema-box-office/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		envFile  string
		ledgerP  string
		archiveP string
		logFile  string
		noColor  bool
	)
	flagSet := pflag.NewFlagSet("boxoffice", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", ".env", "environment file to load before reading the environment")
	flagSet.StringVar(&ledgerP, "ledger", "", "sales log of the current shift (overrides LEDGER_PATH)")
	flagSet.StringVar(&archiveP, "archive", "", "shift archive (overrides ARCHIVE_PATH)")
	flagSet.StringVar(&logFile, "log-file", "", "diagnostic log (overrides LOG_FILE)")
	flagSet.BoolVar(&noColor, "no-color", false, "disable colours (also NO_COLOR)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if flagSet.Changed("ledger") {
		cfg.LedgerPath = ledgerP
	}
	if flagSet.Changed("archive") {
		cfg.ArchivePath = archiveP
	}
	if flagSet.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if noColor {
		cfg.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, f, err := utils.OpenLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer f.Close()
	log.SetOutput(f)

	hash, err := cfg.PassphraseHash()
	if err != nil {
		return fmt.Errorf("hash admin passphrase: %w", err)
	}

	var publisher queue.Publisher = queue.NopPublisher{}
	if cfg.SalesEventsEnabled {
		publisher = queue.NewAMQPPublisher(cfg.AMQPURL, cfg.SalesEventsQueue, logger)
	}

	office, err := boxoffice.New(boxoffice.Options{
		Prices:         cfg.Prices(),
		Ledger:         ledger.New(cfg.LedgerPath, cfg.ArchivePath, nil),
		Publisher:      publisher,
		PublishTimeout: cfg.SalesEventsTimeout,
		PassphraseHash: hash,
		Logger:         logger,
	})
	if err != nil {
		return err
	}
	logger.Printf("boxoffice: starting (env=%s, ledger=%s, archive=%s, sales events=%t)",
		cfg.Env, cfg.LedgerPath, cfg.ArchivePath, cfg.SalesEventsEnabled)

	app := console.NewApp(office,
		console.NewPrompter(os.Stdin, os.Stdout),
		console.NewRenderer(os.Stdout, cfg.NoColor),
		os.Stdout, logger)
	err = app.Run(context.Background())

	if n := len(office.PendingWrites()); n > 0 {
		if ferr := office.FlushPending(); ferr != nil {
			logger.Printf("boxoffice: exiting with %d unrecorded sales: %v", n, ferr)
			fmt.Fprintf(os.Stderr, "warning: %d sale(s) could not be written to %s\n", len(office.PendingWrites()), cfg.LedgerPath)
		}
	}
	logger.Printf("boxoffice: stopped")
	return err
}
