package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"HSScanner/internal/api"
	"HSScanner/internal/collector"
	"HSScanner/internal/config"
	"HSScanner/internal/logging"
	"HSScanner/internal/notifier"
	"HSScanner/internal/recorder"
	"HSScanner/internal/report"
	"HSScanner/internal/scanner"
	"HSScanner/internal/scheduler"
	"HSScanner/internal/universe"
)

// Version information
const (
	Version   = "0.3.0"
	BuildDate = "2025-07-01"
)

// app holds state shared by all subcommands.
type app struct {
	cfgPath string
	debug   bool

	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "hsscan",
		Short:         "Head & Shoulders daily signal scanner",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.init()
		},
	}

	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	rootCmd.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", defaultCfg, "config file path")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newScanCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return err
	}
	if a.debug {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.Log)

	if err := cfg.Validate(); err != nil {
		a.logger.Error().Err(err).Msg("config validation")
		return err
	}
	api.ServiceVersion = Version
	return nil
}

// newFetcher picks the REST provider when a base URL is configured and the
// Yahoo chart API otherwise.
func (a *app) newFetcher() collector.Fetcher {
	if a.cfg.DataSource.BaseURL != "" {
		return collector.NewRESTFetcher(a.cfg.DataSource.BaseURL, a.cfg.DataSource.APIKey, a.cfg.Proxy)
	}
	return collector.NewYahooFetcher(a.cfg.Proxy)
}

func (a *app) newRecorder() recorder.Recorder {
	if a.cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(a.cfg.Database.SQLitePath, a.logger)
	if err != nil {
		a.logger.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}

// newJob wires the scan pipeline. The returned notifier is Telegram when
// configured and notify is set.
func (a *app) newJob(store *report.Store, rec recorder.Recorder, notify bool) (*scheduler.Job, *notifier.TelegramNotifier) {
	cfg := a.cfg
	fetcher := a.newFetcher()
	a.logger.Info().Str("source", fetcher.Name()).Msg("data source")

	col := collector.NewCollector(fetcher, cfg.Scan.HistoryDays, cfg.Scan.MinSessions, cfg.Scan.FetchRetries, a.logger)
	sc := scanner.New(col, cfg.Strategy, cfg.Scan.Workers, a.logger)

	job := &scheduler.Job{
		Scanner:    sc,
		Universe:   func() ([]string, error) { return universe.Load(cfg.Scan.SymbolsFile) },
		OutputFile: cfg.Scan.OutputFile,
		Store:      store,
		Recorder:   rec,
		Notifier:   notifier.NoopNotifier{},
		Logger:     a.logger,
	}

	var tn *notifier.TelegramNotifier
	if notify && cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logging.WithOperation(a.logger, "telegram"))
		job.Notifier = tn
	}
	return job, tn
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hsscan %s (built %s)\n", Version, BuildDate)
		},
	}
}
