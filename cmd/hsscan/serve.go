package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"HSScanner/internal/api"
	"HSScanner/internal/report"
	"HSScanner/internal/scheduler"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		runNow bool
		noAPI  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the daily scan on a schedule with Telegram commands and the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			logger := a.logger
			logger.Info().Str("version", Version).Msg("hsscan starting")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store := report.NewStore()
			if r, err := report.Load(cfg.Scan.OutputFile); err == nil {
				store.Set(r)
				logger.Info().Str("generated_at", r.GeneratedAt).Msg("loaded previous report")
			} else if !os.IsNotExist(err) {
				logger.Warn().Err(err).Msg("previous report unreadable, starting empty")
			}

			rec := a.newRecorder()
			defer rec.Close()

			job, tn := a.newJob(store, rec, true)

			sched := scheduler.NewScheduler(ctx, job, store, logger)
			if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
				logger.Error().Err(err).Msg("register cron tasks")
				return err
			}
			sched.Start()
			defer sched.Stop()
			logger.Info().Str("cron", cfg.Schedule.ScanCron).Msg("daily scan scheduled")

			g, gctx := errgroup.WithContext(ctx)

			if tn != nil {
				g.Go(func() error {
					tn.StartPolling(gctx, sched.HandleCommand)
					return nil
				})
				logger.Info().Msg("telegram polling started")
			}

			if !noAPI {
				srv := api.NewServer(cfg.API.Addr, api.NewHandler(store, rec, logger), logger)
				g.Go(func() error { return srv.Run(gctx) })
			}

			if runNow || os.Getenv("RUN_ON_START") == "true" {
				logger.Info().Msg("run-on-start enabled, executing scan now")
				go sched.RunNow()
			}

			logger.Info().Msg("hsscan is running. Press Ctrl+C to stop.")
			<-gctx.Done()
			logger.Info().Msg("shutdown signal received, stopping...")
			stop()

			err := g.Wait()
			if err != nil {
				logger.Error().Err(err).Msg("service error")
			}
			logger.Info().Msg("hsscan stopped")
			return err
		},
	}

	cmd.Flags().BoolVar(&runNow, "run-now", false, "run a scan immediately on start")
	cmd.Flags().BoolVar(&noAPI, "no-api", false, "disable the HTTP API")
	return cmd
}
