package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"HSScanner/internal/report"
	"HSScanner/internal/scanner"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		output   string
		symbols  string
		noNotify bool
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run one scan and write the signals report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != "" {
				a.cfg.Scan.OutputFile = output
			}
			if symbols != "" {
				a.cfg.Scan.SymbolsFile = symbols
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rec := a.newRecorder()
			defer rec.Close()

			job, _ := a.newJob(report.NewStore(), rec, !noNotify)
			if !quiet {
				job.Scanner.Progress = &scanner.ConsoleProgress{
					Out:        cmd.OutOrStdout(),
					OutputPath: a.cfg.Scan.OutputFile,
				}
			}

			if _, err := job.Run(ctx); err != nil {
				a.logger.Error().Err(err).Msg("scan failed")
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "report path (overrides scan.output_file)")
	cmd.Flags().StringVarP(&symbols, "symbols", "s", "", "symbols file (overrides scan.symbols_file)")
	cmd.Flags().BoolVar(&noNotify, "no-notify", false, "do not send the Telegram summary")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "disable per-instrument console output")
	return cmd
}
