package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"HSScanner/internal/notifier"
	"HSScanner/internal/report"
	"HSScanner/internal/scanner"
)

// Scheduler runs the scan job on a cron schedule and answers bot commands.
type Scheduler struct {
	Cron   *cron.Cron
	Job    *Job
	Store  *report.Store
	Ctx    context.Context
	Logger zerolog.Logger
}

// NewScheduler creates a new Scheduler. Overlapping cron runs are skipped.
func NewScheduler(ctx context.Context, job *Job, store *report.Store, logger zerolog.Logger) *Scheduler {
	cl := cronLogger{logger}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		Job:    job,
		Store:  store,
		Ctx:    ctx,
		Logger: logger,
	}
}

// Register adds the daily scan task.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info().Msg("scheduler stopped")
}

// RunNow executes the scan task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	s.Logger.Info().Msg("running scheduled scan")
	s.finishScan(s.Job.Run(s.Ctx))
}

func (s *Scheduler) finishScan(sum *scanner.Summary, err error) {
	if err != nil {
		if errors.Is(err, ErrScanRunning) {
			s.Logger.Warn().Msg("scan skipped, previous run still active")
			return
		}
		s.Logger.Error().Err(err).Msg("scan failed")
		if s.Ctx.Err() == nil {
			s.trySend(fmt.Sprintf("❌ Scan failed: %v", err))
		}
		return
	}
	s.Logger.Info().Str("run_id", sum.RunID).Dur("duration", sum.Duration).Msg("scan done")
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(_ context.Context, command string) string {
	var cmd string
	if fields := strings.Fields(command); len(fields) > 0 {
		cmd = strings.ToLower(fields[0])
	}
	// Group chats append the bot name: /signals@MyBot.
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	switch cmd {
	case "/signals":
		r, ok := s.Store.Latest()
		if !ok {
			return "No scan has completed yet."
		}
		return notifier.FormatScanReport(r)
	case "/history":
		entries, err := s.Job.Recorder.RecentSignals(10)
		if err != nil {
			s.Logger.Error().Err(err).Msg("load signal history")
			return "History unavailable."
		}
		return notifier.FormatHistory(entries)
	case "/scan":
		if !s.Job.Start(s.Ctx, s.finishScan) {
			return "A scan is already running."
		}
		s.Logger.Info().Msg("scan started by command")
		return "Scan started."
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Job.Notifier.Notify(s.Ctx, text); err != nil {
		s.Logger.Error().Err(err).Msg("send notification")
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
