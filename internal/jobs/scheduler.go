package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const jobTimeout = 2 * time.Minute

// ExpiredTokenPurger deletes expired tokens and reports how many went
type ExpiredTokenPurger interface {
	DeleteExpiredTokens(ctx context.Context) (int64, error)
}

// RefreshTokenCleaner removes refresh tokens past their retention
type RefreshTokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// Scheduler runs periodic maintenance on a cron schedule
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// NewScheduler creates a scheduler whose jobs never overlap themselves
func NewScheduler(logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger}))),
		logger: logger,
	}
}

// TokenCleanup returns the job that purges expired activation and refresh tokens
func TokenCleanup(verification ExpiredTokenPurger, refresh RefreshTokenCleaner, logger zerolog.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		activations, err := verification.DeleteExpiredTokens(ctx)
		if err != nil {
			return fmt.Errorf("failed to purge activation tokens: %w", err)
		}

		refreshes, err := refresh.CleanupExpiredTokens(ctx)
		if err != nil {
			return fmt.Errorf("failed to purge refresh tokens: %w", err)
		}

		logger.Info().Int64("activationTokens", activations).Int64("refreshTokens", refreshes).Msg("Expired tokens purged")
		return nil
	}
}

// Add registers job under name on spec, e.g. "@hourly" or "*/15 * * * *"
func (s *Scheduler) Add(name, spec string, job func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			s.logger.Error().Err(err).Str("job", name).Msg("Scheduled job failed")
			return
		}
		s.logger.Debug().Str("job", name).Dur("took", time.Since(start)).Msg("Scheduled job finished")
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}

	s.logger.Info().Str("job", name).Str("schedule", spec).Msg("Job scheduled")
	return nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("Scheduler stop timed out with jobs still running")
	}
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
