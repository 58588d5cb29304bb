package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	// AttendanceSweepJobName is the registered name of the attendance sweep job.
	AttendanceSweepJobName = "attendance_sweep"
	// SubscriptionSweepJobName is the registered name of the subscription sweep job.
	SubscriptionSweepJobName = "subscription_sweep"
)

// AttendanceSweeper closes out attendance sessions still pending before a cutoff.
type AttendanceSweeper interface {
	SweepPending(ctx context.Context, cutoff time.Time) (int64, error)
}

// SubscriptionSweeper expires subscriptions whose end date has passed.
type SubscriptionSweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// AttendanceSweepJob marks stale pending attendance sessions as absent.
type AttendanceSweepJob struct {
	sweeper AttendanceSweeper
	logger  *zap.Logger
	timeout time.Duration
}

// NewAttendanceSweepJob creates a new attendance sweep job.
func NewAttendanceSweepJob(sweeper AttendanceSweeper, logger *zap.Logger, timeout time.Duration) *AttendanceSweepJob {
	return &AttendanceSweepJob{
		sweeper: sweeper,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes the sweep. Sessions opened before the start of the current
// UTC day that never closed are settled by the service.
func (j *AttendanceSweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	now := start.UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	j.logger.Info("starting attendance sweep",
		zap.Time("cutoff", cutoff))

	swept, err := j.sweeper.SweepPending(ctx, cutoff)
	if err != nil {
		j.logger.Error("attendance sweep failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("attendance sweep completed",
		zap.Int64("sessions_swept", swept),
		zap.Duration("duration", time.Since(start)))
}

// SubscriptionSweepJob transitions subscriptions past their end date to expired.
type SubscriptionSweepJob struct {
	sweeper SubscriptionSweeper
	logger  *zap.Logger
	timeout time.Duration
}

// NewSubscriptionSweepJob creates a new subscription sweep job.
func NewSubscriptionSweepJob(sweeper SubscriptionSweeper, logger *zap.Logger, timeout time.Duration) *SubscriptionSweepJob {
	return &SubscriptionSweepJob{
		sweeper: sweeper,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes the sweep against the current time.
func (j *SubscriptionSweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	j.logger.Info("starting subscription sweep")

	expired, err := j.sweeper.SweepExpired(ctx, start.UTC())
	if err != nil {
		j.logger.Error("subscription sweep failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("subscription sweep completed",
		zap.Int64("subscriptions_expired", expired),
		zap.Duration("duration", time.Since(start)))
}

// RegisterAttendanceSweepJob registers the attendance sweep with the scheduler.
func RegisterAttendanceSweepJob(scheduler *Scheduler, sweeper AttendanceSweeper, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewAttendanceSweepJob(sweeper, logger, timeout)
	return scheduler.AddJob(AttendanceSweepJobName, cronExpr, job.Run)
}

// RegisterSubscriptionSweepJob registers the subscription sweep with the scheduler.
func RegisterSubscriptionSweepJob(scheduler *Scheduler, sweeper SubscriptionSweeper, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewSubscriptionSweepJob(sweeper, logger, timeout)
	return scheduler.AddJob(SubscriptionSweepJobName, cronExpr, job.Run)
}
