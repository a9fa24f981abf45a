package jobs

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/pkg/metric"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultReconciliationSchedule runs the reconciliation every fifteen minutes.
const DefaultReconciliationSchedule = "0 */15 * * * *"

// Reconciler compares the upstream feed of the day with internal orders.
type Reconciler interface {
	Handle(ctx context.Context) (queries.Reconciliation, error)
}

// UpstreamReconciliationJob periodically reports how many of today's
// upstream orders have not been registered internally yet.
type UpstreamReconciliationJob struct {
	reconciler Reconciler
	metrics    *metric.Metrics
	schedule   string
	timeout    time.Duration
	cron       *cron.Cron
	logger     *zap.Logger
}

func NewUpstreamReconciliationJob(
	reconciler Reconciler,
	metrics *metric.Metrics,
	schedule string,
	timeout time.Duration,
	logger *zap.Logger,
) *UpstreamReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconciliationSchedule
	}
	return &UpstreamReconciliationJob{
		reconciler: reconciler,
		metrics:    metrics,
		schedule:   schedule,
		timeout:    timeout,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With(zap.String("component", "upstream_reconciliation_job")),
	}
}

// Start registers the run on the schedule and starts the scheduler.
func (j *UpstreamReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("upstream reconciliation job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops scheduling new runs and waits for a running one to finish.
func (j *UpstreamReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("upstream reconciliation job stopped")
}

// Run performs one reconciliation.
func (j *UpstreamReconciliationJob) Run() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	result, err := j.reconciler.Handle(ctx)
	if err != nil {
		j.metrics.UpstreamSyncFailure.Inc()
		j.logger.Error("upstream reconciliation failed", zap.Error(err))
		return
	}

	j.metrics.UpstreamUnmatched.Set(float64(len(result.Unmatched)))
	if len(result.Unmatched) > 0 {
		j.logger.Info("upstream orders not registered yet",
			zap.Time("day", result.Day),
			zap.Int("fetched", result.Fetched),
			zap.Int("unmatched", len(result.Unmatched)),
			zap.Strings("references", result.Unmatched))
		return
	}
	j.logger.Debug("upstream reconciled", zap.Time("day", result.Day), zap.Int("fetched", result.Fetched))
}
