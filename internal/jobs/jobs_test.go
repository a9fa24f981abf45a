package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metric"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type MockReconciler struct{ mock.Mock }

func (m *MockReconciler) Handle(ctx context.Context) (queries.Reconciliation, error) {
	args := m.Called(ctx)
	return args.Get(0).(queries.Reconciliation), args.Error(1)
}

func gaugeValue(t *testing.T, m *metric.Metrics) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.UpstreamUnmatched.Write(&out))
	return out.GetGauge().GetValue()
}

func counterValue(t *testing.T, m *metric.Metrics) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.UpstreamSyncFailure.Write(&out))
	return out.GetCounter().GetValue()
}

func TestUpstreamReconciliationJob_Run(t *testing.T) {
	t.Run("publishes the unmatched count", func(t *testing.T) {
		reconciler := new(MockReconciler)
		reconciler.On("Handle", mock.Anything).Return(queries.Reconciliation{
			Day:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Fetched:   4,
			Unmatched: []string{"SHOP-2", "SHOP-3"},
		}, nil).Once()
		metrics := metric.NewMetrics()

		job := jobs.NewUpstreamReconciliationJob(reconciler, metrics, "", time.Second, zaptest.NewLogger(t))
		job.Run()

		assert.InDelta(t, 2.0, gaugeValue(t, metrics), 0)
		assert.InDelta(t, 0.0, counterValue(t, metrics), 0)
		reconciler.AssertExpectations(t)
	})

	t.Run("counts feed failures and keeps the last gauge", func(t *testing.T) {
		reconciler := new(MockReconciler)
		reconciler.On("Handle", mock.Anything).Return(queries.Reconciliation{
			Unmatched: []string{"SHOP-9"},
		}, nil).Once()
		reconciler.On("Handle", mock.Anything).Return(queries.Reconciliation{},
			errs.NewUpstreamUnavailableError("storefront", errors.New("timeout"))).Once()
		metrics := metric.NewMetrics()

		job := jobs.NewUpstreamReconciliationJob(reconciler, metrics, "", 0, zaptest.NewLogger(t))
		job.Run()
		job.Run()

		assert.InDelta(t, 1.0, gaugeValue(t, metrics), 0)
		assert.InDelta(t, 1.0, counterValue(t, metrics), 0)
	})
}

func TestUpstreamReconciliationJob_Start(t *testing.T) {
	t.Run("rejects an invalid schedule", func(t *testing.T) {
		job := jobs.NewUpstreamReconciliationJob(new(MockReconciler), metric.NewMetrics(), "every now and then", 0, zaptest.NewLogger(t))
		require.Error(t, job.Start())
	})

	t.Run("runs on schedule", func(t *testing.T) {
		reconciler := new(MockReconciler)
		ran := make(chan struct{}, 1)
		reconciler.On("Handle", mock.Anything).Return(queries.Reconciliation{}, nil).Run(func(mock.Arguments) {
			select {
			case ran <- struct{}{}:
			default:
			}
		})

		job := jobs.NewUpstreamReconciliationJob(reconciler, metric.NewMetrics(), "* * * * * *", 0, zaptest.NewLogger(t))
		require.NoError(t, job.Start())
		defer job.Stop()

		select {
		case <-ran:
		case <-time.After(3 * time.Second):
			t.Fatal("job did not run")
		}
	})
}

type fakeJob struct {
	name    string
	failing bool
	log     *[]string
}

func (f fakeJob) Start() error {
	if f.failing {
		return errors.New("boom")
	}
	*f.log = append(*f.log, "start "+f.name)
	return nil
}

func (f fakeJob) Stop() { *f.log = append(*f.log, "stop "+f.name) }

func TestJobManager(t *testing.T) {
	t.Run("stops in reverse order", func(t *testing.T) {
		var log []string
		m := jobs.NewJobManager(fakeJob{name: "a", log: &log}, fakeJob{name: "b", log: &log})

		require.NoError(t, m.StartAll())
		m.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
	})

	t.Run("rolls back on a failed start", func(t *testing.T) {
		var log []string
		m := jobs.NewJobManager(fakeJob{name: "a", log: &log}, fakeJob{name: "b", failing: true, log: &log})

		require.Error(t, m.StartAll())

		assert.Equal(t, []string{"start a", "stop a"}, log)
	})
}
