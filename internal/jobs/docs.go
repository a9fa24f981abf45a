// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// UpstreamReconciliationJob fetches the storefront orders of the current day
// and reports the ones with no internal order yet. The count is published as
// the fulfillment_upstream_unmatched_orders gauge; feed failures increment
// fulfillment_upstream_sync_failures_total.
//
// # Usage
//
//	reconcile := jobs.NewUpstreamReconciliationJob(handler, metrics, "0 */15 * * * *", 30*time.Second, logger)
//	manager := jobs.NewJobManager(reconcile)
//	if err := manager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer manager.StopAll()
//
// Schedules use the six-field cron format with seconds.
package jobs
