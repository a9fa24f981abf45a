package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/period"
	"fulfillment/internal/core/domain/model/report"
	"fulfillment/internal/pkg/guard"
)

var ErrDashboardQueryIsNotConstructed = errors.New("DashboardQuery must be created via NewDashboardQuery")

// Dashboard section names, as reported in Dashboard.Failed.
const (
	SectionDistribution = "distribution"
	SectionGrowth       = "growth"
	SectionDurations    = "durations"
	SectionWorkload     = "workload"
	SectionMonthly      = "monthly"
)

// MonthlyWindow is the number of calendar months folded into the monthly series.
const MonthlyWindow = 24

// DashboardQuery asks for the manager dashboard over one date window.
type DashboardQuery struct {
	caller identity.Caller
	period period.Params
	guard  guard.ConstructorGuard
}

func NewDashboardQuery(caller identity.Caller, p period.Params) (DashboardQuery, error) {
	if err := caller.Validate(); err != nil {
		return DashboardQuery{}, err
	}
	return DashboardQuery{caller: caller, period: p, guard: guard.NewConstructorGuard()}, nil
}

func (q DashboardQuery) Validate() error {
	return q.guard.Validate(ErrDashboardQueryIsNotConstructed)
}

// Dashboard is the outcome of one dashboard computation. A section listed in
// Failed could not be computed and holds its zero value.
type Dashboard struct {
	Window       period.Range
	Distribution report.Distribution
	Growth       report.Growth
	Durations    report.AverageDurations
	Workload     []report.AgentWorkload
	Monthly      report.MonthlySeries
	Failed       []string
}
