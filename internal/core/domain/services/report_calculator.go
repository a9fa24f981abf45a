package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/report"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ReportCalculator applies the reporting rules to raw counts.
//
// Example usage:
//
//	calc := services.NewReportCalculator()
//	dist := calc.Distribution(map[order.Status]int64{order.Created: 3, order.Packed: 2})
//	// dist.Total == 5, dist.Completed == 2, dist.InProgress == 3
type ReportCalculator struct{}

func NewReportCalculator() *ReportCalculator {
	return &ReportCalculator{}
}

// Distribution completes per-status counts with the totals. Every reachable
// status is present in the result, at zero when absent from counts.
func (c *ReportCalculator) Distribution(counts map[order.Status]int64) report.Distribution {
	d := report.Distribution{ByStatus: make(map[order.Status]int64, len(order.Statuses()))}
	for _, s := range order.Statuses() {
		n := counts[s]
		d.ByStatus[s] = n
		d.Total += n
	}
	d.Completed = d.ByStatus[order.Packed]
	d.InProgress = d.Total - d.Completed
	return d
}

// Counts builds WindowCounts from a total and a completed count.
func (c *ReportCalculator) Counts(total, completed int64) report.WindowCounts {
	return report.WindowCounts{Total: total, Completed: completed, InProgress: total - completed}
}

// Growth compares current with the three reference windows.
func (c *ReportCalculator) Growth(current, day, week, month report.WindowCounts) report.Growth {
	return report.Growth{
		Current:       current,
		PreviousDay:   day,
		PreviousWeek:  week,
		PreviousMonth: month,
		VsDay:         c.rates(current, day),
		VsWeek:        c.rates(current, week),
		VsMonth:       c.rates(current, month),
	}
}

func (c *ReportCalculator) rates(current, previous report.WindowCounts) report.GrowthRates {
	return report.GrowthRates{
		Total:      Percentage(current.Total, previous.Total),
		Completed:  Percentage(current.Completed, previous.Completed),
		InProgress: Percentage(current.InProgress, previous.InProgress),
	}
}

// Percentage is 100*(current-previous)/previous rounded to two decimals. With
// no previous activity it is 100 when current is positive and 0 otherwise.
func Percentage(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	delta := decimal.NewFromInt(current - previous)
	return delta.Mul(hundred).Div(decimal.NewFromInt(previous)).Round(2).InexactFloat64()
}

// MonthlySeries lays month-of-year counts out in twelve January-first buckets.
// Months outside 1..12 are ignored.
func (c *ReportCalculator) MonthlySeries(orders, packed map[time.Month]int64) report.MonthlySeries {
	s := report.MonthlySeries{
		Labels: make([]string, 12),
		Orders: make([]int64, 12),
		Packed: make([]int64, 12),
	}
	for m := time.January; m <= time.December; m++ {
		i := int(m) - 1
		s.Labels[i] = m.String()[:3]
		s.Orders[i] = orders[m]
		s.Packed[i] = packed[m]
	}
	return s
}

// RoundMinutes rounds an average expressed in minutes to two decimals.
func RoundMinutes(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
