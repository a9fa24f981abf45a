// Package report holds the value types produced by the reporting engine.
// Every type has a meaningful zero value so a section that could not be
// computed is reported as zeros instead of failing the whole report.
package report

import "fulfillment/internal/core/domain/model/order"

// Distribution counts orders per status inside a window.
type Distribution struct {
	ByStatus   map[order.Status]int64
	Total      int64
	Completed  int64
	InProgress int64
}

// WindowCounts are the figures compared by growth percentages.
type WindowCounts struct {
	Total      int64
	Completed  int64
	InProgress int64
}

// GrowthRates are percentage changes of each figure against one reference window.
type GrowthRates struct {
	Total      float64
	Completed  float64
	InProgress float64
}

// Growth compares the current window with the previous day, week and month.
type Growth struct {
	Current       WindowCounts
	PreviousDay   WindowCounts
	PreviousWeek  WindowCounts
	PreviousMonth WindowCounts

	VsDay   GrowthRates
	VsWeek  GrowthRates
	VsMonth GrowthRates
}

// AverageDurations are mean minutes spent per stage across packed orders.
type AverageDurations struct {
	Preparation float64
	Control     float64
	Packing     float64
	Total       float64
	Samples     int64
}

// AgentWorkload counts the orders an agent handled at each stage.
type AgentWorkload struct {
	AgentID     string
	Username    string
	DisplayName string
	Created     int64
	Prepared    int64
	Controlled  int64
	Packed      int64
	Total       int64
}

// MonthlySeries holds twelve month-of-year buckets, January first.
type MonthlySeries struct {
	Labels []string
	Orders []int64
	Packed []int64
}
