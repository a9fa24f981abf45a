package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// StageDurations holds the time spent in each stage, in minutes rounded to two
// decimals. A nil field means one of its bounding timestamps is missing.
type StageDurations struct {
	Preparation *float64
	Control     *float64
	Packing     *float64
	Total       *float64
}

// StageDurations computes the per-stage durations of the order.
func (o *Order) StageDurations() StageDurations {
	return DurationsOf(o.createdAt, o.preparedAt, o.controlledAt, o.packedAt)
}

// DurationsOf computes stage durations from raw stage timestamps, for read
// models that do not rebuild the aggregate.
func DurationsOf(createdAt time.Time, preparedAt, controlledAt, packedAt *time.Time) StageDurations {
	return StageDurations{
		Preparation: minutesBetween(&createdAt, preparedAt),
		Control:     minutesBetween(preparedAt, controlledAt),
		Packing:     minutesBetween(controlledAt, packedAt),
		Total:       minutesBetween(&createdAt, packedAt),
	}
}

// Minutes rounds a duration to minutes with two decimals.
func Minutes(d time.Duration) float64 {
	return decimal.NewFromFloat(d.Minutes()).Round(2).InexactFloat64()
}

func minutesBetween(from, to *time.Time) *float64 {
	if from == nil || to == nil {
		return nil
	}
	m := Minutes(to.Sub(*from))
	return &m
}
