package ports

import (
	"context"
	"time"
)

// UpstreamOrder is an order as published by the upstream commerce system.
type UpstreamOrder struct {
	ID           string
	Reference    string
	CustomerName string
	Status       string
	Payment      string
	TotalPaid    string
	PlacedAt     time.Time
	Products     []UpstreamProduct
}

// UpstreamProduct is one line of an upstream order.
type UpstreamProduct struct {
	Name      string
	Quantity  int
	UnitPrice string
}

// UpstreamFeed reads the upstream commerce system. It is read-only.
type UpstreamFeed interface {
	// OrdersOn returns the orders placed on day (a calendar date in the
	// service's time zone). Failures are UpstreamUnavailableError.
	OrdersOn(ctx context.Context, day time.Time) ([]UpstreamOrder, error)
}
