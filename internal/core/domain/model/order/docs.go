// Package order implements the warehouse order lifecycle.
//
// The package includes:
//   - Order: the aggregate root carrying reference, cart, line count, the
//     actor credited with each stage and the stage timestamps
//   - Status: the forward-only state machine Created -> Prepared -> Controlled -> Packed
//   - Snapshot and RestoreOrder: the flat form used by persistence
//   - StageDurations: minutes spent in each stage
//
// Key business rules:
//   - a transition only succeeds from the immediately preceding status
//   - a failed transition leaves the order untouched
//   - stage timestamps never go backwards and completedAt equals packedAt
//   - administrative edits never touch actors, timestamps, reference or status
package order
