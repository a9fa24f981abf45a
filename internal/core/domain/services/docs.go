// Package services holds the domain calculations of the reporting engine that
// do not belong to a single aggregate: status distribution totals, growth
// percentages between calendar windows and month-of-year series.
//
// The store performs the grouping and averaging. These services turn the raw
// counts it returns into report values with the business rules applied.
package services
