// Package period resolves the date filters accepted by list, queue, report and
// bulk delete operations into half-open [Start, End) ranges in the service's
// calendar time zone.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// DayLayout is the accepted format for explicit dates.
const DayLayout = "2006-01-02"

// Period tokens.
const (
	Today     = "today"
	Yesterday = "yesterday"
	Week      = "week"
	Month     = "month"
	All       = "all"
	Custom    = "custom"
)

// Params carries the raw date filter of a request. Date holds a period token
// or a single YYYY-MM-DD day; StartDate and EndDate form an explicit range and
// take precedence over Date.
type Params struct {
	Date      string
	StartDate string
	EndDate   string
}

func (p Params) explicit() bool {
	return strings.TrimSpace(p.StartDate) != "" || strings.TrimSpace(p.EndDate) != ""
}

// Range is a half-open interval [Start, End). A nil bound is unbounded.
type Range struct {
	Start *time.Time
	End   *time.Time
	Label string
	// Fallback is set when the requested filter was unusable and today was
	// substituted. Reason explains what was rejected.
	Fallback bool
	Reason   string
}

// Bounded reports whether both ends are set.
func (r Range) Bounded() bool {
	return r.Start != nil && r.End != nil
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && !t.Before(*r.End) {
		return false
	}
	return true
}

// Resolve turns a date filter into a range. It never fails: an unusable filter
// yields today's range with Fallback set, so read views always return data.
//
// Explicit ranges default a missing start to today 00:00 and a missing end to
// tomorrow 00:00. Tokens resolve as follows, d being today 00:00 in loc:
//
//	today     [d, d+1)
//	yesterday [d-1, d)
//	week      [d-6, d+1)
//	month     [d-29, d+1)
//	all       unbounded
//	YYYY-MM-DD that day
func Resolve(p Params, now time.Time, loc *time.Location) Range {
	today := startOfDay(now, loc)

	if p.explicit() {
		r, err := explicitRange(p.StartDate, p.EndDate, today, loc)
		if err != nil {
			return fallback(today, err.Error())
		}
		return r
	}

	token := strings.ToLower(strings.TrimSpace(p.Date))
	switch token {
	case "", Today:
		return days(Today, today, 1)
	case Yesterday:
		return days(Yesterday, today.AddDate(0, 0, -1), 1)
	case Week:
		return days(Week, today.AddDate(0, 0, -6), 7)
	case Month:
		return days(Month, today.AddDate(0, 0, -29), 30)
	case All:
		return Range{Label: All}
	}

	day, err := parseDay(token, loc)
	if err != nil {
		return fallback(today, err.Error())
	}
	return days(Custom, day, 1)
}

// ResolveStrict parses an explicit range that must be complete and well formed.
// It backs destructive operations where substituting a default is not acceptable.
func ResolveStrict(startDate, endDate string, loc *time.Location) (Range, error) {
	if strings.TrimSpace(startDate) == "" {
		return Range{}, errs.NewValueIsRequiredError("start_date")
	}
	if strings.TrimSpace(endDate) == "" {
		return Range{}, errs.NewValueIsRequiredError("end_date")
	}
	return explicitRange(startDate, endDate, time.Time{}, loc)
}

func explicitRange(startDate, endDate string, today time.Time, loc *time.Location) (Range, error) {
	start := today
	end := today.AddDate(0, 0, 1)

	if s := strings.TrimSpace(startDate); s != "" {
		parsed, err := parseDay(s, loc)
		if err != nil {
			return Range{}, errs.NewValueIsInvalidErrorWithCause("start_date", err)
		}
		start = parsed
	}
	if e := strings.TrimSpace(endDate); e != "" {
		parsed, err := parseDay(e, loc)
		if err != nil {
			return Range{}, errs.NewValueIsInvalidErrorWithCause("end_date", err)
		}
		end = parsed
	}
	if end.Before(start) {
		return Range{}, errs.NewValueIsInvalidErrorWithCause("end_date", errors.New("end_date precedes start_date"))
	}
	return Range{Start: &start, End: &end, Label: Custom}, nil
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DayLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a YYYY-MM-DD date or period token", s)
	}
	return day, nil
}

func days(label string, start time.Time, n int) Range {
	end := start.AddDate(0, 0, n)
	return Range{Start: &start, End: &end, Label: label}
}

func fallback(today time.Time, reason string) Range {
	r := days(Today, today, 1)
	r.Fallback = true
	r.Reason = reason
	return r
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Calendar binds a clock to the configured time zone.
type Calendar struct {
	clock kernel.Clock
	loc   *time.Location
}

func NewCalendar(clock kernel.Clock, loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{clock: clock, loc: loc}
}

func (c Calendar) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

func (c Calendar) Location() *time.Location {
	return c.loc
}

func (c Calendar) Resolve(p Params) Range {
	return Resolve(p, c.Now(), c.loc)
}

func (c Calendar) ResolveStrict(startDate, endDate string) (Range, error) {
	return ResolveStrict(startDate, endDate, c.loc)
}
