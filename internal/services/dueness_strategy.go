// Package services provides business logic and orchestration services.
//
// This file implements the Strategy Pattern for contribution occurrence
// scheduling. Each meeting frequency has its own checker that decides when
// a collection round is due and what the following round's date is.

package services

import (
	"fmt"
	"time"

	"nexcrm/internal/core"
)

// OccurrenceChecker is the strategy interface for contribution scheduling.
type OccurrenceChecker interface {
	// IsDue returns true if the collection round scheduled for nextDate
	// should run now. Comparison is at calendar-day resolution.
	IsDue(nextDate, now time.Time) bool

	// Advance returns the date of the round after nextDate.
	Advance(nextDate time.Time) time.Time
}

func dueByDay(nextDate, now time.Time) bool {
	next := nextDate.Format("2006-01-02")
	today := now.Format("2006-01-02")
	return today >= next
}

// WeeklyOccurrence schedules a round every 7 days.
type WeeklyOccurrence struct{}

func (WeeklyOccurrence) IsDue(nextDate, now time.Time) bool {
	return dueByDay(nextDate, now)
}

func (WeeklyOccurrence) Advance(nextDate time.Time) time.Time {
	return nextDate.AddDate(0, 0, 7)
}

// BiWeeklyOccurrence schedules a round every 14 days.
type BiWeeklyOccurrence struct{}

func (BiWeeklyOccurrence) IsDue(nextDate, now time.Time) bool {
	return dueByDay(nextDate, now)
}

func (BiWeeklyOccurrence) Advance(nextDate time.Time) time.Time {
	return nextDate.AddDate(0, 0, 14)
}

// MonthlyOccurrence schedules a round on the same day of the next month,
// clamped to the month's last day when the target day does not exist.
type MonthlyOccurrence struct{}

func (MonthlyOccurrence) IsDue(nextDate, now time.Time) bool {
	return dueByDay(nextDate, now)
}

func (MonthlyOccurrence) Advance(nextDate time.Time) time.Time {
	targetDay := nextDate.Day()
	year, month := nextDate.Year(), nextDate.Month()+1
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if targetDay > lastDay {
		targetDay = lastDay
	}
	return time.Date(year, month, targetDay, 0, 0, 0, 0, time.UTC)
}

// occurrenceStrategies maps frequencies to their corresponding checkers.
var occurrenceStrategies = map[core.Frequency]OccurrenceChecker{
	core.Weekly:   WeeklyOccurrence{},
	core.BiWeekly: BiWeeklyOccurrence{},
	core.Monthly:  MonthlyOccurrence{},
}

// GetOccurrenceChecker returns the checker for a frequency. Returns an
// error for unsupported frequencies.
func GetOccurrenceChecker(frequency core.Frequency) (OccurrenceChecker, error) {
	checker, ok := occurrenceStrategies[frequency]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", frequency)
	}
	return checker, nil
}

// RegisterOccurrenceChecker registers a custom checker for a frequency.
func RegisterOccurrenceChecker(frequency core.Frequency, checker OccurrenceChecker) {
	occurrenceStrategies[frequency] = checker
}
