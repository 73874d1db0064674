package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"nexcrm/internal/core"
)

// MeetingScheduleStore is the persistence surface the processor needs.
// Satisfied by the SQLite repository.
type MeetingScheduleStore interface {
	ListMeetings(ctx context.Context) ([]core.Meeting, error)
	ReplaceMeeting(ctx context.Context, m core.Meeting) error
}

// PaymentRecorder records the PENDING payments created by a collection
// round. Satisfied by PaymentService.
type PaymentRecorder interface {
	RecordPayment(ctx context.Context, p core.Payment) (*core.Payment, error)
}

// OccurrenceProcessor turns due meetings into expected contributions: one
// PENDING payment per attendee, then rolls the meeting's next date forward.
type OccurrenceProcessor struct {
	meetings MeetingScheduleStore
	payments PaymentRecorder
}

func NewOccurrenceProcessor(meetings MeetingScheduleStore, payments PaymentRecorder) *OccurrenceProcessor {
	return &OccurrenceProcessor{
		meetings: meetings,
		payments: payments,
	}
}

// ProcessDueMeetings processes every meeting whose next date has arrived.
// Returns the number of payments created. Meetings with an unrecognized
// frequency are logged and skipped, never failed.
func (p *OccurrenceProcessor) ProcessDueMeetings(ctx context.Context, now time.Time) (int, error) {
	if p.meetings == nil || p.payments == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	meetings, err := p.meetings.ListMeetings(ctx)
	if err != nil {
		return 0, fmt.Errorf("list meetings: %w", err)
	}

	slog.InfoContext(ctx, "Processing meeting schedules",
		"total", len(meetings),
		"processing_date", now.Format("2006-01-02"))

	created := 0

	for _, m := range meetings {
		checker, err := GetOccurrenceChecker(m.Frequency)
		if err != nil {
			slog.WarnContext(ctx, "Skipping meeting with unrecognized frequency",
				"id", m.ID,
				"title", m.Title,
				"frequency", m.Frequency)
			continue
		}

		if !checker.IsDue(m.NextDate.Time, now) {
			continue
		}

		n, err := p.recordRound(ctx, m, now)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to record collection round",
				"id", m.ID,
				"title", m.Title,
				"error", err)
			continue
		}
		created += n

		m.NextDate = core.Date{Time: checker.Advance(m.NextDate.Time)}
		if err := p.meetings.ReplaceMeeting(ctx, m); err != nil {
			slog.ErrorContext(ctx, "Failed to advance meeting date",
				"id", m.ID,
				"error", err)
			// Payments were created, next run will see the stale date.
		}

		slog.InfoContext(ctx, "Collection round recorded",
			"id", m.ID,
			"title", m.Title,
			"payments", n,
			"next_date", m.NextDate.ISO())
	}

	slog.InfoContext(ctx, "Meeting schedule processing complete",
		"payments_created", created,
		"total_checked", len(meetings))

	return created, nil
}

func (p *OccurrenceProcessor) recordRound(ctx context.Context, m core.Meeting, now time.Time) (int, error) {
	created := 0
	for _, attendee := range m.Attendees {
		payment := core.Payment{
			MeetingID: m.ID,
			Amount:    m.ContributionAmount,
			Status:    core.StatusPending,
			Date:      core.Date{Time: now},
			PayerName: attendee,
			Method:    core.MethodCash,
		}
		if _, err := p.payments.RecordPayment(ctx, payment); err != nil {
			return created, fmt.Errorf("record payment for %s: %w", attendee, err)
		}
		created++
	}
	return created, nil
}
