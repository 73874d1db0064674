package services

import (
	"context"
	"testing"
	"time"

	"nexcrm/internal/core"
)

type fakeScheduleStore struct {
	meetings []core.Meeting
	replaced []core.Meeting
}

func (s *fakeScheduleStore) ListMeetings(_ context.Context) ([]core.Meeting, error) {
	return s.meetings, nil
}

func (s *fakeScheduleStore) ReplaceMeeting(_ context.Context, m core.Meeting) error {
	s.replaced = append(s.replaced, m)
	return nil
}

type fakeRecorder struct {
	recorded []core.Payment
}

func (r *fakeRecorder) RecordPayment(_ context.Context, p core.Payment) (*core.Payment, error) {
	r.recorded = append(r.recorded, p)
	return &p, nil
}

func scheduleMeeting(id string, frequency core.Frequency, nextDate core.Date, attendees ...string) core.Meeting {
	return core.Meeting{
		ID:                 id,
		Title:              "Tontine " + id,
		Location:           "Douala",
		Frequency:          frequency,
		ContributionAmount: core.Money{Francs: 50000},
		Attendees:          attendees,
		NextDate:           nextDate,
	}
}

func TestProcessDueMeetings(t *testing.T) {
	store := &fakeScheduleStore{meetings: []core.Meeting{
		scheduleMeeting("m1", core.Weekly, core.NewDate(2024, 6, 8), "Jean Mballa", "Sarah Nkomo"),
		scheduleMeeting("m2", core.Monthly, core.NewDate(2024, 7, 1), "Paul Eto"),
	}}
	recorder := &fakeRecorder{}
	processor := NewOccurrenceProcessor(store, recorder)

	now := time.Date(2024, 6, 8, 9, 0, 0, 0, time.UTC)
	created, err := processor.ProcessDueMeetings(context.Background(), now)
	if err != nil {
		t.Fatalf("ProcessDueMeetings: %v", err)
	}

	if created != 2 {
		t.Errorf("created = %d, want 2", created)
	}
	if len(recorder.recorded) != 2 {
		t.Fatalf("recorded = %d payments, want 2", len(recorder.recorded))
	}
	for _, p := range recorder.recorded {
		if p.MeetingID != "m1" || p.Status != core.StatusPending || p.Amount.Francs != 50000 {
			t.Errorf("unexpected payment %+v", p)
		}
	}
	if recorder.recorded[0].PayerName != "Jean Mballa" || recorder.recorded[1].PayerName != "Sarah Nkomo" {
		t.Errorf("payer names = %q, %q", recorder.recorded[0].PayerName, recorder.recorded[1].PayerName)
	}

	if len(store.replaced) != 1 {
		t.Fatalf("replaced = %d meetings, want 1", len(store.replaced))
	}
	if got := store.replaced[0].NextDate.ISO(); got != "2024-06-15" {
		t.Errorf("advanced NextDate = %s, want 2024-06-15", got)
	}
}

func TestProcessDueMeetingsSkipsUnknownFrequency(t *testing.T) {
	store := &fakeScheduleStore{meetings: []core.Meeting{
		scheduleMeeting("m1", core.Frequency("QUARTERLY"), core.NewDate(2024, 6, 1), "Jean Mballa"),
	}}
	recorder := &fakeRecorder{}
	processor := NewOccurrenceProcessor(store, recorder)

	created, err := processor.ProcessDueMeetings(context.Background(), time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ProcessDueMeetings: %v", err)
	}
	if created != 0 || len(recorder.recorded) != 0 || len(store.replaced) != 0 {
		t.Errorf("unknown frequency should be skipped, created=%d", created)
	}
}

func TestProcessDueMeetingsNothingDue(t *testing.T) {
	store := &fakeScheduleStore{meetings: []core.Meeting{
		scheduleMeeting("m1", core.Weekly, core.NewDate(2024, 6, 8), "Jean Mballa"),
	}}
	recorder := &fakeRecorder{}
	processor := NewOccurrenceProcessor(store, recorder)

	created, err := processor.ProcessDueMeetings(context.Background(), time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ProcessDueMeetings: %v", err)
	}
	if created != 0 || len(store.replaced) != 0 {
		t.Errorf("nothing should be due, created=%d", created)
	}
}
