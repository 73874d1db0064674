package core

import "testing"

func TestFilterPaymentsEmptyFilterReturnsAll(t *testing.T) {
	payments := fixturePayments()
	got := FilterPayments(payments, fixtureMeetings(), Filter{})
	if len(got) != len(payments) {
		t.Fatalf("got %d payments, want %d", len(got), len(payments))
	}
	for i := range payments {
		if got[i].ID != payments[i].ID {
			t.Fatalf("order changed at %d", i)
		}
	}
}

func TestFilterPaymentsComposesWithAnd(t *testing.T) {
	meetings := []Meeting{
		{ID: "m1", Title: "Hebdo Executive", Location: "Douala"},
		{ID: "m2", Title: "Revue Produit", Location: "Yaoundé"},
	}
	date := NewDate(2024, 6, 1)
	payments := []Payment{
		{ID: "p1", MeetingID: "m1", Status: StatusPaid, Date: date, PayerName: "Sarah Miller"},
		{ID: "p2", MeetingID: "m2", Status: StatusPaid, Date: date, PayerName: "Sarah Miller"},
		{ID: "p3", MeetingID: "m1", Status: StatusPending, Date: date, PayerName: "Sarah Miller"},
		{ID: "p4", MeetingID: "m1", Status: StatusPaid, Date: NewDate(2024, 6, 2), PayerName: "Sarah Miller"},
		{ID: "p5", MeetingID: "m1", Status: StatusPaid, Date: date, PayerName: "John Doe"},
	}

	got := FilterPayments(payments, meetings, Filter{
		Query:    "sarah",
		City:     "Douala",
		Date:     &date,
		Statuses: []Status{StatusPaid},
	})
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("composite filter = %v, want [p1]", got)
	}
}

func TestFilterPaymentsStatusSubset(t *testing.T) {
	payments := []Payment{
		{ID: "p1", Status: StatusPaid},
		{ID: "p2", Status: StatusPending},
		{ID: "p3", Status: StatusApproved},
		{ID: "p4", Status: StatusCancelled},
	}

	got := FilterPayments(payments, nil, Filter{Statuses: []Status{StatusPending, StatusApproved}})
	if len(got) != 2 || got[0].ID != "p2" || got[1].ID != "p3" {
		t.Fatalf("status subset = %v, want [p2 p3]", got)
	}
}

func TestFilterPaymentsUnknownCity(t *testing.T) {
	payments := []Payment{
		{ID: "p1", MeetingID: "gone", Status: StatusPaid},
	}

	got := FilterPayments(payments, nil, Filter{City: UnknownCity})
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("unknown-city filter = %v, want [p1]", got)
	}
}
