package core

import "testing"

func fixtureMeetings() []Meeting {
	return []Meeting{
		{
			ID:                 "m1",
			Title:              "Hebdo Executive",
			Location:           "Douala",
			Frequency:          Weekly,
			ContributionAmount: Money{Francs: 50000},
			NextDate:           NewDate(2024, 6, 15),
		},
	}
}

func fixturePayments() []Payment {
	return []Payment{
		{ID: "p1", MeetingID: "m1", Amount: Money{Francs: 50000}, Status: StatusPaid, Date: NewDate(2024, 6, 1), PayerName: "Sarah Miller", Method: MethodBankTransfer},
		{ID: "p2", MeetingID: "m1", Amount: Money{Francs: 50000}, Status: StatusPending, Date: NewDate(2024, 6, 3), PayerName: "Mike Ross", Method: MethodMobileMoney},
	}
}

func TestTotalByStatus(t *testing.T) {
	payments := fixturePayments()

	if got := TotalByStatus(payments, StatusPaid); got.Francs != 50000 {
		t.Fatalf("paid total = %d, want 50000", got.Francs)
	}
	if got := TotalByStatus(payments, StatusCancelled); got.Francs != 0 {
		t.Fatalf("cancelled total = %d, want 0", got.Francs)
	}
	if got := TotalByStatus(nil, StatusPaid); got.Francs != 0 {
		t.Fatalf("empty total = %d, want 0", got.Francs)
	}
}

func TestStatusPartitionIsExhaustive(t *testing.T) {
	payments := []Payment{
		{Amount: Money{Francs: 100}, Status: StatusPending},
		{Amount: Money{Francs: 200}, Status: StatusApproved},
		{Amount: Money{Francs: 300}, Status: StatusPaid},
		{Amount: Money{Francs: 400}, Status: StatusCancelled},
		{Amount: Money{Francs: 500}, Status: StatusPaid},
	}

	var partitioned int64
	for _, s := range []Status{StatusPending, StatusApproved, StatusPaid, StatusCancelled} {
		partitioned += TotalByStatus(payments, s).Francs
	}
	if all := sumAmounts(payments); partitioned != all.Francs {
		t.Fatalf("partition sum = %d, want %d", partitioned, all.Francs)
	}
}

func TestCountByStatus(t *testing.T) {
	if got := CountByStatus(fixturePayments(), StatusPending); got != 1 {
		t.Fatalf("pending count = %d, want 1", got)
	}
	if got := CountByStatus(nil, StatusPending); got != 0 {
		t.Fatalf("empty count = %d, want 0", got)
	}
}

func TestFilterByDate(t *testing.T) {
	payments := fixturePayments()

	got := FilterByDate(payments, NewDate(2024, 6, 1))
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("expected [p1], got %v", got)
	}
	if got := FilterByDate(payments, NewDate(2024, 7, 1)); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestFilterBySearch(t *testing.T) {
	meetings := fixtureMeetings()
	payments := fixturePayments()

	cases := []struct {
		query string
		want  []string
	}{
		{"", []string{"p1", "p2"}},            // empty query is vacuously true
		{"jean", nil},                         // no such payer
		{"sarah", []string{"p1"}},             // case-insensitive payer match
		{"SARAH", []string{"p1"}},
		{"douala", []string{"p1", "p2"}},      // meeting location match
		{"hebdo", []string{"p1", "p2"}},       // meeting title match
	}
	for _, tc := range cases {
		got := FilterBySearch(payments, meetings, tc.query)
		if len(got) != len(tc.want) {
			t.Fatalf("query %q: got %d results, want %d", tc.query, len(got), len(tc.want))
		}
		for i, id := range tc.want {
			if got[i].ID != id {
				t.Fatalf("query %q: result[%d] = %s, want %s", tc.query, i, got[i].ID, id)
			}
		}
	}
}

func TestFilterBySearchPreservesOrder(t *testing.T) {
	payments := fixturePayments()
	got := FilterBySearch(payments, fixtureMeetings(), "")
	for i := range payments {
		if got[i].ID != payments[i].ID {
			t.Fatalf("order changed at %d: %s", i, got[i].ID)
		}
	}
}

func TestGroupByCityConservesPaidTotal(t *testing.T) {
	meetings := []Meeting{
		{ID: "m1", Location: "Douala"},
		{ID: "m2", Location: "Yaoundé"},
	}
	payments := []Payment{
		{MeetingID: "m1", Amount: Money{Francs: 100}, Status: StatusPaid},
		{MeetingID: "m2", Amount: Money{Francs: 200}, Status: StatusPaid},
		{MeetingID: "m1", Amount: Money{Francs: 999}, Status: StatusPending},
		{MeetingID: "ghost", Amount: Money{Francs: 50}, Status: StatusPaid},
	}

	buckets := GroupByCity(payments, meetings, StatusPaid)
	var sum int64
	for _, v := range buckets {
		sum += v.Francs
	}
	if paid := TotalByStatus(payments, StatusPaid); sum != paid.Francs {
		t.Fatalf("bucket sum = %d, want %d", sum, paid.Francs)
	}
	if buckets[UnknownCity].Francs != 50 {
		t.Fatalf("unknown bucket = %d, want 50", buckets[UnknownCity].Francs)
	}
}

func TestGroupByCityLiteralKeys(t *testing.T) {
	meetings := []Meeting{
		{ID: "m1", Location: "Douala"},
		{ID: "m2", Location: "douala "},
	}
	payments := []Payment{
		{MeetingID: "m1", Amount: Money{Francs: 100}, Status: StatusPaid},
		{MeetingID: "m2", Amount: Money{Francs: 200}, Status: StatusPaid},
	}

	buckets := GroupByCity(payments, meetings, StatusPaid)
	if len(buckets) != 2 {
		t.Fatalf("expected two literal buckets, got %d", len(buckets))
	}
}

func TestCityBreakdownInsertionOrder(t *testing.T) {
	meetings := []Meeting{
		{ID: "m1", Location: "Douala"},
		{ID: "m2", Location: "Bafoussam"},
	}
	payments := []Payment{
		{MeetingID: "m2", Amount: Money{Francs: 10}, Status: StatusPaid},
		{MeetingID: "m1", Amount: Money{Francs: 20}, Status: StatusPaid},
		{MeetingID: "m2", Amount: Money{Francs: 30}, Status: StatusPaid},
	}

	got := CityBreakdown(meetings, payments)
	if len(got) != 2 {
		t.Fatalf("expected 2 cities, got %d", len(got))
	}
	if got[0].City != "Bafoussam" || got[0].Amount.Francs != 40 {
		t.Fatalf("first bucket = %+v, want Bafoussam/40", got[0])
	}
	if got[1].City != "Douala" || got[1].Amount.Francs != 20 {
		t.Fatalf("second bucket = %+v, want Douala/20", got[1])
	}
}

func TestCityBreakdownNormalizeOption(t *testing.T) {
	meetings := []Meeting{
		{ID: "m1", Location: "Douala"},
		{ID: "m2", Location: "douala "},
	}
	payments := []Payment{
		{MeetingID: "m1", Amount: Money{Francs: 100}, Status: StatusPaid},
		{MeetingID: "m2", Amount: Money{Francs: 200}, Status: StatusPaid},
	}

	got := CityBreakdownWithOptions(meetings, payments, CityBreakdownOptions{NormalizeCities: true})
	if len(got) != 1 {
		t.Fatalf("expected one normalized bucket, got %d", len(got))
	}
	if got[0].City != "Douala" || got[0].Amount.Francs != 300 {
		t.Fatalf("bucket = %+v, want Douala/300 with first-seen label", got[0])
	}
}

func TestDashboardSummaryScenario(t *testing.T) {
	got := DashboardSummary(fixtureMeetings(), fixturePayments())

	if got.TotalPaid.Francs != 50000 {
		t.Fatalf("TotalPaid = %d, want 50000", got.TotalPaid.Francs)
	}
	if got.PendingCount != 1 {
		t.Fatalf("PendingCount = %d, want 1", got.PendingCount)
	}
	if got.MeetingCount != 1 {
		t.Fatalf("MeetingCount = %d, want 1", got.MeetingCount)
	}
	if got.ProjectedMonthlyIncome.Francs != 200000 {
		t.Fatalf("ProjectedMonthlyIncome = %d, want 200000", got.ProjectedMonthlyIncome.Francs)
	}
}

func TestDashboardSummaryEmpty(t *testing.T) {
	got := DashboardSummary(nil, nil)
	if got.TotalPaid.Francs != 0 || got.PendingCount != 0 || got.MeetingCount != 0 || got.ProjectedMonthlyIncome.Francs != 0 {
		t.Fatalf("empty summary not identity: %+v", got)
	}
}

func TestDailySummaryScenario(t *testing.T) {
	got := DailySummary(fixtureMeetings(), fixturePayments(), NewDate(2024, 6, 1))

	if got.Total.Francs != 50000 {
		t.Fatalf("Total = %d, want 50000", got.Total.Francs)
	}
	if got.Paid.Francs != 50000 {
		t.Fatalf("Paid = %d, want 50000", got.Paid.Francs)
	}
	if got.Pending.Francs != 0 {
		t.Fatalf("Pending = %d, want 0", got.Pending.Francs)
	}
	if len(got.Items) != 1 || got.Items[0].ID != "p1" {
		t.Fatalf("Items = %v, want [p1]", got.Items)
	}
}

func TestDanglingReferenceStillCounted(t *testing.T) {
	payments := []Payment{
		{ID: "p1", MeetingID: "gone", Amount: Money{Francs: 75000}, Status: StatusPaid},
	}

	if got := TotalByStatus(payments, StatusPaid); got.Francs != 75000 {
		t.Fatalf("dangling payment dropped from total: %d", got.Francs)
	}
	breakdown := CityBreakdown(nil, payments)
	if len(breakdown) != 1 || breakdown[0].City != UnknownCity || breakdown[0].Amount.Francs != 75000 {
		t.Fatalf("dangling payment not bucketed under %q: %+v", UnknownCity, breakdown)
	}
}

func TestUnknownStatusExcludedFromAggregates(t *testing.T) {
	payments := []Payment{
		{Amount: Money{Francs: 100}, Status: StatusPaid},
		{Amount: Money{Francs: 999}, Status: Status("LIMBO")},
	}
	if got := TotalByStatus(payments, StatusPaid); got.Francs != 100 {
		t.Fatalf("paid total = %d, want 100", got.Francs)
	}
}
