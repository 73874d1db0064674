package core

import "strings"

// The aggregation engine is a set of pure functions over immutable
// snapshots of the meeting and payment collections. Every operation is
// total: empty input yields the identity value, unknown enum values are
// excluded from matching aggregates, and a payment whose meeting
// reference no longer resolves is bucketed under UnknownCity rather than
// dropped from totals.

// CityAmount is an amount aggregated under one city label.
type CityAmount struct {
	City   string
	Amount Money
}

// Summary holds the dashboard's headline figures.
type Summary struct {
	TotalPaid              Money
	PendingCount           int
	MeetingCount           int
	ProjectedMonthlyIncome Money
}

// DaySummary holds the daily-view figures for one calendar date.
type DaySummary struct {
	Total   Money
	Paid    Money
	Pending Money
	Items   []Payment
}

// MeetingIndex resolves meeting ids to meetings. A missing id resolves to
// the zero Meeting, never an error.
type MeetingIndex map[string]Meeting

// IndexMeetings builds a lookup table keyed by meeting id.
func IndexMeetings(meetings []Meeting) MeetingIndex {
	idx := make(MeetingIndex, len(meetings))
	for _, m := range meetings {
		idx[m.ID] = m
	}
	return idx
}

// TotalByStatus sums payment amounts with the given status.
func TotalByStatus(payments []Payment, status Status) Money {
	var total Money
	for _, p := range payments {
		if p.Status == status {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// CountByStatus counts payments with the given status.
func CountByStatus(payments []Payment, status Status) int {
	n := 0
	for _, p := range payments {
		if p.Status == status {
			n++
		}
	}
	return n
}

// FilterByDate returns payments attributed to exactly the given calendar
// date, in input order.
func FilterByDate(payments []Payment, date Date) []Payment {
	out := []Payment{}
	for _, p := range payments {
		if p.Date.SameDay(date) {
			out = append(out, p)
		}
	}
	return out
}

// FilterBySearch returns payments whose payer name, or resolved meeting
// title or location, contains the query case-insensitively. An empty query
// matches everything; a dangling meeting reference contributes empty
// strings to the match, never an error.
func FilterBySearch(payments []Payment, meetings []Meeting, query string) []Payment {
	idx := IndexMeetings(meetings)
	q := strings.ToLower(query)
	out := []Payment{}
	for _, p := range payments {
		if matchesSearch(p, idx[p.MeetingID], q) {
			out = append(out, p)
		}
	}
	return out
}

func matchesSearch(p Payment, m Meeting, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.PayerName), lowerQuery) ||
		strings.Contains(strings.ToLower(m.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(m.Location), lowerQuery)
}

// GroupByCity accumulates amounts of payments matching statusFilter into
// buckets keyed by the payment's meeting location. Bucket keys are the
// literal location strings; see CityBreakdownOptions for opt-in
// normalization. Dangling references land in the UnknownCity bucket.
func GroupByCity(payments []Payment, meetings []Meeting, statusFilter Status) map[string]Money {
	idx := IndexMeetings(meetings)
	buckets := make(map[string]Money)
	for _, p := range payments {
		if p.Status != statusFilter {
			continue
		}
		city := cityOf(idx, p)
		buckets[city] = buckets[city].Add(p.Amount)
	}
	return buckets
}

func cityOf(idx MeetingIndex, p Payment) string {
	if m, ok := idx[p.MeetingID]; ok {
		return m.Location
	}
	return UnknownCity
}

// CityBreakdownOptions controls city grouping behavior.
type CityBreakdownOptions struct {
	// NormalizeCities groups by trimmed, lowercased location keys so that
	// "Douala" and "douala " share one bucket. The displayed label is the
	// first-seen literal spelling. Off by default to preserve the literal
	// grouping behavior.
	NormalizeCities bool
}

// CityBreakdown returns PAID amounts per city in first-seen insertion
// order. Callers sort if they need a ranked view.
func CityBreakdown(meetings []Meeting, payments []Payment) []CityAmount {
	return CityBreakdownWithOptions(meetings, payments, CityBreakdownOptions{})
}

// CityBreakdownWithOptions is CityBreakdown with explicit grouping options.
func CityBreakdownWithOptions(meetings []Meeting, payments []Payment, opts CityBreakdownOptions) []CityAmount {
	idx := IndexMeetings(meetings)
	keyFor := func(city string) string { return city }
	if opts.NormalizeCities {
		keyFor = func(city string) string { return strings.ToLower(strings.TrimSpace(city)) }
	}

	order := []string{}
	labels := make(map[string]string)
	totals := make(map[string]Money)
	for _, p := range payments {
		if p.Status != StatusPaid {
			continue
		}
		city := cityOf(idx, p)
		key := keyFor(city)
		if _, seen := totals[key]; !seen {
			order = append(order, key)
			labels[key] = city
		}
		totals[key] = totals[key].Add(p.Amount)
	}

	out := make([]CityAmount, 0, len(order))
	for _, key := range order {
		out = append(out, CityAmount{City: labels[key], Amount: totals[key]})
	}
	return out
}

// DashboardSummary computes the dashboard's four headline figures from one
// snapshot.
func DashboardSummary(meetings []Meeting, payments []Payment) Summary {
	return Summary{
		TotalPaid:              TotalByStatus(payments, StatusPaid),
		PendingCount:           CountByStatus(payments, StatusPending),
		MeetingCount:           len(meetings),
		ProjectedMonthlyIncome: ProjectedMonthlyIncome(meetings),
	}
}

// DailySummary computes the daily-view figures for one calendar date.
// Total covers every payment attributed to the date regardless of status.
func DailySummary(meetings []Meeting, payments []Payment, date Date) DaySummary {
	items := FilterByDate(payments, date)
	return DaySummary{
		Total:   sumAmounts(items),
		Paid:    TotalByStatus(items, StatusPaid),
		Pending: TotalByStatus(items, StatusPending),
		Items:   items,
	}
}

func sumAmounts(payments []Payment) Money {
	var total Money
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
