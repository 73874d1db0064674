package core

import "strings"

// Filter describes the composite query the presentation layer builds from
// user input. Zero-valued dimensions are inactive.
type Filter struct {
	Query    string
	City     string
	Date     *Date
	Statuses []Status
}

// PaymentPredicate decides whether one payment, with its resolved meeting,
// matches a filter dimension. Predicates compose with logical AND; adding
// a dimension means adding a predicate, not touching existing ones.
type PaymentPredicate func(p Payment, m Meeting) bool

// Predicates expands the filter into its active predicates.
func (f Filter) Predicates() []PaymentPredicate {
	var preds []PaymentPredicate
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		preds = append(preds, func(p Payment, m Meeting) bool {
			return matchesSearch(p, m, q)
		})
	}
	if f.City != "" {
		preds = append(preds, func(p Payment, m Meeting) bool {
			city := m.Location
			if m.ID == "" {
				city = UnknownCity
			}
			return city == f.City
		})
	}
	if f.Date != nil {
		date := *f.Date
		preds = append(preds, func(p Payment, _ Meeting) bool {
			return p.Date.SameDay(date)
		})
	}
	if len(f.Statuses) > 0 {
		statuses := f.Statuses
		preds = append(preds, func(p Payment, _ Meeting) bool {
			for _, s := range statuses {
				if p.Status == s {
					return true
				}
			}
			return false
		})
	}
	return preds
}

// FilterPayments folds the filter's predicates over the payment snapshot,
// short-circuiting per record. An empty filter returns all payments in
// input order.
func FilterPayments(payments []Payment, meetings []Meeting, f Filter) []Payment {
	idx := IndexMeetings(meetings)
	preds := f.Predicates()
	out := []Payment{}
	for _, p := range payments {
		m := idx[p.MeetingID]
		keep := true
		for _, pred := range preds {
			if !pred(p, m) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, p)
		}
	}
	return out
}
