package core

// OccurrencesPerMonth maps a recurrence frequency to its monthly occurrence
// multiplier. This is a fixed lookup, not a calendar-accurate figure (a
// month is not exactly four weeks); it is a dashboard-level estimate and
// must not be used for billing.
//
// An unrecognized frequency falls back to 1 so that one bad record cannot
// sink the aggregate view. FrequencyDiagnostics surfaces such records so
// the lenient default does not hide persistent bad data.
func OccurrencesPerMonth(f Frequency) int64 {
	switch f {
	case Weekly:
		return 4
	case BiWeekly:
		return 2
	case Monthly:
		return 1
	default:
		return 1
	}
}

// ProjectedMonthlyIncome sums each meeting's per-occurrence contribution
// normalized to a monthly figure. No proration for partial months and no
// cross-meeting interaction.
func ProjectedMonthlyIncome(meetings []Meeting) Money {
	var total Money
	for _, m := range meetings {
		total = total.Add(m.ContributionAmount.Mul(OccurrencesPerMonth(m.Frequency)))
	}
	return total
}

// FrequencyDiagnostics returns the meetings whose frequency falls outside
// the closed enum. These are projected with the default multiplier of 1;
// callers can surface them as a data-quality warning.
func FrequencyDiagnostics(meetings []Meeting) []Meeting {
	var bad []Meeting
	for _, m := range meetings {
		if !m.Frequency.Valid() {
			bad = append(bad, m)
		}
	}
	return bad
}
