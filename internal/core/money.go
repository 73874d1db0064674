// Package core provides the NexCRM domain model and the pure aggregation
// engine that derives dashboard figures from meeting and payment snapshots.
//
// This file contains display formatting for FCFA amounts.
package core

import (
	"strconv"
	"strings"
)

// FormatFCFA renders an amount with dotted thousands groups and the
// currency suffix, e.g. 1234567 -> "1.234.567 FCFA". Display only; all
// arithmetic stays on Francs.
func (m Money) FormatFCFA() string {
	neg := m.Francs < 0
	v := m.Francs
	if neg {
		v = -v
	}
	digits := strconv.FormatInt(v, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	out := b.String() + " FCFA"
	if neg {
		return "-" + out
	}
	return out
}
