// Package fees holds the pure fee/status/validity derivations. The
// same functions back both the preview responses and the authoritative
// server-side recomputation on every write, so the two can never
// drift. All functions are total: bad input degrades to zero/Unpaid,
// never an error.
package fees

import (
	"time"

	"library-service/internal/models"
)

// Total sums catalog prices over the selected batch labels. The
// selection is a set: each label counts once however often it appears.
// Labels that no longer exist in the catalog contribute 0.
func Total(selected []string, catalog []models.Batch) int64 {
	if len(selected) == 0 || len(catalog) == 0 {
		return 0
	}

	prices := make(map[string]int64, len(catalog))
	for _, b := range catalog {
		prices[b.Time] = b.Price
	}

	seen := make(map[string]struct{}, len(selected))

	var total int64
	for _, label := range selected {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		total += prices[label]
	}

	return total
}

// Status derives the payment state from paid vs total. Over-payment
// clamps to Paid; negative input reads as 0; a zero total is always
// Unpaid.
func Status(paid, total int64) models.PaymentStatus {
	if paid < 0 {
		paid = 0
	}
	if total < 0 {
		total = 0
	}

	switch {
	case total > 0 && paid >= total:
		return models.StatusPaid
	case paid > 0 && paid < total:
		return models.StatusPartial
	default:
		return models.StatusUnpaid
	}
}

// NextMonth returns the same day-of-month in the following month,
// clamped to the last valid day when the target month is shorter
// (Jan 31 -> Feb 29 in a leap year). Time-of-day is dropped; these
// are calendar dates.
func NextMonth(t time.Time) time.Time {
	y, m, d := t.Date()

	firstOfNext := time.Date(y, m+1, 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfNext.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}

	return time.Date(firstOfNext.Year(), firstOfNext.Month(), d, 0, 0, 0, 0, t.Location())
}

// ValidityWindow fills the membership window when a payment settles.
// Only empty bounds are touched: a bound the admin already set is
// never overwritten. No-op unless status is Paid.
func ValidityWindow(from, to *time.Time, status models.PaymentStatus, today time.Time) (*time.Time, *time.Time) {
	if status != models.StatusPaid {
		return from, to
	}

	if from == nil {
		d := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
		from = &d
	}
	if to == nil {
		d := NextMonth(*from)
		to = &d
	}

	return from, to
}

// RecomputeTo handles a direct edit of the "from" bound: the "to"
// bound is always rewritten to one calendar month later.
func RecomputeTo(from time.Time) time.Time {
	return NextMonth(from)
}
