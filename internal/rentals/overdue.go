package rentals

import "time"

// OverdueAfterDays: a rental out for more days than this is overdue.
const OverdueAfterDays = 14

// DaysBetween counts calendar days from one date to another, ignoring the
// clock time and zone offset of both.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// IsOverdue reports whether a rental received on received is overdue on today.
// Exactly OverdueAfterDays days out is not overdue.
func IsOverdue(received, today time.Time) bool {
	return DaysBetween(received, today) > OverdueAfterDays
}

func classify(r Rental, today time.Time) ActiveRental {
	days := DaysBetween(r.ReceivedDate, today)
	return ActiveRental{Rental: r, DaysOut: days, IsOverdue: days > OverdueAfterDays}
}
