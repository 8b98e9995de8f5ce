package services

import "time"

// monthBounds returns [first of month, first of next month) in UTC.
func monthBounds(year, month int) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, 0)
}

// truncateToMonth drops everything below the month.
func truncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthKey formats the YYYY-MM period label used in labels and meta.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
