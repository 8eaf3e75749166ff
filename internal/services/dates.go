package services

import "time"

// DateFormat is the wire format for all dates; months use MonthFormat.
const (
	DateFormat  = "2006-01-02"
	MonthFormat = "2006-01"
)

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOf returns the Monday of the week containing t.
func mondayOf(t time.Time) time.Time {
	day := dateOnly(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
