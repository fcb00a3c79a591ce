package model

import "time"

const DayLayout = "2006-01-02"

// Day is a calendar day in YYYY-MM-DD form. Lexical order is chronological order.
type Day string

func DayOf(t time.Time) Day {
	return Day(t.Format(DayLayout))
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return "", err
	}
	return DayOf(t), nil
}

// Time returns midnight UTC of the day. The zero Day maps to the zero time.
func (d Day) Time() time.Time {
	t, err := time.Parse(DayLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

func (d Day) Before(o Day) bool {
	return d < o
}

// Within reports whether d falls in [from, to].
func (d Day) Within(from, to Day) bool {
	return d >= from && d <= to
}

func (d Day) IsZero() bool {
	return d == ""
}

func (d Day) String() string {
	return string(d)
}
