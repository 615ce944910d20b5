package birthday

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidDate is returned for date tokens that are not valid DD-MM-YYYY.
var ErrInvalidDate = errors.New("invalid date, expected DD-MM-YYYY format")

var datePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// ValidateDate checks that s is a DD-MM-YYYY token with a day and month in
// calendar range. The year is accepted as-is; it never participates in
// matching.
func ValidateDate(s string) error {
	if !datePattern.MatchString(s) {
		return ErrInvalidDate
	}
	day, _ := strconv.Atoi(s[0:2])
	month, _ := strconv.Atoi(s[3:5])
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return ErrInvalidDate
	}
	return nil
}

// DayMonth is a year-agnostic calendar token used for matching stored
// birthdays against the reminder window.
type DayMonth struct {
	Day   int
	Month int
}

func (dm DayMonth) String() string {
	return fmt.Sprintf("%02d-%02d", dm.Day, dm.Month)
}

// Pattern returns the SQL LIKE pattern matching every stored DD-MM-YYYY token
// with this day and month, regardless of year.
func (dm DayMonth) Pattern() string {
	return fmt.Sprintf("%02d-%02d-%%", dm.Day, dm.Month)
}

// ReminderWindow returns the day-month tokens for today, tomorrow and the day
// after tomorrow. AddDate carries month and year rollover.
func ReminderWindow(now time.Time) [3]DayMonth {
	var window [3]DayMonth
	for offset := range window {
		d := now.AddDate(0, 0, offset)
		window[offset] = DayMonth{Day: d.Day(), Month: int(d.Month())}
	}
	return window
}
