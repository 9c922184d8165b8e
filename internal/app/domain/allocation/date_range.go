package allocation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

// DayLabelLayout is how a parsed day is rendered by DayLabel.
const DayLabelLayout = "Mon, Jan 2"

var monthTokens = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// DateParseError explains why a display date range was rejected.
type DateParseError struct {
	Input  string
	Reason string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse trip dates %q: %s", e.Input, e.Reason)
}

func (e *DateParseError) Unwrap() error { return models.ErrDateParse }

// ParseDateRange parses the trip display format "Mon D - Mon D, YYYY".
// "Mar 15 - 20, 2024" reuses the start month. When the end falls before the
// start ("Dec 28 - Jan 3, 2025") the start is placed in the previous year.
func ParseDateRange(display string) (models.DateRange, error) {
	fail := func(reason string) (models.DateRange, error) {
		return models.DateRange{}, &DateParseError{Input: display, Reason: reason}
	}

	s := strings.TrimSpace(display)
	comma := strings.LastIndex(s, ",")
	if comma < 0 {
		return fail("missing year")
	}
	yearText := strings.TrimSpace(s[comma+1:])
	year, err := strconv.Atoi(yearText)
	if err != nil || len(yearText) != 4 {
		return fail("missing year")
	}

	left := strings.ReplaceAll(s[:comma], "–", "-")
	parts := strings.Split(left, "-")
	if len(parts) != 2 {
		return fail("missing separator")
	}

	startMonth, startDay, err := parseMonthDay(parts[0], 0)
	if err != nil {
		return fail(err.Error())
	}
	endMonth, endDay, err := parseMonthDay(parts[1], startMonth)
	if err != nil {
		return fail(err.Error())
	}

	end, ok := calendarDate(year, endMonth, endDay)
	if !ok {
		return fail("invalid end date")
	}
	start, ok := calendarDate(year, startMonth, startDay)
	if !ok {
		return fail("invalid start date")
	}
	if end.Before(start) {
		if start, ok = calendarDate(year-1, startMonth, startDay); !ok {
			return fail("invalid start date")
		}
	}

	return models.DateRange{Start: start, End: end}, nil
}

// DayLabel renders day dayNumber (1-based) of the trip. Any parse failure
// yields exactly "Day N"; callers rely on that label.
func DayLabel(display string, dayNumber int) string {
	fallback := fmt.Sprintf("Day %d", dayNumber)
	if dayNumber < 1 {
		return fallback
	}
	r, err := ParseDateRange(display)
	if err != nil {
		return fallback
	}
	return r.Start.AddDate(0, 0, dayNumber-1).Format(DayLabelLayout)
}

func parseMonthDay(text string, defaultMonth time.Month) (time.Month, int, error) {
	fields := strings.Fields(text)
	switch len(fields) {
	case 1:
		if defaultMonth == 0 {
			return 0, 0, fmt.Errorf("missing month in %q", strings.TrimSpace(text))
		}
		day, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid day %q", fields[0])
		}
		return defaultMonth, day, nil
	case 2:
		month, ok := lookupMonth(fields[0])
		if !ok {
			return 0, 0, fmt.Errorf("unknown month %q", fields[0])
		}
		day, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid day %q", fields[1])
		}
		return month, day, nil
	default:
		return 0, 0, fmt.Errorf("unexpected date %q", strings.TrimSpace(text))
	}
}

func lookupMonth(token string) (time.Month, bool) {
	t := strings.ToLower(strings.TrimSuffix(token, "."))
	if len(t) < 3 {
		return 0, false
	}
	m, ok := monthTokens[t[:3]]
	if !ok {
		return 0, false
	}
	// Full names must actually spell the month.
	if len(t) > 3 && !strings.HasPrefix(strings.ToLower(m.String()), t) {
		return 0, false
	}
	return m, true
}

// calendarDate rejects dates time.Date would silently normalize (Feb 30).
func calendarDate(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
