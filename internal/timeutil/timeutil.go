// Package timeutil holds the time model for the dispatch board: timezone
// projection of instants onto a scheduling day, calendar-date arithmetic and
// the display label helpers used by queue cards and the grid time axis.
package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Accepted day-start / pickup timestamp forms, tried in order. Forms without
// an explicit zone are resolved in the org timezone.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

var clockPrefix = regexp.MustCompile(`^\d{2}:\d{2}`)

// LoadZone resolves an IANA timezone identifier.
func LoadZone(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}

// CalendarDate returns the YYYY-MM-DD calendar date of an instant in the
// given zone, using field extraction rather than a fixed offset.
func CalendarDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// ShiftDate shifts a YYYY-MM-DD date by whole calendar days. The arithmetic
// is UTC-anchored so DST transitions cannot skew it. Malformed input is
// returned unchanged.
func ShiftDate(ymd string, deltaDays int) string {
	t, err := time.Parse(DateLayout, ymd)
	if err != nil {
		return ymd
	}
	return t.AddDate(0, 0, deltaDays).Format(DateLayout)
}

// ParseDayStart resolves a day-start wall-clock value against the org zone.
// Values carrying their own zone offset keep it.
func ParseDayStart(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable day start %q", value)
}

// MinutesSinceDayStart computes whole minutes elapsed from the day start to
// now, both projected into the target zone. It works on calendar fields
// (delta days * 1440 + minute-of-day difference) instead of raw epoch
// subtraction, so a 23- or 25-hour DST day still yields wall-clock-consistent
// positions on the grid.
func MinutesSinceDayStart(now, dayStart time.Time, loc *time.Location) int {
	n := now.In(loc)
	s := dayStart.In(loc)

	nd := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	sd := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	deltaDays := int(nd.Sub(sd).Hours() / 24)

	return deltaDays*1440 + (n.Hour()*60 + n.Minute()) - (s.Hour()*60 + s.Minute())
}

// ShortClock reduces a pickup time value ("HH:MM..." or a full timestamp) to
// a 24-hour HH:MM label. Unparseable input comes back unchanged; display
// helpers never fail.
func ShortClock(value string) string {
	if clockPrefix.MatchString(value) {
		return value[:5]
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("15:04")
		}
	}
	return value
}

// SlotClockLabel is the time-axis label for a slot row.
func SlotClockLabel(dayStart time.Time, slotMinutes, slotIndex int, loc *time.Location) string {
	t := dayStart.Add(time.Duration(slotIndex*slotMinutes) * time.Minute)
	return t.In(loc).Format("15:04")
}

// ClockLabel is the 12-hour header clock, e.g. "12:46 AM".
func ClockLabel(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("3:04 PM")
}

// FriendlyDate is the header date, e.g. "Sat, Aug 30".
func FriendlyDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Mon, Jan 2")
}

var houseNumber = regexp.MustCompile(`^\s*\d+\s+`)

// PlaceLabel picks the shortest useful place description for a card:
// saved-place code, then facility label, then street (house number stripped)
// with city.
func PlaceLabel(code, label, street, city string) string {
	if c := strings.TrimSpace(code); c != "" {
		return strings.ToUpper(c)
	}
	if l := strings.TrimSpace(label); l != "" {
		return l
	}

	streetOnly := ""
	if street != "" {
		streetOnly = strings.TrimSpace(houseNumber.ReplaceAllString(street, ""))
	}
	city = strings.TrimSpace(city)

	switch {
	case streetOnly != "" && city != "":
		return fmt.Sprintf("%s (%s)", streetOnly, city)
	case streetOnly != "":
		return streetOnly
	case city != "":
		return city
	}
	return "—"
}
