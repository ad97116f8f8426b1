package event

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	ordinalPattern = regexp.MustCompile(`(\d{1,2})(st|nd|rd|th)\b`)
	weekdayPattern = regexp.MustCompile(`(?i)^(mon|tues?|wed(nes)?|thur?s?|fri|sat(ur)?|sun)(day)?,?\s+`)
	spacePattern   = regexp.MustCompile(`\s+`)
	yearPattern    = regexp.MustCompile(`\d{4}`)

	// Date-looking spans pulled out of noisy text when a whole-string parse
	// fails. Ordered from most to least specific.
	spanPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}(:\d{2})?)?`),
		regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}`),
		regexp.MustCompile(`(?i)\d{1,2}\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?,?\s+\d{4}`),
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`),
		regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2}`),
	}

	// Explicit layouts tried when fuzzy parsing gives up. Mirrors the odd
	// formats the ticketing sites actually emit.
	fallbackLayouts = []string{
		"2 Jan 2006",
		"Jan 2 2006",
		"2 January 2006",
		"January 2 2006",
		"2006-01-02",
		"01/02/2006",
		"01/02/06",
		"Jan 2",
		"2 Jan",
	}
)

// NormalizeDate converts a free-text date/time string into a calendar date
// ("2006-01-02") and an optional 24-hour clock time ("15:04"). The clock is
// returned empty when the parsed time is midnight, since the sources emit
// midnight for date-only listings. Both values are empty when no date can be
// extracted; the failure is never fatal to the record.
func NormalizeDate(raw string) (string, string) {
	cleaned := cleanDateText(raw)
	if cleaned == "" {
		return "", ""
	}

	t, err := dateparse.ParseAny(cleaned)
	if err != nil {
		t, err = parseDateSpan(cleaned)
	}
	if err != nil {
		return "", ""
	}
	if t.Year() < 1000 {
		// Year-less text like "Jan 24" is assumed to mean the current year,
		// matching how the source sites label upcoming listings.
		now := time.Now()
		t = time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	}

	date := t.Format("2006-01-02")
	if t.Hour() == 0 {
		return date, ""
	}
	return date, t.Format("15:04")
}

// EnsureYear appends a year to date text that carries no 4-digit year.
// Sources that render calendar widgets routinely omit the year.
func EnsureYear(raw string, year int) string {
	if raw == "" || yearPattern.MatchString(raw) {
		return raw
	}
	return fmt.Sprintf("%s %d", raw, year)
}

// cleanDateText strips the decorations that trip up date parsing: ordinal
// suffixes ("10th" -> "10"), a leading weekday name, and runs of whitespace.
func cleanDateText(raw string) string {
	s := strings.TrimSpace(raw)
	s = ordinalPattern.ReplaceAllString(s, "$1")
	s = weekdayPattern.ReplaceAllString(s, "")
	return spacePattern.ReplaceAllString(s, " ")
}

// parseDateSpan extracts the first date-looking span from noisy text and
// parses it, trying explicit layouts when the general parser fails.
func parseDateSpan(cleaned string) (time.Time, error) {
	for _, pattern := range spanPatterns {
		span := pattern.FindString(cleaned)
		if span == "" {
			continue
		}
		if t, err := dateparse.ParseAny(span); err == nil {
			return t, nil
		}
		for _, layout := range fallbackLayouts {
			if t, err := time.Parse(layout, span); err == nil {
				return t, nil
			}
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no parseable date in %q", cleaned)
}
