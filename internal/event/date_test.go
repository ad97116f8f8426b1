package event

import (
	"fmt"
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantDate string
		wantTime string
	}{
		{"already normalized is idempotent", "2026-02-14", "2026-02-14", ""},
		{"month day year", "Feb 10 2026", "2026-02-10", ""},
		{"day month year", "10 Feb 2026", "2026-02-10", ""},
		{"ordinal day", "10th Feb 2026", "2026-02-10", ""},
		{"weekday prefix", "Thursday, January 1, 2026", "2026-01-01", ""},
		{"iso datetime keeps time", "2026-02-14T20:30:00", "2026-02-14", "20:30"},
		{"datetime with space", "2026-01-01 22:00:00", "2026-01-01", "22:00"},
		{"midnight means no time", "2026-02-14T00:00:00", "2026-02-14", ""},
		{"us slash date", "02/15/2026", "2026-02-15", ""},
		{"noisy surrounding text", "Doors open Feb 14, 2026 til late", "2026-02-14", ""},
		{"unparseable keeps nothing", "see flyer for details", "", ""},
		{"empty input", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDate, gotTime := NormalizeDate(tt.raw)
			if gotDate != tt.wantDate {
				t.Errorf("NormalizeDate(%q) date = %q, expected %q", tt.raw, gotDate, tt.wantDate)
			}
			if gotTime != tt.wantTime {
				t.Errorf("NormalizeDate(%q) time = %q, expected %q", tt.raw, gotTime, tt.wantTime)
			}
		})
	}
}

func TestNormalizeDateAssumesCurrentYear(t *testing.T) {
	gotDate, gotTime := NormalizeDate("Jan 24")
	want := fmt.Sprintf("%d-01-24", time.Now().Year())
	if gotDate != want {
		t.Errorf("NormalizeDate(\"Jan 24\") = %q, expected %q", gotDate, want)
	}
	if gotTime != "" {
		t.Errorf("expected no time component, got %q", gotTime)
	}
}

func TestEnsureYear(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"appends missing year", "14 Feb", "14 Feb 2026"},
		{"leaves existing year alone", "14 Feb 2027", "14 Feb 2027"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnsureYear(tt.raw, 2026); got != tt.expected {
				t.Errorf("EnsureYear(%q, 2026) = %q, expected %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestNormalizeDateFields(t *testing.T) {
	ev := Event{DateRaw: "Feb 10 2026"}
	ev.NormalizeDateFields()
	if ev.Date != "2026-02-10" {
		t.Errorf("expected date 2026-02-10, got %q", ev.Date)
	}

	ev = Event{DateRaw: "no date in here at all"}
	ev.NormalizeDateFields()
	if ev.Date != "" || ev.Time != "" {
		t.Errorf("unparseable raw text should leave date and time empty, got %q / %q", ev.Date, ev.Time)
	}
	if ev.DateRaw == "" {
		t.Error("raw text must be kept even when parsing fails")
	}
}
