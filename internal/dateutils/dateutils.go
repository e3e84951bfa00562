// Package dateutils provides the date parsing, month bucketing and display helpers
// shared by the aggregator, the dashboard and the exporters.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layout constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutBrazilian = "02/01/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	MonthKeyLayout      = "2006-01"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "pt-BR"

// CommonFormats lists the formats tried, in order, when parsing a stored date.
var CommonFormats = []string{
	DateLayoutISO,
	time.RFC3339,
	time.RFC3339Nano,
	DateLayoutFull,
	DateLayoutBrazilian,
}

// ParseDate parses a stored date string, returning the parsed time and the detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("empty date")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// IsValid reports whether dateStr parses with one of CommonFormats.
func IsValid(dateStr string) bool {
	_, _, err := ParseDate(dateStr)
	return err == nil
}

// MonthKey returns the canonical "YYYY-MM" bucket key of a stored date.
// ok is false for empty or unparseable dates, which belong to no bucket.
func MonthKey(dateStr string) (key string, ok bool) {
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return "", false
	}
	return t.Format(MonthKeyLayout), true
}

// MonthKeyOf returns the bucket key of t.
func MonthKeyOf(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// MonthsBack returns n month starts ending at the month of now, oldest first.
// Stepping from the first of the month avoids day overflow (31 March minus one month).
func MonthsBack(now time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	start := StartOfMonth(now)
	months := make([]time.Time, n)
	for i := 0; i < n; i++ {
		months[i] = start.AddDate(0, i-(n-1), 0)
	}
	return months
}

var monthAbbrev = map[string][12]string{
	"pt-BR": {"jan.", "fev.", "mar.", "abr.", "mai.", "jun.", "jul.", "ago.", "set.", "out.", "nov.", "dez."},
	"en":    {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
}

// SupportedLocales returns the locales MonthLabel knows about.
func SupportedLocales() []string {
	return []string{"pt-BR", "en"}
}

// MonthLabel renders the month/year label shown on chart axes.
// pt-BR renders "out. de 2026" and en renders "Oct 2026". Unknown locales fall back to pt-BR.
func MonthLabel(t time.Time, locale string) string {
	names, ok := monthAbbrev[locale]
	if !ok {
		locale = DefaultLocale
		names = monthAbbrev[locale]
	}
	name := names[t.Month()-1]
	if locale == "en" {
		return fmt.Sprintf("%s %d", name, t.Year())
	}
	return fmt.Sprintf("%s de %d", name, t.Year())
}

// DisplayDate formats a stored date as DD/MM/YYYY, or "" when it cannot be parsed.
func DisplayDate(dateStr string) string {
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return ""
	}
	return t.Format(DateLayoutBrazilian)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
