package normalize

import (
	"regexp"
	"strings"
	"time"
)

var (
	dayAbbrevExpr   = regexp.MustCompile(`^\d{4}-[A-Za-z]{3}-\d{2}$`)
	monthAbbrevExpr = regexp.MustCompile(`^\d{4}-[A-Za-z]{3}$`)
	monthNumberExpr = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// isoLayouts are tried in order for anything that is not one of the month-abbreviation shapes.
var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15",
	"20060102",
}

// Date picks the first non-empty candidate and renders it as YYYY-MM-DD.
// Unparseable input is returned trimmed and unchanged.
func Date(curated, published string) string {
	raw := firstNonEmpty(curated, published)
	if raw == "" {
		return ""
	}

	t, ok := parseCalendar(raw)
	if !ok {
		return raw
	}
	return t.Format("2006-01-02")
}

// Month renders month as YYYY-MM, deriving it from fallbackDate when month is empty.
func Month(month, fallbackDate string) string {
	raw := strings.TrimSpace(month)
	if raw == "" {
		return Truncate(fallbackDate, 7)
	}

	t, ok := parseCalendar(raw)
	if !ok {
		return Truncate(raw, 7)
	}
	return t.Format("2006-01")
}

func parseCalendar(raw string) (time.Time, bool) {
	switch {
	case dayAbbrevExpr.MatchString(raw):
		return parseLayout("2006-Jan-02", raw)
	case monthAbbrevExpr.MatchString(raw):
		return parseLayout("2006-Jan-02", raw+"-01")
	case monthNumberExpr.MatchString(raw):
		return parseLayout("2006-01-02", raw+"-01")
	}

	for _, layout := range isoLayouts {
		if t, ok := parseLayout(layout, raw); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseLayout(layout, value string) (time.Time, bool) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Truncate returns at most n leading runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
