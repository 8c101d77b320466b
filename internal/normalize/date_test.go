package normalize

import "testing"

func TestDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		curated   string
		published string
		want      string
	}{
		{name: "extracted abbreviation", published: "2025-Oct-31", want: "2025-10-31"},
		{name: "lowercase abbreviation", published: "2025-oct-03", want: "2025-10-03"},
		{name: "curated wins", curated: "2024-01-15", published: "2025-Oct-31", want: "2024-01-15"},
		{name: "blank curated falls through", curated: "   ", published: "2025-Oct-31", want: "2025-10-31"},
		{name: "month abbreviation only", curated: "2025-Oct", want: "2025-10-01"},
		{name: "numeric month only", curated: "2025-03", want: "2025-03-01"},
		{name: "iso datetime", curated: "2025-03-04T10:30:00", want: "2025-03-04"},
		{name: "iso datetime with offset", curated: "2025-03-04T23:30:00+02:00", want: "2025-03-04"},
		{name: "iso with space", curated: "2025-03-04 08:00", want: "2025-03-04"},
		{name: "basic format", curated: "20250304", want: "2025-03-04"},
		{name: "trimmed", curated: "  2025-03-04 ", want: "2025-03-04"},
		{name: "invalid month number passes through", curated: "2025-13", want: "2025-13"},
		{name: "invalid abbreviation passes through", curated: "2025-Foo-01", want: "2025-Foo-01"},
		{name: "free text passes through", curated: " Spring 2024 ", want: "Spring 2024"},
		{name: "single digit day passes through", published: "2025-Oct-5", want: "2025-Oct-5"},
		{name: "both empty", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Date(tt.curated, tt.published); got != tt.want {
				t.Fatalf("Date(%q, %q) = %q, want %q", tt.curated, tt.published, got, tt.want)
			}
		})
	}
}

func TestMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		month    string
		fallback string
		want     string
	}{
		{name: "fallback date", fallback: "2025-03-15", want: "2025-03"},
		{name: "fallback passthrough date", fallback: "Spring 2024", want: "Spring "},
		{name: "nothing", want: ""},
		{name: "abbreviation", month: "2025-Mar", fallback: "2024-01-01", want: "2025-03"},
		{name: "numeric", month: "2025-03", want: "2025-03"},
		{name: "full date", month: "2025-03-15", want: "2025-03"},
		{name: "abbreviated day", month: "2025-Mar-15", want: "2025-03"},
		{name: "unparseable truncated", month: "March 2025", want: "March 2"},
		{name: "short unparseable kept", month: "TBD", want: "TBD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Month(tt.month, tt.fallback); got != tt.want {
				t.Fatalf("Month(%q, %q) = %q, want %q", tt.month, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	if got := Truncate("Jänner 2025", 3); got != "Jän" {
		t.Fatalf("Truncate = %q, want %q", got, "Jän")
	}
	if got := Truncate("abc", 7); got != "abc" {
		t.Fatalf("Truncate = %q, want %q", got, "abc")
	}
	if got := Truncate("abc", 0); got != "" {
		t.Fatalf("Truncate = %q, want empty", got)
	}
}
