package usecase

import (
	"sort"

	"JournalClub/internal/domain"
	"JournalClub/internal/normalize"
)

// SummaryBook keeps the first non-empty summary offered for each month.
type SummaryBook struct {
	byMonth map[string]domain.MonthlySummary
	order   []string
}

// NewSummaryBook returns an empty book.
func NewSummaryBook() *SummaryBook {
	return &SummaryBook{byMonth: map[string]domain.MonthlySummary{}}
}

// Offer registers s unless its month is empty, it carries no content, or the month is taken.
// It reports whether s was kept.
func (b *SummaryBook) Offer(s domain.MonthlySummary) bool {
	if s.Month == "" {
		return false
	}
	if s.Headline == "" && s.Paragraph == "" && len(s.KeyHighlights) == 0 {
		return false
	}
	if _, taken := b.byMonth[s.Month]; taken {
		return false
	}
	if s.KeyHighlights == nil {
		s.KeyHighlights = []string{}
	}
	b.byMonth[s.Month] = s
	b.order = append(b.order, s.Month)
	return true
}

// Len is the number of months with a summary.
func (b *SummaryBook) Len() int {
	return len(b.order)
}

// Summaries returns the kept summaries, newest month first.
func (b *SummaryBook) Summaries() []domain.MonthlySummary {
	months := append([]string(nil), b.order...)
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	out := make([]domain.MonthlySummary, 0, len(months))
	for _, m := range months {
		out = append(out, b.byMonth[m])
	}
	return out
}

// SubjectFrequencies counts tags per YYYY-MM of the session date, months ascending and tags by
// descending count. Ties keep the order in which the tag was first seen; months without any tag
// are left out.
func SubjectFrequencies(sessions []domain.Session) domain.SubjectFrequency {
	type counter struct {
		counts map[string]int
		order  []string
	}
	byMonth := map[string]*counter{}

	for _, s := range sessions {
		month := domain.UnknownMonth
		if s.Date != "" {
			month = normalize.Truncate(s.Date, 7)
		}
		for _, subject := range s.Subjects {
			c, ok := byMonth[month]
			if !ok {
				c = &counter{counts: map[string]int{}}
				byMonth[month] = c
			}
			if _, seen := c.counts[subject]; !seen {
				c.order = append(c.order, subject)
			}
			c.counts[subject]++
		}
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	freq := make(domain.SubjectFrequency, 0, len(months))
	for _, m := range months {
		c := byMonth[m]
		counts := make([]domain.SubjectCount, 0, len(c.order))
		for _, subject := range c.order {
			counts = append(counts, domain.SubjectCount{Subject: subject, Count: c.counts[subject]})
		}
		sort.SliceStable(counts, func(i, j int) bool {
			return counts[i].Count > counts[j].Count
		})
		freq = append(freq, domain.MonthSubjects{Month: m, Counts: counts})
	}
	return freq
}
