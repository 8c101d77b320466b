// Package classify assigns topic tags to sessions from a data-driven rule table.
package classify

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"JournalClub/internal/domain"
)

// ErrEmptyRule is returned when a configured rule has no patterns.
var ErrEmptyRule = errors.New("subject rule has no patterns")

type rule struct {
	name     string
	patterns []*regexp.Regexp
}

func (r rule) matches(text string) bool {
	for _, p := range r.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Options tune the tags outside the rule table and the text assembly.
type Options struct {
	FallbackTag  string
	PediatricTag string
	// Clean is applied to every text field before it is joined for matching.
	Clean func(string) string
}

// Classifier is an immutable compiled rule table. It is safe for concurrent use.
type Classifier struct {
	rules        []rule
	pediatric    *regexp.Regexp
	fallbackTag  string
	pediatricTag string
	clean        func(string) string
}

// New compiles rules once. Rule order is fixed by tag name so the result never depends on map order.
func New(rules map[string][]string, opts Options) (*Classifier, error) {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	compiled := make([]rule, 0, len(names))
	for _, name := range names {
		patterns := rules[name]
		if len(patterns) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyRule, name)
		}
		r := rule{name: name, patterns: make([]*regexp.Regexp, 0, len(patterns))}
		for _, pattern := range patterns {
			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				return nil, fmt.Errorf("subject rule %s: pattern %q: %w", name, pattern, err)
			}
			r.patterns = append(r.patterns, re)
		}
		compiled = append(compiled, r)
	}

	c := &Classifier{
		rules:        compiled,
		pediatric:    regexp.MustCompile("(?i)" + PediatricPattern),
		fallbackTag:  opts.FallbackTag,
		pediatricTag: opts.PediatricTag,
		clean:        opts.Clean,
	}
	if c.fallbackTag == "" {
		c.fallbackTag = DefaultFallbackTag
	}
	if c.pediatricTag == "" {
		c.pediatricTag = DefaultPediatricTag
	}
	return c, nil
}

// Default compiles the built-in rule table.
func Default() *Classifier {
	c, err := New(DefaultRules(), Options{})
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the sorted, deduplicated tags matching text.
func (c *Classifier) Classify(text string) []string {
	var matches []string
	for _, r := range c.rules {
		if r.matches(text) {
			matches = append(matches, r.name)
		}
	}
	if c.pediatric.MatchString(text) {
		matches = append(matches, c.pediatricTag)
	}
	if len(matches) == 0 {
		matches = append(matches, c.fallbackTag)
	}
	return sortedSet(matches)
}

// SessionText joins the non-empty title, journal, abstract and notes of s.
func (c *Classifier) SessionText(s domain.Session) string {
	fields := []string{s.Title, s.Journal, s.Abstract, s.Notes}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if c.clean != nil {
			f = c.clean(f)
		}
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

// Tag classifies s and returns its tags, optionally merged with curated subjects.
func (c *Classifier) Tag(s domain.Session, keepCurated bool) []string {
	tags := c.Classify(c.SessionText(s))
	if keepCurated && len(s.Subjects) > 0 {
		tags = sortedSet(append(tags, s.Subjects...))
	}
	return tags
}

func sortedSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
