package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

var lineSplitExpr = regexp.MustCompile(`[;\n]+`)

// Subjects splits a curated subject cell on semicolons, then commas. Duplicates are kept.
func Subjects(raw string) []string {
	out := []string{}
	for _, group := range strings.Split(raw, ";") {
		for _, part := range strings.Split(group, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Highlights accepts a native list or a string separated by semicolons or newlines.
func Highlights(raw any) []string {
	var items []string
	switch val := raw.(type) {
	case nil:
		return []string{}
	case []string:
		items = val
	case []any:
		items = make([]string, 0, len(val))
		for _, item := range val {
			if item == nil {
				continue
			}
			items = append(items, fmt.Sprint(item))
		}
	case string:
		items = splitLines(val)
	default:
		items = splitLines(fmt.Sprint(val))
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func splitLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return lineSplitExpr.Split(text, -1)
}
