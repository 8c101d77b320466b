package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"JournalClub/internal/domain"
)

// imageStage tries one encoding. ok=false hands the input to the next stage.
type imageStage func(raw any) (entries []any, ok bool)

var imageStages = []imageStage{
	structuredImages,
	jsonImages,
	delimitedImages,
}

// Images decodes an image list from any of the encodings curators use: a structured list,
// JSON text (array or single object), or "url|caption" / "url,caption" entries separated by
// semicolons or newlines. Entries without a URL are dropped.
func Images(raw any) []domain.Image {
	out := []domain.Image{}
	if isBlank(raw) {
		return out
	}

	for _, stage := range imageStages {
		entries, ok := stage(raw)
		if !ok {
			continue
		}
		for _, entry := range entries {
			if img, ok := toImage(entry); ok {
				out = append(out, img)
			}
		}
		return out
	}
	return out
}

func structuredImages(raw any) ([]any, bool) {
	switch val := raw.(type) {
	case []any:
		return val, true
	case []string:
		entries := make([]any, len(val))
		for i, s := range val {
			entries[i] = s
		}
		return entries, true
	case []map[string]any:
		entries := make([]any, len(val))
		for i, m := range val {
			entries[i] = m
		}
		return entries, true
	case []domain.Image:
		entries := make([]any, len(val))
		for i, img := range val {
			entries[i] = img
		}
		return entries, true
	case map[string]any:
		return []any{val}, true
	}
	return nil, false
}

func jsonImages(raw any) ([]any, bool) {
	var parsed any
	if err := json.Unmarshal([]byte(textOf(raw)), &parsed); err != nil {
		return nil, false
	}
	if list, ok := parsed.([]any); ok {
		return list, true
	}
	return []any{parsed}, true
}

func delimitedImages(raw any) ([]any, bool) {
	var entries []any
	for _, part := range splitLines(textOf(raw)) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		url, caption := part, ""
		if i := strings.Index(part, "|"); i >= 0 {
			url, caption = part[:i], part[i+1:]
		} else if i := strings.Index(part, ","); i >= 0 {
			url, caption = part[:i], part[i+1:]
		}
		entries = append(entries, domain.Image{
			URL:     strings.TrimSpace(url),
			Caption: strings.TrimSpace(caption),
		})
	}
	return entries, true
}

func toImage(entry any) (domain.Image, bool) {
	var img domain.Image
	switch val := entry.(type) {
	case string:
		img.URL = strings.TrimSpace(val)
	case domain.Image:
		img = domain.Image{URL: strings.TrimSpace(val.URL), Caption: strings.TrimSpace(val.Caption)}
	case map[string]any:
		img.URL = strings.TrimSpace(firstTruthy(val, "url", "src"))
		img.Caption = strings.TrimSpace(firstTruthy(val, "caption", "alt"))
	default:
		return img, false
	}

	if img.URL == "" {
		return img, false
	}
	return img, true
}

// firstTruthy returns the text of the first key whose value is set and not empty, zero or false.
func firstTruthy(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := scalarText(m[key]); s != "" {
			return s
		}
	}
	return ""
}

func scalarText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if !val {
			return ""
		}
		return "True"
	case float64:
		if val == 0 {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func textOf(raw any) string {
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(raw))
}

func isBlank(raw any) bool {
	switch val := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	}
	return false
}
