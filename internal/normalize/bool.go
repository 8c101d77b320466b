package normalize

import (
	"fmt"
	"strings"
)

var truthy = map[string]struct{}{
	"1":         {},
	"true":      {},
	"yes":       {},
	"y":         {},
	"highlight": {},
	"t":         {},
}

// ParseBool reports whether v is one of the accepted truthy spellings.
func ParseBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case nil:
		return false
	case string:
		return isTruthy(val)
	default:
		return isTruthy(fmt.Sprint(val))
	}
}

func isTruthy(s string) bool {
	_, ok := truthy[strings.ToLower(strings.TrimSpace(s))]
	return ok
}
