package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjects(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Rhinology", "Sleep", "Airway", "Sleep"}, Subjects(" Rhinology; Sleep ,Airway;; ,Sleep"))
	assert.Equal(t, []string{}, Subjects(""))
	assert.Equal(t, []string{}, Subjects(" ; , "))
}

func TestHighlights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want []string
	}{
		{name: "nil", in: nil, want: []string{}},
		{name: "empty string", in: "  ", want: []string{}},
		{name: "semicolons", in: "First; Second;;Third", want: []string{"First", "Second", "Third"}},
		{name: "newlines", in: "First\nSecond\n\n Third ", want: []string{"First", "Second", "Third"}},
		{name: "native list", in: []string{" a ", "", "b"}, want: []string{"a", "b"}},
		{name: "any list", in: []any{"a", nil, 3, " "}, want: []string{"a", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Highlights(tt.in))
		})
	}
}
