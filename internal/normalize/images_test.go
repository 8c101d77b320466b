package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"JournalClub/internal/domain"
)

func TestImages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want []domain.Image
	}{
		{
			name: "pipe and bare url",
			in:   "https://x/a.png|caption A;https://x/b.png",
			want: []domain.Image{{URL: "https://x/a.png", Caption: "caption A"}, {URL: "https://x/b.png"}},
		},
		{
			name: "comma caption and newlines",
			in:   "https://x/a.png, Figure 1, left\n\nhttps://x/b.png",
			want: []domain.Image{{URL: "https://x/a.png", Caption: "Figure 1, left"}, {URL: "https://x/b.png"}},
		},
		{
			name: "pipe takes precedence over comma",
			in:   "https://x/a.png|Fig, 2",
			want: []domain.Image{{URL: "https://x/a.png", Caption: "Fig, 2"}},
		},
		{
			name: "json array mixed",
			in:   `[{"src": "https://x/a.png", "alt": "alt text"}, "https://x/b.png", {"caption": "no url"}]`,
			want: []domain.Image{{URL: "https://x/a.png", Caption: "alt text"}, {URL: "https://x/b.png"}},
		},
		{
			name: "json single object",
			in:   `{"url": " https://x/a.png ", "caption": "Cap"}`,
			want: []domain.Image{{URL: "https://x/a.png", Caption: "Cap"}},
		},
		{
			name: "url preferred over src",
			in:   `{"url": "https://x/a.png", "src": "https://x/b.png", "caption": "", "alt": "Alt"}`,
			want: []domain.Image{{URL: "https://x/a.png", Caption: "Alt"}},
		},
		{
			name: "json scalar yields nothing",
			in:   "42",
			want: []domain.Image{},
		},
		{
			name: "structured list",
			in:   []any{"https://x/a.png", map[string]any{"url": "https://x/b.png", "caption": "B"}, 7},
			want: []domain.Image{{URL: "https://x/a.png"}, {URL: "https://x/b.png", Caption: "B"}},
		},
		{
			name: "string slice",
			in:   []string{"https://x/a.png", "  "},
			want: []domain.Image{{URL: "https://x/a.png"}},
		},
		{
			name: "empty url entries dropped",
			in:   "|orphan caption;https://x/c.png",
			want: []domain.Image{{URL: "https://x/c.png"}},
		},
		{name: "blank", in: "   ", want: []domain.Image{}},
		{name: "nil", in: nil, want: []domain.Image{}},
		{name: "broken json falls back to delimited", in: `[{"url": "https://x/a.png"`, want: []domain.Image{{URL: `[{"url": "https://x/a.png"`}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Images(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Images mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
