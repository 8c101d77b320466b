package markup

import "testing"

func TestStrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Otitis  media\nin children", "Otitis  media\nin children"},
		{"inline tags", "<i>Pseudomonas</i> infection of the <b>middle ear</b>", "Pseudomonas infection of the middle ear"},
		{"entities", "Head &amp; neck &lt;review&gt;", "Head & neck <review>"},
		{"bare ampersand", "Head & Neck", "Head & Neck"},
		{"blocks separated", "<p>Background</p><p>Results</p>", "Background Results"},
		{"line breaks", "first<br>second<br/>third", "first second third"},
		{"script dropped", "<script>alert(1)</script>Tonsillectomy", "Tonsillectomy"},
		{"superscript", "CO<sub>2</sub> laser", "CO2 laser"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Strip(tc.in); got != tc.want {
				t.Fatalf("Strip(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
