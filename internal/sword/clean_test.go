package sword

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"plain", "In the beginning God created the heaven and the earth.", "In the beginning God created the heaven and the earth."},
		{"osis words", `<w lemma="strong:H07225">In the beginning</w> God`, "In the beginning God"},
		{"osis words in order", `<w lemma="strong:H07225">In the beginning</w> God <w lemma="strong:H01254">created</w> the heaven`, "In the beginning God created the heaven"},
		{"quote mid verse", `And God said, <q who="God">Let there be light</q>: and there was light.`, "And God said, Let there be light: and there was light."},
		{"nested in order", `The <transChange type="added"><w>LORD</w> is</transChange> my shepherd`, "The LORD is my shepherd"},
		{"note between words", `light<note>Heb. be</note> was good`, "light was good"},
		{"cdata", `A <![CDATA[x < y]]> b`, "A x < y b"},
		{"note dropped", `And God said<note type="study">Or, spake</note>, Let there be light`, "And God said, Let there be light"},
		{"title dropped", `<title type="section">The Creation</title>In the beginning`, "In the beginning"},
		{"nested note", `Jesus wept.<note><reference osisRef="Luke.19.41">Luke 19:41</reference></note>`, "Jesus wept."},
		{"entity", "Tom &amp; Jerry", "Tom & Jerry"},
		{"bare ampersand", "Faith & works", "Faith & works"},
		{"mismatched tags", "A <b>bold</i> move", "A bold move"},
		{"whitespace", "  In\tthe\n beginning  ", "In the beginning"},
		{"nfc", "cafe\u0301", "caf\u00e9"},
		{"self closing", `In the beginning<milestone type="x-p"/> God`, "In the beginning God"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.raw); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanSingleLine(t *testing.T) {
	raw := "first line\nsecond line<note>a\nb</note>\r\nthird"
	if got := Clean(raw); strings.ContainsAny(got, "\r\n") {
		t.Errorf("Clean(%q) = %q, contains a line break", raw, got)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>bold</b>", "bold"},
		{"a <br> b", "a  b"},
		{"x &lt; y", "x < y"},
		{"no tags", "no tags"},
	}
	for _, tt := range tests {
		if got := stripTags(tt.in); got != tt.want {
			t.Errorf("stripTags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
