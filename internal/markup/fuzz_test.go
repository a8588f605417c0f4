package markup

import (
	"testing"
	"unicode/utf8"
)

func FuzzStrip(f *testing.F) {
	seeds := []string{
		"",
		"Hello <b>World</b> Today",
		"<i>Paris</i> is lovely",
		"<b><i>x</i></b>",
		"a <b broken <i>c</i>",
		`<a href="x>y">z</a>`,
		"Zürich <b>Genève</b>",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, text string) {
		if !utf8.ValidString(text) {
			t.Skip()
		}

		stripped, table := Strip(text)

		if utf8.RuneCountInString(stripped)+table.TotalRemoved() != utf8.RuneCountInString(text) {
			t.Fatalf("length not conserved for %q", text)
		}

		entries := table.Entries()
		for i := 1; i < len(entries); i++ {
			if entries[i].Key <= entries[i-1].Key || entries[i].Removed < entries[i-1].Removed {
				t.Fatalf("table out of order for %q: %v", text, entries)
			}
		}

		original := []rune(text)
		for i, r := range []rune(stripped) {
			j := Remap(i, table, 0)
			if j < i || j >= len(original) || original[j] != r {
				t.Fatalf("offset %d of %q remaps to %d", i, stripped, j)
			}
		}
	})
}
