package markup

import (
	"fmt"
	"sort"
	"strings"
)

// Adjustment records the total number of characters removed by markup
// up to and including a tag that would start at Key in the tag-free text.
type Adjustment struct {
	Key     int
	Removed int
}

// AdjustmentTable is an ordered mapping from tag-free offsets to the
// cumulative number of characters removed at that point.
// Keys are strictly increasing and values never decrease.
// A table is immutable once built; the zero value is an empty table.
type AdjustmentTable struct {
	entries []Adjustment
}

// NewAdjustmentTable builds a table from entries given in ascending key order.
// Returns an error if the keys are not strictly increasing or the removed
// counts decrease.
func NewAdjustmentTable(entries ...Adjustment) (*AdjustmentTable, error) {
	for i := range entries {
		if entries[i].Key < 0 || entries[i].Removed < 0 {
			return nil, fmt.Errorf("adjustment %d: negative key or count", i)
		}
		if i == 0 {
			continue
		}
		if entries[i].Key <= entries[i-1].Key {
			return nil, fmt.Errorf("adjustment %d: key %d not above %d", i, entries[i].Key, entries[i-1].Key)
		}
		if entries[i].Removed < entries[i-1].Removed {
			return nil, fmt.Errorf("adjustment %d: removed count decreases", i)
		}
	}
	return &AdjustmentTable{entries: append([]Adjustment(nil), entries...)}, nil
}

// Len returns the number of entries.
func (t *AdjustmentTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the entries in ascending key order.
func (t *AdjustmentTable) Entries() []Adjustment {
	if t == nil {
		return nil
	}
	return append([]Adjustment(nil), t.entries...)
}

// Floor returns the entry with the greatest key <= offset.
// The second result is false when no such entry exists, which means
// nothing was removed before offset.
func (t *AdjustmentTable) Floor(offset int) (Adjustment, bool) {
	if t.Len() == 0 {
		return Adjustment{}, false
	}
	// First entry with a key above offset; its predecessor is the floor.
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Key > offset
	})
	if i == 0 {
		return Adjustment{}, false
	}
	return t.entries[i-1], true
}

// TotalRemoved returns the number of characters removed from the whole text.
func (t *AdjustmentTable) TotalRemoved() int {
	if t.Len() == 0 {
		return 0
	}
	return t.entries[len(t.entries)-1].Removed
}

// String renders the table as {key:removed, ...}.
func (t *AdjustmentTable) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range t.Entries() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d:%d", e.Key, e.Removed)
	}
	b.WriteByte('}')
	return b.String()
}

// record appends an entry during stripping. A repeated key replaces the
// previous entry, so back-to-back tags keep only the later count.
func (t *AdjustmentTable) record(key, removed int) {
	if n := len(t.entries); n > 0 && t.entries[n-1].Key == key {
		t.entries[n-1].Removed = removed
		return
	}
	t.entries = append(t.entries, Adjustment{Key: key, Removed: removed})
}
