package markup

// Remap converts an offset in stripped-text coordinates into a document
// offset. Every character at or after a removed tag shifts right by the
// cumulative length of the tags removed before it; base translates from
// the start of the submitted span to the start of the document.
//
// Remap is pure and can be applied to any number of offsets against the
// same table in any order. A nil table means nothing was removed.
func Remap(strippedOffset int, table *AdjustmentTable, base int) int {
	adjustment := 0
	if entry, ok := table.Floor(strippedOffset); ok {
		adjustment = entry.Removed
	}
	return strippedOffset + adjustment + base
}
