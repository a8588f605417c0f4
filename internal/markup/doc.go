// Package markup removes inline tag markup from a text span and maps
// offsets in the tag-free text back to the original text.
//
// Strip produces the tag-free text sent to an annotator together with an
// AdjustmentTable. Remap uses the table to translate an offset reported
// against the tag-free text into a document offset.
//
// All offsets are character (rune) indices.
package markup
