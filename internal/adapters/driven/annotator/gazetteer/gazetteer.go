// Package gazetteer implements an offline Annotator backed by a list of known
// entities. Surface forms are matched case-insensitively with an Aho-Corasick
// automaton over a whitespace-collapsed, NFC-normalised view of the text.
package gazetteer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driven"
)

// Ensure Gazetteer implements the interface.
var _ driven.Annotator = (*Gazetteer)(nil)

// Entry is one known resource.
type Entry struct {
	URI      string   `toml:"uri"`
	Label    string   `toml:"label"`
	Names    []string `toml:"names"`
	Types    []string `toml:"types"`
	Abstract string   `toml:"abstract"`
	Support  int      `toml:"support"`
	Score    float64  `toml:"score"`
}

type file struct {
	Entities []Entry `toml:"entity"`
}

// Gazetteer recognises the surface forms of its entries.
type Gazetteer struct {
	entries  []Entry
	patterns []string
	// owners[i] lists the entries that have patterns[i] as a surface form.
	owners    [][]int
	automaton *ahocorasick.Automaton
}

// Load reads a gazetteer from a TOML file of [[entity]] tables.
func Load(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gazetteer: %w", err)
	}
	return Parse(data)
}

// Parse decodes a gazetteer from TOML.
func Parse(data []byte) (*Gazetteer, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse gazetteer: %w", err)
	}
	return New(f.Entities)
}

// New builds a gazetteer from entries. Names are matched case-insensitively;
// entries without a URI are rejected.
func New(entries []Entry) (*Gazetteer, error) {
	g := &Gazetteer{entries: entries}
	index := make(map[string]int)

	for i, e := range entries {
		if e.URI == "" {
			return nil, fmt.Errorf("%w: gazetteer entry %d has no uri", domain.ErrInvalidInput, i)
		}
		for _, name := range e.Names {
			key := canonicalize(name)
			if key == "" {
				continue
			}
			idx, ok := index[key]
			if !ok {
				idx = len(g.patterns)
				index[key] = idx
				g.patterns = append(g.patterns, key)
				g.owners = append(g.owners, nil)
			}
			g.owners[idx] = append(g.owners[idx], i)
		}
	}

	if len(g.patterns) == 0 {
		return g, nil
	}

	automaton, err := ahocorasick.NewBuilder().
		AddStrings(g.patterns).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build automaton: %w", err)
	}
	g.automaton = automaton
	return g, nil
}

// Len returns the number of entries.
func (g *Gazetteer) Len() int {
	return len(g.entries)
}

// Annotate returns the leftmost-longest, non-overlapping, whole-word
// matches in text whose best entry meets the support and confidence
// thresholds. Surface forms have whitespace runs collapsed to one space,
// as remote annotators report them; offsets are rune offsets into text.
func (g *Gazetteer) Annotate(
	ctx context.Context,
	text string,
	settings domain.AnnotatorSettings,
) ([]domain.RawAnnotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.automaton == nil || text == "" {
		return nil, nil
	}

	h := newHaystack(text)
	found := g.automaton.FindAllOverlapping([]byte(h.text))

	candidates := make([]candidate, 0, len(found))
	for _, m := range found {
		if !h.wholeWord(m.Start, m.End) {
			continue
		}
		entry, ok := g.best(m.PatternID, settings)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{start: m.Start, end: m.End, entry: entry})
	}

	chosen := leftmostLongest(candidates)
	result := make([]domain.RawAnnotation, 0, len(chosen))
	for _, c := range chosen {
		start, end := h.runeRange(c.start, c.end)
		e := g.entries[c.entry]
		result = append(result, domain.RawAnnotation{
			SurfaceForm: collapseSpace(runeSlice(text, start, end)),
			Offset:      start,
			Label:       e.Label,
			URI:         e.URI,
			Abstract:    e.Abstract,
			Types:       append([]string(nil), e.Types...),
			Support:     e.Support,
			Score:       e.Score,
		})
	}
	return result, nil
}

// best picks the highest scoring eligible entry for a pattern,
// breaking ties by support.
func (g *Gazetteer) best(pattern int, settings domain.AnnotatorSettings) (int, bool) {
	if pattern < 0 || pattern >= len(g.owners) {
		return 0, false
	}
	bestIdx := -1
	for _, i := range g.owners[pattern] {
		e := g.entries[i]
		if e.Support < settings.Support || e.Score < settings.Confidence {
			continue
		}
		if bestIdx < 0 {
			bestIdx = i
			continue
		}
		b := g.entries[bestIdx]
		if e.Score > b.Score || (e.Score == b.Score && e.Support > b.Support) {
			bestIdx = i
		}
	}
	return bestIdx, bestIdx >= 0
}

type candidate struct {
	start, end int
	entry      int
}

func leftmostLongest(candidates []candidate) []candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		return candidates[i].end > candidates[j].end
	})

	chosen := make([]candidate, 0, len(candidates))
	lastEnd := -1
	for _, c := range candidates {
		if c.start < lastEnd {
			continue
		}
		chosen = append(chosen, c)
		lastEnd = c.end
	}
	return chosen
}

// haystack is the matching view of a text: NFC, lowercase, whitespace runs
// collapsed to one space. For every byte it records the rune range of the
// original text it came from.
type haystack struct {
	text      string
	startRune []int
	endRune   []int
}

func newHaystack(text string) *haystack {
	var b strings.Builder
	b.Grow(len(text))
	h := &haystack{
		startRune: make([]int, 0, len(text)),
		endRune:   make([]int, 0, len(text)),
	}

	emit := func(s string, start, end int) {
		b.WriteString(s)
		for range len(s) {
			h.startRune = append(h.startRune, start)
			h.endRune = append(h.endRune, end)
		}
	}

	runeIdx := 0
	spaceStart := -1
	for i := 0; i < len(text); {
		n := norm.NFC.NextBoundaryInString(text[i:], true)
		if n <= 0 {
			n = len(text) - i
		}
		seg := text[i : i+n]
		segRunes := utf8.RuneCountInString(seg)

		r, _ := utf8.DecodeRuneInString(seg)
		if unicode.IsSpace(r) && segRunes == 1 {
			if spaceStart < 0 {
				spaceStart = runeIdx
			}
		} else {
			if spaceStart >= 0 {
				emit(" ", spaceStart, runeIdx)
				spaceStart = -1
			}
			emit(strings.ToLower(norm.NFC.String(seg)), runeIdx, runeIdx+segRunes)
		}

		runeIdx += segRunes
		i += n
	}
	if spaceStart >= 0 {
		emit(" ", spaceStart, runeIdx)
	}

	h.text = b.String()
	return h
}

// runeRange maps a haystack byte range to a rune range of the original text.
func (h *haystack) runeRange(start, end int) (int, int) {
	return h.startRune[start], h.endRune[end-1]
}

// wholeWord reports whether the byte range is not glued to a letter or digit.
func (h *haystack) wholeWord(start, end int) bool {
	if start < 0 || end > len(h.text) || start >= end {
		return false
	}
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(h.text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(h.text) {
		r, _ := utf8.DecodeRuneInString(h.text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// canonicalize prepares a surface form the same way newHaystack prepares text.
func canonicalize(s string) string {
	return strings.TrimSpace(newHaystack(strings.TrimSpace(s)).text)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func runeSlice(s string, start, end int) string {
	runes := []rune(s)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

// LoadOrEmpty loads path, returning an empty gazetteer if the file does not exist.
func LoadOrEmpty(path string) (*Gazetteer, error) {
	g, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(nil)
	}
	return g, err
}
