// Package dictionary loads a fixed-length uppercase word list into a
// dense word-id address space and builds the posting lists the engine's
// constraint propagation walks: by length, and by (length, position,
// letter). It also owns the process-wide claimed-word registry that
// enforces no-reuse across slots.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/crossplay/xwordsolve/pkg/idset"
	"github.com/crossplay/xwordsolve/pkg/letters"
)

// WordID is the dense integer address of one dictionary word.
type WordID = idset.ID

// Dictionary is an immutable, process-lifetime flat store of words
// addressed by dense WordID.
type Dictionary struct {
	words []string
}

// Load reads a newline-separated uppercase-ASCII word list, one word per
// line. Blank lines are skipped. Returns an error if any non-blank line
// is not entirely uppercase A-Z.
func Load(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := validateWord(line); err != nil {
			return nil, fmt.Errorf("dictionary line %d: %w", lineNum, err)
		}
		d.words = append(d.words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	return d, nil
}

func validateWord(w string) error {
	if len(w) == 0 {
		return fmt.Errorf("empty word")
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return fmt.Errorf("word %q is not uppercase A-Z", w)
		}
	}
	return nil
}

// Word returns the text for id.
func (d *Dictionary) Word(id WordID) string {
	return d.words[id]
}

// Len returns the number of words in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// VisitAll calls fn for every (id, word) pair in ascending id order.
func (d *Dictionary) VisitAll(fn func(id WordID, word string)) {
	for i, w := range d.words {
		fn(WordID(i), w)
	}
}

// VisitIDs calls fn for every id in ids, in the order given.
func (d *Dictionary) VisitIDs(ids []WordID, fn func(id WordID, word string)) {
	for _, id := range ids {
		fn(id, d.words[id])
	}
}

// WordIndices holds the prebuilt posting lists derived from a Dictionary,
// plus the mutable per-length claimed-word sets.
type WordIndices struct {
	dict *Dictionary

	// byLength[L] is the strictly ascending list of word ids of length L.
	byLength map[int][]WordID

	// byLengthPosLetter[L][p][l] is the strictly ascending list of word
	// ids of length L with letter l at position p.
	byLengthPosLetter map[int][][letters.NumLetters][]WordID

	// claimed[L] is the sorted set of word ids of length L currently
	// committed to some slot.
	claimed map[int][]WordID
}

// Build constructs WordIndices from a Dictionary. Word ids within each
// posting list come out in ascending order because VisitAll/insertion
// iterate the dictionary in ascending id order.
func Build(d *Dictionary) *WordIndices {
	wi := &WordIndices{
		dict:              d,
		byLength:          make(map[int][]WordID),
		byLengthPosLetter: make(map[int][][letters.NumLetters][]WordID),
		claimed:           make(map[int][]WordID),
	}

	d.VisitAll(func(id WordID, word string) {
		L := len(word)
		wi.byLength[L] = append(wi.byLength[L], id)

		posLetter, ok := wi.byLengthPosLetter[L]
		if !ok {
			posLetter = make([][letters.NumLetters][]WordID, L)
			wi.byLengthPosLetter[L] = posLetter
		}
		for p := 0; p < L; p++ {
			li, ok := letters.IndexOf(word[p])
			if !ok {
				continue
			}
			posLetter[p][li] = append(posLetter[p][li], id)
		}
	})

	return wi
}

// Dictionary returns the underlying Dictionary.
func (wi *WordIndices) Dictionary() *Dictionary {
	return wi.dict
}

// ByLength returns the ascending word-id posting list for length L. The
// returned slice must not be mutated by callers.
func (wi *WordIndices) ByLength(L int) []WordID {
	return wi.byLength[L]
}

// ByLengthPosLetter returns the ascending word-id posting list for words
// of length L with letter at position p. The returned slice must not be
// mutated by callers.
func (wi *WordIndices) ByLengthPosLetter(L, p int, l letters.Index) []WordID {
	posLetter, ok := wi.byLengthPosLetter[L]
	if !ok || p < 0 || p >= len(posLetter) {
		return nil
	}
	return posLetter[p][l]
}

// Claimed returns the sorted set of word ids of length L currently
// claimed by some slot. The returned slice must not be mutated by
// callers.
func (wi *WordIndices) Claimed(L int) []WordID {
	return wi.claimed[L]
}

// ErrAlreadyClaimed is returned by Claim when id is already claimed.
var ErrAlreadyClaimed = fmt.Errorf("word id already claimed")

// Claim marks id (of length L) as claimed by some slot, forbidding its
// use anywhere else. Fails if id is already present.
func (wi *WordIndices) Claim(L int, id WordID) error {
	set := wi.claimed[L]
	i := sort.Search(len(set), func(i int) bool { return set[i] >= id })
	if i < len(set) && set[i] == id {
		return ErrAlreadyClaimed
	}
	set = append(set, 0)
	copy(set[i+1:], set[i:])
	set[i] = id
	wi.claimed[L] = set
	return nil
}

// Unclaim removes id (of length L) from the claimed set. It is a no-op if
// id is not present.
func (wi *WordIndices) Unclaim(L int, id WordID) {
	set := wi.claimed[L]
	i := sort.Search(len(set), func(i int) bool { return set[i] >= id })
	if i < len(set) && set[i] == id {
		wi.claimed[L] = append(set[:i], set[i+1:]...)
	}
}
