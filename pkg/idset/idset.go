// Package idset implements lazy skip-iterators over strictly ascending
// streams of word ids, and the AND/DIFF/LEAF combinators the engine's
// constraint propagation is built on.
package idset

import "sort"

// ID is the dense integer address of one dictionary word.
type ID int

// Stream is an ordered, lazily-advancing sequence of strictly ascending
// IDs. Next yields the next value; AdvanceTo performs a lower-bound seek
// to the first remaining value >= k, and must never rewind.
type Stream interface {
	// Next returns the next ID in ascending order, and false once
	// exhausted.
	Next() (ID, bool)
	// AdvanceTo performs a lower-bound seek: it discards values < k and
	// returns the first remaining value >= k, or false if exhausted.
	AdvanceTo(k ID) (ID, bool)
}

// linearScanThreshold is the slice length below which Leaf uses a linear
// scan instead of binary search for lower-bound seeks; short slices don't
// benefit from sort.Search's overhead.
const linearScanThreshold = 256

// leaf is a Stream sourced from a sorted slice.
type leaf struct {
	ids []ID
	pos int
}

// Leaf wraps a strictly ascending slice as a Stream.
func Leaf(ids []ID) Stream {
	return &leaf{ids: ids}
}

func (l *leaf) Next() (ID, bool) {
	if l.pos >= len(l.ids) {
		return 0, false
	}
	v := l.ids[l.pos]
	l.pos++
	return v, true
}

func (l *leaf) AdvanceTo(k ID) (ID, bool) {
	remaining := l.ids[l.pos:]
	if len(remaining) <= linearScanThreshold {
		for i, v := range remaining {
			if v >= k {
				l.pos += i
				return v, true
			}
		}
		l.pos = len(l.ids)
		return 0, false
	}

	i := sort.Search(len(remaining), func(i int) bool { return remaining[i] >= k })
	l.pos += i
	if i >= len(remaining) {
		return 0, false
	}
	return remaining[i], true
}

// andStream yields values present in both underlying streams via a mutual
// lower-bound chase.
type andStream struct {
	a, b Stream
	next ID
	ok   bool
}

// And returns a Stream over the intersection of a and b.
func And(a, b Stream) Stream {
	return &andStream{a: a, b: b}
}

func (s *andStream) Next() (ID, bool) {
	av, aok := s.a.Next()
	if !aok {
		return 0, false
	}
	for {
		bv, bok := s.b.AdvanceTo(av)
		if !bok {
			return 0, false
		}
		if bv == av {
			return av, true
		}
		// bv > av: chase a forward to bv.
		av, aok = s.a.AdvanceTo(bv)
		if !aok {
			return 0, false
		}
		if av == bv {
			return av, true
		}
		// av > bv: loop, advancing b to the new av.
	}
}

func (s *andStream) AdvanceTo(k ID) (ID, bool) {
	av, aok := s.a.AdvanceTo(k)
	if !aok {
		return 0, false
	}
	for {
		bv, bok := s.b.AdvanceTo(av)
		if !bok {
			return 0, false
		}
		if bv == av {
			return av, true
		}
		av, aok = s.a.AdvanceTo(bv)
		if !aok {
			return 0, false
		}
		if av == bv {
			return av, true
		}
	}
}

// diffStream yields values from a that are absent from b.
type diffStream struct {
	a, b Stream
}

// Diff returns a Stream over the values in a not present in b.
func Diff(a, b Stream) Stream {
	return &diffStream{a: a, b: b}
}

func (s *diffStream) Next() (ID, bool) {
	for {
		av, aok := s.a.Next()
		if !aok {
			return 0, false
		}
		bv, bok := s.b.AdvanceTo(av)
		if bok && bv == av {
			continue
		}
		return av, true
	}
}

func (s *diffStream) AdvanceTo(k ID) (ID, bool) {
	av, aok := s.a.AdvanceTo(k)
	if !aok {
		return 0, false
	}
	for {
		bv, bok := s.b.AdvanceTo(av)
		if !bok || bv != av {
			return av, true
		}
		av, aok = s.a.Next()
		if !aok {
			return 0, false
		}
	}
}

// Collect drains a Stream into a slice, preserving ascending order.
func Collect(s Stream) []ID {
	var out []ID
	for {
		v, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}
