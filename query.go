package suffixtree

import (
	"iter"
	"slices"
)

// matchPoint is where a pattern ends in the tree: either exactly at node
// (edge == noEdge) or offset characters into edge, which leaves node.
type matchPoint struct {
	node   NodeID
	edge   EdgeID
	offset int
}

// descend follows keys from the root. It reports false on a mismatch or when
// the tree runs out before the pattern does.
func (t *Tree) descend(keys []int32) (matchPoint, bool) {
	id := rootID
	i := 0
	for i < len(keys) {
		e := t.nodes[id].children.get(keys[i])
		if e == noEdge {
			return matchPoint{}, false
		}
		ed := &t.edges[e]
		l := ed.length(t.end)
		k := 0
		for k < l && i < len(keys) {
			if t.keys[ed.start+k] != keys[i] {
				return matchPoint{}, false
			}
			k++
			i++
		}
		if k < l {
			return matchPoint{node: id, edge: e, offset: k}, true
		}
		id = ed.target
	}
	return matchPoint{node: id, edge: noEdge}, true
}

// ContainsSuffix reports whether pattern is a suffix of the sequence and, if
// so, where it starts. The empty pattern is the suffix starting at Len().
// A pattern that merely occurs somewhere, without ending the sequence, is
// not found.
func (t *Tree) ContainsSuffix(pattern string) (int, bool, error) {
	keys, err := encode(t.alphabet, pattern)
	if err != nil {
		return -1, false, err
	}
	if len(keys) == 0 {
		return t.Len(), true, nil
	}
	if len(keys) > t.Len() {
		return -1, false, nil
	}

	mp, ok := t.descend(keys)
	if !ok {
		return -1, false, nil
	}

	// The match must land on a leaf. In an explicit tree, the only thing
	// allowed between the end of the pattern and the leaf is the terminator.
	if mp.edge == noEdge {
		n := &t.nodes[mp.node]
		if n.isLeaf {
			return n.suffixStart, true, nil
		}
		if t.implicit {
			return -1, false, nil
		}
		e := n.children.get(t.terminal)
		if e == noEdge {
			return -1, false, nil
		}
		leaf := &t.nodes[t.edges[e].target]
		return leaf.suffixStart, true, nil
	}

	if t.implicit {
		return -1, false, nil
	}
	ed := &t.edges[mp.edge]
	leaf := &t.nodes[ed.target]
	if leaf.isLeaf && ed.length(t.end)-mp.offset == 1 && t.keys[ed.start+mp.offset] == t.terminal {
		return leaf.suffixStart, true, nil
	}
	return -1, false, nil
}

// SubstringOccurrences returns a lazy iterator over every offset at which
// pattern occurs in the sequence. Offsets follow the depth-first alphabet
// order of the matching suffixes, not offset order.
// An empty pattern is rejected before any traversal.
func (t *Tree) SubstringOccurrences(pattern string) (*Occurrences, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}
	keys, err := encode(t.alphabet, pattern)
	if err != nil {
		return nil, err
	}
	if len(keys) > t.Len() {
		return &Occurrences{t: t}, nil
	}

	mp, ok := t.descend(keys)
	if !ok {
		return &Occurrences{t: t}, nil
	}

	// Ending inside an edge selects the same leaves as ending at its target.
	start := mp.node
	if mp.edge != noEdge {
		start = t.edges[mp.edge].target
	}
	return t.newOccurrences(start), nil
}

// Contains reports whether pattern occurs anywhere in the sequence.
func (t *Tree) Contains(pattern string) (bool, error) {
	keys, err := encode(t.alphabet, pattern)
	if err != nil {
		return false, err
	}
	if len(keys) > t.Len() {
		return false, nil
	}
	_, ok := t.descend(keys)
	return ok, nil
}

// Count returns the number of occurrences of pattern.
func (t *Tree) Count(pattern string) (int, error) {
	occ, err := t.SubstringOccurrences(pattern)
	if err != nil {
		return 0, err
	}
	n := 0
	for range occ.All() {
		n++
	}
	return n, nil
}

// Occurrences is a pull iterator over the leaves below one node. It walks an
// explicit stack, so a caller may stop at any point. It is single-use and
// must not be shared between goroutines.
type Occurrences struct {
	t     *Tree
	stack []NodeID
}

func (t *Tree) newOccurrences(start NodeID) *Occurrences {
	return &Occurrences{t: t, stack: []NodeID{start}}
}

// Next returns the next occurrence, or false once the iterator is exhausted.
func (o *Occurrences) Next() (int, bool) {
	for len(o.stack) > 0 {
		id := o.stack[len(o.stack)-1]
		o.stack = o.stack[:len(o.stack)-1]

		n := &o.t.nodes[id]
		if n.isLeaf {
			return n.suffixStart, true
		}

		// Push in reverse so children are visited in alphabet order.
		mark := len(o.stack)
		n.children.each(func(_ int32, e EdgeID) bool {
			o.stack = append(o.stack, o.t.edges[e].target)
			return true
		})
		slices.Reverse(o.stack[mark:])
	}
	return -1, false
}

// All adapts the iterator for range loops. Breaking out of the loop leaves
// the remaining occurrences unread; the sequence cannot be restarted.
func (o *Occurrences) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for {
			start, ok := o.Next()
			if !ok || !yield(start) {
				return
			}
		}
	}
}

// Collect drains the iterator into a slice.
func (o *Occurrences) Collect() []int {
	return slices.Collect(o.All())
}
