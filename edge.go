package suffixtree

import "github.com/pkg/errors"

// EdgeID identifies an edge within a Tree.
type EdgeID int32

// noEdge marks an empty child slot.
const noEdge EdgeID = -1

// openEnd is stored in the end field of open edges.
const openEnd = -1

// edge labels the path from a parent node to target with sequence[start..end].
//
// An open edge has no stored end: it always ends at the current phase, which
// the caller passes in. This is how every leaf edge grows by one character per
// phase without being touched. A split turns the upper part of an open edge
// into a fixed edge; the lower part keeps the open flag.
type edge struct {
	start  int
	end    int
	open   bool
	target NodeID
}

// makeEdge builds an edge. end must be openEnd exactly when open is set.
func makeEdge(start, end int, open bool, target NodeID) edge {
	switch {
	case open && end != openEnd:
		invariant("open edge at %d built with fixed end %d", start, end)
	case !open && end == openEnd:
		invariant("edge at %d has neither a fixed end nor the open flag", start)
	case !open && end < start:
		invariant("edge [%d, %d] is empty", start, end)
	}
	return edge{start: start, end: end, open: open, target: target}
}

// endAt returns the inclusive end index of the edge during the given phase.
func (e *edge) endAt(phase int) int {
	if e.open {
		return phase
	}
	return e.end
}

// length returns the number of characters on the edge during the given phase.
func (e *edge) length(phase int) int {
	return e.endAt(phase) - e.start + 1
}

// at returns the key of the i-th character along the edge.
func (e *edge) at(keys []int32, i, phase int) (int32, error) {
	if i < 0 || i >= e.length(phase) {
		return 0, errors.Wrapf(ErrOutOfRange, "offset %d on edge [%d, %d]", i, e.start, e.endAt(phase))
	}
	return keys[e.start+i], nil
}

// fix truncates the edge to [start, end] and closes it.
func (e *edge) fix(end int) {
	if end < e.start {
		invariant("truncating edge at %d to end %d", e.start, end)
	}
	e.open = false
	e.end = end
}
