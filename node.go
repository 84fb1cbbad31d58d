package suffixtree

import (
	"maps"
	"slices"
)

// NodeID identifies a node within a Tree. Suffix links are stored as NodeIDs,
// so the root's self-link and other back references never own anything.
type NodeID int32

// rootID is always the first node allocated.
const rootID NodeID = 0

// noNode marks an unresolved suffix link or an absent pending node.
const noNode NodeID = -1

// ChildTable selects how nodes store their outgoing edges.
type ChildTable int

const (
	// AutoChildren uses dense tables up to Options.DenseLimit characters and
	// sparse tables above it.
	AutoChildren ChildTable = iota

	// DenseChildren gives every branching node one slot per character.
	DenseChildren

	// SparseChildren keys outgoing edges by character index in a map.
	SparseChildren
)

// node is one record of the arena. Root, internal and leaf nodes share the
// layout; isRoot and isLeaf discriminate.
type node struct {
	isRoot bool
	isLeaf bool

	// suffixStart is the offset of the suffix spelled by the path to this
	// leaf. Only meaningful for leaves.
	suffixStart int

	// suffixLink points at the node for this node's path minus its first
	// character. Leaves leave it at noNode.
	suffixLink NodeID

	// children is empty for leaves.
	children childTable
}

// childTable maps alphabet indices to outgoing edges.
type childTable struct {
	dense  []EdgeID
	sparse map[int32]EdgeID
}

func newChildTable(width int, sparse bool) childTable {
	if sparse {
		return childTable{sparse: make(map[int32]EdgeID)}
	}
	dense := make([]EdgeID, width)
	for i := range dense {
		dense[i] = noEdge
	}
	return childTable{dense: dense}
}

// get returns the edge keyed by k, or noEdge.
func (c *childTable) get(k int32) EdgeID {
	if c.dense != nil {
		return c.dense[k]
	}
	if e, ok := c.sparse[k]; ok {
		return e
	}
	return noEdge
}

func (c *childTable) set(k int32, e EdgeID) {
	if c.dense != nil {
		c.dense[k] = e
		return
	}
	c.sparse[k] = e
}

// count returns the number of occupied slots.
func (c *childTable) count() int {
	if c.dense == nil {
		return len(c.sparse)
	}
	n := 0
	for _, e := range c.dense {
		if e != noEdge {
			n++
		}
	}
	return n
}

// each visits occupied slots in key order until fn returns false.
func (c *childTable) each(fn func(k int32, e EdgeID) bool) {
	if c.dense != nil {
		for k, e := range c.dense {
			if e != noEdge && !fn(int32(k), e) {
				return
			}
		}
		return
	}
	for _, k := range slices.Sorted(maps.Keys(c.sparse)) {
		if !fn(k, c.sparse[k]) {
			return
		}
	}
}
