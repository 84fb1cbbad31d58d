package suffixtree

import "github.com/pkg/errors"

// NodeInfo is a read-only view of one node.
type NodeInfo struct {
	ID          NodeID
	IsRoot      bool
	IsLeaf      bool
	SuffixStart int    // -1 unless IsLeaf
	SuffixLink  NodeID // -1 for leaves
	Children    int
}

// EdgeInfo is a read-only view of one edge. End is inclusive; an edge that
// reaches End == Len() carries the terminator as its last character.
type EdgeInfo struct {
	ID     EdgeID
	Start  int
	End    int
	Open   bool
	Target NodeID
	Label  string
}

// Root returns the ID of the root node.
func (t *Tree) Root() NodeID {
	return rootID
}

// Node describes the node with the given ID.
func (t *Tree) Node(id NodeID) (NodeInfo, error) {
	if id < 0 || int(id) >= len(t.nodes) {
		return NodeInfo{}, errors.Wrapf(ErrOutOfRange, "node %d", id)
	}
	n := &t.nodes[id]
	info := NodeInfo{
		ID:          id,
		IsRoot:      n.isRoot,
		IsLeaf:      n.isLeaf,
		SuffixStart: -1,
		SuffixLink:  n.suffixLink,
		Children:    n.children.count(),
	}
	if n.isLeaf {
		info.SuffixStart = n.suffixStart
	}
	return info, nil
}

// Child returns the edge leaving node id along character c. It fails with
// ErrOutOfDomain if c is not in the tree's alphabet.
func (t *Tree) Child(id NodeID, c byte) (EdgeInfo, bool, error) {
	if id < 0 || int(id) >= len(t.nodes) {
		return EdgeInfo{}, false, errors.Wrapf(ErrOutOfRange, "node %d", id)
	}
	k, err := t.alphabet.IndexOf(c)
	if err != nil || k < 0 || k >= t.alphabet.Size() {
		return EdgeInfo{}, false, errors.Wrapf(ErrOutOfDomain, "character %q", c)
	}
	e := t.nodes[id].children.get(int32(k))
	if e == noEdge {
		return EdgeInfo{}, false, nil
	}
	return t.edgeInfo(e), true, nil
}

// Children lists the edges leaving node id in alphabet order, the
// terminator edge last.
func (t *Tree) Children(id NodeID) ([]EdgeInfo, error) {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil, errors.Wrapf(ErrOutOfRange, "node %d", id)
	}
	var out []EdgeInfo
	t.nodes[id].children.each(func(_ int32, e EdgeID) bool {
		out = append(out, t.edgeInfo(e))
		return true
	})
	return out, nil
}

func (t *Tree) edgeInfo(e EdgeID) EdgeInfo {
	ed := &t.edges[e]
	return EdgeInfo{
		ID:     e,
		Start:  ed.start,
		End:    ed.endAt(t.end),
		Open:   ed.open,
		Target: ed.target,
		Label:  t.label(ed),
	}
}
