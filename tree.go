package suffixtree

import (
	"fmt"
	"iter"
	"strings"

	"github.com/pkg/errors"
)

// DefaultDenseLimit is the largest alphabet that gets dense child tables
// under AutoChildren.
const DefaultDenseLimit = 128

// Options configures how a Tree is built.
type Options struct {
	// Alphabet maps sequence characters to child indices. Required.
	Alphabet Alphabet

	// Implicit skips the final terminator phase. The tree is then the plain
	// implicit suffix tree: a suffix that also starts another suffix ends
	// inside an edge, not at a leaf, and queries only see it when the last
	// character of the sequence is unique.
	Implicit bool

	// Children selects the child table layout.
	Children ChildTable

	// DenseLimit overrides DefaultDenseLimit for AutoChildren.
	DenseLimit int

	// Logger receives build diagnostics. Nil disables logging.
	Logger Logger
}

// BuildStats counts the work done by the builder.
type BuildStats struct {
	Phases     int // characters absorbed, including the terminator
	Extensions int // extensions performed across all phases
	Leaves     int // rule 2a and 2b extensions (one new leaf each)
	Splits     int // rule 2b extensions (one new internal node each)
	Implicit   int // rule 3 extensions (phase ended early)
	Descents   int // edges walked down while canonicalizing
}

// Tree is a suffix tree over one sequence. It is immutable once built and
// safe for concurrent queries.
type Tree struct {
	seq      string
	alphabet Alphabet
	implicit bool

	// keys holds the alphabet index of each character, followed by the
	// terminator key unless the tree is implicit.
	keys     []int32
	terminal int32

	nodes []node
	edges []edge

	// end is the final value of the global end marker; open edges end here.
	end int

	stats BuildStats
}

// New builds the suffix tree of seq over the given alphabet.
func New(seq string, alphabet Alphabet) (*Tree, error) {
	return NewWithOptions(seq, Options{Alphabet: alphabet})
}

// NewWithOptions builds the suffix tree of seq. It fails if a character of
// seq is outside opts.Alphabet; no partial tree is returned.
func NewWithOptions(seq string, opts Options) (*Tree, error) {
	if opts.Alphabet == nil {
		return nil, errors.Wrap(ErrInvalidAlphabet, "no alphabet configured")
	}
	if opts.Alphabet.Size() <= 0 {
		return nil, errors.Wrapf(ErrInvalidAlphabet, "alphabet size %d", opts.Alphabet.Size())
	}

	t := &Tree{
		seq:      seq,
		alphabet: opts.Alphabet,
		implicit: opts.Implicit,
		terminal: int32(opts.Alphabet.Size()),
		end:      -1,
	}
	if err := newBuilder(t, opts).build(); err != nil {
		return nil, err
	}
	return t, nil
}

// Len returns the length of the indexed sequence.
func (t *Tree) Len() int {
	return len(t.seq)
}

// Sequence returns the indexed sequence.
func (t *Tree) Sequence() string {
	return t.seq
}

// Alphabet returns the alphabet the tree was built with.
func (t *Tree) Alphabet() Alphabet {
	return t.alphabet
}

// Implicit reports whether the tree was built without the terminator phase.
func (t *Tree) Implicit() bool {
	return t.implicit
}

// BuildStats returns the counters gathered during construction.
func (t *Tree) BuildStats() BuildStats {
	return t.stats
}

// Stats describes the shape of a built tree.
type Stats struct {
	Nodes         int
	InternalNodes int // excluding the root
	Leaves        int
	Edges         int
	MaxDepth      int // longest root-to-node path in characters
}

// Stats walks the tree and reports its shape.
func (t *Tree) Stats() Stats {
	s := Stats{Nodes: len(t.nodes), Edges: len(t.edges)}
	for i := range t.nodes {
		switch {
		case t.nodes[i].isLeaf:
			s.Leaves++
		case !t.nodes[i].isRoot:
			s.InternalNodes++
		}
	}

	type frame struct {
		id    NodeID
		depth int
	}
	stack := []frame{{rootID, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > s.MaxDepth {
			s.MaxDepth = f.depth
		}
		t.nodes[f.id].children.each(func(_ int32, e EdgeID) bool {
			stack = append(stack, frame{t.edges[e].target, f.depth + t.edges[e].length(t.end)})
			return true
		})
	}
	return s
}

// Leaves yields the suffix start of every leaf in depth-first order.
func (t *Tree) Leaves() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := t.newOccurrences(rootID)
		for {
			start, ok := it.Next()
			if !ok || !yield(start) {
				return
			}
		}
	}
}

// Validate checks the structural invariants of a built tree: one leaf per
// explicit suffix with distinct starts, branching internal nodes with
// resolved suffix links, and non-empty edges each owning its target.
//
// An implicit tree has leaves for exactly the suffixes 0 through m-1 that
// occur only once; suffix m onward ends inside the tree and must still be
// spelled out along some path.
func (t *Tree) Validate() error {
	maxStart := t.Len()
	if t.implicit {
		maxStart = t.Len() - 1
	}
	seen := make([]bool, t.Len()+1)
	owners := make([]int, len(t.nodes))
	leaves := 0

	for id := range t.nodes {
		n := &t.nodes[id]
		switch {
		case n.isLeaf:
			if n.children.count() != 0 {
				return errors.Wrapf(ErrInternal, "leaf %d has children", id)
			}
			if n.suffixStart < 0 || n.suffixStart > maxStart || seen[n.suffixStart] {
				return errors.Wrapf(ErrInternal, "leaf %d has bad suffix start %d", id, n.suffixStart)
			}
			seen[n.suffixStart] = true
			leaves++
		case n.isRoot:
			if n.suffixLink != rootID {
				return errors.Wrapf(ErrInternal, "root links to %d", n.suffixLink)
			}
		default:
			if n.children.count() < 2 {
				return errors.Wrapf(ErrInternal, "internal node %d has %d children", id, n.children.count())
			}
			if n.suffixLink == noNode {
				return errors.Wrapf(ErrInternal, "internal node %d has no suffix link", id)
			}
		}

		var err error
		n.children.each(func(k int32, e EdgeID) bool {
			ed := &t.edges[e]
			if ed.length(t.end) < 1 {
				err = errors.Wrapf(ErrInternal, "edge %d is empty", e)
				return false
			}
			if t.keys[ed.start] != k {
				err = errors.Wrapf(ErrInternal, "edge %d filed under the wrong character", e)
				return false
			}
			owners[ed.target]++
			return true
		})
		if err != nil {
			return err
		}
	}

	if t.implicit {
		if err := t.validateImplicitLeaves(seen, leaves); err != nil {
			return err
		}
	} else if leaves != t.Len()+1 {
		return errors.Wrapf(ErrInternal, "%d leaves for %d suffixes", leaves, t.Len()+1)
	}
	for id, c := range owners {
		if NodeID(id) != rootID && c != 1 {
			return errors.Wrapf(ErrInternal, "node %d has %d incoming edges", id, c)
		}
	}
	return nil
}

func (t *Tree) validateImplicitLeaves(seen []bool, leaves int) error {
	if t.Len() > 0 && leaves == 0 {
		return errors.Wrap(ErrInternal, "implicit tree has no leaves")
	}
	for i := 0; i < leaves; i++ {
		if !seen[i] {
			return errors.Wrapf(ErrInternal, "implicit leaves do not cover suffixes 0 to %d", leaves-1)
		}
	}
	if leaves < t.Len() {
		if _, ok := t.descend(t.keys[leaves:t.Len()]); !ok {
			return errors.Wrapf(ErrInternal, "suffix %d is not in the tree", leaves)
		}
	}
	return nil
}

// String renders the tree one edge per line, indented by depth. The
// terminator is shown as '$'.
func (t *Tree) String() string {
	var sb strings.Builder
	t.writeNode(&sb, rootID, 0)
	return sb.String()
}

func (t *Tree) writeNode(sb *strings.Builder, id NodeID, indent int) {
	t.nodes[id].children.each(func(_ int32, e EdgeID) bool {
		ed := &t.edges[e]
		sb.WriteString(strings.Repeat("  ", indent))
		fmt.Fprintf(sb, "* %s [%d, %d]", t.label(ed), ed.start, ed.endAt(t.end))
		if target := &t.nodes[ed.target]; target.isLeaf {
			fmt.Fprintf(sb, " -> %d", target.suffixStart)
		}
		sb.WriteByte('\n')
		t.writeNode(sb, ed.target, indent+1)
		return true
	})
}

// label returns the characters along an edge.
func (t *Tree) label(e *edge) string {
	end := e.endAt(t.end)
	if end < len(t.seq) {
		return t.seq[e.start : end+1]
	}
	return t.seq[e.start:] + "$"
}
