package suffixtree

// builder runs Ukkonen's algorithm over one sequence. It owns the tree while
// the build is in progress; once build returns, the tree is never mutated.
type builder struct {
	t *Tree

	// phase is the global end marker: every open edge ends here.
	phase int

	// lastJ is the last suffix made explicit by a rule 2 extension. Suffixes
	// up to it are never revisited.
	lastJ int

	active  NodeID
	ap      activePoint
	pending NodeID

	// stop is set by rule 3 and ends the current phase.
	stop bool

	sparse bool
	width  int
	log    Logger
	trace  bool
}

func newBuilder(t *Tree, opts Options) *builder {
	b := &builder{
		t:       t,
		lastJ:   -1,
		active:  rootID,
		ap:      activePoint{start: 0, end: -1},
		pending: noNode,
		width:   t.alphabet.Size() + 1,
		log:     opts.Logger,
	}

	limit := opts.DenseLimit
	if limit <= 0 {
		limit = DefaultDenseLimit
	}
	switch opts.Children {
	case SparseChildren:
		b.sparse = true
	case DenseChildren:
		if b.width > limit && b.log != nil {
			b.log.Warnf("dense child tables requested for %d characters", b.width-1)
		}
	default:
		b.sparse = b.width > limit
	}

	if tl, ok := b.log.(interface{ TraceEnabled() bool }); ok {
		b.trace = tl.TraceEnabled()
	} else {
		b.trace = b.log != nil
	}

	t.nodes = append(t.nodes, node{
		isRoot:     true,
		suffixLink: rootID,
		children:   newChildTable(b.width, b.sparse),
	})
	return b
}

// build absorbs the whole sequence, plus the terminator unless the tree is
// implicit. A character outside the alphabet aborts the build.
func (b *builder) build() error {
	t := b.t
	n := len(t.seq)
	phases := n
	if !t.implicit {
		phases = n + 1
	}
	t.keys = make([]int32, 0, phases)

	for phase := 0; phase < phases; phase++ {
		if phase < n {
			k, err := t.alphabet.IndexOf(t.seq[phase])
			if err != nil || k < 0 || k >= t.alphabet.Size() {
				return domainError(t.seq[phase], phase)
			}
			t.keys = append(t.keys, int32(k))
		} else {
			t.keys = append(t.keys, t.terminal)
		}

		// Rule 1: advancing the end marker extends every open leaf edge.
		b.phase = phase
		b.stop = false
		t.stats.Phases++

		for j := b.lastJ + 1; j <= phase && !b.stop; j++ {
			b.canonicalize()
			b.extend(j)
			t.stats.Extensions++
		}
	}

	t.end = phases - 1
	if b.pending != noNode {
		invariant("internal node %d left without a suffix link", b.pending)
	}
	if b.log != nil {
		b.log.Debugf("built suffix tree: %d characters, %d nodes, %d leaves, %d splits, %d implicit extensions",
			n, len(t.nodes), t.stats.Leaves, t.stats.Splits, t.stats.Implicit)
	}
	return nil
}

// activeEdge returns the edge leaving the active node along the first
// pending character.
func (b *builder) activeEdge() EdgeID {
	c, ok := b.ap.firstCharacter(b.t.keys)
	if !ok {
		invariant("active edge requested with an empty active point")
	}
	e := b.t.nodes[b.active].children.get(c)
	if e == noEdge {
		invariant("node %d has no edge for pending key %d", b.active, c)
	}
	return e
}

// canonicalize walks the active point down while it covers whole edges, so
// it is expressed from the deepest node it passes.
func (b *builder) canonicalize() {
	for b.ap.length() > 0 {
		e := &b.t.edges[b.activeEdge()]
		l := e.length(b.phase)
		if l > b.ap.length() {
			return
		}
		b.active = e.target
		b.ap.shrinkFront(l)
		b.t.stats.Descents++
	}
}

// extend applies one extension for suffix j.
func (b *builder) extend(j int) {
	t := b.t
	next := t.keys[b.phase]

	if b.ap.length() == 0 {
		if t.nodes[b.active].children.get(next) != noEdge {
			b.rule3(j)
		} else {
			b.rule2a(j)
		}
		return
	}

	e := &t.edges[b.activeEdge()]
	existing, err := e.at(t.keys, b.ap.length(), b.phase)
	if err != nil {
		invariant("active point runs past its edge: %v", err)
	}
	if existing == next {
		b.rule3(j)
	} else {
		b.rule2b(j)
	}
}

// rule3: the suffix is already in the tree. Defer it to the next phase and
// end this one; every shorter suffix is present too.
func (b *builder) rule3(j int) {
	if b.trace {
		b.log.Tracef("phase %d, j %d: rule 3 at node %d, pending length %d", b.phase, j, b.active, b.ap.length())
	}
	b.ap.growBack(1)
	b.resolvePending(b.active)
	b.stop = true
	b.t.stats.Implicit++
}

// rule2a: hang a new leaf directly off the active node.
func (b *builder) rule2a(j int) {
	t := b.t
	if b.trace {
		b.log.Tracef("phase %d, j %d: rule 2a, new leaf under node %d", b.phase, j, b.active)
	}
	leaf := b.newLeaf(j)
	e := b.newEdge(makeEdge(b.phase, openEnd, true, leaf))
	t.nodes[b.active].children.set(t.keys[b.phase], e)

	b.resolvePending(b.active)
	b.lastJ = j
	b.followSuffixLink()
}

// rule2b: split the active edge where the new character diverges, and hang
// a new leaf off the split node.
func (b *builder) rule2b(j int) {
	t := b.t
	eid := b.activeEdge()
	old := t.edges[eid]
	split := old.start + b.ap.length()
	if b.trace {
		b.log.Tracef("phase %d, j %d: rule 2b, split edge %d at offset %d", b.phase, j, eid, split)
	}

	v := b.newInternal()
	lower := b.newEdge(makeEdge(split, old.end, old.open, old.target))
	leaf := b.newLeaf(j)
	branch := b.newEdge(makeEdge(b.phase, openEnd, true, leaf))

	t.nodes[v].children.set(t.keys[split], lower)
	t.nodes[v].children.set(t.keys[b.phase], branch)

	t.edges[eid].target = v
	t.edges[eid].fix(split - 1)
	t.stats.Splits++

	b.resolvePending(v)
	b.pending = v
	b.lastJ = j
	b.followSuffixLink()
}

// resolvePending links the pending internal node, if any, to target.
func (b *builder) resolvePending(target NodeID) {
	if b.pending == noNode {
		return
	}
	b.t.nodes[b.pending].suffixLink = target
	b.pending = noNode
}

// followSuffixLink moves the active point to the next shorter suffix. From
// the root there is no link to follow, so the pending range drops its first
// character instead (or, when empty, is repositioned one character on).
func (b *builder) followSuffixLink() {
	if b.active == rootID {
		if b.ap.length() > 0 {
			b.ap.shrinkFront(1)
		} else {
			b.ap.shift(1)
		}
	}
	link := b.t.nodes[b.active].suffixLink
	if link == noNode {
		invariant("node %d has no suffix link", b.active)
	}
	b.active = link
}

func (b *builder) newLeaf(j int) NodeID {
	t := b.t
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{isLeaf: true, suffixStart: j, suffixLink: noNode})
	t.stats.Leaves++
	return id
}

func (b *builder) newInternal() NodeID {
	t := b.t
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{suffixLink: noNode, children: newChildTable(b.width, b.sparse)})
	return id
}

func (b *builder) newEdge(e edge) EdgeID {
	id := EdgeID(len(b.t.edges))
	b.t.edges = append(b.t.edges, e)
	return id
}
