package main

import (
	"fmt"
	"io"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/kballard/go-shellquote"
	"github.com/olekukonko/tablewriter"
	"github.com/phroun/suffixtree"
	"github.com/phroun/suffixtree/internal/corpus"
	"github.com/pkg/errors"
)

// maxDump is the largest tree the 'tree' command prints.
const maxDump = 200

// REPL holds the state of the interactive session.
type REPL struct {
	out      io.Writer
	log      suffixtree.Logger
	alphabet suffixtree.Alphabet
	implicit bool

	tree   *suffixtree.Tree
	source string

	// cache holds complete, sorted occurrence lists for the current tree.
	cache *lru.Cache[string, []int]
}

// NewREPL creates a session writing to out.
func NewREPL(out io.Writer, cacheSize int, log suffixtree.Logger) (*REPL, error) {
	cache, err := lru.New[string, []int](max(cacheSize, 1))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &REPL{
		out:      out,
		log:      log,
		alphabet: suffixtree.PrintableASCII,
		cache:    cache,
	}, nil
}

func (r *REPL) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

// handleCommand runs one input line. It returns false when the session
// should end.
func (r *REPL) handleCommand(input string) bool {
	parts, err := shellquote.Split(input)
	if err != nil {
		r.printf("Error: %v\n", err)
		return true
	}
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help":
		r.printHelp()

	case "quit", "exit":
		r.printf("Goodbye!\n")
		return false

	case "alphabet":
		r.cmdAlphabet(args)

	case "implicit":
		r.cmdImplicit(args)

	case "text":
		r.cmdText(args)

	case "load":
		r.cmdLoad(args)

	case "random":
		r.cmdRandom(args)

	case "find":
		r.cmdFind(args)

	case "count":
		r.cmdCount(args)

	case "suffix":
		r.cmdSuffix(args)

	case "status":
		r.cmdStatus()

	case "stats":
		r.cmdStats()

	case "tree":
		r.cmdTree()

	case "node":
		r.cmdNode(args)

	default:
		r.printf("Unknown command: %s. Type 'help' for available commands.\n", cmd)
	}

	return true
}

func (r *REPL) printHelp() {
	r.printf(`Commands:
  alphabet <spec>            set the alphabet (printable, lowercase, five, set:ACGT, range:a:10)
  implicit on|off            build implicit trees (no terminator phase)
  text <string>              build a tree over a literal string (quote to keep spaces)
  load <file> [replacement]  build over a file; out-of-alphabet bytes become replacement
  random <length> [distinct] [sentinel]
                             build over a random string
  find <pattern> [limit]     list offsets where pattern occurs
  count <pattern>            count occurrences
  suffix <pattern>           report where pattern starts if it is a suffix
  status                     show the current tree
  stats                      show tree shape and build counters
  tree                       print the tree (small trees only)
  node <id>                  inspect a node and its edges
  quit                       leave
`)
}

func (r *REPL) cmdAlphabet(args []string) {
	if len(args) != 1 {
		r.printf("Usage: alphabet <spec>\n")
		return
	}
	a, err := corpus.ParseAlphabet(args[0])
	if err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	r.alphabet = a
	r.printf("Alphabet set: %d characters\n", a.Size())
}

func (r *REPL) cmdImplicit(args []string) {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		r.printf("Usage: implicit on|off\n")
		return
	}
	r.implicit = args[0] == "on"
	r.printf("Implicit trees: %s\n", args[0])
}

func (r *REPL) cmdText(args []string) {
	if len(args) == 0 {
		r.printf("Usage: text <string>\n")
		return
	}
	r.build(strings.Join(args, " "), "literal")
}

func (r *REPL) cmdLoad(args []string) {
	if len(args) < 1 || len(args) > 2 {
		r.printf("Usage: load <file> [replacement]\n")
		return
	}
	s, err := corpus.Load(args[0])
	if err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	if len(args) == 2 {
		if len(args[1]) != 1 {
			r.printf("Error: replacement must be a single character\n")
			return
		}
		var replaced int
		s, replaced, err = corpus.Sanitize(s, r.alphabet, args[1][0])
		if err != nil {
			r.printf("Error: %v\n", err)
			return
		}
		r.printf("Replaced %s bytes outside the alphabet\n", humanize.Comma(int64(replaced)))
	}
	r.build(s, args[0])
}

func (r *REPL) cmdRandom(args []string) {
	if len(args) < 1 || len(args) > 3 {
		r.printf("Usage: random <length> [distinct] [sentinel]\n")
		return
	}
	length, err := strconv.Atoi(args[0])
	if err != nil || length < 0 {
		r.printf("Error: invalid length %q\n", args[0])
		return
	}
	distinct := 0
	if len(args) > 1 {
		if distinct, err = strconv.Atoi(args[1]); err != nil {
			r.printf("Error: invalid distinct count %q\n", args[1])
			return
		}
	}
	var sentinel byte
	if len(args) > 2 {
		if len(args[2]) != 1 {
			r.printf("Error: sentinel must be a single character\n")
			return
		}
		sentinel = args[2][0]
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.build(corpus.Random(rng, r.alphabet, length, distinct, sentinel), "random")
}

// build replaces the current tree. A failed build keeps the old one.
func (r *REPL) build(seq, source string) {
	start := time.Now()
	tree, err := suffixtree.NewWithOptions(seq, suffixtree.Options{
		Alphabet: r.alphabet,
		Implicit: r.implicit,
		Logger:   r.log,
	})
	if err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	r.tree = tree
	r.source = source
	r.cache.Purge()
	r.printf("Built tree over %s characters from %s in %v\n",
		humanize.Comma(int64(tree.Len())), source, time.Since(start).Round(time.Microsecond))
}

func (r *REPL) requireTree() bool {
	if r.tree == nil {
		r.printf("No tree. Use 'text', 'load' or 'random' first.\n")
		return false
	}
	return true
}

func (r *REPL) cmdFind(args []string) {
	if len(args) < 1 || len(args) > 2 {
		r.printf("Usage: find <pattern> [limit]\n")
		return
	}
	if !r.requireTree() {
		return
	}
	pattern := args[0]
	limit := -1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			r.printf("Error: invalid limit %q\n", args[1])
			return
		}
		limit = n
	}

	offsets, complete, err := r.occurrences(pattern, limit)
	if err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	if len(offsets) == 0 {
		r.printf("No occurrences of %q\n", pattern)
		return
	}
	strs := make([]string, len(offsets))
	for i, o := range offsets {
		strs[i] = strconv.Itoa(o)
	}
	r.printf("%s\n", strings.Join(strs, " "))
	if !complete {
		r.printf("(stopped after %d)\n", limit)
	}
}

// occurrences returns up to limit offsets (all when limit < 0) and whether
// that is every occurrence. Complete results are cached and sorted.
func (r *REPL) occurrences(pattern string, limit int) ([]int, bool, error) {
	if cached, ok := r.cache.Get(pattern); ok {
		if limit >= 0 && len(cached) > limit {
			return cached[:limit], false, nil
		}
		return cached, true, nil
	}

	occ, err := r.tree.SubstringOccurrences(pattern)
	if err != nil {
		return nil, false, err
	}
	var out []int
	for o := range occ.All() {
		if limit >= 0 && len(out) == limit {
			return out, false, nil
		}
		out = append(out, o)
	}
	slices.Sort(out)
	r.cache.Add(pattern, out)
	return out, true, nil
}

func (r *REPL) cmdCount(args []string) {
	if len(args) != 1 {
		r.printf("Usage: count <pattern>\n")
		return
	}
	if !r.requireTree() {
		return
	}
	offsets, _, err := r.occurrences(args[0], -1)
	if err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	r.printf("%s\n", humanize.Comma(int64(len(offsets))))
}

func (r *REPL) cmdSuffix(args []string) {
	if len(args) > 1 {
		r.printf("Usage: suffix <pattern>\n")
		return
	}
	if !r.requireTree() {
		return
	}
	pattern := ""
	if len(args) == 1 {
		pattern = args[0]
	}
	at, ok, err := r.tree.ContainsSuffix(pattern)
	if err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	if !ok {
		r.printf("%q is not a suffix\n", pattern)
		return
	}
	r.printf("Suffix starts at %d\n", at)
}

func (r *REPL) cmdStatus() {
	if r.tree == nil {
		r.printf("No tree. Alphabet: %d characters, implicit: %v\n", r.alphabet.Size(), r.implicit)
		return
	}
	r.printf("Tree over %s characters from %s (alphabet %d, implicit %v, %d cached queries)\n",
		humanize.Comma(int64(r.tree.Len())), r.source, r.tree.Alphabet().Size(), r.tree.Implicit(), r.cache.Len())
}

func (r *REPL) cmdStats() {
	if !r.requireTree() {
		return
	}
	s := r.tree.Stats()
	b := r.tree.BuildStats()

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Measure", "Value"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, row := range []struct {
		name  string
		value int
	}{
		{"characters", r.tree.Len()},
		{"nodes", s.Nodes},
		{"internal nodes", s.InternalNodes},
		{"leaves", s.Leaves},
		{"edges", s.Edges},
		{"max depth", s.MaxDepth},
		{"phases", b.Phases},
		{"extensions", b.Extensions},
		{"splits", b.Splits},
		{"implicit extensions", b.Implicit},
		{"descents", b.Descents},
	} {
		table.Append([]string{row.name, humanize.Comma(int64(row.value))})
	}
	table.Render()
}

func (r *REPL) cmdTree() {
	if !r.requireTree() {
		return
	}
	if r.tree.Len() > maxDump {
		r.printf("Tree too large to print (%d characters, limit %d)\n", r.tree.Len(), maxDump)
		return
	}
	r.printf("%s", r.tree.String())
}

func (r *REPL) cmdNode(args []string) {
	if !r.requireTree() {
		return
	}
	id := r.tree.Root()
	if len(args) == 1 {
		n, err := strconv.ParseInt(args[0], 10, 32)
		if err != nil {
			r.printf("Error: invalid node %q\n", args[0])
			return
		}
		id = suffixtree.NodeID(n)
	}

	info, err := r.tree.Node(id)
	if err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	switch {
	case info.IsRoot:
		r.printf("Node %d: root, %d children\n", info.ID, info.Children)
	case info.IsLeaf:
		r.printf("Node %d: leaf for suffix %d\n", info.ID, info.SuffixStart)
		return
	default:
		r.printf("Node %d: internal, %d children, suffix link -> %d\n", info.ID, info.Children, info.SuffixLink)
	}

	children, err := r.tree.Children(id)
	if err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	for _, e := range children {
		label := e.Label
		if len(label) > 40 {
			label = label[:37] + "..."
		}
		r.printf("  %q [%d, %d] -> node %d\n", label, e.Start, e.End, e.Target)
	}
}
