package suffixtree

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestTree builds a tree over printable ASCII and checks its structure.
func newTestTree(t *testing.T, seq string) *Tree {
	t.Helper()
	tree, err := New(seq, PrintableASCII)
	require.NoError(t, err, "building tree for %q", seq)
	require.NoError(t, tree.Validate(), "validating tree for %q", seq)
	return tree
}

// naiveOccurrences scans seq for every start of pattern.
func naiveOccurrences(seq, pattern string) []int {
	out := []int{}
	for i := 0; i+len(pattern) <= len(seq); i++ {
		if seq[i:i+len(pattern)] == pattern {
			out = append(out, i)
		}
	}
	return out
}

// naiveSuffix returns where pattern starts if seq ends with it.
func naiveSuffix(seq, pattern string) (int, bool) {
	if !strings.HasSuffix(seq, pattern) {
		return -1, false
	}
	return len(seq) - len(pattern), true
}

// occurrences drains a query into a sorted slice.
func occurrences(t *testing.T, tree *Tree, pattern string) []int {
	t.Helper()
	occ, err := tree.SubstringOccurrences(pattern)
	require.NoError(t, err)
	out := occ.Collect()
	if out == nil {
		out = []int{}
	}
	sort.Ints(out)
	return out
}

// randomString draws length characters from the first k lowercase letters,
// optionally ending with a '$' sentinel.
func randomString(rng *rand.Rand, length, k int, sentinel bool) string {
	var sb strings.Builder
	if sentinel && length > 0 {
		length--
	}
	for i := 0; i < length; i++ {
		sb.WriteByte(byte('a' + rng.Intn(k)))
	}
	if sentinel {
		sb.WriteByte('$')
	}
	return sb.String()
}
