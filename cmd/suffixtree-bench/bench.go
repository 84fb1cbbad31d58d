package main

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"slices"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/phroun/suffixtree"
	"github.com/phroun/suffixtree/internal/corpus"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// BenchResult aggregates one workload.
type BenchResult struct {
	Name       string
	Trees      int
	Chars      int
	Nodes      int
	Build      time.Duration // summed over trees
	Queries    int
	QueryTime  time.Duration // summed over trees
	Hits       int
	Mismatches int
	Wall       time.Duration
	Allocated  uint64
}

// treeResult is what one worker reports for one sequence.
type treeResult struct {
	chars      int
	nodes      int
	build      time.Duration
	queries    int
	queryTime  time.Duration
	hits       int
	mismatches int
}

// Runner executes workloads.
type Runner struct {
	Seed    int64
	Workers int
	Verify  bool
	Logger  suffixtree.Logger
}

// Run builds Count random trees for the workload, queries each, and checks
// the answers against a naive scan when Verify is set.
func (r *Runner) Run(ctx context.Context, w Workload) (BenchResult, error) {
	alphabet, err := corpus.ParseAlphabet(w.Alphabet)
	if err != nil {
		return BenchResult{}, errors.Wrap(err, w.Name)
	}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	results := make([]treeResult, w.Count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Workers, 1))
	for i := 0; i < w.Count; i++ {
		g.Go(func() (err error) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			defer func() {
				if p := recover(); p != nil {
					err = goerrors.Wrap(p, 2)
				}
			}()
			rng := rand.New(rand.NewSource(r.Seed + int64(i)))
			results[i], err = r.runTree(rng, w, alphabet)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return BenchResult{}, err
	}

	runtime.ReadMemStats(&after)
	res := BenchResult{
		Name:      w.Name,
		Trees:     w.Count,
		Wall:      time.Since(start),
		Allocated: after.TotalAlloc - before.TotalAlloc,
	}
	for _, tr := range results {
		res.Chars += tr.chars
		res.Nodes += tr.nodes
		res.Build += tr.build
		res.Queries += tr.queries
		res.QueryTime += tr.queryTime
		res.Hits += tr.hits
		res.Mismatches += tr.mismatches
	}
	return res, nil
}

func (r *Runner) runTree(rng *rand.Rand, w Workload, alphabet suffixtree.Alphabet) (treeResult, error) {
	seq := corpus.Random(rng, alphabet, w.Length, w.Distinct, w.sentinel())

	start := time.Now()
	tree, err := suffixtree.NewWithOptions(seq, suffixtree.Options{
		Alphabet: alphabet,
		Implicit: w.Implicit,
		Logger:   r.Logger,
	})
	if err != nil {
		return treeResult{}, errors.Wrapf(err, "%s: building", w.Name)
	}
	res := treeResult{chars: len(seq), build: time.Since(start), nodes: tree.Stats().Nodes}

	if r.Verify {
		if err := tree.Validate(); err != nil {
			return res, errors.Wrapf(err, "%s: sequence %q", w.Name, seq)
		}
	}

	for p := 0; p < w.Patterns; p++ {
		n := w.MinPattern + rng.Intn(w.MaxPattern-w.MinPattern+1)
		var pattern string
		if p%2 == 0 && n <= len(seq) {
			// Half the patterns are cut from the sequence so they hit.
			i := rng.Intn(len(seq) - n + 1)
			pattern = seq[i : i+n]
		} else {
			pattern = corpus.Random(rng, alphabet, n, w.Distinct, 0)
		}

		qs := time.Now()
		occ, err := tree.SubstringOccurrences(pattern)
		if err != nil {
			return res, errors.Wrapf(err, "%s: pattern %q", w.Name, pattern)
		}
		got := occ.Collect()
		res.queryTime += time.Since(qs)
		res.queries++
		if len(got) > 0 {
			res.hits++
		}

		if r.Verify {
			slices.Sort(got)
			if want := corpus.Occurrences(seq, pattern); !slices.Equal(got, want) {
				res.mismatches++
				if r.Logger != nil {
					r.Logger.Warnf("%s: pattern %q: got %v, want %v", w.Name, pattern, got, want)
				}
			}
		}
	}

	if r.Verify {
		suffix := seq[rng.Intn(len(seq)+1):]
		at, ok, err := tree.ContainsSuffix(suffix)
		if err != nil {
			return res, errors.Wrapf(err, "%s: suffix %q", w.Name, suffix)
		}
		if !ok || at != len(seq)-len(suffix) {
			res.mismatches++
			if r.Logger != nil {
				r.Logger.Warnf("%s: suffix %q reported at %d (found %v)", w.Name, suffix, at, ok)
			}
		}
	}
	return res, nil
}

func (r BenchResult) String() string {
	return fmt.Sprintf("%-24s %12v  (%d trees, %d queries)", r.Name, r.Wall.Round(time.Millisecond), r.Trees, r.Queries)
}
