package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerVerifiesWorkloads(t *testing.T) {
	tests := []Workload{
		{Name: "five", Alphabet: "five", Length: 200, Count: 8, Patterns: 50, MinPattern: 1, MaxPattern: 4},
		{Name: "dna implicit", Alphabet: "set:ACGT$", Distinct: 4, Length: 300, Count: 4, Sentinel: "$", Implicit: true, Patterns: 50, MinPattern: 2, MaxPattern: 6},
		{Name: "printable", Alphabet: "printable", Length: 500, Count: 2, Patterns: 20, MinPattern: 1, MaxPattern: 2},
	}

	runner := &Runner{Seed: 7, Workers: 3, Verify: true}
	for _, w := range tests {
		t.Run(w.Name, func(t *testing.T) {
			require.NoError(t, w.normalize())
			res, err := runner.Run(context.Background(), w)
			require.NoError(t, err)

			assert.Equal(t, w.Count, res.Trees)
			assert.Equal(t, w.Count*w.Length, res.Chars)
			assert.Equal(t, w.Count*w.Patterns, res.Queries)
			assert.Greater(t, res.Hits, 0)
			assert.Zero(t, res.Mismatches)
		})
	}
}

func TestRunnerRejectsBadAlphabet(t *testing.T) {
	runner := &Runner{Seed: 1, Workers: 1}
	_, err := runner.Run(context.Background(), Workload{Name: "bad", Alphabet: "klingon", Length: 5, Count: 1})
	assert.Error(t, err)
}

func TestRunnerReportsDomainErrors(t *testing.T) {
	// '$' is not lowercase, so the very last character aborts every build.
	runner := &Runner{Seed: 1, Workers: 2}
	_, err := runner.Run(context.Background(), Workload{Name: "sentinel", Alphabet: "lowercase", Length: 5, Count: 2, Sentinel: "$"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offset 4")
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	writeReport(&buf, []BenchResult{{Name: "tiny", Trees: 2, Chars: 20, Queries: 4, Hits: 3}})
	out := buf.String()
	assert.Contains(t, out, "WORKLOAD")
	assert.Contains(t, out, "tiny")
}

func TestRunProfileOnly(t *testing.T) {
	profile := Profile{Workloads: []Workload{
		{Name: "a", Alphabet: "five", Length: 10, Count: 1},
		{Name: "b", Alphabet: "five", Length: 10, Count: 1},
	}}
	runner := &Runner{Seed: 1, Workers: 1, Verify: true}

	results, err := runProfile(context.Background(), runner, profile, "b")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Name)

	_, err = runProfile(context.Background(), runner, profile, "c")
	assert.Error(t, err)
}
