// suffixtree-bench is a randomized stress test and benchmark for the
// suffixtree library. It builds batches of random trees, queries them, and
// checks every answer against a naive scan.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	goerrors "github.com/go-errors/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/phroun/suffixtree/internal/logging"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("suffixtree-bench", "Randomized stress test and benchmark for the suffixtree library.")
	configPath = app.Flag("config", "TOML bench profile (defaults to the built-in profile)").Short('c').ExistingFile()
	seedFlag   = app.Flag("seed", "Override the profile's random seed").Int64()
	workers    = app.Flag("workers", "Override the number of concurrent builders").Int()
	noVerify   = app.Flag("no-verify", "Skip checking answers against a naive scan").Bool()
	only       = app.Flag("only", "Run only the named workload").String()
	debug      = app.Flag("debug", "Log build summaries").Bool()
	trace      = app.Flag("trace", "Log every extension (very verbose)").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	fmt.Println("Suffix Tree Benchmark and Stress Test")
	fmt.Println("=====================================")
	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Printf("GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	fmt.Println()

	profile := defaultProfile()
	if *configPath != "" {
		p, err := LoadProfile(*configPath)
		if err != nil {
			fmt.Printf("Failed to load profile: %v\n", err)
			os.Exit(1)
		}
		profile = p
	}
	if *seedFlag != 0 {
		profile.Seed = *seedFlag
	}
	if *workers > 0 {
		profile.Workers = *workers
	}
	if *noVerify {
		profile.Verify = false
	}

	runner := &Runner{
		Seed:    profile.Seed,
		Workers: profile.Workers,
		Verify:  profile.Verify,
		Logger:  logging.NewStdLogger(true, *debug || *trace, *trace),
	}

	results, err := runProfile(context.Background(), runner, profile, *only)
	if err != nil {
		var stacked *goerrors.Error
		if errors.As(err, &stacked) {
			fmt.Fprintln(os.Stderr, stacked.ErrorStack())
		}
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	writeReport(os.Stdout, results)

	for _, r := range results {
		if r.Mismatches > 0 {
			fmt.Printf("\n%s: %d answers disagreed with the naive scan\n", r.Name, r.Mismatches)
			os.Exit(2)
		}
	}
}

// runProfile runs every workload (or just the one named only) and prints
// progress as it goes.
func runProfile(ctx context.Context, runner *Runner, profile Profile, only string) ([]BenchResult, error) {
	var results []BenchResult

	fmt.Printf("Running workloads (seed %d, %d workers, verify %v)...\n\n", runner.Seed, runner.Workers, runner.Verify)
	for _, w := range profile.Workloads {
		if only != "" && w.Name != only {
			continue
		}
		if err := w.normalize(); err != nil {
			return nil, err
		}
		fmt.Printf("  %-40s ", w.Name+"...")
		res, err := runner.Run(ctx, w)
		if err != nil {
			fmt.Println("failed")
			return nil, err
		}
		fmt.Printf("%v\n", res.Wall.Round(time.Millisecond))
		results = append(results, res)
	}
	if len(results) == 0 {
		return nil, errors.Errorf("no workload named %q", only)
	}
	return results, nil
}

// writeReport renders the results as a table.
func writeReport(w io.Writer, results []BenchResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Workload", "Trees", "Chars", "Nodes", "Build", "Chars/s", "Queries", "Hits", "Query avg", "Allocated", "Mismatches"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, r := range results {
		rate := "-"
		if r.Build > 0 {
			rate = humanize.SIWithDigits(float64(r.Chars)/r.Build.Seconds(), 1, "")
		}
		avg := "-"
		if r.Queries > 0 {
			avg = (r.QueryTime / time.Duration(r.Queries)).String()
		}
		table.Append([]string{
			r.Name,
			humanize.Comma(int64(r.Trees)),
			humanize.Comma(int64(r.Chars)),
			humanize.Comma(int64(r.Nodes)),
			r.Build.Round(time.Millisecond).String(),
			rate,
			humanize.Comma(int64(r.Queries)),
			humanize.Comma(int64(r.Hits)),
			avg,
			humanize.Bytes(r.Allocated),
			humanize.Comma(int64(r.Mismatches)),
		})
	}
	table.Render()
}
