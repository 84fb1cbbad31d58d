// suffixtree-repl is an interactive shell for building a suffix tree over a
// corpus and querying it.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	goerrors "github.com/go-errors/errors"
	"github.com/phroun/suffixtree/internal/corpus"
	"github.com/phroun/suffixtree/internal/logging"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app          = kingpin.New("suffixtree-repl", "Interactive suffix tree shell.")
	alphabetFlag = app.Flag("alphabet", "Alphabet: printable, lowercase, five, set:<chars> or range:<char>:<size>").Short('a').Default("printable").String()
	fileFlag     = app.Flag("file", "Corpus to load at startup (.gz and .zst are decompressed)").Short('f').ExistingFile()
	implicitFlag = app.Flag("implicit", "Build implicit trees (no terminator phase)").Bool()
	cacheSize    = app.Flag("cache-size", "Number of query results to cache").Default("256").Int()
	debug        = app.Flag("debug", "Log build summaries").Bool()
	trace        = app.Flag("trace", "Log every extension (very verbose)").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	defer func() {
		if p := recover(); p != nil {
			if err, ok := p.(*goerrors.Error); ok {
				fmt.Fprintln(os.Stderr, err.ErrorStack())
				os.Exit(3)
			}
			panic(p)
		}
	}()

	fmt.Println("Suffix Tree REPL")
	fmt.Println("Type 'help' for available commands, 'quit' to exit")
	fmt.Println()

	repl, err := NewREPL(os.Stdout, *cacheSize, logging.NewStdLogger(false, *debug || *trace, *trace))
	if err != nil {
		fmt.Printf("Error starting REPL: %v\n", err)
		os.Exit(1)
	}
	alphabet, err := corpus.ParseAlphabet(*alphabetFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	repl.alphabet = alphabet
	repl.implicit = *implicitFlag
	if *fileFlag != "" {
		repl.cmdLoad([]string{*fileFlag})
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("suffixtree> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("\nGoodbye!")
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !repl.handleCommand(input) {
			break
		}
	}
}
