// Command fmalgo prints the routing table of the four-operator FM engine.
//
// Usage:
//
//	fmalgo [flags] [algorithm-number ...]
//
// Without arguments it lists all algorithms. With 1-based algorithm numbers
// it prints the full routing details for each.
//
// Examples:
//
//	fmalgo
//	fmalgo 1 8
//	fmalgo -matrix 5
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-fm/dsp/fm"
)

var showMatrix = flag.Bool("matrix", false, "print the 4x4 modulation matrix for each selected algorithm")

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		listAll()
		return
	}

	for _, arg := range flag.Args() {
		number, err := strconv.Atoi(arg)
		if err != nil || number < 1 || number > fm.NumAlgorithms {
			fmt.Fprintf(os.Stderr, "fmalgo: algorithm number must be 1..%d: %q\n", fm.NumAlgorithms, arg)
			os.Exit(2)
		}

		printAlgorithm(number)
	}
}

func listAll() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tRouting\tCarriers\tModulation edges")

	for i := range fm.Algorithms {
		a := &fm.Algorithms[i]
		fmt.Fprintf(w, "%d\t%s\t%v\t%s\n", i+1, a.Name, a.Carriers(), edgeList(a))
	}

	w.Flush()
}

func printAlgorithm(number int) {
	a := &fm.Algorithms[number-1]

	fmt.Printf("Algorithm %d: %s\n", number, a.Name)
	fmt.Printf("  carriers: %v\n", a.Carriers())
	fmt.Printf("  edges:    %s\n", edgeList(a))

	if *showMatrix {
		fmt.Println("  mod[src][dst]:")

		for src := 3; src >= 0; src-- {
			fmt.Printf("    op %d:", src+1)

			for dst := range 4 {
				mark := "."
				if a.Mod[src][dst] {
					mark = "x"
				}

				fmt.Printf(" %s", mark)
			}

			fmt.Println()
		}
	}
}

func edgeList(a *fm.Algorithm) string {
	edges := a.Edges()
	if len(edges) == 0 {
		return "(none)"
	}

	s := ""
	for i, e := range edges {
		if i > 0 {
			s += ", "
		}

		s += fmt.Sprintf("%d=>%d", e[0], e[1])
	}

	return s
}
