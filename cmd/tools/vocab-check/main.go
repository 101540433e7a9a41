// cmd/tools/vocab-check/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/schemesetu/scheme-engine/pkg/vocabulary"
)

// vocab-check validates a vocabulary extension file and reports the merged
// table sizes, so a bad file fails here instead of at service boot.
func main() {
	verbose := flag.Bool("v", false, "print every tag with its term count")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: vocab-check [-v] <vocabulary.json>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	tables, err := vocabulary.Load(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	builtin := vocabulary.Default()
	fmt.Printf("Vocabulary: %s\n", path)
	fmt.Printf("  occupations:   %d (builtin %d)\n", len(tables.Occupations), len(builtin.Occupations))
	fmt.Printf("  sectors:       %d (builtin %d)\n", len(tables.Sectors), len(builtin.Sectors))
	fmt.Printf("  caste codes:   %d (builtin %d)\n", len(tables.CasteCodes), len(builtin.CasteCodes))
	fmt.Printf("  caste phrases: %d (builtin %d)\n", len(tables.CastePhrases), len(builtin.CastePhrases))

	if *verbose {
		fmt.Println("  occupation tags:")
		for _, e := range tables.Occupations {
			fmt.Printf("    %-20s %d terms\n", e.Tag, len(e.Terms))
		}
		fmt.Println("  sector tags:")
		for _, e := range tables.Sectors {
			fmt.Printf("    %-20s %d terms\n", e.Tag, len(e.Terms))
		}
	}

	fmt.Println("OK")
}
