// cmd/tools/corpus-check/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/schemesetu/scheme-engine/internal/corpus"
	"github.com/schemesetu/scheme-engine/internal/engine/criteria"
)

// corpus-check vets a scheme catalog CSV before it is deployed: decode
// outcome per row, link validity, and what the criteria parser extracts.
func main() {
	verbose := flag.Bool("v", false, "print per-scheme detail")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: corpus-check [-v] <catalog.csv>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("Error: cannot open %s: %v\n", path, err)
		os.Exit(1)
	}
	defer f.Close()

	decoded, err := corpus.DecodeCSV(f)
	if err != nil {
		fmt.Printf("Error: decode failed: %v\n", err)
		os.Exit(1)
	}

	validLinks := 0
	withAge := 0
	withIncome := 0
	withOccupations := 0
	emptyEligibility := 0

	for _, s := range decoded.Schemes {
		resolved, ok := corpus.NormalizeURL(s.ApplicationURL)
		if ok {
			validLinks++
		}

		crit := criteria.Parse(s.EligibilityText)
		if crit.MinAge != nil || crit.MaxAge != nil {
			withAge++
		}
		if crit.MaxIncome != nil {
			withIncome++
		}
		if len(crit.Occupations) > 0 {
			withOccupations++
		}
		if strings.TrimSpace(s.EligibilityText) == "" {
			emptyEligibility++
		}

		if *verbose {
			link := "no link"
			if ok {
				link = resolved
			}
			fmt.Printf("  %-12s %-50s %s\n", s.ID, truncate(s.Title, 50), link)
			for _, line := range criteria.Describe(crit) {
				fmt.Printf("               - %s\n", line)
			}
		}
	}

	fmt.Printf("Catalog: %s\n", path)
	fmt.Printf("  decoded rows:        %d\n", len(decoded.Schemes))
	fmt.Printf("  skipped rows:        %d\n", decoded.Skipped)
	fmt.Printf("  valid links:         %d\n", validLinks)
	fmt.Printf("  with age bounds:     %d\n", withAge)
	fmt.Printf("  with income ceiling: %d\n", withIncome)
	fmt.Printf("  with occupations:    %d\n", withOccupations)
	fmt.Printf("  empty eligibility:   %d\n", emptyEligibility)

	if len(decoded.Schemes) == 0 {
		fmt.Println("Error: no decodable rows in catalog")
		os.Exit(1)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
