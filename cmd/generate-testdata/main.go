package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fiscalsync/conciliador-backend/internal/testdata"
)

func main() {
	var (
		outDir  = flag.String("out", "exemplos", "Output directory for the generated files")
		perKind = flag.Int("count", 20, "Cases per file")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "RNG seed (fixed seed = reproducible set)")
	)
	flag.Parse()

	gen := testdata.NewGenerator(*seed)
	created, err := gen.WriteFiles(*outDir, *perKind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, path := range created {
		fmt.Printf("created: %s\n", path)
	}
	fmt.Printf("\nDone. %d files written to %s\n", len(created), *outDir)
}
