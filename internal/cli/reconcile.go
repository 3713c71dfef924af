package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fiscalsync/conciliador-backend/internal/domain/reconcile"
	"github.com/fiscalsync/conciliador-backend/internal/infrastructure/config"
)

// RunReconcile reads one reconciliation request from a file (or stdin),
// runs the pipeline and writes the decision JSON to stdout.
func RunReconcile(cfg *config.Config, flags *ReconcileFlags) error {
	data, err := readInput(flags.InputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var req reconcile.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}

	pipeline := reconcile.NewPipeline(cfg.Reconciliation.Profile())
	result := pipeline.Run(req)

	var out []byte
	if flags.Pretty {
		out, err = json.MarshalIndent(result, "", "  ")
	} else {
		out, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	fmt.Println(string(out))

	if flags.Verbose {
		PrintSummary(result)
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("no input file given (use -input)")
	}
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
