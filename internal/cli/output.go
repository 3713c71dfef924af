package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fiscalsync/conciliador-backend/internal/domain/reconcile"
)

// PrintSummary writes a human-readable decision summary to stderr so it
// never mixes with the JSON result on stdout.
func PrintSummary(result *reconcile.Result) {
	w := os.Stderr

	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "Status: %s | Confidence: %.2f | Review: %v\n",
		result.Details.Status,
		result.Confidence,
		result.NeedsHumanReview)

	if result.Details.LedgerEntryID != "" {
		fmt.Fprintf(w, "Ledger entry: %s\n", result.Details.LedgerEntryID)
	}
	if result.FailureReason != "" {
		fmt.Fprintf(w, "Reason: %s\n", result.FailureReason)
	}

	for _, d := range result.Details.Divergences {
		fmt.Fprintf(w, "  divergence [%s] %s: %s\n", d.Severity, d.Kind, d.Description)
	}
	for _, o := range result.Details.Observations {
		fmt.Fprintf(w, "  note: %s\n", o)
	}
	fmt.Fprintln(w, strings.Repeat("-", 60))
}
