package cli

import "flag"

// ReconcileFlags are the flags for the one-shot reconcile command.
type ReconcileFlags struct {
	InputPath  string
	ConfigPath string
	Pretty     bool
	Verbose    bool
}

// ParseReconcileFlags parses command line flags for the reconcile command.
func ParseReconcileFlags() *ReconcileFlags {
	flags := &ReconcileFlags{}
	flag.StringVar(&flags.InputPath, "input", "", "Path to a reconciliation request JSON file (- for stdin)")
	flag.StringVar(&flags.ConfigPath, "config", "", "Path to a config file (optional)")
	flag.BoolVar(&flags.Pretty, "pretty", false, "Indent the JSON output")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port    int
	Verbose bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (overrides config)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}
