package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/fiscalsync/conciliador-backend/internal/cli"
	"github.com/fiscalsync/conciliador-backend/internal/infrastructure/config"
)

func main() {
	_ = godotenv.Load()

	flags := cli.ParseReconcileFlags()

	var cfg *config.Config
	if flags.ConfigPath != "" {
		cfg = config.LoadOrEnvWithPath(flags.ConfigPath)
	} else {
		cfg = config.LoadOrEnv()
	}

	if err := cli.RunReconcile(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
