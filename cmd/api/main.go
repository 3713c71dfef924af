package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/fiscalsync/conciliador-backend/internal/cli"
	"github.com/fiscalsync/conciliador-backend/internal/infrastructure/config"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	flags := cli.ParseServeFlags()
	cfg := config.LoadOrEnv()

	if err := cli.RunServe(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
