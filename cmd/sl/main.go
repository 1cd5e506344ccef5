// Package main is the entry point for the staylist CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/kmalloy/staylist/internal/cli"
)

func main() {
	// Local .env overrides are optional
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
