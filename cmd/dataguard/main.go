// Package main provides the CLI entry point for dataguard.
package main

import (
	"os"

	"github.com/stayflow-labs/dataguard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
