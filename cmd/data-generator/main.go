// Package main is the entry point for data-generator.
package main

import (
	"fmt"
	"os"

	"github.com/Blackhood910/data-generator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
