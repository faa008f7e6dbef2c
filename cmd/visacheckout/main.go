package main

import (
	"fmt"
	"os"

	"visa-checkout/internal/cli"
)

// ENTRY POINT

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
