package main

import (
	"fmt"
	"os"

	"github.com/arbor-sh/arbor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "arbor:", err)
		os.Exit(1)
	}
}
