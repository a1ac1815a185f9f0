package main

import (
	"fmt"
	"os"

	"sonjit/cmd/sonjit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sonjit: %v\n", err)
		os.Exit(1)
	}
}
