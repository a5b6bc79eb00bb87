package main

import (
	"os"

	"github.com/kievzenit/snuplc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
