package main

import (
	"os"

	"github.com/prpkit/prpflow/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
