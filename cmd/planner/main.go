package main

import (
	"os"

	"github.com/totohpy/pa-ai-auditor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
