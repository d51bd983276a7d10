package main

import (
	"os"

	"github.com/cwbudde/mipc/cmd/mipc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
