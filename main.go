package main

import (
	"os"

	"github.com/fleetflow/contract-lifecycle/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
