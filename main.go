package main

import (
	"os"

	"github.com/kerguelen/boatgrid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
