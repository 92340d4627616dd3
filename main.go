package main

import (
	"os"

	"github.com/jmlee-dev/reportdeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
