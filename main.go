package main

import (
	"os"

	"github.com/hyuniciel/inkwell/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
