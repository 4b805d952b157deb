package main

import (
	"os"

	"github.com/pin1yin1/pin1c/cmd/pin1c/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
