package main

import (
	"os"

	"github.com/jojomanman/Pico-8-normal-map/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
