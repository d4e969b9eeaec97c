package main

import (
	"os"

	"github.com/cwbudde/go-pascal/cmd/pascal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
