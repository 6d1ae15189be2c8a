package main

import (
	"os"

	"github.com/msto63/geomc/cmd/geomc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
