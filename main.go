package main

import (
	"os"

	"github.com/saisha/letterly/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
