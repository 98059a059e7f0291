package main

import (
	"os"

	"github.com/abhisek/spellquest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
