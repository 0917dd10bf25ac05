package main

import (
	"os"

	"github.com/abhisek/reciteking/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
