package main

import (
	"os"

	"go-chi-remote-calc/cmd/calcctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
