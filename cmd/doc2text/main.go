package main

import (
	"fmt"
	"os"

	"github.com/scandocs/doc2text/cmd/doc2text/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
