package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tagfiler/tagfiler/cmd/tagfiler/commands"
)

func main() {
	// A .env file is optional; environment takes precedence either way.
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
