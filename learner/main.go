package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/lac-hong-legacy/lecture_api/learner/commands"
)

func main() {
	// .env is optional for the CLI
	_ = godotenv.Load()

	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
