// Package main provides the entry point for the essay assistant HTTP API
// server and CLI tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "essay_agent",
	Short: "MBA Essay Assistant API Server",
	Long:  "Essay Assistant analyzes MBA application essays against school guidelines and retrieved exemplar essays, producing iteratively refined content suggestions, language edits, and general feedback via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
