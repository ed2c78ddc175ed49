// Package main provides the entry point for the resume-pilot CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_pilot",
	Short: "AI-powered resume and cover letter generator",
	Long:  "Resume Pilot tailors a LaTeX resume and cover letter to a job posting by extracting required skills with a fine-tuned model and generating the documents with Gemini.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
