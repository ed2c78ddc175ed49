package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jaswanthpalla/resume-pilot/internal/config"
	"github.com/jaswanthpalla/resume-pilot/internal/llm"
	"github.com/jaswanthpalla/resume-pilot/internal/profile"
	"github.com/jaswanthpalla/resume-pilot/internal/server"
	"github.com/jaswanthpalla/resume-pilot/internal/skills"
)

var (
	servePort       int
	serveConfigPath string
	serveProfile    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for generating resumes and cover letters.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", config.DefaultPath, "Path to config.yaml")
	serveCmd.Flags().StringVar(&serveProfile, "profile", profile.DefaultPath, "Path to the stored user profile")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	generator, err := llm.NewGeminiClient(context.Background(), llm.DefaultConfig().WithModel(cfg.Gemini.Model), cfg.Gemini.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create generation client: %w", err)
	}
	defer generator.Close()

	srv, err := server.New(server.Config{
		Port:        servePort,
		ProfilePath: serveProfile,
	}, *cfg, newExtractor(cfg), generator)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// newExtractor builds the extraction-service client with the configured
// timeout and retry policy.
func newExtractor(cfg *config.Config) skills.Extractor {
	client := skills.NewClient(cfg.Extractor.BaseURL, &http.Client{
		Timeout: cfg.Extractor.Timeout,
	})
	return skills.NewRetryExtractor(client, cfg.Extractor.MaxRetries, cfg.Extractor.RetryBaseDelay)
}
