package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaswanthpalla/resume-pilot/internal/extractor"
)

var (
	extractorPort    int
	extractorBaseURL string
	extractorModel   string
)

var extractorCmd = &cobra.Command{
	Use:   "extractor",
	Short: "Start the skill-extraction HTTP service",
	Long: `Serves GET /extract and GET /health, backed by the fine-tuned
extraction model behind an OpenAI-compatible completion endpoint.
The service answers 503 until the model backend responds to a probe.`,
	RunE: runExtractor,
}

func init() {
	extractorCmd.Flags().IntVar(&extractorPort, "port", 5000, "Port to listen on")
	extractorCmd.Flags().StringVar(&extractorBaseURL, "base-url", "", "Model backend base URL (defaults to OPENAI_BASE_URL)")
	extractorCmd.Flags().StringVar(&extractorModel, "model", "", "Model name to request (defaults to EXTRACTOR_MODEL)")
	rootCmd.AddCommand(extractorCmd)
}

func runExtractor(_ *cobra.Command, _ []string) error {
	baseURL := extractorBaseURL
	if baseURL == "" {
		baseURL = os.Getenv("OPENAI_BASE_URL")
	}
	if baseURL == "" {
		return fmt.Errorf("model backend URL is required (--base-url or OPENAI_BASE_URL)")
	}

	model := extractorModel
	if model == "" {
		model = os.Getenv("EXTRACTOR_MODEL")
	}

	backend := extractor.NewOpenAICompleter(baseURL, os.Getenv("OPENAI_API_KEY"), model, nil)
	service := extractor.NewService(backend)

	// Probe the backend until it answers; /health reports model_loaded
	// false and /extract returns 503 in the meantime.
	go func() {
		if err := service.WarmUp(context.Background(), 2*time.Second, 30); err != nil {
			log.Printf("Model backend never became ready: %v", err)
			return
		}
		log.Printf("Model backend ready")
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", extractorPort),
		Handler:      extractor.NewHandler(service).Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // extraction calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Extraction service starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Extraction service error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down extraction service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("extraction service shutdown failed: %w", err)
	}
	log.Println("Extraction service stopped")
	return nil
}
