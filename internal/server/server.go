// Package server provides the HTTP REST API for the resume generator.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jaswanthpalla/resume-pilot/internal/config"
	"github.com/jaswanthpalla/resume-pilot/internal/db"
	"github.com/jaswanthpalla/resume-pilot/internal/llm"
	"github.com/jaswanthpalla/resume-pilot/internal/profile"
	"github.com/jaswanthpalla/resume-pilot/internal/skills"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	cfg        config.Config
	extractor  skills.Extractor
	generator  llm.Client
	profiles   *profile.Store
	db         *db.DB
	runs       *runRegistry

	// busy enforces one generation at a time. A second request while a
	// run is in flight gets 409.
	busy *semaphore.Weighted
}

// Config holds server configuration
type Config struct {
	Port int
	// ProfilePath locates the stored user profile on disk.
	ProfilePath string
}

// New creates a new server instance. The extractor and generator are
// injected so the server never constructs its own network clients.
func New(srvCfg Config, appCfg config.Config, extractor skills.Extractor, generator llm.Client) (*Server, error) {
	if extractor == nil || generator == nil {
		return nil, fmt.Errorf("server requires an extractor and a generator")
	}

	s := &Server{
		cfg:       appCfg,
		extractor: extractor,
		generator: generator,
		profiles:  profile.NewStore(srvCfg.ProfilePath),
		runs:      newRunRegistry(),
		busy:      semaphore.NewWeighted(1),
	}

	// Persistence is optional. Without a database URL the server keeps
	// run state in memory only.
	if appCfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), appCfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = database
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", srvCfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for generation runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler builds the route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /generate/stream", s.handleGenerateStream)
	mux.HandleFunc("GET /runs/{id}", s.handleRunStatus)
	mux.HandleFunc("GET /runs/{id}/resume.tex", s.handleRunResume)
	mux.HandleFunc("GET /runs/{id}/cover_letter.txt", s.handleRunCoverLetter)
	mux.HandleFunc("GET /profile", s.handleGetProfile)
	mux.HandleFunc("PUT /profile", s.handlePutProfile)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withLogging(s.withCORS(mux))
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
