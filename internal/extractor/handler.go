package extractor

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// ExtractResponse is the success envelope for GET /extract.
type ExtractResponse struct {
	Success  bool   `json:"success"`
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`
}

// HealthResponse is the envelope for GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// Handler exposes the extraction service over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates an HTTP handler for the service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Router returns the HTTP mux for the extraction service.
func (h *Handler) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /extract", h.handleExtract)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /{$}", h.handleHome)
	return mux
}

// handleExtract serves GET /extract?job_title&company&job_description.
func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	jobTitle := query.Get("job_title")
	company := query.Get("company")
	jobDescription := query.Get("job_description")

	result, err := h.service.Extract(r.Context(), jobTitle, company, jobDescription)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, ExtractResponse{
		Success:  true,
		Prompt:   result.Prompt,
		Response: result.Response,
		JobTitle: result.JobTitle,
		Company:  result.Company,
	})
}

// handleHealth serves GET /health.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.jsonResponse(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		ModelLoaded: h.service.Ready(),
	})
}

// handleHome serves GET / with a usage banner.
func (h *Handler) handleHome(w http.ResponseWriter, _ *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "Job Information Extractor API",
	})
}

// errorResponse maps service errors onto the HTTP contract.
func (h *Handler) errorResponse(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	var notReadyErr *NotReadyError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &notReadyErr):
		status = http.StatusServiceUnavailable
	default:
		log.Printf("Error during extraction: %v", err)
	}

	h.jsonResponse(w, status, map[string]string{"error": err.Error()})
}

// jsonResponse writes a JSON response.
func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
