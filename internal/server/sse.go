package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jaswanthpalla/resume-pilot/internal/pipeline"
)

// eventStream pushes the progress of one generation run to the client as
// Server-Sent Events. Three event types are emitted: "progress" carrying a
// pipeline.ProgressEvent, then exactly one of "complete" or "error".
type eventStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newEventStream(w http.ResponseWriter) (*eventStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &eventStream{w: w, flusher: flusher}, nil
}

// Progress emits one pipeline progress update.
func (s *eventStream) Progress(event pipeline.ProgressEvent) error {
	return s.write("progress", event)
}

// Fail terminates the stream with the run's failure message.
func (s *eventStream) Fail(message string) {
	s.write("error", map[string]string{"error": message}) //nolint:errcheck
}

// Complete terminates the stream, naming the finished run.
func (s *eventStream) Complete(runID uuid.UUID) {
	s.write("complete", map[string]string{ //nolint:errcheck
		"run_id": runID.String(),
		"status": "completed",
	})
}

func (s *eventStream) write(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
