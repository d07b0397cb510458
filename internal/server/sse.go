package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/revops-assessment/internal/pipeline"
)

// SSE event names.
const (
	eventStep     = "step"
	eventError    = "error"
	eventComplete = "complete"
)

// SSEWriter writes Server-Sent Events. Each event carries an increasing id.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	nextID  int
}

// NewSSEWriter sets the event-stream headers on w.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.New("streaming not supported")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends one event with a JSON payload
func (s *SSEWriter) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	s.nextID++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.nextID, event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteStep forwards a pipeline progress event.
func (s *SSEWriter) WriteStep(event pipeline.ProgressEvent) error {
	return s.WriteEvent(eventStep, event)
}

// WriteError sends the terminal error event.
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent(eventError, map[string]any{"success": false, "error": message}) //nolint:errcheck
}

// WriteComplete sends the final event carrying the submission result.
func (s *SSEWriter) WriteComplete(submissionID string, result any) {
	s.WriteEvent(eventComplete, map[string]any{ //nolint:errcheck
		"submission_id": submissionID,
		"result":        result,
	})
}
