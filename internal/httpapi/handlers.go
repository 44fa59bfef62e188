package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/worapolk/sensor-collect-server/internal/ingest"
	"github.com/worapolk/sensor-collect-server/internal/upload"
	"github.com/worapolk/sensor-collect-server/internal/version"
	"github.com/worapolk/sensor-collect-server/web"
)

// Handler handles HTTP requests
type Handler struct {
	writer  *ingest.Writer
	store   *upload.Store
	stats   *ingest.Stats
	maxBody int64
	now     func() time.Time // stubbed in tests
}

// NewHandler creates a new handler. maxBodyBytes caps the request body;
// capture sessions embed whole frames as base64, so the cap runs large.
func NewHandler(writer *ingest.Writer, store *upload.Store, stats *ingest.Stats, maxBodyBytes int64) *Handler {
	return &Handler{
		writer:  writer,
		store:   store,
		stats:   stats,
		maxBody: maxBodyBytes,
		now:     time.Now,
	}
}

// Upload handles POST /upload
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var payload map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
	}
	// An empty object is as useless as no body at all; the capture page never
	// sends one unless something went wrong on the phone.
	if len(payload) == 0 {
		writeError(w, http.StatusBadRequest, "no data received")
		return
	}

	result, err := h.writer.Save(payload, h.now())
	if err != nil {
		if errors.Is(err, ingest.ErrUnsafeName) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Upload failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rec := &upload.Record{
		Kind:         string(result.Kind),
		Scenario:     ingest.Field(payload, "scenario"),
		Path:         result.Path,
		FramesSaved:  result.FramesSaved,
		FramesFailed: result.FramesFailed,
		Bytes:        result.Bytes,
		ReceivedAt:   h.now(),
	}
	if result.Kind == ingest.KindSession {
		rec.Type = ingest.Field(payload, "type")
		rec.Motion = ingest.Field(payload, "motion")
	}
	id := h.store.Add(rec)

	resp := map[string]any{
		"status": "success",
		"id":     id,
	}
	switch result.Kind {
	case ingest.KindSession:
		resp["folder"] = result.Path
		resp["frames"] = result.FramesSaved
		log.Printf("Saved session %s (%d frames, %d failed)", result.Path, result.FramesSaved, result.FramesFailed)
	default:
		resp["filename"] = result.Path
		log.Printf("Saved %s", result.Path)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListUploads handles GET /uploads
func (h *Handler) ListUploads(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"uploads": h.store.List(),
	})
}

// GetUpload handles GET /uploads/{id}
func (h *Handler) GetUpload(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rec, err := h.store.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// GetStats handles GET /stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Snapshot())
}

// GetVersion handles GET /version
func (h *Handler) GetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, version.Info())
}

// Index handles GET / with the embedded capture page
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(web.IndexHTML)
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError writes the error envelope the capture client expects
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}
