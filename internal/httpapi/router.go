package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRouter sets up HTTP routes. limiter may be nil to disable rate
// limiting.
func SetupRouter(handler *Handler, limiter *Limiter) http.Handler {
	r := mux.NewRouter()

	// OPTIONS is routed so preflights from the capture page reach the CORS
	// middleware instead of mux's 405.
	r.HandleFunc("/upload", handler.Upload).Methods(http.MethodPost, http.MethodOptions)

	r.HandleFunc("/uploads", handler.ListUploads).Methods(http.MethodGet)
	r.HandleFunc("/uploads/{id}", handler.GetUpload).Methods(http.MethodGet)
	r.HandleFunc("/stats", handler.GetStats).Methods(http.MethodGet)
	r.HandleFunc("/version", handler.GetVersion).Methods(http.MethodGet)
	r.HandleFunc("/", handler.Index).Methods(http.MethodGet)

	r.Use(corsMiddleware)
	if limiter != nil {
		r.Use(RateLimitMiddleware(limiter))
	}

	return r
}
