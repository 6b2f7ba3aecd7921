// Package api exposes the archive streamer and the static pages over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"photoarchive/internal/archive"
	perrors "photoarchive/pkg/errors"
	"photoarchive/pkg/logger"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . ArchiveStreamer
type ArchiveStreamer interface {
	Stream(ctx context.Context, w http.ResponseWriter, req *archive.Request) (*archive.Result, error)
}

// Resolver maps an archive identifier to a directory on disk.
type Resolver interface {
	Resolve(id string) (*archive.Request, error)
}

const notFoundPath = "/404"

type Handler struct {
	resolver Resolver
	streamer ArchiveStreamer
	pages    *Pages
	logger   *logger.Logger
}

func NewHandler(resolver Resolver, streamer ArchiveStreamer, pages *Pages, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.WithField("component", "http")
	}
	return &Handler{
		resolver: resolver,
		streamer: streamer,
		pages:    pages,
		logger:   log,
	}
}

// Routes returns the request router.
//
//	GET /                 index page
//	GET /404              not-found page
//	GET /archive/         redirect to /404
//	GET /archive/{id}     redirect to /archive/{id}/
//	GET /archive/{id}/    archive download
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET "+notFoundPath, h.handleNotFound)
	mux.HandleFunc("GET /archive/{$}", h.handleArchive)
	mux.HandleFunc("GET /archive/{id}", h.handleArchiveRedirect)
	mux.HandleFunc("GET /archive/{id}/{$}", h.handleArchive)
	return withRequestLog(mux, h.logger)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.pages.ServeIndex(w, r)
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.pages.ServeNotFound(w, r)
}

func (h *Handler) handleArchiveRedirect(w http.ResponseWriter, r *http.Request) {
	target := "/archive/" + url.PathEscape(r.PathValue("id")) + "/"
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

func (h *Handler) handleArchive(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	req, err := h.resolver.Resolve(id)
	if err != nil {
		h.logger.Warn("archive does not exist or was removed", "id", id, "error", err)
		http.Redirect(w, r, notFoundPath, http.StatusFound)
		return
	}

	_, err = h.streamer.Stream(r.Context(), w, req)
	switch {
	case err == nil:
	case errors.Is(err, perrors.ErrTooManyStreams):
		w.Header().Set("Retry-After", "1")
		http.Error(w, "too many downloads in progress, retry later", http.StatusServiceUnavailable)
	case errors.Is(err, perrors.ErrArchiverStart):
		http.Error(w, "archive could not be created", http.StatusInternalServerError)
	case perrors.IsCancellation(err):
		// drop the connection so the client cannot mistake the truncated
		// archive for a complete one
		panic(http.ErrAbortHandler)
	default:
		h.logger.Error("archive stream failed", "id", id, "error", err)
	}
}

// statusRecorder remembers the status code for the request log. Unwrap keeps
// http.ResponseController able to reach the underlying flusher.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(p)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func withRequestLog(next http.Handler, log *logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		log.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"ua", r.UserAgent())
	})
}
