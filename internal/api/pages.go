package api

import (
	"embed"
	"net/http"
	"os"
	"path"
	"strconv"

	"github.com/gabriel-vasile/mimetype"

	"photoarchive/pkg/logger"
)

//go:embed static/*.html
var builtinPages embed.FS

// Pages serves the index and not-found pages. Files are read on every request
// so they can be edited without a restart; the built-in copies are used when
// a file cannot be read.
type Pages struct {
	indexFile    string
	notFoundFile string
	logger       *logger.Logger
}

func NewPages(indexFile, notFoundFile string, log *logger.Logger) *Pages {
	if log == nil {
		log = logger.WithField("component", "pages")
	}
	return &Pages{
		indexFile:    indexFile,
		notFoundFile: notFoundFile,
		logger:       log,
	}
}

func (p *Pages) ServeIndex(w http.ResponseWriter, r *http.Request) {
	p.serve(w, p.indexFile, "index.html")
}

// ServeNotFound answers with status 200: clients land here through a
// redirect and the page itself is the expected result.
func (p *Pages) ServeNotFound(w http.ResponseWriter, r *http.Request) {
	p.serve(w, p.notFoundFile, "404.html")
}

func (p *Pages) serve(w http.ResponseWriter, file, builtin string) {
	body, err := p.read(file, builtin)
	if err != nil {
		p.logger.Error("failed to load page", "page", builtin, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mimetype.Detect(body).String())
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (p *Pages) read(file, builtin string) ([]byte, error) {
	if file != "" {
		body, err := os.ReadFile(file)
		if err == nil {
			return body, nil
		}
		p.logger.Warn("page file unavailable, serving built-in page", "file", file, "error", err)
	}
	return builtinPages.ReadFile(path.Join("static", builtin))
}
