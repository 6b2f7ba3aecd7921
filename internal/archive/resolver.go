package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	perrors "photoarchive/pkg/errors"
)

// Request is a validated archive request: the identifier taken from the URL
// and the directory it resolved to.
type Request struct {
	ID  string
	Dir string
}

// Filename is the name suggested to the client for the downloaded archive.
func (r *Request) Filename() string {
	return r.ID + ".zip"
}

// Resolver maps archive identifiers to directories below a root.
type Resolver struct {
	root string
}

// NewResolver returns a resolver rooted at root. The root does not need to
// exist yet; every lookup checks the filesystem again.
func NewResolver(root string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve archive root %s: %w", root, err)
	}
	return &Resolver{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute archive root.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve returns the request for id, or an error wrapping
// ErrArchiveNotFound when id is empty, escapes the root, or does not name an
// existing directory.
func (r *Resolver) Resolve(id string) (*Request, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: invalid identifier %q", perrors.ErrArchiveNotFound, id)
	}

	dir := filepath.Join(r.root, id)
	rel, err := filepath.Rel(r.root, dir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %q is outside the archive root", perrors.ErrArchiveNotFound, id)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", perrors.ErrArchiveNotFound, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", perrors.ErrArchiveNotFound, dir)
	}

	return &Request{ID: id, Dir: dir}, nil
}

// validID accepts a single path segment only.
func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, "/\\\x00")
}
