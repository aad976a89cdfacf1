// Package content maps navigation slugs to documents in a content directory.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// DefaultExtensions are the document extensions recognised by default.
var DefaultExtensions = []string{".md", ".mdx", ".mdoc"}

// ErrContentDirNotFound indicates the content directory does not exist.
var ErrContentDirNotFound = errors.New("content directory not found")

// ErrDocumentNotFound is returned when no document exists for a slug.
var ErrDocumentNotFound = errors.New("document not found")

// Resolver looks up content documents in a file system rooted at the
// content directory. A slug resolves to "<slug><ext>" for the first
// configured extension that exists as a regular file.
type Resolver struct {
	fsys       fs.FS
	extensions []string
}

// NewResolver creates a Resolver over fsys. With no extensions,
// DefaultExtensions are used.
func NewResolver(fsys fs.FS, extensions ...string) *Resolver {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	exts := make([]string, len(extensions))
	for i, e := range extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[i] = strings.ToLower(e)
	}
	return &Resolver{fsys: fsys, extensions: exts}
}

// NewDirResolver creates a Resolver for the directory dir.
func NewDirResolver(dir string, extensions ...string) (*Resolver, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrContentDirNotFound, dir)
		}
		return nil, fmt.Errorf("stat content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrContentDirNotFound, dir)
	}
	return NewResolver(os.DirFS(dir), extensions...), nil
}

// Extensions returns the recognised document extensions.
func (r *Resolver) Extensions() []string { return r.extensions }

// Exists reports whether a document exists for slug.
func (r *Resolver) Exists(slug string) (bool, error) {
	_, ok, err := r.Path(slug)
	return ok, err
}

// Path returns the document path for slug relative to the content root.
func (r *Resolver) Path(slug string) (string, bool, error) {
	if !fs.ValidPath(slug) {
		return "", false, nil
	}
	for _, ext := range r.extensions {
		name := slug + ext
		info, err := fs.Stat(r.fsys, name)
		switch {
		case err == nil && !info.IsDir():
			return name, true, nil
		case err == nil, errors.Is(err, fs.ErrNotExist):
			continue
		default:
			return "", false, fmt.Errorf("stat %s: %w", name, err)
		}
	}
	return "", false, nil
}

// Read returns the raw contents of the document for slug.
func (r *Resolver) Read(slug string) ([]byte, error) {
	name, ok, err := r.Path(slug)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, slug)
	}
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Documents returns the slug of every document under the content root,
// sorted lexically.
func (r *Resolver) Documents() ([]string, error) {
	var slugs []string
	err := fs.WalkDir(r.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		ext := path.Ext(p)
		for _, want := range r.extensions {
			if ext == want {
				slugs = append(slugs, strings.TrimSuffix(p, path.Ext(p)))
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content: %w", err)
	}
	sort.Strings(slugs)
	return slugs, nil
}
