package gospdx

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// DefaultExtensions are the file extensions recognized as SPDX documents.
// Compound names such as ".spdx.json" match on their last extension.
var DefaultExtensions = []string{".rdf", ".xml", ".json", ".yaml", ".yml", ".spdx", ".tv"}

// Source enumerates SPDX documents and opens them for reading.
//
// Paths returned by ListFiles are opaque to callers except for their
// extension, which LoadAll uses to pick a reader.
type Source interface {
	ListFiles() ([]string, error)
	Open(path string) (io.ReadCloser, error)
}

// SourceOption configures a directory or filesystem source.
type SourceOption func(*extensionFilter)

// WithExtensions replaces the extensions a source accepts. Matching is
// case-insensitive.
func WithExtensions(exts ...string) SourceOption {
	return func(f *extensionFilter) {
		*f = newExtensionFilter(exts)
	}
}

// extensionFilter is the set of lower-cased extensions a source accepts.
type extensionFilter map[string]struct{}

func newExtensionFilter(exts []string) extensionFilter {
	f := make(extensionFilter, len(exts))
	for _, ext := range exts {
		f[strings.ToLower(ext)] = struct{}{}
	}
	return f
}

func buildFilter(opts []SourceOption) extensionFilter {
	f := newExtensionFilter(DefaultExtensions)
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func (f extensionFilter) accepts(name string) bool {
	_, ok := f[strings.ToLower(filepath.Ext(name))]
	return ok
}

// collect walks fsys and returns the slash-separated paths of accepted
// regular files. Unreadable subdirectories are skipped.
func (f extensionFilter) collect(fsys fs.FS) ([]string, error) {
	var found []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		switch {
		case err != nil && d != nil && d.IsDir():
			return fs.SkipDir
		case err != nil, d.IsDir():
			return nil
		}
		if f.accepts(p) {
			found = append(found, p)
		}
		return nil
	})
	return found, err
}

type diskOpener struct{}

func (diskOpener) Open(path string) (io.ReadCloser, error) { return os.Open(path) }

// File returns a Source over explicit document paths. No extension
// filtering happens here; an unrecognized format surfaces as
// ErrUnknownFormat when the document is loaded.
func File(paths ...string) Source {
	return &fileSource{paths: slices.Clone(paths)}
}

type fileSource struct {
	diskOpener
	paths []string
}

func (s *fileSource) ListFiles() ([]string, error) {
	for _, p := range s.paths {
		if _, err := os.Stat(p); err != nil {
			return nil, err
		}
	}
	return slices.Clone(s.paths), nil
}

// Dir returns a Source over the documents directly inside dir. Nested
// directories are ignored; use DirTree to descend.
func Dir(dir string, opts ...SourceOption) (Source, error) {
	if err := requireDir(dir); err != nil {
		return nil, err
	}
	return &dirSource{dir: dir, filter: buildFilter(opts)}, nil
}

// MustDir is like Dir but panics on error.
func MustDir(dir string, opts ...SourceOption) Source {
	return must(Dir(dir, opts...))
}

type dirSource struct {
	diskOpener
	dir    string
	filter extensionFilter
}

func (s *dirSource) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && s.filter.accepts(e.Name()) {
			files = append(files, filepath.Join(s.dir, e.Name()))
		}
	}
	return files, nil
}

// DirTree returns a Source over every document below root. The tree is
// scanned once, when DirTree is called.
func DirTree(root string, opts ...SourceOption) (Source, error) {
	if err := requireDir(root); err != nil {
		return nil, err
	}
	rel, err := buildFilter(opts).collect(os.DirFS(root))
	if err != nil {
		return nil, err
	}
	files := make([]string, len(rel))
	for i, p := range rel {
		files[i] = filepath.Join(root, filepath.FromSlash(p))
	}
	return &treeSource{files: files}, nil
}

// MustDirTree is like DirTree but panics on error.
func MustDirTree(root string, opts ...SourceOption) Source {
	return must(DirTree(root, opts...))
}

type treeSource struct {
	diskOpener
	files []string
}

func (s *treeSource) ListFiles() ([]string, error) {
	return slices.Clone(s.files), nil
}

// FS returns a Source backed by fsys, typically an embed.FS holding
// bundled SBOMs. Listed paths take the form "name:path/in/fsys". The
// filesystem is scanned on the first ListFiles call.
func FS(name string, fsys fs.FS, opts ...SourceOption) Source {
	return &fsSource{prefix: name + ":", fsys: fsys, filter: buildFilter(opts)}
}

type fsSource struct {
	prefix string
	fsys   fs.FS
	filter extensionFilter

	scan  sync.Once
	files []string
	err   error
}

func (s *fsSource) ListFiles() ([]string, error) {
	s.scan.Do(func() {
		s.files, s.err = s.filter.collect(s.fsys)
	})
	if s.err != nil {
		return nil, s.err
	}
	out := make([]string, len(s.files))
	for i, p := range s.files {
		out[i] = s.prefix + p
	}
	return out, nil
}

func (s *fsSource) Open(path string) (io.ReadCloser, error) {
	inner, ok := strings.CutPrefix(path, s.prefix)
	if !ok {
		return nil, notExist(path)
	}
	return s.fsys.Open(inner)
}

// Multi joins several sources. ListFiles concatenates their listings in
// order, and Open routes a path to the first source that listed it.
func Multi(sources ...Source) Source {
	return &multiSource{sources: sources}
}

type multiSource struct {
	sources []Source
}

func (s *multiSource) ListFiles() ([]string, error) {
	var all []string
	for _, src := range s.sources {
		files, err := src.ListFiles()
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}
	return all, nil
}

func (s *multiSource) Open(path string) (io.ReadCloser, error) {
	for _, src := range s.sources {
		files, err := src.ListFiles()
		if err != nil {
			return nil, err
		}
		if slices.Contains(files, path) {
			return src.Open(path)
		}
	}
	return nil, notExist(path)
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrInvalid}
	}
	return nil
}

func notExist(path string) error {
	return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
}

func must(src Source, err error) Source {
	if err != nil {
		panic(err)
	}
	return src
}
