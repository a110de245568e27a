// Package input reads the Python sources a run should analyze.
package input

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"

	"github.com/chris-regnier/namecheck/internal/astcheck"
)

type Artifact struct {
	Path    string
	Content string
}

// Handler reads Python files, honouring exclude globs.
type Handler struct {
	exclude []glob.Glob
}

// NewHandler compiles the exclude patterns. Patterns use '/' as separator;
// '**' crosses directories and '*' does not.
func NewHandler(exclude ...string) (*Handler, error) {
	h := &Handler{}
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		h.exclude = append(h.exclude, g)
	}
	return h, nil
}

// Excluded reports whether path matches any exclude pattern. Relative paths
// are also matched with a leading '/', so "**/migrations/**" covers a
// top-level migrations directory.
func (h *Handler) Excluded(path string) bool {
	p := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "./")
	rooted := p
	if !strings.HasPrefix(p, "/") {
		rooted = "/" + p
	}
	for _, g := range h.exclude {
		if g.Match(p) || g.Match(rooted) {
			return true
		}
	}
	return false
}

// Read resolves each path to a file or directory and returns the Python
// artifacts found, sorted by path with duplicates removed.
func (h *Handler) Read(paths []string) ([]Artifact, error) {
	var artifacts []Artifact
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := h.ReadDirectory(p)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, found...)
	}

	found, err := h.ReadFiles(files)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, found...)

	sort.SliceStable(artifacts, func(i, j int) bool { return artifacts[i].Path < artifacts[j].Path })
	out := artifacts[:0]
	for _, a := range artifacts {
		if len(out) > 0 && a.Path == out[len(out)-1].Path {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (h *Handler) ReadFiles(paths []string) ([]Artifact, error) {
	var artifacts []Artifact
	for _, p := range paths {
		if _, _, ok := astcheck.Detect(p); !ok {
			slog.Info("skipping non-Python file", "path", p)
			continue
		}
		if h.Excluded(p) {
			slog.Debug("skipping excluded file", "path", p)
			continue
		}
		art, ok, err := readArtifact(p)
		if err != nil {
			return nil, err
		}
		if ok {
			artifacts = append(artifacts, art)
		}
	}
	return artifacts, nil
}

func (h *Handler) ReadDirectory(dir string) ([]Artifact, error) {
	var artifacts []Artifact
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && (strings.HasPrefix(d.Name(), ".") || h.Excluded(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, _, ok := astcheck.Detect(path); !ok || h.Excluded(path) {
			return nil
		}
		art, ok, err := readArtifact(path)
		if err != nil {
			return err
		}
		if ok {
			artifacts = append(artifacts, art)
		}
		return nil
	})
	return artifacts, err
}

func readArtifact(path string) (Artifact, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, false, err
	}
	if !utf8.Valid(data) {
		slog.Warn("skipping file with invalid UTF-8", "path", path)
		return Artifact{}, false, nil
	}
	return Artifact{Path: path, Content: string(data)}, true, nil
}
