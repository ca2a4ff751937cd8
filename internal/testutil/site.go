// Package testutil provides reusable fixtures for quill tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Site represents a temporary Hugo content directory for testing.
type Site struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewSite creates a new test site builder.
// Call Build() to create the actual directory.
func NewSite(t *testing.T) *Site {
	t.Helper()
	return &Site{
		t:     t,
		files: make(map[string]string),
	}
}

// WithPost adds a markdown file to the site.
// The path is relative to the site root.
func (s *Site) WithPost(path, content string) *Site {
	s.files[path] = content
	return s
}

// Build creates the site directory and all configured files.
func (s *Site) Build() *Site {
	s.t.Helper()

	s.Path = s.t.TempDir()
	for path, content := range s.files {
		s.WriteFile(path, content)
	}
	return s
}

// WriteFile writes a file to the site, creating directories as needed.
func (s *Site) WriteFile(relPath, content string) {
	s.t.Helper()
	fullPath := filepath.Join(s.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		s.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		s.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the site.
func (s *Site) ReadFile(relPath string) string {
	s.t.Helper()
	content, err := os.ReadFile(filepath.Join(s.Path, relPath))
	if err != nil {
		s.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(content)
}

// Mtime returns a file's modification time.
func (s *Site) Mtime(relPath string) time.Time {
	s.t.Helper()
	info, err := os.Stat(filepath.Join(s.Path, relPath))
	if err != nil {
		s.t.Fatalf("failed to stat file %s: %v", relPath, err)
	}
	return info.ModTime()
}

// Chtimes sets a file's access and modification times.
func (s *Site) Chtimes(relPath string, when time.Time) {
	s.t.Helper()
	if err := os.Chtimes(filepath.Join(s.Path, relPath), when, when); err != nil {
		s.t.Fatalf("failed to set times on %s: %v", relPath, err)
	}
}

// FileExists checks if a file exists in the site.
func (s *Site) FileExists(relPath string) bool {
	s.t.Helper()
	_, err := os.Stat(filepath.Join(s.Path, relPath))
	return err == nil
}

// AssertFileExists fails the test if the file does not exist.
func (s *Site) AssertFileExists(relPath string) {
	s.t.Helper()
	if !s.FileExists(relPath) {
		s.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (s *Site) AssertFileNotExists(relPath string) {
	s.t.Helper()
	if s.FileExists(relPath) {
		s.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (s *Site) AssertFileContains(relPath, substr string) {
	s.t.Helper()
	content := s.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		s.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains the substring.
func (s *Site) AssertFileNotContains(relPath, substr string) {
	s.t.Helper()
	content := s.ReadFile(relPath)
	if strings.Contains(content, substr) {
		s.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}

// YAMLPost returns a minimal YAML-frontmatter post.
func YAMLPost(title, date string, body string) string {
	return "---\ntitle: " + title + "\ndate: " + date + "\ntags:\n  - go\n---\n\n" + body + "\n"
}

// TOMLPost returns a minimal TOML-frontmatter post.
func TOMLPost(title, date string, body string) string {
	return "+++\ntitle = \"" + title + "\"\ndate = " + date + "\ntags = [\"go\"]\n+++\n\n" + body + "\n"
}

// JSONPost returns a minimal JSON-frontmatter post.
func JSONPost(title, date string, body string) string {
	return "{\n  \"title\": \"" + title + "\",\n  \"date\": \"" + date + "\",\n  \"tags\": [\n    \"go\"\n  ]\n}\n\n" + body + "\n"
}
