package documents

import (
	"fmt"
	"slices"
	"sync"

	"bennypowers.dev/wcaglint/internal/wcag"
)

// Document represents a text document being managed by the language server
type Document struct {
	uri        string
	languageID string

	mu         sync.RWMutex
	content    string
	version    int
	violations []wcag.Violation
	checked    bool
}

// NewDocument creates a new document
func NewDocument(uri, languageID string, version int, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
	}
}

// URI returns the document's URI
func (d *Document) URI() string {
	return d.uri
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Version returns the document's version
func (d *Document) Version() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// Content returns the document's current content
func (d *Document) Content() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content
}

// Snapshot returns the content together with the version it belongs to
func (d *Document) Snapshot() (content string, version int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content, d.version
}

// SetContent replaces the document's content and version.
// Returns an error if the provided version is older than the current document version,
// preventing stale updates from being applied. Cached violations are dropped.
func (d *Document) SetContent(content string, version int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.content = content
	d.version = version
	d.violations = nil
	d.checked = false
	return nil
}

// SetViolations caches the result of checking the given version. Results for
// any other version are discarded and SetViolations returns false.
func (d *Document) SetViolations(version int, violations []wcag.Violation) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if version != d.version {
		return false
	}
	d.violations = slices.Clone(violations)
	d.checked = true
	return true
}

// Violations returns the cached violations of the current version and
// whether the current version has been checked
func (d *Document) Violations() ([]wcag.Violation, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.violations), d.checked
}

// Invalidate drops the cached violations so the next request checks again
func (d *Document) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.violations = nil
	d.checked = false
}
