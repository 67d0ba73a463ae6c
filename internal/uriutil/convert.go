package uriutil

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// PathToURI converts a file system path to a file:// URI, percent-encoding
// each path segment. Relative paths are made absolute first.
func PathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	slashed := filepath.ToSlash(path)
	// C:/proj -> /C:/proj
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return (&url.URL{Scheme: "file", Path: slashed}).String()
}

// URIToPath converts a file:// URI to a file system path.
// A Windows drive path like file:///C:/proj becomes C:/proj (C:\proj on Windows).
func URIToPath(uri string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid URI %q: %w", uri, err)
	}
	if parsed.Scheme != "file" {
		return "", fmt.Errorf("not a file URI: %q", uri)
	}

	path := parsed.Path
	if parsed.Host != "" && parsed.Host != "localhost" {
		// UNC share
		path = "//" + parsed.Host + path
	}
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}
