package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/wcaglint/internal/parser/html"
	"bennypowers.dev/wcaglint/internal/parser/js"
	"bennypowers.dev/wcaglint/internal/parser/php"
	"bennypowers.dev/wcaglint/internal/token"
	"bennypowers.dev/wcaglint/internal/wcag"
)

// ErrUnsupportedLanguage is returned for documents no tokenizer handles
var ErrUnsupportedLanguage = errors.New("unsupported language")

// languages maps language IDs to the tokenizer they use.
// "html" → HTML tokenizer, "js" → JS tokenizer, "php" → PHP tokenizer.
var languages = map[string]string{
	"html":            "html",
	"php":             "php",
	"javascript":      "js",
	"javascriptreact": "js",
	"typescript":      "js",
	"typescriptreact": "js",
}

var extensions = map[string]string{
	".html":  "html",
	".htm":   "html",
	".js":    "javascript",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".jsx":   "javascriptreact",
	".ts":    "typescript",
	".mts":   "typescript",
	".cts":   "typescript",
	".tsx":   "typescriptreact",
	".php":   "php",
	".inc":   "php",
	".phtml": "php",
}

// IsSupportedLanguage returns true if a tokenizer exists for the language ID
func IsSupportedLanguage(languageID string) bool {
	_, ok := languages[languageID]
	return ok
}

// LanguageForPath guesses a language ID from a file name's extension.
// It returns "" for unknown extensions.
func LanguageForPath(path string) string {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Tokenize splits content into tokens with the tokenizer for languageID
func Tokenize(content, languageID string) ([]token.Token, error) {
	switch languages[languageID] {
	case "html":
		p := html.AcquireParser()
		defer html.ReleaseParser(p)
		return p.Tokenize(content)

	case "js":
		p := js.AcquireParser()
		defer js.ReleaseParser(p)
		return p.Tokenize(content)

	case "php":
		p := php.AcquireParser()
		defer php.ReleaseParser(p)
		return p.Tokenize(content)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, languageID)
	}
}

// PatternFunctions returns the names of the language's regular expression
// functions. HTML uses the JS list for its script bodies.
func PatternFunctions(languageID string) []string {
	switch languages[languageID] {
	case "php":
		return wcag.DefaultPatternFunctions
	case "html", "js":
		return js.PatternFunctions
	default:
		return nil
	}
}

// ClosePools releases every pooled tree-sitter parser
func ClosePools() {
	html.ClosePool()
	js.ClosePool()
	php.ClosePool()
}
