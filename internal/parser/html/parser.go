package html

import (
	"fmt"
	"slices"
	"sync"

	"bennypowers.dev/wcaglint/internal/parser/js"
	"bennypowers.dev/wcaglint/internal/token"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// Parser tokenizes HTML documents
type Parser struct {
	parser   *sitter.Parser
	rawQuery *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		rawQuery, qerr := sitter.NewQuery(htmlLang, `
			(script_element (raw_text) @script)
			(style_element (raw_text) @style)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile raw text query: %v", qerr))
		}

		return &Parser{
			parser:   parser,
			rawQuery: rawQuery,
		}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	if p.rawQuery != nil {
		p.rawQuery.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// rawRegion is the body of a <script> or <style> element
type rawRegion struct {
	start, end int
	script     bool
}

// Tokenize splits an HTML document into one RawMarkup token per line.
// Script bodies are tokenized as JavaScript so string literals inside them
// are checked like any other; style bodies become a single Other token.
func (p *Parser) Tokenize(source string) ([]token.Token, error) {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree for %d bytes of HTML", len(sourceBytes))
	}
	defer tree.Close()

	regions := p.rawRegions(tree.RootNode(), sourceBytes)
	lines := token.NewLineIndex(source)

	var tokens []token.Token
	pos := 0
	for _, r := range regions {
		tokens = appendMarkup(tokens, source, lines, pos, r.start)
		body := source[r.start:r.end]
		if !r.script {
			tokens = append(tokens, token.Token{Kind: token.Other, Text: body, Line: lines.Line(r.start)})
			pos = r.end
			continue
		}
		scriptTokens, err := tokenizeScript(body)
		if err != nil {
			return nil, err
		}
		shift := lines.Line(r.start) - 1
		for _, t := range scriptTokens {
			t.Line += shift
			tokens = append(tokens, t)
		}
		pos = r.end
	}
	return appendMarkup(tokens, source, lines, pos, len(source)), nil
}

func (p *Parser) rawRegions(root *sitter.Node, sourceBytes []byte) []rawRegion {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var regions []rawRegion
	matches := cursor.Matches(p.rawQuery, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			node := capture.Node
			if node.StartByte() == node.EndByte() {
				continue
			}
			regions = append(regions, rawRegion{
				start:  int(node.StartByte()),
				end:    int(node.EndByte()),
				script: p.rawQuery.CaptureNames()[capture.Index] == "script",
			})
		}
	}
	slices.SortFunc(regions, func(a, b rawRegion) int { return a.start - b.start })
	return regions
}

func tokenizeScript(body string) ([]token.Token, error) {
	jp := js.AcquireParser()
	defer js.ReleaseParser(jp)
	return jp.Tokenize(body)
}

func appendMarkup(tokens []token.Token, source string, lines *token.LineIndex, start, end int) []token.Token {
	if start >= end {
		return tokens
	}
	pos := start
	for _, line := range token.SplitLines(source[start:end]) {
		tokens = append(tokens, token.Token{Kind: token.RawMarkup, Text: line, Line: lines.Line(pos)})
		pos += len(line)
	}
	return tokens
}
