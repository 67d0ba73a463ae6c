package php

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/wcaglint/internal/token"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

// Parser tokenizes PHP templates: inline HTML, PHP code and everything in
// between
type Parser struct {
	parser *sitter.Parser
}

var phpLang = sitter.NewLanguage(tree_sitter_php.LanguagePHP())

// parserPool is a pool of reusable PHP parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(phpLang); err != nil {
			panic(fmt.Sprintf("failed to set PHP language: %v", err))
		}
		return &Parser{parser: parser}
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
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// Tokenize splits source into tokens covering every byte, in order.
// Inline HTML and heredoc bodies are emitted one line per token; quoted
// strings are single tokens that keep their quotes.
func (p *Parser) Tokenize(source string) ([]token.Token, error) {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree for %d bytes of PHP", len(sourceBytes))
	}
	defer tree.Close()

	e := &emitter{Stream: token.NewStream(source), src: source}
	e.walk(tree.RootNode())
	return e.Finish(), nil
}

type emitter struct {
	*token.Stream
	src string
}

func (e *emitter) walk(n *sitter.Node) {
	start, end := int(n.StartByte()), int(n.EndByte())
	if start == end || end <= e.Pos() {
		return
	}

	switch n.Kind() {
	case "text":
		e.EmitLines(token.RawMarkup, start, end)
		return
	case "string", "encapsed_string":
		e.Emit(token.StringLiteral, start, end)
		return
	case "heredoc", "nowdoc":
		e.heredoc(n)
		return
	case "name":
		e.Emit(token.Identifier, start, end)
		return
	case "variable_name", "comment":
		e.Emit(token.Other, start, end)
		return
	}

	if n.ChildCount() == 0 {
		kind := token.Other
		if n.Kind() == "(" {
			kind = token.OpenParen
		}
		e.Emit(kind, start, end)
		return
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		e.walk(n.Child(i))
	}
}

// heredoc emits the lines between the opening line and the closing
// identifier. The opener and the closer are left to the surrounding gaps.
func (e *emitter) heredoc(n *sitter.Node) {
	start, end := int(n.StartByte()), int(n.EndByte())
	nl := strings.IndexByte(e.src[start:end], '\n')
	if nl < 0 {
		e.Emit(token.Other, start, end)
		return
	}
	bodyStart := start + nl + 1
	bodyEnd := end
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if k := child.Kind(); (k == "heredoc_end" || k == "nowdoc_end") && int(child.StartByte()) >= bodyStart {
			bodyEnd = int(child.StartByte())
			break
		}
	}
	e.Gap(bodyStart)
	e.EmitLines(token.HeredocBlock, bodyStart, bodyEnd)
}
