package js

import (
	"fmt"
	"sync"

	"bennypowers.dev/wcaglint/internal/token"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// PatternFunctions are the JS callees whose first argument is a regular
// expression: String.prototype methods, RegExp methods and the constructor
var PatternFunctions = []string{
	"match",
	"matchAll",
	"replace",
	"replaceAll",
	"search",
	"split",
	"test",
	"exec",
	"RegExp",
}

// Parser tokenizes JavaScript, TypeScript and JSX sources
type Parser struct {
	parser *sitter.Parser
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// parserPool is a pool of reusable JS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
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
// String literals keep their quotes. Template strings and JSX elements are
// emitted one line per token; ${...} substitutions are tokenized as code.
func (p *Parser) Tokenize(source string) ([]token.Token, error) {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree for %d bytes of JS", len(sourceBytes))
	}
	defer tree.Close()

	e := &emitter{token.NewStream(source)}
	e.walk(tree.RootNode())
	return e.Finish(), nil
}

type emitter struct {
	*token.Stream
}

func (e *emitter) walk(n *sitter.Node) {
	start, end := int(n.StartByte()), int(n.EndByte())
	if start == end || end <= e.Pos() {
		return
	}

	switch n.Kind() {
	case "string":
		e.Emit(token.StringLiteral, start, end)
		return
	case "template_string":
		e.template(n)
		return
	case "jsx_element", "jsx_self_closing_element":
		e.EmitLines(token.RawMarkup, start, end)
		return
	case "regex", "comment":
		e.Emit(token.Other, start, end)
		return
	case "identifier", "property_identifier":
		e.Emit(token.Identifier, start, end)
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

// template emits the literal parts of a template string line by line and
// walks its substitutions as ordinary code
func (e *emitter) template(n *sitter.Node) {
	e.Gap(int(n.StartByte()))
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() != "template_substitution" {
			continue
		}
		e.EmitLines(token.HeredocBlock, e.Pos(), int(child.StartByte()))
		e.walk(child)
	}
	e.EmitLines(token.HeredocBlock, e.Pos(), int(n.EndByte()))
}
