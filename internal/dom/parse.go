package dom

import (
	"bytes"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// voidElements never take children, with or without a closing slash
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// impliedEnd lists, for an incoming start tag, the open elements it closes
// when one of them is the current element
var impliedEnd = map[string][]string{
	"li":       {"li"},
	"option":   {"option"},
	"optgroup": {"option", "optgroup"},
	"p":        {"p"},
	"dt":       {"dt", "dd"},
	"dd":       {"dt", "dd"},
	"tr":       {"tr", "td", "th"},
	"td":       {"td", "th"},
	"th":       {"td", "th"},
}

// closesOpen lists start tags that close an open element of the same name
// anywhere on the stack, not only at the top
var closesOpen = map[string]bool{
	"a":      true,
	"button": true,
	"form":   true,
}

// parsedAsMarkup are elements the tokenizer would read as raw text. Their
// content is parsed as ordinary markup; only script and style stay raw.
var parsedAsMarkup = map[string]bool{
	"iframe":    true,
	"noembed":   true,
	"noframes":  true,
	"noscript":  true,
	"plaintext": true,
	"textarea":  true,
	"title":     true,
	"xmp":       true,
}

type builder struct {
	doc   *Node
	stack []*Node
}

// Parse reads src leniently and always returns a tree, possibly empty.
// Unterminated elements are closed at end of input, stray end tags are
// ignored, and a tag cut off by the end of input is dropped.
func Parse(src string) *Node {
	b := &builder{doc: &Node{Type: DocumentNode, Line: 1}}
	b.stack = []*Node{b.doc}

	z := html.NewTokenizer(strings.NewReader(src))
	line := 1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or a read error; either way the tree built so far stands
			return b.doc
		}
		start := line
		line += bytes.Count(z.Raw(), []byte{'\n'})

		switch tt {
		case html.TextToken:
			b.top().appendChild(&Node{Type: TextNode, Data: string(z.Text()), Line: start})

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			el := &Node{Type: ElementNode, Tag: string(name), Line: start}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				// the first occurrence of a duplicated attribute wins
				if !el.HasAttr(string(key)) {
					el.Attrs = append(el.Attrs, Attribute{Key: string(key), Val: string(val)})
				}
			}
			if tt == html.StartTagToken && parsedAsMarkup[el.Tag] {
				z.NextIsNotRawText()
			}
			b.open(el, tt == html.SelfClosingTagToken)

		case html.EndTagToken:
			name, _ := z.TagName()
			b.close(string(name))
		}
	}
}

func (b *builder) top() *Node {
	return b.stack[len(b.stack)-1]
}

func (b *builder) open(el *Node, selfClosing bool) {
	if closesOpen[el.Tag] {
		b.close(el.Tag)
	}
	if closers := impliedEnd[el.Tag]; closers != nil {
		for len(b.stack) > 1 && slices.Contains(closers, b.top().Tag) {
			b.stack = b.stack[:len(b.stack)-1]
		}
	}

	b.top().appendChild(el)
	if !selfClosing && !voidElements[el.Tag] {
		b.stack = append(b.stack, el)
	}
}

// close pops the innermost open element named tag and everything above it.
// An end tag with no open element of that name is ignored.
func (b *builder) close(tag string) {
	for i := len(b.stack) - 1; i > 0; i-- {
		if b.stack[i].Tag == tag {
			b.stack = b.stack[:i]
			return
		}
	}
}
