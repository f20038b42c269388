package fbx

import (
	"fmt"
	"strconv"
)

// The ASCII form has no framing: nodes are "Name: attr, attr { children }"
// lines with ;-comments. Attribute values are quoted strings, numbers, bare
// words (Y, T, W...) and *N array-length markers.

const asciiMaxDepth = 256

type asciiTokenKind int

const (
	tokEOF asciiTokenKind = iota
	tokNodeName
	tokOpenBrace
	tokCloseBrace
	tokComma
	tokString
	tokInt
	tokFloat
	tokWord
	tokArrayLen
)

type asciiToken struct {
	kind asciiTokenKind
	s    string
	i    int64
	f    float64
	line int
}

func parseASCII(data []byte) (*Document, error) {
	lexer := &asciiLexer{data: data, line: 1}
	tokens, err := lexer.run()
	if err != nil {
		return nil, fmt.Errorf("ascii fbx: %w", err)
	}

	parser := &asciiParser{tokens: tokens}
	roots, err := parser.parseNodes(0)
	if err != nil {
		return nil, fmt.Errorf("ascii fbx: %w", err)
	}
	if parser.peek().kind != tokEOF {
		return nil, fmt.Errorf("ascii fbx: unexpected %q at line %d", parser.peek().s, parser.peek().line)
	}

	doc := &Document{Format: FormatASCII, Roots: roots}
	doc.Version = asciiVersion(doc)
	return doc, nil
}

// asciiVersion pulls the declared version out of the header, when present.
func asciiVersion(doc *Document) int {
	header := doc.Node("FBXHeaderExtension")
	if header == nil {
		return 0
	}
	v := header.Child("FBXVersion")
	if v == nil || len(v.Attributes) == 0 {
		return 0
	}
	if n, ok := v.Attributes[0].Int32(); ok {
		return int(n)
	}
	if n, ok := v.Attributes[0].Int64(); ok {
		return int(n)
	}
	return 0
}

type asciiLexer struct {
	data []byte
	off  int
	line int
}

func (l *asciiLexer) run() ([]asciiToken, error) {
	var tokens []asciiToken
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.kind == tokEOF {
			return tokens, nil
		}
	}
}

func (l *asciiLexer) next() (asciiToken, error) {
	l.skipSpaceAndComments()
	if l.off >= len(l.data) {
		return asciiToken{kind: tokEOF, line: l.line}, nil
	}

	c := l.data[l.off]
	switch {
	case c == '{':
		l.off++
		return asciiToken{kind: tokOpenBrace, s: "{", line: l.line}, nil
	case c == '}':
		l.off++
		return asciiToken{kind: tokCloseBrace, s: "}", line: l.line}, nil
	case c == ',':
		l.off++
		return asciiToken{kind: tokComma, s: ",", line: l.line}, nil
	case c == '"':
		return l.lexString()
	case c == '*':
		l.off++
		tok, err := l.lexNumber()
		if err != nil {
			return asciiToken{}, err
		}
		if tok.kind != tokInt {
			return asciiToken{}, fmt.Errorf("line %d: malformed array length", l.line)
		}
		tok.kind = tokArrayLen
		return tok, nil
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return l.lexNumber()
	case isIdentByte(c):
		return l.lexIdent()
	}
	return asciiToken{}, fmt.Errorf("line %d: unexpected byte %q", l.line, c)
}

func (l *asciiLexer) skipSpaceAndComments() {
	for l.off < len(l.data) {
		c := l.data[l.off]
		switch {
		case c == '\n':
			l.line++
			l.off++
		case c == ' ' || c == '\t' || c == '\r':
			l.off++
		case c == ';':
			for l.off < len(l.data) && l.data[l.off] != '\n' {
				l.off++
			}
		default:
			return
		}
	}
}

func (l *asciiLexer) lexString() (asciiToken, error) {
	start := l.line
	l.off++ // opening quote
	begin := l.off
	for l.off < len(l.data) {
		if l.data[l.off] == '"' {
			s := string(l.data[begin:l.off])
			l.off++
			return asciiToken{kind: tokString, s: s, line: start}, nil
		}
		if l.data[l.off] == '\n' {
			l.line++
		}
		l.off++
	}
	return asciiToken{}, fmt.Errorf("line %d: unterminated string", start)
}

func (l *asciiLexer) lexNumber() (asciiToken, error) {
	begin := l.off
	isFloat := false
	for l.off < len(l.data) {
		c := l.data[l.off]
		if c == '.' || c == 'e' || c == 'E' {
			isFloat = true
		} else if c != '-' && c != '+' && (c < '0' || c > '9') {
			break
		}
		l.off++
	}
	text := string(l.data[begin:l.off])
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return asciiToken{}, fmt.Errorf("line %d: malformed number %q", l.line, text)
		}
		return asciiToken{kind: tokFloat, s: text, f: f, line: l.line}, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return asciiToken{}, fmt.Errorf("line %d: malformed number %q", l.line, text)
	}
	return asciiToken{kind: tokInt, s: text, i: i, line: l.line}, nil
}

// lexIdent reads a word. A word immediately followed by a colon is a node
// name; anything else is a bare attribute value like the Y/T/W flags.
func (l *asciiLexer) lexIdent() (asciiToken, error) {
	begin := l.off
	for l.off < len(l.data) && isIdentByte(l.data[l.off]) {
		l.off++
	}
	word := string(l.data[begin:l.off])
	if l.off < len(l.data) && l.data[l.off] == ':' {
		l.off++
		return asciiToken{kind: tokNodeName, s: word, line: l.line}, nil
	}
	return asciiToken{kind: tokWord, s: word, line: l.line}, nil
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '|' ||
		(c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

type asciiParser struct {
	tokens []asciiToken
	pos    int
}

func (p *asciiParser) peek() asciiToken {
	return p.tokens[p.pos]
}

func (p *asciiParser) advance() asciiToken {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

// parseNodes reads sibling nodes until a closing brace or end of input.
func (p *asciiParser) parseNodes(depth int) ([]*Node, error) {
	if depth > asciiMaxDepth {
		return nil, fmt.Errorf("nesting deeper than %d levels", asciiMaxDepth)
	}
	var nodes []*Node
	for {
		switch p.peek().kind {
		case tokEOF, tokCloseBrace:
			return nodes, nil
		case tokNodeName:
			node, err := p.parseNode(depth)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		default:
			tok := p.peek()
			return nil, fmt.Errorf("line %d: expected node name, got %q", tok.line, tok.s)
		}
	}
}

func (p *asciiParser) parseNode(depth int) (*Node, error) {
	name := p.advance()
	node := &Node{Name: name.s}

	// Attribute list: values separated by commas, ending at a brace, a
	// sibling node name, or end of input.
	for {
		attr, ok := p.parseAttribute()
		if !ok {
			break
		}
		node.Attributes = append(node.Attributes, attr)
		if p.peek().kind != tokComma {
			break
		}
		p.advance()
	}

	if p.peek().kind == tokOpenBrace {
		p.advance()
		children, err := p.parseNodes(depth + 1)
		if err != nil {
			return nil, err
		}
		node.Children = children
		if tok := p.advance(); tok.kind != tokCloseBrace {
			return nil, fmt.Errorf("line %d: unclosed node %q", name.line, node.Name)
		}
	}
	return node, nil
}

func (p *asciiParser) parseAttribute() (Attribute, bool) {
	tok := p.peek()
	switch tok.kind {
	case tokString:
		p.advance()
		return StringAttr(tok.s), true
	case tokWord:
		p.advance()
		return StringAttr(tok.s), true
	case tokInt:
		p.advance()
		// The text form does not carry integer widths. Values in int32
		// range take the int32 tag, matching what the SDK writes for
		// scalar int properties; wider values take int64.
		if tok.i >= -2147483648 && tok.i <= 2147483647 {
			return Int32Attr(int32(tok.i)), true
		}
		return Int64Attr(tok.i), true
	case tokFloat:
		p.advance()
		return Float64Attr(tok.f), true
	case tokArrayLen:
		p.advance()
		return Int64Attr(tok.i), true
	}
	return Attribute{}, false
}
