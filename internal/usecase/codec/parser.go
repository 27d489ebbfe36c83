package codec

import (
	"fmt"
	"strings"

	"sgf_studio/internal/domain/sgf"
	errs "sgf_studio/internal/errors"
)

// ParseError points at the part of the input that could not be read.
type ParseError struct {
	Message string
	From    int
	To      int
	Line    int
	Column  int
	Near    string
	cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s (near %q)", e.Line, e.Column, e.Message, e.Near)
}

func (e *ParseError) Unwrap() []error {
	if e.cause != nil {
		return []error{errs.ErrMalformedRecord, e.cause}
	}
	return []error{errs.ErrMalformedRecord}
}

// rawProperty is a property as written, before its meaning is looked at.
type rawProperty struct {
	ident  string
	values []string
	from   int
	to     int
}

// collection mirrors one parenthesised group: a straight run of nodes followed
// by the variations that branch off its last node.
type collection struct {
	nodes    [][]rawProperty
	children []collection
}

type parser struct {
	src string
	pos int
}

// Parse reads every game in text into a new tree, one root per top-level
// collection. Any error aborts the whole parse.
func Parse(text string) (*sgf.GameTree, error) {
	p := &parser{src: text}
	collections, err := p.file()
	if err != nil {
		return nil, err
	}
	tree := &sgf.GameTree{}
	for _, c := range collections {
		if err := ingest(tree, p, c, sgf.NoNode); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

func (p *parser) file() ([]collection, error) {
	var out []collection
	for {
		p.skipSpace()
		if p.eof() {
			return out, nil
		}
		if p.peek() != '(' {
			return nil, p.errorf(p.pos, p.pos+1, "expected '(' to start a game, got %q", p.peek())
		}
		c, err := p.collection()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
}

func (p *parser) collection() (collection, error) {
	open := p.pos
	p.pos++
	var c collection
	for {
		p.skipSpace()
		if p.eof() {
			return c, p.errorf(open, p.pos, "unbalanced '(': collection is never closed")
		}
		switch ch := p.peek(); ch {
		case ';':
			if len(c.children) > 0 {
				return c, p.errorf(p.pos, p.pos+1, "node after a variation")
			}
			node, err := p.node()
			if err != nil {
				return c, err
			}
			c.nodes = append(c.nodes, node)
		case '(':
			child, err := p.collection()
			if err != nil {
				return c, err
			}
			c.children = append(c.children, child)
		case ')':
			p.pos++
			return c, nil
		default:
			return c, p.errorf(p.pos, p.pos+1, "unexpected %q", ch)
		}
	}
}

func (p *parser) node() ([]rawProperty, error) {
	p.pos++ // ';'
	var props []rawProperty
	for {
		p.skipSpace()
		if p.eof() {
			return props, nil
		}
		ch := p.peek()
		if ch >= 'a' && ch <= 'z' {
			return nil, p.errorf(p.pos, p.pos+1, "property identifiers must be upper case")
		}
		if ch < 'A' || ch > 'Z' {
			return props, nil
		}
		prop, err := p.property()
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
	}
}

func (p *parser) property() (rawProperty, error) {
	start := p.pos
	for !p.eof() && p.peek() >= 'A' && p.peek() <= 'Z' {
		p.pos++
	}
	prop := rawProperty{ident: p.src[start:p.pos], from: start}
	for {
		p.skipSpace()
		if p.eof() || p.peek() != '[' {
			break
		}
		v, err := p.value()
		if err != nil {
			return prop, err
		}
		prop.values = append(prop.values, v)
	}
	prop.to = p.pos
	if len(prop.values) == 0 {
		return prop, p.errorf(start, p.pos, "property %s has no value", prop.ident)
	}
	return prop, nil
}

// value returns the text between the brackets with escapes left in place.
func (p *parser) value() (string, error) {
	open := p.pos
	p.pos++
	start := p.pos
	for !p.eof() {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case ']':
			v := p.src[start:p.pos]
			p.pos++
			return v, nil
		}
		p.pos++
	}
	p.pos = len(p.src)
	return "", p.errorf(open, p.pos, "unterminated value")
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) errorf(from, to int, format string, args ...any) *ParseError {
	return p.newError(from, to, nil, fmt.Sprintf(format, args...))
}

func (p *parser) newError(from, to int, cause error, msg string) *ParseError {
	if to > len(p.src) {
		to = len(p.src)
	}
	line := 1 + strings.Count(p.src[:from], "\n")
	column := from - strings.LastIndexByte(p.src[:from], '\n')
	near := p.src[from:to]
	if len(near) > 40 {
		near = near[:40] + "..."
	}
	return &ParseError{
		Message: msg,
		From:    from,
		To:      to,
		Line:    line,
		Column:  column,
		Near:    near,
		cause:   cause,
	}
}

// ingest flattens c into tree. Its nodes are chained under parent and each
// variation hangs off the last of them. With no parent the first node becomes
// a new root; a collection without nodes passes parent through unchanged.
func ingest(tree *sgf.GameTree, p *parser, c collection, parent sgf.NodeID) error {
	last := parent
	for _, raw := range c.nodes {
		props := make([]sgf.Property, 0, len(raw))
		for _, r := range raw {
			prop, err := sgf.DecodeProperty(r.ident, r.values)
			if err != nil {
				return p.newError(r.from, r.to, err, err.Error())
			}
			props = append(props, prop)
		}
		if last == sgf.NoNode {
			last = tree.AddRoot(props...)
		} else {
			last = tree.AddChild(last, props...)
		}
	}
	for _, child := range c.children {
		if err := ingest(tree, p, child, last); err != nil {
			return err
		}
	}
	return nil
}
