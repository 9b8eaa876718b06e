// Package xmlutil provides a small streaming XML generator.
package xmlutil

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Attr is a single XML attribute. Attributes are emitted in the order
// they are supplied.
type Attr struct {
	Name  string
	Value string
}

// Generator writes an XML document to an io.Writer element by element.
// Errors are sticky: the first write failure is retained and every later
// call becomes a no-op, so callers can emit a whole document and check
// Err once at the end.
type Generator struct {
	w        io.Writer
	encoding string
	err      error
}

// New returns a Generator writing to w. The encoding name is only used
// for the XML declaration; transcoding the byte stream is the caller's
// concern.
func New(w io.Writer, encoding string) *Generator {
	if encoding == "" {
		encoding = "utf-8"
	}
	return &Generator{w: w, encoding: encoding}
}

// StartDocument writes the XML declaration.
func (g *Generator) StartDocument() {
	g.printf("<?xml version=\"1.0\" encoding=\"%s\"?>\n", g.encoding)
}

// StartElement writes an opening tag with the given attributes.
func (g *Generator) StartElement(name string, attrs []Attr) {
	g.printf("<%s", name)
	g.writeAttrs(attrs)
	g.printf(">")
}

// EndElement writes a closing tag.
func (g *Generator) EndElement(name string) {
	g.printf("</%s>", name)
}

// AddQuickElement writes a complete element in one call. An empty text
// produces a self-closing tag with no text node.
func (g *Generator) AddQuickElement(name, text string, attrs []Attr) {
	if text == "" {
		g.printf("<%s", name)
		g.writeAttrs(attrs)
		g.printf("/>")
		return
	}
	g.StartElement(name, attrs)
	g.text(text)
	g.EndElement(name)
}

// Err returns the first error encountered while writing, if any.
func (g *Generator) Err() error {
	return g.err
}

func (g *Generator) writeAttrs(attrs []Attr) {
	for _, a := range attrs {
		g.printf(" %s=\"%s\"", a.Name, escape(a.Value))
	}
}

func (g *Generator) text(s string) {
	if g.err != nil {
		return
	}
	_, g.err = io.WriteString(g.w, escape(s))
}

func (g *Generator) printf(format string, args ...any) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, format, args...)
}

func escape(s string) string {
	var sb strings.Builder
	if err := xml.EscapeText(&sb, []byte(s)); err != nil {
		return s
	}
	return sb.String()
}
