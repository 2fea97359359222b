// Package xmlwriter builds a well-formed XML document one construct at a time: an optional
// declaration, an optional document type, then a tree of elements, attributes, text, comments and
// processing instructions. It is the write-side counterpart of [github.com/nussjustin/xmlstax]'s
// Reader, not a formatter: nothing is buffered beyond what String needs to produce its output, and
// every method either appends to the document or fails without mutating it.
package xmlwriter

import (
	"fmt"
	"strings"

	"github.com/nussjustin/xmlstax/internal/xmlchar"
)

type state uint8

const (
	stateEmpty state = iota
	stateDocumentStarted
	stateElementStarted
	stateInElement
	stateDocumentEnded
)

// Writer assembles an XML document. The zero value is not usable; create one with [New].
type Writer struct {
	state        state
	documentType string
	openElements []string
	current      string
	attrNames    []string
	b            strings.Builder
}

// New returns a Writer ready to build a new document.
func New() *Writer {
	return &Writer{}
}

// Reset discards everything written so far, returning the Writer to its initial state.
func (w *Writer) Reset() {
	w.state = stateEmpty
	w.documentType = ""
	w.openElements = w.openElements[:0]
	w.current = ""
	w.attrNames = w.attrNames[:0]
	w.b.Reset()
}

// String returns the document built so far, including an unclosed root element's partial start
// tag. Callers that need a guarantee of well-formedness should check [Writer.Done] first.
func (w *Writer) String() string {
	return w.b.String()
}

// Done reports whether the document is complete: the root element has been started and closed, and
// nothing but [Writer.AddComment] or [Writer.AddProcessingInstruction] may legally follow.
func (w *Writer) Done() bool {
	return w.state == stateDocumentEnded
}

// SetXMLDeclaration writes the "<?xml version="1.0" encoding="UTF-8"?>" declaration. It must be the
// very first thing written, if written at all.
func (w *Writer) SetXMLDeclaration() error {
	if w.state != stateEmpty {
		return fmt.Errorf("xmlwriter: XML declaration must be the first thing written")
	}

	w.b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	w.state = stateDocumentStarted
	return nil
}

// SetDocumentType writes a "<!DOCTYPE name>" declaration naming the expected root element. It must
// come after the XML declaration, if any, and before the root element, and the root element's name
// must later match name exactly.
func (w *Writer) SetDocumentType(name string) error {
	if w.documentType != "" {
		return fmt.Errorf("xmlwriter: document type already set")
	}
	if w.state != stateEmpty && w.state != stateDocumentStarted {
		return fmt.Errorf("xmlwriter: document type must come before the root element")
	}
	if !validateName(name) {
		return fmt.Errorf("xmlwriter: %q is not a valid XML name", name)
	}

	w.b.WriteString("<!DOCTYPE ")
	w.b.WriteString(name)
	w.b.WriteString(">")

	w.documentType = name
	w.state = stateDocumentStarted
	return nil
}

// AddComment writes a "<!-- text -->" comment. Comments are legal almost anywhere: in the prolog,
// between sibling elements, inside an element's content, and after the root element closes.
func (w *Writer) AddComment(text string) error {
	if !validateComment(text) {
		return fmt.Errorf("xmlwriter: %q is not a valid XML comment", text)
	}

	if err := w.closeStartTagIfOpen(); err != nil {
		return err
	}
	if w.state == stateEmpty {
		w.state = stateDocumentStarted
	}

	w.b.WriteString("<!--")
	w.b.WriteString(text)
	w.b.WriteString("-->")
	return nil
}

// AddProcessingInstruction writes a "<?target value?>" processing instruction. Like comments, these
// are legal almost anywhere. target may not be "xml" (case-insensitively); that target is reserved
// for the declaration written by [Writer.SetXMLDeclaration].
func (w *Writer) AddProcessingInstruction(target, value string) error {
	if !validateName(target) {
		return fmt.Errorf("xmlwriter: %q is not a valid processing instruction target", target)
	}
	if strings.EqualFold(target, "xml") {
		return fmt.Errorf("xmlwriter: processing instruction target %q is reserved", target)
	}
	if strings.Contains(value, "?>") {
		return fmt.Errorf("xmlwriter: processing instruction value must not contain \"?>\"")
	}

	if err := w.closeStartTagIfOpen(); err != nil {
		return err
	}
	if w.state == stateEmpty {
		w.state = stateDocumentStarted
	}

	w.b.WriteString("<?")
	w.b.WriteString(target)
	if value != "" {
		w.b.WriteString(" ")
		w.b.WriteString(value)
	}
	w.b.WriteString("?>")
	return nil
}

// StartElement opens a "<name" start tag, leaving it open for [Writer.AddAttribute] calls until the
// next call to AddAttribute's sibling methods closes it. The very first element started becomes the
// document's root, and must match the name given to [Writer.SetDocumentType], if any.
func (w *Writer) StartElement(name string) error {
	if !validateName(name) {
		return fmt.Errorf("xmlwriter: %q is not a valid XML name", name)
	}

	switch w.state {
	case stateDocumentStarted:
		if w.documentType != "" && name != w.documentType {
			return fmt.Errorf("xmlwriter: root element %q does not match document type %q", name, w.documentType)
		}
	case stateEmpty, stateInElement:
		// Always legal: either there is no root yet, or we're adding a child of the current element.
	case stateElementStarted:
		if err := w.closeStartTagIfOpen(); err != nil {
			return err
		}
	case stateDocumentEnded:
		return fmt.Errorf("xmlwriter: document already ended")
	}

	if w.current != "" {
		w.openElements = append(w.openElements, w.current)
	}

	w.b.WriteString("<")
	w.b.WriteString(name)
	w.current = name
	w.attrNames = w.attrNames[:0]
	w.state = stateElementStarted
	return nil
}

// AddAttribute adds an attribute to the most recently started element. It must be called before any
// other content is added for that element, since a start tag closes as soon as anything else is
// written.
func (w *Writer) AddAttribute(name, value string) error {
	if w.state != stateElementStarted {
		return fmt.Errorf("xmlwriter: attributes must immediately follow StartElement")
	}
	if !validateName(name) {
		return fmt.Errorf("xmlwriter: %q is not a valid XML name", name)
	}
	for _, seen := range w.attrNames {
		if seen == name {
			return fmt.Errorf("xmlwriter: duplicate attribute %q", name)
		}
	}

	w.b.WriteString(" ")
	w.b.WriteString(name)
	w.b.WriteString(`="`)
	w.b.WriteString(escapeAttrValue(value))
	w.b.WriteString(`"`)

	w.attrNames = append(w.attrNames, name)
	return nil
}

// AddTextNode writes character data as a child of the current element, escaping '&', '<' and '>' as
// needed so the result round-trips through a reader unchanged.
func (w *Writer) AddTextNode(text string) error {
	switch w.state {
	case stateInElement, stateElementStarted:
	default:
		return fmt.Errorf("xmlwriter: text nodes must be inside an element")
	}

	if err := w.closeStartTagIfOpen(); err != nil {
		return err
	}

	w.b.WriteString(escapeText(text))
	w.state = stateInElement
	return nil
}

// AddCData writes text as a "<![CDATA[ ... ]]>" section instead of escaping it. text must not
// contain the literal sequence "]]>".
func (w *Writer) AddCData(text string) error {
	switch w.state {
	case stateInElement, stateElementStarted:
	default:
		return fmt.Errorf("xmlwriter: CDATA sections must be inside an element")
	}
	if strings.Contains(text, "]]>") {
		return fmt.Errorf(`xmlwriter: CDATA text must not contain "]]>"`)
	}

	if err := w.closeStartTagIfOpen(); err != nil {
		return err
	}

	w.b.WriteString("<![CDATA[")
	w.b.WriteString(text)
	w.b.WriteString("]]>")
	w.state = stateInElement
	return nil
}

// EndElement closes the most recently opened element, writing an empty "<name/>" tag if nothing was
// ever added to its content, or a "</name>" end tag otherwise. Once the root element is closed the
// document is complete and only comments and processing instructions may follow.
func (w *Writer) EndElement() error {
	switch w.state {
	case stateElementStarted:
		w.b.WriteString("/>")
	case stateInElement:
		w.b.WriteString("</")
		w.b.WriteString(w.current)
		w.b.WriteString(">")
	default:
		return fmt.Errorf("xmlwriter: no open element to end")
	}

	if n := len(w.openElements); n > 0 {
		w.current = w.openElements[n-1]
		w.openElements = w.openElements[:n-1]
		w.state = stateInElement
	} else {
		w.current = ""
		w.state = stateDocumentEnded
	}

	return nil
}

// closeStartTagIfOpen closes a still-open start tag ("<name" -> "<name>") before any other content
// is written as that element's first child.
func (w *Writer) closeStartTagIfOpen() error {
	if w.state != stateElementStarted {
		return nil
	}
	w.b.WriteString(">")
	w.state = stateInElement
	w.attrNames = w.attrNames[:0]
	return nil
}

func validateName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !xmlchar.IsNameStartChar(r) {
				return false
			}
			continue
		}
		if !xmlchar.IsNameChar(r) {
			return false
		}
	}
	return true
}

// validateComment reports whether text can be written between "<!--" and "-->": no "--" and no
// trailing '-', both of which XML 1.0 forbids because they'd make the closing delimiter ambiguous.
func validateComment(text string) bool {
	return !strings.Contains(text, "--") && !strings.HasSuffix(text, "-")
}

func escapeText(s string) string {
	if !strings.ContainsAny(s, "&<>") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func escapeAttrValue(s string) string {
	if !strings.ContainsAny(s, "&<\"") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
