package xmlstax

import "strconv"

// Result is returned by [Reader.Parse] and [Reader.LastResult] to say what, if anything, was
// produced by the most recent call.
type Result uint8

const (
	// ResultNone means Parse has not been called since the Reader was created or cleared.
	ResultNone Result = iota

	// ResultNeedMoreData means the buffered bytes end mid-token; call [Reader.Write] and retry.
	ResultNeedMoreData

	// ResultXmlDeclaration means [Reader.XmlDeclaration] holds the token just parsed.
	ResultXmlDeclaration

	// ResultProcessingInstruction means [Reader.ProcessingInstruction] holds the token just parsed.
	ResultProcessingInstruction

	// ResultDocumentType means [Reader.DocumentType] holds the token just parsed.
	ResultDocumentType

	// ResultComment means [Reader.Comment] holds the token just parsed.
	ResultComment

	// ResultCData means [Reader.CData] holds the token just parsed.
	ResultCData

	// ResultStartElement means [Reader.StartElement] holds the token just parsed.
	ResultStartElement

	// ResultEndElement means [Reader.EndElement] holds the token just parsed.
	ResultEndElement

	// ResultTextNode means [Reader.TextNode] holds the token just parsed.
	ResultTextNode

	// ResultEndOfDocument means the root element has closed and only whitespace, comments and
	// processing instructions may still legally follow.
	ResultEndOfDocument

	// ResultError means the Reader is latched; every typed getter now returns a ContractError, and
	// every future Parse call returns ResultError again until [Reader.Clear].
	ResultError
)

// String returns the name of the result.
func (r Result) String() string {
	switch r {
	case ResultNone:
		return "ResultNone"
	case ResultNeedMoreData:
		return "ResultNeedMoreData"
	case ResultXmlDeclaration:
		return "ResultXmlDeclaration"
	case ResultProcessingInstruction:
		return "ResultProcessingInstruction"
	case ResultDocumentType:
		return "ResultDocumentType"
	case ResultComment:
		return "ResultComment"
	case ResultCData:
		return "ResultCData"
	case ResultStartElement:
		return "ResultStartElement"
	case ResultEndElement:
		return "ResultEndElement"
	case ResultTextNode:
		return "ResultTextNode"
	case ResultEndOfDocument:
		return "ResultEndOfDocument"
	case ResultError:
		return "ResultError"
	default:
		panic("xmlstax: unknown result")
	}
}

// Name is a (possibly namespace-prefixed) XML name. xmlstax does not resolve the prefix against a
// namespace declaration; Space is simply the text before the colon, if any.
type Name struct {
	// Space is the part of the name before the colon, if any.
	Space string

	// Local is the part of the name after the colon, or the whole name if there is no colon.
	Local string
}

// String implements the [fmt.Stringer] interface.
func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Position specifies a start and end byte offset in the input a token or attribute came from.
// Offsets are counted from the first byte after a leading byte order mark, if one is present.
type Position struct {
	// Start is the inclusive start offset.
	Start int

	// End is the exclusive end offset.
	End int
}

// Pos returns the start and end offsets.
func (p Position) Pos() (start, end int) {
	return p.Start, p.End
}

// String implements the [fmt.Stringer] interface.
func (p Position) String() string {
	return strconv.Itoa(p.Start) + ":" + strconv.Itoa(p.End)
}

// Attr is one attribute of a [StartElement] token.
type Attr struct {
	// Position contains the position of the attribute in the input.
	Position Position

	// Name is the attribute's name.
	Name Name

	// Value is the attribute's unescaped value.
	Value string

	// Quote is the quotation mark that delimited Value in the input.
	Quote Quote
}

// Quote is the quotation mark used to delimit an attribute value.
type Quote uint8

const (
	// DoubleQuote means the attribute value was delimited by '"'.
	DoubleQuote Quote = iota

	// SingleQuote means the attribute value was delimited by '\''.
	SingleQuote
)

// String implements the [fmt.Stringer] interface.
func (q Quote) String() string {
	switch q {
	case DoubleQuote:
		return "DoubleQuote"
	case SingleQuote:
		return "SingleQuote"
	default:
		panic("xmlstax: unknown quote")
	}
}

// Standalone is the value of an XML declaration's optional "standalone" pseudo-attribute.
type Standalone uint8

const (
	// StandaloneUnspecified means the declaration had no "standalone" pseudo-attribute.
	StandaloneUnspecified Standalone = iota

	// StandaloneYes means standalone='yes'.
	StandaloneYes

	// StandaloneNo means standalone='no'.
	StandaloneNo
)

// XmlDeclaration is the "<?xml ...?>" declaration, when present, at the very start of a document.
type XmlDeclaration struct {
	// Position contains the position of the declaration in the input.
	Position Position

	// Version is the value of the required "version" pseudo-attribute. Only "1.0" is accepted.
	Version string

	// Encoding is the value of the optional "encoding" pseudo-attribute, or "" if absent.
	Encoding string

	// Standalone is the value of the optional "standalone" pseudo-attribute.
	Standalone Standalone
}

// ProcessingInstruction is a "<?target data?>" token other than the XML declaration.
type ProcessingInstruction struct {
	// Position contains the position of the instruction in the input.
	Position Position

	// Target is the instruction's target name.
	Target string

	// Data is the instruction's raw data, verbatim.
	Data string
}

// DocumentType is a "<!DOCTYPE name ...>" token. xmlstax accepts only the subset with no internal
// subset ("[...]").
type DocumentType struct {
	// Position contains the position of the declaration in the input.
	Position Position

	// Name is the declared root element name.
	Name string

	// Value holds whatever follows Name verbatim (e.g. an external ID), not including the closing
	// '>'. It is empty for a bare "<!DOCTYPE name>".
	Value string
}

// Comment is a "<!-- text -->" token.
type Comment struct {
	// Position contains the position of the comment in the input.
	Position Position

	// Text is the comment's text, not including the delimiters.
	Text string
}

// CData is a "<![CDATA[ text ]]>" token.
type CData struct {
	// Position contains the position of the section in the input.
	Position Position

	// Text is the section's text, not including the delimiters.
	Text string
}

// StartElement is a "<name ...>" or self-closing "<name .../>" token.
type StartElement struct {
	// Position contains the position of the start tag in the input.
	Position Position

	// Name is the element's name.
	Name Name

	// Attr holds the element's attributes, in document order.
	Attr []Attr

	// Empty is true if the element was self-closing ("<name/>"), in which case no [EndElement]
	// follows for it.
	Empty bool
}

// HasAttr reports whether the element has an attribute with the given name.
func (s *StartElement) HasAttr(name Name) bool {
	for _, attr := range s.Attr {
		if attr.Name == name {
			return true
		}
	}
	return false
}

// EndElement is a "</name>" token.
type EndElement struct {
	// Position contains the position of the end tag in the input.
	Position Position

	// Name is the element's name, matching the [StartElement] it closes.
	Name Name
}

// TextNode is a run of character data between a start and end tag.
type TextNode struct {
	// Position contains the position of the text in the input.
	Position Position

	// Text is the decoded text, with entity and character references resolved.
	Text string
}
