package itemparser

import (
	"github.com/nussjustin/xmlstax/internal/xmlbuf"
	"github.com/nussjustin/xmlstax/internal/xmlchar"
	"github.com/nussjustin/xmlstax/internal/xmlerr"
)

// execReadElementStartOfContent skips the whitespace separating attributes (or a name and the
// first attribute) and classifies what follows: a NameStartChar (another attribute, left
// unconsumed), '/' (an empty-element close, left unconsumed), or '>' (the end of the start tag,
// consumed).
func (p *Parser) execReadElementStartOfContent(buf *xmlbuf.Buffer) Status {
	if p.step == stepInitial {
		needMore, err := p.skipLeadingWhitespace(buf)
		if err != nil {
			return p.fail(err)
		}
		if needMore {
			return StatusNeedMoreData
		}
		p.step = stepContent
	}

	r, status := buf.Peek()
	switch status {
	case xmlbuf.StatusNeedMore:
		return StatusNeedMoreData
	case xmlbuf.StatusInvalid:
		return p.fail(buf.Err())
	}

	switch {
	case r == '>':
		buf.Advance()
		p.term = r
		p.contentTerm = ContentTermEndOfStartTag
		return StatusSuccess
	case r == '/':
		p.term = r
		p.contentTerm = ContentTermEmptyElement
		return StatusSuccess
	case xmlchar.IsNameStartChar(r):
		p.term = r
		p.contentTerm = ContentTermAttribute
		return StatusSuccess
	default:
		return p.fail(&xmlerr.UnexpectedCharacterError{At: buf.Offset(), Got: r, Expected: '>'})
	}
}

// execReadElementEndEmpty reads the literal "/>" that closes an empty element.
func (p *Parser) execReadElementEndEmpty(buf *xmlbuf.Buffer) Status {
	const want = "/>"

	if p.step == stepInitial {
		p.step = stepEndEmptySlash
	}

	for p.matchIdx < len(want) {
		r, status := buf.Peek()
		switch status {
		case xmlbuf.StatusNeedMore:
			return StatusNeedMoreData
		case xmlbuf.StatusInvalid:
			return p.fail(buf.Err())
		}

		if r != rune(want[p.matchIdx]) {
			return p.fail(&xmlerr.UnexpectedCharacterError{At: buf.Offset(), Got: r, Expected: rune(want[p.matchIdx])})
		}

		buf.Advance()
		p.term = r
		p.matchIdx++
	}

	return StatusSuccess
}
