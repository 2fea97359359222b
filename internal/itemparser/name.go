package itemparser

import (
	"github.com/nussjustin/xmlstax/internal/xmlbuf"
	"github.com/nussjustin/xmlstax/internal/xmlchar"
	"github.com/nussjustin/xmlstax/internal/xmlerr"
)

// execReadName reads an XML Name: a NameStartChar followed by zero or more NameChars, terminating
// on (without consuming) the first code point that is not a NameChar.
func (p *Parser) execReadName(buf *xmlbuf.Buffer) Status {
	if p.step == stepInitial {
		p.step = stepNameFirst
	}

	for {
		r, status := buf.Peek()
		switch status {
		case xmlbuf.StatusNeedMore:
			return StatusNeedMoreData
		case xmlbuf.StatusInvalid:
			return p.fail(buf.Err())
		}

		switch p.step {
		case stepNameFirst:
			if !xmlchar.IsNameStartChar(r) {
				return p.fail(&xmlerr.InvalidNameError{At: buf.Offset()})
			}
			p.text = append(p.text, string(r)...)
			buf.Advance()
			p.step = stepNameRest

		case stepNameRest:
			if !xmlchar.IsNameChar(r) {
				p.term = r
				return StatusSuccess
			}
			p.text = append(p.text, string(r)...)
			buf.Advance()

		default:
			panic("itemparser: invalid step for ActionReadName")
		}
	}
}
