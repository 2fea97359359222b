package itemparser

import (
	"github.com/nussjustin/xmlstax/internal/xmlbuf"
	"github.com/nussjustin/xmlstax/internal/xmlerr"
)

// execScanUntil accumulates code points into p.text until the literal terminator string has been
// seen, which it then consumes without adding to p.text. It backs ActionReadPiValue (with
// terminator "?>").
func (p *Parser) execScanUntil(buf *xmlbuf.Buffer, terminator string) Status {
	if p.step == stepInitial {
		p.step = stepScanBody
	}

	for {
		r, status := buf.Peek()
		switch status {
		case xmlbuf.StatusNeedMore:
			return StatusNeedMoreData
		case xmlbuf.StatusInvalid:
			return p.fail(buf.Err())
		}

		if r == rune(terminator[p.matchIdx]) {
			buf.Advance()
			p.matchIdx++
			if p.matchIdx == len(terminator) {
				p.term = r
				return StatusSuccess
			}
			continue
		}

		// The partial match didn't pan out; the bytes matched so far are real content.
		if p.matchIdx > 0 {
			p.text = append(p.text, terminator[:p.matchIdx]...)
			p.matchIdx = 0
			continue // re-examine r against the terminator's first byte
		}

		p.text = append(p.text, string(r)...)
		buf.Advance()
	}
}

// execReadCommentText accumulates comment text up to and including the closing "-->", rejecting a
// bare "--" that is not immediately followed by '>'.
func (p *Parser) execReadCommentText(buf *xmlbuf.Buffer) Status {
	if p.step == stepInitial {
		p.step = stepScanBody
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
		case stepScanBody:
			if r == '-' {
				buf.Advance()
				p.step = stepScanSawDash1
				continue
			}
			p.text = append(p.text, string(r)...)
			buf.Advance()

		case stepScanSawDash1:
			if r == '-' {
				buf.Advance()
				p.step = stepScanSawDash2
				continue
			}
			p.text = append(p.text, '-')
			p.text = append(p.text, string(r)...)
			buf.Advance()
			p.step = stepScanBody

		case stepScanSawDash2:
			if r == '>' {
				buf.Advance()
				p.term = r
				return StatusSuccess
			}
			return p.fail(&xmlerr.SyntaxError{At: buf.Offset(), Message: "'--' is not allowed inside a comment"})

		default:
			panic("itemparser: invalid step for ActionReadCommentText")
		}
	}
}

// execReadDocumentTypeValue reads a DOCTYPE declaration's content up to the closing '>'. The core
// grammar this module accepts has no internal subset, so a '[' before the closing '>' is an error
// rather than the start of one.
func (p *Parser) execReadDocumentTypeValue(buf *xmlbuf.Buffer) Status {
	if p.step == stepInitial {
		p.step = stepScanBody
	}

	for {
		r, status := buf.Peek()
		switch status {
		case xmlbuf.StatusNeedMore:
			return StatusNeedMoreData
		case xmlbuf.StatusInvalid:
			return p.fail(buf.Err())
		}

		switch r {
		case '>':
			buf.Advance()
			p.term = r
			return StatusSuccess
		case '[':
			return p.fail(&xmlerr.SyntaxError{At: buf.Offset(), Message: "DOCTYPE internal subset is not supported"})
		default:
			p.text = append(p.text, string(r)...)
			buf.Advance()
		}
	}
}
