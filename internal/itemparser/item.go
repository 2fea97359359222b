package itemparser

import (
	"github.com/nussjustin/xmlstax/internal/xmlbuf"
	"github.com/nussjustin/xmlstax/internal/xmlchar"
	"github.com/nussjustin/xmlstax/internal/xmlerr"
)

// execReadItem classifies the next token sentinel: "<?", "<!--", "<![CDATA[", "<!" (anything
// else), "</", or "<" followed by a NameStartChar. Matching is strictly incremental; on a partial
// prefix it returns StatusNeedMoreData rather than guessing.
func (p *Parser) execReadItem(buf *xmlbuf.Buffer) Status {
	if p.step == stepInitial {
		p.step = stepItemWhitespace
	}

	if p.step == stepItemWhitespace {
		needMore, err := p.skipLeadingWhitespace(buf)
		if err != nil {
			return p.fail(err)
		}
		if needMore {
			return StatusNeedMoreData
		}
		p.step = stepInitial
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
		case stepInitial:
			if r != '<' {
				return p.fail(&xmlerr.UnexpectedCharacterError{At: buf.Offset(), Got: r, Expected: '<'})
			}
			buf.Advance()
			p.step = stepItemLt

		case stepItemLt:
			switch {
			case r == '?':
				buf.Advance()
				p.term = r
				p.kind = ItemKindProcessingInstruction
				return StatusSuccess
			case r == '!':
				buf.Advance()
				p.step = stepItemLtBang
			case r == '/':
				buf.Advance()
				p.term = r
				p.kind = ItemKindEndOfElement
				return StatusSuccess
			case xmlchar.IsNameStartChar(r):
				// Leave the name's first character for a subsequent ActionReadName run.
				p.term = r
				p.kind = ItemKindStartOfElement
				return StatusSuccess
			default:
				return p.fail(&xmlerr.SyntaxError{At: buf.Offset(), Message: "expected '?', '!', '/' or a name after '<'"})
			}

		case stepItemLtBang:
			switch r {
			case '-':
				buf.Advance()
				p.step = stepItemLtBangDash
			case '[':
				buf.Advance()
				p.matchIdx = 1 // '[' already matched
				p.step = stepItemCData
			default:
				// Anything else after "<!" is a DocumentType item; only "<!" is consumed, leaving
				// the "DOCTYPE" keyword itself for the DocumentType token parser to read.
				p.term = r
				p.kind = ItemKindDocumentType
				return StatusSuccess
			}

		case stepItemLtBangDash:
			if r != '-' {
				return p.fail(&xmlerr.SyntaxError{At: buf.Offset(), Message: "expected second '-' of comment start"})
			}
			buf.Advance()
			p.term = r
			p.kind = ItemKindComment
			return StatusSuccess

		case stepItemCData:
			if r != rune(cdataSentinel[p.matchIdx]) {
				return p.fail(&xmlerr.SyntaxError{At: buf.Offset(), Message: "malformed CDATA section start"})
			}
			buf.Advance()
			p.matchIdx++
			if p.matchIdx == len(cdataSentinel) {
				p.term = r
				p.kind = ItemKindCData
				return StatusSuccess
			}

		default:
			panic("itemparser: invalid step for ActionReadItem")
		}
	}
}
