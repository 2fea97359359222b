package itemparser

import (
	"github.com/nussjustin/xmlstax/internal/xmlbuf"
	"github.com/nussjustin/xmlstax/internal/xmlchar"
	"github.com/nussjustin/xmlstax/internal/xmlerr"
)

// execReadAttributeValue reads "=" + quote + value + matching quote, decoding the five predefined
// entities and numeric character references as it goes. A literal '<' inside the value is a
// syntax error, matching XML 1.0's AttValue production.
func (p *Parser) execReadAttributeValue(buf *xmlbuf.Buffer) Status {
	if p.step == stepInitial {
		p.step = stepAttrBeforeEquals
	}

	for {
		switch p.step {
		case stepAttrBeforeEquals:
			needMore, err := p.skipLeadingWhitespace(buf)
			if err != nil {
				return p.fail(err)
			}
			if needMore {
				return StatusNeedMoreData
			}

			r, status := buf.Peek()
			if status == xmlbuf.StatusNeedMore {
				return StatusNeedMoreData
			}
			if status == xmlbuf.StatusInvalid {
				return p.fail(buf.Err())
			}
			if r != '=' {
				return p.fail(&xmlerr.UnexpectedCharacterError{At: buf.Offset(), Got: r, Expected: '='})
			}
			buf.Advance()
			p.step = stepAttrBeforeQuote

		case stepAttrBeforeQuote:
			needMore, err := p.skipLeadingWhitespace(buf)
			if err != nil {
				return p.fail(err)
			}
			if needMore {
				return StatusNeedMoreData
			}

			r, status := buf.Peek()
			if status == xmlbuf.StatusNeedMore {
				return StatusNeedMoreData
			}
			if status == xmlbuf.StatusInvalid {
				return p.fail(buf.Err())
			}
			if r != '\'' && r != '"' {
				return p.fail(&xmlerr.UnexpectedCharacterError{At: buf.Offset(), Got: r, Expected: '"'})
			}
			buf.Advance()
			p.quote = r
			p.step = stepAttrBody

		case stepAttrBody:
			r, status := buf.Peek()
			if status == xmlbuf.StatusNeedMore {
				return StatusNeedMoreData
			}
			if status == xmlbuf.StatusInvalid {
				return p.fail(buf.Err())
			}

			switch r {
			case p.quote:
				buf.Advance()
				p.term = r
				return StatusSuccess
			case '<':
				return p.fail(&xmlerr.SyntaxError{At: buf.Offset(), Message: "unescaped '<' inside attribute value"})
			case '&':
				p.entOffset = buf.Offset()
				buf.Advance()
				p.step = stepAttrEntityHash
			default:
				p.text = append(p.text, string(r)...)
				buf.Advance()
			}

		case stepAttrEntityHash:
			r, status := buf.Peek()
			if status == xmlbuf.StatusNeedMore {
				return StatusNeedMoreData
			}
			if status == xmlbuf.StatusInvalid {
				return p.fail(buf.Err())
			}
			if r == '#' {
				buf.Advance()
				p.entBase = 10
				p.step = stepAttrEntityDigits
				continue
			}
			p.entBase = 0
			p.step = stepAttrEntityName

		case stepAttrEntityDigits:
			r, status := buf.Peek()
			if status == xmlbuf.StatusNeedMore {
				return StatusNeedMoreData
			}
			if status == xmlbuf.StatusInvalid {
				return p.fail(buf.Err())
			}

			switch {
			case len(p.entBuf) == 0 && p.entBase == 10 && r == 'x':
				buf.Advance()
				p.entBase = 16
			case r == ';':
				buf.Advance()
				cp, ok := xmlchar.DecodeCharRef(string(p.entBuf), p.entBase)
				if !ok {
					return p.fail(&xmlerr.SyntaxError{At: p.entOffset, Message: "invalid character reference"})
				}
				p.text = append(p.text, string(cp)...)
				p.entBuf = p.entBuf[:0]
				p.step = stepAttrBody
			case isHexOrDecDigit(r, p.entBase):
				p.entBuf = append(p.entBuf, byte(r))
				buf.Advance()
			default:
				return p.fail(&xmlerr.UnexpectedCharacterError{At: buf.Offset(), Got: r, Expected: ';'})
			}

		case stepAttrEntityName:
			r, status := buf.Peek()
			if status == xmlbuf.StatusNeedMore {
				return StatusNeedMoreData
			}
			if status == xmlbuf.StatusInvalid {
				return p.fail(buf.Err())
			}

			switch {
			case r == ';':
				buf.Advance()
				name := string(p.entBuf)
				cp, ok := xmlchar.LookupEntity(name)
				if !ok {
					return p.fail(&xmlerr.UnsupportedEntityError{At: p.entOffset, Name: name})
				}
				p.text = append(p.text, string(cp)...)
				p.entBuf = p.entBuf[:0]
				p.step = stepAttrBody
			case len(p.entBuf) == 0 && xmlchar.IsNameStartChar(r), len(p.entBuf) > 0 && xmlchar.IsNameChar(r):
				p.entBuf = append(p.entBuf, string(r)...)
				buf.Advance()
			default:
				return p.fail(&xmlerr.InvalidNameError{At: buf.Offset()})
			}

		default:
			panic("itemparser: invalid step for ActionReadAttributeValue")
		}
	}
}

func isHexOrDecDigit(r rune, base int) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case base == 16 && r >= 'a' && r <= 'f':
		return true
	case base == 16 && r >= 'A' && r <= 'F':
		return true
	default:
		return false
	}
}
