package xmlstax

import (
	"github.com/nussjustin/xmlstax/internal/xmlbuf"
	"github.com/nussjustin/xmlstax/internal/xmlchar"
)

// runTextNode accumulates character data up to (not including) the next '<', decoding the five
// predefined entities and numeric character references the same way attribute values do. A bare
// '&' that isn't the start of a recognized reference is a syntax error.
func (r *Reader) runTextNode() Result {
	for {
		switch r.step {
		case stepTextRun:
			rr, status := r.buf.Peek()
			switch status {
			case xmlbuf.StatusNeedMore:
				r.lastResult = ResultNeedMoreData
				return ResultNeedMoreData
			case xmlbuf.StatusInvalid:
				return r.fail(r.buf.Err())
			}

			switch rr {
			case '<':
				r.textNode = TextNode{
					Position: Position{Start: r.tokStart, End: r.absOffset()},
					Text:     string(r.litText),
				}
				return r.finish(ResultTextNode)
			case '&':
				r.textEntOffset = r.absOffset()
				r.buf.Advance()
				r.step = stepTextEntityHash
			default:
				r.litText = append(r.litText, string(rr)...)
				r.buf.Advance()
			}

		case stepTextEntityHash:
			rr, status := r.buf.Peek()
			switch status {
			case xmlbuf.StatusNeedMore:
				r.lastResult = ResultNeedMoreData
				return ResultNeedMoreData
			case xmlbuf.StatusInvalid:
				return r.fail(r.buf.Err())
			}
			if rr == '#' {
				r.buf.Advance()
				r.textEntBase = 10
				r.step = stepTextEntityDigits
				continue
			}
			r.textEntBase = 0
			r.step = stepTextEntityName

		case stepTextEntityDigits:
			rr, status := r.buf.Peek()
			switch status {
			case xmlbuf.StatusNeedMore:
				r.lastResult = ResultNeedMoreData
				return ResultNeedMoreData
			case xmlbuf.StatusInvalid:
				return r.fail(r.buf.Err())
			}

			switch {
			case len(r.textEntBuf) == 0 && r.textEntBase == 10 && rr == 'x':
				r.buf.Advance()
				r.textEntBase = 16
			case rr == ';':
				r.buf.Advance()
				cp, ok := xmlchar.DecodeCharRef(string(r.textEntBuf), r.textEntBase)
				if !ok {
					return r.fail(&SyntaxError{At: r.textEntOffset, Message: "invalid character reference"})
				}
				r.litText = append(r.litText, string(cp)...)
				r.textEntBuf = r.textEntBuf[:0]
				r.step = stepTextRun
			case isTextRefDigit(rr, r.textEntBase):
				r.textEntBuf = append(r.textEntBuf, byte(rr))
				r.buf.Advance()
			default:
				return r.fail(&UnexpectedCharacterError{At: r.absOffset(), Got: rr, Expected: ';'})
			}

		case stepTextEntityName:
			rr, status := r.buf.Peek()
			switch status {
			case xmlbuf.StatusNeedMore:
				r.lastResult = ResultNeedMoreData
				return ResultNeedMoreData
			case xmlbuf.StatusInvalid:
				return r.fail(r.buf.Err())
			}

			switch {
			case rr == ';':
				r.buf.Advance()
				name := string(r.textEntBuf)
				cp, ok := xmlchar.LookupEntity(name)
				if !ok {
					return r.fail(&UnsupportedEntityError{At: r.textEntOffset, Name: name})
				}
				r.litText = append(r.litText, string(cp)...)
				r.textEntBuf = r.textEntBuf[:0]
				r.step = stepTextRun
			case len(r.textEntBuf) == 0 && xmlchar.IsNameStartChar(rr), len(r.textEntBuf) > 0 && xmlchar.IsNameChar(rr):
				r.textEntBuf = append(r.textEntBuf, string(rr)...)
				r.buf.Advance()
			default:
				return r.fail(&InvalidNameError{At: r.absOffset()})
			}

		default:
			panic("xmlstax: invalid step for runTextNode")
		}
	}
}

func isTextRefDigit(r rune, base int) bool {
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
