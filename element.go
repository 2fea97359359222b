package xmlstax

import (
	"strings"

	"github.com/nussjustin/xmlstax/internal/itemparser"
)

func splitName(s string) Name {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return Name{Space: s[:i], Local: s[i+1:]}
	}
	return Name{Local: s}
}

// quoteFromRune maps the closing quote rune the Item Parser matched for an attribute value to the
// corresponding Quote constant.
func quoteFromRune(r rune) Quote {
	if r == '\'' {
		return SingleQuote
	}
	return DoubleQuote
}

// runStartElement drives the start-tag token parser: the element name, then zero or more
// name/value attributes, terminated by '>' or the empty-element "/>".
func (r *Reader) runStartElement() Result {
	switch r.step {
	case stepElemName:
		switch r.item.Execute(r.buf) {
		case itemparser.StatusNeedMoreData:
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		case itemparser.StatusError:
			return r.fail(r.item.Err())
		}

		r.elemName = splitName(r.item.Text())
		r.elemAttrs = r.elemAttrs[:0]
		r.item.SetAction(itemparser.ActionReadElementStartOfContent, itemparser.OptionIgnoreLeadingWhitespace)
		r.step = stepElemContent
		return r.runStartElement()

	case stepElemContent:
		switch r.item.Execute(r.buf) {
		case itemparser.StatusNeedMoreData:
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		case itemparser.StatusError:
			return r.fail(r.item.Err())
		}

		switch r.item.ContentTerm() {
		case itemparser.ContentTermAttribute:
			r.attrStart = r.absOffset()
			r.item.SetAction(itemparser.ActionReadName, itemparser.OptionNone)
			r.step = stepElemAttrName
			return r.runStartElement()
		case itemparser.ContentTermEmptyElement:
			r.item.SetAction(itemparser.ActionReadElementEndEmpty, itemparser.OptionNone)
			r.step = stepElemEmptyClose
			return r.runStartElement()
		case itemparser.ContentTermEndOfStartTag:
			return r.finishStartElement(false)
		default:
			panic("xmlstax: unknown content term")
		}

	case stepElemAttrName:
		switch r.item.Execute(r.buf) {
		case itemparser.StatusNeedMoreData:
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		case itemparser.StatusError:
			return r.fail(r.item.Err())
		}

		name := splitName(r.item.Text())
		for _, a := range r.elemAttrs {
			if a.Name == name {
				return r.fail(&DuplicateAttributeError{At: r.attrStart, Name: name.String()})
			}
		}
		r.attrName = name
		r.item.SetAction(itemparser.ActionReadAttributeValue, itemparser.OptionIgnoreLeadingWhitespace)
		r.step = stepElemAttrValue
		return r.runStartElement()

	case stepElemAttrValue:
		switch r.item.Execute(r.buf) {
		case itemparser.StatusNeedMoreData:
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		case itemparser.StatusError:
			return r.fail(r.item.Err())
		}

		r.elemAttrs = append(r.elemAttrs, Attr{
			Position: Position{Start: r.attrStart, End: r.absOffset()},
			Name:     r.attrName,
			Value:    r.item.Text(),
			Quote:    quoteFromRune(r.item.Term()),
		})
		r.item.SetAction(itemparser.ActionReadElementStartOfContent, itemparser.OptionIgnoreLeadingWhitespace)
		r.step = stepElemContent
		return r.runStartElement()

	case stepElemEmptyClose:
		switch r.item.Execute(r.buf) {
		case itemparser.StatusNeedMoreData:
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		case itemparser.StatusError:
			return r.fail(r.item.Err())
		}
		return r.finishStartElement(true)

	default:
		panic("xmlstax: invalid step for runStartElement")
	}
}

func (r *Reader) finishStartElement(empty bool) Result {
	r.startElem = StartElement{
		Position: Position{Start: r.tokStart, End: r.absOffset()},
		Name:     r.elemName,
		Attr:     append([]Attr(nil), r.elemAttrs...),
		Empty:    empty,
	}

	res := r.finish(ResultStartElement)
	if res == ResultError {
		return res
	}

	if !empty {
		r.stack = append(r.stack, r.elemName)
	} else if len(r.stack) == 0 {
		r.phase = phaseEpilog
	}

	return res
}

// runEndElement drives the end-tag token parser: the element name, then optional whitespace and
// '>'. The Item Parser has already consumed "</".
func (r *Reader) runEndElement() Result {
	switch r.step {
	case stepEndElemName:
		switch r.item.Execute(r.buf) {
		case itemparser.StatusNeedMoreData:
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		case itemparser.StatusError:
			return r.fail(r.item.Err())
		}

		r.elemName = splitName(r.item.Text())
		r.item.SetAction(itemparser.ActionReadElementStartOfContent, itemparser.OptionIgnoreLeadingWhitespace)
		r.step = stepEndElemClose
		return r.runEndElement()

	case stepEndElemClose:
		switch r.item.Execute(r.buf) {
		case itemparser.StatusNeedMoreData:
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		case itemparser.StatusError:
			return r.fail(r.item.Err())
		}

		if r.item.ContentTerm() != itemparser.ContentTermEndOfStartTag {
			return r.fail(&SyntaxError{At: r.absOffset(), Message: "malformed end tag"})
		}

		if len(r.stack) == 0 {
			return r.fail(&UnbalancedElementError{At: r.tokStart, Got: r.elemName.String()})
		}
		top := r.stack[len(r.stack)-1]
		if top != r.elemName {
			return r.fail(&UnbalancedElementError{At: r.tokStart, Got: r.elemName.String(), Expected: top.String()})
		}
		r.stack = r.stack[:len(r.stack)-1]

		r.endElem = EndElement{
			Position: Position{Start: r.tokStart, End: r.absOffset()},
			Name:     r.elemName,
		}

		res := r.finish(ResultEndElement)
		if res == ResultError {
			return res
		}
		if len(r.stack) == 0 {
			r.phase = phaseEpilog
		}
		return res

	default:
		panic("xmlstax: invalid step for runEndElement")
	}
}
