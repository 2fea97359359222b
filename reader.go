package xmlstax

import (
	"github.com/nussjustin/xmlstax/internal/itemparser"
	"github.com/nussjustin/xmlstax/internal/xmlbuf"
	"github.com/nussjustin/xmlstax/internal/xmlchar"
)

// readerStep names the resumption point of the Document Reader's own state machine, one level
// above the Item Parser's. Every Token Parser below gets its own handful of these; Parse dispatches
// on the current one and runs until it either has a complete token, hits an error, or runs out of
// buffered input.
type readerStep uint8

const (
	stepAwaitItem readerStep = iota
	stepItemRun
	stepTextRun
	stepTextEntityHash
	stepTextEntityDigits
	stepTextEntityName

	stepPiTarget
	stepPiSpace
	stepPiData

	stepDocTypeKeyword
	stepDocTypeSpace
	stepDocTypeName
	stepDocTypeValue

	stepCommentText

	stepCDataText

	stepElemName
	stepElemContent
	stepElemAttrName
	stepElemAttrValue
	stepElemEmptyClose

	stepEndElemName
	stepEndElemClose
)

// Reader is a resumable, pull-based XML 1.0 reader. Feed it bytes with [Reader.Write] and pull
// tokens one at a time with [Reader.Parse]; there is no DOM and no callback to register.
//
// The zero value is not usable; construct one with [NewReader] or [NewBoundedReader].
type Reader struct {
	buf      *xmlbuf.Buffer
	capacity int
	item     *itemparser.Parser

	baseOffset int // absolute offset corresponding to buf's current erase point

	phase         phase
	firstItemDone bool
	curIsFirst    bool
	announcedEnd  bool
	stack         []Name

	step    readerStep
	lastResult Result
	err     error

	tokStart int // absolute offset where the token currently being parsed began

	piTarget string

	docTypeName string

	litIdx  int
	litText []byte

	elemName    Name
	elemAttrs   []Attr
	attrName    Name
	attrStart   int

	textEntBuf    []byte
	textEntBase   int
	textEntOffset int

	xmlDecl   XmlDeclaration
	pi        ProcessingInstruction
	docType   DocumentType
	comment   Comment
	cdata     CData
	startElem StartElement
	endElem   EndElement
	textNode  TextNode
}

// NewReader returns a new Reader backed by an unbounded input buffer.
func NewReader() *Reader {
	return newReader(0)
}

// NewBoundedReader returns a new Reader that holds at most capacity unconsumed bytes at a time,
// for bounding memory use on an embedded target. [Reader.Write] reports a short write once that
// limit is reached and not enough of the current token has been consumed yet to make room.
func NewBoundedReader(capacity int) *Reader {
	return newReader(capacity)
}

func newReader(capacity int) *Reader {
	r := &Reader{capacity: capacity, item: itemparser.New()}
	r.resetBuffer()
	return r
}

func (r *Reader) resetBuffer() {
	if r.capacity > 0 {
		r.buf = xmlbuf.NewBounded(r.capacity)
	} else {
		r.buf = xmlbuf.New()
	}
}

// Write appends p to the Reader's input buffer. It never blocks and, like [xmlbuf.Buffer.Append],
// never detects a parse error itself; call [Reader.Parse] to discover those. Once the Reader has
// latched an error, Write accepts no bytes and returns that error until [Reader.Clear].
func (r *Reader) Write(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	return r.buf.Append(p), nil
}

// Clear resets the Reader to its initial state, discarding any buffered bytes and clearing a
// latched error, so the same Reader can be reused for a new document.
func (r *Reader) Clear() {
	r.resetBuffer()
	r.baseOffset = 0
	r.phase = phaseAwaitXmlDecl
	r.firstItemDone = false
	r.announcedEnd = false
	r.stack = r.stack[:0]
	r.step = stepAwaitItem
	r.lastResult = ResultNone
	r.err = nil
}

// LastResult returns the Result of the most recent call to Parse, or ResultNone if Parse has not
// yet been called since construction or the last Clear.
func (r *Reader) LastResult() Result {
	return r.lastResult
}

// Err returns the error that latched the Reader, or nil if [Reader.LastResult] is not
// [ResultError].
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) absOffset() int {
	return r.baseOffset + r.buf.Offset()
}

// commit discards the bytes of the token Parse just finished, so the buffer only ever holds the
// unconsumed tail plus whatever the token currently in progress has accumulated.
func (r *Reader) commit() {
	r.baseOffset += r.buf.Offset()
	r.buf.EraseToCursor()
}

func (r *Reader) fail(err error) Result {
	r.err = err
	r.lastResult = ResultError
	return ResultError
}

// finish validates kind against the current phase, updates the element stack's effect on the
// phase, and returns kind as the result of this Parse call.
func (r *Reader) finish(kind Result) Result {
	if err := r.transition(kind); err != nil {
		return r.fail(err)
	}

	r.step = stepAwaitItem
	r.lastResult = kind
	return kind
}

// Parse advances the Reader by at most one token and reports what it found.
//
// Once Parse returns [ResultError], the Reader is latched: every subsequent call returns
// ResultError again, and every typed getter returns a [ContractError], until [Reader.Clear].
func (r *Reader) Parse() Result {
	if r.err != nil {
		r.lastResult = ResultError
		return ResultError
	}

	for {
		switch r.step {
		case stepAwaitItem:
			r.commit()

			if r.phase == phaseEpilog && !r.announcedEnd {
				r.announcedEnd = true
				r.lastResult = ResultEndOfDocument
				return ResultEndOfDocument
			}

			if r.phase == phaseInElement {
				rr, status := r.buf.Peek()
				switch status {
				case xmlbuf.StatusNeedMore:
					r.lastResult = ResultNeedMoreData
					return ResultNeedMoreData
				case xmlbuf.StatusInvalid:
					return r.fail(r.buf.Err())
				}
				if rr != '<' {
					r.tokStart = r.absOffset()
					r.litText = r.litText[:0]
					r.textEntBuf = r.textEntBuf[:0]
					r.step = stepTextRun
					continue
				}
			} else {
				// Insignificant prolog/epilog whitespace never becomes part of any token's
				// Position; skip it before recording where the next item begins.
				_, needMore, err := r.skipSpace()
				if err != nil {
					return r.fail(err)
				}
				if needMore {
					r.lastResult = ResultNeedMoreData
					return ResultNeedMoreData
				}
			}

			r.tokStart = r.absOffset()
			r.item.SetAction(itemparser.ActionReadItem, itemparser.OptionNone)
			r.step = stepItemRun

		case stepItemRun:
			switch r.item.Execute(r.buf) {
			case itemparser.StatusNeedMoreData:
				r.lastResult = ResultNeedMoreData
				return ResultNeedMoreData
			case itemparser.StatusError:
				return r.fail(r.item.Err())
			}

			r.curIsFirst = !r.firstItemDone
			r.firstItemDone = true

			switch r.item.Kind() {
			case itemparser.ItemKindProcessingInstruction:
				r.item.SetAction(itemparser.ActionReadName, itemparser.OptionNone)
				r.step = stepPiTarget
			case itemparser.ItemKindComment:
				r.item.SetAction(itemparser.ActionReadCommentText, itemparser.OptionNone)
				r.step = stepCommentText
			case itemparser.ItemKindCData:
				r.litText = r.litText[:0]
				r.litIdx = 0
				r.step = stepCDataText
			case itemparser.ItemKindDocumentType:
				r.litIdx = 0
				r.step = stepDocTypeKeyword
			case itemparser.ItemKindEndOfElement:
				r.item.SetAction(itemparser.ActionReadName, itemparser.OptionNone)
				r.step = stepEndElemName
			case itemparser.ItemKindStartOfElement:
				r.item.SetAction(itemparser.ActionReadName, itemparser.OptionNone)
				r.step = stepElemName
			default:
				panic("xmlstax: unknown item kind")
			}

		case stepTextRun, stepTextEntityHash, stepTextEntityDigits, stepTextEntityName:
			if res := r.runTextNode(); res != ResultNone {
				return res
			}

		case stepPiTarget, stepPiSpace, stepPiData:
			if res := r.runPi(); res != ResultNone {
				return res
			}

		case stepDocTypeKeyword, stepDocTypeSpace, stepDocTypeName, stepDocTypeValue:
			if res := r.runDocType(); res != ResultNone {
				return res
			}

		case stepCommentText:
			if res := r.runComment(); res != ResultNone {
				return res
			}

		case stepCDataText:
			if res := r.runCData(); res != ResultNone {
				return res
			}

		case stepElemName, stepElemContent, stepElemAttrName, stepElemAttrValue, stepElemEmptyClose:
			if res := r.runStartElement(); res != ResultNone {
				return res
			}

		case stepEndElemName, stepEndElemClose:
			if res := r.runEndElement(); res != ResultNone {
				return res
			}

		default:
			panic("xmlstax: unknown reader step")
		}
	}
}

// skipSpace consumes buffered XML whitespace and reports whether any was seen and whether the
// caller must wait for more data before it can be sure it found the end of the run.
func (r *Reader) skipSpace() (sawAny bool, needMore bool, err error) {
	for {
		rr, status := r.buf.Peek()
		switch status {
		case xmlbuf.StatusNeedMore:
			return sawAny, true, nil
		case xmlbuf.StatusInvalid:
			return sawAny, false, r.buf.Err()
		}
		if !xmlchar.IsSpace(rr) {
			return sawAny, false, nil
		}
		r.buf.Advance()
		sawAny = true
	}
}

// matchLiteral advances through buf matching the ASCII literal word, resuming from r.litIdx.
func (r *Reader) matchLiteral(word string) (done bool, needMore bool, err error) {
	for r.litIdx < len(word) {
		rr, status := r.buf.Peek()
		switch status {
		case xmlbuf.StatusNeedMore:
			return false, true, nil
		case xmlbuf.StatusInvalid:
			return false, false, r.buf.Err()
		}
		if rr != rune(word[r.litIdx]) {
			return false, false, &UnexpectedCharacterError{At: r.absOffset(), Got: rr, Expected: rune(word[r.litIdx])}
		}
		r.buf.Advance()
		r.litIdx++
	}
	return true, false, nil
}

// scanUntilLiteral accumulates code points into r.litText until the literal terminator has been
// seen, consuming it without adding it to r.litText. Works like itemparser's execScanUntil, but runs
// directly against the buffer since no Item Parser Action exists for CDATA sections, and on a
// failed partial match it keeps any matched suffix that can still begin the terminator.
func (r *Reader) scanUntilLiteral(term string) (done bool, needMore bool, err error) {
	for {
		rr, status := r.buf.Peek()
		switch status {
		case xmlbuf.StatusNeedMore:
			return false, true, nil
		case xmlbuf.StatusInvalid:
			return false, false, r.buf.Err()
		}

		if rr == rune(term[r.litIdx]) {
			r.buf.Advance()
			r.litIdx++
			if r.litIdx == len(term) {
				return true, false, nil
			}
			continue
		}

		if r.litIdx > 0 {
			// Keep the longest run of already-matched bytes that is still a prefix of term, so an
			// overlapping start such as the extra ']' in "]]]>" does not hide the terminator.
			shift := 1
			for shift < r.litIdx && term[shift:r.litIdx] != term[:r.litIdx-shift] {
				shift++
			}
			r.litText = append(r.litText, term[:shift]...)
			r.litIdx -= shift
			continue
		}

		r.litText = append(r.litText, string(rr)...)
		r.buf.Advance()
	}
}

func (r *Reader) checkResult(want Result) error {
	if r.lastResult != want {
		return &ContractError{Message: "called " + want.String() + " getter, but last Parse result was " + r.lastResult.String()}
	}
	return nil
}

// XmlDeclaration returns the token produced by the most recent Parse call, or a [ContractError]
// if that call did not return [ResultXmlDeclaration].
func (r *Reader) XmlDeclaration() (XmlDeclaration, error) {
	if err := r.checkResult(ResultXmlDeclaration); err != nil {
		return XmlDeclaration{}, err
	}
	return r.xmlDecl, nil
}

// ProcessingInstruction returns the token produced by the most recent Parse call, or a
// [ContractError] if that call did not return [ResultProcessingInstruction].
func (r *Reader) ProcessingInstruction() (ProcessingInstruction, error) {
	if err := r.checkResult(ResultProcessingInstruction); err != nil {
		return ProcessingInstruction{}, err
	}
	return r.pi, nil
}

// DocumentType returns the token produced by the most recent Parse call, or a [ContractError] if
// that call did not return [ResultDocumentType].
func (r *Reader) DocumentType() (DocumentType, error) {
	if err := r.checkResult(ResultDocumentType); err != nil {
		return DocumentType{}, err
	}
	return r.docType, nil
}

// Comment returns the token produced by the most recent Parse call, or a [ContractError] if that
// call did not return [ResultComment].
func (r *Reader) Comment() (Comment, error) {
	if err := r.checkResult(ResultComment); err != nil {
		return Comment{}, err
	}
	return r.comment, nil
}

// CData returns the token produced by the most recent Parse call, or a [ContractError] if that
// call did not return [ResultCData].
func (r *Reader) CData() (CData, error) {
	if err := r.checkResult(ResultCData); err != nil {
		return CData{}, err
	}
	return r.cdata, nil
}

// StartElement returns the token produced by the most recent Parse call, or a [ContractError] if
// that call did not return [ResultStartElement].
func (r *Reader) StartElement() (StartElement, error) {
	if err := r.checkResult(ResultStartElement); err != nil {
		return StartElement{}, err
	}
	return r.startElem, nil
}

// EndElement returns the token produced by the most recent Parse call, or a [ContractError] if
// that call did not return [ResultEndElement].
func (r *Reader) EndElement() (EndElement, error) {
	if err := r.checkResult(ResultEndElement); err != nil {
		return EndElement{}, err
	}
	return r.endElem, nil
}

// TextNode returns the token produced by the most recent Parse call, or a [ContractError] if that
// call did not return [ResultTextNode].
func (r *Reader) TextNode() (TextNode, error) {
	if err := r.checkResult(ResultTextNode); err != nil {
		return TextNode{}, err
	}
	return r.textNode, nil
}
