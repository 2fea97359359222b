// Package itemparser implements the lowest-level tokenizer: a single resumable state machine,
// parameterized by an Action chosen by the caller before each run, that reads one lexical item out
// of an [xmlbuf.Buffer] at a time.
//
// Every suspension point is an explicit state in the step field below rather than a goroutine or
// generator, so a run that returns StatusNeedMoreData can always be resumed by calling Execute
// again once the buffer has more bytes, with no information lost in between.
package itemparser

import (
	"github.com/nussjustin/xmlstax/internal/xmlbuf"
	"github.com/nussjustin/xmlstax/internal/xmlchar"
)

// cdataSentinel is what follows "<!" to classify an item as CData, after the "<!" itself.
const cdataSentinel = "[CDATA["

// step names the internal resumption point within the action currently running. Each Action uses
// only a subset of these; SetAction resets it to stepInitial.
type step uint8

const (
	stepInitial step = iota

	// ActionReadItem sub-states.
	stepItemLt
	stepItemLtBang
	stepItemLtBangDash
	stepItemCData
	stepItemWhitespace

	// ActionReadName.
	stepNameFirst
	stepNameRest

	// ActionReadPiValue / ActionReadCommentText / ActionReadDocumentTypeValue: generic
	// scan-until-terminator.
	stepScanBody
	stepScanSawDash1
	stepScanSawDash2

	// ActionReadElementStartOfContent.
	stepContent

	// ActionReadElementEndEmpty.
	stepEndEmptySlash

	// ActionReadAttributeValue.
	stepAttrBeforeEquals
	stepAttrBeforeQuote
	stepAttrBody
	stepAttrEntityHash
	stepAttrEntityDigits
	stepAttrEntityName
)

// Parser is a restartable lexer for a single Action at a time. The zero value is not usable; build
// one with New.
//
// Parser is owned exclusively by whichever Token Parser is currently driving it, matching the
// single-threaded, cooperative ownership model the whole module uses.
type Parser struct {
	action  Action
	options Options
	step    step

	err error

	term        rune
	kind        ItemKind
	contentTerm ContentTerm

	text []byte // accumulated across resumptions; reused via text[:0] between runs.

	matchIdx int // progress matching a literal multi-character terminator
	quote    rune

	entBuf    []byte // digits or name of an in-progress entity/character reference
	entBase   int    // 10 or 16, once a numeric reference's base is known
	entOffset int    // buffer offset where the current "&" was seen, for error reporting
}

// New returns a new Parser with no Action configured.
func New() *Parser {
	return &Parser{}
}

// SetAction configures the Parser to run the given Action with the given Options, clearing any
// latched error and discarding partial state from a previous run.
func (p *Parser) SetAction(a Action, opts Options) {
	p.action = a
	p.options = opts
	p.step = stepInitial
	p.err = nil
	p.term = 0
	p.kind = ItemKindNone
	p.contentTerm = ContentTermNone
	p.text = p.text[:0]
	p.matchIdx = 0
	p.quote = 0
	p.entBuf = p.entBuf[:0]
	p.entBase = 0
	p.entOffset = 0
}

// Term returns the termination code point of the last successful run.
func (p *Parser) Term() rune { return p.term }

// Kind returns the item classification of the last successful ActionReadItem run.
func (p *Parser) Kind() ItemKind { return p.kind }

// ContentTerm returns the classification of the last successful ActionReadElementStartOfContent run.
func (p *Parser) ContentTerm() ContentTerm { return p.contentTerm }

// Text returns the accumulated text of the last successful run (the decoded Name, PI data, comment
// text, DOCTYPE content, or attribute value, depending on the Action that produced it).
func (p *Parser) Text() string { return string(p.text) }

// Err returns the latching error of a run that returned StatusError.
func (p *Parser) Err() error { return p.err }

// Execute resumes the state machine configured by the most recent SetAction call, consuming as much
// of buf as is available, and returns once it has a complete result, hits a syntax violation, or
// runs out of buffered input.
//
// Execute never advances buf's cursor past a partially-consumed code point: a StatusNeedMoreData
// result leaves the buffer exactly where a later call with more data can pick back up.
func (p *Parser) Execute(buf *xmlbuf.Buffer) Status {
	if p.action == ActionNone {
		panic("itemparser: Execute called before SetAction")
	}

	if p.err != nil {
		return StatusError
	}

	switch p.action {
	case ActionReadItem:
		return p.execReadItem(buf)
	case ActionReadName:
		return p.execReadName(buf)
	case ActionReadPiValue:
		return p.execScanUntil(buf, "?>")
	case ActionReadDocumentTypeValue:
		return p.execReadDocumentTypeValue(buf)
	case ActionReadCommentText:
		return p.execReadCommentText(buf)
	case ActionReadElementStartOfContent:
		return p.execReadElementStartOfContent(buf)
	case ActionReadElementEndEmpty:
		return p.execReadElementEndEmpty(buf)
	case ActionReadAttributeValue:
		return p.execReadAttributeValue(buf)
	default:
		panic("itemparser: unknown action")
	}
}

// fail latches the parser into StatusError with err, for the remainder of this Action.
func (p *Parser) fail(err error) Status {
	p.err = err
	return StatusError
}

// skipLeadingWhitespace consumes buffered XML whitespace, under either OptionIgnoreLeadingWhitespace
// or OptionSynchronization, until it finds a non-whitespace code point; no other code point is
// skipped under either option. It reports whether the caller should stop and return
// StatusNeedMoreData.
func (p *Parser) skipLeadingWhitespace(buf *xmlbuf.Buffer) (needMore bool, err error) {
	if p.options&(OptionIgnoreLeadingWhitespace|OptionSynchronization) == 0 {
		return false, nil
	}

	for {
		r, status := buf.Peek()
		switch status {
		case xmlbuf.StatusNeedMore:
			return true, nil
		case xmlbuf.StatusInvalid:
			return false, buf.Err()
		}

		if xmlchar.IsSpace(r) {
			buf.Advance()
			continue
		}

		return false, nil
	}
}
