package xmlstax

import (
	"strconv"
	"strings"

	"github.com/nussjustin/xmlstax/internal/itemparser"
	"github.com/nussjustin/xmlstax/internal/xmlbuf"
)

// runPi drives the processing-instruction token parser: PITarget, an optional single run of
// whitespace, then data up to "?>". A target that matches "xml" case-insensitively is reserved;
// it only denotes the XML declaration when it is spelled exactly "xml" and is the very first item
// in the document, and is a [StructureError] in every other case.
func (r *Reader) runPi() Result {
	switch r.step {
	case stepPiTarget:
		switch r.item.Execute(r.buf) {
		case itemparser.StatusNeedMoreData:
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		case itemparser.StatusError:
			return r.fail(r.item.Err())
		}

		r.piTarget = r.item.Text()
		r.step = stepPiSpace
		return r.runPi()

	case stepPiSpace:
		rr, status := r.buf.Peek()
		switch status {
		case xmlbuf.StatusNeedMore:
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		case xmlbuf.StatusInvalid:
			return r.fail(r.buf.Err())
		}

		if rr == '?' {
			r.item.SetAction(itemparser.ActionReadPiValue, itemparser.OptionNone)
			r.step = stepPiData
			return r.runPi()
		}

		_, needMore, err := r.skipSpace()
		if err != nil {
			return r.fail(err)
		}
		if needMore {
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		}

		r.item.SetAction(itemparser.ActionReadPiValue, itemparser.OptionNone)
		r.step = stepPiData
		return r.runPi()

	case stepPiData:
		switch r.item.Execute(r.buf) {
		case itemparser.StatusNeedMoreData:
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		case itemparser.StatusError:
			return r.fail(r.item.Err())
		}

		return r.finishPi(r.item.Text())

	default:
		panic("xmlstax: invalid step for runPi")
	}
}

func (r *Reader) finishPi(data string) Result {
	reserved := strings.EqualFold(r.piTarget, "xml")

	if reserved {
		if !(r.curIsFirst && r.piTarget == "xml") {
			return r.fail(&StructureError{At: r.tokStart, Message: "processing instruction target \"" + r.piTarget + "\" is reserved"})
		}

		// data ends right before the closing "?>", so its first byte lies len(data)+2 bytes back.
		decl, err := parseXmlDeclData(r.absOffset()-len("?>")-len(data), data)
		if err != nil {
			return r.fail(err)
		}
		decl.Position = Position{Start: r.tokStart, End: r.absOffset()}
		r.xmlDecl = decl
		return r.finish(ResultXmlDeclaration)
	}

	r.pi = ProcessingInstruction{
		Position: Position{Start: r.tokStart, End: r.absOffset()},
		Target:   r.piTarget,
		Data:     data,
	}
	return r.finish(ResultProcessingInstruction)
}

// parseXmlDeclData parses the fixed version/encoding/standalone pseudo-attribute sequence out of
// an already fully-read XML declaration's raw data (everything after the whitespace that follows
// "xml", up to "?>"). base is the absolute offset of data's first byte.
func parseXmlDeclData(base int, data string) (XmlDeclaration, error) {
	var decl XmlDeclaration

	s := data
	pos := base

	readSpace := func(required bool) error {
		n := 0
		for n < len(s) && isAsciiSpace(s[n]) {
			n++
		}
		if required && n == 0 {
			return &SyntaxError{At: pos, Message: "expected whitespace in XML declaration"}
		}
		s = s[n:]
		pos += n
		return nil
	}

	readPseudoAttr := func(name string) (string, bool, error) {
		if !strings.HasPrefix(s, name) {
			return "", false, nil
		}
		rest := s[len(name):]
		n := 0
		for n < len(rest) && isAsciiSpace(rest[n]) {
			n++
		}
		if n == len(rest) || rest[n] != '=' {
			return "", false, nil
		}
		rest = rest[n+1:]
		n = 0
		for n < len(rest) && isAsciiSpace(rest[n]) {
			n++
		}
		if n == len(rest) || (rest[n] != '\'' && rest[n] != '"') {
			return "", false, &SyntaxError{At: pos, Message: "expected quoted value in XML declaration"}
		}
		quote := rest[n]
		rest = rest[n+1:]
		end := strings.IndexByte(rest, quote)
		if end < 0 {
			return "", false, &SyntaxError{At: pos, Message: "unterminated value in XML declaration"}
		}
		value := rest[:end]
		consumed := len(s) - len(rest[end+1:])
		pos += consumed
		s = rest[end+1:]
		return value, true, nil
	}

	// runPi has already consumed the whitespace between the target and data.
	if err := readSpace(false); err != nil {
		return decl, err
	}

	version, ok, err := readPseudoAttr("version")
	if err != nil {
		return decl, err
	}
	if !ok {
		return decl, &SyntaxError{At: pos, Message: "XML declaration requires a version pseudo-attribute"}
	}
	if version != "1.0" {
		return decl, &SyntaxError{At: pos, Message: "unsupported XML version " + strconv.Quote(version)}
	}
	decl.Version = version

	if err := readSpace(false); err != nil {
		return decl, err
	}
	if encoding, ok, err := readPseudoAttr("encoding"); err != nil {
		return decl, err
	} else if ok {
		if !isValidEncName(encoding) {
			return decl, &SyntaxError{At: pos, Message: "invalid encoding name " + strconv.Quote(encoding)}
		}
		decl.Encoding = encoding
		if err := readSpace(false); err != nil {
			return decl, err
		}
	}

	if standalone, ok, err := readPseudoAttr("standalone"); err != nil {
		return decl, err
	} else if ok {
		switch standalone {
		case "yes":
			decl.Standalone = StandaloneYes
		case "no":
			decl.Standalone = StandaloneNo
		default:
			return decl, &SyntaxError{At: pos, Message: "standalone must be \"yes\" or \"no\""}
		}
		if err := readSpace(false); err != nil {
			return decl, err
		}
	}

	if s != "" {
		return decl, &SyntaxError{At: pos, Message: "unexpected trailing content in XML declaration"}
	}

	return decl, nil
}

func isAsciiSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// isValidEncName reports whether s matches the EncName production from the XML 1.0 grammar:
// [A-Za-z][A-Za-z0-9._-]*.
func isValidEncName(s string) bool {
	if s == "" {
		return false
	}
	if !isAsciiAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		b := s[i]
		if !isAsciiAlpha(b) && !isAsciiDigit(b) && b != '.' && b != '_' && b != '-' {
			return false
		}
	}
	return true
}

func isAsciiAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isAsciiDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
