package xmlstax

import "github.com/nussjustin/xmlstax/internal/itemparser"

const docTypeKeyword = "DOCTYPE"

// runDocType drives the DOCTYPE token parser. The Item Parser has already consumed "<!", leaving
// the literal keyword, the declared root name, and an optional trailing value up to '>'.
func (r *Reader) runDocType() Result {
	switch r.step {
	case stepDocTypeKeyword:
		done, needMore, err := r.matchLiteral(docTypeKeyword)
		if err != nil {
			return r.fail(err)
		}
		if needMore {
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		}
		if !done {
			panic("xmlstax: matchLiteral returned without done, needMore or err")
		}
		r.step = stepDocTypeSpace
		return r.runDocType()

	case stepDocTypeSpace:
		_, needMore, err := r.skipSpace()
		if err != nil {
			return r.fail(err)
		}
		if needMore {
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		}
		// The whitespace may have been consumed by an earlier call that ran out of input, so check
		// the offset rather than this call's skipSpace result.
		if r.absOffset() == r.tokStart+len("<!"+docTypeKeyword) {
			return r.fail(&SyntaxError{At: r.absOffset(), Message: "expected whitespace after DOCTYPE"})
		}
		r.item.SetAction(itemparser.ActionReadName, itemparser.OptionNone)
		r.step = stepDocTypeName
		return r.runDocType()

	case stepDocTypeName:
		switch r.item.Execute(r.buf) {
		case itemparser.StatusNeedMoreData:
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		case itemparser.StatusError:
			return r.fail(r.item.Err())
		}
		r.docTypeName = r.item.Text()
		r.item.SetAction(itemparser.ActionReadDocumentTypeValue, itemparser.OptionNone)
		r.step = stepDocTypeValue
		return r.runDocType()

	case stepDocTypeValue:
		switch r.item.Execute(r.buf) {
		case itemparser.StatusNeedMoreData:
			r.lastResult = ResultNeedMoreData
			return ResultNeedMoreData
		case itemparser.StatusError:
			return r.fail(r.item.Err())
		}

		r.docType = DocumentType{
			Position: Position{Start: r.tokStart, End: r.absOffset()},
			Name:     r.docTypeName,
			Value:    r.item.Text(),
		}
		return r.finish(ResultDocumentType)

	default:
		panic("xmlstax: invalid step for runDocType")
	}
}
