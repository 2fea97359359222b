package xmlstax

import "github.com/nussjustin/xmlstax/internal/itemparser"

// runComment drives the comment token parser. The Item Parser has already consumed "<!--"; only
// the text up to the closing "-->" remains.
func (r *Reader) runComment() Result {
	switch r.item.Execute(r.buf) {
	case itemparser.StatusNeedMoreData:
		r.lastResult = ResultNeedMoreData
		return ResultNeedMoreData
	case itemparser.StatusError:
		return r.fail(r.item.Err())
	}

	r.comment = Comment{
		Position: Position{Start: r.tokStart, End: r.absOffset()},
		Text:     r.item.Text(),
	}
	return r.finish(ResultComment)
}
