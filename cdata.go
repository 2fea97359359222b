package xmlstax

// runCData drives the CDATA token parser. The Item Parser has already consumed "<![CDATA[" in
// full; no Action exists for the remainder, so it is scanned directly against the buffer, the
// same way [Reader.runTextNode] scans character data.
func (r *Reader) runCData() Result {
	done, needMore, err := r.scanUntilLiteral("]]>")
	if err != nil {
		return r.fail(err)
	}
	if needMore {
		r.lastResult = ResultNeedMoreData
		return ResultNeedMoreData
	}
	if !done {
		panic("xmlstax: scanUntilLiteral returned without done, needMore or err")
	}

	r.cdata = CData{
		Position: Position{Start: r.tokStart, End: r.absOffset()},
		Text:     string(r.litText),
	}
	return r.finish(ResultCData)
}
