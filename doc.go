// Package xmlstax implements a streaming, resumable, pull-based reader for the subset of XML 1.0
// suited to embedded environments: no DTD internal subset, no external entities, no namespace
// processing.
//
// A [Reader] is fed bytes with [Reader.Write] and advanced one token at a time with
// [Reader.Parse], which returns promptly with [ResultNeedMoreData] rather than blocking when the
// buffered bytes end mid-token. This mirrors a classic StAX pull parser: there is no DOM and no
// callback registration, only a cursor the caller drives forward.
//
// The companion package [github.com/nussjustin/xmlstax/xmlwriter] builds documents in the other
// direction.
package xmlstax
