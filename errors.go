package xmlstax

import "github.com/nussjustin/xmlstax/internal/xmlerr"

// The error types below are aliases for the types of the same name in internal/xmlerr. They live
// there so that internal/xmlbuf, internal/itemparser and this package can all construct and
// recognize the same error values without an import cycle (this package imports those internal
// packages, so they cannot import it back).

// EncodingError is returned when the input contains invalid UTF-8.
type EncodingError = xmlerr.EncodingError

// SyntaxError is returned for XML grammar violations that have no more specific type below, such
// as a stray '<' inside an attribute value, "--" inside a comment, a DOCTYPE internal subset or a
// malformed XML declaration. A bad name, an unexpected character such as a missing quote, and an
// unbalanced end tag are reported as [InvalidNameError], [UnexpectedCharacterError] and
// [UnbalancedElementError] instead.
type SyntaxError = xmlerr.SyntaxError

// InvalidNameError is returned when an invalid XML Name is encountered.
type InvalidNameError = xmlerr.InvalidNameError

// UnexpectedCharacterError is returned when the next character does not match what the grammar
// requires at that position.
type UnexpectedCharacterError = xmlerr.UnexpectedCharacterError

// UnexpectedEndOfInputError is returned when a required construct is cut off.
//
// In practice this Reader never latches on it: running out of buffered input is always reported as
// ResultNeedMoreData, and no code path in this module constructs this error.
type UnexpectedEndOfInputError = xmlerr.UnexpectedEndOfInputError

// DuplicateAttributeError is returned when a start tag repeats an attribute name.
type DuplicateAttributeError = xmlerr.DuplicateAttributeError

// UnsupportedEntityError is returned for a named entity reference other than the five predefined
// ones ("amp", "lt", "gt", "apos", "quot").
type UnsupportedEntityError = xmlerr.UnsupportedEntityError

// StructureError is returned when a syntactically valid item appears in a document phase that
// disallows it: a second XML declaration, a DOCTYPE after the root element, CDATA outside any
// element, and so on.
type StructureError = xmlerr.StructureError

// UnbalancedElementError is returned when an end tag does not match the currently open element.
type UnbalancedElementError = xmlerr.UnbalancedElementError

// ContractError is returned when the caller misuses the API, e.g. calling a typed getter that does
// not match the Reader's [Result]. Unlike the other error types it does not latch the Reader and is
// reported synchronously.
type ContractError = xmlerr.ContractError
