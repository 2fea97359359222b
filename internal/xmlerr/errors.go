// Package xmlerr defines the error types shared by the buffer, item parser,
// token parsers and the document reader. Keeping them in one internal
// package lets every layer construct and recognize the same error values
// without importing the public xmlstax package (which imports them back in
// turn).
package xmlerr

import (
	"errors"
	"fmt"
)

// EncodingError is returned when the input buffer contains invalid UTF-8.
type EncodingError struct {
	// At is the byte offset at which the invalid sequence starts.
	At int
}

// Error returns a human-readable error message.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8 at offset %d", e.At)
}

// Is checks if the given error matches the receiver.
func (e *EncodingError) Is(err error) bool {
	var o *EncodingError
	return errors.As(err, &o) && *o == *e
}

// Offset returns e.At.
func (e *EncodingError) Offset() int {
	return e.At
}

// SyntaxError is returned when encountering a generic XML grammar violation.
type SyntaxError struct {
	// At is the position in the input where the error occurred.
	At int

	// Message describes the violation.
	Message string
}

// Error returns a human-readable error message.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("invalid syntax at offset %d: %s", s.At, s.Message)
}

// Is checks if the given error matches the receiver.
func (s *SyntaxError) Is(err error) bool {
	var o *SyntaxError
	return errors.As(err, &o) && o.At == s.At && o.Message == s.Message
}

// Offset returns s.At.
func (s *SyntaxError) Offset() int {
	return s.At
}

// InvalidNameError is returned when an invalid XML Name is encountered.
type InvalidNameError struct {
	// At is the position in the input where the error occurred.
	At int
}

// Error returns a human-readable error message.
func (i *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name at offset %d", i.At)
}

// Is checks if the given error matches the receiver.
func (i *InvalidNameError) Is(err error) bool {
	var o *InvalidNameError
	return errors.As(err, &o) && *o == *i
}

// Offset returns i.At.
func (i *InvalidNameError) Offset() int {
	return i.At
}

// UnexpectedCharacterError is returned when the next character does not match the expected one.
type UnexpectedCharacterError struct {
	// At is the position at which the error occurred.
	At int

	// Got is the code point that was read.
	Got rune

	// Expected contains the expected code point.
	Expected rune
}

// Error returns a human-readable error message.
func (u *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("unexpected character %q at offset %d, %q expected", u.Got, u.At, u.Expected)
}

// Is checks if the given error matches the receiver.
func (u *UnexpectedCharacterError) Is(err error) bool {
	var o *UnexpectedCharacterError
	return errors.As(err, &o) && *o == *u
}

// Offset returns u.At.
func (u *UnexpectedCharacterError) Offset() int {
	return u.At
}

// UnexpectedEndOfInputError is returned when input ends in the middle of a required construct.
//
// Unlike [EncodingError] and [SyntaxError], it never latches a [xmlstax.Reader]: running out of
// input is always reported as "need more data", and no code path in this module constructs it.
type UnexpectedEndOfInputError struct {
	// At is the position at which the error occurred.
	At int

	// Expected optionally contains the code point that was expected.
	Expected rune
}

// Error returns a human-readable error message.
func (u *UnexpectedEndOfInputError) Error() string {
	if u.Expected == 0 {
		return fmt.Sprintf("unexpected end of input at offset %d", u.At)
	}
	return fmt.Sprintf("unexpected end of input at offset %d, %q expected", u.At, u.Expected)
}

// Is checks if the given error matches the receiver.
func (u *UnexpectedEndOfInputError) Is(err error) bool {
	var o *UnexpectedEndOfInputError
	return errors.As(err, &o) && *o == *u
}

// Offset returns u.At.
func (u *UnexpectedEndOfInputError) Offset() int {
	return u.At
}

// DuplicateAttributeError is returned when an element has the same attribute name more than once.
type DuplicateAttributeError struct {
	// At is the position in the input where the error occurred.
	At int

	// Name is the name of the duplicated attribute.
	Name string
}

// Error returns a human-readable error message.
func (d *DuplicateAttributeError) Error() string {
	return fmt.Sprintf("duplicate attribute %q at offset %d", d.Name, d.At)
}

// Is checks if the given error matches the receiver.
func (d *DuplicateAttributeError) Is(err error) bool {
	var o *DuplicateAttributeError
	return errors.As(err, &o) && *o == *d
}

// Offset returns d.At.
func (d *DuplicateAttributeError) Offset() int {
	return d.At
}

// UnsupportedEntityError is returned when encountering a non-predefined named entity.
type UnsupportedEntityError struct {
	// At is the position in the input where the error occurred.
	At int

	// Name is the unsupported entity name.
	Name string
}

// Error returns a human-readable error message.
func (u *UnsupportedEntityError) Error() string {
	return fmt.Sprintf("unsupported entity %q at offset %d", u.Name, u.At)
}

// Is checks if the given error matches the receiver.
func (u *UnsupportedEntityError) Is(err error) bool {
	var o *UnsupportedEntityError
	return errors.As(err, &o) && *o == *u
}

// Offset returns u.At.
func (u *UnsupportedEntityError) Offset() int {
	return u.At
}

// StructureError is returned when a syntactically valid item appears in a document phase that
// disallows it, e.g. a second XML declaration or a DOCTYPE after the root element.
type StructureError struct {
	// At is the position in the input where the error occurred.
	At int

	// Message describes the violation.
	Message string
}

// Error returns a human-readable error message.
func (s *StructureError) Error() string {
	return fmt.Sprintf("invalid document structure at offset %d: %s", s.At, s.Message)
}

// Is checks if the given error matches the receiver.
func (s *StructureError) Is(err error) bool {
	var o *StructureError
	return errors.As(err, &o) && o.At == s.At && o.Message == s.Message
}

// Offset returns s.At.
func (s *StructureError) Offset() int {
	return s.At
}

// UnbalancedElementError is returned when an end tag does not match the currently open element.
type UnbalancedElementError struct {
	// At is the position in the input where the error occurred.
	At int

	// Got is the end tag name that was read.
	Got string

	// Expected is the name at the top of the element stack, if any.
	Expected string
}

// Error returns a human-readable error message.
func (u *UnbalancedElementError) Error() string {
	if u.Expected == "" {
		return fmt.Sprintf("unexpected end tag %q at offset %d: no open element", u.Got, u.At)
	}
	return fmt.Sprintf("unexpected end tag %q at offset %d, %q expected", u.Got, u.At, u.Expected)
}

// Is checks if the given error matches the receiver.
func (u *UnbalancedElementError) Is(err error) bool {
	var o *UnbalancedElementError
	return errors.As(err, &o) && *o == *u
}

// Offset returns u.At.
func (u *UnbalancedElementError) Offset() int {
	return u.At
}

// ContractError is returned when the caller misuses the API, e.g. reading a typed token getter
// that does not match the last parse result. Unlike the other error types it does not latch the
// reader and is reported synchronously.
type ContractError struct {
	// Message describes the misuse.
	Message string
}

// Error returns a human-readable error message.
func (c *ContractError) Error() string {
	return fmt.Sprintf("contract violation: %s", c.Message)
}

// Is checks if the given error matches the receiver.
func (c *ContractError) Is(err error) bool {
	var o *ContractError
	return errors.As(err, &o) && *o == *c
}
