package xmlstax_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nussjustin/xmlstax"
)

// endOfDocument is a sentinel used in expected event slices below to stand in for
// xmlstax.ResultEndOfDocument, which has no token value of its own.
type endOfDocument struct{}

func currentToken(t *testing.T, r *xmlstax.Reader, res xmlstax.Result) any {
	t.Helper()

	switch res {
	case xmlstax.ResultEndOfDocument:
		return endOfDocument{}
	case xmlstax.ResultXmlDeclaration:
		tok, err := r.XmlDeclaration()
		if err != nil {
			t.Fatalf("XmlDeclaration: %v", err)
		}
		return tok
	case xmlstax.ResultProcessingInstruction:
		tok, err := r.ProcessingInstruction()
		if err != nil {
			t.Fatalf("ProcessingInstruction: %v", err)
		}
		return tok
	case xmlstax.ResultDocumentType:
		tok, err := r.DocumentType()
		if err != nil {
			t.Fatalf("DocumentType: %v", err)
		}
		return tok
	case xmlstax.ResultComment:
		tok, err := r.Comment()
		if err != nil {
			t.Fatalf("Comment: %v", err)
		}
		return tok
	case xmlstax.ResultCData:
		tok, err := r.CData()
		if err != nil {
			t.Fatalf("CData: %v", err)
		}
		return tok
	case xmlstax.ResultStartElement:
		tok, err := r.StartElement()
		if err != nil {
			t.Fatalf("StartElement: %v", err)
		}
		return tok
	case xmlstax.ResultEndElement:
		tok, err := r.EndElement()
		if err != nil {
			t.Fatalf("EndElement: %v", err)
		}
		return tok
	case xmlstax.ResultTextNode:
		tok, err := r.TextNode()
		if err != nil {
			t.Fatalf("TextNode: %v", err)
		}
		return tok
	default:
		t.Fatalf("unexpected result %v", res)
		return nil
	}
}

// drain writes the whole input at once and pulls tokens until the Reader either runs out of
// buffered input (a well-formed but possibly incomplete document) or latches an error.
func drain(t *testing.T, input string) ([]any, error) {
	t.Helper()

	r := xmlstax.NewReader()
	if _, err := r.Write([]byte(input)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got []any
	for {
		switch res := r.Parse(); res {
		case xmlstax.ResultNeedMoreData:
			return got, nil
		case xmlstax.ResultError:
			return got, r.Err()
		default:
			got = append(got, currentToken(t, r, res))
		}
	}
}

// drainChunked feeds input one byte at a time, calling Parse after every Write, to check that the
// token stream does not depend on how the input was chunked.
func drainChunked(t *testing.T, input string) ([]any, error) {
	t.Helper()

	r := xmlstax.NewReader()

	var got []any
	for i := 0; i < len(input); i++ {
		if _, err := r.Write([]byte{input[i]}); err != nil {
			t.Fatalf("Write: %v", err)
		}

		for {
			switch res := r.Parse(); res {
			case xmlstax.ResultNeedMoreData:
				goto nextByte
			case xmlstax.ResultError:
				return got, r.Err()
			default:
				got = append(got, currentToken(t, r, res))
			}
		}
	nextByte:
	}

	return got, nil
}

func TestReader_Scenarios(t *testing.T) {
	testCases := []struct {
		Name    string
		Input   string
		Events  []any
		ErrorIs func(error) bool // nil means the document must parse without error
	}{
		{
			Name:  "xml declaration followed by a processing instruction",
			Input: `<?xml version="1.0"?><?foo bar?><root/>`,
			Events: []any{
				xmlstax.XmlDeclaration{
					Position: xmlstax.Position{Start: 0, End: 21},
					Version:  "1.0",
				},
				xmlstax.ProcessingInstruction{
					Position: xmlstax.Position{Start: 21, End: 32},
					Target:   "foo",
					Data:     "bar",
				},
				xmlstax.StartElement{
					Position: xmlstax.Position{Start: 32, End: 39},
					Name:     xmlstax.Name{Local: "root"},
					Empty:    true,
				},
				endOfDocument{},
			},
		},
		{
			Name:  "xml declaration after content is a structure error",
			Input: `<root/><?xml version="1.0"?>`,
			Events: []any{
				xmlstax.StartElement{
					Position: xmlstax.Position{Start: 0, End: 7},
					Name:     xmlstax.Name{Local: "root"},
					Empty:    true,
				},
				endOfDocument{},
			},
			ErrorIs: func(err error) bool { return errors.As(err, new(*xmlstax.StructureError)) },
		},
		{
			Name:    "duplicate attribute",
			Input:   `<root a="1" a="2"/>`,
			ErrorIs: func(err error) bool { return errors.As(err, new(*xmlstax.DuplicateAttributeError)) },
		},
		{
			Name:    "malformed encoding name in xml declaration",
			Input:   `<?xml version="1.0" encoding="  bad!! value"?><root/>`,
			ErrorIs: func(err error) bool { return errors.As(err, new(*xmlstax.SyntaxError)) },
		},
		{
			Name:  "empty element siblings and text",
			Input: `<root><a/><b>x</b></root>`,
			Events: []any{
				xmlstax.StartElement{
					Position: xmlstax.Position{Start: 0, End: 6},
					Name:     xmlstax.Name{Local: "root"},
				},
				xmlstax.StartElement{
					Position: xmlstax.Position{Start: 6, End: 10},
					Name:     xmlstax.Name{Local: "a"},
					Empty:    true,
				},
				xmlstax.StartElement{
					Position: xmlstax.Position{Start: 10, End: 13},
					Name:     xmlstax.Name{Local: "b"},
				},
				xmlstax.TextNode{
					Position: xmlstax.Position{Start: 13, End: 14},
					Text:     "x",
				},
				xmlstax.EndElement{
					Position: xmlstax.Position{Start: 14, End: 18},
					Name:     xmlstax.Name{Local: "b"},
				},
				xmlstax.EndElement{
					Position: xmlstax.Position{Start: 18, End: 25},
					Name:     xmlstax.Name{Local: "root"},
				},
				endOfDocument{},
			},
		},
		{
			Name:  "BOM and whitespace downgrade the prolog phase",
			Input: "\xEF\xBB\xBF  \n<!-- c --><root/>",
			Events: []any{
				xmlstax.Comment{
					Position: xmlstax.Position{Start: 3, End: 13},
					Text:     " c ",
				},
				xmlstax.StartElement{
					Position: xmlstax.Position{Start: 13, End: 20},
					Name:     xmlstax.Name{Local: "root"},
					Empty:    true,
				},
				endOfDocument{},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			got, err := drain(t, testCase.Input)

			if diff := cmp.Diff(testCase.Events, got); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}

			switch {
			case testCase.ErrorIs == nil && err != nil:
				t.Errorf("got error %v, want no error", err)
			case testCase.ErrorIs != nil && !testCase.ErrorIs(err):
				t.Errorf("got error %v, did not match expected error type", err)
			}
		})
	}
}

// TestReader_ChunkedCommentAcrossDoubleDash checks that a bare "--" inside a comment is rejected
// even when the two dashes are split across separate Write calls.
func TestReader_ChunkedCommentAcrossDoubleDash(t *testing.T) {
	r := xmlstax.NewReader()

	write := func(s string) {
		if _, err := r.Write([]byte(s)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	write(`<root><!-- a -`)
	if res := r.Parse(); res != xmlstax.ResultStartElement {
		t.Fatalf("first Parse: got %v, want ResultStartElement", res)
	}
	if res := r.Parse(); res != xmlstax.ResultNeedMoreData {
		t.Fatalf("second Parse: got %v, want ResultNeedMoreData", res)
	}

	write(`- b -->`)
	res := r.Parse()
	if res != xmlstax.ResultError {
		t.Fatalf("third Parse: got %v, want ResultError", res)
	}

	var synErr *xmlstax.SyntaxError
	if !errors.As(r.Err(), &synErr) {
		t.Fatalf("got error %v, want a *SyntaxError", r.Err())
	}
}

// TestReader_ChunkingInvariant checks that splitting a well-formed document at every possible
// byte boundary produces the same token stream as writing it in one call.
func TestReader_ChunkingInvariant(t *testing.T) {
	const input = `<?xml version="1.0"?><!DOCTYPE root><root a="1" b="&amp;&#65;"><a/><!--c--><![CDATA[<>]]>text</root>`

	want, err := drain(t, input)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}

	got, err := drainChunked(t, input)
	if err != nil {
		t.Fatalf("drainChunked: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("chunked token stream mismatch (-want +got):\n%s", diff)
	}
}

// TestReader_PrefixDeterminism checks that parsing any strict prefix of a well-formed document
// never produces a token that disagrees with parsing the whole thing: the prefix's token stream is
// always itself a prefix of the full stream, and the prefix parse stops cleanly with
// ResultNeedMoreData (never ResultError) once it runs out of bytes mid-token.
func TestReader_PrefixDeterminism(t *testing.T) {
	const input = `<?xml version="1.0"?><!DOCTYPE root><root a="1" b="&amp;&#65;"><a/><!--c--><![CDATA[<>]]>text</root>`

	full, err := drain(t, input)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}

	for n := 0; n <= len(input); n++ {
		prefix := input[:n]

		r := xmlstax.NewReader()
		if _, err := r.Write([]byte(prefix)); err != nil {
			t.Fatalf("Write: %v", err)
		}

		var got []any
		for {
			res := r.Parse()
			if res == xmlstax.ResultNeedMoreData {
				break
			}
			if res == xmlstax.ResultError {
				t.Fatalf("prefix %d: unexpected error %v", n, r.Err())
			}
			got = append(got, currentToken(t, r, res))
		}

		if len(got) > len(full) {
			t.Fatalf("prefix %d: produced %d tokens, more than the full document's %d", n, len(got), len(full))
		}
		if diff := cmp.Diff(full[:len(got)], got); diff != "" {
			t.Errorf("prefix %d: token stream is not a prefix of the full stream (-want +got):\n%s", n, diff)
		}
	}
}

// TestReader_LatchedErrorIsSticky checks that once a Reader latches an error, it keeps returning
// it until Clear, and every typed getter turns into a ContractError.
func TestReader_LatchedErrorIsSticky(t *testing.T) {
	r := xmlstax.NewReader()
	if _, err := r.Write([]byte(`<root></wrong>`)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if res := r.Parse(); res != xmlstax.ResultStartElement {
		t.Fatalf("first Parse: got %v, want ResultStartElement", res)
	}

	if res := r.Parse(); res != xmlstax.ResultError {
		t.Fatalf("second Parse: got %v, want ResultError", res)
	}
	firstErr := r.Err()

	var unbalanced *xmlstax.UnbalancedElementError
	if !errors.As(firstErr, &unbalanced) {
		t.Fatalf("got error %v, want an *UnbalancedElementError", firstErr)
	}

	if res := r.Parse(); res != xmlstax.ResultError || r.Err() != firstErr {
		t.Fatalf("third Parse: got (%v, %v), want the same latched error again", res, r.Err())
	}

	if _, err := r.StartElement(); !errors.As(err, new(*xmlstax.ContractError)) {
		t.Fatalf("StartElement after latch: got %v, want a *ContractError", err)
	}

	r.Clear()
	if res := r.LastResult(); res != xmlstax.ResultNone {
		t.Fatalf("after Clear: got %v, want ResultNone", res)
	}
}
