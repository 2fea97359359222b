package xmlwriter_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nussjustin/xmlstax"
	"github.com/nussjustin/xmlstax/xmlwriter"
)

// TestWriter_Roundtrip builds a document with xmlwriter.Writer and checks that feeding the result
// back into an xmlstax.Reader reproduces exactly the content the Writer calls described, the same
// "parse what you wrote" property esiproc_test.go checks for ESI fragment processing.
func TestWriter_Roundtrip(t *testing.T) {
	w := xmlwriter.New()

	calls := []func() error{
		func() error { return w.SetXMLDeclaration() },
		func() error { return w.AddComment(" generated ") },
		func() error { return w.StartElement("catalog") },
		func() error { return w.AddAttribute("version", "2") },
		func() error { return w.StartElement("book") },
		func() error { return w.AddAttribute("id", `b&<1"`) },
		func() error { return w.AddTextNode("Title & <Subtitle>") },
		func() error { return w.EndElement() },
		func() error { return w.StartElement("note") },
		func() error { return w.AddCData("raw <markup> & text") },
		func() error { return w.EndElement() },
		func() error { return w.EndElement() },
	}
	for i, call := range calls {
		if err := call(); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}

	if !w.Done() {
		t.Fatalf("Done() = false after closing the root element")
	}

	type tok struct {
		Kind xmlstax.Result
		Name string
		Text string
	}

	r := xmlstax.NewReader()
	if _, err := r.Write([]byte(w.String())); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got []tok
	var bookAttr, catalogAttr string
loop:
	for {
		switch res := r.Parse(); res {
		case xmlstax.ResultNeedMoreData:
			break loop
		case xmlstax.ResultError:
			t.Fatalf("Parse: %v", r.Err())
		case xmlstax.ResultXmlDeclaration:
			got = append(got, tok{Kind: res})
		case xmlstax.ResultComment:
			c, _ := r.Comment()
			got = append(got, tok{Kind: res, Text: c.Text})
		case xmlstax.ResultStartElement:
			s, _ := r.StartElement()
			got = append(got, tok{Kind: res, Name: s.Name.String()})
			for _, a := range s.Attr {
				switch {
				case s.Name.Local == "catalog" && a.Name.Local == "version":
					catalogAttr = a.Value
				case s.Name.Local == "book" && a.Name.Local == "id":
					bookAttr = a.Value
				}
			}
		case xmlstax.ResultTextNode:
			tn, _ := r.TextNode()
			got = append(got, tok{Kind: res, Text: tn.Text})
		case xmlstax.ResultCData:
			cd, _ := r.CData()
			got = append(got, tok{Kind: res, Text: cd.Text})
		case xmlstax.ResultEndElement:
			e, _ := r.EndElement()
			got = append(got, tok{Kind: res, Name: e.Name.String()})
		case xmlstax.ResultEndOfDocument:
			got = append(got, tok{Kind: res})
		}
	}

	want := []tok{
		{Kind: xmlstax.ResultXmlDeclaration},
		{Kind: xmlstax.ResultComment, Text: " generated "},
		{Kind: xmlstax.ResultStartElement, Name: "catalog"},
		{Kind: xmlstax.ResultStartElement, Name: "book"},
		{Kind: xmlstax.ResultTextNode, Text: "Title & <Subtitle>"},
		{Kind: xmlstax.ResultEndElement, Name: "book"},
		{Kind: xmlstax.ResultStartElement, Name: "note"},
		{Kind: xmlstax.ResultCData, Text: "raw <markup> & text"},
		{Kind: xmlstax.ResultEndElement, Name: "note"},
		{Kind: xmlstax.ResultEndElement, Name: "catalog"},
		{Kind: xmlstax.ResultEndOfDocument},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round-tripped token stream mismatch (-want +got):\n%s", diff)
	}

	if catalogAttr != "2" {
		t.Errorf("catalog's version attribute round-tripped as %q, want %q", catalogAttr, "2")
	}
	if bookAttr != `b&<1"` {
		t.Errorf("book's id attribute round-tripped as %q, want %q", bookAttr, `b&<1"`)
	}
}
