package xmlwriter_test

import (
	"testing"

	"github.com/nussjustin/xmlstax/xmlwriter"
)

func TestWriter_Build(t *testing.T) {
	testCases := []struct {
		Name  string
		Build func(w *xmlwriter.Writer) error
		Want  string
	}{
		{
			Name: "declaration and empty root",
			Build: func(w *xmlwriter.Writer) error {
				if err := w.SetXMLDeclaration(); err != nil {
					return err
				}
				if err := w.StartElement("root"); err != nil {
					return err
				}
				return w.EndElement()
			},
			Want: `<?xml version="1.0" encoding="UTF-8"?><root/>`,
		},
		{
			Name: "document type matching the root element",
			Build: func(w *xmlwriter.Writer) error {
				if err := w.SetDocumentType("root"); err != nil {
					return err
				}
				if err := w.StartElement("root"); err != nil {
					return err
				}
				return w.EndElement()
			},
			Want: `<!DOCTYPE root><root/>`,
		},
		{
			Name: "attributes are escaped and closed before children",
			Build: func(w *xmlwriter.Writer) error {
				if err := w.StartElement("root"); err != nil {
					return err
				}
				if err := w.AddAttribute("a", `1 < 2 & "three"`); err != nil {
					return err
				}
				if err := w.AddTextNode("hi"); err != nil {
					return err
				}
				return w.EndElement()
			},
			Want: `<root a="1 &lt; 2 &amp; &quot;three&quot;">hi</root>`,
		},
		{
			Name: "text node entities round-trip",
			Build: func(w *xmlwriter.Writer) error {
				if err := w.StartElement("root"); err != nil {
					return err
				}
				if err := w.AddTextNode("a < b & b > a"); err != nil {
					return err
				}
				return w.EndElement()
			},
			Want: `<root>a &lt; b &amp; b &gt; a</root>`,
		},
		{
			Name: "nested elements and CDATA",
			Build: func(w *xmlwriter.Writer) error {
				if err := w.StartElement("root"); err != nil {
					return err
				}
				if err := w.StartElement("child"); err != nil {
					return err
				}
				if err := w.AddCData("<raw & unescaped>"); err != nil {
					return err
				}
				if err := w.EndElement(); err != nil {
					return err
				}
				return w.EndElement()
			},
			Want: `<root><child><![CDATA[<raw & unescaped>]]></child></root>`,
		},
		{
			Name: "comments and processing instructions around the root",
			Build: func(w *xmlwriter.Writer) error {
				if err := w.AddComment(" before "); err != nil {
					return err
				}
				if err := w.AddProcessingInstruction("style", `href="a.xsl"`); err != nil {
					return err
				}
				if err := w.StartElement("root"); err != nil {
					return err
				}
				if err := w.EndElement(); err != nil {
					return err
				}
				return w.AddComment(" after ")
			},
			Want: `<!-- before --><?style href="a.xsl"?><root/><!-- after -->`,
		},
		{
			Name: "siblings under the root",
			Build: func(w *xmlwriter.Writer) error {
				if err := w.StartElement("root"); err != nil {
					return err
				}
				if err := w.StartElement("a"); err != nil {
					return err
				}
				if err := w.EndElement(); err != nil {
					return err
				}
				if err := w.StartElement("b"); err != nil {
					return err
				}
				if err := w.EndElement(); err != nil {
					return err
				}
				return w.EndElement()
			},
			Want: `<root><a/><b/></root>`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			w := xmlwriter.New()
			if err := testCase.Build(w); err != nil {
				t.Fatalf("Build: %v", err)
			}

			if !w.Done() {
				t.Errorf("Done() = false, want true")
			}

			if got := w.String(); got != testCase.Want {
				t.Errorf("String() = %q, want %q", got, testCase.Want)
			}
		})
	}
}

func TestWriter_Errors(t *testing.T) {
	testCases := []struct {
		Name  string
		Build func(w *xmlwriter.Writer) error
	}{
		{
			Name: "declaration after other content",
			Build: func(w *xmlwriter.Writer) error {
				if err := w.AddComment("c"); err != nil {
					return err
				}
				return w.SetXMLDeclaration()
			},
		},
		{
			Name: "document type after root started",
			Build: func(w *xmlwriter.Writer) error {
				if err := w.StartElement("root"); err != nil {
					return err
				}
				return w.SetDocumentType("root")
			},
		},
		{
			Name: "root element name does not match document type",
			Build: func(w *xmlwriter.Writer) error {
				if err := w.SetDocumentType("root"); err != nil {
					return err
				}
				return w.StartElement("other")
			},
		},
		{
			Name: "duplicate attribute",
			Build: func(w *xmlwriter.Writer) error {
				if err := w.StartElement("root"); err != nil {
					return err
				}
				if err := w.AddAttribute("a", "1"); err != nil {
					return err
				}
				return w.AddAttribute("a", "2")
			},
		},
		{
			Name: "attribute after start tag already closed",
			Build: func(w *xmlwriter.Writer) error {
				if err := w.StartElement("root"); err != nil {
					return err
				}
				if err := w.AddTextNode("x"); err != nil {
					return err
				}
				return w.AddAttribute("a", "1")
			},
		},
		{
			Name: "processing instruction target xml is reserved",
			Build: func(w *xmlwriter.Writer) error {
				return w.AddProcessingInstruction("xml", "")
			},
		},
		{
			Name: "comment containing double dash",
			Build: func(w *xmlwriter.Writer) error {
				return w.AddComment("a--b")
			},
		},
		{
			Name: "cdata containing its own terminator",
			Build: func(w *xmlwriter.Writer) error {
				if err := w.StartElement("root"); err != nil {
					return err
				}
				return w.AddCData("a]]>b")
			},
		},
		{
			Name: "end element without an open element",
			Build: func(w *xmlwriter.Writer) error {
				return w.EndElement()
			},
		},
		{
			Name: "invalid element name",
			Build: func(w *xmlwriter.Writer) error {
				return w.StartElement("1bad")
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			w := xmlwriter.New()
			if err := testCase.Build(w); err == nil {
				t.Fatalf("Build: got no error, want one")
			}
		})
	}
}

func TestWriter_Reset(t *testing.T) {
	w := xmlwriter.New()
	if err := w.StartElement("root"); err != nil {
		t.Fatalf("StartElement: %v", err)
	}
	if err := w.EndElement(); err != nil {
		t.Fatalf("EndElement: %v", err)
	}

	w.Reset()
	if got := w.String(); got != "" {
		t.Errorf("String() after Reset = %q, want empty", got)
	}
	if w.Done() {
		t.Errorf("Done() after Reset = true, want false")
	}

	if err := w.StartElement("other"); err != nil {
		t.Fatalf("StartElement after Reset: %v", err)
	}
	if err := w.EndElement(); err != nil {
		t.Fatalf("EndElement after Reset: %v", err)
	}
	if want, got := "<other/>", w.String(); got != want {
		t.Errorf("String() after Reset = %q, want %q", got, want)
	}
}
