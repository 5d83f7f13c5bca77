package cv

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:pPr><w:pStyle w:val="Heading1"/><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Experience</w:t></w:r></w:p>
<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr><w:r><w:t>Built</w:t></w:r><w:r><w:t xml:space="preserve"> things &amp; more</w:t></w:r></w:p>
<w:p/>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Go</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>5 years</w:t></w:r></w:p></w:tc><w:tc><w:p/></w:tc></w:tr></w:tbl>
<w:p><w:r><w:t>Tail</w:t><w:tab/><w:t>end</w:t></w:r></w:p>
</w:body></w:document>`

func writeDocx(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cv.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(body))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()
	return path
}

func TestOOXMLExtractor(t *testing.T) {
	path := writeDocx(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   sampleDocumentXML,
	})

	res, err := NewOOXMLExtractor().Extract(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	wantText := "Experience\nBuilt things & more\n\nGo | 5 years\nTail\tend"
	if res.Text != wantText {
		t.Fatalf("text =\n%q\nwant\n%q", res.Text, wantText)
	}
	for _, want := range []string{
		"<h1>Experience</h1>",
		"<li>Built things &amp; more</li>",
		"</ul>",
		"<tr><td>Go</td><td>5 years</td><td></td></tr>",
		"<p>Tail\tend</p>",
	} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("html missing %q:\n%s", want, res.HTML)
		}
	}
}

func TestOOXMLExtractorBrokenFiles(t *testing.T) {
	noDocument := writeDocx(t, map[string]string{"word/styles.xml": "<styles/>"})
	notZip := filepath.Join(t.TempDir(), "fake.docx")
	os.WriteFile(notZip, []byte("plain text pretending to be docx"), 0o644)

	for _, path := range []string{noDocument, notZip} {
		_, err := NewOOXMLExtractor().Extract(context.Background(), path)
		if !errors.Is(err, ErrConversionFailed) {
			t.Errorf("%s: err = %v, want ConversionFailed", filepath.Base(path), err)
		}
	}
}

func TestDocxHeadingLevel(t *testing.T) {
	cases := map[string]int{
		"Heading1": 1, "heading 3": 3, "Title": 1, "Subtitle": 2,
		"Titre2": 2, "Normal": 0, "Heading9": 0, "": 0,
	}
	for style, want := range cases {
		if got := docxHeadingLevel(style); got != want {
			t.Errorf("docxHeadingLevel(%q) = %d, want %d", style, got, want)
		}
	}
}

const textBoxDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
 xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"
 xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"
 xmlns:v="urn:schemas-microsoft-com:vml"><w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r><w:r><mc:AlternateContent>
<mc:Choice Requires="wps"><w:drawing><wps:txbx><w:txbxContent><w:p><w:r><w:t>jane@example.com</w:t></w:r></w:p></w:txbxContent></wps:txbx></w:drawing></mc:Choice>
<mc:Fallback><w:pict><v:textbox><w:txbxContent><w:p><w:r><w:t>jane@example.com</w:t></w:r></w:p></w:txbxContent></v:textbox></w:pict></mc:Fallback>
</mc:AlternateContent></w:r><w:r><w:t xml:space="preserve"> Senior Engineer</w:t></w:r></w:p>
<w:p><w:r><w:t>EXPERIENCE</w:t></w:r></w:p>
</w:body></w:document>`

func TestOOXMLExtractorTextBox(t *testing.T) {
	path := writeDocx(t, map[string]string{"word/document.xml": textBoxDocumentXML})

	res, err := NewOOXMLExtractor().Extract(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	want := "jane@example.com\nJane Doe Senior Engineer\nEXPERIENCE"
	if res.Text != want {
		t.Fatalf("text =\n%q\nwant\n%q", res.Text, want)
	}
	if n := strings.Count(res.Text, "jane@example.com"); n != 1 {
		t.Fatalf("text box emitted %d times", n)
	}
}
