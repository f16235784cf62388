package docx

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>
    <w:p>
      <w:pPr><w:pStyle w:val="Heading1"/><w:jc w:val="center"/></w:pPr>
      <w:r><w:t>Hello</w:t></w:r>
      <w:bookmarkStart w:id="0" w:name="greeting"/>
      <w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve"> World</w:t></w:r>
      <w:sdt>
        <w:sdtPr><w:alias w:val="Customer Name"/><w:tag w:val="customer"/></w:sdtPr>
        <w:sdtContent><w:r><w:t>Jane</w:t></w:r><w:r><w:t> Doe</w:t></w:r></w:sdtContent>
      </w:sdt>
      <w:bookmarkEnd w:id="0"/>
      <w:r><w:t>!</w:t></w:r>
      <w:sdt>
        <w:sdtPr><w:alias w:val="Date"/><w:tag w:val="date"/></w:sdtPr>
        <w:sdtContent><w:r><w:t>today</w:t></w:r></w:sdtContent>
      </w:sdt>
    </w:p>
    <w:p>
      <w:r><w:t>Second</w:t></w:r>
    </w:p>
    <w:tbl>
      <w:tblPr><w:tblStyle w:val="Grid"/></w:tblPr>
      <w:tblGrid><w:gridCol w:w="100"/><w:gridCol w:w="100"/></w:tblGrid>
      <w:tr><w:tc><w:p><w:r><w:t>A1</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>B1</w:t></w:r></w:p></w:tc></w:tr>
      <w:tr><w:trPr/><w:tc><w:p><w:r><w:t>A2</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>B2</w:t></w:r></w:p><w:p><w:r><w:t>B2 more</w:t></w:r></w:p></w:tc></w:tr>
      <w:tr><w:tc><w:p><w:r><w:t>A3</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>B3</w:t></w:r></w:p></w:tc></w:tr>
    </w:tbl>
    <w:p>
      <w:pPr><w:sectPr><w:pgSz w:w="12240" w:h="15840"/></w:sectPr></w:pPr>
      <w:r><w:t>Closing</w:t></w:r>
    </w:p>
    <w:tbl>
      <w:tr><w:tc><w:p><w:r><w:t>only</w:t></w:r></w:p></w:tc></w:tr>
    </w:tbl>
    <w:sectPr><w:pgSz w:w="12240" w:h="15840"/></w:sectPr>
  </w:body>
</w:document>`

// firstParagraphText is the text of the fixture's first paragraph: its runs
// and the content of its two tags, in document order.
const firstParagraphText = "Hello WorldJane Doe!today"

const testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Default Extension="png" ContentType="image/png"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const testRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const testDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
</Relationships>`

var testImage = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3, 4}

type member struct {
	name string
	data []byte
}

// testMembers is the member list of the standard fixture, in archive order.
func testMembers() []member {
	return []member{
		{"[Content_Types].xml", []byte(testContentTypes)},
		{"_rels/.rels", []byte(testRootRels)},
		{"word/document.xml", []byte(testDocumentXML)},
		{"word/_rels/document.xml.rels", []byte(testDocumentRels)},
		{"word/styles.xml", []byte(`<?xml version="1.0"?><w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`)},
		{"word/media/image1.png", testImage},
	}
}

func buildDocx(t *testing.T, members []member) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, m := range members {
		f, err := w.Create(m.name)
		require.NoError(t, err)
		_, err = f.Write(m.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// writeDocx writes a fixture archive into a temp dir and returns its path.
func writeDocx(t *testing.T, members []member) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.docx")
	require.NoError(t, os.WriteFile(path, buildDocx(t, members), 0o644))
	return path
}

// openTestDocument opens the standard fixture from disk.
func openTestDocument(t *testing.T) *Document {
	t.Helper()
	doc := New(writeDocx(t, testMembers()))
	require.NoError(t, doc.Open())
	require.True(t, doc.IsOpen())
	return doc
}

// openXML opens a document whose main part is the given XML.
func openXML(t *testing.T, documentXML string) *Document {
	t.Helper()
	doc := New(writeDocx(t, []member{{"word/document.xml", []byte(documentXML)}}))
	require.NoError(t, doc.Open())
	return doc
}

// readMembers returns the uncompressed contents of every member of an archive.
func readMembers(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = content
	}
	return out
}

func memberNames(t *testing.T, data []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

// canonicalXML parses and re-serializes XML with indentation stripped so
// documents can be compared without caring about whitespace-only text.
func canonicalXML(t *testing.T, data []byte) string {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	doc.Indent(etree.NoIndent)
	s, err := doc.WriteToString()
	require.NoError(t, err)
	return s
}

func runTexts(r *Run) []string {
	var out []string
	for ; r.Valid(); r.Next() {
		out = append(out, r.Text())
	}
	return out
}

func paragraphTexts(p *Paragraph) []string {
	var out []string
	for ; p.Valid(); p.Next() {
		out = append(out, p.Text())
	}
	return out
}
