// Package docx reads, edits and writes Office Open XML word-processing
// packages (.docx).
//
// A Document opens the zip package, parses its main part (word/document.xml)
// into an XML tree and hands out cursors over that tree. Cursors are views,
// not copies: every edit made through one is visible through all the others,
// and Save writes the edited tree back into the package.
//
// # Cursors
//
// Each cursor walks one kind of sibling element and moves in place:
//
//   - Paragraph walks w:p and hands out Run and Tag cursors for its children
//   - Run walks w:r and gets or sets its text
//   - Tag walks structured document tags (w:sdt) and exposes their name and alias
//   - Table, TableRow and TableCell walk w:tbl, w:tr and w:tc
//
// Elements a cursor does not know are skipped. Reaching the end leaves the
// cursor unset; text accessors then return "" and setters return false.
//
//	doc := docx.New("letter.docx")
//	if err := doc.Open(); err != nil {
//	    log.Fatal(err)
//	}
//	for p := doc.Paragraphs(); p.Valid(); p.Next() {
//	    for r := p.Runs(); r.Valid(); r.Next() {
//	        fmt.Println(r.Text())
//	    }
//	}
//
//	doc.Paragraphs().InsertParagraphAfter("Dear reader,", docx.Bold)
//	doc.ReplaceFile("word/media/image1.png", "logo.png")
//	if err := doc.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Saving
//
// Save copies every member of the original archive unchanged, except the
// main part, which is serialized from the tree, and the members registered
// with ReplaceFile, which are read from disk. The new archive is written to a
// temporary file and renamed over the original, so a failed save never
// damages the file on disk.
//
// # Configuration
//
// Config values come from defaults, an optional YAML file, DOCXDOM_*
// environment variables and command line flags; see LoadConfig.
package docx
