package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Relationship represents a relationship in the DOCX package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// packageReader indexes the members of a DOCX archive held in memory.
type packageReader struct {
	reader *zip.Reader
	parts  map[string]*zip.File
}

func newPackageReader(source []byte) (*packageReader, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(source), int64(len(source)))
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	pr := &packageReader{
		reader: zipReader,
		parts:  make(map[string]*zip.File, len(zipReader.File)),
	}
	for _, file := range zipReader.File {
		pr.parts[file.Name] = file
	}
	return pr, nil
}

func (pr *packageReader) has(name string) bool {
	_, ok := pr.parts[name]
	return ok
}

// part retrieves the content of a specific member
func (pr *packageReader) part(name string) ([]byte, error) {
	file, ok := pr.parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", name, err)
	}
	return content, nil
}

// names returns the member names in archive order.
func (pr *packageReader) names() []string {
	names := make([]string, 0, len(pr.reader.File))
	for _, file := range pr.reader.File {
		names = append(names, file.Name)
	}
	return names
}

// relationships retrieves relationships for a given part. A part without a
// relationships member has none.
func (pr *packageReader) relationships(partName string) ([]Relationship, error) {
	relPath := path.Join(path.Dir(partName), "_rels", path.Base(partName)+".rels")
	if !pr.has(relPath) {
		return []Relationship{}, nil
	}

	content, err := pr.part(relPath)
	if err != nil {
		return nil, err
	}

	var rels Relationships
	if err := xml.Unmarshal(content, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}
	return rels.Relationship, nil
}

// packageWriter re-emits an archive: the main part from fresh bytes, the
// replaced members from the filesystem, everything else copied verbatim.
type packageWriter struct {
	source       *packageReader
	mainPart     string
	mainXML      []byte
	replacements map[string]string
	method       uint16
	logger       *Logger
}

func (pw *packageWriter) writeTo(out io.Writer) error {
	w := zip.NewWriter(out)

	written := make(map[string]bool, len(pw.source.reader.File))
	for _, file := range pw.source.reader.File {
		written[file.Name] = true
		switch {
		case file.Name == pw.mainPart:
			if err := pw.create(w, file.Name, &file.FileHeader, bytes.NewReader(pw.mainXML)); err != nil {
				return err
			}
		case pw.replacements[file.Name] != "":
			if err := pw.replace(w, file.Name, &file.FileHeader); err != nil {
				return err
			}
		default:
			// raw copy keeps the compressed bytes and header as they were
			if err := w.Copy(file); err != nil {
				return fmt.Errorf("failed to copy %s: %w", file.Name, err)
			}
		}
	}

	// registrations for members the archive does not have yet
	pending := make([]string, 0, len(pw.replacements))
	for name := range pw.replacements {
		pending = append(pending, name)
	}
	sort.Strings(pending)
	for _, name := range pending {
		if written[name] {
			continue
		}
		pw.logger.Debug("adding new member %s", name)
		if err := pw.replace(w, name, nil); err != nil {
			return err
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}
	return nil
}

func (pw *packageWriter) replace(w *zip.Writer, name string, orig *zip.FileHeader) error {
	src := pw.replacements[name]
	f, err := os.Open(src)
	if err != nil {
		return &ReplacementError{Member: name, Source: src, Cause: err}
	}
	defer f.Close()

	pw.logger.Debug("replacing member %s from %s", name, src)
	return pw.create(w, name, orig, f)
}

func (pw *packageWriter) create(w *zip.Writer, name string, orig *zip.FileHeader, content io.Reader) error {
	hdr := &zip.FileHeader{Name: name, Method: pw.method}
	if orig != nil {
		hdr.Modified = orig.Modified
		hdr.Comment = orig.Comment
		hdr.ExternalAttrs = orig.ExternalAttrs
		hdr.CreatorVersion = orig.CreatorVersion
	}
	fw, err := w.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if _, err := io.Copy(fw, content); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// validMemberPath reports whether name is syntactically a zip member path:
// forward slashes, relative, no empty, "." or ".." segments.
func validMemberPath(name string) bool {
	if name == "" || strings.ContainsRune(name, '\\') || strings.HasPrefix(name, "/") {
		return false
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}
