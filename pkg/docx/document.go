package docx

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"go.uber.org/multierr"
)

// Document is a .docx package opened for editing. It owns the parsed main
// document part; the Paragraph and Table cursors it returns are views into
// that tree and stay valid until the next Open or Close.
//
// A Document is meant for one owner at a time and does no locking.
type Document struct {
	path   string
	config *Config

	source []byte
	pkg    *packageReader
	tree   *etree.Document
	body   *etree.Element
	isOpen bool

	paragraph Paragraph
	table     Table

	// archive member -> filesystem path, applied by Save
	replacements map[string]string
}

// New creates a document for the file at path using the global configuration.
// Nothing is read until Open is called.
func New(path string) *Document {
	return NewWithConfig(path, GetGlobalConfig())
}

// NewWithConfig creates a document for the file at path with a custom configuration.
func NewWithConfig(path string, config *Config) *Document {
	if config == nil {
		config = GetGlobalConfig()
	}
	return &Document{
		path:         path,
		config:       config,
		paragraph:    newParagraph(),
		table:        newTable(),
		replacements: make(map[string]string),
	}
}

// SetFile changes the file the document reads from and saves to. The current
// tree, if any, is kept until the next Open.
func (d *Document) SetFile(path string) {
	d.path = path
}

// Path returns the file the document reads from and saves to.
func (d *Document) Path() string {
	return d.path
}

func (d *Document) logger() *Logger {
	return GetLogger().WithField("document", d.path)
}

// Open reads the archive, parses its main part and scopes the root cursors
// to the document body. On failure IsOpen reports false and the previous
// tree, if any, is gone.
func (d *Document) Open() error {
	d.release()

	source, err := os.ReadFile(d.path)
	if err != nil {
		d.logger().Warn("open failed: %v", err)
		return NewDocumentError("open", d.path, err)
	}
	return d.load(source)
}

// OpenReader is like Open but reads the archive from r. Save still writes to
// the document's path.
func (d *Document) OpenReader(r io.Reader) error {
	d.release()

	source, err := io.ReadAll(r)
	if err != nil {
		return NewDocumentError("read", d.path, err)
	}
	return d.load(source)
}

func (d *Document) load(source []byte) error {
	log := d.logger()
	mainPart := d.config.MainPart

	pkg, err := newPackageReader(source)
	if err != nil {
		log.Warn("not a zip archive: %v", err)
		return NewDocumentError("open", d.path, err)
	}
	if !pkg.has(mainPart) {
		log.Warn("archive has no %s", mainPart)
		return NewDocumentError("open", mainPart, ErrMissingMainPart)
	}

	content, err := pkg.part(mainPart)
	if err != nil {
		return NewDocumentError("extract", mainPart, err)
	}

	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(content); err != nil {
		log.Warn("failed to parse %s: %v", mainPart, err)
		return NewDocumentError("parse", mainPart, err)
	}

	root := tree.Root()
	if !isElement(root, elemDocument) {
		return NewDocumentError("parse", mainPart, ErrMalformedBody)
	}
	body := childElement(root, elemBody)
	if body == nil {
		return NewDocumentError("parse", mainPart, ErrMalformedBody)
	}

	d.source = source
	d.pkg = pkg
	d.tree = tree
	d.body = body
	d.paragraph.scope(body)
	d.table.scope(body)
	d.isOpen = true

	log.Debug("opened %s with %d members", mainPart, len(pkg.reader.File))
	return nil
}

// release drops the tree and archive bytes and unsets the root cursors.
func (d *Document) release() {
	d.source = nil
	d.pkg = nil
	d.tree = nil
	d.body = nil
	d.isOpen = false
	d.paragraph.scope(nil)
	d.table.scope(nil)
}

// IsOpen reports whether the last Open succeeded.
func (d *Document) IsOpen() bool {
	return d.isOpen
}

// Paragraphs returns the cursor over the body's paragraphs, rewound to the
// first one. Before a successful Open the cursor is unset.
func (d *Document) Paragraphs() *Paragraph {
	d.paragraph.scope(d.body)
	return &d.paragraph
}

// Tables returns the cursor over the body's tables, rewound to the first one.
func (d *Document) Tables() *Table {
	d.table.scope(d.body)
	return &d.table
}

// ReplaceFile registers that Save should write the contents of the file at
// replacement in place of the archive member original. Only the syntax of
// original is checked; a member the archive lacks is added on save. The main
// document part cannot be replaced. Registering the same member again
// replaces the earlier registration.
func (d *Document) ReplaceFile(original, replacement string) bool {
	log := d.logger()
	if !validMemberPath(original) || replacement == "" {
		log.Warn("rejected replacement of %q with %q", original, replacement)
		return false
	}
	if original == d.config.MainPart {
		log.Warn("rejected replacement of the main part %q", original)
		return false
	}
	if prev, ok := d.replacements[original]; ok && prev != replacement {
		log.Debug("replacement of %s changed from %s to %s", original, prev, replacement)
	}
	d.replacements[original] = replacement
	return true
}

// Replacements returns a copy of the registered replacements.
func (d *Document) Replacements() map[string]string {
	out := make(map[string]string, len(d.replacements))
	for k, v := range d.replacements {
		out[k] = v
	}
	return out
}

// Save rewrites the archive at the document's path. See SaveAs.
func (d *Document) Save() error {
	return d.SaveAs(d.path)
}

// SaveAs writes the package to target. The archive is assembled in a
// temporary file which is renamed over target only once it is complete, so a
// failed save leaves any existing file at target untouched.
func (d *Document) SaveAs(target string) (err error) {
	if !d.isOpen {
		return NewDocumentError("save", target, ErrNotOpen)
	}
	log := d.logger()

	dir := d.config.TempDir
	if dir == "" {
		dir = filepath.Dir(target)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return NewDocumentError("save", target, err)
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			err = multierr.Append(err, tmp.Close())
		}
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			err = multierr.Append(err, rmErr)
		}
		log.Error("save failed: %v", err)
	}()

	if err = d.writePackage(tmp); err != nil {
		return NewDocumentError("save", target, err)
	}
	if err = tmp.Sync(); err != nil {
		return NewDocumentError("save", target, err)
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return NewDocumentError("save", target, err)
	}

	mode := fs.FileMode(0o644)
	if info, statErr := os.Stat(target); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err = os.Chmod(tmpName, mode); err != nil {
		return NewDocumentError("save", target, err)
	}
	if err = os.Rename(tmpName, target); err != nil {
		return NewDocumentError("save", target, err)
	}

	log.Info("saved %s (%d replacements)", target, len(d.replacements))
	return nil
}

// WriteTo writes the package to w. It implements io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	if !d.isOpen {
		return 0, NewDocumentError("write", d.path, ErrNotOpen)
	}
	cw := &countingWriter{w: w}
	if err := d.writePackage(cw); err != nil {
		return cw.n, NewDocumentError("write", d.path, err)
	}
	return cw.n, nil
}

func (d *Document) writePackage(w io.Writer) error {
	var mainXML bytes.Buffer
	if _, err := d.tree.WriteTo(&mainXML); err != nil {
		return NewDocumentError("marshal", d.config.MainPart, err)
	}
	pw := &packageWriter{
		source:       d.pkg,
		mainPart:     d.config.MainPart,
		mainXML:      mainXML.Bytes(),
		replacements: d.replacements,
		method:       d.config.method(),
		logger:       d.logger(),
	}
	return pw.writeTo(w)
}

// Parts returns the archive member names in archive order.
func (d *Document) Parts() []string {
	if d.pkg == nil {
		return nil
	}
	return d.pkg.names()
}

// Relationships returns the relationships of the main document part.
func (d *Document) Relationships() ([]Relationship, error) {
	if !d.isOpen {
		return nil, NewDocumentError("relationships", d.path, ErrNotOpen)
	}
	rels, err := d.pkg.relationships(d.config.MainPart)
	if err != nil {
		return nil, NewDocumentError("relationships", d.config.MainPart, err)
	}
	return rels, nil
}

// Close releases the parsed tree and the archive contents. Registered
// replacements are kept.
func (d *Document) Close() error {
	d.release()
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
