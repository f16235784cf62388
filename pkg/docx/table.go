package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// Table is a cursor over w:tbl elements. Tables can be navigated and the text
// of the paragraphs in their cells edited; rows and cells cannot be added.
type Table struct {
	cursor
	row TableRow
}

func newTable() Table {
	return Table{cursor: newCursor(elemTable), row: newTableRow()}
}

// Rows returns the row cursor positioned at the first row of the current table.
func (t *Table) Rows() *TableRow {
	if t == nil {
		v := newTableRow()
		return &v
	}
	t.row.scope(t.current)
	return &t.row
}

func (t *Table) Next() *Table {
	if t != nil {
		t.advance()
	}
	return t
}

func (t *Table) HasNext() bool {
	return t != nil && t.hasNext()
}

func (t *Table) Valid() bool {
	return t != nil && t.valid()
}

func (t *Table) Node() *etree.Element {
	if t == nil {
		return nil
	}
	return t.current
}

// TableRow is a cursor over the w:tr elements of a table.
type TableRow struct {
	cursor
	cell TableCell
}

func newTableRow() TableRow {
	return TableRow{cursor: newCursor(elemTableRow), cell: newTableCell()}
}

// Cells returns the cell cursor positioned at the first cell of the current row.
func (r *TableRow) Cells() *TableCell {
	if r == nil {
		v := newTableCell()
		return &v
	}
	r.cell.scope(r.current)
	return &r.cell
}

func (r *TableRow) Next() *TableRow {
	if r != nil {
		r.advance()
	}
	return r
}

func (r *TableRow) HasNext() bool {
	return r != nil && r.hasNext()
}

func (r *TableRow) Valid() bool {
	return r != nil && r.valid()
}

func (r *TableRow) Node() *etree.Element {
	if r == nil {
		return nil
	}
	return r.current
}

// TableCell is a cursor over the w:tc elements of a row.
type TableCell struct {
	cursor
	paragraph Paragraph
}

func newTableCell() TableCell {
	return TableCell{cursor: newCursor(elemTableCell), paragraph: newParagraph()}
}

// Paragraphs returns the paragraph cursor positioned at the first paragraph of
// the current cell.
func (c *TableCell) Paragraphs() *Paragraph {
	if c == nil {
		v := newParagraph()
		return &v
	}
	c.paragraph.scope(c.current)
	return &c.paragraph
}

// Text returns the text of the cell's paragraphs joined by newlines.
func (c *TableCell) Text() string {
	if c == nil || c.current == nil {
		return ""
	}
	var parts []string
	p := newParagraph()
	for p.scope(c.current); p.Valid(); p.Next() {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

func (c *TableCell) Next() *TableCell {
	if c != nil {
		c.advance()
	}
	return c
}

func (c *TableCell) HasNext() bool {
	return c != nil && c.hasNext()
}

func (c *TableCell) Valid() bool {
	return c != nil && c.valid()
}

func (c *TableCell) Node() *etree.Element {
	if c == nil {
		return nil
	}
	return c.current
}
