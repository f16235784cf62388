package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// Paragraph is a cursor over w:p elements. The run and tag cursors it hands
// out always describe the paragraph the cursor is on when they are requested.
type Paragraph struct {
	cursor
	run Run
	tag Tag
}

func newParagraph() Paragraph {
	return Paragraph{cursor: newCursor(elemParagraph), run: newRun(), tag: newTag()}
}

// Runs returns the run cursor positioned at the first run of the current
// paragraph. Each call rewinds it.
func (p *Paragraph) Runs() *Run {
	if p == nil {
		r := newRun()
		return &r
	}
	p.run.scope(p.current)
	return &p.run
}

// Tags returns the tag cursor positioned at the first tag of the current
// paragraph. Each call rewinds it.
func (p *Paragraph) Tags() *Tag {
	if p == nil {
		t := newTag()
		return &t
	}
	p.tag.scope(p.current)
	return &p.tag
}

// Text returns the text of the paragraph in document order: its own runs and
// the runs inside its tags.
func (p *Paragraph) Text() string {
	if p == nil || p.current == nil {
		return ""
	}
	var sb strings.Builder
	writeContentText(&sb, p.current)
	return sb.String()
}

// writeContentText appends the text of the runs under el, descending into
// the content of structured tags.
func writeContentText(sb *strings.Builder, el *etree.Element) {
	for _, child := range el.ChildElements() {
		switch {
		case isElement(child, elemRun):
			sb.WriteString(runText(child))
		case isElement(child, elemSDT):
			if content := childElement(child, elemSDTContent); content != nil {
				writeContentText(sb, content)
			}
		}
	}
}

// AddRun appends a run holding text to the current paragraph and returns a
// new cursor on it. On an unset paragraph the returned cursor is unset and
// the tree is left alone.
func (p *Paragraph) AddRun(text string, f Format) *Run {
	r := newRun()
	if p == nil || p.current == nil {
		return &r
	}
	el := newRunElement(p.current, text, f)
	p.current.AddChild(el)
	r.at(p.current, el)
	return &r
}

// InsertParagraphAfter inserts a new paragraph right after the current one.
// The new paragraph copies the current paragraph's properties (w:pPr) but
// none of its content, and holds a single run with text. The returned cursor
// is positioned on the new paragraph; this cursor does not move.
func (p *Paragraph) InsertParagraphAfter(text string, f Format) *Paragraph {
	np := newParagraph()
	if p == nil || p.current == nil {
		return &np
	}
	parent := p.current.Parent()
	idx := p.current.Index()
	if parent == nil || idx < 0 {
		return &np
	}

	el := etree.NewElement(p.current.FullTag())
	if pPr := childElement(p.current, elemParaProps); pPr != nil {
		props := pPr.Copy()
		// a section break belongs to the paragraph that ends the section
		if sect := childElement(props, "sectPr"); sect != nil {
			props.RemoveChild(sect)
		}
		el.AddChild(props)
	}
	parent.InsertChildAt(idx+1, el)

	np.at(parent, el)
	np.AddRun(text, f)
	return &np
}

// Next advances to the following paragraph.
func (p *Paragraph) Next() *Paragraph {
	if p != nil {
		p.advance()
	}
	return p
}

// HasNext reports whether another paragraph follows the current one.
func (p *Paragraph) HasNext() bool {
	return p != nil && p.hasNext()
}

// Valid reports whether the cursor points at a paragraph.
func (p *Paragraph) Valid() bool {
	return p != nil && p.valid()
}

// Node returns the underlying w:p element, or nil.
func (p *Paragraph) Node() *etree.Element {
	if p == nil {
		return nil
	}
	return p.current
}
