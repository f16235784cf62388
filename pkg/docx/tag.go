package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// Tag is a cursor over the structured document tags (w:sdt) inside a
// paragraph. A tag carries a name and a human readable alias in its
// properties and holds runs in its content.
type Tag struct {
	cursor
	run Run
}

func newTag() Tag {
	return Tag{cursor: newCursor(elemSDT), run: newRun()}
}

// Name returns the tag's w:tag value, or "" when unset.
func (t *Tag) Name() string {
	return t.property(elemTag)
}

// Alias returns the tag's w:alias value, or "" when unset.
func (t *Tag) Alias() string {
	return t.property(elemAlias)
}

func (t *Tag) property(local string) string {
	if t == nil || t.current == nil {
		return ""
	}
	props := childElement(t.current, elemSDTProps)
	return attrValue(childElement(props, local), "val")
}

// Runs returns the run cursor scoped to the content of the current tag.
func (t *Tag) Runs() *Run {
	if t == nil {
		r := newRun()
		return &r
	}
	t.run.scope(childElement(t.current, elemSDTContent))
	return &t.run
}

// Text returns the text of every run in the tag's content.
func (t *Tag) Text() string {
	if t == nil || t.current == nil {
		return ""
	}
	var sb strings.Builder
	for _, run := range t.contentRuns() {
		sb.WriteString(runText(run))
	}
	return sb.String()
}

// SetText writes text into the first content run that holds text and clears
// the text of the remaining runs, so the tag reads as text afterwards.
// It reports false when the cursor is unset or no content run has a w:t.
func (t *Tag) SetText(text string) bool {
	if t == nil || t.current == nil {
		return false
	}
	written := false
	for _, run := range t.contentRuns() {
		if childElement(run, elemText) == nil {
			continue
		}
		if !written {
			written = setRunText(run, text)
			continue
		}
		setRunText(run, "")
	}
	return written
}

func (t *Tag) contentRuns() []*etree.Element {
	content := childElement(t.current, elemSDTContent)
	if content == nil {
		return nil
	}
	var runs []*etree.Element
	for _, child := range content.ChildElements() {
		if isElement(child, elemRun) {
			runs = append(runs, child)
		}
	}
	return runs
}

// Next advances to the following tag.
func (t *Tag) Next() *Tag {
	if t != nil {
		t.advance()
	}
	return t
}

// HasNext reports whether another tag follows the current one.
func (t *Tag) HasNext() bool {
	return t != nil && t.hasNext()
}

// Valid reports whether the cursor points at a tag.
func (t *Tag) Valid() bool {
	return t != nil && t.valid()
}

// Node returns the underlying w:sdt element, or nil.
func (t *Tag) Node() *etree.Element {
	if t == nil {
		return nil
	}
	return t.current
}
