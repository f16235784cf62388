package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// Run is a cursor over the w:r children of a paragraph or of a tag's content.
// Navigation happens in place: Next moves this cursor and returns it.
//
//	for r := p.Runs(); r.Valid(); r.Next() {
//	    fmt.Println(r.Text())
//	}
type Run struct {
	cursor
}

func newRun() Run {
	return Run{cursor: newCursor(elemRun)}
}

// Text returns the text of the current run, or "" when the cursor is unset.
func (r *Run) Text() string {
	if r == nil || r.current == nil {
		return ""
	}
	return runText(r.current)
}

// SetText replaces the text of the current run. It reports false when the
// cursor is unset or the run has no w:t child to hold the text.
func (r *Run) SetText(text string) bool {
	if r == nil || r.current == nil {
		return false
	}
	return setRunText(r.current, text)
}

// Next advances to the following run. Past the last run the cursor becomes
// unset and stays unset.
func (r *Run) Next() *Run {
	if r != nil {
		r.advance()
	}
	return r
}

// HasNext reports whether another run follows the current one.
func (r *Run) HasNext() bool {
	return r != nil && r.hasNext()
}

// Valid reports whether the cursor points at a run.
func (r *Run) Valid() bool {
	return r != nil && r.valid()
}

// Format returns the formatting toggles set on the current run.
func (r *Run) Format() Format {
	if r == nil || r.current == nil {
		return None
	}
	return formatOf(r.current)
}

// Node returns the underlying w:r element, or nil.
func (r *Run) Node() *etree.Element {
	if r == nil {
		return nil
	}
	return r.current
}

func runText(run *etree.Element) string {
	var sb strings.Builder
	for _, child := range run.ChildElements() {
		if isElement(child, elemText) {
			sb.WriteString(child.Text())
		}
	}
	return sb.String()
}

func setRunText(run *etree.Element, text string) bool {
	var first *etree.Element
	var extra []*etree.Element
	for _, child := range run.ChildElements() {
		if !isElement(child, elemText) {
			continue
		}
		if first == nil {
			first = child
		} else {
			extra = append(extra, child)
		}
	}
	if first == nil {
		return false
	}
	for _, el := range extra {
		run.RemoveChild(el)
	}
	writeText(first, text)
	return true
}

// writeText sets the content of a w:t element, marking it xml:space="preserve"
// when the value would otherwise lose leading or trailing whitespace.
func writeText(t *etree.Element, text string) {
	t.SetText(text)
	if text != "" && strings.TrimSpace(text) != text {
		if t.SelectAttr("xml:space") == nil {
			t.CreateAttr("xml:space", "preserve")
		}
	}
}

// newRunElement builds a detached w:r with formatting and text.
func newRunElement(ctx *etree.Element, text string, f Format) *etree.Element {
	p := wordPrefix(ctx)
	run := etree.NewElement(p + ":" + elemRun)
	if f != None {
		run.AddChild(runProperties(ctx, f))
	}
	t := run.CreateElement(p + ":" + elemText)
	writeText(t, text)
	return run
}
