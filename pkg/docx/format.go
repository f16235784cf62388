package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// Format is a set of character formatting toggles applied to a new run.
// Values combine with bitwise OR: docx.Bold | docx.Italic.
type Format uint8

const (
	None          Format = 0
	Bold          Format = 1 << (iota - 1)
	Italic
	Underline
	Strikethrough
	Superscript
	Subscript
	SmallCaps
	Shadow
)

var formatNames = []struct {
	flag Format
	name string
}{
	{Bold, "bold"},
	{Italic, "italic"},
	{Underline, "underline"},
	{Strikethrough, "strikethrough"},
	{Superscript, "superscript"},
	{Subscript, "subscript"},
	{SmallCaps, "smallcaps"},
	{Shadow, "shadow"},
}

// Has reports whether every flag in other is set in f.
func (f Format) Has(other Format) bool {
	return f&other == other
}

func (f Format) String() string {
	if f == None {
		return "none"
	}
	var names []string
	for _, fn := range formatNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseFormat parses a "|" or "," separated list of flag names.
// Unknown names are reported through ok=false.
func ParseFormat(s string) (f Format, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return None, true
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' })
	for _, field := range fields {
		name := strings.ToLower(strings.TrimSpace(field))
		found := false
		for _, fn := range formatNames {
			if fn.name == name {
				f |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return None, false
		}
	}
	return f, true
}

// runProperties builds a w:rPr element for f. ctx is used to pick the
// namespace prefix.
func runProperties(ctx *etree.Element, f Format) *etree.Element {
	p := wordPrefix(ctx)
	rPr := etree.NewElement(p + ":" + elemRunProps)
	add := func(local string, val string) {
		el := rPr.CreateElement(p + ":" + local)
		if val != "" {
			el.CreateAttr(p+":val", val)
		}
	}
	if f.Has(Bold) {
		add("b", "")
	}
	if f.Has(Italic) {
		add("i", "")
	}
	if f.Has(Underline) {
		add("u", "single")
	}
	if f.Has(Strikethrough) {
		add("strike", "true")
	}
	// superscript wins when both vertical alignments are requested
	switch {
	case f.Has(Superscript):
		add("vertAlign", "superscript")
	case f.Has(Subscript):
		add("vertAlign", "subscript")
	}
	if f.Has(SmallCaps) {
		add("smallCaps", "true")
	}
	if f.Has(Shadow) {
		add("shadow", "true")
	}
	return rPr
}

// formatOf decodes the toggles present in a run's w:rPr.
func formatOf(run *etree.Element) Format {
	rPr := childElement(run, elemRunProps)
	if rPr == nil {
		return None
	}
	var f Format
	for _, el := range rPr.ChildElements() {
		if !isElement(el, el.Tag) {
			continue
		}
		val := attrValue(el, "val")
		switch el.Tag {
		case "b":
			if onOff(val) {
				f |= Bold
			}
		case "i":
			if onOff(val) {
				f |= Italic
			}
		case "u":
			if val != "" && val != "none" {
				f |= Underline
			}
		case "strike":
			if onOff(val) {
				f |= Strikethrough
			}
		case "vertAlign":
			switch val {
			case "superscript":
				f |= Superscript
			case "subscript":
				f |= Subscript
			}
		case "smallCaps":
			if onOff(val) {
				f |= SmallCaps
			}
		case "shadow":
			if onOff(val) {
				f |= Shadow
			}
		}
	}
	return f
}

// onOff interprets an ST_OnOff value; an absent value means on.
func onOff(val string) bool {
	switch val {
	case "", "true", "1", "on":
		return true
	}
	return false
}
