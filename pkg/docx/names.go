package docx

import "github.com/beevik/etree"

const (
	// NamespaceMain is the WordprocessingML main namespace.
	NamespaceMain = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	// NamespaceRelationships is the package relationships namespace.
	NamespaceRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"

	// DefaultMainPart is the archive member holding the document body.
	DefaultMainPart = "word/document.xml"
)

// Local names of the WordprocessingML elements the cursors understand.
const (
	elemDocument   = "document"
	elemBody       = "body"
	elemParagraph  = "p"
	elemParaProps  = "pPr"
	elemRun        = "r"
	elemRunProps   = "rPr"
	elemText       = "t"
	elemSDT        = "sdt"
	elemSDTProps   = "sdtPr"
	elemSDTContent = "sdtContent"
	elemTag        = "tag"
	elemAlias      = "alias"
	elemTable      = "tbl"
	elemTableRow   = "tr"
	elemTableCell  = "tc"
)

// isElement reports whether el is the WordprocessingML element with the given
// local name. The conventional "w" prefix is checked first; documents that bind
// the main namespace to another prefix are matched through the namespace URI.
func isElement(el *etree.Element, local string) bool {
	if el == nil || el.Tag != local {
		return false
	}
	if el.Space == "w" {
		return true
	}
	return el.NamespaceURI() == NamespaceMain
}

// childElement returns the first child of parent with the given local name.
func childElement(parent *etree.Element, local string) *etree.Element {
	if parent == nil {
		return nil
	}
	for _, child := range parent.ChildElements() {
		if isElement(child, local) {
			return child
		}
	}
	return nil
}

// attrValue returns the value of the attribute with the given local name,
// regardless of its prefix.
func attrValue(el *etree.Element, local string) string {
	if el == nil {
		return ""
	}
	for _, a := range el.Attr {
		if a.Key == local {
			return a.Value
		}
	}
	return ""
}

// wordPrefix returns the prefix bound to the main namespace in scope at el,
// falling back to "w".
func wordPrefix(el *etree.Element) string {
	for e := el; e != nil; e = e.Parent() {
		if e.Space != "" && e.NamespaceURI() == NamespaceMain {
			return e.Space
		}
		for _, a := range e.Attr {
			if a.Space == "xmlns" && a.Value == NamespaceMain {
				return a.Key
			}
		}
	}
	return "w"
}

// newWordElement creates a detached element in the main namespace using the
// prefix that is in scope at ctx.
func newWordElement(ctx *etree.Element, local string) *etree.Element {
	return etree.NewElement(wordPrefix(ctx) + ":" + local)
}
