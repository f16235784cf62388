package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag_Navigation(t *testing.T) {
	doc := openTestDocument(t)
	tag := doc.Paragraphs().Tags()

	require.True(t, tag.Valid())
	assert.Equal(t, "customer", tag.Name())
	assert.Equal(t, "Customer Name", tag.Alias())
	assert.Equal(t, "Jane Doe", tag.Text())
	assert.Equal(t, []string{"Jane", " Doe"}, runTexts(tag.Runs()))
	assert.True(t, tag.HasNext())

	assert.Same(t, tag, tag.Next())
	assert.Equal(t, "date", tag.Name())
	assert.Equal(t, "Date", tag.Alias())
	assert.Equal(t, "today", tag.Text())
	assert.False(t, tag.HasNext())

	tag.Next()
	assert.False(t, tag.Valid())
	assert.Equal(t, "", tag.Name())
	assert.Equal(t, "", tag.Alias())
	assert.Equal(t, "", tag.Text())
	assert.False(t, tag.Runs().Valid())
}

func TestTag_SetText(t *testing.T) {
	doc := openTestDocument(t)
	tag := doc.Paragraphs().Tags()

	require.True(t, tag.SetText("John Smith"))
	assert.Equal(t, "John Smith", tag.Text())
	assert.Equal(t, []string{"John Smith", ""}, runTexts(tag.Runs()))

	// the paragraph reads the new tag content in place
	assert.Equal(t, "Hello WorldJohn Smith!today", doc.Paragraphs().Text())
}

func TestTag_SetTextWithoutContent(t *testing.T) {
	doc := openXML(t, `<w:document xmlns:w="`+NamespaceMain+`"><w:body><w:p>`+
		`<w:sdt><w:sdtPr><w:tag w:val="empty"/></w:sdtPr><w:sdtContent/></w:sdt>`+
		`</w:p></w:body></w:document>`)

	tag := doc.Paragraphs().Tags()
	require.True(t, tag.Valid())
	assert.Equal(t, "empty", tag.Name())
	assert.Equal(t, "", tag.Alias())
	assert.False(t, tag.SetText("X"))

	tag.Next()
	assert.False(t, tag.SetText("X"))
}

func TestTag_RescopedWithParagraph(t *testing.T) {
	doc := openTestDocument(t)
	p := doc.Paragraphs()
	require.True(t, p.Tags().Valid())

	p.Next()
	assert.False(t, p.Tags().Valid(), "second paragraph has no tags")
}
