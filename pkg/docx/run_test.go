package docx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_IterationSkipsOtherChildren(t *testing.T) {
	doc := openTestDocument(t)

	got := runTexts(doc.Paragraphs().Runs())
	want := []string{"Hello", " World", "!"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_Exhaustion(t *testing.T) {
	doc := openTestDocument(t)
	r := doc.Paragraphs().Runs()

	// three runs: two calls to Next reach the last one
	require.True(t, r.HasNext())
	r.Next()
	require.True(t, r.HasNext())
	r.Next()
	assert.False(t, r.HasNext())
	assert.True(t, r.Valid())
	assert.Equal(t, "!", r.Text())

	same := r.Next()
	assert.Same(t, r, same, "Next moves the cursor in place")
	assert.False(t, r.Valid())
	assert.False(t, r.HasNext())
	assert.Equal(t, "", r.Text())

	// idempotent past the end
	r.Next().Next()
	assert.False(t, r.Valid())
	assert.False(t, r.HasNext())
	assert.Nil(t, r.Node())
}

func TestRun_SetText(t *testing.T) {
	tests := []struct {
		name      string
		xml       string
		text      string
		wantOK    bool
		wantText  string
		wantSpace bool
	}{
		{
			name:     "simple replacement",
			xml:      `<w:r><w:t>old</w:t></w:r>`,
			text:     "X",
			wantOK:   true,
			wantText: "X",
		},
		{
			name:      "leading space is preserved",
			xml:       `<w:r><w:t>old</w:t></w:r>`,
			text:      " padded",
			wantOK:    true,
			wantText:  " padded",
			wantSpace: true,
		},
		{
			name:     "extra text children are folded",
			xml:      `<w:r><w:t>a</w:t><w:tab/><w:t>b</w:t></w:r>`,
			text:     "joined",
			wantOK:   true,
			wantText: "joined",
		},
		{
			name:     "run without text child",
			xml:      `<w:r><w:rPr><w:b/></w:rPr></w:r>`,
			text:     "X",
			wantOK:   false,
			wantText: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := openXML(t, `<w:document xmlns:w="`+NamespaceMain+`"><w:body><w:p>`+tt.xml+`</w:p></w:body></w:document>`)
			r := doc.Paragraphs().Runs()
			require.True(t, r.Valid())

			assert.Equal(t, tt.wantOK, r.SetText(tt.text))
			assert.Equal(t, tt.wantText, r.Text())

			if tt.wantSpace {
				tEl := childElement(r.Node(), elemText)
				require.NotNil(t, tEl)
				assert.Equal(t, "preserve", tEl.SelectAttrValue("xml:space", ""))
			}
		})
	}
}

func TestRun_SetTextOnUnsetCursor(t *testing.T) {
	doc := openTestDocument(t)
	before := canonicalXML(t, mustWriteMain(t, doc))

	r := doc.Paragraphs().Runs()
	for r.Valid() {
		r.Next()
	}
	assert.False(t, r.SetText("X"))
	assert.Equal(t, "", r.Text())

	var zero Run
	assert.False(t, zero.SetText("X"))
	assert.False(t, zero.Valid())
	assert.False(t, zero.HasNext())

	var nilRun *Run
	assert.False(t, nilRun.SetText("X"))
	assert.Equal(t, "", nilRun.Text())

	assert.Equal(t, before, canonicalXML(t, mustWriteMain(t, doc)))
}

func TestRun_MutationVisibleThroughOtherCursors(t *testing.T) {
	doc := openTestDocument(t)

	added := doc.Paragraphs().AddRun("tmp", None)
	require.True(t, added.Valid())

	r := doc.Paragraphs().Runs()
	for r.HasNext() {
		r.Next()
	}
	require.True(t, r.SetText("changed"))

	assert.Equal(t, "changed", added.Text())
	assert.Same(t, added.Node(), r.Node())
}

func TestRun_Format(t *testing.T) {
	doc := openXML(t, `<w:document xmlns:w="`+NamespaceMain+`"><w:body><w:p>`+
		`<w:r><w:t>plain</w:t></w:r>`+
		`<w:r><w:rPr><w:b/><w:i w:val="0"/><w:u w:val="double"/></w:rPr><w:t>b-u</w:t></w:r>`+
		`<w:r><w:rPr><w:strike w:val="true"/><w:vertAlign w:val="subscript"/></w:rPr><w:t>s</w:t></w:r>`+
		`<w:r><w:rPr><w:u w:val="none"/><w:smallCaps/><w:shadow w:val="1"/></w:rPr><w:t>c</w:t></w:r>`+
		`</w:p></w:body></w:document>`)

	var got []Format
	for r := doc.Paragraphs().Runs(); r.Valid(); r.Next() {
		got = append(got, r.Format())
	}
	want := []Format{None, Bold | Underline, Strikethrough | Subscript, SmallCaps | Shadow}
	assert.Equal(t, want, got)
}

func mustWriteMain(t *testing.T, doc *Document) []byte {
	t.Helper()
	s, err := doc.tree.WriteToBytes()
	require.NoError(t, err)
	return s
}
