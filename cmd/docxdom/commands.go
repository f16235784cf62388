package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benjaminschreck/go-docxdom/pkg/docx"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "docxdom v%s\n", Version)
		},
	}
}

func newTextCommand() *cobra.Command {
	var numbered bool

	cmd := &cobra.Command{
		Use:   "text <file>",
		Short: "Print the text of every body paragraph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDocument(cmd, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			w := cmd.OutOrStdout()
			n := 1
			for p := doc.Paragraphs(); p.Valid(); p.Next() {
				if numbered {
					_, _ = fmt.Fprintf(w, "%4d  %s\n", n, p.Text())
				} else {
					_, _ = fmt.Fprintln(w, p.Text())
				}
				n++
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&numbered, "number", "n", false, "Prefix each paragraph with its 1-based index")
	return cmd
}

func newTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables <file>",
		Short: "Render the body tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDocument(cmd, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			w := cmd.OutOrStdout()
			count := 0
			for tbl := doc.Tables(); tbl.Valid(); tbl.Next() {
				count++
				_, _ = fmt.Fprintf(w, "Table %d\n", count)
				renderTable(w, tbl)
			}
			if count == 0 {
				_, _ = fmt.Fprintln(w, "(0 tables)")
			}
			return nil
		},
	}
}

func renderTable(w io.Writer, tbl *docx.Table) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	for row := tbl.Rows(); row.Valid(); row.Next() {
		var r table.Row
		for cell := row.Cells(); cell.Valid(); cell.Next() {
			r = append(r, cell.Text())
		}
		t.AppendRow(r)
	}
	t.Render()
}

func newTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags <file>",
		Short: "List the structured document tags of the body paragraphs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDocument(cmd, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Paragraph", "Tag", "Alias", "Text"})

			n := 1
			for p := doc.Paragraphs(); p.Valid(); p.Next() {
				for tag := p.Tags(); tag.Valid(); tag.Next() {
					t.AppendRow(table.Row{n, tag.Name(), tag.Alias(), tag.Text()})
				}
				n++
			}
			t.Render()
			return nil
		},
	}
}

func newPartsCommand() *cobra.Command {
	var showRels bool

	cmd := &cobra.Command{
		Use:   "parts <file>",
		Short: "List the archive members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDocument(cmd, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			w := cmd.OutOrStdout()
			if !showRels {
				for _, name := range doc.Parts() {
					_, _ = fmt.Fprintln(w, name)
				}
				return nil
			}

			rels, err := doc.Relationships()
			if err != nil {
				return err
			}
			t := table.NewWriter()
			t.SetOutputMirror(w)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Id", "Type", "Target"})
			for _, rel := range rels {
				t.AppendRow(table.Row{rel.ID, shortType(rel.Type), rel.Target})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&showRels, "rels", false, "Show the main part's relationships instead")
	return cmd
}

// shortType trims a relationship type URI to its last segment.
func shortType(uri string) string {
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

func newAppendCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "append <file> <paragraph> <text>",
		Short: "Insert a paragraph after the given 1-based body paragraph",
		Long: `Insert a new paragraph holding text immediately after the given body
paragraph. The new paragraph copies the paragraph properties of its
predecessor. Index 0 is not accepted.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			f, ok := docx.ParseFormat(format)
			if !ok {
				return fmt.Errorf("unknown format %q", format)
			}

			doc, err := openDocument(cmd, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			p, err := nthParagraph(doc, index)
			if err != nil {
				return err
			}
			p.InsertParagraphAfter(args[2], f)
			return saveDocument(cmd, doc, output)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Run formatting, e.g. bold|italic")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of overwriting the input")
	return cmd
}

func newSetRunCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "set-run <file> <paragraph> <run> <text>",
		Short: "Replace the text of one run (both indexes 1-based)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			pIndex, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			rIndex, err := parseIndex(args[2])
			if err != nil {
				return err
			}

			doc, err := openDocument(cmd, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			p, err := nthParagraph(doc, pIndex)
			if err != nil {
				return err
			}
			r := p.Runs()
			for i := 1; i < rIndex && r.Valid(); i++ {
				r.Next()
			}
			if !r.Valid() {
				return fmt.Errorf("paragraph %d has no run %d", pIndex, rIndex)
			}
			if !r.SetText(args[3]) {
				return fmt.Errorf("run %d of paragraph %d has no text element", rIndex, pIndex)
			}
			return saveDocument(cmd, doc, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of overwriting the input")
	return cmd
}

func newSetTagCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "set-tag <file> <tag> <text>",
		Short: "Set the text of every body tag with the given name",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDocument(cmd, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			updated := 0
			for p := doc.Paragraphs(); p.Valid(); p.Next() {
				for tag := p.Tags(); tag.Valid(); tag.Next() {
					if tag.Name() == args[1] && tag.SetText(args[2]) {
						updated++
					}
				}
			}
			if updated == 0 {
				return fmt.Errorf("no tag named %q with text content", args[1])
			}
			if err := saveDocument(cmd, doc, output); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %d tag(s)\n", updated)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of overwriting the input")
	return cmd
}

func newReplaceCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "replace <file> <member=path>...",
		Short: "Substitute archive members with files from disk",
		Example: `  docxdom replace report.docx word/media/image1.png=logo.png
  docxdom replace report.docx -o out.docx word/media/image1.png=a.png word/media/image2.png=b.png`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openDocument(cmd, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			for _, pair := range args[1:] {
				member, source, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("expected member=path, got %q", pair)
				}
				if !doc.ReplaceFile(member, source) {
					return fmt.Errorf("cannot replace %q", member)
				}
			}
			return saveDocument(cmd, doc, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of overwriting the input")
	return cmd
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid index %q: must be a positive integer", s)
	}
	return n, nil
}

func nthParagraph(doc *docx.Document, n int) (*docx.Paragraph, error) {
	p := doc.Paragraphs()
	for i := 1; i < n && p.Valid(); i++ {
		p.Next()
	}
	if !p.Valid() {
		return nil, fmt.Errorf("document has no paragraph %d", n)
	}
	return p, nil
}
