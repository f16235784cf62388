package main

import (
	"context"
	"fmt"

	"github.com/benjaminschreck/go-docxdom/pkg/docx"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

type configKey struct{}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "docxdom",
		Short: "Inspect and edit .docx documents",
		Long: `docxdom opens Word documents, prints their paragraphs, tags and tables,
and applies small edits: setting run text, inserting paragraphs and
substituting archive members such as images.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := docx.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			docx.SetGlobalConfig(cfg)
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error|off)")
	rootCmd.PersistentFlags().String("main-part", "", "Archive member holding the document body")
	rootCmd.PersistentFlags().String("temp-dir", "", "Directory for the temporary archive written on save")
	rootCmd.PersistentFlags().String("compression", "", "Method for rewritten members (deflate|store)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error", "off"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("compression", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"deflate", "store"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newTextCommand())
	rootCmd.AddCommand(newTablesCommand())
	rootCmd.AddCommand(newTagsCommand())
	rootCmd.AddCommand(newPartsCommand())
	rootCmd.AddCommand(newAppendCommand())
	rootCmd.AddCommand(newSetRunCommand())
	rootCmd.AddCommand(newSetTagCommand())
	rootCmd.AddCommand(newReplaceCommand())

	return rootCmd
}

// openDocument opens path with the configuration loaded by the root command.
func openDocument(cmd *cobra.Command, path string) (*docx.Document, error) {
	cfg, _ := cmd.Context().Value(configKey{}).(*docx.Config)
	doc := docx.NewWithConfig(path, cfg)
	if err := doc.Open(); err != nil {
		return nil, err
	}
	return doc, nil
}

// saveDocument writes doc back to its own path, or to output when set.
func saveDocument(cmd *cobra.Command, doc *docx.Document, output string) error {
	target := doc.Path()
	if output != "" {
		target = output
	}
	if err := doc.SaveAs(target); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", target)
	return nil
}
