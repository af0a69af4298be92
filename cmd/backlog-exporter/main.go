package main

import (
	"fmt"
	"os"

	backlogexporter "github.com/hellenic-development/backlog-exporter"
	"github.com/hellenic-development/backlog-exporter/pkg/config"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "backlog-exporter",
		Short: "Export Backlog documents as Markdown",
		Long:  "A command-line client for the Backlog Document API: list documents, show the document tree, and export documents with their attachments to local disk",
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print all documents as a Markdown table",
		Run:   runList,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "tree",
		Short: "Print the document hierarchy as a Markdown outline",
		Run:   runTree,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "info <document_id>",
		Short: "Print one document as Markdown",
		Args:  cobra.ExactArgs(1),
		Run:   runInfo,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "download <document_id> [output_dir]",
		Short: "Download one document and its attachments (default: current directory)",
		Args:  cobra.RangeArgs(1, 2),
		Run:   runDownload,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "export [output_dir]",
		Short: "Export the whole document tree as nested directories (default: documents)",
		Args:  cobra.MaximumNArgs(1),
		Run:   runExport,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "export-md [output_file]",
		Short: "Export the whole document tree into a single Markdown file (default: documents.md)",
		Args:  cobra.MaximumNArgs(1),
		Run:   runExportMarkdown,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("backlog-exporter version %s\n", backlogexporter.Version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadOptions resolves and validates the configuration. Any config problem
// is fatal before the first network call.
func loadOptions() backlogexporter.Options {
	red := color.New(color.FgRed)

	cfg, err := config.Load(configPath)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			red.Printf("Error: %v\n", e)
		}
		os.Exit(1)
	}

	return backlogexporter.Options{Config: cfg}
}

func fail(err error) {
	color.New(color.FgRed).Printf("Error: %v\n", err)
	os.Exit(1)
}

// The read-only commands keep the Logger nil so stdout carries nothing but
// the rendered Markdown; nothing is printed until the full fetch succeeded.

func runList(cmd *cobra.Command, args []string) {
	md, err := backlogexporter.List(loadOptions())
	if err != nil {
		fail(err)
	}
	fmt.Print(md)
}

func runTree(cmd *cobra.Command, args []string) {
	md, err := backlogexporter.Tree(loadOptions())
	if err != nil {
		fail(err)
	}
	fmt.Print(md)
}

func runInfo(cmd *cobra.Command, args []string) {
	md, err := backlogexporter.Info(loadOptions(), args[0])
	if err != nil {
		fail(err)
	}
	fmt.Print(md)
}

func runDownload(cmd *cobra.Command, args []string) {
	outputDir := "."
	if len(args) > 1 {
		outputDir = args[1]
	}

	opts := loadOptions()
	opts.Logger = &cliLogger{}

	if err := backlogexporter.Download(opts, args[0], outputDir); err != nil {
		fail(err)
	}
	color.Green("✓ Downloaded document %s to %s\n", args[0], outputDir)
}

func runExport(cmd *cobra.Command, args []string) {
	outputDir := "documents"
	if len(args) > 0 {
		outputDir = args[0]
	}

	opts := loadOptions()
	opts.Logger = &cliLogger{}

	bar := getProgressBar(" Exporting documents...")
	opts.OnDocument = func(title string) { bar.Add(1) }

	if err := backlogexporter.Export(opts, outputDir); err != nil {
		bar.Finish()
		fail(err)
	}
	bar.Finish()
	color.Green("\n✨ Exported document tree to %s\n", outputDir)
}

func runExportMarkdown(cmd *cobra.Command, args []string) {
	outputFile := "documents.md"
	if len(args) > 0 {
		outputFile = args[0]
	}

	opts := loadOptions()
	opts.Logger = &cliLogger{}

	bar := getProgressBar(" Exporting documents...")
	opts.OnDocument = func(title string) { bar.Add(1) }

	if err := backlogexporter.ExportMarkdown(opts, outputFile); err != nil {
		bar.Finish()
		fail(err)
	}
	bar.Finish()
	color.Green("\n✨ Exported documents to %s\n", outputFile)
}

func getProgressBar(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSetItsString("docs"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// cliLogger implements backlogexporter.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
