package backlogexporter

import (
	"github.com/hellenic-development/backlog-exporter/pkg/backlog"
	"github.com/hellenic-development/backlog-exporter/pkg/config"
	"github.com/hellenic-development/backlog-exporter/pkg/doctree"
	"github.com/hellenic-development/backlog-exporter/pkg/exporter"
	"github.com/hellenic-development/backlog-exporter/pkg/formatter"
)

// Version is the tool version reported by the version command.
const Version = "0.3.0"

// Options configures a command run.
type Options struct {
	Config *config.Config
	Logger Logger // nil = no logging

	// OnDocument is called after each document has been exported. The CLI
	// uses it to advance its progress bar.
	OnDocument func(title string)
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) client() *backlog.Client {
	cfg := o.Config
	return backlog.NewClient(backlog.Config{
		SpaceDomain:     cfg.Backlog.SpaceDomain,
		APIKey:          cfg.Backlog.APIKey,
		ProjectKey:      cfg.Backlog.ProjectKey,
		SkipTLSVerify:   !cfg.Backlog.SSLVerify,
		Timeout:         cfg.Timeout(),
		PageSize:        cfg.HTTP.PageSize,
		RequestInterval: cfg.RequestInterval(),
	})
}

func (o *Options) newExporter(client *backlog.Client) *exporter.Exporter {
	return &exporter.Exporter{
		Fetcher:    client,
		Domain:     client.SpaceDomain(),
		ProjectKey: client.ProjectKey(),
		OnDocument: o.OnDocument,
	}
}

// fetchAll resolves the project and retrieves every document summary.
func (o *Options) fetchAll(client *backlog.Client) ([]backlog.DocumentSummary, error) {
	o.logInfo("Resolving project %s...", o.Config.Backlog.ProjectKey)
	projectID, err := client.ProjectID()
	if err != nil {
		return nil, err
	}

	o.logInfo("Fetching document list...")
	docs, err := client.ListDocuments(projectID)
	if err != nil {
		return nil, err
	}
	o.logInfo("Fetched %d document(s)", len(docs))
	return docs, nil
}

// fetchForest retrieves all documents and reconstructs the hierarchy.
func (o *Options) fetchForest(client *backlog.Client) ([]*doctree.Node, error) {
	docs, err := o.fetchAll(client)
	if err != nil {
		return nil, err
	}
	if orphans := doctree.Orphans(docs); len(orphans) > 0 {
		o.logWarn("%d document(s) reference a parent outside the project; treating them as roots", len(orphans))
	}
	return doctree.Build(docs), nil
}

// List returns a Markdown table of every document in the project.
func List(opts Options) (string, error) {
	client := opts.client()
	docs, err := opts.fetchAll(client)
	if err != nil {
		return "", err
	}
	return formatter.RenderTable(docs, client.SpaceDomain(), client.ProjectKey()), nil
}

// Tree returns a Markdown outline of the full document hierarchy.
func Tree(opts Options) (string, error) {
	client := opts.client()
	roots, err := opts.fetchForest(client)
	if err != nil {
		return "", err
	}
	return formatter.RenderTree(roots, client.SpaceDomain(), client.ProjectKey()), nil
}

// Info returns the title, metadata and body of one document as Markdown.
func Info(opts Options, documentID string) (string, error) {
	client := opts.client()
	doc, err := client.GetDocument(documentID)
	if err != nil {
		return "", err
	}
	return formatter.RenderDocument(doc, client.SpaceDomain(), client.ProjectKey()), nil
}

// Download fetches one document's detail and attachments into outputDir.
// An empty outputDir means the current directory.
func Download(opts Options, documentID, outputDir string) error {
	if outputDir == "" {
		outputDir = "."
	}
	client := opts.client()
	opts.logInfo("Downloading document %s to %s...", documentID, outputDir)
	return opts.newExporter(client).ExportDocument(documentID, outputDir)
}

// Export recreates the whole document tree as nested directories under
// outputDir, one directory per document with its body and attachments.
func Export(opts Options, outputDir string) error {
	client := opts.client()
	roots, err := opts.fetchForest(client)
	if err != nil {
		return err
	}
	opts.logInfo("Exporting %d document(s) to %s...", doctree.Count(roots), outputDir)
	return opts.newExporter(client).ExportTree(roots, outputDir)
}

// ExportMarkdown concatenates the whole document tree into a single
// Markdown file. An empty outputFile means "documents.md".
func ExportMarkdown(opts Options, outputFile string) error {
	if outputFile == "" {
		outputFile = "documents.md"
	}
	client := opts.client()
	roots, err := opts.fetchForest(client)
	if err != nil {
		return err
	}
	opts.logInfo("Exporting %d document(s) to %s...", doctree.Count(roots), outputFile)
	return opts.newExporter(client).ExportMarkdown(roots, outputFile)
}
