// Package exporter writes the document hierarchy to local disk, either as a
// directory tree mirroring the hierarchy or as a single Markdown file.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hellenic-development/backlog-exporter/pkg/backlog"
	"github.com/hellenic-development/backlog-exporter/pkg/doctree"
	"github.com/hellenic-development/backlog-exporter/pkg/formatter"
)

// DocumentFetcher is the part of the API client the exporter needs.
// *backlog.Client satisfies it; tests substitute a fake.
type DocumentFetcher interface {
	GetDocument(documentID string) (*backlog.Document, error)
	DownloadAttachment(documentID string, attachmentID int) ([]byte, string, error)
}

// Exporter walks a document forest and materializes it on disk. Documents
// are fetched sequentially, one request in flight at a time, and the first
// fetch or filesystem failure aborts the remaining export.
type Exporter struct {
	Fetcher    DocumentFetcher
	Domain     string
	ProjectKey string

	// OnDocument is called after each document has been written. Optional;
	// the CLI uses it to advance its progress bar.
	OnDocument func(title string)
}

const documentFileName = "document.md"

// ExportTree recreates the forest as nested directories under outputDir:
// one directory per document named after its sanitized title, containing
// document.md (metadata header plus body) and the document's attachments.
// Root documents sit directly under outputDir.
func (e *Exporter) ExportTree(roots []*doctree.Node, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", outputDir, err)
	}
	return e.exportNodes(roots, outputDir)
}

func (e *Exporter) exportNodes(nodes []*doctree.Node, parentDir string) error {
	usedNames := make(map[string]int, len(nodes))

	for _, n := range nodes {
		name := sanitizeTitle(n.Document.Title, n.Document.ID)

		// Sibling titles sanitize to the same name more often than raw
		// titles collide; suffix rather than silently merge directories.
		if count, exists := usedNames[name]; exists {
			usedNames[name] = count + 1
			name = fmt.Sprintf("%s (%d)", name, count+1)
		} else {
			usedNames[name] = 1
		}

		dir := filepath.Join(parentDir, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
		if err := e.exportDocument(n.Document.ID, dir); err != nil {
			return err
		}
		if err := e.exportNodes(n.Children, dir); err != nil {
			return err
		}
	}
	return nil
}

// ExportDocument fetches a single document and writes its document.md and
// attachments directly into dir. Used by the download command.
func (e *Exporter) ExportDocument(documentID, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", dir, err)
	}
	return e.exportDocument(documentID, dir)
}

func (e *Exporter) exportDocument(documentID, dir string) error {
	doc, err := e.Fetcher.GetDocument(documentID)
	if err != nil {
		return fmt.Errorf("export document %s: %w", documentID, err)
	}

	content := formatter.RenderDocument(doc, e.Domain, e.ProjectKey)
	path := filepath.Join(dir, documentFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}

	for _, att := range doc.Attachments {
		data, name, err := e.Fetcher.DownloadAttachment(doc.ID, att.ID)
		if err != nil {
			return fmt.Errorf("export document %s: %w", doc.ID, err)
		}
		// The declared name from the detail response wins; the name the
		// download derived from Content-Disposition is the fallback.
		if att.Name != "" {
			name = att.Name
		}
		name = sanitizeTitle(name, strconv.Itoa(att.ID))
		attPath := filepath.Join(dir, name)
		if err := os.WriteFile(attPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write file %q: %w", attPath, err)
		}
	}

	if e.OnDocument != nil {
		e.OnDocument(doc.Title)
	}
	return nil
}

// ExportMarkdown writes the whole tree into a single Markdown file: the
// rendered outline first, then one section per document in the same
// depth-first order. Attachments are not included. Nothing is written
// until every document has been fetched, so a failure leaves no file
// behind.
func (e *Exporter) ExportMarkdown(roots []*doctree.Node, outputFile string) error {
	var sb strings.Builder
	sb.WriteString(formatter.RenderTree(roots, e.Domain, e.ProjectKey))
	sb.WriteString("\n")

	if err := e.appendSections(roots, &sb); err != nil {
		return err
	}

	if err := os.WriteFile(outputFile, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write file %q: %w", outputFile, err)
	}
	return nil
}

func (e *Exporter) appendSections(nodes []*doctree.Node, sb *strings.Builder) error {
	for _, n := range nodes {
		doc, err := e.Fetcher.GetDocument(n.Document.ID)
		if err != nil {
			return fmt.Errorf("export document %s: %w", n.Document.ID, err)
		}

		sb.WriteString(fmt.Sprintf("## %s\n\n", doc.Title))
		sb.WriteString(doc.Content)
		if !strings.HasSuffix(doc.Content, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("\n")

		if e.OnDocument != nil {
			e.OnDocument(doc.Title)
		}
		if err := e.appendSections(n.Children, sb); err != nil {
			return err
		}
	}
	return nil
}

// sanitizeTitle makes a free-text document title safe to use as a file or
// directory name. The substitution policy: path separators, the characters
// : * ? " < > | and control characters become "_", leading and trailing
// spaces and dots are trimmed, and an empty result falls back to the
// document id.
func sanitizeTitle(title, fallback string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteRune('_')
		case r < 0x20 || r == 0x7f:
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	name := strings.Trim(b.String(), " .")
	if name == "" {
		return fallback
	}
	return name
}
