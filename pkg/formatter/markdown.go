// Package formatter renders documents and document trees as Markdown.
package formatter

import (
	"fmt"
	"strings"

	"github.com/hellenic-development/backlog-exporter/pkg/backlog"
	"github.com/hellenic-development/backlog-exporter/pkg/doctree"
)

// DocumentURL returns the browser URL of a document:
// https://{domain}/document/{projectKey}/{documentID}.
func DocumentURL(domain, projectKey, documentID string) string {
	return fmt.Sprintf("https://%s/document/%s/%s", domain, projectKey, documentID)
}

// RenderTable formats document summaries as a Markdown table with one row
// per document in input order. The column set is fixed: id, title, updated
// and the constructed document URL.
func RenderTable(docs []backlog.DocumentSummary, domain, projectKey string) string {
	var sb strings.Builder

	sb.WriteString("| id | title | updated | url |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, d := range docs {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			d.ID, escapeCell(d.Title), d.Updated, DocumentURL(domain, projectKey, d.ID)))
	}

	return sb.String()
}

// escapeCell keeps free-text titles from breaking the table layout.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// RenderTree formats the forest as an indented Markdown outline: one line
// per node, two spaces of indentation per depth level, children directly
// below their parent in builder order.
func RenderTree(roots []*doctree.Node, domain, projectKey string) string {
	var sb strings.Builder

	doctree.Walk(roots, func(n *doctree.Node, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(fmt.Sprintf("- [%s](%s)\n",
			n.Document.Title, DocumentURL(domain, projectKey, n.Document.ID)))
	})

	return sb.String()
}

// RenderDocument formats a single document as Markdown: the title as a
// heading, a metadata block (id, updated timestamp, URL) and the body.
func RenderDocument(doc *backlog.Document, domain, projectKey string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", doc.Title))
	sb.WriteString(fmt.Sprintf("- **id**: %s\n", doc.ID))
	sb.WriteString(fmt.Sprintf("- **updated**: %s\n", doc.Updated))
	sb.WriteString(fmt.Sprintf("- **url**: %s\n\n", DocumentURL(domain, projectKey, doc.ID)))
	sb.WriteString(doc.Content)
	if !strings.HasSuffix(doc.Content, "\n") {
		sb.WriteString("\n")
	}

	return sb.String()
}
