// Package backlogexporter is a client for the Backlog Document API: it
// lists and retrieves the documents of a project, renders them as Markdown,
// and recreates the document tree on local disk with attachments.
//
// The CLI lives in cmd/backlog-exporter; this root package exposes the same
// operations as a Go API so that callers can embed them in their own tools
// without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named backlogexporter:
//
//	import "github.com/hellenic-development/backlog-exporter" // package backlogexporter
//
// # Quick start
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if errs := cfg.Validate(); len(errs) > 0 {
//	    log.Fatal(errs[0])
//	}
//	md, err := backlogexporter.Tree(backlogexporter.Options{Config: cfg})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(md)
//
// # Configuration
//
// Configuration comes from the BACKLOG_SPACE_DOMAIN, BACKLOG_API_KEY,
// BACKLOG_PROJECT_KEY and BACKLOG_SSL_VERIFY environment variables, an
// optional .env file, and an optional YAML file; see the config package.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output, which keeps the rendered
// Markdown clean when it is written to stdout.
//
// # Exporting
//
// [Export] mirrors the document hierarchy as nested directories, one per
// document, each holding a document.md with a metadata header plus the
// body, and the document's attachments byte-for-byte. [ExportMarkdown]
// concatenates the outline and every body into a single file instead.
// Both abort on the first failed fetch; neither leaves a partially
// written file behind.
package backlogexporter
