package contextbuilder

import (
	"errors"
	"strings"
)

// ErrNoContent signals that no usable document or section text was available
// to ground a request.
var ErrNoContent = errors.New("no document or section content available")

// Document is an uploaded reference document resolved for the request.
type Document struct {
	Name string
	Text string
}

// Section is an in-progress output-document section supplied per request.
type Section struct {
	Title string
	Text  string
}

// Result is the assembled context block. Truncated reports that one or more
// trailing entries were dropped to respect the budget; entries are never cut
// mid-text.
type Result struct {
	Context   string
	Truncated bool
	Included  int
}

const separator = "\n\n"

// Assemble concatenates labeled document and section entries into one
// bounded context block. Documents come first, input order is preserved in
// both groups, and blank entries are skipped. Pure function: no I/O.
func Assemble(documents []Document, sections []Section, budget int) Result {
	entries := make([]string, 0, len(documents)+len(sections))
	for _, doc := range documents {
		if strings.TrimSpace(doc.Text) == "" {
			continue
		}
		entries = append(entries, renderDocument(doc))
	}
	for _, sec := range sections {
		if strings.TrimSpace(sec.Text) == "" {
			continue
		}
		entries = append(entries, renderSection(sec))
	}

	var block strings.Builder
	included := 0
	truncated := false
	for _, entry := range entries {
		addition := len(entry)
		if included > 0 {
			addition += len(separator)
		}
		if budget > 0 && block.Len()+addition > budget {
			truncated = true
			break
		}
		if included > 0 {
			block.WriteString(separator)
		}
		block.WriteString(entry)
		included++
	}

	return Result{
		Context:   block.String(),
		Truncated: truncated,
		Included:  included,
	}
}

func renderDocument(doc Document) string {
	var entry strings.Builder
	entry.WriteString("Document: ")
	entry.WriteString(doc.Name)
	entry.WriteString("\nContent: ")
	entry.WriteString(doc.Text)
	entry.WriteString("\n")
	return entry.String()
}

func renderSection(sec Section) string {
	var entry strings.Builder
	entry.WriteString("Section: ")
	entry.WriteString(sec.Title)
	entry.WriteString("\nContent: ")
	entry.WriteString(sec.Text)
	entry.WriteString("\n")
	return entry.String()
}
