package docgen

import (
	"regexp"
	"strings"
)

// RenderText serializes a compiled document as plain text. It is the
// reference renderer; richer formats plug in by walking Document.Blocks
// themselves.
func RenderText(doc *Document) string {
	var b strings.Builder

	for _, block := range doc.Blocks {
		switch block.Kind {
		case BlockHeading:
			b.WriteString(block.Text + "\n" + strings.Repeat("=", len(block.Text)) + "\n")
		case BlockSubheading:
			b.WriteString(block.Text + "\n")
		case BlockSectionTitle:
			b.WriteString("\n" + block.Text + "\n" + strings.Repeat("-", len(block.Text)) + "\n")
		case BlockLabeledLine:
			b.WriteString(block.Label + ": " + block.Text + "\n")
		case BlockParagraph:
			b.WriteString(block.Text + "\n")
		case BlockFooter:
			b.WriteString("\n" + block.Text + "\n")
		default:
			b.WriteString(block.Text + "\n")
		}
	}

	return b.String()
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportFilename derives the download filename for a compiled document
// from the record's display name: whitespace runs collapse to "_" and the
// "_CV" suffix plus extension are appended.
func ExportFilename(displayName, ext string) string {
	name := whitespaceRun.ReplaceAllString(strings.TrimSpace(displayName), "_")
	if name == "" {
		name = "export"
	}
	return name + "_CV." + strings.TrimPrefix(ext, ".")
}
