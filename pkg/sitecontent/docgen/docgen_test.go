package docgen_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaktatech/sitecontent/pkg/sitecontent"
	"github.com/shaktatech/sitecontent/pkg/sitecontent/docgen"
)

var testClock = func() time.Time {
	return time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)
}

func newTestCompiler() *docgen.Compiler {
	return docgen.NewCompiler(docgen.WithClock(testClock))
}

func blockTexts(doc *docgen.Document) []string {
	texts := make([]string, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		texts = append(texts, b.Text)
	}
	return texts
}

func TestCompileNilRecord(t *testing.T) {
	_, err := newTestCompiler().Compile(nil)
	assert.ErrorIs(t, err, sitecontent.ErrInvalidRecord)
}

func TestCompileMinimalRecord(t *testing.T) {
	doc, err := newTestCompiler().Compile(sitecontent.Record{
		sitecontent.FieldName:  "Jane Doe",
		sitecontent.FieldEmail: "jane@example.com",
	})
	require.NoError(t, err)

	// Header, contact title, email line, footer: nothing else included.
	require.Len(t, doc.Blocks, 4)
	assert.Equal(t, docgen.BlockHeading, doc.Blocks[0].Kind)
	assert.Equal(t, "JANE DOE", doc.Blocks[0].Text)
	assert.Equal(t, docgen.BlockSectionTitle, doc.Blocks[1].Kind)
	assert.Equal(t, "CONTACT INFORMATION", doc.Blocks[1].Text)
	assert.Equal(t, docgen.BlockLabeledLine, doc.Blocks[2].Kind)
	assert.Equal(t, "Email", doc.Blocks[2].Label)
	assert.Equal(t, "jane@example.com", doc.Blocks[2].Text)
	assert.Equal(t, docgen.BlockFooter, doc.Blocks[3].Kind)
	assert.Equal(t, "Generated on March 15, 2026", doc.Blocks[3].Text)
}

func TestCompileSectionOrder(t *testing.T) {
	doc, err := newTestCompiler().Compile(sitecontent.Record{
		sitecontent.FieldName:             "Jane Doe",
		sitecontent.FieldEmail:            "jane@example.com",
		sitecontent.FieldPosition:         "Senior Engineer",
		sitecontent.FieldDepartment:       "Engineering",
		sitecontent.FieldAbout:            "Builds things.",
		sitecontent.FieldExperience:       "8 years",
		sitecontent.FieldProjectsInvolved: "Catalog backend",
		sitecontent.FieldEducation:        "BSc Computer Science",
		sitecontent.FieldTraining:         "AWS Certified",
		sitecontent.FieldReference:        "Available on request",
		sitecontent.FieldRole:             "admin",
	})
	require.NoError(t, err)

	titles := make([]string, 0)
	for _, b := range doc.Blocks {
		if b.Kind == docgen.BlockSectionTitle {
			titles = append(titles, b.Text)
		}
	}

	assert.Equal(t, []string{
		"CONTACT INFORMATION",
		"PROFESSIONAL SUMMARY",
		"EXPERIENCE",
		"PROJECTS INVOLVED",
		"EDUCATION",
		"TRAINING & CERTIFICATIONS",
		"REFERENCES",
		"ADDITIONAL INFORMATION",
	}, titles)

	assert.Equal(t, "Senior Engineer", doc.Blocks[1].Text)
	assert.Equal(t, "Engineering", doc.Blocks[2].Text)
	assert.Equal(t, docgen.BlockFooter, doc.Blocks[len(doc.Blocks)-1].Kind)
}

func TestCompileEmptyFieldsExcludeSections(t *testing.T) {
	doc, err := newTestCompiler().Compile(sitecontent.Record{
		sitecontent.FieldName:     "Jane Doe",
		sitecontent.FieldEmail:    "jane@example.com",
		sitecontent.FieldPosition: "   ",
		sitecontent.FieldAbout:    "",
	})
	require.NoError(t, err)

	texts := blockTexts(doc)
	assert.NotContains(t, texts, "PROFESSIONAL SUMMARY")
	for _, b := range doc.Blocks {
		assert.NotEqual(t, docgen.BlockSubheading, b.Kind, "whitespace-only position is excluded")
	}
}

func TestCompileSocialLine(t *testing.T) {
	tests := []struct {
		name     string
		record   sitecontent.Record
		expected string
	}{
		{
			name: "single platform",
			record: sitecontent.Record{
				sitecontent.FieldName:   "Jane Doe",
				sitecontent.FieldEmail:  "jane@example.com",
				sitecontent.FieldGitHub: "https://github.com/janedoe",
			},
			expected: "GitHub",
		},
		{
			name: "all platforms in display order",
			record: sitecontent.Record{
				sitecontent.FieldName:      "Jane Doe",
				sitecontent.FieldEmail:     "jane@example.com",
				sitecontent.FieldInstagram: "https://instagram.com/janedoe",
				sitecontent.FieldGitHub:    "https://github.com/janedoe",
				sitecontent.FieldLinkedIn:  "https://linkedin.com/in/janedoe",
				sitecontent.FieldFacebook:  "https://facebook.com/janedoe",
			},
			expected: "LinkedIn, GitHub, Facebook, Instagram",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := newTestCompiler().Compile(tt.record)
			require.NoError(t, err)

			var social string
			for _, b := range doc.Blocks {
				if b.Label == "Social Media" {
					social = b.Text
				}
			}
			assert.Equal(t, tt.expected, social)
		})
	}
}

func TestCompileNoSocialLineWithoutPlatforms(t *testing.T) {
	doc, err := newTestCompiler().Compile(sitecontent.Record{
		sitecontent.FieldName:  "Jane Doe",
		sitecontent.FieldEmail: "jane@example.com",
	})
	require.NoError(t, err)

	for _, b := range doc.Blocks {
		assert.NotEqual(t, "Social Media", b.Label)
	}
}

func TestCompileDeterministic(t *testing.T) {
	record := sitecontent.Record{
		sitecontent.FieldName:  "Jane Doe",
		sitecontent.FieldEmail: "jane@example.com",
		sitecontent.FieldAbout: "Builds things.",
	}

	compiler := newTestCompiler()
	first, err := compiler.Compile(record)
	require.NoError(t, err)
	second, err := compiler.Compile(record)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderText(t *testing.T) {
	doc, err := newTestCompiler().Compile(sitecontent.Record{
		sitecontent.FieldName:  "Jane Doe",
		sitecontent.FieldEmail: "jane@example.com",
		sitecontent.FieldPhone: "555-0100",
		sitecontent.FieldAbout: "Builds things.",
	})
	require.NoError(t, err)

	text := docgen.RenderText(doc)

	assert.True(t, strings.HasPrefix(text, "JANE DOE\n========\n"))
	assert.Contains(t, text, "\nCONTACT INFORMATION\n-------------------\n")
	assert.Contains(t, text, "Email: jane@example.com\n")
	assert.Contains(t, text, "Phone: 555-0100\n")
	assert.Contains(t, text, "\nPROFESSIONAL SUMMARY\n")
	assert.Contains(t, text, "Builds things.\n")
	assert.True(t, strings.HasSuffix(text, "\nGenerated on March 15, 2026\n"))
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		ext         string
		expected    string
	}{
		{"simple name", "Jane Doe", "txt", "Jane_Doe_CV.txt"},
		{"whitespace runs collapse", "  Jane   Q.  Doe ", "txt", "Jane_Q._Doe_CV.txt"},
		{"empty name falls back", "", "txt", "export_CV.txt"},
		{"dotted extension", "Jane Doe", ".pdf", "Jane_Doe_CV.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, docgen.ExportFilename(tt.displayName, tt.ext))
		})
	}
}

func TestCompileCustomSections(t *testing.T) {
	sections := []docgen.Section{
		{
			ID: "title",
			Render: func(r sitecontent.Record) []docgen.Block {
				return []docgen.Block{{Kind: docgen.BlockHeading, Text: r.Get(sitecontent.FieldName)}}
			},
		},
	}

	compiler := docgen.NewCompiler(docgen.WithSections(sections), docgen.WithClock(testClock))
	doc, err := compiler.Compile(sitecontent.Record{sitecontent.FieldName: "Jane Doe"})
	require.NoError(t, err)

	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, "Jane Doe", doc.Blocks[0].Text)
	assert.Equal(t, docgen.BlockFooter, doc.Blocks[1].Kind)
}
