package docgen

import (
	"strings"

	"github.com/shaktatech/sitecontent/pkg/sitecontent"
)

// socialPlatforms maps record fields to the platform names printed on the
// social-media line, in display order. The line carries the names, not
// the URLs: the export is a readable summary, not a hyperlink sheet.
var socialPlatforms = []struct {
	field string
	name  string
}{
	{sitecontent.FieldLinkedIn, "LinkedIn"},
	{sitecontent.FieldGitHub, "GitHub"},
	{sitecontent.FieldFacebook, "Facebook"},
	{sitecontent.FieldInstagram, "Instagram"},
}

// ProfileSections returns the member CV section list. The order is the
// reader-facing structure of every export and must not be rearranged:
// header, position, department, contact, summary, experience, projects,
// education, training, references, additional.
func ProfileSections() []Section {
	return []Section{
		{
			ID:      "header",
			Include: fieldSet(sitecontent.FieldName),
			Render: func(r sitecontent.Record) []Block {
				return []Block{{Kind: BlockHeading, Text: strings.ToUpper(r.Get(sitecontent.FieldName))}}
			},
		},
		{
			ID:      "position",
			Include: fieldSet(sitecontent.FieldPosition),
			Render: func(r sitecontent.Record) []Block {
				return []Block{{Kind: BlockSubheading, Text: r.Get(sitecontent.FieldPosition)}}
			},
		},
		{
			ID:      "department",
			Include: fieldSet(sitecontent.FieldDepartment),
			Render: func(r sitecontent.Record) []Block {
				return []Block{{Kind: BlockSubheading, Text: r.Get(sitecontent.FieldDepartment)}}
			},
		},
		{
			// Always present: it carries the mandatory email line. The
			// phone, address and social sub-lines are each independently
			// conditional.
			ID: "contact",
			Render: func(r sitecontent.Record) []Block {
				blocks := []Block{
					{Kind: BlockSectionTitle, Text: "CONTACT INFORMATION"},
					{Kind: BlockLabeledLine, Label: "Email", Text: r.Get(sitecontent.FieldEmail)},
				}
				if r.Has(sitecontent.FieldPhone) {
					blocks = append(blocks, Block{Kind: BlockLabeledLine, Label: "Phone", Text: r.Get(sitecontent.FieldPhone)})
				}
				if r.Has(sitecontent.FieldAddress) {
					blocks = append(blocks, Block{Kind: BlockLabeledLine, Label: "Address", Text: r.Get(sitecontent.FieldAddress)})
				}
				if names := socialNames(r); len(names) > 0 {
					blocks = append(blocks, Block{Kind: BlockLabeledLine, Label: "Social Media", Text: strings.Join(names, ", ")})
				}
				return blocks
			},
		},
		textSection("summary", "PROFESSIONAL SUMMARY", sitecontent.FieldAbout),
		textSection("experience", "EXPERIENCE", sitecontent.FieldExperience),
		textSection("projects", "PROJECTS INVOLVED", sitecontent.FieldProjectsInvolved),
		textSection("education", "EDUCATION", sitecontent.FieldEducation),
		textSection("training", "TRAINING & CERTIFICATIONS", sitecontent.FieldTraining),
		textSection("references", "REFERENCES", sitecontent.FieldReference),
		{
			ID:      "additional",
			Include: fieldSet(sitecontent.FieldRole),
			Render: func(r sitecontent.Record) []Block {
				return []Block{
					{Kind: BlockSectionTitle, Text: "ADDITIONAL INFORMATION"},
					{Kind: BlockLabeledLine, Label: "Role", Text: r.Get(sitecontent.FieldRole)},
				}
			},
		},
	}
}

// textSection builds the common "title + single paragraph" section shape.
func textSection(id, title, field string) Section {
	return Section{
		ID:      id,
		Include: fieldSet(field),
		Render: func(r sitecontent.Record) []Block {
			return []Block{
				{Kind: BlockSectionTitle, Text: title},
				{Kind: BlockParagraph, Text: r.Get(field)},
			}
		},
	}
}

func fieldSet(field string) func(sitecontent.Record) bool {
	return func(r sitecontent.Record) bool {
		return r.Has(field)
	}
}

func socialNames(r sitecontent.Record) []string {
	var names []string
	for _, platform := range socialPlatforms {
		if r.Has(platform.field) {
			names = append(names, platform.name)
		}
	}
	return names
}
