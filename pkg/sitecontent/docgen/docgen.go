// Package docgen compiles an entity record into an ordered, section-based
// document: the member "Export as CV" feature. The output is a flat block
// sequence; rendering it into a concrete file format is left to the
// caller (a plain-text renderer ships with the package).
package docgen

import (
	"time"

	"github.com/shaktatech/sitecontent/pkg/sitecontent"
)

// BlockKind classifies an atomic content unit of a compiled document.
type BlockKind string

// Block kinds.
const (
	BlockHeading      BlockKind = "heading"       // document title
	BlockSubheading   BlockKind = "subheading"    // secondary title line
	BlockSectionTitle BlockKind = "section_title" // section divider
	BlockLabeledLine  BlockKind = "labeled_line"  // "Label: value"
	BlockParagraph    BlockKind = "paragraph"     // free text
	BlockFooter       BlockKind = "footer"        // trailing generation note
)

// Block is the smallest renderable unit of a compiled document.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Label string    `json:"label,omitempty"`
	Text  string    `json:"text"`
}

// Section is a named, conditionally included unit of the document with a
// fixed position in document order.
type Section struct {
	ID      string
	Include func(r sitecontent.Record) bool
	Render  func(r sitecontent.Record) []Block
}

// Document is the compiled result: rendered blocks from every included
// section, in section-list order, closed by the generation footer.
type Document struct {
	Blocks      []Block   `json:"blocks"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Compiler turns records into documents using a fixed section list.
type Compiler struct {
	sections []Section
	now      func() time.Time
}

// CompilerOption represents a functional option for configuring the compiler
type CompilerOption func(*Compiler)

// WithSections sets the ordered section list
func WithSections(sections []Section) CompilerOption {
	return func(c *Compiler) {
		c.sections = sections
	}
}

// WithClock sets the clock used for the footer timestamp
func WithClock(now func() time.Time) CompilerOption {
	return func(c *Compiler) {
		c.now = now
	}
}

// NewCompiler creates a compiler. Without options it compiles the member
// CV profile with the wall clock.
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	if c.sections == nil {
		c.sections = ProfileSections()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Compile renders every section whose predicate holds, in the literal
// order of the section list, then appends the generation footer. Missing
// or empty fields only exclude sections; the sole failure is a nil
// record. For a fixed record and clock instant the output is
// deterministic.
func (c *Compiler) Compile(r sitecontent.Record) (*Document, error) {
	if r == nil {
		return nil, sitecontent.ErrInvalidRecord
	}

	now := c.now()
	var blocks []Block
	for _, section := range c.sections {
		if section.Include != nil && !section.Include(r) {
			continue
		}
		blocks = append(blocks, section.Render(r)...)
	}

	blocks = append(blocks, Block{
		Kind: BlockFooter,
		Text: "Generated on " + now.Format("January 2, 2006"),
	})

	return &Document{Blocks: blocks, GeneratedAt: now}, nil
}
