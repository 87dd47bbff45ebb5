package sitecontent

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is a flat set of optional named string fields describing an
// entity (a member, a project, the site settings row, ...). Absent and
// empty fields are equivalent.
type Record map[string]string

// Get returns the trimmed value of a field, or "" when absent.
func (r Record) Get(field string) string {
	return strings.TrimSpace(r[field])
}

// Has reports whether a field holds a non-empty, non-whitespace value.
func (r Record) Has(field string) bool {
	return r.Get(field) != ""
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Member record field names, matching the catalog schema.
const (
	FieldName             = "name"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldDepartment       = "department"
	FieldPosition         = "position"
	FieldRole             = "role"
	FieldExperience       = "experience"
	FieldProjectsInvolved = "projects_involved"
	FieldAbout            = "about"
	FieldLinkedIn         = "linkedin"
	FieldFacebook         = "facebook"
	FieldInstagram        = "instagram"
	FieldGitHub           = "github"
	FieldAddress          = "address"
	FieldShortDescription = "short_description"
	FieldTraining         = "training"
	FieldEducation        = "education"
	FieldReference        = "reference"
)

// AssetPointer is the nullable reference an entity record holds to its
// bound asset. The zero value means "no asset bound".
type AssetPointer struct {
	Path string `json:"path,omitempty"`
}

// Bound reports whether the pointer references a stored asset.
func (p AssetPointer) Bound() bool {
	return p.Path != ""
}

// Entity is a catalog record: a collection name, its fields, and an
// optional asset pointer. Exactly one asset per entity.
type Entity struct {
	ID         uuid.UUID    `json:"id"`
	Collection string       `json:"collection"`
	Fields     Record       `json:"fields"`
	Asset      AssetPointer `json:"asset"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// ObjectMeta contains metadata about an object in blob storage.
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	ETag        string
}

// NameRequest carries the inputs a naming strategy may draw on when
// computing a stored asset name.
type NameRequest struct {
	EntityID  uuid.UUID
	Fields    Record
	Data      []byte
	Extension string
}
