package sitecontent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeFields(t *testing.T) {
	current := Record{FieldName: "Jane Doe", FieldEmail: "jane@example.com"}

	merged := MergeFields(current, Record{FieldEmail: "jane@corp.example.com", FieldPhone: "555-0100"})

	assert.Equal(t, "Jane Doe", merged.Get(FieldName), "absent incoming field keeps current value")
	assert.Equal(t, "jane@corp.example.com", merged.Get(FieldEmail))
	assert.Equal(t, "555-0100", merged.Get(FieldPhone))
	assert.Equal(t, "jane@example.com", current.Get(FieldEmail), "current record is not modified")
}

func TestMergeFieldsNilCurrent(t *testing.T) {
	merged := MergeFields(nil, Record{FieldName: "Jane Doe"})
	assert.Equal(t, "Jane Doe", merged.Get(FieldName))
}

func TestFieldsChanged(t *testing.T) {
	a := Record{FieldName: "Jane Doe"}

	assert.False(t, FieldsChanged(a, Record{FieldName: "Jane Doe"}))
	assert.True(t, FieldsChanged(a, Record{FieldName: "John Doe"}))
	assert.True(t, FieldsChanged(a, Record{FieldName: "Jane Doe", FieldPhone: "555-0100"}))
}
