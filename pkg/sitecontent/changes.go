package sitecontent

import "maps"

// MergeFields applies the provided fields on top of current and returns
// the merged record. Fields absent from incoming keep their current
// values; current is not modified.
func MergeFields(current, incoming Record) Record {
	merged := current.Clone()
	if merged == nil {
		merged = make(Record, len(incoming))
	}
	for k, v := range incoming {
		merged[k] = v
	}
	return merged
}

// FieldsChanged reports whether two records differ. The comparison is
// structural over the whole field map, so adding a field to the schema
// requires no new comparison code.
func FieldsChanged(before, after Record) bool {
	return !maps.Equal(before, after)
}
