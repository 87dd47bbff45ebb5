package sitecontent

import "github.com/google/uuid"

// AssetUpload is an incoming replacement or first upload for an entity's
// asset field. Format and size validation happen upstream.
type AssetUpload struct {
	Data      []byte
	Extension string
}

// CreateEntityRequest contains parameters for creating an entity.
type CreateEntityRequest struct {
	Collection string
	Fields     Record
	Upload     *AssetUpload
}

// UpdateEntityRequest contains parameters for updating an entity. Fields
// absent from the request keep their stored values. ClearAsset removes the
// bound asset without a replacement upload.
type UpdateEntityRequest struct {
	ID         uuid.UUID
	Fields     Record
	Upload     *AssetUpload
	ClearAsset bool
}

// UpsertSingletonRequest contains parameters for updating a zero-or-one-row
// collection (the site settings), creating the row on first write.
type UpsertSingletonRequest struct {
	Collection string
	Fields     Record
	Upload     *AssetUpload
}

// ListEntitiesRequest contains parameters for a paginated listing.
type ListEntitiesRequest struct {
	Collection string
	Page       int
	Limit      int
}

// EntityPage is one window of a collection listing.
type EntityPage struct {
	Items      []*Entity
	Pagination Pagination
}
