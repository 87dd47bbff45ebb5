// Package naming provides the stored-name strategies for uploaded assets.
//
// All strategies are pure: the same request always resolves to the same
// stored name, which is what makes replace-with-identical-content and
// retried uploads idempotent at the store level.
package naming

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/shaktatech/sitecontent/pkg/sitecontent"
)

// SlugStrategy derives the stored name from a human-readable key field:
// slug(keyField).ext. Two entities sharing the key field value resolve to
// the same name and silently overwrite each other; use UniqueSlugStrategy
// where that matters.
type SlugStrategy struct {
	// Prefix is the store directory the collection's assets live under,
	// e.g. "members".
	Prefix string

	// KeyField is the record field the slug is derived from.
	KeyField string

	// Suffix is appended after the slug, before the extension (the
	// project collection historically used "_project").
	Suffix string
}

// NewSlugStrategy creates a slug strategy for one collection.
func NewSlugStrategy(prefix, keyField string) *SlugStrategy {
	return &SlugStrategy{Prefix: prefix, KeyField: keyField}
}

func (s *SlugStrategy) Name(req sitecontent.NameRequest) (string, error) {
	ext, err := normalizeExtension(req.Extension)
	if err != nil {
		return "", err
	}

	base := slug.Make(req.Fields.Get(s.KeyField))
	if base == "" {
		return "", fmt.Errorf("%w: field %q produced an empty slug", sitecontent.ErrInvalidAssetName, s.KeyField)
	}

	return joinPrefix(s.Prefix, base+s.Suffix+"."+ext), nil
}

// UniqueSlugStrategy namespaces the slug with the owning entity's id so
// the name is injective per field: slug-1a2b3c4d.ext. Two entities with
// the same display name can no longer overwrite each other's asset.
type UniqueSlugStrategy struct {
	Prefix   string
	KeyField string
}

// NewUniqueSlugStrategy creates an id-namespaced slug strategy.
func NewUniqueSlugStrategy(prefix, keyField string) *UniqueSlugStrategy {
	return &UniqueSlugStrategy{Prefix: prefix, KeyField: keyField}
}

func (s *UniqueSlugStrategy) Name(req sitecontent.NameRequest) (string, error) {
	ext, err := normalizeExtension(req.Extension)
	if err != nil {
		return "", err
	}

	base := slug.Make(req.Fields.Get(s.KeyField))
	if base == "" {
		return "", fmt.Errorf("%w: field %q produced an empty slug", sitecontent.ErrInvalidAssetName, s.KeyField)
	}

	id := strings.ReplaceAll(req.EntityID.String(), "-", "")
	return joinPrefix(s.Prefix, fmt.Sprintf("%s-%s.%s", base, id[:8], ext)), nil
}

// ContentHashStrategy derives the stored name from the upload bytes:
// hex(sha256(data))[:32].ext. Identical uploads always resolve to the same
// stored name, deduplicating re-uploads of the same file.
type ContentHashStrategy struct {
	Prefix string
}

// NewContentHashStrategy creates a content-addressed strategy.
func NewContentHashStrategy(prefix string) *ContentHashStrategy {
	return &ContentHashStrategy{Prefix: prefix}
}

func (s *ContentHashStrategy) Name(req sitecontent.NameRequest) (string, error) {
	ext, err := normalizeExtension(req.Extension)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(req.Data)
	return joinPrefix(s.Prefix, fmt.Sprintf("%x", sum)[:32]+"."+ext), nil
}

// FuncStrategy allows callers to provide their own naming function.
type FuncStrategy struct {
	NameFunc func(req sitecontent.NameRequest) (string, error)
}

func (s *FuncStrategy) Name(req sitecontent.NameRequest) (string, error) {
	return s.NameFunc(req)
}

func normalizeExtension(ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if ext == "" {
		return "", fmt.Errorf("%w: missing file extension", sitecontent.ErrInvalidAssetName)
	}
	return ext, nil
}

func joinPrefix(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
