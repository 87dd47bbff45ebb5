// Package sitecontent provides a reusable library for managing catalog
// entity records that each carry at most one binary asset (an image or
// logo), with pluggable repository and blob storage backends.
//
// It exposes an AssetManager that handles naming, storing, replacing and
// retiring asset files without ever leaving a live record pointing at a
// missing file, a Service that sequences asset operations around record
// persistence, and pagination helpers for listing endpoints. Document
// compilation (the member CV export) lives in the docgen subpackage.
// Implementations of repositories (memory, Postgres) and blob stores
// (memory, filesystem, S3) are provided under subpackages.
package sitecontent
