package types

// Status tracks the lifecycle of a row. Queries only return published rows.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
