package models

import "time"

type ReleaseStatus string

const (
	StatusDraft     ReleaseStatus = "draft"
	StatusPublished ReleaseStatus = "published"
	StatusArchived  ReleaseStatus = "archived"
)

// ValidStatuses is the single source of truth consulted by every
// operation that accepts a status value.
var ValidStatuses = []ReleaseStatus{StatusDraft, StatusPublished, StatusArchived}

func (s ReleaseStatus) Valid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type ReleaseCategory string

const (
	CategoryFeature     ReleaseCategory = "feature"
	CategoryImprovement ReleaseCategory = "improvement"
	CategoryBugfix      ReleaseCategory = "bugfix"
	CategorySecurity    ReleaseCategory = "security"
	CategoryOther       ReleaseCategory = "other"
)

var ValidCategories = []ReleaseCategory{
	CategoryFeature, CategoryImprovement, CategoryBugfix, CategorySecurity, CategoryOther,
}

func (c ReleaseCategory) Valid() bool {
	for _, v := range ValidCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Release is a single changelog entry. Slug is unique per workspace,
// not globally; the composite index is what makes concurrent creates
// with the same derived slug safe.
type Release struct {
	ID      string `gorm:"primaryKey;type:text" json:"id"`
	Title   string `json:"title"`
	Slug    string `gorm:"uniqueIndex:idx_workspace_slug;not null" json:"slug"`
	Content string `gorm:"type:text" json:"content"` // Rich text (HTML)
	Version string `json:"version"`

	Category ReleaseCategory `gorm:"type:text;default:'other'" json:"category"`
	Status   ReleaseStatus   `gorm:"type:text;default:'draft';index" json:"status"`

	// Tenant partition key, immutable after creation
	WorkspaceID string `gorm:"uniqueIndex:idx_workspace_slug;index;not null" json:"workspaceId"`

	// Audit trail only, no ownership semantics beyond workspace
	CreatedBy string `json:"createdBy"`
	UpdatedBy string `json:"updatedBy"`

	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
